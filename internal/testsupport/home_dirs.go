package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/taskcli/internal/paths"
)

// EnsureHomeDirs creates the default config directory under homeDir.
func EnsureHomeDirs(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", paths.AppName), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return nil
}

// SetupTestHome creates a temp home directory, ensures the config dir, and sets HOME.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	return homeDir
}

// WriteGlobalConfig writes content to the global config file under homeDir.
func WriteGlobalConfig(t testing.TB, homeDir, content string) {
	t.Helper()

	path := filepath.Join(homeDir, ".config", paths.AppName, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write global config: %v", err)
	}
}
