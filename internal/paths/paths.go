// Package paths resolves the directories task-cli reads from.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user config directory.
const AppName = "task-cli"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultConfigDir returns the directory holding the global config file.
func DefaultConfigDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", AppName), nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// Resolve makes path absolute relative to base. Absolute paths are cleaned and returned.
func Resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
