// Package config handles loading task-cli.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/taskcli/internal/paths"
)

// ProjectFileName is the config file looked up in the working directory.
const ProjectFileName = "task-cli.toml"

// GlobalFileName is the config file looked up in the user's config directory.
const GlobalFileName = "config.toml"

// DefaultStoragePath is the task file used when no config sets one.
const DefaultStoragePath = "tasks.json"

// DefaultLogLevel is used when no config sets a log level.
const DefaultLogLevel = "info"

// Config represents the task-cli.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Display Display `toml:"display"`
	Log     Log     `toml:"log"`
}

// Storage contains task file configuration.
type Storage struct {
	// Path is the task file. Relative paths resolve against the working directory.
	Path string `toml:"path"`
}

// Display contains output configuration.
type Display struct {
	// Color enables ANSI styling when stdout is a terminal.
	Color bool `toml:"color"`

	// Markdown renders descriptions as markdown in detail views.
	// When false, descriptions are word-wrapped plain text.
	Markdown bool `toml:"markdown"`
}

// Log contains logging configuration.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the configuration used when no files exist.
func Default() *Config {
	return &Config{
		Storage: Storage{Path: DefaultStoragePath},
		Display: Display{Color: true, Markdown: true},
		Log:     Log{Level: DefaultLogLevel},
	}
}

// Load loads configuration from the global config file and the project
// directory, with project values taking precedence.
// Returns the defaults if no config files exist.
func Load(projectDir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta), nil
}

func globalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, GlobalFileName), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	merged := Default()

	merged.Storage.Path = mergeString(merged.Storage.Path,
		layer[string]{globalMeta.IsDefined("storage", "path"), globalCfg.Storage.Path},
		layer[string]{projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path})
	merged.Display.Color = merge(merged.Display.Color,
		layer[bool]{globalMeta.IsDefined("display", "color"), globalCfg.Display.Color},
		layer[bool]{projectMeta.IsDefined("display", "color"), projectCfg.Display.Color})
	merged.Display.Markdown = merge(merged.Display.Markdown,
		layer[bool]{globalMeta.IsDefined("display", "markdown"), globalCfg.Display.Markdown},
		layer[bool]{projectMeta.IsDefined("display", "markdown"), projectCfg.Display.Markdown})
	merged.Log.Level = mergeString(merged.Log.Level,
		layer[string]{globalMeta.IsDefined("log", "level"), globalCfg.Log.Level},
		layer[string]{projectMeta.IsDefined("log", "level"), projectCfg.Log.Level})

	return merged
}

type layer[T any] struct {
	defined bool
	value   T
}

// merge returns the value of the last defined layer, or fallback.
func merge[T any](fallback T, layers ...layer[T]) T {
	value := fallback
	for _, l := range layers {
		if l.defined {
			value = l.value
		}
	}
	return value
}

// mergeString is merge for strings, ignoring layers that are blank.
func mergeString(fallback string, layers ...layer[string]) string {
	value := fallback
	for _, l := range layers {
		if l.defined && strings.TrimSpace(l.value) != "" {
			value = strings.TrimSpace(l.value)
		}
	}
	return value
}
