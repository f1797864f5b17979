package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todo/todo.toml or OS-specific config dir)
// 3. Project config file (todo.toml or .todo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile decodes a TOML config file over the current values.
func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

// findUserConfigFile returns the path to the user config file, or ""
// if none exists. ~/.todo/todo.toml wins over the OS config directory.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".todo", "todo.toml")
		if fileExists(candidate) {
			return candidate
		}
	}
	if dir := osConfigDir(); dir != "" {
		candidate := filepath.Join(dir, "todo", "todo.toml")
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// findProjectConfigFile returns the path to the project config file in
// the current directory, or "" if none exists.
func findProjectConfigFile() string {
	for _, name := range []string{"todo.toml", ".todo.toml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func osConfigDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// finalizeConfig expands paths and validates cross-field constraints.
func finalizeConfig(cfg *Config) error {
	cfg.TasksFile = expandPath(cfg.TasksFile)
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)

	if !ValidSortOrder(cfg.DefaultSort) {
		return fmt.Errorf("default_sort %q: want %q or %q", cfg.DefaultSort, SortAdded, SortDeadline)
	}
	return nil
}
