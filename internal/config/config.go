// Package config provides configuration management for fzpick.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the fzpick configuration.
type Config struct {
	// Executable is the finder binary to run (empty = find "fzf" on PATH).
	Executable string `yaml:"executable"`

	// DefaultOptions are pre-assembled option strings passed to every run,
	// e.g. ["--reverse", "--height=40%"].
	DefaultOptions []string `yaml:"default_options"`

	// Delimiter separates candidate records on the finder's stdin and in
	// its output (empty = newline).
	Delimiter string `yaml:"delimiter"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Delimiter: "\n",
	}
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultConfigFile())
}

// LoadFromFile reads the config from the given path. A missing file yields
// the defaults; a malformed file is an error. Environment overrides are
// applied either way.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if cfg.Delimiter == "" {
		cfg.Delimiter = "\n"
	}

	return cfg, nil
}

// ApplyEnvOverrides applies FZPICK_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FZPICK_EXECUTABLE"); v != "" {
		c.Executable = v
	}
	if v := os.Getenv("FZPICK_DEFAULT_OPTS"); v != "" {
		c.DefaultOptions = append(c.DefaultOptions, v)
	}
}

// DefaultConfigFile returns the default config file path, following the XDG
// Base Directory spec on Unix-like systems and %APPDATA% on Windows.
func DefaultConfigFile() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(homeDir(), "AppData", "Roaming")
		}
		return filepath.Join(appData, "fzpick")
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir(), ".config")
	}
	return filepath.Join(configHome, "fzpick")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
