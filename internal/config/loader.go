package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	file    string
}

// NewLoader creates a configuration loader that searches rootDir/.scout.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader creates a loader bound to an explicit config file path.
func NewFileLoader(file string) Loader {
	return &loader{file: file}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SCOUT_*)
// 2. Config file (.scout/config.yml or an explicit --config file)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".scout"))
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("SCOUT")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., SCOUT_GIT_ENABLED)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	v.BindEnv("git.enabled")
	v.BindEnv("git.detect_timeout")
	v.BindEnv("git.diff_timeout")
	v.BindEnv("git.status_timeout")
	v.BindEnv("scan.workers")

	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// A missing file on the search path is acceptable - defaults + env
		// apply. An explicit file must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("git.enabled", defaults.Git.Enabled)
	v.SetDefault("git.detect_timeout", defaults.Git.DetectTimeout)
	v.SetDefault("git.diff_timeout", defaults.Git.DiffTimeout)
	v.SetDefault("git.status_timeout", defaults.Git.StatusTimeout)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("scan.workers", defaults.Scan.Workers)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadConfigFile loads configuration from an explicit file path.
func LoadConfigFile(file string) (*Config, error) {
	return NewFileLoader(file).Load()
}
