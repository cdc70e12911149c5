package config

import (
	"runtime"
	"time"
)

// Config represents the complete scout configuration.
// It can be loaded from .scout/config.yml with environment variable overrides.
type Config struct {
	Git   GitConfig   `yaml:"git" mapstructure:"git"`
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Scan  ScanConfig  `yaml:"scan" mapstructure:"scan"`
}

// GitConfig controls change tracking.
type GitConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`               // change detection on/off
	DetectTimeout time.Duration `yaml:"detect_timeout" mapstructure:"detect_timeout"` // repository detection bound
	DiffTimeout   time.Duration `yaml:"diff_timeout" mapstructure:"diff_timeout"`     // per diff invocation bound
	StatusTimeout time.Duration `yaml:"status_timeout" mapstructure:"status_timeout"` // status fallback bound
}

// PathsConfig defines which files scans analyze and which they skip.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// ScanConfig controls multi-file analysis.
type ScanConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // bounded concurrency; 0 means one per CPU
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Git: GitConfig{
			Enabled:       true,
			DetectTimeout: 5 * time.Second,
			DiffTimeout:   10 * time.Second,
			StatusTimeout: 5 * time.Second,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
				"**/*.c",
				"**/*.h",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				".venv/**",
				".scout/**",
				"*.pyc",
			},
		},
		Scan: ScanConfig{
			Workers: runtime.GOMAXPROCS(0),
		},
	}
}
