package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .scout/config.yml when present
// - LoadConfig() loads from .scout/config.yaml when present
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values
// - Environment variables override defaults when no config file exists
// - LoadConfig() returns error for malformed YAML
// - LoadConfig() returns error for invalid configuration values
// - LoadConfigFile() returns error when the explicit file is missing
// - Validate() accepts valid configuration
// - Validate() rejects negative/zero timeouts
// - Validate() rejects negative worker counts
// - Validate() accepts zero workers (auto)
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	// Test: Default() returns valid configuration
	cfg := Default()

	require.NotNil(t, cfg)

	// Verify git defaults
	assert.True(t, cfg.Git.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Git.DetectTimeout)
	assert.Equal(t, 10*time.Second, cfg.Git.DiffTimeout)
	assert.Equal(t, 5*time.Second, cfg.Git.StatusTimeout)

	// Verify paths have reasonable defaults
	assert.Contains(t, cfg.Paths.Include, "**/*.py")
	assert.Contains(t, cfg.Paths.Include, "**/*.c")
	assert.Contains(t, cfg.Paths.Include, "**/*.h")
	assert.NotEmpty(t, cfg.Paths.Ignore)

	// Verify scan defaults
	assert.Greater(t, cfg.Scan.Workers, 0)

	// Verify default config passes validation
	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	// Test: Load from directory with no config file returns defaults
	tempDir := t.TempDir()

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Should match defaults
	expected := Default()
	assert.Equal(t, expected.Git.Enabled, cfg.Git.Enabled)
	assert.Equal(t, expected.Git.DetectTimeout, cfg.Git.DetectTimeout)
	assert.Equal(t, expected.Paths.Include, cfg.Paths.Include)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	// Test: Load from .scout/config.yml
	tempDir := t.TempDir()
	scoutDir := filepath.Join(tempDir, ".scout")
	require.NoError(t, os.MkdirAll(scoutDir, 0755))

	configContent := `
git:
  enabled: false
  detect_timeout: 2s
  diff_timeout: 30s
  status_timeout: 3s

paths:
  include:
    - "src/**/*.py"
  ignore:
    - "vendor/**"

scan:
  workers: 4
`

	configPath := filepath.Join(scoutDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Verify loaded values
	assert.False(t, cfg.Git.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Git.DetectTimeout)
	assert.Equal(t, 30*time.Second, cfg.Git.DiffTimeout)
	assert.Equal(t, 3*time.Second, cfg.Git.StatusTimeout)

	assert.Equal(t, []string{"src/**/*.py"}, cfg.Paths.Include)
	assert.Equal(t, []string{"vendor/**"}, cfg.Paths.Ignore)

	assert.Equal(t, 4, cfg.Scan.Workers)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	// Test: Load from .scout/config.yaml (alternative extension)
	tempDir := t.TempDir()
	scoutDir := filepath.Join(tempDir, ".scout")
	require.NoError(t, os.MkdirAll(scoutDir, 0755))

	configContent := `
git:
  diff_timeout: 20s
`

	configPath := filepath.Join(scoutDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 20*time.Second, cfg.Git.DiffTimeout)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	// Test: Partial config file merges with defaults
	tempDir := t.TempDir()
	scoutDir := filepath.Join(tempDir, ".scout")
	require.NoError(t, os.MkdirAll(scoutDir, 0755))

	// Only override scan workers, rest should come from defaults
	configContent := `
scan:
  workers: 2
`

	configPath := filepath.Join(scoutDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	// Should have custom scan config
	assert.Equal(t, 2, cfg.Scan.Workers)

	// Should have default git config
	expected := Default()
	assert.Equal(t, expected.Git.Enabled, cfg.Git.Enabled)
	assert.Equal(t, expected.Git.DiffTimeout, cfg.Git.DiffTimeout)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	// Test: Environment variables take precedence over config file
	tempDir := t.TempDir()
	scoutDir := filepath.Join(tempDir, ".scout")
	require.NoError(t, os.MkdirAll(scoutDir, 0755))

	configContent := `
git:
  enabled: true
  detect_timeout: 2s

scan:
  workers: 4
`

	configPath := filepath.Join(scoutDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set environment variables
	t.Setenv("SCOUT_GIT_ENABLED", "false")
	t.Setenv("SCOUT_SCAN_WORKERS", "8")

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	// Environment variables should win
	assert.False(t, cfg.Git.Enabled)
	assert.Equal(t, 8, cfg.Scan.Workers)

	// Detect timeout not overridden, should come from config file
	assert.Equal(t, 2*time.Second, cfg.Git.DetectTimeout)
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	// Test: Environment variables override defaults when no config file
	tempDir := t.TempDir()
	scoutDir := filepath.Join(tempDir, ".scout")
	require.NoError(t, os.MkdirAll(scoutDir, 0755))

	// Set environment variables
	t.Setenv("SCOUT_GIT_DIFF_TIMEOUT", "25s")
	t.Setenv("SCOUT_SCAN_WORKERS", "3")

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	// Environment variables should override defaults
	assert.Equal(t, 25*time.Second, cfg.Git.DiffTimeout)
	assert.Equal(t, 3, cfg.Scan.Workers)

	// Non-overridden values should be defaults
	expected := Default()
	assert.Equal(t, expected.Git.DetectTimeout, cfg.Git.DetectTimeout)
	assert.Equal(t, expected.Git.Enabled, cfg.Git.Enabled)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	// Test: Malformed YAML returns error
	tempDir := t.TempDir()
	scoutDir := filepath.Join(tempDir, ".scout")
	require.NoError(t, os.MkdirAll(scoutDir, 0755))

	malformedContent := `
git:
  enabled: "unclosed quote
  detect_timeout: not-a-duration
`

	configPath := filepath.Join(scoutDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(malformedContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	// Test: Invalid configuration values fail validation
	tempDir := t.TempDir()
	scoutDir := filepath.Join(tempDir, ".scout")
	require.NoError(t, os.MkdirAll(scoutDir, 0755))

	invalidContent := `
git:
  detect_timeout: -1s

scan:
  workers: -2
`

	configPath := filepath.Join(scoutDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(invalidContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoadConfigFile_ExplicitFile(t *testing.T) {
	// Test: LoadConfigFile loads from an explicit path outside .scout
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "custom.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("scan:\n  workers: 7\n"), 0644))

	cfg, err := LoadConfigFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Scan.Workers)
}

func TestLoadConfigFile_ReturnsErrorWhenMissing(t *testing.T) {
	// Test: An explicit config file must exist
	tempDir := t.TempDir()

	cfg, err := LoadConfigFile(filepath.Join(tempDir, "nope.yml"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_AcceptsValidConfiguration(t *testing.T) {
	// Test: Valid configuration passes validation
	cfg := &Config{
		Git: GitConfig{
			Enabled:       true,
			DetectTimeout: 5 * time.Second,
			DiffTimeout:   10 * time.Second,
			StatusTimeout: 5 * time.Second,
		},
		Paths: PathsConfig{
			Include: []string{"**/*.py"},
			Ignore:  []string{"node_modules/**"},
		},
		Scan: ScanConfig{
			Workers: 4,
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_RejectsNegativeDetectTimeout(t *testing.T) {
	// Test: Negative detect timeout fails validation
	cfg := Default()
	cfg.Git.DetectTimeout = -time.Second

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeout)
}

func TestValidate_RejectsZeroDiffTimeout(t *testing.T) {
	// Test: Zero diff timeout fails validation
	cfg := Default()
	cfg.Git.DiffTimeout = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeout)
}

func TestValidate_RejectsZeroStatusTimeout(t *testing.T) {
	// Test: Zero status timeout fails validation
	cfg := Default()
	cfg.Git.StatusTimeout = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeout)
}

func TestValidate_RejectsNegativeWorkers(t *testing.T) {
	// Test: Negative worker count fails validation
	cfg := Default()
	cfg.Scan.Workers = -1

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestValidate_AcceptsZeroWorkers(t *testing.T) {
	// Test: Zero workers means one per CPU and is valid
	cfg := Default()
	cfg.Scan.Workers = 0

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	// Test: Multiple validation errors are all reported
	cfg := &Config{
		Git: GitConfig{
			DetectTimeout: -1,
			DiffTimeout:   0,
			StatusTimeout: -5,
		},
		Scan: ScanConfig{
			Workers: -2,
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)

	// Error message should contain multiple issues
	errMsg := err.Error()
	assert.Contains(t, errMsg, "detect_timeout")
	assert.Contains(t, errMsg, "diff_timeout")
	assert.Contains(t, errMsg, "status_timeout")
	assert.Contains(t, errMsg, "workers")
}
