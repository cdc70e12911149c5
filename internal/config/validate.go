package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTimeout indicates a non-positive git timeout
	ErrInvalidTimeout = errors.New("invalid git timeout")

	// ErrInvalidWorkers indicates a negative scan worker count
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Git.DetectTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: detect_timeout must be positive, got %s", ErrInvalidTimeout, cfg.Git.DetectTimeout))
	}
	if cfg.Git.DiffTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: diff_timeout must be positive, got %s", ErrInvalidTimeout, cfg.Git.DiffTimeout))
	}
	if cfg.Git.StatusTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: status_timeout must be positive, got %s", ErrInvalidTimeout, cfg.Git.StatusTimeout))
	}

	// Workers may be zero (one per CPU); only negative values are rejected.
	if cfg.Scan.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Scan.Workers))
	}

	// Path patterns are validated lazily: the scanner reports bad globs when
	// it compiles them.

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
