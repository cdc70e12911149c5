// Package cli implements the scout command tree. Every command loads the
// configuration, runs an analysis, and renders either the human text view or
// the stable JSON payload.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/config"
)

var (
	cfgFile string
	verbose bool
	jsonOut bool
	noGit   bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Scout - structure extraction and change correlation for source files",
	Long: `Scout parses source files with tree-sitter, extracts their structure
(classes, methods, standalone functions), flags duplicate definitions, and
correlates every line with uncommitted git changes.

Supported languages: Python and C.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .scout/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON instead of text")
	rootCmd.PersistentFlags().BoolVar(&noGit, "no-git", false, "disable git change detection")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and non-error output")
}

// loadCLIConfig loads the scout configuration honoring the global flags.
func loadCLIConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)
	}

	if noGit {
		cfg.Git.Enabled = false
	}
	return cfg, nil
}

// newAnalyzer builds an analyzer from the effective configuration. The
// caller owns the returned analyzer and must Close it.
func newAnalyzer() (*analyzer.Analyzer, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, err
	}
	a, err := analyzer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}
	return a, nil
}
