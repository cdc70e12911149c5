package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/scan"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Analyze every source file under a directory",
	Long: `Scan discovers source files under a root directory with the configured
include and ignore patterns, analyzes them across a worker pool, and prints
a per-file report. A file that fails to parse is reported and does not
abort the scan.

Examples:
  # Scan the current directory
  scout scan

  # Scan a specific tree
  scout scan ./src

  # Machine-readable report
  scout scan ./src --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", root, err)
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	var reporter scan.ProgressReporter = &scan.NoOpProgressReporter{}
	if !quiet && !jsonOut {
		reporter = NewCLIProgressReporter(quiet)
	}

	s := scan.New(cfg, a)
	report, err := s.Scan(cmd.Context(), root, reporter)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(os.Stdout, report)
	}
	renderScanReport(os.Stdout, report, quiet)
	return nil
}

// renderScanReport prints per-file rows and the scan totals. In quiet mode
// only failures are printed.
func renderScanReport(w io.Writer, report *scan.Report, quietMode bool) {
	for _, f := range report.Files {
		path := f.Path
		if rel, err := filepath.Rel(report.Root, f.Path); err == nil {
			path = rel
		}

		if f.Error != "" {
			fmt.Fprintf(w, "%s: error: %s\n", path, f.Error)
			continue
		}
		if quietMode {
			continue
		}
		fmt.Fprintf(w, "%s: %s, %d elements, %d classes, %d duplicates, %s\n",
			path, f.Language, f.Elements, f.Classes, f.Duplicates, f.ChangeState)
	}

	if !quietMode {
		duration := time.Duration(report.DurationMS) * time.Millisecond
		fmt.Fprintf(w, "\nScanned %d files, %d failed in %s\n", report.Scanned, report.Failed, duration)
	}
}
