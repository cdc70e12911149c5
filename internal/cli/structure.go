package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/analyzer"
)

// structureCmd represents the structure command
var structureCmd = &cobra.Command{
	Use:   "structure <file>",
	Short: "Show the structure of a source file",
	Long: `Structure extracts classes with their methods and standalone functions
from a source file, in source order. Duplicate definitions are flagged with
every occurrence, and uncommitted git changes are summarized.

Examples:
  # Human-readable tree
  scout structure app.py

  # Machine-readable JSON
  scout structure app.py --json

  # Skip git change detection
  scout structure app.py --no-git`,
	Args: cobra.ExactArgs(1),
	RunE: runStructure,
}

func init() {
	rootCmd.AddCommand(structureCmd)
}

func runStructure(cmd *cobra.Command, args []string) error {
	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeStructure(cmd.Context(), a, os.Stdout, args[0], jsonOut)
}

func executeStructure(ctx context.Context, a *analyzer.Analyzer, w io.Writer, file string, asJSON bool) error {
	res, err := a.Analyze(ctx, file)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(w, res.StructurePayload())
	}
	renderStructure(w, res)
	return nil
}
