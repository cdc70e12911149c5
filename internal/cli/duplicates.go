package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/analyzer"
)

// duplicatesCmd represents the duplicates command
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <file>",
	Short: "List duplicate function and method definitions",
	Long: `Duplicates lists every function or method defined more than once under
the same qualified name, with the location of each occurrence. In Python a
later definition silently shadows the earlier one, so duplicates are usually
bugs.

Examples:
  scout duplicates app.py
  scout duplicates app.py --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDuplicates,
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeDuplicates(cmd.Context(), a, os.Stdout, args[0], jsonOut)
}

func executeDuplicates(ctx context.Context, a *analyzer.Analyzer, w io.Writer, file string, asJSON bool) error {
	res, err := a.Analyze(ctx, file)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(w, res.DuplicatesPayload())
	}

	if len(res.Duplicates()) == 0 {
		fmt.Fprintf(w, "No duplicate definitions in %s\n", res.Path)
		return nil
	}
	renderDuplicateWarnings(w, res)
	return nil
}
