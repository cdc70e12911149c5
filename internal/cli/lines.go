package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/analyzer"
)

// linesCmd represents the lines command
var linesCmd = &cobra.Command{
	Use:   "lines <file> <start> [<end>]",
	Short: "Show a line range of a source file",
	Long: `Lines prints an inclusive line range with line numbers and git change
markers. The range is clamped to the file: a start below 1 moves to 1, an
end past the last line stops there, and an inverted range collapses to the
start line alone.

Examples:
  # A single line
  scout lines app.py 20

  # An inclusive range
  scout lines app.py 20 35`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)
}

func runLines(cmd *cobra.Command, args []string) error {
	start, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid start line %q", args[1])
	}
	end := start
	if len(args) == 3 {
		end, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid end line %q", args[2])
		}
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeLines(cmd.Context(), a, os.Stdout, args[0], start, end, jsonOut)
}

func executeLines(ctx context.Context, a *analyzer.Analyzer, w io.Writer, file string, start, end int, asJSON bool) error {
	res, err := a.Analyze(ctx, file)
	if err != nil {
		return err
	}

	lines, err := res.LineRange(start, end)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(w, linesPayload{File: res.Path, Lines: lines})
	}
	renderCodeLines(w, lines)
	return nil
}

// linesPayload is the machine shape of a line-range query.
type linesPayload struct {
	File  string          `json:"file"`
	Lines []analyzer.Line `json:"lines"`
}
