package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/changes"
)

// changesCmd represents the changes command
var changesCmd = &cobra.Command{
	Use:   "changes <file>",
	Short: "Show uncommitted git changes for a file",
	Long: `Changes reports the tracking state of a file and its uncommitted git
changes line by line: + added, ~ modified, - a deletion recorded at that
line. Files not yet in the index are diffed against the empty file, so
every line counts as added; files outside a git repository report no
change information.

Examples:
  scout changes app.py
  scout changes app.py --json`,
	Args: cobra.ExactArgs(1),
	RunE: runChanges,
}

func init() {
	rootCmd.AddCommand(changesCmd)
}

func runChanges(cmd *cobra.Command, args []string) error {
	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeChanges(cmd.Context(), a, os.Stdout, args[0], jsonOut)
}

func executeChanges(ctx context.Context, a *analyzer.Analyzer, w io.Writer, file string, asJSON bool) error {
	res, err := a.Analyze(ctx, file)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(w, res.ChangesPayload())
	}

	fmt.Fprintf(w, "%s: %s\n", res.Path, res.State)

	switch res.State {
	case changes.Disabled:
		fmt.Fprintln(w, "Git change detection is disabled")
		return nil
	case changes.Untracked:
		fmt.Fprintln(w, "No change information available")
		return nil
	}

	if !res.Changes.HasChanges() {
		fmt.Fprintln(w, "No uncommitted changes")
		return nil
	}

	for _, n := range res.Changes.Lines() {
		tag, _ := res.Changes.Tag(n)
		fmt.Fprintf(w, "  %s line %d (%s)\n", tag.Indicator(), n, tag)
	}
	renderChangeFooter(w, res.Summary())
	return nil
}
