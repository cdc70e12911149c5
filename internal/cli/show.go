package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/changes"
	"github.com/mvp-joe/scout/internal/structure"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <file> <name>",
	Short: "Show the source of a function or method",
	Long: `Show locates a function or method by name and prints its source with
line numbers and git change markers.

A bare name matches standalone functions and methods of any class; use
Class.method to pin the lookup to one class. When several definitions match
(duplicates, or the same method name across classes), every match is shown
behind a location table.

Examples:
  # A standalone function
  scout show app.py main

  # A method of a specific class
  scout show app.py User.save

  # All methods named save, in any class
  scout show app.py save`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeShow(cmd.Context(), a, os.Stdout, args[0], args[1], jsonOut)
}

func executeShow(ctx context.Context, a *analyzer.Analyzer, w io.Writer, file, name string, asJSON bool) error {
	res, err := a.Analyze(ctx, file)
	if err != nil {
		return err
	}

	els, err := res.FindElements(name)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(w, buildShowPayload(res, els))
	}

	if len(els) > 1 {
		renderMatchTable(w, res, name, els)
	}

	for i, el := range els {
		if len(els) > 1 {
			fmt.Fprintf(w, "=== Match #%d ===\n", i+1)
		}
		if err := renderElement(w, res, el); err != nil {
			return err
		}
		if i < len(els)-1 {
			fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("-", 50))
		}
	}
	return nil
}

// showMatch is the machine shape of one matched element with its source.
type showMatch struct {
	Name      string          `json:"name"`
	Container string          `json:"container,omitempty"`
	Kind      string          `json:"kind"`
	StartLine int             `json:"start_line"`
	EndLine   int             `json:"end_line"`
	Changes   changes.Summary `json:"changes"`
	Lines     []analyzer.Line `json:"lines"`
}

// showPayload is the machine shape of a show query.
type showPayload struct {
	File    string      `json:"file"`
	Matches []showMatch `json:"matches"`
}

func buildShowPayload(res *analyzer.Result, els []structure.Element) showPayload {
	payload := showPayload{File: res.Path, Matches: make([]showMatch, 0, len(els))}
	for _, el := range els {
		lines, _ := res.ElementLines(el)
		payload.Matches = append(payload.Matches, showMatch{
			Name:      el.Name,
			Container: el.Container,
			Kind:      el.Kind(),
			StartLine: el.EffectiveStartLine() + 1,
			EndLine:   el.BodyEndLine,
			Changes:   res.ElementSummary(el),
			Lines:     lines,
		})
	}
	return payload
}
