package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/changes"
	"github.com/mvp-joe/scout/internal/structure"
)

// printJSON writes v as indented JSON, the shape shared with the MCP tools.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// renderStructure prints the structure tree followed by the change summary
// and duplicate warnings.
func renderStructure(w io.Writer, res *analyzer.Result) {
	header := fmt.Sprintf("%s (%s)", res.Path, res.Language)
	if res.Changes.HasChanges() {
		header += " [git changes detected]"
	}
	fmt.Fprintln(w, header)

	type branch struct {
		label    string
		children []string
	}

	var branches []branch
	for _, cls := range res.Inventory.Classes {
		branches = append(branches, branch{"class " + cls.Name, cls.Methods})
	}
	if fns := res.Inventory.Functions(); len(fns) > 0 {
		names := make([]string, len(fns))
		for i, fn := range fns {
			names[i] = fn.Name
		}
		branches = append(branches, branch{"functions", names})
	}

	if len(branches) == 0 {
		fmt.Fprintln(w, "No classes or functions found")
		return
	}

	for i, b := range branches {
		tee, indent := "|--", "|   "
		if i == len(branches)-1 {
			tee, indent = "`--", "    "
		}
		fmt.Fprintf(w, "%s %s\n", tee, b.label)
		for j, child := range b.children {
			childTee := "|--"
			if j == len(b.children)-1 {
				childTee = "`--"
			}
			fmt.Fprintf(w, "%s%s %s\n", indent, childTee, child)
		}
	}

	renderChangeFooter(w, res.Summary())
	if len(res.Duplicates()) > 0 {
		fmt.Fprintln(w)
		renderDuplicateWarnings(w, res)
	}
}

// renderChangeFooter prints the whole-file change summary block. Nothing is
// printed for a clean file.
func renderChangeFooter(w io.Writer, s changes.Summary) {
	if !s.Any() {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Git changes:")
	if s.Added > 0 {
		fmt.Fprintf(w, "  + %d lines added\n", s.Added)
	}
	if s.Deleted > 0 {
		fmt.Fprintf(w, "  - %d lines deleted\n", s.Deleted)
	}
	if s.Modified > 0 {
		fmt.Fprintf(w, "  ~ %d lines modified\n", s.Modified)
	}
}

// renderDuplicateWarnings prints the duplicate block. Nothing is printed for
// a file without duplicates.
func renderDuplicateWarnings(w io.Writer, res *analyzer.Result) {
	dups := res.DuplicatesPayload().Duplicates
	if len(dups) == 0 {
		return
	}

	fmt.Fprintln(w, "Duplicate definitions detected:")
	for _, d := range dups {
		fmt.Fprintf(w, "  %s found %d times:\n", d.QualifiedName, d.Count)
		for _, occ := range d.Occurrences {
			if occ.Container != "" {
				fmt.Fprintf(w, "    line %d (in class %s)\n", occ.Line, occ.Container)
			} else {
				fmt.Fprintf(w, "    line %d (standalone)\n", occ.Line)
			}
		}
	}
}

// renderElement prints one element: a location header, then the source slice
// from decorators through the body end with line numbers and change markers.
func renderElement(w io.Writer, res *analyzer.Result, el structure.Element) error {
	kind, name := "Function", el.Name
	if el.Container != "" {
		kind, name = "Method", el.QualifiedName()
	}

	header := fmt.Sprintf("%s %q | lines %d-%d", kind, name, el.EffectiveStartLine()+1, el.BodyEndLine)
	if sum := res.ElementSummary(el); sum.Any() {
		header += " | changes: " + formatSummary(sum)
	}
	fmt.Fprintf(w, "%s\n\n", header)

	lines, err := res.ElementLines(el)
	if err != nil {
		return err
	}
	renderCodeLines(w, lines)
	return nil
}

// renderMatchTable prints the locations of every match before the code when
// a name matched more than one element.
func renderMatchTable(w io.Writer, res *analyzer.Result, name string, els []structure.Element) {
	fmt.Fprintf(w, "Found %d matches for %q:\n", len(els), name)
	for i, el := range els {
		location := "standalone"
		if el.Container != "" {
			location = "class " + el.Container
		}
		row := fmt.Sprintf("  #%d %s | lines %d-%d", i+1, location, el.EffectiveStartLine()+1, el.BodyEndLine)
		if res.Changes.HasChanges() {
			if sum := res.ElementSummary(el); sum.Any() {
				row += " | changes: " + formatSummary(sum)
			} else {
				row += " | no changes"
			}
		}
		fmt.Fprintln(w, row)
	}
	fmt.Fprintln(w)
}

// renderCodeLines prints numbered source lines with a one-character change
// gutter: + added, ~ modified, - deletion recorded at that line.
func renderCodeLines(w io.Writer, lines []analyzer.Line) {
	for _, ln := range lines {
		fmt.Fprintf(w, "%4d %s %s\n", ln.Number, ln.Tag.Indicator(), ln.Text)
	}
}

// formatSummary renders a change summary as compact "+n -n ~n" counters.
func formatSummary(s changes.Summary) string {
	var parts []string
	if s.Added > 0 {
		parts = append(parts, fmt.Sprintf("+%d", s.Added))
	}
	if s.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("-%d", s.Deleted))
	}
	if s.Modified > 0 {
		parts = append(parts, fmt.Sprintf("~%d", s.Modified))
	}
	return strings.Join(parts, " ")
}
