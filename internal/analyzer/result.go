package analyzer

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/scout/internal/changes"
	"github.com/mvp-joe/scout/internal/structure"
)

// Result is the read-only outcome of one analysis pass over one file.
type Result struct {
	Path      string
	Language  string
	Lines     []string
	Inventory *structure.Inventory
	Changes   changes.Map
	State     changes.State
}

// LineCount returns the number of lines in the analyzed content.
func (r *Result) LineCount() int {
	return len(r.Lines)
}

// Duplicates returns the duplicate groups found in the inventory.
func (r *Result) Duplicates() []structure.DuplicateGroup {
	return r.Inventory.Duplicates()
}

// Summary counts every tracked change in the file.
func (r *Result) Summary() changes.Summary {
	return r.Changes.Total()
}

// NotFoundError reports a name lookup that matched no element.
type NotFoundError struct {
	Name string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no function or method %q in %s", e.Name, e.Path)
}

// FindElements returns the elements matching name, in source order.
// "Container.name" splits on the first dot and matches methods of that
// container; a bare name matches standalone functions and methods of any
// class. Returns *NotFoundError when nothing matches.
func (r *Result) FindElements(name string) ([]structure.Element, error) {
	container, member, qualified := strings.Cut(name, ".")

	var matches []structure.Element
	for _, el := range r.Inventory.Elements {
		switch {
		case qualified:
			if el.Container == container && el.Name == member {
				matches = append(matches, el)
			}
		case el.Name == name:
			matches = append(matches, el)
		}
	}

	if len(matches) == 0 {
		return nil, &NotFoundError{Name: name, Path: r.Path}
	}
	return matches, nil
}

// Line is one source line selected by a range query, annotated with its
// change tag. A zero tag means the line is unchanged.
type Line struct {
	Number int         `json:"line"`
	Text   string      `json:"text"`
	Tag    changes.Tag `json:"tag,omitempty"`
}

// LineRange returns the lines in the inclusive range [start, end]. Start
// clamps to 1 and end to the file length; an inverted range collapses to the
// start line alone. A start beyond the end of the file is an error.
func (r *Result) LineRange(start, end int) ([]Line, error) {
	if start < 1 {
		start = 1
	}
	if start > len(r.Lines) {
		return nil, fmt.Errorf("line %d is beyond the end of %s (%d lines)", start, r.Path, len(r.Lines))
	}
	if end > len(r.Lines) {
		end = len(r.Lines)
	}
	if end < start {
		end = start
	}

	lines := make([]Line, 0, end-start+1)
	for n := start; n <= end; n++ {
		tag, _ := r.Changes.Tag(n)
		lines = append(lines, Line{Number: n, Text: r.Lines[n-1], Tag: tag})
	}
	return lines, nil
}

// ElementLines returns the display slice for one element: decorators (when
// present) through the last body line.
func (r *Result) ElementLines(el structure.Element) ([]Line, error) {
	return r.LineRange(el.EffectiveStartLine()+1, el.BodyEndLine)
}

// ElementSummary counts the changes within one element's display range.
func (r *Result) ElementSummary(el structure.Element) changes.Summary {
	return r.Changes.Summarize(el.EffectiveStartLine()+1, el.BodyEndLine)
}
