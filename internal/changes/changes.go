// Package changes holds the per-line change classification produced by the
// change tracker and the summaries derived from it.
package changes

import "sort"

// Tag classifies one line of the current file content.
type Tag string

const (
	Added    Tag = "added"
	Deleted  Tag = "deleted"
	Modified Tag = "modified"
)

// Indicator returns the single-character gutter marker for the tag.
func (t Tag) Indicator() string {
	switch t {
	case Added:
		return "+"
	case Deleted:
		return "-"
	case Modified:
		return "~"
	default:
		return " "
	}
}

// State is the terminal state of change tracking for one file.
type State string

const (
	// Untracked means no change information is available: the file is not
	// in a repository, the tool is missing, or every query failed.
	Untracked State = "untracked"

	// Tracked means a line-level diff was obtained and parsed.
	Tracked State = "tracked"

	// TrackedCoarse means only a status query succeeded; the whole file is
	// marked modified as a conservative signal.
	TrackedCoarse State = "tracked-coarse"

	// Disabled means change tracking was turned off by flag or config.
	Disabled State = "disabled"
)

// Map records change tags for 1-based line numbers in the current file
// content. Lines with no entry are unchanged. A Map is read-only after
// construction.
type Map map[int]Tag

// NewCoarse returns a Map with every line from 1 to lineCount marked
// Modified.
func NewCoarse(lineCount int) Map {
	m := make(Map, lineCount)
	for i := 1; i <= lineCount; i++ {
		m[i] = Modified
	}
	return m
}

// Tag returns the tag for a line and whether the line is marked.
func (m Map) Tag(line int) (Tag, bool) {
	t, ok := m[line]
	return t, ok
}

// Indicator returns the gutter marker for a line, a space when unchanged.
func (m Map) Indicator(line int) string {
	if t, ok := m[line]; ok {
		return t.Indicator()
	}
	return " "
}

// HasChanges reports whether any line is marked.
func (m Map) HasChanges() bool {
	return len(m) > 0
}

// Lines returns the marked line numbers in ascending order.
func (m Map) Lines() []int {
	lines := make([]int, 0, len(m))
	for n := range m {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}

// Summarize folds the map over the inclusive line range [from, to] and
// counts each tag found there.
func (m Map) Summarize(from, to int) Summary {
	var s Summary
	for line := from; line <= to; line++ {
		tag, ok := m[line]
		if !ok {
			continue
		}
		switch tag {
		case Added:
			s.Added++
		case Deleted:
			s.Deleted++
		case Modified:
			s.Modified++
		}
	}
	return s
}

// Total counts every marked line in the map regardless of range.
func (m Map) Total() Summary {
	var s Summary
	for _, tag := range m {
		switch tag {
		case Added:
			s.Added++
		case Deleted:
			s.Deleted++
		case Modified:
			s.Modified++
		}
	}
	return s
}

// Summary counts the change tags found in a line range.
type Summary struct {
	Added    int `json:"added"`
	Deleted  int `json:"deleted"`
	Modified int `json:"modified"`
}

// Any reports whether the summary contains at least one change.
func (s Summary) Any() bool {
	return s.Added > 0 || s.Deleted > 0 || s.Modified > 0
}
