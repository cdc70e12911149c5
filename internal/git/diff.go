package git

import (
	"strconv"
	"strings"

	"github.com/mvp-joe/scout/internal/changes"
)

// parseDiff builds a change map from zero-context unified diff output.
//
// The line cursor starts at each hunk's new-file start line. An added line
// marks the cursor line and advances; a removed line marks the line now
// occupying its old position as modified without advancing, so a pure
// deletion stays visible on the surviving neighbor; a context line advances
// without marking. Later marks for the same line overwrite earlier ones.
func parseDiff(diff string) changes.Map {
	m := changes.Map{}
	cursor := 0

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			if start, ok := parseHunkStart(line); ok {
				cursor = start
			}
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			m[cursor] = changes.Added
			cursor++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			if cursor > 0 {
				m[cursor] = changes.Modified
			}
		case strings.HasPrefix(line, " "):
			cursor++
		}
	}

	return m
}

// parseHunkStart reads the new-file start line from a hunk header of the
// form "@@ -a,b +c,d @@". Malformed headers report ok=false and are skipped.
func parseHunkStart(header string) (int, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 3 {
		return 0, false
	}

	newInfo := strings.TrimPrefix(parts[2], "+")
	if i := strings.Index(newInfo, ","); i >= 0 {
		newInfo = newInfo[:i]
	}

	start, err := strconv.Atoi(newInfo)
	if err != nil {
		return 0, false
	}
	return start, true
}
