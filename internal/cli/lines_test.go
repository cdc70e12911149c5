package cli

// Test Plan for Lines Command:
// - executeLines prints the inclusive range with the numbered gutter
// - executeLines clamps a range that spills past the file
// - executeLines collapses an inverted range to the start line
// - executeLines fails when the start is past the last line
// - executeLines marks changed lines in the gutter
// - executeLines --json emits the line payload
// - runLines rejects non-numeric start and end arguments

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linesSample = "a = 1\nb = 2\nc = 3\nd = 4\n"

func TestExecuteLines_Range(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "app.py", linesSample)

	var buf bytes.Buffer
	err := executeLines(context.Background(), a, &buf, path, 2, 3, false)
	require.NoError(t, err)

	assert.Equal(t, "   2   b = 2\n   3   c = 3\n", buf.String())
}

func TestExecuteLines_ClampsToFile(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "app.py", linesSample)

	var buf bytes.Buffer
	err := executeLines(context.Background(), a, &buf, path, -5, 99, false)
	require.NoError(t, err)

	want := "   1   a = 1\n   2   b = 2\n   3   c = 3\n   4   d = 4\n"
	assert.Equal(t, want, buf.String())
}

func TestExecuteLines_InvertedRangeCollapses(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "app.py", linesSample)

	var buf bytes.Buffer
	err := executeLines(context.Background(), a, &buf, path, 3, 1, false)
	require.NoError(t, err)

	assert.Equal(t, "   3   c = 3\n", buf.String())
}

func TestExecuteLines_StartBeyondFile(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "app.py", linesSample)

	var buf bytes.Buffer
	err := executeLines(context.Background(), a, &buf, path, 99, 100, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 99 is beyond the end of")
}

func TestExecuteLines_ChangeMarkers(t *testing.T) {
	a, ops := newTestAnalyzer(t)
	ops.Worktree = "@@ -0,0 +1,1 @@\n+a = 1\n"
	path := writeSource(t, "app.py", linesSample)

	var buf bytes.Buffer
	err := executeLines(context.Background(), a, &buf, path, 1, 2, false)
	require.NoError(t, err)

	assert.Equal(t, "   1 + a = 1\n   2   b = 2\n", buf.String())
}

func TestExecuteLines_JSON(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "app.py", linesSample)

	var buf bytes.Buffer
	require.NoError(t, executeLines(context.Background(), a, &buf, path, 1, 2, true))

	var payload linesPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, path, payload.File)
	require.Len(t, payload.Lines, 2)
	assert.Equal(t, 1, payload.Lines[0].Number)
	assert.Equal(t, "a = 1", payload.Lines[0].Text)
}

func TestRunLines_InvalidArguments(t *testing.T) {
	err := runLines(linesCmd, []string{"app.py", "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid start line "abc"`)

	err = runLines(linesCmd, []string{"app.py", "1", "xyz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid end line "xyz"`)
}
