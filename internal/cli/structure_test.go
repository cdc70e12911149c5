package cli

// Test Plan for Structure Command:
// - executeStructure renders the class/method tree with a functions group
// - executeStructure marks the header and appends the summary when git changes exist
// - executeStructure prints the empty message for a file without definitions
// - executeStructure appends duplicate warnings after the tree
// - executeStructure --json emits the stable structure payload
// - executeStructure propagates analysis failures

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/changes"
)

const structureSample = `class User:
    def save(self):
        pass

def run():
    pass
`

func TestExecuteStructure_RendersTree(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "app.py", structureSample)

	var buf bytes.Buffer
	err := executeStructure(context.Background(), a, &buf, path, false)
	require.NoError(t, err)

	want := path + " (python)\n" +
		"|-- class User\n" +
		"|   `-- save\n" +
		"`-- functions\n" +
		"    `-- run\n"
	assert.Equal(t, want, buf.String())
}

func TestExecuteStructure_MarksGitChanges(t *testing.T) {
	a, ops := newTestAnalyzer(t)
	ops.Worktree = "@@ -0,0 +1,2 @@\n+x = 1\n+y = 2\n"
	path := writeSource(t, "app.py", structureSample)

	var buf bytes.Buffer
	require.NoError(t, executeStructure(context.Background(), a, &buf, path, false))

	out := buf.String()
	assert.Contains(t, out, "[git changes detected]")
	assert.Contains(t, out, "Git changes:")
	assert.Contains(t, out, "  + 2 lines added")
	assert.NotContains(t, out, "lines deleted")
	assert.NotContains(t, out, "lines modified")
}

func TestExecuteStructure_NoDefinitions(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "empty.py", "x = 1\n")

	var buf bytes.Buffer
	require.NoError(t, executeStructure(context.Background(), a, &buf, path, false))

	want := path + " (python)\nNo classes or functions found\n"
	assert.Equal(t, want, buf.String())
}

func TestExecuteStructure_DuplicateWarnings(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "dup.py", "def run():\n    pass\n\ndef run():\n    pass\n")

	var buf bytes.Buffer
	require.NoError(t, executeStructure(context.Background(), a, &buf, path, false))

	want := path + " (python)\n" +
		"`-- functions\n" +
		"    |-- run\n" +
		"    `-- run\n" +
		"\n" +
		"Duplicate definitions detected:\n" +
		"  run found 2 times:\n" +
		"    line 1 (standalone)\n" +
		"    line 4 (standalone)\n"
	assert.Equal(t, want, buf.String())
}

func TestExecuteStructure_JSON(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	path := writeSource(t, "app.py", structureSample)

	var buf bytes.Buffer
	require.NoError(t, executeStructure(context.Background(), a, &buf, path, true))

	var payload analyzer.StructurePayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, path, payload.File)
	assert.Equal(t, "python", payload.Language)
	require.Len(t, payload.Classes, 1)
	assert.Equal(t, "User", payload.Classes[0].Name)
	assert.Equal(t, []string{"save"}, payload.Classes[0].Methods)
	require.Len(t, payload.Functions, 1)
	assert.Equal(t, "run", payload.Functions[0].Name)
	assert.Empty(t, payload.Duplicates)
	assert.Equal(t, changes.Tracked, payload.Changes.State)
}

func TestExecuteStructure_AnalysisError(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	missing := filepath.Join(t.TempDir(), "gone.py")

	var buf bytes.Buffer
	err := executeStructure(context.Background(), a, &buf, missing, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.py")
}
