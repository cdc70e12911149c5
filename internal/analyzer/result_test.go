package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/scout/internal/changes"
	"github.com/mvp-joe/scout/internal/structure"
)

// Test Plan for Result queries:
// - FindElements matches Container.name within that container only
// - FindElements bare name matches functions and methods of any class
// - FindElements splits on the first dot only
// - FindElements returns *NotFoundError when nothing matches
// - LineRange clamps start and end and annotates change tags
// - LineRange collapses an inverted range to the start line
// - LineRange rejects a start beyond the end of file
// - ElementLines covers decorators through the body end
// - ElementSummary counts changes inside the element range only
// - Payload builders produce the stable JSON shapes

func lookupResult() *Result {
	return &Result{
		Path: "app.py",
		Inventory: &structure.Inventory{
			Elements: []structure.Element{
				{Name: "__init__", Container: "User", DeclarationLine: 2, BodyEndLine: 3},
				{Name: "save", Container: "User", DeclarationLine: 5, BodyEndLine: 6},
				{Name: "save", Container: "Store", DeclarationLine: 9, BodyEndLine: 10},
				{Name: "save", DeclarationLine: 13, BodyEndLine: 14},
			},
		},
	}
}

func TestFindElements_QualifiedName(t *testing.T) {
	t.Parallel()

	// Test: Container.name matches within that container only
	res := lookupResult()

	els, err := res.FindElements("User.save")

	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, 5, els[0].DeclarationLine)
	assert.Equal(t, "User", els[0].Container)
}

func TestFindElements_BareNameCrossesContainers(t *testing.T) {
	t.Parallel()

	// Test: a bare name matches methods of any class and standalone functions
	res := lookupResult()

	els, err := res.FindElements("save")

	require.NoError(t, err)
	require.Len(t, els, 3)
	assert.Equal(t, "User", els[0].Container)
	assert.Equal(t, "Store", els[1].Container)
	assert.Equal(t, "", els[2].Container)
}

func TestFindElements_SplitsOnFirstDot(t *testing.T) {
	t.Parallel()

	// Test: "User.save.extra" looks for member "save.extra" in User
	res := lookupResult()

	_, err := res.FindElements("User.save.extra")

	assert.Error(t, err)
}

func TestFindElements_NotFound(t *testing.T) {
	t.Parallel()

	// Test: no match returns *NotFoundError carrying the queried name
	res := lookupResult()

	_, err := res.FindElements("missing")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Name)
	assert.Equal(t, "app.py", nf.Path)
	assert.Contains(t, nf.Error(), "missing")
}

func rangeResult() *Result {
	return &Result{
		Path:    "app.py",
		Lines:   []string{"one", "two", "three", "four", "five"},
		Changes: changes.Map{2: changes.Added, 4: changes.Modified},
	}
}

func TestLineRange_AnnotatesTags(t *testing.T) {
	t.Parallel()

	res := rangeResult()

	lines, err := res.LineRange(1, 3)

	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, Line{Number: 1, Text: "one"}, lines[0])
	assert.Equal(t, Line{Number: 2, Text: "two", Tag: changes.Added}, lines[1])
	assert.Equal(t, Line{Number: 3, Text: "three"}, lines[2])
}

func TestLineRange_ClampsStartAndEnd(t *testing.T) {
	t.Parallel()

	res := rangeResult()

	lines, err := res.LineRange(-10, 99)

	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, 5, lines[4].Number)
}

func TestLineRange_InvertedRangeCollapses(t *testing.T) {
	t.Parallel()

	res := rangeResult()

	lines, err := res.LineRange(3, 1)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Number)
}

func TestLineRange_StartBeyondEOF(t *testing.T) {
	t.Parallel()

	res := rangeResult()

	_, err := res.LineRange(9, 12)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "beyond the end")
}

func TestElementLines_CoversDecorators(t *testing.T) {
	t.Parallel()

	res := &Result{
		Path:  "app.py",
		Lines: []string{"import x", "@cached", "def run():", "    pass", ""},
	}
	el := structure.Element{Name: "run", DeclarationLine: 3, BodyEndLine: 4, DecoratorLine: 2}

	lines, err := res.ElementLines(el)

	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "@cached", lines[0].Text)
	assert.Equal(t, "    pass", lines[2].Text)
}

func TestElementSummary_CountsInsideRangeOnly(t *testing.T) {
	t.Parallel()

	res := &Result{
		Path:    "app.py",
		Lines:   []string{"a", "b", "c", "d", "e", "f"},
		Changes: changes.Map{1: changes.Added, 3: changes.Modified, 6: changes.Added},
	}
	el := structure.Element{Name: "run", DeclarationLine: 3, BodyEndLine: 5}

	s := res.ElementSummary(el)

	assert.Equal(t, changes.Summary{Modified: 1}, s)
	assert.True(t, s.Any())
}

func TestStructurePayload_Shape(t *testing.T) {
	t.Parallel()

	res := &Result{
		Path:     "app.py",
		Language: "python",
		Lines:    []string{"class User:", "    def save(self):", "        pass"},
		Inventory: &structure.Inventory{
			Elements: []structure.Element{
				{Name: "save", Container: "User", DeclarationLine: 2, BodyEndLine: 3},
			},
			Classes: []structure.Class{
				{Name: "User", DeclarationLine: 1, BodyEndLine: 3, Methods: []string{"save"}},
			},
		},
		Changes: changes.Map{2: changes.Modified},
		State:   changes.Tracked,
	}

	payload := res.StructurePayload()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "app.py", decoded["file"])
	assert.Equal(t, "python", decoded["language"])
	assert.Contains(t, decoded, "classes")
	assert.Contains(t, decoded, "functions")
	assert.Contains(t, decoded, "duplicates")

	ch := decoded["changes"].(map[string]any)
	assert.Equal(t, "tracked", ch["state"])
	summary := ch["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["modified"])
}

func TestDuplicatesPayload_ResolvesOccurrences(t *testing.T) {
	t.Parallel()

	res := &Result{
		Path: "app.py",
		Inventory: &structure.Inventory{
			Elements: []structure.Element{
				{Name: "save", Container: "User", DeclarationLine: 2, BodyEndLine: 3},
				{Name: "save", Container: "User", DeclarationLine: 7, BodyEndLine: 8},
				{Name: "load", DeclarationLine: 11, BodyEndLine: 12},
			},
		},
	}

	payload := res.DuplicatesPayload()
	assert.Equal(t, "app.py", payload.File)

	dups := payload.Duplicates
	require.Len(t, dups, 1)
	assert.Equal(t, "User.save", dups[0].QualifiedName)
	assert.Equal(t, 2, dups[0].Count)
	require.Len(t, dups[0].Occurrences, 2)
	assert.Equal(t, Occurrence{Line: 2, Container: "User"}, dups[0].Occurrences[0])
	assert.Equal(t, Occurrence{Line: 7, Container: "User"}, dups[0].Occurrences[1])
}

func TestChangesPayload_SortedLines(t *testing.T) {
	t.Parallel()

	res := &Result{
		Path:    "app.py",
		Lines:   []string{"a", "b", "c"},
		Changes: changes.Map{3: changes.Modified, 1: changes.Added},
		State:   changes.Tracked,
	}

	payload := res.ChangesPayload()

	assert.Equal(t, changes.Tracked, payload.State)
	require.Len(t, payload.Lines, 2)
	assert.Equal(t, LineTag{Line: 1, Tag: changes.Added}, payload.Lines[0])
	assert.Equal(t, LineTag{Line: 3, Tag: changes.Modified}, payload.Lines[1])
	assert.Equal(t, changes.Summary{Added: 1, Modified: 1}, payload.Summary)
}
