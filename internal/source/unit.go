package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrUnsupportedLanguage indicates a file extension with no registered grammar.
var ErrUnsupportedLanguage = errors.New("unsupported file type")

// grammar pairs a language name with its tree-sitter grammar constructor.
type grammar struct {
	name string
	lang func() *sitter.Language
}

// grammars maps file extensions to registered languages.
var grammars = map[string]grammar{
	".py": {"python", func() *sitter.Language { return sitter.NewLanguage(python.Language()) }},
	".c":  {"c", func() *sitter.Language { return sitter.NewLanguage(c.Language()) }},
	".h":  {"c", func() *sitter.Language { return sitter.NewLanguage(c.Language()) }},
}

// Supported reports whether a grammar is registered for the file's extension.
func Supported(path string) bool {
	_, ok := grammars[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LanguageFor returns the language name registered for the file's extension.
func LanguageFor(path string) (string, error) {
	g, ok := grammars[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Ext(path))
	}
	return g.name, nil
}

// ParseError reports a syntax error that prevented a file from being analyzed.
type ParseError struct {
	Path    string
	Message string
	Line    int // 1-based
	Column  int // 1-based
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// Unit owns the text and parsed tree of one source file. The two are always
// in sync: Reload swaps them together and only on a successful parse, so a
// Unit never serves a tree for text it no longer holds. Units are not safe
// for concurrent mutation.
type Unit struct {
	Path     string
	Language string

	src     []byte
	lines   []string
	tree    *sitter.Tree
	version uint64
}

// Load reads and parses the file at path.
func Load(path string) (*Unit, error) {
	g, ok := grammars[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Ext(path))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tree, perr := parse(path, src, g.lang())
	if perr != nil {
		return nil, perr
	}

	return &Unit{
		Path:     path,
		Language: g.name,
		src:      src,
		lines:    splitLines(src),
		tree:     tree,
		version:  1,
	}, nil
}

// Reload re-reads and re-parses the file. On a read or parse failure the
// previous text and tree stay in place and the version does not change.
func (u *Unit) Reload() error {
	g := grammars[strings.ToLower(filepath.Ext(u.Path))]

	src, err := os.ReadFile(u.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", u.Path, err)
	}

	tree, perr := parse(u.Path, src, g.lang())
	if perr != nil {
		return perr
	}

	if u.tree != nil {
		u.tree.Close()
	}
	u.src = src
	u.lines = splitLines(src)
	u.tree = tree
	u.version++
	return nil
}

// Close releases the parse tree. The Unit must not be used afterwards.
func (u *Unit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// Src returns the raw file content.
func (u *Unit) Src() []byte {
	return u.src
}

// Root returns the root node of the parse tree.
func (u *Unit) Root() *sitter.Node {
	return u.tree.RootNode()
}

// Lines returns the file content split into lines, without terminators.
func (u *Unit) Lines() []string {
	return u.lines
}

// LineCount returns the number of lines in the file.
func (u *Unit) LineCount() int {
	return len(u.lines)
}

// Version returns the unit's parse generation. It starts at 1 and increments
// on every successful Reload.
func (u *Unit) Version() uint64 {
	return u.version
}

// parse runs a throwaway parser over src. Tree-sitter recovers from syntax
// errors instead of failing, so a tree whose root contains error or missing
// nodes counts as a failed parse.
func parse(path string, src []byte, lang *sitter.Language) (*sitter.Tree, *ParseError) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(lang)

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, &ParseError{Path: path, Message: "parse failed", Line: 1, Column: 1}
	}

	root := tree.RootNode()
	if root.HasError() {
		perr := &ParseError{Path: path, Message: "syntax error", Line: 1, Column: 1}
		if bad := firstError(root); bad != nil {
			perr.Line = int(bad.StartPosition().Row) + 1
			perr.Column = int(bad.StartPosition().Column) + 1
			if bad.IsMissing() {
				perr.Message = fmt.Sprintf("missing %s", bad.Kind())
			}
		}
		tree.Close()
		return nil, perr
	}

	return tree, nil
}

// firstError finds the first error or missing node in document order.
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstError(node.Child(uint(i))); found != nil {
			return found
		}
	}
	return node
}

// splitLines splits src the way line counts are reported everywhere else: a
// trailing newline does not start an extra empty line.
func splitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}
	lines := strings.Split(string(src), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
