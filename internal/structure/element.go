package structure

import (
	"encoding/json"
	"sync"
)

// Element is one named definition (a function or a method) in a source file.
// Elements are immutable once extracted; a reload rebuilds the inventory from
// scratch instead of updating them.
type Element struct {
	Name            string
	Container       string // enclosing class name; empty for standalone functions
	DeclarationLine int    // 1-based line of the def keyword
	BodyEndLine     int    // 1-based inclusive last line of the body
	DecoratorLine   int    // lowest decorator line; 0 when undecorated
}

// QualifiedName returns Container.Name for methods and the bare name for
// standalone functions. Duplicate detection and lookup both key on it.
func (e Element) QualifiedName() string {
	if e.Container != "" {
		return e.Container + "." + e.Name
	}
	return e.Name
}

// EffectiveStartLine returns the line just before the definition begins,
// counting decorators as part of the definition. Line-range queries over an
// element cover [EffectiveStartLine()+1, BodyEndLine].
func (e Element) EffectiveStartLine() int {
	if e.DecoratorLine > 0 {
		return e.DecoratorLine - 1
	}
	return e.DeclarationLine - 1
}

// Kind returns "method" or "function" for display.
func (e Element) Kind() string {
	if e.Container != "" {
		return "method"
	}
	return "function"
}

func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name               string `json:"name"`
		Container          string `json:"container,omitempty"`
		QualifiedName      string `json:"qualified_name"`
		DeclarationLine    int    `json:"declaration_line"`
		BodyEndLine        int    `json:"body_end_line"`
		DecoratorLine      int    `json:"decorator_line,omitempty"`
		EffectiveStartLine int    `json:"effective_start_line"`
	}{
		Name:               e.Name,
		Container:          e.Container,
		QualifiedName:      e.QualifiedName(),
		DeclarationLine:    e.DeclarationLine,
		BodyEndLine:        e.BodyEndLine,
		DecoratorLine:      e.DecoratorLine,
		EffectiveStartLine: e.EffectiveStartLine(),
	})
}

// Class is a top-level class in the structure view. Methods holds the bare
// names of direct child methods in source order.
type Class struct {
	Name            string   `json:"name"`
	DeclarationLine int      `json:"line"`
	BodyEndLine     int      `json:"end_line"`
	Methods         []string `json:"methods"`
}

// Inventory is the ordered result of one extraction pass over a source unit.
// Elements appear in source encounter order; the inventory is read-only after
// extraction and scoped to the unit version it was built from.
type Inventory struct {
	Elements []Element
	Classes  []Class

	version uint64

	dupOnce sync.Once
	dups    []DuplicateGroup
}

// Version returns the unit parse generation this inventory was built from.
func (inv *Inventory) Version() uint64 {
	return inv.version
}

// Functions returns the standalone elements, in source order.
func (inv *Inventory) Functions() []Element {
	fns := []Element{}
	for _, el := range inv.Elements {
		if el.Container == "" {
			fns = append(fns, el)
		}
	}
	return fns
}

// DuplicateGroup is a qualified name defined more than once. Occurrences are
// indices into Inventory.Elements, in source order.
type DuplicateGroup struct {
	QualifiedName string
	Occurrences   []int
}

// Count returns the number of occurrences.
func (g DuplicateGroup) Count() int {
	return len(g.Occurrences)
}
