package structure

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/scout/internal/source"
)

// Extract builds the inventory for a parsed unit. Units with an unregistered
// language produce an empty inventory.
func Extract(u *source.Unit) *Inventory {
	inv := &Inventory{
		Elements: []Element{},
		Classes:  []Class{},
		version:  u.Version(),
	}

	switch u.Language {
	case "python":
		extractPython(u.Root(), u.Src(), inv)
	case "c":
		extractC(u.Root(), u.Src(), inv)
	}

	return inv
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. A false return stops descent below that node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return string(src[node.StartByte():node.EndByte()])
}
