package structure

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractC collects function definitions and named struct definitions. C has
// no containers or decorators, so every function is standalone. Preprocessor
// conditionals are transparent; function bodies are not, so local structs and
// nested definitions stay invisible.
func extractC(root *sitter.Node, src []byte, inv *Inventory) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			visitCFunction(n, src, inv)
			return false
		case "struct_specifier":
			visitCStruct(n, src, inv)
			return false
		}
		return true
	})
}

func visitCFunction(node *sitter.Node, src []byte, inv *Inventory) {
	name := cDeclaratorName(node.ChildByFieldName("declarator"), src)
	if name == "" {
		return
	}

	inv.Elements = append(inv.Elements, Element{
		Name:            name,
		DeclarationLine: int(node.StartPosition().Row) + 1,
		BodyEndLine:     int(node.EndPosition().Row) + 1,
	})
}

// visitCStruct records a named struct definition as a class with no methods.
// A struct_specifier without a body is a type reference, not a definition.
func visitCStruct(node *sitter.Node, src []byte, inv *Inventory) {
	name := nodeText(node.ChildByFieldName("name"), src)
	if name == "" || node.ChildByFieldName("body") == nil {
		return
	}

	inv.Classes = append(inv.Classes, Class{
		Name:            name,
		DeclarationLine: int(node.StartPosition().Row) + 1,
		BodyEndLine:     int(node.EndPosition().Row) + 1,
		Methods:         []string{},
	})
}

// cDeclaratorName recursively finds the function name in a declarator, which
// might be nested in pointer_declarator nodes.
func cDeclaratorName(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "identifier":
		return nodeText(node, src)
	case "function_declarator", "pointer_declarator":
		return cDeclaratorName(node.ChildByFieldName("declarator"), src)
	default:
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(uint(i))
			if child.Kind() == "identifier" {
				return nodeText(child, src)
			}
		}
	}

	return ""
}
