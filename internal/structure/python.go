package structure

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// pyContext is the walk state handed down to definition visits. It travels
// by value so a class's context never leaks to sibling subtrees.
type pyContext struct {
	container string // enclosing class name; empty outside any class
	class     *Class // method-name accumulator for the enclosing class
}

// extractPython walks the tree collecting functions and classes. Descent
// stops at every definition: function bodies hide everything inside them and
// a class consumes its own direct children, so qualification never goes
// deeper than container.name. Control flow (if/try/with blocks) is
// transparent, matching how the reference grammar nests module statements.
func extractPython(root *sitter.Node, src []byte, inv *Inventory) {
	v := &pyVisitor{src: src, inv: inv}
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "decorated_definition", "function_definition", "class_definition":
			v.visitDefinition(n, pyContext{})
			return false
		}
		return true
	})
}

type pyVisitor struct {
	src []byte
	inv *Inventory
}

// visitDefinition records one definition statement. A decorated_definition
// wrapper is transparent: the lowest decorator line is carried onto the inner
// definition. async def parses as a plain function_definition.
func (v *pyVisitor) visitDefinition(node *sitter.Node, ctx pyContext) {
	node, decoratorLine := unwrapDecorated(node)
	if node == nil {
		return
	}

	switch node.Kind() {
	case "function_definition":
		name := nodeText(node.ChildByFieldName("name"), v.src)
		if name == "" {
			return
		}
		if ctx.class != nil {
			ctx.class.Methods = append(ctx.class.Methods, name)
		}
		v.inv.Elements = append(v.inv.Elements, Element{
			Name:            name,
			Container:       ctx.container,
			DeclarationLine: int(node.StartPosition().Row) + 1,
			BodyEndLine:     int(node.EndPosition().Row) + 1,
			DecoratorLine:   decoratorLine,
		})

	case "class_definition":
		if ctx.container != "" {
			return // classes nested in classes are invisible
		}
		v.visitClass(node)
	}
}

// visitClass records a class and the methods that are direct children of its
// body. Definitions any deeper, including defs inside conditionals within
// the body, are invisible.
func (v *pyVisitor) visitClass(node *sitter.Node) {
	name := nodeText(node.ChildByFieldName("name"), v.src)
	if name == "" {
		return
	}

	cls := &Class{
		Name:            name,
		DeclarationLine: int(node.StartPosition().Row) + 1,
		BodyEndLine:     int(node.EndPosition().Row) + 1,
		Methods:         []string{},
	}
	ctx := pyContext{container: name, class: cls}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			v.visitDefinition(body.Child(uint(i)), ctx)
		}
	}

	v.inv.Classes = append(v.inv.Classes, *cls)
}

// unwrapDecorated resolves a decorated_definition to its inner definition and
// the lowest decorator start line. Other nodes pass through with line 0.
func unwrapDecorated(node *sitter.Node) (*sitter.Node, int) {
	if node.Kind() != "decorated_definition" {
		return node, 0
	}

	line := 0
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "decorator" {
			continue
		}
		start := int(child.StartPosition().Row) + 1
		if line == 0 || start < line {
			line = start
		}
	}

	return node.ChildByFieldName("definition"), line
}
