package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/scout/internal/source"
)

// debug-parse dumps the tree-sitter parse tree of one source file, node
// kinds with 1-based line spans. Handy when checking the extraction policy
// against what the grammar actually produces.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: debug-parse <file>")
		os.Exit(2)
	}

	unit, err := source.Load(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer unit.Close()

	fmt.Printf("%s (%s)\n", unit.Path, unit.Language)
	dump(unit.Root(), unit.Src(), 0)
}

func dump(node *sitter.Node, src []byte, depth int) {
	if node == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s [%d-%d]", indent, node.Kind(), node.StartPosition().Row+1, node.EndPosition().Row+1)
	if node.ChildCount() == 0 {
		text := string(src[node.StartByte():node.EndByte()])
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		fmt.Printf(" %q", text)
	}
	fmt.Println()

	for i := 0; i < int(node.ChildCount()); i++ {
		dump(node.Child(uint(i)), src, depth+1)
	}
}
