package main

import "github.com/mvp-joe/scout/internal/cli"

func main() {
	cli.Execute()
}
