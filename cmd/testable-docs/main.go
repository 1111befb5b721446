package main

import "github.com/mvp-joe/testable-docs/internal/cli"

func main() {
	cli.Execute()
}
