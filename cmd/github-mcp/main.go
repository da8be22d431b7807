package main

import (
	"github.com/vietddude/github-mcp/internal/cli"
)

func main() {
	cli.Execute()
}
