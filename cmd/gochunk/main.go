// Command gochunk segments numeric sequences into chunks, composes them into
// nested structures and serves the same operations as MCP tools.
package main

import (
	"os"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
