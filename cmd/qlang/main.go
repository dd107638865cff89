// Command qlang is the QLang interpreter CLI: run, parse, lex, check,
// and version subcommands over cmd/qlang/cmd's cobra command tree.
package main

import (
	"os"

	"github.com/StarSignalAnt/qlang/cmd/qlang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
