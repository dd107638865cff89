package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "qlang",
	Short: "QLang interpreter",
	Long: `qlang is a Go implementation of the QLang scripting language.

QLang is a small, class-based scripting language with:
  - A fixed set of primitive types (int32, int64, float32, float64,
    short, string, bool) plus pointer-family kinds (cptr, iptr, fptr,
    bptr)
  - Single-inheritance classes with virtual/override methods,
    constructors, and operator overloading (Plus/Minus/Multiply/Divide)
  - if/elseif/else, while, and a counting for loop
  - A host-embedding surface for registering native classes and
    functions`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
