package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/StarSignalAnt/qlang/internal/config"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/interp"
	"github.com/StarSignalAnt/qlang/internal/lexer"
	"github.com/StarSignalAnt/qlang/internal/parser"
	"github.com/StarSignalAnt/qlang/internal/runtime"
	"github.com/spf13/cobra"
)

const projectConfigFile = ".qlang.yaml"

var (
	evalExpr  string
	dumpAST   bool
	trace     bool
	typeCheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a QLang file or expression",
	Long: `Execute a QLang program from a file or inline expression.

Examples:
  # Run a script file
  qlang run script.ql

  # Evaluate inline code
  qlang run -e "int32 x = 1 + 2;"

  # Run with AST dump (for debugging)
  qlang run --dump-ast script.ql

  # Run with execution trace
  qlang run --trace script.ql`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
	runCmd.Flags().BoolVar(&typeCheck, "type-check", true, "validate the program before execution (default: true)")
}

func runScript(cmd *cobra.Command, args []string) error {
	var input string
	var filename string

	if evalExpr != "" {
		input = evalExpr
		filename = "<eval>"
	} else if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	proj, err := config.Load(projectConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", projectConfigFile, err)
	}
	if !cmd.Flags().Changed("type-check") {
		typeCheck = proj.TypeCheck
	}

	toks := lexer.New(input).Tokenize()
	collector := errors.NewCollector()
	collector.SetSource(input)
	program := parser.New(toks, collector).Parse()

	if collector.HasErrors() {
		fmt.Fprint(os.Stderr, collector.List(errors.ListOptions{}))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", collector.ErrorCount())
	}

	if typeCheck {
		validator := interp.NewValidator(collector)
		validator.RegisterKnownClasses(proj.KnownClasses)
		validator.Validate(program)
		if collector.HasErrors() {
			fmt.Fprint(os.Stderr, collector.List(errors.ListOptions{}))
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("validation failed with %d error(s)", collector.ErrorCount())
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Type checking disabled (--type-check=false)")
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[Trace mode enabled - executing %s]\n", filename)
	}

	evaluator := interp.New(collector)
	registerStdNatives(evaluator)
	evaluator.Run(program)

	if collector.HasAnyIssues() {
		fmt.Fprint(os.Stderr, collector.List(errors.ListOptions{}))
	}
	if collector.HasErrors() {
		return fmt.Errorf("execution failed")
	}

	return nil
}

// registerStdNatives installs the small set of host builtins that
// spec.md §8's example scenarios assume a console-embedding host
// provides (e.g. S1's `Log(a, b);`). Neither go-dws's interpreter core
// nor original_source/QLang/*.{h,cpp} define a built-in Log - natives
// are purely a host-embedding mechanism (RegisterNative) per spec.md
// §6 - so `qlang run` plays the role of that embedding host, the same
// way a game engine embedding QLang would register its own natives
// before calling Run.
func registerStdNatives(e *interp.Evaluator) {
	e.RegisterNative("Log", func(args []runtime.Value) runtime.Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fmt.Println(strings.Join(parts, " "))
		return runtime.NullValue
	})
}
