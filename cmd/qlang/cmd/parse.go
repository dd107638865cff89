package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/lexer"
	"github.com/StarSignalAnt/qlang/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpression bool
	parseDumpAST    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse QLang source code and display the AST",
	Long: `Parse QLang source code and display the Abstract Syntax Tree (AST).

If no file is provided, reads from stdin.
Use -e to parse a single expression from the command line.
Use --dump-ast to show the full AST structure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	var input string

	if parseExpression {
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	} else if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	toks := lexer.New(input).Tokenize()
	collector := errors.NewCollector()
	collector.SetSource(input)
	program := parser.New(toks, collector).Parse()

	if collector.HasErrors() {
		fmt.Fprintln(os.Stderr, collector.List(errors.ListOptions{}))
		return fmt.Errorf("parsing failed with %d error(s)", collector.ErrorCount())
	}

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		dumpASTNode(program, 0)
	} else {
		fmt.Println(program.String())
	}

	return nil
}

// dumpASTNode recursively prints node, indented by depth. QLang's AST
// has no binary/unary-expression or literal node types of its own - an
// expression is always a flat *ast.Expr token run (see ast.go's header
// comment) - so the leaf case below prints the expression's rendered
// source rather than walking a tree that doesn't exist.
func dumpASTNode(node ast.Node, indent int) {
	pad := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d imports, %d classes)\n", pad, len(n.Imports), len(n.Classes))
		for _, c := range n.Classes {
			dumpASTNode(c, indent+1)
		}
		if n.Body != nil {
			dumpASTNode(n.Body, indent+1)
		}
	case *ast.ClassDecl:
		parent := n.Parent
		if parent == "" {
			parent = "-"
		}
		fmt.Printf("%sClassDecl %s (parent=%s, %d members, %d methods)\n", pad, n.Name, parent, len(n.Members), len(n.Methods))
		for _, m := range n.Members {
			fmt.Printf("%s  FieldDecl %s %s\n", pad, m.Kind, m.Name)
		}
		for _, m := range n.Methods {
			dumpASTNode(m, indent+1)
		}
	case *ast.MethodDecl:
		ret := n.ReturnTypeKind
		if ret == "" {
			ret = "void"
		}
		fmt.Printf("%sMethodDecl %s -> %s (%d params)\n", pad, n.Name, ret, len(n.Params))
		if n.Body != nil {
			dumpASTNode(n.Body, indent+1)
		}
	case *ast.BlockStatement:
		fmt.Printf("%sBlockStatement (%d statements)\n", pad, len(n.Statements))
		for _, s := range n.Statements {
			dumpASTNode(s, indent+1)
		}
	case *ast.VarDeclStatement:
		fmt.Printf("%sVarDeclStatement %s %s = %s\n", pad, n.Kind, n.Name, exprString(n.Initializer))
	case *ast.AssignStatement:
		fmt.Printf("%sAssignStatement %s = %s\n", pad, n.Name, exprString(n.Value))
	case *ast.MemberAssignStatement:
		fmt.Printf("%sMemberAssignStatement %s.%s = %s\n", pad, strings.Join(n.Path, "."), n.Field, exprString(n.Value))
	case *ast.IndexAssignStatement:
		fmt.Printf("%sIndexAssignStatement %s[%s] = %s\n", pad, n.Name, exprString(n.Index), exprString(n.Value))
	case *ast.IncrementStatement:
		fmt.Printf("%sIncrementStatement %s%s\n", pad, n.Name, n.Op)
	case *ast.MethodCallStatement:
		fmt.Printf("%sMethodCallStatement %s%s(%d args)\n", pad, pathPrefix(n.Path), n.Method, len(n.Args))
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement %s\n", pad, exprString(n.Value))
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement cond=%s\n", pad, exprString(n.Condition))
		dumpASTNode(n.Then, indent+1)
		for _, ei := range n.ElseIfs {
			fmt.Printf("%sElseIf cond=%s\n", pad, exprString(ei.Condition))
			dumpASTNode(ei.Body, indent+1)
		}
		if n.Else != nil {
			fmt.Printf("%sElse\n", pad)
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.WhileStatement:
		fmt.Printf("%sWhileStatement cond=%s\n", pad, exprString(n.Condition))
		dumpASTNode(n.Body, indent+1)
	case *ast.ForStatement:
		fmt.Printf("%sForStatement %s = %s to %s\n", pad, n.Name, exprString(n.Start), exprString(n.End))
		dumpASTNode(n.Body, indent+1)
	case *ast.Expr:
		fmt.Printf("%sExpr: %s\n", pad, n.String())
	default:
		fmt.Printf("%s%T: %s\n", pad, node, node.String())
	}
}

func exprString(e ast.Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func pathPrefix(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return strings.Join(path, ".") + "."
}
