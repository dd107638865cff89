// Package interp implements QLang's C11 component: the tree-walking
// evaluator that executes a parsed ast.Program against a runtime.Environment
// and runtime.Registry.
//
// Grounded on original_source/QLang/QRunner.h's QRunner class, which this
// package ports method-for-method (Run, ExecuteCode/ExecuteNode,
// ExecuteVariableDecl, ExecuteInstanceDecl, ExecuteMethodCall, ExecuteAssign,
// ExecuteMemberAssign, ExecuteIf, ExecuteFor, ExecuteWhile, ExecuteReturn,
// ExecuteIncrement, ExecuteMethod, CreateInstance, FindMethod/
// FindMethodInternal/CheckTypeMatch, EvaluateExpression's Shunting-Yard
// pipeline). Where QRunner.h dynamic_pointer_casts over a QNode hierarchy,
// this package type-switches over ast.Statement, since this repository's
// parser already produces concretely-typed nodes (ast.VarDeclStatement
// collapses QVariableDecl/QInstanceDecl, see internal/parser/statements.go's
// parseVarDecl doc comment).
package interp

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/runtime"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// maxWhileIterations is QRunner::ExecuteWhile's safety limit against a
// runaway loop; QLang has no break/continue, so a malformed condition is
// otherwise unrecoverable.
const maxWhileIterations = 1_000_000

// Evaluator is QLang's C11 component. It owns the single mutable "current
// context" pointer QRunner.h calls m_Context, swapped in and out around
// method calls rather than threaded as a parameter, to keep the same frame
// model as the original.
type Evaluator struct {
	Registry  *runtime.Registry
	Collector *errors.Collector
	CallStack *errors.CallStack

	env         *runtime.Environment
	hasReturn   bool
	returnValue runtime.Value
}

// New creates an Evaluator with a fresh global scope, registry and call
// stack, reporting diagnostics into collector.
func New(collector *errors.Collector) *Evaluator {
	return &Evaluator{
		Registry:  runtime.NewRegistry(),
		Collector: collector,
		CallStack: errors.NewCallStack(),
		env:       runtime.NewEnvironment("global"),
	}
}

// Env returns the active scope, exposed for cmd/qlang's REPL/introspection
// use (QRunner::GetContext's equivalent).
func (e *Evaluator) Env() *runtime.Environment { return e.env }

// RegisterNative installs a host builtin into the global scope.
func (e *Evaluator) RegisterNative(name string, fn runtime.NativeFunction) {
	e.env.RegisterNative(name, fn)
}

// Run registers every class declaration, then executes the program's
// top-level block, matching QRunner::Run.
func (e *Evaluator) Run(program *ast.Program) {
	for _, cls := range program.Classes {
		e.Registry.Register(cls)
	}
	e.executeBlock(program.Body)
}

// FindVar / SetVar / HasVar mirror QRunner's introspection API.
func (e *Evaluator) FindVar(name string) (runtime.Value, bool) { return e.env.Get(name) }
func (e *Evaluator) SetVar(name string, v runtime.Value)       { e.env.Define(name, v) }
func (e *Evaluator) HasVar(name string) bool                   { return e.env.Has(name) }

// runtimeError reports msg through the diagnostic collector (with the
// current call stack trace appended, per QError::ReportRuntimeError) and
// returns a runtime.Error carrier value for the caller to propagate.
func (e *Evaluator) runtimeError(format string, args ...any) runtime.Value {
	err := runtime.NewError(format, args...)
	e.Collector.ReportRuntime(err.Message, e.CallStack, token.Position{}, 0)
	return err
}

// executeBlock runs a statement list in order, stopping early once a return
// has been recorded (QRunner::ExecuteCode).
func (e *Evaluator) executeBlock(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		e.executeStatement(stmt)
		if e.hasReturn {
			return
		}
	}
}

// executeStatement dispatches one statement, mirroring QRunner::ExecuteNode's
// dynamic_pointer_cast chain as a Go type switch.
func (e *Evaluator) executeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		e.executeVarDecl(s)
	case *ast.AssignStatement:
		e.executeAssign(s)
	case *ast.IndexAssignStatement:
		e.executeIndexAssign(s)
	case *ast.MemberAssignStatement:
		e.executeMemberAssign(s)
	case *ast.MethodCallStatement:
		e.executeMethodCallStatement(s)
	case *ast.ReturnStatement:
		e.executeReturn(s)
	case *ast.IfStatement:
		e.executeIf(s)
	case *ast.ForStatement:
		e.executeFor(s)
	case *ast.WhileStatement:
		e.executeWhile(s)
	case *ast.IncrementStatement:
		e.executeIncrement(s)
	default:
		e.Collector.Report(errors.Error, "internal: unknown statement node", stmt.Pos(), 0, "runtime", e.CallStack.CurrentContext())
	}
}
