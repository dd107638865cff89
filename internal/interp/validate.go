package interp

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// Validator is QLang's C7: a semantic pass over a parsed *ast.Program
// that runs before evaluation, grounded on
// _examples/original_source/QLang/QValidator.{h,cpp}. It checks parent
// classes exist, member/parameter names aren't duplicated, declared
// types are either a known primitive or a known class, variables are
// declared before use, and (as a warning, not an error) that a
// non-void method has at least one reachable return statement.
//
// Per spec.md §9's "newer family" design note (also QRunner.h's own
// behavior): the parser never rejects an unknown type name - that is
// this component's job, run as an optional pass an embedding host can
// choose to invoke before Evaluator.Run.
type Validator struct {
	collector *errors.Collector

	knownClasses    map[string]bool // engine/host-registered, via RegisterKnownClass
	declaredClasses map[string]bool // classes declared in this program

	currentScopeVars   map[string]bool
	classMembers       map[string]bool
	currentClassName   string
	currentMethodName  string
	hasReturn          bool
}

// NewValidator creates a Validator reporting into collector.
func NewValidator(collector *errors.Collector) *Validator {
	return &Validator{
		collector:       collector,
		knownClasses:    make(map[string]bool),
		declaredClasses: make(map[string]bool),
	}
}

// RegisterKnownClass lets an embedding host pre-register a class the
// runtime will provide (e.g. one implemented natively), so validation
// doesn't flag it as unknown even though no `class` declaration for it
// appears in the source (QValidator::RegisterKnownClass).
func (v *Validator) RegisterKnownClass(name string) {
	v.knownClasses[name] = true
}

// RegisterKnownClasses registers several known classes at once
// (QValidator::RegisterKnownClasses).
func (v *Validator) RegisterKnownClasses(names []string) {
	for _, n := range names {
		v.knownClasses[n] = true
	}
}

// Validate runs the full pass: collect declared class names, validate
// every class, then validate the top-level block. It returns false if
// any Error/Fatal-severity diagnostic was reported (QValidator::Validate).
func (v *Validator) Validate(program *ast.Program) bool {
	if program == nil {
		v.reportError("internal: nil program passed to validator", token.Position{})
		return false
	}

	for _, cls := range program.Classes {
		v.declaredClasses[cls.Name] = true
	}
	for _, cls := range program.Classes {
		v.validateClass(cls)
	}

	v.currentClassName = ""
	v.currentMethodName = ""
	v.currentScopeVars = make(map[string]bool)
	v.classMembers = make(map[string]bool)
	if program.Body != nil {
		v.validateBlock(program.Body)
	}

	return !v.collector.HasErrors()
}

func (v *Validator) validateClass(cls *ast.ClassDecl) {
	v.currentClassName = cls.Name
	v.classMembers = make(map[string]bool)

	if cls.Parent != "" && !v.isKnownClass(cls.Parent) {
		v.reportError("parent class '"+cls.Parent+"' not found for class '"+cls.Name+"'", cls.Pos())
	}

	for _, member := range cls.Members {
		if v.classMembers[member.Name] {
			v.reportError("duplicate member '"+member.Name+"' in class '"+cls.Name+"'", member.Pos())
		}
		v.classMembers[member.Name] = true

		if member.Kind != "" && !v.isValidTypeName(member.Kind) && !v.isKnownClass(member.Kind) {
			v.reportError("unknown type '"+member.Kind+"' for member '"+member.Name+"' in class '"+cls.Name+"'", member.Pos())
		}
	}

	for _, method := range cls.Methods {
		v.validateMethod(method, cls.Name)
	}

	v.currentClassName = ""
}

func (v *Validator) validateMethod(method *ast.MethodDecl, className string) {
	v.currentMethodName = method.Name
	v.currentScopeVars = make(map[string]bool)
	v.hasReturn = false

	isVoid := method.ReturnTypeKind == "" || method.ReturnTypeKind == "void"
	if !isVoid && !isPrimitiveKind(method.ReturnTypeKind) && !v.isKnownClass(method.ReturnTypeKind) {
		v.reportError("unknown return type '"+method.ReturnTypeKind+"' for method '"+method.Name+"'", method.Pos())
	}

	seenParams := make(map[string]bool)
	for _, p := range method.Params {
		if seenParams[p.Name] {
			v.reportError("duplicate parameter '"+p.Name+"' in method '"+method.Name+"'", method.Pos())
		}
		seenParams[p.Name] = true
		v.currentScopeVars[p.Name] = true

		if p.Kind != "" && !isPrimitiveKind(p.Kind) && !v.isKnownClass(p.Kind) {
			v.reportError("unknown type '"+p.Kind+"' for parameter '"+p.Name+"' in method '"+method.Name+"'", method.Pos())
		}
	}

	if method.Body != nil {
		v.validateBlock(method.Body)
	}

	// A constructor (method name == owning class name) needs no return.
	if !isVoid && !v.hasReturn && method.Name != className {
		v.reportWarning("method '"+method.Name+"' may not return a value on all paths", method.Pos())
	}

	v.currentMethodName = ""
}

func (v *Validator) validateBlock(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		v.validateStatement(stmt)
	}
}

func (v *Validator) validateStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		v.validateVarDecl(s)
	case *ast.AssignStatement:
		v.validateAssign(s)
	case *ast.IndexAssignStatement:
		if !v.isKnownVariable(s.Name) {
			v.reportError("assignment to undefined variable: '"+s.Name+"'", s.Pos())
		}
		v.validateExpression(s.Value)
	case *ast.MemberAssignStatement:
		v.validateMemberAssign(s)
	case *ast.MethodCallStatement:
		v.validateMethodCall(s)
	case *ast.ReturnStatement:
		v.validateReturn(s)
	case *ast.IfStatement:
		v.validateIf(s)
	case *ast.ForStatement:
		v.validateFor(s)
	case *ast.WhileStatement:
		v.validateWhile(s)
	case *ast.IncrementStatement:
		if !v.isKnownVariable(s.Name) && !v.classMembers[s.Name] {
			v.reportError("increment/decrement of undefined variable: '"+s.Name+"'", s.Pos())
		}
	}
}

// validateExpression is QValidator::ValidateExpression. The original
// walks the expression's identifiers and has a "possibly undefined
// variable" warning for the case that's neither a known variable nor
// followed by '.'/'(' - but that ReportWarning call is commented out in
// QValidator.cpp itself, so the check is inert in the shipped original.
// An implicit `this.member` read with no declared local of that name is
// completely legal, and this port doesn't track which identifiers came
// from where well enough to single that case out safely, so this stays
// a no-op exactly as the original's shipped behavior does. Kept as an
// explicit pass (rather than deleted) so a future, better-scoped check
// has a home.
func (v *Validator) validateExpression(expr ast.Expression) {
	_ = exprTokens(expr)
}

func (v *Validator) validateVarDecl(decl *ast.VarDeclStatement) {
	if v.currentScopeVars[decl.Name] {
		v.reportWarning("variable '"+decl.Name+"' shadows existing declaration", decl.Pos())
	}
	v.currentScopeVars[decl.Name] = true

	if decl.Kind != "" && !isPrimitiveKind(decl.Kind) && !v.isKnownClass(decl.Kind) {
		v.reportError("unknown type '"+decl.Kind+"' for variable '"+decl.Name+"'", decl.Pos())
	}

	if decl.Initializer != nil {
		v.validateExpression(decl.Initializer)
	}
}

func (v *Validator) validateAssign(stmt *ast.AssignStatement) {
	if !v.isKnownVariable(stmt.Name) && !v.classMembers[stmt.Name] {
		v.reportError("assignment to undefined variable: '"+stmt.Name+"'", stmt.Pos())
	}
	if stmt.Value != nil {
		v.validateExpression(stmt.Value)
	}
}

func (v *Validator) validateMemberAssign(stmt *ast.MemberAssignStatement) {
	if len(stmt.Path) > 0 {
		recv := stmt.Path[0]
		if recv != "this" && !v.isKnownVariable(recv) && !v.classMembers[recv] {
			v.reportError("member access on undefined instance: '"+recv+"'", stmt.Pos())
		}
	}
	if stmt.Value != nil {
		v.validateExpression(stmt.Value)
	}
}

func (v *Validator) validateMethodCall(stmt *ast.MethodCallStatement) {
	if len(stmt.Path) > 0 {
		recv := stmt.Path[0]
		if recv != "this" && recv != "super" && !v.isKnownVariable(recv) && !v.classMembers[recv] {
			v.reportError("method call on undefined instance: '"+recv+"'", stmt.Pos())
		}
	}
	for _, a := range stmt.Args {
		v.validateExpression(a)
	}
}

func (v *Validator) validateIf(stmt *ast.IfStatement) {
	v.validateExpression(stmt.Condition)
	v.validateBlock(stmt.Then)
	for _, ei := range stmt.ElseIfs {
		v.validateExpression(ei.Condition)
		v.validateBlock(ei.Body)
	}
	if stmt.Else != nil {
		v.validateBlock(stmt.Else)
	}
}

func (v *Validator) validateFor(stmt *ast.ForStatement) {
	v.currentScopeVars[stmt.Name] = true
	v.validateExpression(stmt.Start)
	v.validateExpression(stmt.End)
	if stmt.Step != nil {
		v.validateExpression(stmt.Step)
	}
	v.validateBlock(stmt.Body)
}

func (v *Validator) validateWhile(stmt *ast.WhileStatement) {
	v.validateExpression(stmt.Condition)
	v.validateBlock(stmt.Body)
}

func (v *Validator) validateReturn(stmt *ast.ReturnStatement) {
	v.hasReturn = true
	if stmt.Value != nil {
		v.validateExpression(stmt.Value)
	}
}

// isValidTypeName is QValidator::IsValidTypeName, but grounded on this
// port's actual primitive-kind set (isPrimitiveKind, coerce.go) rather
// than QValidator.cpp's own list: the C++ validator's list includes
// "byte"/"ptr" (not part of this tokenizer's type-keyword range;
// pkg/token only has int32/int64/float32/float64/short/string/bool/
// cptr/iptr/fptr/bptr) and separately flags "short" as an error, which
// contradicts Tokenizer.h's own keyword table where SHORT is a real
// type keyword. QRunner.h / Tokenizer.h are the ground truth used
// throughout the rest of this port, so the same primitive set wins
// here rather than QValidator.cpp's narrower, partly-inconsistent one.
func (v *Validator) isValidTypeName(name string) bool {
	return isPrimitiveKind(name)
}

func (v *Validator) isKnownClass(name string) bool {
	return v.knownClasses[name] || v.declaredClasses[name]
}

func (v *Validator) isKnownVariable(name string) bool {
	return v.currentScopeVars[name]
}

func (v *Validator) reportError(msg string, pos token.Position) {
	v.collector.Report(errors.Error, msg, pos, 0, "validator", v.context())
}

func (v *Validator) reportWarning(msg string, pos token.Position) {
	v.collector.Report(errors.Warning, msg, pos, 0, "validator", v.context())
}

func (v *Validator) context() string {
	if v.currentClassName == "" {
		return ""
	}
	if v.currentMethodName == "" {
		return v.currentClassName
	}
	return v.currentClassName + "." + v.currentMethodName
}
