package interp

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/runtime"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// createInstance is QRunner::CreateInstance: look up the class, allocate an
// instance, run the full parent-before-child field-initialization protocol,
// then look up and execute the class's own constructor (a method whose name
// equals the class name), if one exists. A missing constructor is only an
// error when the caller actually supplied arguments; an implicit default
// constructor is otherwise silently fine (spec.md §4.7 step 7).
func (e *Evaluator) createInstance(className string, args []runtime.Value) runtime.Value {
	class, ok := e.Registry.Lookup(className)
	if !ok {
		return e.runtimeError("unknown class %q", className)
	}
	inst := runtime.NewInstance(class)
	e.initializeInstanceMembers(inst, class, nil)

	ctor, ok := e.findMethodInClass(class, className, args)
	if !ok {
		if len(args) > 0 {
			return e.runtimeError("no matching constructor for class %q", className)
		}
		return inst
	}
	return e.executeMethod(inst, ctor, args)
}

// initializeInstanceMembers runs spec.md §4.7's construction protocol for
// one class level: parent fields and parent constructor first (recursively),
// then this class's own declared members, left to right. typeMapping
// resolves this class's own generic type parameters to concrete type names
// for a single construction call; it is never propagated into nested
// instances built along the way, matching QRunner::InitializeInstanceMembers.
func (e *Evaluator) initializeInstanceMembers(inst *runtime.Instance, class *ast.ClassDecl, typeMapping map[string]string) {
	if class.Parent != "" {
		parent, ok := e.Registry.Lookup(class.Parent)
		if !ok {
			e.runtimeError("unknown parent class %q of %q", class.Parent, class.Name)
		} else {
			e.initializeInstanceMembers(inst, parent, typeMapping)
			if parentCtor, ok := e.findMethodInClass(parent, class.Parent, nil); ok {
				e.executeMethod(inst, parentCtor, nil)
			}
		}
	}

	for _, member := range class.Members {
		e.initializeField(inst, class, member, typeMapping)
	}
}

// initializeField resolves and stores one declared member's initial value,
// per QRunner::InitializeInstanceMembers's per-member loop.
func (e *Evaluator) initializeField(inst *runtime.Instance, class *ast.ClassDecl, member *ast.FieldDecl, typeMapping map[string]string) {
	kind := member.Kind
	if !isPrimitiveKind(kind) && len(typeMapping) > 0 {
		if concrete, ok := typeMapping[kind]; ok {
			kind = concrete
		}
	}

	if !isPrimitiveKind(kind) && member.Initializer != nil {
		toks := exprTokens(member.Initializer)
		nestedClassName, callArgs, ok := matchNewCallPattern(toks)
		if !ok {
			e.Collector.Report(errors.Warning, "unrecognized initializer for class-typed member "+member.Name, member.Pos(), 0, "runtime", e.CallStack.CurrentContext())
			inst.SetMember(member.Name, runtime.NullValue)
			return
		}
		nestedClass, ok := e.Registry.Lookup(nestedClassName)
		if !ok {
			e.Collector.Report(errors.Warning, "unknown class "+nestedClassName+" in initializer for "+member.Name, member.Pos(), 0, "runtime", e.CallStack.CurrentContext())
			return
		}
		nested := runtime.NewInstance(nestedClass)
		e.initializeInstanceMembers(nested, nestedClass, nil)
		args := e.evalArgTokens(callArgs)
		for _, m := range nestedClass.Methods {
			if m.Name == nestedClassName {
				e.executeMethod(nested, m, args)
				break
			}
		}
		inst.SetMember(member.Name, nested)
		return
	}

	var value runtime.Value
	switch {
	case member.Initializer != nil:
		value = coerceToType(e.evalExpr(member.Initializer), kind)
	default:
		value = getDefaultValue(kind)
	}
	inst.SetMember(member.Name, value)
}

// matchNewCallPattern recognizes the `new ClassName(args...)` token shape
// QRunner::InitializeInstanceMembers looks for in a class-typed member's
// initializer: elements[0] is `new`, elements[1] is an identifier, and at
// least 3 tokens are present (the opening paren and beyond). It returns the
// class name and the raw argument tokens between the outermost parens.
func matchNewCallPattern(toks []token.Token) (className string, argTokens []token.Token, ok bool) {
	if len(toks) < 3 || toks[0].Type != token.NEW || toks[1].Type != token.IDENT {
		return "", nil, false
	}
	if toks[2].Type != token.LPAREN {
		return "", nil, false
	}
	depth := 1
	i := 3
	for i < len(toks) && depth > 0 {
		switch toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return toks[1].Literal, toks[3:i], true
			}
		}
		i++
	}
	return "", nil, false
}

// exprTokens returns the flat token list backing an ast.Expression, which
// is always a *ast.Expr in this grammar (the AST invariant spec.md §3 and
// ast.go's package doc both call out: "never a pre-built operator tree").
func exprTokens(e ast.Expression) []token.Token {
	if e == nil {
		return nil
	}
	if expr, ok := e.(*ast.Expr); ok {
		return expr.Tokens
	}
	return nil
}

// --- method resolution: FindMethod's two-pass overload-resolution family ---

// findMethod is QRunner::FindMethod: search classDecl for an overload of
// name whose parameters match args, walking the parent-class chain on a
// miss. It runs two passes: the first requires CheckTypeMatch's strict
// rules, the second falls back to the fuzzy rules.
func (e *Evaluator) findMethod(class *ast.ClassDecl, name string, args []runtime.Value) (*ast.MethodDecl, bool) {
	if m, ok := e.findMethodInternal(class, name, args, true); ok {
		return m, true
	}
	return e.findMethodInternal(class, name, args, false)
}

func (e *Evaluator) findMethodInternal(class *ast.ClassDecl, name string, args []runtime.Value, strict bool) (*ast.MethodDecl, bool) {
	for c := class; c != nil; {
		if m, ok := matchOverload(c.Methods, name, args, strict, e.Registry); ok {
			return m, true
		}
		if c.Parent == "" {
			break
		}
		parent, ok := e.Registry.Lookup(c.Parent)
		if !ok {
			break
		}
		c = parent
	}
	return nil, false
}

// findMethodInClass is QRunner::FindMethodInClass: the same two-pass search
// but restricted to one class (no inheritance walk), used for constructor
// lookup - a constructor is never inherited.
func (e *Evaluator) findMethodInClass(class *ast.ClassDecl, name string, args []runtime.Value) (*ast.MethodDecl, bool) {
	if m, ok := matchOverload(class.Methods, name, args, true, e.Registry); ok {
		return m, true
	}
	return matchOverload(class.Methods, name, args, false, e.Registry)
}

// matchOverload scans methods for the first one named name whose declared
// parameters all satisfy checkTypeMatch against args under the given
// strictness, and whose arity equals len(args).
func matchOverload(methods []*ast.MethodDecl, name string, args []runtime.Value, strict bool, reg *runtime.Registry) (*ast.MethodDecl, bool) {
	for _, m := range methods {
		if m.Name != name || len(m.Params) != len(args) {
			continue
		}
		ok := true
		for i, p := range m.Params {
			if !checkTypeMatch(p.Kind, args[i], strict, reg) {
				ok = false
				break
			}
		}
		if ok {
			return m, true
		}
	}
	return nil, false
}

// checkTypeMatch is QRunner::CheckTypeMatch. strict=true is the first
// resolution pass (exact kind match); strict=false is the fallback pass
// (numeric promotion, class-ancestor matching).
func checkTypeMatch(paramKind string, arg runtime.Value, strict bool, reg *runtime.Registry) bool {
	if strict {
		switch paramKind {
		case "int32", "short":
			_, ok := arg.(*runtime.Int32)
			return ok
		case "int64":
			_, ok := arg.(*runtime.Int64)
			return ok
		case "float32":
			_, ok := arg.(*runtime.Float32)
			return ok
		case "float64":
			_, ok := arg.(*runtime.Float64)
			return ok
		case "string":
			_, ok := arg.(*runtime.String)
			return ok
		case "bool":
			_, ok := arg.(*runtime.Bool)
			return ok
		case "cptr", "iptr", "fptr", "bptr":
			_, ok := arg.(*runtime.Pointer)
			return ok
		default:
			inst, ok := arg.(*runtime.Instance)
			if !ok {
				return false
			}
			if paramKind == "" || paramKind == "void" {
				return true
			}
			return inst.Class != nil && inst.Class.Name == paramKind
		}
	}

	switch paramKind {
	case "int32", "int64", "short":
		switch arg.(type) {
		case *runtime.Int32, *runtime.Int64, *runtime.Float32, *runtime.Float64:
			return true
		}
		return false
	case "float32", "float64":
		switch arg.(type) {
		case *runtime.Float32, *runtime.Float64, *runtime.Int32, *runtime.Int64:
			return true
		}
		return false
	case "string":
		return true
	case "bool":
		return true
	case "cptr", "iptr", "fptr", "bptr":
		switch arg.(type) {
		case *runtime.Pointer, *runtime.Null:
			return true
		}
		return false
	default:
		inst, ok := arg.(*runtime.Instance)
		if !ok {
			return false
		}
		if paramKind == "" || paramKind == "void" {
			return true
		}
		if inst.Class != nil && inst.Class.Name == paramKind {
			return true
		}
		if inst.Class != nil {
			return reg.IsAncestor(paramKind, inst.Class.Name)
		}
		return false
	}
}
