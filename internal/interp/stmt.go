package interp

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/runtime"
)

// executeVarDecl handles both a primitive local declaration and a
// class-typed/generic one (spec.md §3 draws no AST-level distinction; see
// ast.VarDeclStatement's doc comment). A primitive kind's value is coerced;
// a class-typed kind's initializer (typically a `new ClassName(...)` chain)
// evaluates to whatever createInstance returns, unchanged. No initializer
// means QRunner::GetDefaultValue's zero value for that kind - null for any
// class-typed or unrecognized kind.
func (e *Evaluator) executeVarDecl(decl *ast.VarDeclStatement) {
	var value runtime.Value
	if decl.Initializer != nil {
		value = e.evalExpr(decl.Initializer)
		if isPrimitiveKind(decl.Kind) {
			value = coerceToType(value, decl.Kind)
		}
	} else {
		value = getDefaultValue(decl.Kind)
	}
	e.env.Define(decl.Name, value)
}

// executeAssign is QRunner::ExecuteAssign for a plain `name = expr;`: there
// is no implicit declaration. Assigning to an undeclared name is a runtime
// error, not an auto-declare.
func (e *Evaluator) executeAssign(stmt *ast.AssignStatement) {
	if !e.env.Has(stmt.Name) {
		e.runtimeError("variable %q not declared", stmt.Name)
		return
	}
	e.env.Define(stmt.Name, e.evalExpr(stmt.Value))
}

// executeIndexAssign handles `name[index] = expr;`. original_source's
// QAssign.h parses and stores an index expression (SetIndexExpression/
// HasIndex), but QRunner.h's ExecuteAssign - the only place a QAssign node
// is ever executed - never calls GetIndexExpression: the index is parsed
// but silently has no runtime effect, a genuine gap in the original rather
// than an array/pointer-indexing feature this port should invent semantics
// for. This replicates that exactly: Index is ignored, and the statement
// behaves like a plain assignment to Name.
func (e *Evaluator) executeIndexAssign(stmt *ast.IndexAssignStatement) {
	if !e.env.Has(stmt.Name) {
		e.runtimeError("variable %q not declared", stmt.Name)
		return
	}
	e.env.Define(stmt.Name, e.evalExpr(stmt.Value))
}

// executeMemberAssign is QRunner::ExecuteMemberAssign: resolve the
// receiver chain to an instance, set the field, and - critically - if that
// instance is the currently-executing method's own `this` (an identity
// comparison via __this__, not a name match) and a local shadow copy of
// that field already exists in the active scope, also overwrite the
// shadow. This is strictly additive: SetMember on the instance always
// happens; the shadow-sync only prevents executeMethod's write-back step
// from later clobbering this assignment with a stale pre-assignment value.
func (e *Evaluator) executeMemberAssign(stmt *ast.MemberAssignStatement) {
	if len(stmt.Path) == 0 {
		e.runtimeError("member assignment with no receiver")
		return
	}
	recvVal, ok := e.env.Get(stmt.Path[0])
	if !ok {
		e.runtimeError("unknown variable %q", stmt.Path[0])
		return
	}
	inst, ok := recvVal.(*runtime.Instance)
	if !ok {
		e.runtimeError("%q is not an instance", stmt.Path[0])
		return
	}
	for _, seg := range stmt.Path[1:] {
		child, ok := inst.GetNested(seg)
		if !ok {
			e.runtimeError("unknown nested instance %q", seg)
			return
		}
		inst = child
	}

	newVal := e.evalExpr(stmt.Value)
	inst.SetMember(stmt.Field, newVal)

	if thisVal, ok := e.env.Get("__this__"); ok {
		if thisInst, ok := thisVal.(*runtime.Instance); ok && thisInst == inst {
			if _, ok := e.env.GetLocal(stmt.Field); ok {
				e.env.Define(stmt.Field, newVal)
			}
		}
	}
}

// executeIncrement is QRunner::ExecuteIncrement: dispatches on the
// variable's current runtime kind to add/subtract 1 in that same kind. A
// non-numeric current value is a no-op (reported, not applied).
func (e *Evaluator) executeIncrement(stmt *ast.IncrementStatement) {
	v, ok := e.env.Get(stmt.Name)
	if !ok {
		e.runtimeError("unknown variable %q", stmt.Name)
		return
	}
	delta := int64(1)
	if stmt.Op == "--" {
		delta = -1
	}
	switch val := v.(type) {
	case *runtime.Int32:
		e.env.Define(stmt.Name, &runtime.Int32{Value: val.Value + int32(delta)})
	case *runtime.Int64:
		e.env.Define(stmt.Name, &runtime.Int64{Value: val.Value + delta})
	case *runtime.Float32:
		e.env.Define(stmt.Name, &runtime.Float32{Value: val.Value + float32(delta)})
	case *runtime.Float64:
		e.env.Define(stmt.Name, &runtime.Float64{Value: val.Value + float64(delta)})
	default:
		e.runtimeError("cannot increment/decrement non-numeric variable %q", stmt.Name)
	}
}

// executeReturn is QRunner::ExecuteReturn: record the (optional) return
// value and set the shared hasReturn flag, which executeBlock/executeFor/
// executeWhile check after every statement/iteration to short-circuit.
func (e *Evaluator) executeReturn(stmt *ast.ReturnStatement) {
	if stmt.Value != nil {
		e.returnValue = e.evalExpr(stmt.Value)
	} else {
		e.returnValue = runtime.NullValue
	}
	e.hasReturn = true
}

// executeIf is QRunner::ExecuteIf: evaluate the main condition, then each
// elseif in order, executing and short-circuiting on the first true one;
// fall through to else (if present) only when none fired.
func (e *Evaluator) executeIf(stmt *ast.IfStatement) {
	if runtime.IsTruthy(e.evalExpr(stmt.Condition)) {
		e.executeBlock(stmt.Then)
		return
	}
	for _, ei := range stmt.ElseIfs {
		if runtime.IsTruthy(e.evalExpr(ei.Condition)) {
			e.executeBlock(ei.Body)
			return
		}
	}
	if stmt.Else != nil {
		e.executeBlock(stmt.Else)
	}
}

// executeWhile is QRunner::ExecuteWhile, including its hard safety cap
// against a runaway condition (QLang has no break/continue to escape one).
func (e *Evaluator) executeWhile(stmt *ast.WhileStatement) {
	iterations := 0
	for runtime.IsTruthy(e.evalExpr(stmt.Condition)) {
		iterations++
		if iterations > maxWhileIterations {
			e.Collector.Report(errors.Error, "while loop exceeded maximum iteration count", stmt.Pos(), 0, "runtime", e.CallStack.CurrentContext())
			break
		}
		e.executeBlock(stmt.Body)
		if e.hasReturn {
			break
		}
	}
}

// executeFor is QRunner::ExecuteFor. QLang's for loop always counts up or
// down by whatever the step's sign is - there is no separate "downto" form
// (spec.md §4.11.5; ast.ForStatement's own doc comment). The start value is
// coerced to the declared kind if one was given; the loop condition and the
// per-iteration increment are computed from float64 widenings of the
// current value, end, and step, using whichever is captured BEFORE the
// body executes - if the body itself reassigns the loop variable, that
// reassignment is overwritten by the next increment step, matching the
// original's single read-compute-then-run-body-then-increment sequence.
func (e *Evaluator) executeFor(stmt *ast.ForStatement) {
	startVal := e.evalExpr(stmt.Start)
	if stmt.Kind != "" {
		startVal = coerceToType(startVal, stmt.Kind)
	}
	e.env.Define(stmt.Name, startVal)

	endVal := e.evalExpr(stmt.End)
	var stepVal runtime.Value
	if stmt.Step != nil {
		stepVal = e.evalExpr(stmt.Step)
	} else {
		stepVal = &runtime.Int32{Value: 1}
	}
	endD := toFloat64(endVal)
	stepD := toFloat64(stepVal)

	for {
		curVal, _ := e.env.Get(stmt.Name)
		currentD := toFloat64(curVal)

		var cont bool
		if stepD >= 0 {
			cont = currentD <= endD
		} else {
			cont = currentD >= endD
		}
		if !cont {
			return
		}

		e.executeBlock(stmt.Body)
		if e.hasReturn {
			return
		}

		e.env.Define(stmt.Name, forIncrement(stmt.Kind, curVal, stepVal, currentD, stepD))
	}
}

// forIncrement computes the next loop-variable value: if the loop declared
// a kind, the sum is cast to that kind; otherwise the kind is inferred
// from the current value's and step's actual runtime types (int32+int32 or
// int64+int64 stay integral; any other combination promotes to float64).
func forIncrement(kind string, curVal, stepVal runtime.Value, currentD, stepD float64) runtime.Value {
	if kind != "" {
		switch kind {
		case "float32":
			return &runtime.Float32{Value: float32(currentD + stepD)}
		case "float64":
			return &runtime.Float64{Value: currentD + stepD}
		case "int64":
			return &runtime.Int64{Value: int64(currentD + stepD)}
		case "int32", "short":
			return &runtime.Int32{Value: int32(currentD + stepD)}
		default:
			return &runtime.Float64{Value: currentD + stepD}
		}
	}

	if ci, ok := curVal.(*runtime.Int32); ok {
		if si, ok := stepVal.(*runtime.Int32); ok {
			return &runtime.Int32{Value: ci.Value + si.Value}
		}
	}
	if ci, ok := curVal.(*runtime.Int64); ok {
		if si, ok := stepVal.(*runtime.Int64); ok {
			return &runtime.Int64{Value: ci.Value + si.Value}
		}
	}
	return &runtime.Float64{Value: currentD + stepD}
}
