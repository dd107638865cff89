// Package runtime implements QLang's C8/C9/C10 components: the runtime
// scope chain (Environment), the class registry, and class-instance
// storage. Grounded on go-dws/internal/interp/runtime/environment.go's
// Environment/Value split (a tagged Value interface plus an enclosing-scope
// chain), adapted to spec.md §3's scope shape
// ("{name, parent?, vars: map, funcs: map}") and QLang's value set
// (null, bool, i32, i64, f32, f64, string, opaque pointer, class instance).
package runtime

import "fmt"

// ValueType tags a Value's concrete kind, mirroring go-dws's ObjectType
// string-constant idiom (internal/interp/runtime/value.go) rather than a
// closed Go type-switch, so cmd/qlang's `run` command can compare a
// result's Type() against "ERROR" the same way go-dws's cmd/dwscript does.
type ValueType string

const (
	NullType     ValueType = "NULL"
	BoolType     ValueType = "BOOL"
	Int32Type    ValueType = "INT32"
	Int64Type    ValueType = "INT64"
	Float32Type  ValueType = "FLOAT32"
	Float64Type  ValueType = "FLOAT64"
	StringType   ValueType = "STRING"
	PointerType  ValueType = "POINTER"
	InstanceType ValueType = "INSTANCE"
	ErrorType    ValueType = "ERROR"
)

// Value is any QLang runtime value.
type Value interface {
	Type() ValueType
	String() string
}

// Null is QLang's single null value (uninitialized class-typed fields and
// locals, per spec.md §4.7 step 5 and §4.11.5).
type Null struct{}

func (n *Null) Type() ValueType { return NullType }
func (n *Null) String() string  { return "null" }

// NullValue is the shared Null instance; Null carries no state so one
// instance serves the whole interpreter.
var NullValue = &Null{}

type Bool struct{ Value bool }

func (b *Bool) Type() ValueType { return BoolType }
func (b *Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// TrueValue / FalseValue mirror go-dws's boolean singleton idiom.
var (
	TrueValue  = &Bool{Value: true}
	FalseValue = &Bool{Value: false}
)

func BoolOf(b bool) *Bool {
	if b {
		return TrueValue
	}
	return FalseValue
}

type Int32 struct{ Value int32 }

func (i *Int32) Type() ValueType { return Int32Type }
func (i *Int32) String() string  { return fmt.Sprintf("%d", i.Value) }

type Int64 struct{ Value int64 }

func (i *Int64) Type() ValueType { return Int64Type }
func (i *Int64) String() string  { return fmt.Sprintf("%d", i.Value) }

type Float32 struct{ Value float32 }

func (f *Float32) Type() ValueType { return Float32Type }
func (f *Float32) String() string  { return fmt.Sprintf("%g", f.Value) }

type Float64 struct{ Value float64 }

func (f *Float64) Type() ValueType { return Float64Type }
func (f *Float64) String() string  { return fmt.Sprintf("%g", f.Value) }

type String struct{ Value string }

func (s *String) Type() ValueType { return StringType }
func (s *String) String() string  { return s.Value }

// Pointer is the opaque cptr/iptr/fptr/bptr host-pointer value: QLang
// scripts never dereference it, only pass it through (spec.md's pointer
// kinds are opaque handles, ground truth QClassInstance.h's monostate
// variant arm for pointer-typed members).
type Pointer struct{ Value any }

func (p *Pointer) Type() ValueType { return PointerType }
func (p *Pointer) String() string  { return fmt.Sprintf("0x%p", p.Value) }

// Error is a runtime-error carrier value, returned instead of panicking so
// the evaluator's call chain can unwind and the CLI can surface it, the
// same propagate-as-a-value idiom go-dws's internal/interp/eval.go uses for
// its own *runtime.Error.
type Error struct {
	Message string
}

func (e *Error) Type() ValueType { return ErrorType }
func (e *Error) String() string  { return "error: " + e.Message }

func NewError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether v is a runtime.Error, the same early-return guard
// go-dws's eval.go uses after every sub-evaluation.
func IsError(v Value) bool {
	if v == nil {
		return false
	}
	return v.Type() == ErrorType
}

// IsTruthy implements spec.md's coercion/truthiness table: bool uses its
// own value; every numeric kind is truthy iff nonzero; null is always
// falsy; string and instance values are always truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case *Null:
		return false
	case *Bool:
		return val.Value
	case *Int32:
		return val.Value != 0
	case *Int64:
		return val.Value != 0
	case *Float32:
		return val.Value != 0
	case *Float64:
		return val.Value != 0
	case *String:
		return val.Value != ""
	case *Pointer:
		return val.Value != nil
	default:
		return true
	}
}
