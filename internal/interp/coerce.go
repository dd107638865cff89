package interp

import "github.com/StarSignalAnt/qlang/internal/runtime"

// isPrimitiveKind reports whether kind names one of QLang's primitive
// value kinds rather than a class name, mirroring
// QRunner::TypeNameToTokenType's "anything else is T_IDENTIFIER" fallback.
func isPrimitiveKind(kind string) bool {
	switch kind {
	case "int32", "int64", "float32", "float64", "short",
		"string", "bool", "cptr", "iptr", "fptr", "bptr":
		return true
	}
	return false
}

// toFloat64 widens any numeric Value to float64, matching QRunner::ToDouble
// (and its exact duplicate GetDoubleValue, used by ExecuteFor).
func toFloat64(v runtime.Value) float64 {
	switch val := v.(type) {
	case *runtime.Int32:
		return float64(val.Value)
	case *runtime.Int64:
		return float64(val.Value)
	case *runtime.Float32:
		return float64(val.Value)
	case *runtime.Float64:
		return val.Value
	default:
		return 0
	}
}

// toInt64 narrows/widens any numeric Value to int64, matching
// QRunner::ToInt64.
func toInt64(v runtime.Value) int64 {
	switch val := v.(type) {
	case *runtime.Int32:
		return int64(val.Value)
	case *runtime.Int64:
		return val.Value
	case *runtime.Float32:
		return int64(val.Value)
	case *runtime.Float64:
		return int64(val.Value)
	default:
		return 0
	}
}

// getDefaultValue returns the zero value for a declared kind, used when a
// var/field declaration has no initializer (QRunner::GetDefaultValue).
// A class-typed (or otherwise unrecognized) kind defaults to null, per
// spec.md §4.7 step 5.
func getDefaultValue(kind string) runtime.Value {
	switch kind {
	case "int32", "short":
		return &runtime.Int32{Value: 0}
	case "int64":
		return &runtime.Int64{Value: 0}
	case "float32":
		return &runtime.Float32{Value: 0}
	case "float64":
		return &runtime.Float64{Value: 0}
	case "string":
		return &runtime.String{Value: ""}
	case "bool":
		return runtime.FalseValue
	case "cptr", "iptr", "fptr", "bptr":
		return &runtime.Pointer{Value: nil}
	default:
		return runtime.NullValue
	}
}

// coerceToType converts v to the declared kind, matching
// QRunner::CoerceToType. A class-typed kind (the default arm) passes v
// through unchanged: QLang never coerces between class instances.
func coerceToType(v runtime.Value, kind string) runtime.Value {
	switch kind {
	case "int32", "short":
		return &runtime.Int32{Value: int32(toInt64(v))}
	case "int64":
		return &runtime.Int64{Value: toInt64(v)}
	case "float32":
		return &runtime.Float32{Value: float32(toFloat64(v))}
	case "float64":
		return &runtime.Float64{Value: toFloat64(v)}
	case "string":
		if s, ok := v.(*runtime.String); ok {
			return s
		}
		return &runtime.String{Value: v.String()}
	case "bool":
		return coerceBool(v)
	default:
		return v
	}
}

// coerceBool is QRunner::CoerceToType's BOOL arm specifically: unlike the
// general IsTrue/ToBool truthiness test (runtime.IsTruthy), a non-bool
// value here is only truthy if it's a nonzero int32/int64 - a nonempty
// string or nonzero float coerces to false, not true.
func coerceBool(v runtime.Value) runtime.Value {
	switch val := v.(type) {
	case *runtime.Bool:
		return val
	case *runtime.Int32:
		return runtime.BoolOf(val.Value != 0)
	case *runtime.Int64:
		return runtime.BoolOf(val.Value != 0)
	default:
		return runtime.FalseValue
	}
}
