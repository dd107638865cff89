package runtime

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/StarSignalAnt/qlang/ast"
)

// Instance is a live class instance: C10 in spec.md's component table.
// Grounded on original_source/QLang/QClassInstance.h's QClassInstance,
// which stores primitive fields, nested (class-typed) fields, and resolved
// generic type-arguments in separate maps rather than a single
// variant-typed field table; this mirrors that split instead of go-dws's
// single-map object.Instance, because QLang's construction protocol
// (spec.md §4.7) treats "is this field itself an instance" as a structural
// question, not a value-kind one.
type Instance struct {
	Class    *ast.ClassDecl
	Fields   map[string]Value     // primitive-kind fields, keyed by name
	Nested   map[string]*Instance // class-typed fields that were constructed
	TypeArgs map[string]string    // generic type-parameter name -> concrete type name
}

// NewInstance allocates an empty instance of class, with no fields set.
// Callers (internal/interp's createInstance) populate Fields/Nested/TypeArgs
// per spec.md §4.7's parent-before-child construction order.
func NewInstance(class *ast.ClassDecl) *Instance {
	return &Instance{
		Class:    class,
		Fields:   make(map[string]Value),
		Nested:   make(map[string]*Instance),
		TypeArgs: make(map[string]string),
	}
}

func (i *Instance) Type() ValueType { return InstanceType }

func (i *Instance) String() string {
	if i.Class == nil {
		return "<instance>"
	}
	var out bytes.Buffer
	out.WriteString(i.Class.Name)
	out.WriteString("{")
	names := make([]string, 0, len(i.Fields))
	for name := range i.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for idx, name := range names {
		if idx > 0 {
			out.WriteString(", ")
		}
		out.WriteString(fmt.Sprintf("%s: %s", name, i.Fields[name].String()))
	}
	out.WriteString("}")
	return out.String()
}

// SetField binds a primitive-kind field.
func (i *Instance) SetField(name string, v Value) {
	i.Fields[name] = v
}

// GetField looks up a primitive-kind field.
func (i *Instance) GetField(name string) (Value, bool) {
	v, ok := i.Fields[name]
	return v, ok
}

// HasField reports whether name is a bound primitive field.
func (i *Instance) HasField(name string) bool {
	_, ok := i.Fields[name]
	return ok
}

// SetNested binds a class-typed field to a constructed child instance.
func (i *Instance) SetNested(name string, child *Instance) {
	i.Nested[name] = child
}

// GetNested looks up a class-typed field's constructed child instance.
// Absence (ok == false) means the field holds null, per spec.md §4.7 step 5
// ("other initializer shapes for class-typed members => warning + value
// null" and uninitialized class-typed members default to null, ground
// truth QClassInstance::InitializeMembers's monostate default arm).
func (i *Instance) GetNested(name string) (*Instance, bool) {
	child, ok := i.Nested[name]
	return child, ok
}

// HasNested reports whether a class-typed field was constructed (as
// opposed to holding null).
func (i *Instance) HasNested(name string) bool {
	_, ok := i.Nested[name]
	return ok
}

// HasMember reports whether name is bound as either a primitive field or a
// nested instance, mirroring QClassInstance::HasMember's single predicate
// over both maps.
func (i *Instance) HasMember(name string) bool {
	return i.HasField(name) || i.HasNested(name)
}

// GetMember looks up name as either a nested instance or a primitive field,
// returning it as a single Value the way QClassInstance::GetMember erases
// the distinction for callers that just want "the current value".
func (i *Instance) GetMember(name string) (Value, bool) {
	if child, ok := i.Nested[name]; ok {
		return child, true
	}
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	return nil, false
}

// SetMember stores v under name, routing to Nested when v is itself an
// Instance and to Fields otherwise, clearing whichever map didn't receive
// the write so a field can't appear in both (QClassInstance::SetMember).
func (i *Instance) SetMember(name string, v Value) {
	if child, ok := v.(*Instance); ok {
		i.Nested[name] = child
		delete(i.Fields, name)
		return
	}
	i.Fields[name] = v
	delete(i.Nested, name)
}

// IsA reports whether the instance's class is name or a descendant of a
// class named name, walking the Parent chain via the supplied registry.
// Used by the evaluator's method dispatch and "super::" resolution.
func (i *Instance) IsA(reg *Registry, name string) bool {
	class := i.Class
	for class != nil {
		if class.Name == name {
			return true
		}
		if class.Parent == "" {
			break
		}
		parent, ok := reg.Lookup(class.Parent)
		if !ok {
			break
		}
		class = parent
	}
	return false
}
