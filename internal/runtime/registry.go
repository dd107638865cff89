package runtime

import "github.com/StarSignalAnt/qlang/ast"

// Registry is QLang's C9 component: the class registry, holding every
// class declaration seen during parsing plus the live singleton instance
// of each `static class`. Grounded on original_source/QLang/QClass.h's
// QClassRegistry, which keeps a flat name -> QClass map and a separate
// name -> QClassInstance map for statics.
type Registry struct {
	classes map[string]*ast.ClassDecl
	statics map[string]*Instance
}

func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]*ast.ClassDecl),
		statics: make(map[string]*Instance),
	}
}

// Register adds (or replaces) a class declaration under its own name.
func (r *Registry) Register(decl *ast.ClassDecl) {
	r.classes[decl.Name] = decl
}

// Lookup returns the class declaration registered under name.
func (r *Registry) Lookup(name string) (*ast.ClassDecl, bool) {
	decl, ok := r.classes[name]
	return decl, ok
}

// IsKnown reports whether name has been registered as a class.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.classes[name]
	return ok
}

// Names returns every registered class name, in no particular order;
// callers that need determinism (e.g. the validator's diagnostics) sort it
// themselves.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	return names
}

// StaticInstance returns the live singleton instance of a `static class`,
// constructed lazily on first reference per spec.md §4.7's static-class
// construction rule.
func (r *Registry) StaticInstance(name string) (*Instance, bool) {
	inst, ok := r.statics[name]
	return inst, ok
}

// SetStaticInstance records the constructed singleton for a `static class`.
func (r *Registry) SetStaticInstance(name string, inst *Instance) {
	r.statics[name] = inst
}

// IsAncestor reports whether ancestorName names a class that childName
// (or one of childName's ancestors) directly or transitively extends,
// used by the evaluator's fuzzy overload-resolution pass (spec.md §4.11.4's
// "class arg ⇐ ancestor-of-declared-parameter-class" rule).
func (r *Registry) IsAncestor(ancestorName, childName string) bool {
	class, ok := r.classes[childName]
	if !ok {
		return false
	}
	for class != nil {
		if class.Name == ancestorName {
			return true
		}
		if class.Parent == "" {
			return false
		}
		class, ok = r.classes[class.Parent]
		if !ok {
			return false
		}
	}
	return false
}
