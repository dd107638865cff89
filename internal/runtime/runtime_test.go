package runtime

import (
	"testing"

	"github.com/StarSignalAnt/qlang/ast"
)

func TestEnvironmentScopeChain(t *testing.T) {
	root := NewEnvironment("global")
	root.Define("x", &Int32{Value: 1})

	child := NewEnclosedEnvironment(root, "method")
	if _, ok := child.GetLocal("x"); ok {
		t.Fatalf("GetLocal should not see parent bindings")
	}
	v, ok := child.Get("x")
	if !ok {
		t.Fatalf("Get should walk to root scope")
	}
	if v.(*Int32).Value != 1 {
		t.Fatalf("got %v, want 1", v)
	}

	child.Define("x", &Int32{Value: 2})
	if v, _ := child.Get("x"); v.(*Int32).Value != 2 {
		t.Fatalf("child shadow did not take effect")
	}
	if v, _ := root.Get("x"); v.(*Int32).Value != 1 {
		t.Fatalf("child write leaked into parent scope: got %v", v)
	}
}

func TestEnvironmentNativeLookupWalksChain(t *testing.T) {
	root := NewEnvironment("global")
	root.RegisterNative("Print", func(args []Value) Value { return NullValue })

	child := NewEnclosedEnvironment(root, "method")
	if _, ok := child.GetNative("Print"); !ok {
		t.Fatalf("native lookup should walk to root scope")
	}
	if _, ok := child.GetNative("Missing"); ok {
		t.Fatalf("unexpected native function found")
	}
}

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NullValue, false},
		{FalseValue, false},
		{TrueValue, true},
		{&Int32{Value: 0}, false},
		{&Int32{Value: 1}, true},
		{&Float64{Value: 0}, false},
		{&String{Value: ""}, true},
	}
	for _, c := range cases {
		if got := IsTruthy(c.v); got != c.want {
			t.Fatalf("IsTruthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestRegistryAncestry(t *testing.T) {
	reg := NewRegistry()
	base := &ast.ClassDecl{Name: "Shape"}
	mid := &ast.ClassDecl{Name: "Polygon", Parent: "Shape"}
	leaf := &ast.ClassDecl{Name: "Square", Parent: "Polygon"}
	reg.Register(base)
	reg.Register(mid)
	reg.Register(leaf)

	if !reg.IsAncestor("Shape", "Square") {
		t.Fatalf("expected Shape to be a transitive ancestor of Square")
	}
	if reg.IsAncestor("Square", "Shape") {
		t.Fatalf("ancestry should not be symmetric")
	}
	if !reg.IsKnown("Polygon") {
		t.Fatalf("expected Polygon to be registered")
	}
}

func TestInstanceFieldsAndNested(t *testing.T) {
	reg := NewRegistry()
	parent := &ast.ClassDecl{Name: "Vec2"}
	child := &ast.ClassDecl{Name: "Vec3", Parent: "Vec2"}
	reg.Register(parent)
	reg.Register(child)

	inst := NewInstance(child)
	inst.SetField("x", &Float64{Value: 1.5})
	if v, ok := inst.GetField("x"); !ok || v.(*Float64).Value != 1.5 {
		t.Fatalf("unexpected field value: %v, %v", v, ok)
	}
	if inst.HasNested("origin") {
		t.Fatalf("no nested instance should be set yet")
	}
	inst.SetNested("origin", NewInstance(parent))
	if !inst.HasNested("origin") {
		t.Fatalf("expected nested instance to be set")
	}
	if !inst.IsA(reg, "Vec2") {
		t.Fatalf("expected Vec3 instance to satisfy IsA Vec2 via parent chain")
	}
}
