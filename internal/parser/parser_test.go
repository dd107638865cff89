package parser

import (
	"testing"

	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, *errors.Collector) {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	collector := errors.NewCollector()
	collector.SetSource(src)
	prog := New(toks, collector).Parse()
	return prog, collector
}

func TestParseClassWithFieldAndMethod(t *testing.T) {
	src := `class Point
  int32 x;
  int32 y;
  method int32 Sum()
    return x + y;
  end
end
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	if len(prog.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(prog.Classes))
	}
	cls := prog.Classes[0]
	if cls.Name != "Point" || len(cls.Members) != 2 || len(cls.Methods) != 1 {
		t.Fatalf("unexpected class shape: %+v", cls)
	}
	if cls.Methods[0].Name != "Sum" || cls.Methods[0].ReturnTypeKind != "int32" {
		t.Fatalf("unexpected method shape: %+v", cls.Methods[0])
	}
}

func TestParseClassInheritanceAndGenerics(t *testing.T) {
	src := `class Box<T>
  T value;
end

class Crate(Box)
end
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	if prog.Classes[0].TypeParams[0] != "T" {
		t.Fatalf("expected type param T, got %+v", prog.Classes[0].TypeParams)
	}
	if prog.Classes[1].Parent != "Box" {
		t.Fatalf("expected parent Box, got %q", prog.Classes[1].Parent)
	}
}

func TestParseTopLevelVarDeclAndAssign(t *testing.T) {
	src := `int32 i = 0;
i = i + 1;
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	if len(prog.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Body.Statements))
	}
	decl, ok := prog.Body.Statements[0].(*ast.VarDeclStatement)
	if !ok || decl.Name != "i" || decl.Kind != "int32" {
		t.Fatalf("unexpected decl: %+v", prog.Body.Statements[0])
	}
	assign, ok := prog.Body.Statements[1].(*ast.AssignStatement)
	if !ok || assign.Name != "i" {
		t.Fatalf("unexpected assign: %+v", prog.Body.Statements[1])
	}
}

func TestParseMemberAssignAndMethodCall(t *testing.T) {
	src := `p.x = 5;
p.Move(1, 2);
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	ma, ok := prog.Body.Statements[0].(*ast.MemberAssignStatement)
	if !ok || ma.Field != "x" || len(ma.Path) != 1 || ma.Path[0] != "p" {
		t.Fatalf("unexpected member assign: %+v", prog.Body.Statements[0])
	}
	mc, ok := prog.Body.Statements[1].(*ast.MethodCallStatement)
	if !ok || mc.Method != "Move" || len(mc.Args) != 2 {
		t.Fatalf("unexpected method call: %+v", prog.Body.Statements[1])
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	src := `if x == 1
  y = 1;
elseif x == 2
  y = 2;
else
  y = 3;
end
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	ifStmt, ok := prog.Body.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", prog.Body.Statements[0])
	}
	if len(ifStmt.ElseIfs) != 1 || ifStmt.Else == nil {
		t.Fatalf("unexpected if shape: %+v", ifStmt)
	}
}

func TestParseForWithStep(t *testing.T) {
	src := `for int32 i = 0 to 10 : 2
  x = i;
next
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	forStmt, ok := prog.Body.Statements[0].(*ast.ForStatement)
	if !ok || forStmt.Kind != "int32" || forStmt.Name != "i" || forStmt.Step == nil {
		t.Fatalf("unexpected for shape: %+v", prog.Body.Statements[0])
	}
}

func TestParseWhile(t *testing.T) {
	src := `while i < 10
  i++;
wend
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	whileStmt, ok := prog.Body.Statements[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected WhileStatement, got %T", prog.Body.Statements[0])
	}
	inc, ok := whileStmt.Body.Statements[0].(*ast.IncrementStatement)
	if !ok || inc.Op != "++" {
		t.Fatalf("unexpected increment: %+v", whileStmt.Body.Statements[0])
	}
}

func TestParseSuperCall(t *testing.T) {
	src := `super::Init(1);
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	call, ok := prog.Body.Statements[0].(*ast.MethodCallStatement)
	if !ok || len(call.Path) != 1 || call.Path[0] != "super" || call.Method != "Init" {
		t.Fatalf("unexpected super call: %+v", prog.Body.Statements[0])
	}
}

func TestParseClassTypedInstanceDecl(t *testing.T) {
	src := `class Box
  int32 value;
end

Box b = new Box();
Box empty;
`
	prog, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	if len(prog.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Body.Statements))
	}
	decl, ok := prog.Body.Statements[0].(*ast.VarDeclStatement)
	if !ok || decl.Kind != "Box" || decl.Initializer == nil {
		t.Fatalf("unexpected instance decl: %+v", prog.Body.Statements[0])
	}
	empty, ok := prog.Body.Statements[1].(*ast.VarDeclStatement)
	if !ok || empty.Initializer != nil {
		t.Fatalf("expected uninitialized instance decl, got %+v", prog.Body.Statements[1])
	}
}

func TestParseMethodContextRegistered(t *testing.T) {
	src := `class Foo
  method void Bar()
    return;
  end
end
`
	_, collector := parseSource(t, src)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	// RegisterContext was called for "Foo.Bar"; exercised indirectly via
	// List()'s function-body rendering in internal/errors' own tests.
}
