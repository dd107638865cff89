package ast

import (
	"bytes"
	"strings"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

// VarDeclStatement is a local variable or instance declaration, e.g.
// `int32 i = 0;` or `Box b = new Box(7);` or a generic `Pair<int32> p;`.
// spec.md §3 draws no type-level distinction between a primitive
// variable-declaration and a class-typed instance-declaration — both
// are `(kind, name, typeName, typeParams, initializerExpr?)`; the
// evaluator decides at runtime whether Kind names a primitive or a
// registered class (spec.md §9's "newer family" design note: type-name
// validity is a runtime/validator concern, not a parse-time one).
type VarDeclStatement struct {
	Token       token.Token
	Kind        string
	TypeParams  []string
	Name        string
	Initializer Expression // nil if none
}

func (vs *VarDeclStatement) statementNode()       {}
func (vs *VarDeclStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarDeclStatement) Pos() token.Position  { return vs.Token.Pos }
func (vs *VarDeclStatement) String() string {
	var out bytes.Buffer
	out.WriteString(vs.Kind)
	if len(vs.TypeParams) > 0 {
		out.WriteString("<" + strings.Join(vs.TypeParams, ", ") + ">")
	}
	out.WriteString(" " + vs.Name)
	if vs.Initializer != nil {
		out.WriteString(" = " + vs.Initializer.String())
	}
	out.WriteString(";")
	return out.String()
}

// AssignStatement is a simple `name = expr;` assignment to a local or
// field-shadow variable in the active scope.
type AssignStatement struct {
	Token token.Token
	Name  string
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() token.Position  { return as.Token.Pos }
func (as *AssignStatement) String() string {
	return as.Name + " = " + as.Value.String() + ";"
}

// MemberAssignStatement is `a.b.c.field = expr;`. Path holds the
// dot-separated chain up to (but not including) the mutated field name,
// per spec.md §3: "an instance name and a dot-separated member path
// whose last segment is the field actually mutated."
type MemberAssignStatement struct {
	Token token.Token
	Path  []string // e.g. ["a", "b", "c"]
	Field string   // the final mutated field name
	Value Expression
}

func (ms *MemberAssignStatement) statementNode()       {}
func (ms *MemberAssignStatement) TokenLiteral() string { return ms.Token.Literal }
func (ms *MemberAssignStatement) Pos() token.Position  { return ms.Token.Pos }
func (ms *MemberAssignStatement) String() string {
	return strings.Join(append(append([]string{}, ms.Path...), ms.Field), ".") +
		" = " + ms.Value.String() + ";"
}

// IndexAssignStatement is `name[index] = expr;`.
type IndexAssignStatement struct {
	Token token.Token
	Name  string
	Index Expression
	Value Expression
}

func (is *IndexAssignStatement) statementNode()       {}
func (is *IndexAssignStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IndexAssignStatement) Pos() token.Position  { return is.Token.Pos }
func (is *IndexAssignStatement) String() string {
	return is.Name + "[" + is.Index.String() + "] = " + is.Value.String() + ";"
}

// IncrementStatement is `name++;` or `name--;`.
type IncrementStatement struct {
	Token token.Token
	Name  string
	Op    string // "++" or "--"
}

func (is *IncrementStatement) statementNode()       {}
func (is *IncrementStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IncrementStatement) Pos() token.Position  { return is.Token.Pos }
func (is *IncrementStatement) String() string       { return is.Name + is.Op + ";" }

// MethodCallStatement is a method call used as a statement:
// `a.b.Method(args);`, a bare `Method(args);` (Path is empty, implicit
// `this`), or `super::Method(args);` (Path == ["super"]), per
// spec.md §4.4.2's "super::NAME(...)" row.
type MethodCallStatement struct {
	Token  token.Token
	Path   []string // receiver chain; nil/empty means implicit `this`
	Method string
	Args   []Expression
}

func (mc *MethodCallStatement) statementNode()       {}
func (mc *MethodCallStatement) TokenLiteral() string { return mc.Token.Literal }
func (mc *MethodCallStatement) Pos() token.Position  { return mc.Token.Pos }
func (mc *MethodCallStatement) String() string {
	var out bytes.Buffer
	if len(mc.Path) > 0 {
		out.WriteString(strings.Join(mc.Path, ".") + ".")
	}
	out.WriteString(mc.Method + "(")
	args := make([]string, len(mc.Args))
	for i, a := range mc.Args {
		args[i] = a.String()
	}
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(");")
	return out.String()
}

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare `return;`
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}
