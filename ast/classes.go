package ast

import (
	"bytes"
	"strings"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

// ClassDecl represents a class declaration.
// Example:
//
//	class Point(Vec3)<T>
//	  int32 x;
//	  method Point(int32 x) this.x = x; end
//	end
//
// Grounded on go-dws/ast/classes.go's ClassDecl, adapted to QLang's
// single-inheritance-by-name-string model (spec.md §3: "optional
// parent-class name (string, resolved late)") and its `static class`
// flag (spec.md §4.4.2).
type ClassDecl struct {
	Token      token.Token // the 'class' token
	Name       string
	Parent     string // "" if no parent
	TypeParams []string
	IsStatic   bool
	Members    []*FieldDecl
	Methods    []*MethodDecl
}

func (cd *ClassDecl) statementNode()       {}
func (cd *ClassDecl) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDecl) Pos() token.Position  { return cd.Token.Pos }

func (cd *ClassDecl) String() string {
	var out bytes.Buffer
	if cd.IsStatic {
		out.WriteString("static ")
	}
	out.WriteString("class " + cd.Name)
	if cd.Parent != "" {
		out.WriteString("(" + cd.Parent + ")")
	}
	if len(cd.TypeParams) > 0 {
		out.WriteString("<" + strings.Join(cd.TypeParams, ", ") + ">")
	}
	out.WriteString("\n")
	for _, m := range cd.Members {
		out.WriteString("  " + m.String() + "\n")
	}
	for _, m := range cd.Methods {
		out.WriteString(m.String())
	}
	out.WriteString("end")
	return out.String()
}

// FieldDecl is a member-variable declaration inside a class body, e.g.
// `int32 age;` or `string name = "p";`. A class-typed field (Kind is an
// identifier, not a primitive keyword) is what spec.md §3 calls a
// "declaration with kind = identifier" denoting a nested instance.
type FieldDecl struct {
	Token       token.Token
	Kind        string // primitive keyword, or class name
	TypeParams  []string
	Name        string
	Initializer Expression // nil if none
}

func (fd *FieldDecl) statementNode()       {}
func (fd *FieldDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FieldDecl) Pos() token.Position  { return fd.Token.Pos }

func (fd *FieldDecl) String() string {
	var out bytes.Buffer
	out.WriteString(fd.Kind)
	if len(fd.TypeParams) > 0 {
		out.WriteString("<" + strings.Join(fd.TypeParams, ", ") + ">")
	}
	out.WriteString(" " + fd.Name)
	if fd.Initializer != nil {
		out.WriteString(" = " + fd.Initializer.String())
	}
	out.WriteString(";")
	return out.String()
}

// Param is one method parameter: (kind, name), per spec.md §3.
type Param struct {
	Kind string
	Name string
}

func (p *Param) String() string { return p.Kind + " " + p.Name }

// MethodDecl represents a method declaration, including constructors
// (a method whose Name equals its owning class's name — spec.md §4.7
// step 7) and operator-overload methods (Plus/Minus/Multiply/Divide,
// spec.md §4.11.4).
type MethodDecl struct {
	Token          token.Token // the 'method' token
	Name           string
	ReturnTypeKind string // "" means void
	Params         []*Param
	Body           *BlockStatement
	IsVirtual      bool
	IsOverride     bool

	// StartLine/EndLine are the method body's source line range, recorded
	// by the parser so internal/errors.Collector.RegisterContext can print
	// the whole method on a diagnostic (spec.md §4.4.2: "registers the
	// method's line range with C3").
	StartLine int
	EndLine   int
}

func (md *MethodDecl) statementNode()       {}
func (md *MethodDecl) TokenLiteral() string { return md.Token.Literal }
func (md *MethodDecl) Pos() token.Position  { return md.Token.Pos }

func (md *MethodDecl) String() string {
	var out bytes.Buffer
	out.WriteString("  method ")
	if md.ReturnTypeKind != "" {
		out.WriteString(md.ReturnTypeKind + " ")
	}
	out.WriteString(md.Name + "(")
	params := make([]string, len(md.Params))
	for i, p := range md.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if md.IsVirtual {
		out.WriteString(" virtual")
	}
	if md.IsOverride {
		out.WriteString(" override")
	}
	out.WriteString("\n")
	if md.Body != nil {
		out.WriteString(md.Body.String())
	}
	out.WriteString("  end\n")
	return out.String()
}
