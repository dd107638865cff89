package ast

import (
	"testing"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

func ident(lit string) token.Token {
	return token.New(token.IDENT, lit, token.Position{Line: 1, Column: 1})
}

func TestExprString(t *testing.T) {
	e := &Expr{Tokens: []token.Token{
		token.New(token.INT, "2", token.Position{}),
		token.New(token.OPERATOR, "+", token.Position{}),
		token.New(token.INT, "3", token.Position{}),
	}}
	if got, want := e.String(), "2 + 3"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestClassDeclString(t *testing.T) {
	cd := &ClassDecl{
		Token:  token.New(token.CLASS, "class", token.Position{}),
		Name:   "Point",
		Parent: "Vec3",
		Members: []*FieldDecl{
			{Token: ident("int32"), Kind: "int32", Name: "x"},
		},
	}
	got := cd.String()
	want := "class Point(Vec3)\n  int32 x;\nend"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMemberAssignStatementString(t *testing.T) {
	ms := &MemberAssignStatement{
		Token: ident("a"),
		Path:  []string{"a", "b"},
		Field: "field",
		Value: &Expr{Tokens: []token.Token{token.New(token.INT, "1", token.Position{})}},
	}
	if got, want := ms.String(), "a.b.field = 1;"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestForStatementString(t *testing.T) {
	fs := &ForStatement{
		Token: ident("for"),
		Kind:  "int32",
		Name:  "i",
		Start: &Expr{Tokens: []token.Token{token.New(token.INT, "0", token.Position{})}},
		End:   &Expr{Tokens: []token.Token{token.New(token.INT, "10", token.Position{})}},
		Step:  &Expr{Tokens: []token.Token{token.New(token.INT, "2", token.Position{})}},
		Body:  &BlockStatement{Token: ident("for")},
	}
	got := fs.String()
	want := "for int32 i = 0 to 10 : 2\nnext"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
