package ast

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

// Golden-output coverage for a whole Program's String() rendering,
// exercising class/method/field/statement formatting together rather
// than one fragment at a time. Grounded in go-dws's own use of go-snaps
// for multi-line rendered-output assertions (internal/interp/fixture_test.go).
func TestProgramStringSnapshot(t *testing.T) {
	intExpr := func(lit string) *Expr {
		return &Expr{Tokens: []token.Token{token.New(token.INT, lit, token.Position{})}}
	}

	prog := &Program{
		Imports: []string{"engine"},
		Classes: []*ClassDecl{
			{
				Token:  ident("class"),
				Name:   "Counter",
				Parent: "",
				Members: []*FieldDecl{
					{Token: ident("int32"), Kind: "int32", Name: "value"},
				},
				Methods: []*MethodDecl{
					{
						Token: ident("method"),
						Name:  "Counter",
						Body: &BlockStatement{
							Token: ident("method"),
							Statements: []Statement{
								&MemberAssignStatement{
									Token: ident("this"),
									Path:  []string{"this"},
									Field: "value",
									Value: intExpr("0"),
								},
							},
						},
					},
				},
			},
		},
		Body: &BlockStatement{
			Token: ident("program"),
			Statements: []Statement{
				&VarDeclStatement{
					Token:       ident("Counter"),
					Kind:        "Counter",
					Name:        "c",
					Initializer: intExpr("0"),
				},
			},
		},
	}

	snaps.MatchSnapshot(t, prog.String())
}
