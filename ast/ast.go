// Package ast defines QLang's C6 component: the AST node types produced
// by internal/parser and walked by internal/interp.
//
// Grounded on go-dws/ast/ast.go's Node/Expression/Statement interface
// split and bytes.Buffer-based String() rendering, adapted to
// spec.md §3's "AST invariants": an expression here is a flat, ordered
// token list (Expr), never a pre-built BinaryExpression/UnaryExpression
// tree — the evaluator builds RPN from it on demand (see
// internal/interp's Shunting-Yard pipeline).
package ast

import (
	"bytes"
	"strings"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is implemented by expression nodes. QLang has exactly one:
// Expr, the flat token list.
type Expression interface {
	Node
	expressionNode()
	Pos() token.Position
}

// Statement is implemented by statement nodes.
type Statement interface {
	Node
	statementNode()
	Pos() token.Position
}

// Program is the root node: an ordered list of imports, an ordered list
// of class declarations, and a single top-level block, per spec.md §3
// ("A program owns an ordered list of classes and a single top-level
// block").
type Program struct {
	Imports []string
	Classes []*ClassDecl
	Body    *BlockStatement
}

func (p *Program) TokenLiteral() string {
	if p.Body != nil {
		return p.Body.TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, imp := range p.Imports {
		out.WriteString("import " + imp + "\n")
	}
	for _, c := range p.Classes {
		out.WriteString(c.String())
		out.WriteString("\n")
	}
	if p.Body != nil {
		out.WriteString(p.Body.String())
	}
	return out.String()
}

// Expr is a flat, ordered sequence of tokens with parenthesis-balance
// preserved. It is evaluated by internal/interp's Shunting-Yard pipeline,
// never pre-parsed into an operator tree (spec.md §3, §4.11.2, §9
// "Shunting-Yard over a flat token list").
type Expr struct {
	Tokens []token.Token
}

func (e *Expr) expressionNode() {}

func (e *Expr) TokenLiteral() string {
	if len(e.Tokens) == 0 {
		return ""
	}
	return e.Tokens[0].Literal
}

func (e *Expr) Pos() token.Position {
	if len(e.Tokens) == 0 {
		return token.Position{}
	}
	return e.Tokens[0].Pos
}

func (e *Expr) String() string {
	parts := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		if t.Type == token.STRING {
			parts[i] = `"` + t.Literal + `"`
		} else {
			parts[i] = t.Literal
		}
	}
	return strings.Join(parts, " ")
}

// BlockStatement is an ordered list of statements, used for method
// bodies, if/for/while bodies, and the program's top-level block.
type BlockStatement struct {
	Token      token.Token // the opening keyword of whatever owns this block
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() token.Position  { return bs.Token.Pos }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}
