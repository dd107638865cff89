package parser

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// parseExpression ports Parser::ParseExpression: it collects tokens into a
// flat ast.Expr until a statement/parameter boundary, tracking parenthesis
// depth so a nested call's own parens don't terminate the scan early.
// Per spec.md §3's AST invariant, this never builds an operator tree — the
// evaluator's Shunting-Yard pass does that at evaluation time.
func (p *Parser) parseExpression() *ast.Expr {
	expr := &ast.Expr{}
	parenDepth := 0

	for !p.atEnd() &&
		!p.check(token.SEMICOLON) &&
		!p.check(token.EOF) &&
		!p.check(token.TO) &&
		!p.check(token.COLON) {
		cur := p.peek()

		switch {
		case cur.Type == token.LPAREN:
			parenDepth++
			expr.Tokens = append(expr.Tokens, cur)
			p.advance()
		case cur.Type == token.RPAREN:
			if parenDepth > 0 {
				parenDepth--
				expr.Tokens = append(expr.Tokens, cur)
				p.advance()
			} else {
				return expr // the enclosing call's closing paren
			}
		case cur.Type == token.COMMA && parenDepth == 0:
			return expr // next parameter in an argument list
		default:
			expr.Tokens = append(expr.Tokens, cur)
			p.advance()
		}
	}

	return expr
}

// parseArguments ports Parser::ParseParameters: `( expr, expr, ... )`.
func (p *Parser) parseArguments() []ast.Expression {
	var args []ast.Expression

	if p.check(token.LPAREN) {
		p.advance()
	}
	if p.check(token.RPAREN) {
		p.advance()
		return args
	}

	args = append(args, p.parseExpression())
	for p.check(token.COMMA) {
		p.advance()
		args = append(args, p.parseExpression())
	}

	if p.check(token.RPAREN) {
		p.advance()
	} else {
		p.reportError("expected ')'")
	}
	return args
}

// parseTypeParams parses an optional `<T, U, ...>` suffix, used after a
// declaration's type name in variable/member/class-type-member/class
// declarations (Parser.cpp repeats this block in ParseVariableDecl,
// ParseClass, and ParseClassTypeMember; here it is one shared helper).
func (p *Parser) parseTypeParams() []string {
	if !p.check(token.LESS) {
		return nil
	}
	p.advance() // consume '<'

	var params []string
	for !p.atEnd() && !p.check(token.GREATER) {
		if p.check(token.IDENT) || p.isTypeToken(p.peek().Type) {
			params = append(params, p.peek().Literal)
			p.advance()
		} else {
			p.reportError("Expected type parameter")
			break
		}
		if p.check(token.COMMA) {
			p.advance()
		}
	}
	if p.check(token.GREATER) {
		p.advance()
	} else {
		p.reportError("Expected '>' to close type parameters")
	}
	return params
}
