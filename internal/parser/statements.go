package parser

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// parseVarDecl ports a unification of Parser::ParseVariableDecl and
// Parser::ParseInstanceDecl/ParseClassTypeMember. original_source keeps
// three near-identical routines (one for primitive-keyword types, one for
// pre-registered class names with `new Class(...)` constructor-call sugar,
// one for generic/forward-referenced class types) because its AST captures
// a constructor call as a dedicated QInstanceDecl shape; this repository's
// ast.Expr is a flat token list (spec.md §3), so `new Box(7)` already
// round-trips through the same Initializer field as any other expression,
// collapsing all three into one declaration shape and one parse routine.
func (p *Parser) parseVarDecl() *ast.VarDeclStatement {
	kindTok := p.advance()
	typeParams := p.parseTypeParams()

	if !p.check(token.IDENT) {
		p.reportError("Expected variable name (identifier) after type '" + kindTok.Literal + "'")
		return nil
	}
	nameTok := p.advance()

	decl := &ast.VarDeclStatement{
		Token:      kindTok,
		Kind:       kindTok.Literal,
		TypeParams: typeParams,
		Name:       nameTok.Literal,
	}
	p.declaredVars[nameTok.Literal] = true

	if p.checkOp("=") {
		p.advance()
		decl.Initializer = p.parseExpression()
	}

	if p.check(token.SEMICOLON) {
		p.advance()
	} else if !p.check(token.EOF) {
		p.reportError("Expected end of line (or ';') after variable declaration")
	}

	return decl
}

// parseFieldDecl ports the class-body variant of the same grammar
// (Parser::ParseVariableDecl / Parser::ParseClassTypeMember called from
// inside ParseClass), producing an ast.FieldDecl instead of a statement.
func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	kindTok := p.advance()
	typeParams := p.parseTypeParams()

	if !p.check(token.IDENT) {
		p.reportError("expected member name")
		return nil
	}
	nameTok := p.advance()

	field := &ast.FieldDecl{
		Token:      kindTok,
		Kind:       kindTok.Literal,
		TypeParams: typeParams,
		Name:       nameTok.Literal,
	}

	if p.checkOp("=") {
		p.advance()
		field.Initializer = p.parseExpression()
	}

	if p.check(token.SEMICOLON) {
		p.advance()
	} else if !p.check(token.EOF) {
		p.reportError("Expected end of line (or ';') after member declaration")
	}

	return field
}

// parseAssign ports Parser::ParseAssign: `name = expr;` or
// `name[index] = expr;`.
func (p *Parser) parseAssign() ast.Statement {
	nameTok := p.advance()

	if p.check(token.LBRACKET) {
		p.advance() // consume '['
		indexExpr := &ast.Expr{}
		depth := 1
		for !p.atEnd() && depth > 0 {
			cur := p.peek()
			switch cur.Type {
			case token.LBRACKET:
				depth++
				indexExpr.Tokens = append(indexExpr.Tokens, cur)
				p.advance()
			case token.RBRACKET:
				depth--
				if depth > 0 {
					indexExpr.Tokens = append(indexExpr.Tokens, cur)
				}
				p.advance()
			default:
				indexExpr.Tokens = append(indexExpr.Tokens, cur)
				p.advance()
			}
		}

		if !p.checkOp("=") {
			p.reportError("expected '='")
			return nil
		}
		p.advance() // consume '='

		valueExpr := p.parseExpression()
		p.consumeSemicolon()
		return &ast.IndexAssignStatement{Token: nameTok, Name: nameTok.Literal, Index: indexExpr, Value: valueExpr}
	}

	if !p.checkOp("=") {
		p.reportError("expected '='")
		return nil
	}
	p.advance() // consume '='

	declared := p.declaredVars[nameTok.Literal] || p.classMemberVars[nameTok.Literal]
	if !declared {
		p.reportSeverity("Undeclared variable '"+nameTok.Literal+"'", errors.Warning)
	}

	valueExpr := p.parseExpression()
	p.consumeSemicolon()
	return &ast.AssignStatement{Token: nameTok, Name: nameTok.Literal, Value: valueExpr}
}

// parseMemberAssign ports Parser::ParseMemberAssign: `a.b.c = expr;`.
func (p *Parser) parseMemberAssign() ast.Statement {
	instanceTok := p.advance()

	if !p.check(token.DOT) {
		p.reportError("expected '.'")
		return nil
	}
	p.advance() // consume '.'

	if !p.check(token.IDENT) {
		p.reportError("expected member name")
		return nil
	}

	path := []string{instanceTok.Literal}
	member := p.advance().Literal

	for p.check(token.DOT) {
		p.advance() // consume '.'
		if !p.check(token.IDENT) {
			p.reportError("expected member name after '.'")
			return nil
		}
		path = append(path, member)
		member = p.advance().Literal
	}

	if !p.checkOp("=") {
		p.reportError("expected '='")
		return nil
	}
	p.advance() // consume '='

	value := p.parseExpression()
	p.consumeSemicolon()
	return &ast.MemberAssignStatement{Token: instanceTok, Path: path, Field: member, Value: value}
}

// parseMethodCall ports Parser::ParseMethodCall: `a.b.Method(args);`.
func (p *Parser) parseMethodCall() ast.Statement {
	firstTok := p.advance()
	parts := []string{firstTok.Literal}

	for p.check(token.DOT) {
		p.advance() // consume '.'
		if !p.check(token.IDENT) {
			p.reportError("expected identifier after '.'")
			return nil
		}
		parts = append(parts, p.advance().Literal)
	}

	if len(parts) < 2 {
		p.reportError("incomplete method call")
		return nil
	}

	method := parts[len(parts)-1]
	path := parts[:len(parts)-1]

	call := &ast.MethodCallStatement{Token: firstTok, Path: path, Method: method}
	if p.check(token.LPAREN) {
		call.Args = p.parseArguments()
	}
	p.consumeSemicolon()
	return call
}

// parseReturn ports Parser::ParseReturn.
func (p *Parser) parseReturn() ast.Statement {
	tok := p.advance() // consume 'return'
	stmt := &ast.ReturnStatement{Token: tok}

	if !p.check(token.SEMICOLON) && !p.check(token.EOF) && !p.check(token.END) {
		stmt.Value = p.parseExpression()
	}
	p.consumeSemicolon()
	return stmt
}

// parseIncrement ports Parser::ParseIncrement: `name++;` / `name--;`.
func (p *Parser) parseIncrement() ast.Statement {
	nameTok := p.advance()

	if !p.check(token.OPERATOR) {
		p.reportError("expected ++ or --")
		return nil
	}
	opTok := p.advance()

	stmt := &ast.IncrementStatement{Token: nameTok, Name: nameTok.Literal, Op: opTok.Literal}
	p.consumeSemicolon()
	return stmt
}
