package parser

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// parseIf ports Parser::ParseIf: `if cond ... [elseif cond ...]* [else ...] end`.
func (p *Parser) parseIf() ast.Statement {
	tok := p.advance() // consume 'if'

	condition := p.parseExpression()
	then := &ast.BlockStatement{Token: p.peek()}
	p.parseBlock(then)

	ifStmt := &ast.IfStatement{Token: tok, Condition: condition, Then: then}

	for p.check(token.ELSEIF) {
		p.advance() // consume 'elseif'
		elseIfCond := p.parseExpression()
		elseIfBlock := &ast.BlockStatement{Token: p.peek()}
		p.parseBlock(elseIfBlock)
		ifStmt.ElseIfs = append(ifStmt.ElseIfs, &ast.ElseIfClause{Condition: elseIfCond, Body: elseIfBlock})
	}

	if p.check(token.ELSE) {
		p.advance() // consume 'else'
		elseBlock := &ast.BlockStatement{Token: p.peek()}
		p.parseBlock(elseBlock)
		ifStmt.Else = elseBlock
	}

	p.consume(token.END, "Expected 'end' after if statement")
	return ifStmt
}

// parseFor ports Parser::ParseFor: `for [type] name = start to end [: step] ... next`.
// QLang's for always counts up (no ForDownto), per spec.md §4.11.5.
func (p *Parser) parseFor() ast.Statement {
	tok := p.advance() // consume 'for'

	var kind string
	cur := p.peek()
	if p.isTypeToken(cur.Type) {
		if cur.Type == token.BOOL || cur.Type == token.STRINGTYPE {
			p.reportError("Illegal for type: " + cur.Literal)
			return nil
		}
		kind = cur.Literal
		p.advance()
	}

	if !p.check(token.IDENT) {
		p.reportError("expected variable name")
		return nil
	}
	nameTok := p.advance()
	p.declaredVars[nameTok.Literal] = true

	if !p.checkOp("=") {
		p.reportError("expected '='")
		return nil
	}
	p.advance() // consume '='

	start := p.parseExpression()

	if !p.check(token.TO) {
		p.reportError("expected 'to'")
		return nil
	}
	p.advance() // consume 'to'

	end := p.parseExpression()

	var step ast.Expression
	if p.check(token.COLON) {
		p.advance() // consume ':'
		step = p.parseExpression()
	}

	body := &ast.BlockStatement{Token: p.peek()}
	p.parseBlock(body)

	if p.check(token.NEXT) {
		p.advance()
	} else {
		p.reportError("expected 'next'")
	}

	return &ast.ForStatement{Token: tok, Kind: kind, Name: nameTok.Literal, Start: start, End: end, Step: step, Body: body}
}

// parseWhile ports Parser::ParseWhile: `while cond ... wend`.
func (p *Parser) parseWhile() ast.Statement {
	tok := p.advance() // consume 'while'

	condition := p.parseExpression()
	body := &ast.BlockStatement{Token: p.peek()}
	p.parseBlock(body)

	if p.check(token.WEND) {
		p.advance()
	} else {
		p.reportError("expected 'wend'")
	}

	return &ast.WhileStatement{Token: tok, Condition: condition, Body: body}
}
