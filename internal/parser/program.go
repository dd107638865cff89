package parser

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// parseProgram ports Parser::ParseProgram: consume `module NAME`, zero or
// more `import NAME` / `[static] class ...` declarations, then the
// top-level code block.
func (p *Parser) parseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.atEnd() {
		cur := p.peek()

		switch cur.Type {
		case token.MODULE:
			p.advance()
			if p.check(token.IDENT) {
				p.advance()
			} else {
				p.reportError("Expected module name after 'module'")
			}
			continue
		case token.IMPORT:
			p.advance()
			if p.check(token.IDENT) {
				name := p.advance()
				program.Imports = append(program.Imports, name.Literal)
			} else {
				p.reportError("Expected module name after 'import'")
			}
			continue
		case token.STATIC:
			p.advance()
			if p.check(token.CLASS) {
				cls := p.parseClass()
				if cls != nil {
					cls.IsStatic = true
					p.classNames[cls.Name] = true
					program.Classes = append(program.Classes, cls)
				}
			} else {
				p.reportError("Expected 'class' after 'static'")
			}
			continue
		case token.CLASS:
			cls := p.parseClass()
			if cls != nil {
				p.classNames[cls.Name] = true
				program.Classes = append(program.Classes, cls)
			}
			continue
		case token.EOF:
			program.Body = &ast.BlockStatement{Token: cur}
			return program
		case token.SEMICOLON:
			// End-of-line separator (';' or '\n') between module/import/
			// class declarations; ParseProgram skips these the same way.
			p.advance()
			continue
		}

		// Anything else is the start of the top-level code block.
		break
	}

	program.Body = &ast.BlockStatement{Token: p.peek()}
	p.parseBlock(program.Body)
	return program
}

// blockEnds reports whether t is one of the tokens ParseCode treats as a
// block terminator (the caller consumes it, not parseBlock).
func blockEnds(t token.Type) bool {
	switch t {
	case token.END, token.EOF, token.ELSEIF, token.ELSE, token.NEXT, token.WEND:
		return true
	default:
		return false
	}
}

// parseBlock ports Parser::ParseCode: it appends statements to block until
// a terminator token is reached, without consuming the terminator.
func (p *Parser) parseBlock(block *ast.BlockStatement) {
	for !p.atEnd() {
		cur := p.peek()
		if blockEnds(cur.Type) {
			return
		}

		// A bare SEMICOLON here is an end-of-line separator left over
		// between statements (from ';', a '\n', or both together), not an
		// empty statement. ParseCode skips T_END_OF_LINE the same way.
		if cur.Type == token.SEMICOLON {
			p.advance()
			continue
		}

		stmt := p.parseTopLevelStatement(cur)
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
}

// parseTopLevelStatement dispatches one statement inside a block, mirroring
// ParseCode's big if/else-if chain.
func (p *Parser) parseTopLevelStatement(cur token.Token) ast.Statement {
	switch {
	case cur.Type == token.IF:
		return p.parseIf()
	case cur.Type == token.FOR:
		return p.parseFor()
	case cur.Type == token.WHILE:
		return p.parseWhile()
	case cur.Type == token.RETURN:
		return p.parseReturn()
	case cur.Type == token.SUPER:
		return p.parseSuperCall()
	case p.isTypeToken(cur.Type):
		return p.parseVarDecl()
	case cur.Type == token.IDENT && p.isClassName(cur.Literal):
		return p.parseVarDecl()
	case cur.Type == token.IDENT || cur.Type == token.THIS:
		return p.parseIdentifierLedStatement()
	default:
		p.reportError("Unexpected token '" + cur.Literal + "'")
		p.advance()
		return nil
	}
}

// parseSuperCall ports the `super::Method(args);` branch inlined directly
// in ParseCode (there is no separate Parser::ParseSuperCall in the
// original; it builds a QMethodCall("super", methodName) on the spot).
func (p *Parser) parseSuperCall() ast.Statement {
	tok := p.advance() // consume 'super'
	if !p.match(token.SCOPE) {
		p.reportError("expected '::' after 'super'")
		return nil
	}
	if !p.check(token.IDENT) {
		p.reportError("expected method name after 'super::'")
		return nil
	}
	method := p.advance().Literal

	call := &ast.MethodCallStatement{Token: tok, Path: []string{"super"}, Method: method}
	if p.check(token.LPAREN) {
		call.Args = p.parseArguments()
	}
	p.consumeSemicolon()
	return call
}

// parseIdentifierLedStatement ports ParseCode's dotted-chain disambiguation
// (the save-position/replay trick) for statements starting with an
// identifier or `this`.
func (p *Parser) parseIdentifierLedStatement() ast.Statement {
	next := p.peekNext()

	switch {
	case next.Type == token.DOT:
		return p.parseDottedStatement()
	case next.Type == token.LBRACKET:
		return p.parseAssign()
	case next.Type == token.OPERATOR && next.Literal == "=":
		return p.parseAssign()
	case next.Type == token.OPERATOR && (next.Literal == "++" || next.Literal == "--"):
		return p.parseIncrement()
	default:
		// Variable-declaration check: TYPE NAME, where TYPE is an
		// as-yet-unregistered class/generic name (validated later, per
		// spec.md §9's deferred type-name validation).
		if next.Type == token.IDENT || next.Type == token.LESS {
			return p.parseVarDecl()
		}
		return p.parseBareCallStatement()
	}
}

// parseDottedStatement replays the save/restore protocol from ParseCode:
// walk the `.identifier` chain, then decide method-call vs member-assign
// from what follows it.
func (p *Parser) parseDottedStatement() ast.Statement {
	saved := p.current
	p.advance() // consume first identifier/this

	for p.check(token.DOT) {
		p.advance() // consume '.'
		if !p.check(token.IDENT) {
			p.current = saved
			p.reportError("expected identifier after '.'")
			p.advance()
			return nil
		}
		p.advance() // consume identifier
	}

	switch {
	case p.check(token.LPAREN):
		p.current = saved
		return p.parseMethodCall()
	case p.checkOp("="):
		p.current = saved
		return p.parseMemberAssign()
	default:
		p.current = saved
		p.reportError("expected '(' or '=' after member access chain")
		p.advance()
		return nil
	}
}

// parseBareCallStatement ports Parser::ParseStatement: a bare
// `Name(args);`, always requiring parentheses (QLang has no statement-level
// bare identifier other than a call).
func (p *Parser) parseBareCallStatement() ast.Statement {
	nameTok := p.advance()
	call := &ast.MethodCallStatement{Token: nameTok, Method: nameTok.Literal}

	if p.check(token.LPAREN) {
		call.Args = p.parseArguments()
	} else {
		p.reportError("Expected '(' after function or method name '" + nameTok.Literal + "'")
	}
	p.consumeSemicolon()
	return call
}
