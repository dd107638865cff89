package parser

import (
	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// parseClass ports Parser::ParseClass: `[static] class Name[(Parent)][<T,...>] ... end`.
func (p *Parser) parseClass() *ast.ClassDecl {
	tok := p.advance() // consume 'class'

	if !p.check(token.IDENT) {
		p.reportError("expected class name after 'class'")
		return nil
	}
	nameTok := p.advance()

	// Register immediately so self-referential members (e.g. `Node next;`)
	// resolve, per Parser.cpp's "register class name immediately" comment.
	p.classNames[nameTok.Literal] = true

	previousContext := p.currentContext
	p.currentContext = nameTok.Literal
	p.classMemberVars = make(map[string]bool)

	cls := &ast.ClassDecl{Token: tok, Name: nameTok.Literal}

	if p.check(token.LPAREN) {
		p.advance() // consume '('
		if !p.check(token.IDENT) {
			p.reportError("expected parent class name after '('")
		} else {
			cls.Parent = p.advance().Literal
		}
		if p.check(token.RPAREN) {
			p.advance()
		} else {
			p.reportError("expected ')' after parent class name")
		}
	}

	cls.TypeParams = p.parseTypeParams()

	previousTypeParams := p.currentTypeParams
	p.currentTypeParams = cls.TypeParams

	for !p.atEnd() && !p.check(token.END) {
		cur := p.peek()

		switch {
		case cur.Type == token.METHOD:
			method := p.parseMethod()
			if method != nil {
				cls.Methods = append(cls.Methods, method)
			}
		case p.isTypeToken(cur.Type):
			field := p.parseFieldDecl()
			if field != nil {
				cls.Members = append(cls.Members, field)
				p.classMemberVars[field.Name] = true
			}
		case cur.Type == token.IDENT && containsString(p.currentTypeParams, cur.Literal):
			field := p.parseFieldDecl()
			if field != nil {
				cls.Members = append(cls.Members, field)
				p.classMemberVars[field.Name] = true
			}
		case cur.Type == token.IDENT &&
			(p.isClassName(cur.Literal) || p.peekNext().Type == token.IDENT || p.peekNext().Type == token.LESS):
			field := p.parseFieldDecl()
			if field != nil {
				cls.Members = append(cls.Members, field)
				p.classMemberVars[field.Name] = true
			}
		default:
			p.advance()
		}
	}

	if p.check(token.END) {
		p.advance()
	} else {
		p.reportError("expected 'end' to close class")
		p.recoverToNextStatement()
	}

	p.currentTypeParams = previousTypeParams
	p.currentContext = previousContext
	return cls
}

// parseMethod ports Parser::ParseMethod: return type, name, parameter
// list, optional virtual/override, body, closing 'end', and the
// method-context-range registration used by internal/errors.Collector's
// function-body diagnostic printing.
func (p *Parser) parseMethod() *ast.MethodDecl {
	p.advance() // consume 'method'

	returnKind := ""
	typeTok := p.peek()
	switch {
	case p.check(token.VOID) || p.isTypeToken(typeTok.Type):
		returnKind = typeTok.Literal
		p.advance()
	case typeTok.Type == token.IDENT && p.peekNext().Type == token.IDENT:
		returnKind = typeTok.Literal
		p.advance()
	}

	if !p.check(token.IDENT) {
		p.reportError("expected method name")
		return nil
	}
	nameTok := p.advance()

	method := &ast.MethodDecl{Token: nameTok, Name: nameTok.Literal, ReturnTypeKind: returnKind}

	fullContext := nameTok.Literal
	if p.currentContext != "" {
		fullContext = p.currentContext + "." + nameTok.Literal
	}
	startLine := nameTok.Pos.Line
	previousContext := p.currentContext
	p.currentContext = fullContext

	if p.check(token.LPAREN) {
		p.advance() // consume '('
		p.declaredVars = make(map[string]bool)

		for !p.atEnd() && !p.check(token.RPAREN) {
			if p.isTypeToken(p.peek().Type) || p.check(token.IDENT) {
				paramType := p.advance()
				if p.check(token.IDENT) {
					paramName := p.advance()
					method.Params = append(method.Params, &ast.Param{Kind: paramType.Literal, Name: paramName.Literal})
					p.declaredVars[paramName.Literal] = true
				} else {
					p.reportError("expected parameter name")
				}
			} else {
				p.reportError("expected parameter type")
				p.advance()
			}

			if p.check(token.COMMA) {
				p.advance()
			}
		}

		if p.check(token.RPAREN) {
			p.advance()
		}
	}

	if p.check(token.VIRTUAL) {
		p.advance()
		method.IsVirtual = true
	} else if p.check(token.OVERRIDE) {
		p.advance()
		method.IsOverride = true
	}

	method.Body = &ast.BlockStatement{Token: p.peek()}
	p.parseBlock(method.Body)

	if p.check(token.END) {
		p.advance()
	} else {
		p.reportError("expected 'end' to close method")
	}

	method.StartLine = startLine
	method.EndLine = p.previous().Pos.Line
	if p.collector != nil {
		p.collector.RegisterContext(fullContext, method.StartLine, method.EndLine)
	}

	p.currentContext = previousContext
	return method
}
