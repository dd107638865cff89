// Package ast — control-flow node types, adapted from
// go-dws/ast/control_flow.go's IfStatement/WhileStatement/ForStatement
// shapes. QLang drops RepeatStatement/CaseStatement (no repeat/until or
// case/switch in spec.md) and ForStatement drops ForDownto (QLang's
// `for` always counts up, spec.md §4.4.2) while adding an optional
// `: step` expression (spec.md §4.11.5).
package ast

import (
	"bytes"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

// ElseIfClause is one `elseif cond ... ` arm of an IfStatement.
type ElseIfClause struct {
	Condition Expression
	Body      *BlockStatement
}

// IfStatement represents `if cond ... elseif cond ... else ... end`.
type IfStatement struct {
	Token     token.Token // the 'if' token
	Condition Expression
	Then      *BlockStatement
	ElseIfs   []*ElseIfClause
	Else      *BlockStatement // nil if absent
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if " + is.Condition.String() + "\n")
	out.WriteString(is.Then.String())
	for _, ei := range is.ElseIfs {
		out.WriteString("elseif " + ei.Condition.String() + "\n")
		out.WriteString(ei.Body.String())
	}
	if is.Else != nil {
		out.WriteString("else\n")
		out.WriteString(is.Else.String())
	}
	out.WriteString("end")
	return out.String()
}

// WhileStatement represents `while cond ... wend`.
type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	out.WriteString("while " + ws.Condition.String() + "\n")
	out.WriteString(ws.Body.String())
	out.WriteString("wend")
	return out.String()
}

// ForStatement represents `for [kind] name = start to end [: step] ... next`.
// Kind is "" when the loop variable's type is inferred from Start
// (spec.md §4.11.5: "coerce `var` to the declared type if given, else
// infer from the start value").
type ForStatement struct {
	Token token.Token // the 'for' token
	Kind  string
	Name  string
	Start Expression
	End   Expression
	Step  Expression // nil if absent (defaults to 1 at evaluation)
	Body  *BlockStatement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() token.Position  { return fs.Token.Pos }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	if fs.Kind != "" {
		out.WriteString(fs.Kind + " ")
	}
	out.WriteString(fs.Name + " = " + fs.Start.String() + " to " + fs.End.String())
	if fs.Step != nil {
		out.WriteString(" : " + fs.Step.String())
	}
	out.WriteString("\n")
	out.WriteString(fs.Body.String())
	out.WriteString("next")
	return out.String()
}
