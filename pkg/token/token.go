// Package token defines the token kinds produced by the QLang lexer and
// consumed by the parser.
package token

import "fmt"

// Type identifies the kind of a Token.
type Type int

const (
	EOF Type = iota
	ILLEGAL

	IDENT
	INT
	FLOAT
	STRING
	OPERATOR

	// Punctuation
	SEMICOLON // ;
	COMMA     // ,
	DOT       // .
	COLON     // :
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	LESS      // < (binary op and generic open bracket)
	GREATER   // > (binary op and generic close bracket)
	SCOPE     // ::

	keywordBegin
	MODULE
	IMPORT
	END
	CLASS
	METHOD
	NEW
	RETURN
	IF
	ELSE
	ELSEIF
	FOR
	TRUE
	FALSE
	THIS
	TO
	STEP
	NEXT
	WHILE
	WEND
	NULL
	STATIC
	SUPER
	VIRTUAL
	OVERRIDE
	keywordEnd

	typeBegin
	INT32
	INT64
	FLOAT32
	FLOAT64
	SHORT
	STRINGTYPE
	BOOL
	VOID
	CPTR
	IPTR
	FPTR
	BPTR
	typeEnd
)

var typeNames = map[Type]string{
	EOF:      "EOF",
	ILLEGAL:  "ILLEGAL",
	IDENT:    "IDENT",
	INT:      "INT",
	FLOAT:    "FLOAT",
	STRING:   "STRING",
	OPERATOR: "OPERATOR",

	SEMICOLON: ";",
	COMMA:     ",",
	DOT:       ".",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LESS:      "<",
	GREATER:   ">",
	SCOPE:     "::",

	MODULE: "module",
	IMPORT: "import",
	END:    "end",
	CLASS:  "class",
	METHOD: "method",
	NEW:    "new",
	RETURN: "return",
	IF:     "if",
	ELSE:   "else",
	ELSEIF: "elseif",
	FOR:    "for",
	TRUE:   "true",
	FALSE:  "false",
	THIS:   "this",
	TO:     "to",
	STEP:   "step",
	NEXT:   "next",
	WHILE:  "while",
	WEND:   "wend",
	NULL:     "null",
	STATIC:   "static",
	SUPER:    "super",
	VIRTUAL:  "virtual",
	OVERRIDE: "override",

	INT32:      "int32",
	INT64:      "int64",
	FLOAT32:    "float32",
	FLOAT64:    "float64",
	SHORT:      "short",
	STRINGTYPE: "string",
	BOOL:       "bool",
	VOID:       "void",
	CPTR:       "cptr",
	IPTR:       "iptr",
	FPTR:       "fptr",
	BPTR:       "bptr",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsKeyword reports whether t is one of QLang's reserved words.
func (t Type) IsKeyword() bool { return t > keywordBegin && t < keywordEnd }

// IsTypeName reports whether t is one of QLang's primitive type keywords.
func (t Type) IsTypeName() bool { return t > typeBegin && t < typeEnd }

// keywords maps the exact (case-sensitive) source spelling to its Type.
// original_source/QLang/Parser.cpp and Tokenizer.h never fold case, so
// neither does this lexer.
var keywords = map[string]Type{
	"module": MODULE,
	"import": IMPORT,
	"end":    END,
	"class":  CLASS,
	"method": METHOD,
	"new":    NEW,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"elseif": ELSEIF,
	"for":    FOR,
	"true":   TRUE,
	"false":  FALSE,
	"this":   THIS,
	"to":     TO,
	"step":   STEP,
	"next":   NEXT,
	"while":  WHILE,
	"wend":   WEND,
	"null":     NULL,
	"static":   STATIC,
	"super":    SUPER,
	"virtual":  VIRTUAL,
	"override": OVERRIDE,

	"int32":  INT32,
	"int64":  INT64,
	"float32": FLOAT32,
	"float64": FLOAT64,
	"short":  SHORT,
	"string": STRINGTYPE,
	"bool":   BOOL,
	"void":   VOID,
	"cptr":   CPTR,
	"iptr":   IPTR,
	"fptr":   FPTR,
	"bptr":   BPTR,
}

// LookupIdent returns the keyword Type for literal, or IDENT if literal
// is not a reserved word.
func LookupIdent(literal string) Type {
	if tok, ok := keywords[literal]; ok {
		return tok
	}
	return IDENT
}

// Position locates a token in its source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit with its source position.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

func New(typ Type, literal string, pos Position) Token {
	return Token{Type: typ, Literal: literal, Pos: pos}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}
