package lexer

import (
	"testing"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

func TestNextToken_ClassSkeleton(t *testing.T) {
	input := `class Animal
  int32 age;
  method Speak() end
end`

	// Each '\n' now scans as its own end-of-line token (literal "\n"), same
	// kind as ';', per Tokenizer.cpp:220-224 — interspersed below wherever
	// the raw string above has a line break.
	tests := []struct {
		wantType    token.Type
		wantLiteral string
	}{
		{token.CLASS, "class"},
		{token.IDENT, "Animal"},
		{token.SEMICOLON, "\n"},
		{token.INT32, "int32"},
		{token.IDENT, "age"},
		{token.SEMICOLON, ";"},
		{token.SEMICOLON, "\n"},
		{token.METHOD, "method"},
		{token.IDENT, "Speak"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.END, "end"},
		{token.SEMICOLON, "\n"},
		{token.END, "end"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("token[%d] type = %v, want %v (literal %q)", i, tok.Type, tt.wantType, tok.Literal)
		}
		if tok.Literal != tt.wantLiteral {
			t.Fatalf("token[%d] literal = %q, want %q", i, tok.Literal, tt.wantLiteral)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `x = 1; y == 2; z != 3; a <= b; c >= d; e && f; g || h; i++; j += 1;`

	want := []string{
		"x", "=", "1", ";",
		"y", "==", "2", ";",
		"z", "!=", "3", ";",
		"a", "<=", "b", ";",
		"c", ">=", "d", ";",
		"e", "&&", "f", ";",
		"g", "||", "h", ";",
		"i", "++", ";",
		"j", "+=", "1", ";",
	}

	l := New(input)
	for i, lit := range want {
		tok := l.NextToken()
		if tok.Literal != lit {
			t.Fatalf("token[%d] literal = %q, want %q", i, tok.Literal, lit)
		}
	}
}

func TestNextToken_GenericBrackets(t *testing.T) {
	// '<' and '>' alone lex as LESS/GREATER (generic brackets), not OPERATOR,
	// per original_source/QLang/Tokenizer.cpp's ScanOperatorOrPunctuation.
	l := New(`Box<int32>`)
	if tok := l.NextToken(); tok.Type != token.IDENT {
		t.Fatalf("got %v, want IDENT", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != token.LESS {
		t.Fatalf("got %v, want LESS", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != token.INT32 {
		t.Fatalf("got %v, want INT32", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != token.GREATER {
		t.Fatalf("got %v, want GREATER", tok.Type)
	}
}

func TestNextToken_Comments(t *testing.T) {
	input := "x = 1; // line comment\ny = 2; /* block\ncomment */ z = 3;"
	l := New(input)
	var lits []string
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		lits = append(lits, tok.Literal)
	}
	// The '\n' left dangling after "// line comment" now scans as its own
	// end-of-line token (literal "\n"), same kind as ';', per
	// Tokenizer.cpp:220-224 — it is not swallowed as trivia.
	want := []string{"x", "=", "1", ";", "\n", "y", "=", "2", ";", "z", "=", "3", ";"}
	if len(lits) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(lits), lits, len(want))
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Fatalf("token[%d] = %q, want %q", i, lits[i], want[i])
		}
	}
}

func TestNextToken_FloatVsDotAccess(t *testing.T) {
	// A '.' only fuses into a float when followed by a digit; otherwise it's
	// a standalone DOT token for member access, per ScanNumber's lookahead.
	l := New(`3.14 obj.field`)
	tok := l.NextToken()
	if tok.Type != token.FLOAT || tok.Literal != "3.14" {
		t.Fatalf("got %v %q, want FLOAT 3.14", tok.Type, tok.Literal)
	}
	l.NextToken() // obj
	dot := l.NextToken()
	if dot.Type != token.DOT {
		t.Fatalf("got %v, want DOT", dot.Type)
	}
}

func TestNextToken_ScopeAndInheritanceKeywords(t *testing.T) {
	input := `super::Init(); method virtual override`

	want := []struct {
		typ token.Type
		lit string
	}{
		{token.SUPER, "super"},
		{token.SCOPE, "::"},
		{token.IDENT, "Init"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.METHOD, "method"},
		{token.VIRTUAL, "virtual"},
		{token.OVERRIDE, "override"},
	}

	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Fatalf("token[%d] = %v(%q), want %v(%q)", i, tok.Type, tok.Literal, tt.typ, tt.lit)
		}
	}
}

func TestNextToken_Position(t *testing.T) {
	l := New("x\ny")
	first := l.NextToken()
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Fatalf("got %v, want 1:1", first.Pos)
	}
	// The '\n' itself is a real SEMICOLON token, scanned at its own
	// position before the line counter advances.
	nl := l.NextToken()
	if nl.Type != token.SEMICOLON || nl.Literal != "\n" {
		t.Fatalf("got %v(%q), want SEMICOLON(\"\\n\")", nl.Type, nl.Literal)
	}
	if nl.Pos.Line != 1 || nl.Pos.Column != 2 {
		t.Fatalf("got %v, want 1:2", nl.Pos)
	}
	third := l.NextToken()
	if third.Pos.Line != 2 || third.Pos.Column != 1 {
		t.Fatalf("got %v, want 2:1", third.Pos)
	}
}
