// lexer_test.go
package aether

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func wantLexError(t *testing.T, src string, msgPart string) *LexerError {
	t.Helper()
	_, err := NewLexer(src).Scan()
	if err == nil {
		t.Fatalf("expected lex error for %q, got none", src)
	}
	le, ok := err.(*LexerError)
	if !ok {
		t.Fatalf("expected *LexerError, got %T: %v", err, err)
	}
	if !strings.Contains(le.Message, msgPart) {
		t.Fatalf("error %q does not mention %q", le.Message, msgPart)
	}
	return le
}

func Test_Lexer_Punctuation_And_Operators(t *testing.T) {
	wantTypes(t, "( ) { } [ ] , . - + ; / * %", []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE,
		LEFT_BRACKET, RIGHT_BRACKET, COMMA, DOT, MINUS, PLUS,
		SEMICOLON, SLASH, STAR, PERCENT,
	})
	wantTypes(t, "! != = == < <= > >=", []TokenType{
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL,
		LESS, LESS_EQUAL, GREATER, GREATER_EQUAL,
	})
}

func Test_Lexer_Keywords_And_Identifiers(t *testing.T) {
	got := wantTypes(t, "var x1 = while_ and or nil fun class super this;", []TokenType{
		VAR, IDENTIFIER, EQUAL, IDENTIFIER, AND, OR, NIL, FUN,
		CLASS, SUPER, THIS, SEMICOLON,
	})
	if got[1].Literal.(string) != "x1" {
		t.Fatalf("identifier literal = %v, want x1", got[1].Literal)
	}
	// An identifier that merely contains a keyword stays an identifier.
	if got[3].Literal.(string) != "while_" {
		t.Fatalf("identifier literal = %v, want while_", got[3].Literal)
	}
}

func Test_Lexer_Underscore_Start_Identifier(t *testing.T) {
	got := wantTypes(t, "_tmp", []TokenType{IDENTIFIER})
	if got[0].Literal.(string) != "_tmp" {
		t.Fatalf("literal = %v", got[0].Literal)
	}
}

func Test_Lexer_Numbers(t *testing.T) {
	got := wantTypes(t, "12 0.5 3.25", []TokenType{NUMBER, NUMBER, NUMBER})
	for i, want := range []float64{12, 0.5, 3.25} {
		if got[i].Literal.(float64) != want {
			t.Fatalf("literal[%d] = %v, want %v", i, got[i].Literal, want)
		}
	}
}

func Test_Lexer_Trailing_Dot_Is_Separate_Token(t *testing.T) {
	got := wantTypes(t, "1.", []TokenType{NUMBER, DOT})
	if got[0].Literal.(float64) != 1 {
		t.Fatalf("number literal = %v, want 1", got[0].Literal)
	}
}

func Test_Lexer_String_Literal_Keeps_Raw_Escapes(t *testing.T) {
	// Escape decoding happens at evaluation, not here: the token literal
	// must still contain the two-character sequence.
	got := wantTypes(t, `"a\nb"`, []TokenType{STRING})
	if got[0].Literal.(string) != `a\nb` {
		t.Fatalf("raw literal = %q, want %q", got[0].Literal, `a\nb`)
	}
}

func Test_Lexer_String_With_Escaped_Quote(t *testing.T) {
	got := wantTypes(t, `"say \"hi\""`, []TokenType{STRING})
	if got[0].Literal.(string) != `say \"hi\"` {
		t.Fatalf("raw literal = %q", got[0].Literal)
	}
}

func Test_Lexer_Invalid_Escape_Fails(t *testing.T) {
	le := wantLexError(t, `var s = "\q";`, "Invalid escape sequence")
	if le.Line != 1 {
		t.Fatalf("line = %d, want 1", le.Line)
	}
}

func Test_Lexer_Unterminated_String_Fails(t *testing.T) {
	le := wantLexError(t, "var s = \"abc", "Unterminated string")
	if le.Line != 1 {
		t.Fatalf("line = %d, want 1", le.Line)
	}
}

func Test_Lexer_Unexpected_Character(t *testing.T) {
	wantLexError(t, "var x = 1 @ 2;", "Unexpected character")
}

func Test_Lexer_Identifiers_Are_ASCII_Only(t *testing.T) {
	// Identifiers are [A-Za-z_][A-Za-z0-9_]*; a non-ASCII letter cannot
	// start one and is rejected at the first byte.
	wantLexError(t, "var пример = 1;", "Unexpected character")
	wantLexError(t, "var é = 1;", "Unexpected character")
}

func Test_Lexer_Comments_Are_Discarded(t *testing.T) {
	wantTypes(t, "// a comment\nvar x = 1; // trailing\n", []TokenType{
		VAR, IDENTIFIER, EQUAL, NUMBER, SEMICOLON,
	})
}

func Test_Lexer_Line_Numbers(t *testing.T) {
	got := toks(t, "var a;\nvar b;\n\nvar c;")
	lines := map[string]int{}
	for _, tok := range got {
		if tok.Type == IDENTIFIER {
			lines[tok.Literal.(string)] = tok.Line
		}
	}
	want := map[string]int{"a": 1, "b": 2, "c": 4}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
}

func Test_Lexer_Multiline_String_Counts_Lines(t *testing.T) {
	got := toks(t, "\"a\nb\"\nvar x;")
	if got[0].Type != STRING {
		t.Fatalf("first token = %v", got[0].Type)
	}
	// VAR follows the two-line string and the newline after it.
	if got[1].Type != VAR || got[1].Line != 3 {
		t.Fatalf("var token = %+v, want line 3", got[1])
	}
}

func Test_Lexer_Builtin_Keywords(t *testing.T) {
	wantTypes(t, `length("a") find("a","b") replace("a","b","c")`, []TokenType{
		LENGTH, LEFT_PAREN, STRING, RIGHT_PAREN,
		FIND, LEFT_PAREN, STRING, COMMA, STRING, RIGHT_PAREN,
		REPLACE, LEFT_PAREN, STRING, COMMA, STRING, COMMA, STRING, RIGHT_PAREN,
	})
}
