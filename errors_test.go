// errors_test.go
package aether

import (
	"errors"
	"strings"
	"testing"
)

func Test_Error_Message_Formats(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&LexerError{Line: 2, Message: "Unterminated string."},
			"[line 2] Error: Unterminated string."},
		{&ParseError{Line: 5, Where: "x", Message: "Expect ';' after expression."},
			"[line 5] Error at 'x': Expect ';' after expression."},
		{&ParseError{Line: 1, Where: "end", Message: "Expect expression."},
			"[line 1] Error at 'end': Expect expression."},
		{&RuntimeError{Line: 3, Message: "Division by zero."},
			"[line 3] RuntimeError: Division by zero."},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("Error() = %q, want %q", got, c.want)
		}
	}
}

func Test_WrapErrorWithSource_Snippet(t *testing.T) {
	src := "var x = 1;\nprint x\nx = 2;"
	err := &ParseError{Line: 2, Where: "x", Message: "Expect ';' after expression."}
	got := WrapErrorWithSource(err, src).Error()

	lines := strings.Split(got, "\n")
	if lines[0] != "PARSE ERROR at line 2: at 'x': Expect ';' after expression." {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "" {
		t.Fatalf("expected blank line after header, got %q", lines[1])
	}
	if lines[2] != "     1 | var x = 1;" {
		t.Fatalf("context before = %q", lines[2])
	}
	if lines[3] != ">    2 | print x" {
		t.Fatalf("marker line = %q", lines[3])
	}
	if lines[4] != "     3 | x = 2;" {
		t.Fatalf("context after = %q", lines[4])
	}
}

func Test_WrapErrorWithSource_First_Line(t *testing.T) {
	src := "print @;\nprint 1;"
	err := &LexerError{Line: 1, Message: "Unexpected character."}
	got := WrapErrorWithSource(err, src).Error()
	if strings.Contains(got, "   0 |") {
		t.Fatalf("rendered a line before the start:\n%s", got)
	}
	if !strings.HasPrefix(got, "LEXICAL ERROR at line 1: Unexpected character.") {
		t.Fatalf("header:\n%s", got)
	}
	if !strings.Contains(got, ">    1 | print @;") {
		t.Fatalf("missing marker:\n%s", got)
	}
	if !strings.Contains(got, "     2 | print 1;") {
		t.Fatalf("missing context line:\n%s", got)
	}
}

func Test_WrapErrorWithSource_Last_Line(t *testing.T) {
	src := "var a = 1;\nprint a / 0;"
	err := &RuntimeError{Line: 2, Message: "Division by zero."}
	got := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(got, ">    2 | print a / 0;") {
		t.Fatalf("missing marker:\n%s", got)
	}
	if strings.Contains(got, "   3 |") {
		t.Fatalf("rendered a line past the end:\n%s", got)
	}
}

func Test_WrapErrorWithSource_Clamps_Out_Of_Range_Lines(t *testing.T) {
	src := "print 1;"
	for _, line := range []int{0, -3, 99} {
		err := &RuntimeError{Line: line, Message: "boom"}
		got := WrapErrorWithSource(err, src).Error()
		if !strings.Contains(got, ">    1 | print 1;") {
			t.Fatalf("line %d not clamped:\n%s", line, got)
		}
	}
}

func Test_WrapErrorWithSource_Passes_Other_Errors_Through(t *testing.T) {
	plain := errors.New("disk on fire")
	if got := WrapErrorWithSource(plain, "print 1;"); got != plain {
		t.Fatalf("got %v, want the original error", got)
	}
}
