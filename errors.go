// errors.go: user-facing error types and line-snippet rendering.
//
// The pipeline raises three disjoint error kinds, each fatal to the stage
// that raised it: LexerError (scanning), ParseError (grammar) and
// RuntimeError (evaluation). All three carry a 1-based source line so an
// embedding host can highlight the offending line. WrapErrorWithSource
// turns any of them into a readable multi-line snippet with a marker on
// the offending line; other errors pass through unchanged.
package aether

import (
	"fmt"
	"strings"
)

// LexerError reports an invalid character, unterminated string or invalid
// escape sequence. Lexing aborts at the first such error.
type LexerError struct {
	Line    int
	Message string
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// ParseError reports the first grammar violation. Where holds the offending
// lexeme, or "end" when the parser ran off the token stream.
type ParseError struct {
	Line    int
	Where   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Where, e.Message)
}

// RuntimeError reports an execution failure. Statements already executed
// keep their observable side effects.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] RuntimeError: %s", e.Line, e.Message)
}

// WrapErrorWithSource returns an error whose message is a multi-line snippet
// of src around the failure line, with a "> " marker on the offending line:
//
//	PARSE ERROR at line 3: at 'x': Expect ';' after expression.
//
//	    2 | var x = 1;
//	  > 3 | print x
//	    4 | x = 2;
//
// Errors that are not lexer/parse/runtime errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexerError:
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", e.Line, e.Message))
	case *ParseError:
		msg := e.Message
		if e.Where != "" {
			msg = fmt.Sprintf("at '%s': %s", e.Where, e.Message)
		}
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", e.Line, msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", e.Line, e.Message))
	default:
		return err
	}
}

// snippet builds the header plus up to one line of context on each side.
// line is 1-based and clamped to the source bounds.
func snippet(src, header string, line int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at line %d: %s\n\n", header, line, msg)
	if line > 1 {
		fmt.Fprintf(&b, "  %4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "> %4d | %s\n", line, lines[line-1])
	if line < len(lines) {
		fmt.Fprintf(&b, "  %4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
