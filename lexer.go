// lexer.go — single-pass scanner for AetheR source.
//
// The lexer walks the source left to right with a start/current cursor pair
// and a line counter, classifying bytes into tokens. It only validates
// escape syntax inside string literals; the raw text between the quotes is
// stored on the token unchanged, and escape decoding happens later during
// literal evaluation (see interpreter.go). Lexing stops at the first invalid
// character, invalid escape or unterminated string.
package aether

import (
	"fmt"
	"strconv"
)

// Lexer scans an AetheR source string into tokens.
type Lexer struct {
	src     string
	start   int // start index of current token
	current int
	line    int // 1-based
	tokens  []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Scan tokenizes the entire source and returns the tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.current
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Lexeme: "", Line: l.line})
	return l.tokens, nil
}

func (l *Lexer) scanToken() error {
	c := l.advance()
	switch c {
	case '(':
		l.addToken(LEFT_PAREN)
	case ')':
		l.addToken(RIGHT_PAREN)
	case '{':
		l.addToken(LEFT_BRACE)
	case '}':
		l.addToken(RIGHT_BRACE)
	case '[':
		l.addToken(LEFT_BRACKET)
	case ']':
		l.addToken(RIGHT_BRACKET)
	case ',':
		l.addToken(COMMA)
	case '.':
		l.addToken(DOT)
	case '-':
		l.addToken(MINUS)
	case '+':
		l.addToken(PLUS)
	case ';':
		l.addToken(SEMICOLON)
	case '*':
		l.addToken(STAR)
	case '%':
		l.addToken(PERCENT)
	case '!':
		if l.match('=') {
			l.addToken(BANG_EQUAL)
		} else {
			l.addToken(BANG)
		}
	case '=':
		if l.match('=') {
			l.addToken(EQUAL_EQUAL)
		} else {
			l.addToken(EQUAL)
		}
	case '<':
		if l.match('=') {
			l.addToken(LESS_EQUAL)
		} else {
			l.addToken(LESS)
		}
	case '>':
		if l.match('=') {
			l.addToken(GREATER_EQUAL)
		} else {
			l.addToken(GREATER)
		}
	case '/':
		if l.match('/') {
			// line comment, discarded
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else {
			l.addToken(SLASH)
		}
	case ' ', '\r', '\t':
		// whitespace, ignored
	case '\n':
		l.line++
	case '"':
		return l.scanString()
	default:
		if isDigit(c) {
			return l.scanNumber()
		}
		if isAlpha(c) {
			l.scanIdentifier()
			return nil
		}
		return &LexerError{Line: l.line, Message: fmt.Sprintf("Unexpected character '%c'.", c)}
	}
	return nil
}

// scanString consumes a double-quoted string literal. Escape sequences are
// validated (\n \t \r \" \\) but NOT decoded: the token literal is the raw
// text between the quotes. Decoding happens at evaluation time.
func (l *Lexer) scanString() error {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\\' {
			switch l.peekNext() {
			case '"', 'n', 't', 'r', '\\':
				l.advance() // backslash
				l.advance() // escaped character
			default:
				return &LexerError{Line: l.line, Message: "Invalid escape sequence."}
			}
			continue
		}
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		return &LexerError{Line: l.line, Message: "Unterminated string."}
	}

	l.advance() // closing quote
	l.addTokenLiteral(STRING, l.src[l.start+1:l.current-1])
	return nil
}

// scanNumber consumes a digit sequence optionally followed by '.' and more
// digits. A trailing '.' without a digit is left for the next token.
func (l *Lexer) scanNumber() error {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	f, err := strconv.ParseFloat(l.src[l.start:l.current], 64)
	if err != nil {
		return &LexerError{Line: l.line, Message: "Invalid number literal."}
	}
	l.addTokenLiteral(NUMBER, f)
	return nil
}

// scanIdentifier consumes [A-Za-z_][A-Za-z0-9_]* and classifies keywords.
// Non-keyword identifiers carry the scanned text as their literal.
func (l *Lexer) scanIdentifier() {
	for isAlphaNum(l.peek()) {
		l.advance()
	}
	text := l.src[l.start:l.current]
	if tt, ok := keywords[text]; ok {
		l.addToken(tt)
		return
	}
	l.addTokenLiteral(IDENTIFIER, text)
}

// ----- cursor helpers -----

func (l *Lexer) isAtEnd() bool { return l.current >= len(l.src) }

func (l *Lexer) advance() byte {
	c := l.src[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.src) {
		return 0
	}
	return l.src[l.current+1]
}

func (l *Lexer) addToken(tt TokenType) { l.addTokenLiteral(tt, nil) }

func (l *Lexer) addTokenLiteral(tt TokenType, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.current],
		Literal: lit,
		Line:    l.line,
	})
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
