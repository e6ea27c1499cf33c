package aether

// TokenType represents the kind of token.
type TokenType int

const (
	// Single-character punctuation
	LEFT_PAREN TokenType = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR
	PERCENT

	// One- or two-character operators
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// Literals & identifiers
	IDENTIFIER
	STRING
	NUMBER

	// Keywords
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
	LENGTH
	FIND
	REPLACE

	EOF
)

// Token is a lexical token with optional literal value.
// Tokens are immutable once created.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw source slice
	Literal interface{} // float64 for NUMBER, string for STRING/IDENTIFIER, else nil
	Line    int         // 1-based
}

// keywords map. CLASS, SUPER and THIS are recognized by the lexer but have
// no grammar production; the parser rejects them with "Expect expression.".
var keywords = map[string]TokenType{
	"and":     AND,
	"class":   CLASS,
	"else":    ELSE,
	"false":   FALSE,
	"for":     FOR,
	"fun":     FUN,
	"if":      IF,
	"nil":     NIL,
	"or":      OR,
	"print":   PRINT,
	"return":  RETURN,
	"super":   SUPER,
	"this":    THIS,
	"true":    TRUE,
	"var":     VAR,
	"while":   WHILE,
	"length":  LENGTH,
	"find":    FIND,
	"replace": REPLACE,
}
