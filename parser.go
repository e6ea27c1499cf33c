// parser.go — recursive-descent parser for AetheR.
//
// Consumes the token stream from lexer.go strictly left to right with one
// token of lookahead and builds the AST defined in ast.go. Precedence,
// lowest to highest binding:
//
//	assignment  =                 (right-assoc; plain variable or index target)
//	logic or    or                (eager, plain binary)
//	logic and   and
//	equality    == !=
//	comparison  > >= < <=
//	term        + -
//	factor      * / %
//	unary       ! -
//	call        f(...) a[...]    (chainable postfix)
//	primary     literals, identifiers, groups, array literals,
//	            length/find/replace built-in forms
//
// `for` is desugared here into Block[init, While(cond, Block[body, incr])].
// The first grammar violation aborts the whole parse; no partial program is
// returned.
package aether

// Parser builds a Program from a token sequence.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a parser over the given tokens (EOF-terminated).
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete program or fails with a *ParseError.
func (p *Parser) Parse() (*Program, error) {
	var statements []Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return &Program{Statements: statements}, nil
}

// ParseSource is the lex-then-parse convenience used by the CLI and tests.
func ParseSource(src string) (*Program, error) {
	tokens, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// ----- declarations & statements -----

func (p *Parser) declaration() (Stmt, error) {
	if p.match(FUN) {
		return p.function()
	}
	if p.match(VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer Expr
	if p.match(EQUAL) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarDecl{Name: name, Initializer: initializer}, nil
}

func (p *Parser) function() (Stmt, error) {
	name, err := p.consume(IDENTIFIER, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(LEFT_PAREN, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RIGHT_PAREN) {
		for {
			if len(params) >= 255 {
				return nil, p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err = p.consume(RIGHT_PAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err = p.consume(LEFT_BRACE, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(FOR):
		return p.forStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(PRINT):
		return p.printStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(LEFT_BRACE):
		return p.block()
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (Stmt, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Keyword: keyword, Expression: value}, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	var err error
	if !p.check(SEMICOLON) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(LEFT_PAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(RIGHT_PAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.branch()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(ELSE) {
		if elseBranch, err = p.branch(); err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}, nil
}

// branch parses either a braced block or a single statement.
func (p *Parser) branch() (Stmt, error) {
	if p.match(LEFT_BRACE) {
		return p.block()
	}
	return p.statement()
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(LEFT_PAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(RIGHT_PAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.branch()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: condition, Body: body}, nil
}

// forStatement desugars `for (init; cond; incr) body` into
// Block[init, While(cond, Block[body, incr])]. An omitted condition
// becomes a literal true.
func (p *Parser) forStatement() (Stmt, error) {
	forTok := p.previous()
	if _, err := p.consume(LEFT_PAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		initializer = nil
	case p.match(VAR):
		if initializer, err = p.varDeclaration(); err != nil {
			return nil, err
		}
	default:
		if initializer, err = p.expressionStatement(); err != nil {
			return nil, err
		}
	}

	var condition Expr
	if !p.check(SEMICOLON) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(RIGHT_PAREN) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(RIGHT_PAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &Block{Statements: []Stmt{body, &ExprStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &Literal{Token: forTok, Value: true}
	}
	var loop Stmt = &WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		loop = &Block{Statements: []Stmt{initializer, loop}}
	}
	return loop, nil
}

func (p *Parser) block() (*Block, error) {
	var statements []Stmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return &Block{Statements: statements}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expression: expr}, nil
}

// ----- expressions -----

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Value: value}, nil
		case *IndexGet:
			return &IndexSet{
				Object:  target.Object,
				Bracket: target.Bracket,
				Index:   target.Index,
				Value:   value,
			}, nil
		}
		return nil, p.errorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

// or and and are ordinary left-associative binary operators; both operands
// are always evaluated (no short-circuit).
func (p *Parser) or() (Expr, error) {
	return p.binaryLevel(p.and, OR)
}

func (p *Parser) and() (Expr, error) {
	return p.binaryLevel(p.equality, AND)
}

func (p *Parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, BANG_EQUAL, EQUAL_EQUAL)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binaryLevel(p.term, GREATER, GREATER_EQUAL, LESS, LESS_EQUAL)
}

func (p *Parser) term() (Expr, error) {
	return p.binaryLevel(p.factor, MINUS, PLUS)
}

func (p *Parser) factor() (Expr, error) {
	return p.binaryLevel(p.unary, SLASH, STAR, PERCENT)
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: operator, Right: right}, nil
	}
	return p.call()
}

// call parses chainable postfix operators: f(x)[0](y) is legal.
func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LEFT_PAREN):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(LEFT_BRACKET):
			if expr, err = p.finishIndex(expr); err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var arguments []Expr
	if !p.check(RIGHT_PAREN) {
		for {
			if len(arguments) >= 255 {
				return nil, p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(RIGHT_PAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &Call{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

func (p *Parser) finishIndex(object Expr) (Expr, error) {
	bracket := p.previous()
	index, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(RIGHT_BRACKET, "Expect ']' after index."); err != nil {
		return nil, err
	}
	return &IndexGet{Object: object, Bracket: bracket, Index: index}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(FALSE):
		return &Literal{Token: p.previous(), Value: false}, nil
	case p.match(TRUE):
		return &Literal{Token: p.previous(), Value: true}, nil
	case p.match(NIL):
		return &Literal{Token: p.previous(), Value: nil}, nil
	case p.match(NUMBER, STRING):
		return &Literal{Token: p.previous(), Value: p.previous().Literal}, nil
	case p.match(IDENTIFIER):
		return &Variable{Name: p.previous()}, nil
	case p.match(LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err = p.consume(RIGHT_PAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Expression: expr}, nil
	case p.match(LEFT_BRACKET):
		return p.arrayLiteral()
	case p.match(LENGTH):
		keyword := p.previous()
		args, err := p.builtinArgs("length", 1)
		if err != nil {
			return nil, err
		}
		return &StrLength{Keyword: keyword, Str: args[0]}, nil
	case p.match(FIND):
		keyword := p.previous()
		args, err := p.builtinArgs("find", 2)
		if err != nil {
			return nil, err
		}
		return &StrFind{Keyword: keyword, Str: args[0], Sub: args[1]}, nil
	case p.match(REPLACE):
		keyword := p.previous()
		args, err := p.builtinArgs("replace", 3)
		if err != nil {
			return nil, err
		}
		return &StrReplace{Keyword: keyword, Str: args[0], Old: args[1], New: args[2]}, nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}

func (p *Parser) arrayLiteral() (Expr, error) {
	bracket := p.previous()
	var elements []Expr
	if !p.check(RIGHT_BRACKET) {
		for {
			elem, err := p.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(RIGHT_BRACKET, "Expect ']' after array elements."); err != nil {
		return nil, err
	}
	return &ArrayLit{Bracket: bracket, Elements: elements}, nil
}

// builtinArgs parses the exact parenthesized argument list of a string
// built-in form.
func (p *Parser) builtinArgs(name string, arity int) ([]Expr, error) {
	if _, err := p.consume(LEFT_PAREN, "Expect '(' after '"+name+"'."); err != nil {
		return nil, err
	}
	args := make([]Expr, 0, arity)
	for i := 0; i < arity; i++ {
		if i > 0 {
			if _, err := p.consume(COMMA, "Expect ',' between arguments."); err != nil {
				return nil, err
			}
		}
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.consume(RIGHT_PAREN, "Expect ')' after arguments."); err != nil {
		return nil, err
	}
	return args, nil
}

// ----- token basics & helpers -----

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token { return p.tokens[p.current] }

func (p *Parser) previous() Token { return p.tokens[p.current-1] }

func (p *Parser) consume(tt TokenType, message string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok Token, message string) error {
	where := tok.Lexeme
	if tok.Type == EOF {
		where = "end"
	}
	return &ParseError{Line: tok.Line, Where: where, Message: message}
}
