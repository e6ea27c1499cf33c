// interpreter.go — tree-walking evaluator.
//
// The interpreter is a direct structural recursion over the AST. The active
// environment is threaded explicitly through every evaluation call; there is
// no mutable current-environment field to restore on error paths. Statement
// execution returns an explicit control outcome (normal or return-with-value)
// so the non-local exit of `return` never travels through the error channel:
// a RuntimeError aborts the run, a return unwinds exactly to the enclosing
// call boundary.
//
// The only side effect the core performs is invoking the output callback for
// each `print`, once per execution, in program order. The core never writes
// to any I/O channel itself.
package aether

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Interpreter evaluates programs against a persistent global environment.
type Interpreter struct {
	globals *Env
	out     func(string)
}

// NewInterpreter returns an interpreter with a fresh global environment.
// Output is discarded until SetOutput installs a callback.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		globals: NewEnv(nil),
		out:     func(string) {},
	}
}

// SetOutput installs the print callback. Passing nil discards output.
func (ip *Interpreter) SetOutput(out func(string)) {
	if out == nil {
		out = func(string) {}
	}
	ip.out = out
}

// Globals exposes the global environment, for embedding hosts.
func (ip *Interpreter) Globals() *Env { return ip.globals }

// Interpret evaluates each top-level statement in order. The first
// RuntimeError stops execution and is returned; prints already emitted
// stand. A top-level return is rejected.
func (ip *Interpreter) Interpret(prog *Program) error {
	for _, stmt := range prog.Statements {
		ctl, err := ip.exec(stmt, ip.globals)
		if err != nil {
			return err
		}
		if ctl.isReturn {
			return &RuntimeError{Line: ctl.line, Message: "Cannot return from top-level code."}
		}
	}
	return nil
}

// Run is the whole pipeline: lex, parse, interpret, with prints delivered
// to out. Each stage's error kind surfaces unchanged.
func Run(src string, out func(string)) error {
	prog, err := ParseSource(src)
	if err != nil {
		return err
	}
	ip := NewInterpreter()
	ip.SetOutput(out)
	return ip.Interpret(prog)
}

// control is the outcome of executing a statement: either normal
// completion or a `return` unwinding to the enclosing call.
type control struct {
	isReturn bool
	value    Value
	line     int // line of the return keyword
}

var controlNormal = control{}

// ----- statement execution -----

func (ip *Interpreter) exec(stmt Stmt, env *Env) (control, error) {
	switch s := stmt.(type) {
	case *VarDecl:
		value := Nil
		if s.Initializer != nil {
			v, err := ip.eval(s.Initializer, env)
			if err != nil {
				return controlNormal, err
			}
			value = v
		}
		env.Define(s.Name.Lexeme, value)
		return controlNormal, nil

	case *PrintStmt:
		v, err := ip.eval(s.Expression, env)
		if err != nil {
			return controlNormal, err
		}
		ip.out(Stringify(v))
		return controlNormal, nil

	case *ExprStmt:
		_, err := ip.eval(s.Expression, env)
		return controlNormal, err

	case *Block:
		return ip.execBlock(s.Statements, NewEnv(env))

	case *IfStmt:
		cond, err := ip.eval(s.Condition, env)
		if err != nil {
			return controlNormal, err
		}
		if Truthy(cond) {
			return ip.exec(s.Then, env)
		}
		if s.Else != nil {
			return ip.exec(s.Else, env)
		}
		return controlNormal, nil

	case *WhileStmt:
		for {
			cond, err := ip.eval(s.Condition, env)
			if err != nil {
				return controlNormal, err
			}
			if !Truthy(cond) {
				return controlNormal, nil
			}
			ctl, err := ip.exec(s.Body, env)
			if err != nil || ctl.isReturn {
				return ctl, err
			}
		}

	case *FuncDecl:
		// The closure captures the declaring environment itself, so the
		// function observes later mutations of outer variables.
		env.Define(s.Name.Lexeme, FuncVal(&Function{Decl: s, Closure: env}))
		return controlNormal, nil

	case *ReturnStmt:
		value := Nil
		if s.Value != nil {
			v, err := ip.eval(s.Value, env)
			if err != nil {
				return controlNormal, err
			}
			value = v
		}
		return control{isReturn: true, value: value, line: s.Keyword.Line}, nil
	}
	return controlNormal, fmt.Errorf("unhandled statement %T", stmt)
}

// execBlock runs statements in the given environment, propagating the first
// error or return outcome.
func (ip *Interpreter) execBlock(statements []Stmt, env *Env) (control, error) {
	for _, stmt := range statements {
		ctl, err := ip.exec(stmt, env)
		if err != nil || ctl.isReturn {
			return ctl, err
		}
	}
	return controlNormal, nil
}

// ----- expression evaluation -----

func (ip *Interpreter) eval(expr Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		switch v := e.Value.(type) {
		case nil:
			return Nil, nil
		case bool:
			return Boolean(v), nil
		case float64:
			return Num(v), nil
		case string:
			// Escape decoding is deferred to this point; the lexer stores
			// the raw text and only validates escape syntax.
			return Str(decodeEscapes(v)), nil
		}
		return Nil, fmt.Errorf("unhandled literal %T", e.Value)

	case *Grouping:
		return ip.eval(e.Expression, env)

	case *Unary:
		right, err := ip.eval(e.Right, env)
		if err != nil {
			return Nil, err
		}
		switch e.Operator.Type {
		case MINUS:
			if right.Tag != VTNum {
				return Nil, &RuntimeError{Line: e.Operator.Line, Message: "Operand must be a number."}
			}
			return Num(-right.Data.(float64)), nil
		case BANG:
			return Boolean(!Truthy(right)), nil
		}
		return Nil, fmt.Errorf("unhandled unary operator %q", e.Operator.Lexeme)

	case *Binary:
		return ip.evalBinary(e, env)

	case *Variable:
		return env.Get(e.Name)

	case *Assign:
		value, err := ip.eval(e.Value, env)
		if err != nil {
			return Nil, err
		}
		if err := env.Assign(e.Name, value); err != nil {
			return Nil, err
		}
		return value, nil

	case *Call:
		return ip.evalCall(e, env)

	case *ArrayLit:
		elements := make([]Value, 0, len(e.Elements))
		for _, elem := range e.Elements {
			v, err := ip.eval(elem, env)
			if err != nil {
				return Nil, err
			}
			elements = append(elements, v)
		}
		return Arr(elements), nil

	case *IndexGet:
		base, err := ip.eval(e.Object, env)
		if err != nil {
			return Nil, err
		}
		idxVal, err := ip.eval(e.Index, env)
		if err != nil {
			return Nil, err
		}
		arr, idx, err := indexOperands(base, idxVal, e.Bracket)
		if err != nil {
			return Nil, err
		}
		return arr[idx], nil

	case *IndexSet:
		base, err := ip.eval(e.Object, env)
		if err != nil {
			return Nil, err
		}
		idxVal, err := ip.eval(e.Index, env)
		if err != nil {
			return Nil, err
		}
		// The value evaluates before the index is validated: its side
		// effects happen even when the assignment then fails.
		value, err := ip.eval(e.Value, env)
		if err != nil {
			return Nil, err
		}
		arr, idx, err := indexOperands(base, idxVal, e.Bracket)
		if err != nil {
			return Nil, err
		}
		// In-place mutation: visible through every alias of the array.
		arr[idx] = value
		return value, nil

	case *StrLength:
		s, err := ip.evalStringArg(e.Str, env, e.Keyword, "'length' expects a string argument.")
		if err != nil {
			return Nil, err
		}
		return Num(float64(utf8.RuneCountInString(s))), nil

	case *StrFind:
		s, err := ip.evalStringArg(e.Str, env, e.Keyword, "First argument to 'find' must be a string.")
		if err != nil {
			return Nil, err
		}
		sub, err := ip.evalStringArg(e.Sub, env, e.Keyword, "Second argument to 'find' must be a string.")
		if err != nil {
			return Nil, err
		}
		byteIdx := strings.Index(s, sub)
		if byteIdx < 0 {
			return Num(-1), nil
		}
		return Num(float64(utf8.RuneCountInString(s[:byteIdx]))), nil

	case *StrReplace:
		s, err := ip.evalStringArg(e.Str, env, e.Keyword, "First argument to 'replace' must be a string.")
		if err != nil {
			return Nil, err
		}
		old, err := ip.evalStringArg(e.Old, env, e.Keyword, "Second argument to 'replace' must be a string.")
		if err != nil {
			return Nil, err
		}
		new_, err := ip.evalStringArg(e.New, env, e.Keyword, "Third argument to 'replace' must be a string.")
		if err != nil {
			return Nil, err
		}
		if old == "" {
			// Replacing the empty string is a no-op, never an insertion.
			return Str(s), nil
		}
		return Str(strings.ReplaceAll(s, old, new_)), nil
	}
	return Nil, fmt.Errorf("unhandled expression %T", expr)
}

func (ip *Interpreter) evalBinary(e *Binary, env *Env) (Value, error) {
	left, err := ip.eval(e.Left, env)
	if err != nil {
		return Nil, err
	}
	right, err := ip.eval(e.Right, env)
	if err != nil {
		return Nil, err
	}

	op := e.Operator
	switch op.Type {
	case PLUS:
		if left.Tag == VTStr || right.Tag == VTStr {
			return Str(Stringify(left) + Stringify(right)), nil
		}
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		return Num(l + r), nil
	case MINUS:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		return Num(l - r), nil
	case STAR:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		return Num(l * r), nil
	case SLASH:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		if r == 0 {
			return Nil, &RuntimeError{Line: op.Line, Message: "Division by zero."}
		}
		return Num(l / r), nil
	case PERCENT:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		if r == 0 {
			return Nil, &RuntimeError{Line: op.Line, Message: "Division by zero."}
		}
		// Floored modulo: a nonzero result carries the divisor's sign.
		m := math.Mod(l, r)
		if m == 0 {
			return Num(0), nil // never a negative zero
		}
		if (m < 0) != (r < 0) {
			m += r
		}
		return Num(m), nil
	case GREATER:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		return Boolean(l > r), nil
	case GREATER_EQUAL:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		return Boolean(l >= r), nil
	case LESS:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		return Boolean(l < r), nil
	case LESS_EQUAL:
		l, r, err := numOperands(op, left, right)
		if err != nil {
			return Nil, err
		}
		return Boolean(l <= r), nil
	case EQUAL_EQUAL:
		return Boolean(valuesEqual(left, right)), nil
	case BANG_EQUAL:
		return Boolean(!valuesEqual(left, right)), nil
	case AND:
		// Both operands were already evaluated above: and/or are eager.
		return Boolean(Truthy(left) && Truthy(right)), nil
	case OR:
		return Boolean(Truthy(left) || Truthy(right)), nil
	}
	return Nil, fmt.Errorf("unhandled binary operator %q", op.Lexeme)
}

func (ip *Interpreter) evalCall(e *Call, env *Env) (Value, error) {
	callee, err := ip.eval(e.Callee, env)
	if err != nil {
		return Nil, err
	}

	// Arguments evaluate left to right before any parameter is bound.
	args := make([]Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		v, err := ip.eval(arg, env)
		if err != nil {
			return Nil, err
		}
		args = append(args, v)
	}

	if callee.Tag != VTFunc {
		return Nil, &RuntimeError{Line: e.Paren.Line, Message: "Can only call functions."}
	}
	fn := callee.Data.(*Function)
	if len(args) != len(fn.Decl.Params) {
		return Nil, &RuntimeError{
			Line:    e.Paren.Line,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", len(fn.Decl.Params), len(args)),
		}
	}

	// The call frame chains to the closure environment, not the call site.
	frame := NewEnv(fn.Closure)
	for i, param := range fn.Decl.Params {
		frame.Define(param.Lexeme, args[i])
	}
	ctl, err := ip.execBlock(fn.Decl.Body.Statements, frame)
	if err != nil {
		return Nil, err
	}
	if ctl.isReturn {
		return ctl.value, nil
	}
	return Nil, nil
}

// indexOperands validates an evaluated array indexing pair, returning the
// shared backing slice and the in-range integer index.
func indexOperands(base, idxVal Value, bracket Token) ([]Value, int, error) {
	if base.Tag != VTArray {
		return nil, 0, &RuntimeError{Line: bracket.Line, Message: "Can only index arrays."}
	}
	if idxVal.Tag != VTNum {
		return nil, 0, &RuntimeError{Line: bracket.Line, Message: "Array index must be a number."}
	}
	arr := base.Data.([]Value)
	idx := int(idxVal.Data.(float64))
	if idx < 0 || idx >= len(arr) {
		return nil, 0, &RuntimeError{Line: bracket.Line, Message: fmt.Sprintf("Array index %d out of range.", idx)}
	}
	return arr, idx, nil
}

func (ip *Interpreter) evalStringArg(expr Expr, env *Env, keyword Token, message string) (string, error) {
	v, err := ip.eval(expr, env)
	if err != nil {
		return "", err
	}
	if v.Tag != VTStr {
		return "", &RuntimeError{Line: keyword.Line, Message: message}
	}
	return v.Data.(string), nil
}

func numOperands(op Token, left, right Value) (float64, float64, error) {
	if left.Tag != VTNum || right.Tag != VTNum {
		return 0, 0, &RuntimeError{Line: op.Line, Message: "Operands must be numbers."}
	}
	return left.Data.(float64), right.Data.(float64), nil
}

// decodeEscapes turns the validated escape sequences of a lexed string
// literal into their characters: \n \t \r \" \\. Any other backslash pair
// passes through as the two characters (the lexer guarantees none reach
// here for lexed strings).
func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
