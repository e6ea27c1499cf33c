// printer.go — canonical source formatter.
//
// FormatProgram renders an AST back to AetheR source in a fixed layout:
// four-space indentation, one statement per line, braced branches. The
// output reparses to the same tree shape, and formatting is idempotent
// (format(parse(format(parse(src)))) == format(parse(src))). Note that a
// `for` loop prints in its desugared while form, since desugaring happens
// at parse time.
package aether

import (
	"strconv"
	"strings"
)

// FormatProgram renders prog as canonical source.
func FormatProgram(prog *Program) string {
	var p printer
	for _, stmt := range prog.Statements {
		p.stmt(stmt)
	}
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) line(s string) {
	p.b.WriteString(strings.Repeat("    ", p.indent))
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

func (p *printer) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		if s.Initializer != nil {
			p.line("var " + s.Name.Lexeme + " = " + p.expr(s.Initializer) + ";")
		} else {
			p.line("var " + s.Name.Lexeme + ";")
		}
	case *PrintStmt:
		p.line("print " + p.expr(s.Expression) + ";")
	case *ExprStmt:
		p.line(p.expr(s.Expression) + ";")
	case *Block:
		p.line("{")
		p.indent++
		for _, inner := range s.Statements {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
	case *IfStmt:
		p.line("if (" + p.expr(s.Condition) + ") {")
		p.body(s.Then)
		if s.Else != nil {
			p.line("} else {")
			p.body(s.Else)
		}
		p.line("}")
	case *WhileStmt:
		p.line("while (" + p.expr(s.Condition) + ") {")
		p.body(s.Body)
		p.line("}")
	case *FuncDecl:
		params := make([]string, len(s.Params))
		for i, param := range s.Params {
			params[i] = param.Lexeme
		}
		p.line("fun " + s.Name.Lexeme + "(" + strings.Join(params, ", ") + ") {")
		p.indent++
		for _, inner := range s.Body.Statements {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
	case *ReturnStmt:
		if s.Value != nil {
			p.line("return " + p.expr(s.Value) + ";")
		} else {
			p.line("return;")
		}
	}
}

// body prints a branch at one deeper indent, flattening a Block so branches
// always render braced without double braces.
func (p *printer) body(stmt Stmt) {
	p.indent++
	if block, ok := stmt.(*Block); ok {
		for _, inner := range block.Statements {
			p.stmt(inner)
		}
	} else {
		p.stmt(stmt)
	}
	p.indent--
}

func (p *printer) expr(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		return formatLiteral(e.Value)
	case *Grouping:
		return "(" + p.expr(e.Expression) + ")"
	case *Unary:
		return e.Operator.Lexeme + p.expr(e.Right)
	case *Binary:
		return p.expr(e.Left) + " " + e.Operator.Lexeme + " " + p.expr(e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return e.Name.Lexeme + " = " + p.expr(e.Value)
	case *Call:
		return p.expr(e.Callee) + "(" + p.exprList(e.Arguments) + ")"
	case *ArrayLit:
		return "[" + p.exprList(e.Elements) + "]"
	case *IndexGet:
		return p.expr(e.Object) + "[" + p.expr(e.Index) + "]"
	case *IndexSet:
		return p.expr(e.Object) + "[" + p.expr(e.Index) + "] = " + p.expr(e.Value)
	case *StrLength:
		return "length(" + p.expr(e.Str) + ")"
	case *StrFind:
		return "find(" + p.expr(e.Str) + ", " + p.expr(e.Sub) + ")"
	case *StrReplace:
		return "replace(" + p.expr(e.Str) + ", " + p.expr(e.Old) + ", " + p.expr(e.New) + ")"
	}
	return "<?>"
}

func (p *printer) exprList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = p.expr(e)
	}
	return strings.Join(parts, ", ")
}

// formatLiteral re-quotes string literals from their raw (still-escaped)
// token text, so formatting never decodes or re-encodes escapes.
func formatLiteral(v interface{}) string {
	switch lit := v.(type) {
	case nil:
		return "nil"
	case bool:
		if lit {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(lit, 'f', -1, 64)
	case string:
		return "\"" + lit + "\""
	}
	return "<?>"
}
