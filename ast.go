// ast.go — syntax-tree node types.
//
// The AST is a closed set of typed variants: the interpreter dispatches with
// an exhaustive type switch, so adding a construct means touching the parser,
// this file and the interpreter together. Nodes own their children (tree, no
// sharing) and are never mutated after parsing. Each node retains the token
// that best locates it in the source, for runtime error lines.
package aether

// Expr is an expression node.
type Expr interface{ exprNode() }

// Stmt is a statement or declaration node.
type Stmt interface{ stmtNode() }

// Program is an ordered list of top-level statements.
type Program struct {
	Statements []Stmt
}

// ----- expressions -----

// Literal holds a number, raw (un-decoded) string, boolean or nil constant.
type Literal struct {
	Token Token
	Value interface{} // float64 | string | bool | nil
}

type Grouping struct {
	Expression Expr
}

type Unary struct {
	Operator Token // BANG or MINUS
	Right    Expr
}

type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// Variable is a name reference, resolved dynamically at use.
type Variable struct {
	Name Token
}

// Assign rebinds an already-declared variable.
type Assign struct {
	Name  Token
	Value Expr
}

type Call struct {
	Callee    Expr
	Paren     Token // closing ')', for error reporting
	Arguments []Expr
}

type ArrayLit struct {
	Bracket  Token
	Elements []Expr
}

type IndexGet struct {
	Object  Expr
	Bracket Token
	Index   Expr
}

// IndexSet mutates an array element in place and yields the assigned value.
type IndexSet struct {
	Object  Expr
	Bracket Token
	Index   Expr
	Value   Expr
}

// StrLength, StrFind and StrReplace are the three string built-ins. They are
// syntactic forms with fixed arity, not first-class values.
type StrLength struct {
	Keyword Token
	Str     Expr
}

type StrFind struct {
	Keyword Token
	Str     Expr
	Sub     Expr
}

type StrReplace struct {
	Keyword Token
	Str     Expr
	Old     Expr
	New     Expr
}

func (*Literal) exprNode()    {}
func (*Grouping) exprNode()   {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Variable) exprNode()   {}
func (*Assign) exprNode()     {}
func (*Call) exprNode()       {}
func (*ArrayLit) exprNode()   {}
func (*IndexGet) exprNode()   {}
func (*IndexSet) exprNode()   {}
func (*StrLength) exprNode()  {}
func (*StrFind) exprNode()    {}
func (*StrReplace) exprNode() {}

// ----- statements -----

// VarDecl binds the evaluated initializer (or nil) in the current scope.
type VarDecl struct {
	Name        Token
	Initializer Expr // may be nil
}

type PrintStmt struct {
	Keyword    Token
	Expression Expr
}

type ExprStmt struct {
	Expression Expr
}

type Block struct {
	Statements []Stmt
}

type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // may be nil
}

type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FuncDecl declares a named function. `for` loops never produce one of
// these; they desugar to Block/WhileStmt at parse time.
type FuncDecl struct {
	Name   Token
	Params []Token
	Body   *Block
}

type ReturnStmt struct {
	Keyword Token
	Value   Expr // may be nil
}

func (*VarDecl) stmtNode()    {}
func (*PrintStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()   {}
func (*Block) stmtNode()      {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*FuncDecl) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
