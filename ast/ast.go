// Package ast defines the syntax tree produced by the parser.
//
// The node set is closed: Decl, Stmt and Expr are sealed interfaces that
// only types in this package implement. Nodes are built once, during the
// single forward parse, and never mutated afterwards.
package ast

// Node is any syntax tree node.
type Node interface {
	node()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	isDecl()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression.
type Expr interface {
	Node
	isExpr()
}

// Program is an ordered sequence of top-level declarations.
type Program struct {
	Decls []Decl
}

// Param is a single (type, name) function parameter.
type Param struct {
	Type string
	Name string
}

// VarDecl declares one or more variables of the same type. It appears both
// at top level and inside function bodies.
type VarDecl struct {
	Type  string
	Names []string
}

// FuncDecl declares a function together with its body.
type FuncDecl struct {
	ReturnType string
	Name       string
	Params     []Param
	Body       []Stmt
}

// Assign stores the value of Expr into the variable Name.
type Assign struct {
	Name string
	Expr Expr
}

// Return leaves the current function. Expr is nil for a bare "return;".
type Return struct {
	Expr Expr
}

// ExprStmt is an expression evaluated for its effects; its value is dropped.
type ExprStmt struct {
	Expr Expr
}

// BinOp is a binary arithmetic operation such as "+" or "*".
type BinOp struct {
	Op    string
	Left  Expr
	Right Expr
}

// NumKind distinguishes integer literals from floating literals.
type NumKind int

const (
	NumInt NumKind = iota
	NumFloat
)

// Num is a numeric literal. Text is the literal's canonical textual form,
// which is what code generation uses as an operand.
type Num struct {
	Kind  NumKind
	Int   int64
	Float float64
	Text  string
}

// Var is a reference to a named variable or parameter.
type Var struct {
	Name string
}

// Call invokes the function Name with Args evaluated left to right.
type Call struct {
	Name string
	Args []Expr
}

func (*Program) node()  {}
func (*VarDecl) node()  {}
func (*FuncDecl) node() {}
func (*Assign) node()   {}
func (*Return) node()   {}
func (*ExprStmt) node() {}
func (*BinOp) node()    {}
func (*Num) node()      {}
func (*Var) node()      {}
func (*Call) node()     {}

func (*VarDecl) isDecl()  {}
func (*FuncDecl) isDecl() {}

func (*VarDecl) isStmt()  {}
func (*Assign) isStmt()   {}
func (*Return) isStmt()   {}
func (*ExprStmt) isStmt() {}

func (*BinOp) isExpr() {}
func (*Num) isExpr()   {}
func (*Var) isExpr()   {}
func (*Call) isExpr()  {}
