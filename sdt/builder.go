// Package sdt performs syntax-directed construction: as the parser reduces
// grammar productions it calls into a Builder, which records declarations in
// the symbol table and builds AST nodes in lockstep.
package sdt

import (
	"fmt"

	"github.com/strager/sdtac/ast"
	"github.com/strager/sdtac/symtab"
)

// DefaultType is the type given to names declared implicitly under the
// tolerant policy.
const DefaultType = "int"

// Options configures a Builder.
type Options struct {
	Policy Policy
	// DefaultType overrides DefaultType when non-empty.
	DefaultType string
	// ScopeExited, if set, is called with each function scope as its body
	// closes, just before the entries are discarded.
	ScopeExited func(function string, scope *symtab.Scope)
}

// UndeclaredIdentifierError reports a use of an unknown name under the
// strict policy.
type UndeclaredIdentifierError struct {
	Name string
}

func (e *UndeclaredIdentifierError) Error() string {
	return fmt.Sprintf("error: identifier '%s' used before declaration", e.Name)
}

// Builder holds the construction state for one compilation unit. It owns
// the table's scope stack until construction finishes.
type Builder struct {
	table *symtab.Table
	opts  Options

	// open functions, innermost last; used to check OpenFunc/CloseFunc balance
	open []string
}

// NewBuilder returns a builder that records declarations into table.
func NewBuilder(table *symtab.Table, opts Options) *Builder {
	if opts.DefaultType == "" {
		opts.DefaultType = DefaultType
	}
	return &Builder{table: table, opts: opts}
}

// Table returns the symbol table being built.
func (b *Builder) Table() *symtab.Table {
	return b.table
}

// Program reduces the whole translation unit.
func (b *Builder) Program(decls []ast.Decl) *ast.Program {
	return &ast.Program{Decls: decls}
}

// VarDecl declares each name in the currently active scope: global at top
// level, the function's scope inside a body.
func (b *Builder) VarDecl(typ string, names []string) (*ast.VarDecl, error) {
	for _, name := range names {
		if _, err := b.table.Add(name, symtab.KindVar, typ); err != nil {
			return nil, err
		}
	}
	return &ast.VarDecl{Type: typ, Names: append([]string(nil), names...)}, nil
}

// OpenFunc reduces a function header. The function is registered globally
// before its scope is entered so that the body can call it recursively.
// Parameters are declared in the new scope in order.
func (b *Builder) OpenFunc(returnType string, name string, params []ast.Param) error {
	symParams := make([]symtab.Param, len(params))
	for i, p := range params {
		symParams[i] = symtab.Param{Type: p.Type, Name: p.Name}
	}
	if _, err := b.table.AddFunction(name, returnType, symParams); err != nil {
		return err
	}
	b.table.EnterScope()
	b.open = append(b.open, name)
	for _, p := range params {
		if _, err := b.table.Add(p.Name, symtab.KindParam, p.Type); err != nil {
			return err
		}
	}
	return nil
}

// CloseFunc reduces a complete function once its body has been reduced and
// discards the function scope.
//
// Panics if name is not the innermost open function.
func (b *Builder) CloseFunc(returnType string, name string, params []ast.Param, body []ast.Stmt) *ast.FuncDecl {
	if len(b.open) == 0 || b.open[len(b.open)-1] != name {
		panic("error: close of function '" + name + "' which is not open")
	}
	b.open = b.open[:len(b.open)-1]

	scope := b.table.ExitScope()
	if b.opts.ScopeExited != nil {
		b.opts.ScopeExited(name, scope)
	}
	return &ast.FuncDecl{
		ReturnType: returnType,
		Name:       name,
		Params:     append([]ast.Param(nil), params...),
		Body:       body,
	}
}

// Assign reduces "name = expr;". The target follows the identifier-use rule.
func (b *Builder) Assign(name string, expr ast.Expr) (*ast.Assign, error) {
	if err := b.use(name); err != nil {
		return nil, err
	}
	return &ast.Assign{Name: name, Expr: expr}, nil
}

// Return reduces "return expr;" or "return;" (expr nil).
func (b *Builder) Return(expr ast.Expr) *ast.Return {
	return &ast.Return{Expr: expr}
}

// ExprStmt reduces an expression used as a statement.
func (b *Builder) ExprStmt(expr ast.Expr) *ast.ExprStmt {
	return &ast.ExprStmt{Expr: expr}
}

// BinOp reduces a binary operation. Precedence has already been resolved by
// the parser.
func (b *Builder) BinOp(op string, left, right ast.Expr) *ast.BinOp {
	return &ast.BinOp{Op: op, Left: left, Right: right}
}

// Num reduces a numeric literal.
func (b *Builder) Num(lexeme string) (*ast.Num, error) {
	return ast.NewNum(lexeme)
}

// Ident reduces a reference to a variable.
func (b *Builder) Ident(name string) (*ast.Var, error) {
	if err := b.use(name); err != nil {
		return nil, err
	}
	return &ast.Var{Name: name}, nil
}

// Call reduces "name(args...)". The callee follows the identifier-use rule
// and must then resolve, innermost scope first, to a function.
func (b *Builder) Call(name string, args []ast.Expr) (*ast.Call, error) {
	if err := b.use(name); err != nil {
		return nil, err
	}
	if entry, _ := b.table.Lookup(name); entry.Kind != symtab.KindFunc {
		return nil, &symtab.NotCallableError{Name: name}
	}
	return &ast.Call{Name: name, Args: args}, nil
}

// use applies the configured policy to a name reference.
func (b *Builder) use(name string) error {
	if _, ok := b.table.Lookup(name); ok {
		return nil
	}
	if b.opts.Policy == Strict {
		return &UndeclaredIdentifierError{Name: name}
	}
	_, err := b.table.Add(name, symtab.KindVar, b.opts.DefaultType)
	return err
}
