package tac

import (
	"fmt"
	"strconv"

	"github.com/strager/sdtac/ast"
	"github.com/strager/sdtac/symtab"
)

// MalformedExpressionError means a node that is not an expression reached
// expression lowering. It indicates a bug in whatever built the tree.
type MalformedExpressionError struct {
	Node ast.Node
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("error: malformed expression %T", e.Node)
}

// Generator lowers one program at a time. Temporary and label counters
// belong to the generator and restart on every Generate call.
type Generator struct {
	symbols symtab.Reader

	quads  []Quad
	temps  int
	labels int
}

// NewGenerator returns a generator that resolves callees through symbols.
// The table is only read.
func NewGenerator(symbols symtab.Reader) *Generator {
	return &Generator{symbols: symbols}
}

// NewTemp allocates the next temporary: t1, t2, ...
func (g *Generator) NewTemp() string {
	g.temps++
	return "t" + strconv.Itoa(g.temps)
}

// NewLabel allocates the next label: L1, L2, ...
func (g *Generator) NewLabel() string {
	g.labels++
	return "L" + strconv.Itoa(g.labels)
}

func (g *Generator) emit(op, arg1, arg2, result string) {
	g.quads = append(g.quads, Quad{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
}

// FuncLabel is the label that starts the code of function name.
func FuncLabel(name string) string {
	return "func_" + name
}

// Generate lowers prog in declaration order. Variable declarations produce
// no code.
func (g *Generator) Generate(prog *ast.Program) ([]Quad, error) {
	g.quads = nil
	g.temps = 0
	g.labels = 0

	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			// Storage allocation happens elsewhere.
		case *ast.FuncDecl:
			if err := g.genFunc(d); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("error: unexpected declaration %T", decl)
		}
	}
	return g.quads, nil
}

func (g *Generator) genFunc(f *ast.FuncDecl) error {
	g.emit(OpLabel, FuncLabel(f.Name), "", "")
	for _, stmt := range f.Body {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	// Always terminate, even after an explicit return.
	g.emit(OpReturn, "", "", "")
	return nil
}

func (g *Generator) genStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return nil

	case *ast.Assign:
		src, err := g.genExpr(s.Expr)
		if err != nil {
			return err
		}
		g.emit(OpAssign, src, "", s.Name)
		return nil

	case *ast.Return:
		var val string
		if s.Expr != nil {
			v, err := g.genExpr(s.Expr)
			if err != nil {
				return err
			}
			val = v
		}
		g.emit(OpReturn, val, "", "")
		return nil

	case *ast.ExprStmt:
		_, err := g.genExpr(s.Expr)
		return err

	default:
		return fmt.Errorf("error: unexpected statement %T", stmt)
	}
}

// genExpr returns the operand holding the value of expr: a literal's text,
// a variable name or a temporary.
func (g *Generator) genExpr(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.Num:
		return e.Text, nil

	case *ast.Var:
		return e.Name, nil

	case *ast.BinOp:
		left, err := g.genExpr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := g.genExpr(e.Right)
		if err != nil {
			return "", err
		}
		t := g.NewTemp()
		g.emit(e.Op, left, right, t)
		return t, nil

	case *ast.Call:
		entry, ok := g.symbols.Lookup(e.Name)
		if !ok || entry.Kind != symtab.KindFunc {
			return "", &symtab.NotCallableError{Name: e.Name}
		}
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			v, err := g.genExpr(arg)
			if err != nil {
				return "", err
			}
			args[i] = v
		}
		for _, a := range args {
			g.emit(OpParam, a, "", "")
		}
		t := g.NewTemp()
		g.emit(OpCall, FuncLabel(e.Name), strconv.Itoa(len(args)), t)
		return t, nil

	default:
		return "", &MalformedExpressionError{Node: expr}
	}
}
