package tac

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/sdtac/ast"
	"github.com/strager/sdtac/symtab"
)

func num(t *testing.T, lexeme string) *ast.Num {
	n, err := ast.NewNum(lexeme)
	be.Err(t, err, nil)
	return n
}

func v(name string) *ast.Var {
	return &ast.Var{Name: name}
}

func lines(quads []Quad) []string {
	out := make([]string, len(quads))
	for i, q := range quads {
		out[i] = q.String()
	}
	return out
}

// scenarioProgram is:
//
//	int x, y;
//	int add(int a, int b) { int z; z = a + b; return z; }
//	int main() { int r; r = add(3, 4); return r; }
func scenarioProgram(t *testing.T) (*ast.Program, *symtab.Table) {
	st := symtab.New()
	st.Add("x", symtab.KindVar, "int")
	st.Add("y", symtab.KindVar, "int")
	st.AddFunction("add", "int", []symtab.Param{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}})
	st.AddFunction("main", "int", nil)

	prog := &ast.Program{Decls: []ast.Decl{
		&ast.VarDecl{Type: "int", Names: []string{"x", "y"}},
		&ast.FuncDecl{
			ReturnType: "int",
			Name:       "add",
			Params:     []ast.Param{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}},
			Body: []ast.Stmt{
				&ast.VarDecl{Type: "int", Names: []string{"z"}},
				&ast.Assign{Name: "z", Expr: &ast.BinOp{Op: "+", Left: v("a"), Right: v("b")}},
				&ast.Return{Expr: v("z")},
			},
		},
		&ast.FuncDecl{
			ReturnType: "int",
			Name:       "main",
			Body: []ast.Stmt{
				&ast.VarDecl{Type: "int", Names: []string{"r"}},
				&ast.Assign{Name: "r", Expr: &ast.Call{Name: "add", Args: []ast.Expr{num(t, "3"), num(t, "4")}}},
				&ast.Return{Expr: v("r")},
			},
		},
	}}
	return prog, st
}

func TestGenerateScenario(t *testing.T) {
	prog, st := scenarioProgram(t)

	quads, err := NewGenerator(st).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, lines(quads), []string{
		"label func_add",
		"+ a b t1",
		"= t1 z",
		"ret z",
		"ret",
		"label func_main",
		"param 3",
		"param 4",
		"call func_add 2 t2",
		"= t2 r",
		"ret r",
		"ret",
	})
}

func TestGenerateQuadFields(t *testing.T) {
	prog, st := scenarioProgram(t)

	quads, err := NewGenerator(st).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, quads[0], Quad{Op: OpLabel, Arg1: "func_add"})
	be.Equal(t, quads[1], Quad{Op: "+", Arg1: "a", Arg2: "b", Result: "t1"})
	be.Equal(t, quads[2], Quad{Op: OpAssign, Arg1: "t1", Result: "z"})
	be.Equal(t, quads[3], Quad{Op: OpReturn, Arg1: "z"})
	be.Equal(t, quads[4], Quad{Op: OpReturn})
}

func TestGenerateIsDeterministic(t *testing.T) {
	prog, st := scenarioProgram(t)
	g := NewGenerator(st)

	first, err := g.Generate(prog)
	be.Err(t, err, nil)
	second, err := g.Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, second, first)

	third, err := NewGenerator(st).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, third, first)
}

func TestGenerateNestedBinOpsLeftBeforeRight(t *testing.T) {
	// (a + b) * (c - 2)
	expr := &ast.BinOp{
		Op:    "*",
		Left:  &ast.BinOp{Op: "+", Left: v("a"), Right: v("b")},
		Right: &ast.BinOp{Op: "-", Left: v("c"), Right: num(t, "2")},
	}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FuncDecl{ReturnType: "int", Name: "f", Body: []ast.Stmt{&ast.Return{Expr: expr}}},
	}}

	quads, err := NewGenerator(symtab.New()).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, lines(quads), []string{
		"label func_f",
		"+ a b t1",
		"- c 2 t2",
		"* t1 t2 t3",
		"ret t3",
		"ret",
	})
}

func TestGenerateTemporariesAreProgramWide(t *testing.T) {
	body := func() []ast.Stmt {
		return []ast.Stmt{&ast.Assign{Name: "x", Expr: &ast.BinOp{Op: "+", Left: v("x"), Right: num(t, "1")}}}
	}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FuncDecl{ReturnType: "int", Name: "f", Body: body()},
		&ast.FuncDecl{ReturnType: "int", Name: "g", Body: body()},
	}}

	quads, err := NewGenerator(symtab.New()).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, lines(quads), []string{
		"label func_f",
		"+ x 1 t1",
		"= t1 x",
		"ret",
		"label func_g",
		"+ x 1 t2",
		"= t2 x",
		"ret",
	})
}

func TestGenerateLiteralAndVariableOperandsEmitNothing(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FuncDecl{ReturnType: "float", Name: "f", Body: []ast.Stmt{
			&ast.Assign{Name: "x", Expr: num(t, "2.50")},
			&ast.Assign{Name: "y", Expr: v("x")},
			&ast.ExprStmt{Expr: v("y")},
			&ast.ExprStmt{Expr: num(t, "7")},
		}},
	}}

	quads, err := NewGenerator(symtab.New()).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, lines(quads), []string{
		"label func_f",
		"= 2.5 x",
		"= x y",
		"ret",
	})
}

func TestGenerateExprStmtKeepsTemporaries(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FuncDecl{ReturnType: "int", Name: "f", Body: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.BinOp{Op: "/", Left: v("a"), Right: v("b")}},
			&ast.Return{},
		}},
	}}

	quads, err := NewGenerator(symtab.New()).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, lines(quads), []string{
		"label func_f",
		"/ a b t1",
		"ret",
		"ret",
	})
}

func TestGenerateCallArguments(t *testing.T) {
	st := symtab.New()
	st.AddFunction("f", "int", nil)
	st.AddFunction("g", "int", nil)
	call := &ast.Call{Name: "f", Args: []ast.Expr{
		&ast.BinOp{Op: "+", Left: v("a"), Right: num(t, "1")},
		&ast.Call{Name: "g"},
		v("b"),
	}}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FuncDecl{ReturnType: "int", Name: "h", Body: []ast.Stmt{&ast.ExprStmt{Expr: call}}},
	}}

	quads, err := NewGenerator(st).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, lines(quads), []string{
		"label func_h",
		"+ a 1 t1",
		"call func_g 0 t2",
		"param t1",
		"param t2",
		"param b",
		"call func_f 3 t3",
		"ret",
	})
}

func TestGenerateNotCallable(t *testing.T) {
	st := symtab.New()
	st.Add("x", symtab.KindVar, "int")
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FuncDecl{ReturnType: "int", Name: "f", Body: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.Call{Name: "x"}},
		}},
	}}

	_, err := NewGenerator(st).Generate(prog)
	var notCallable *symtab.NotCallableError
	be.True(t, errors.As(err, &notCallable))
	be.Equal(t, err.Error(), "error: 'x' is not a function")

	prog.Decls[0].(*ast.FuncDecl).Body[0] = &ast.ExprStmt{Expr: &ast.Call{Name: "missing"}}
	_, err = NewGenerator(st).Generate(prog)
	be.Err(t, err, "error: 'missing' is not a function")
}

func TestGenerateMalformedExpression(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FuncDecl{ReturnType: "int", Name: "f", Body: []ast.Stmt{
			&ast.Assign{Name: "x"},
		}},
	}}

	quads, err := NewGenerator(symtab.New()).Generate(prog)
	be.True(t, quads == nil)
	var malformed *MalformedExpressionError
	be.True(t, errors.As(err, &malformed))
	be.Equal(t, err.Error(), "error: malformed expression <nil>")
}

func TestGenerateEmptyProgram(t *testing.T) {
	quads, err := NewGenerator(symtab.New()).Generate(&ast.Program{})
	be.Err(t, err, nil)
	be.Equal(t, len(quads), 0)
}

func TestGenerateGlobalDeclarationsEmitNothing(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.VarDecl{Type: "int", Names: []string{"a"}},
		&ast.VarDecl{Type: "float", Names: []string{"b", "c"}},
	}}
	quads, err := NewGenerator(symtab.New()).Generate(prog)
	be.Err(t, err, nil)
	be.Equal(t, len(quads), 0)
}

func TestNewTempAndLabel(t *testing.T) {
	g := NewGenerator(symtab.New())
	be.Equal(t, g.NewTemp(), "t1")
	be.Equal(t, g.NewTemp(), "t2")
	be.Equal(t, g.NewLabel(), "L1")
	be.Equal(t, g.NewLabel(), "L2")
	be.Equal(t, g.NewTemp(), "t3")

	// Generate restarts numbering.
	_, err := g.Generate(&ast.Program{})
	be.Err(t, err, nil)
	be.Equal(t, g.NewTemp(), "t1")
	be.Equal(t, g.NewLabel(), "L1")
}
