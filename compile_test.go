package main

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/sdtac/parser"
	"github.com/strager/sdtac/sdt"
	"github.com/strager/sdtac/symtab"
	"github.com/strager/sdtac/tac"
)

const scenario = `
int x, y;
int add(int a, int b) {
	int z;
	z = a + b;
	return z;
}
int main() {
	int r;
	r = add(3, 4);
	return r;
}
`

func TestCompileScenario(t *testing.T) {
	c, err := compileProgram([]byte(scenario+"\x00"), sdt.Options{Policy: sdt.Strict}, false)
	be.Err(t, err, nil)

	be.Equal(t, tac.Format(c.Quads, false), `label func_add
+ a b t1
= t1 z
ret z
ret
label func_main
param 3
param 4
call func_add 2 t2
= t2 r
ret r
ret
`)
}

func TestCompileSymbols(t *testing.T) {
	c, err := compileProgram([]byte(scenario+"\x00"), sdt.Options{}, false)
	be.Err(t, err, nil)

	be.Equal(t, symbolsToSExpr(c), `(symbols `+
		`(scope "add" (param "a" "int" 1 0) (param "b" "int" 1 1) (var "z" "int" 1 2)) `+
		`(scope "main" (var "r" "int" 1 0)) `+
		`(global (var "x" "int" 0 0) (var "y" "int" 0 1) `+
		`(func "add" "int" 0 -1 [(param "int" "a") (param "int" "b")]) `+
		`(func "main" "int" 0 -1 [])))`)
}

func TestCompileKeepsCallerScopeCallback(t *testing.T) {
	var functions []string
	c, err := compileProgram([]byte(scenario+"\x00"), sdt.Options{
		ScopeExited: func(function string, scope *symtab.Scope) {
			functions = append(functions, function)
		},
	}, false)
	be.Err(t, err, nil)
	be.Equal(t, functions, []string{"add", "main"})
	be.Equal(t, len(c.Scopes), 2)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		input   string
		policy  sdt.Policy
		message string
	}{
		{"int x", sdt.Tolerant, "parsing errors: 1:6: syntax error: expected ';' but got end of file"},
		{"int x; int x;", sdt.Tolerant, "symbol resolution errors: error: variable 'x' already declared as global var"},
		{"int f() { return q; }", sdt.Strict, "symbol resolution errors: error: identifier 'q' used before declaration"},
		{"int x; int f() { return x(1); }", sdt.Tolerant, "symbol resolution errors: error: 'x' is not a function"},
		{"int g() { return 1; } int f() { int g; g = 2; return g(); }", sdt.Strict, "symbol resolution errors: error: 'g' is not a function"},
	}

	for _, test := range tests {
		_, err := compileProgram([]byte(test.input+"\x00"), sdt.Options{Policy: test.policy}, false)
		be.Equal(t, err.Error(), test.message)
	}
}

func TestCompileErrorsUnwrap(t *testing.T) {
	_, err := compileProgram([]byte("int;\x00"), sdt.Options{}, false)
	var syntaxErr *parser.SyntaxError
	be.True(t, errors.As(err, &syntaxErr))
	be.Equal(t, syntaxErr.Line, 1)

	_, err = compileProgram([]byte("int f(int a, int a) { }\x00"), sdt.Options{}, false)
	var redecl *symtab.RedeclarationError
	be.True(t, errors.As(err, &redecl))
	be.Equal(t, redecl.Kind, symtab.KindParam)

	_, err = compileProgram([]byte("int x; int f() { return x(); }\x00"), sdt.Options{}, false)
	var notCallable *symtab.NotCallableError
	be.True(t, errors.As(err, &notCallable))
	be.Equal(t, notCallable.Name, "x")
}

func TestAnalyzeDoesNotGenerate(t *testing.T) {
	c, err := analyzeProgram([]byte("int x; int f() { return x + 1; }\x00"), sdt.Options{})
	be.Err(t, err, nil)
	be.Equal(t, len(c.Quads), 0)
	be.Equal(t, c.Symbols.Global().Len(), 2)
}

func TestCompileCallToShadowedFunction(t *testing.T) {
	// The local g hides the global function g while f's body is reduced.
	input := "int g() { return 1; }\nint f() { int g; g = 2; return g(); }\x00"
	for _, policy := range []sdt.Policy{sdt.Tolerant, sdt.Strict} {
		c, err := compileProgram([]byte(input), sdt.Options{Policy: policy}, false)
		be.True(t, c == nil)
		var notCallable *symtab.NotCallableError
		be.True(t, errors.As(err, &notCallable))
		be.Equal(t, notCallable.Name, "g")
	}

	// Once the shadowing scope is gone, g is callable again.
	c, err := compileProgram([]byte("int g() { return 1; }\nint f(int g) { return g; }\nint h() { return g(); }\x00"),
		sdt.Options{Policy: sdt.Strict}, false)
	be.Err(t, err, nil)
	be.Equal(t, c.Quads[len(c.Quads)-3].String(), "call func_g 0 t1")
}

func TestCompileEmbeddedNUL(t *testing.T) {
	c, err := compileProgram([]byte("int f() { return 1; }\x00int g() { return 2; }\x00"), sdt.Options{}, false)
	be.True(t, c == nil)
	be.Err(t, err, `1:22: syntax error: expected declaration but got ILLEGAL "\x00"`)
}

func TestCompileIsIdempotent(t *testing.T) {
	first, err := compileProgram([]byte(scenario+"\x00"), sdt.Options{}, false)
	be.Err(t, err, nil)
	second, err := compileProgram([]byte(scenario+"\x00"), sdt.Options{}, false)
	be.Err(t, err, nil)
	be.Equal(t, tac.Format(second.Quads, true), tac.Format(first.Quads, true))
}
