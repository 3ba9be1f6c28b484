package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/strager/sdtac/ast"
	"github.com/strager/sdtac/parser"
	"github.com/strager/sdtac/sdt"
	"github.com/strager/sdtac/symtab"
	"github.com/strager/sdtac/tac"
)

// exitedScope is a function scope captured when its function was closed.
type exitedScope struct {
	Function string
	Scope    *symtab.Scope
}

// compilation holds everything the pipeline produced for one program.
type compilation struct {
	Program *ast.Program
	Symbols *symtab.Table
	Scopes  []exitedScope
	Quads   []tac.Quad
}

// analyzeProgram parses a NUL-terminated program and builds its symbol
// table. No code is generated.
func analyzeProgram(input []byte, opts sdt.Options) (*compilation, error) {
	c := &compilation{}

	exited := opts.ScopeExited
	opts.ScopeExited = func(function string, scope *symtab.Scope) {
		c.Scopes = append(c.Scopes, exitedScope{Function: function, Scope: scope})
		if exited != nil {
			exited(function, scope)
		}
	}

	b := sdt.NewBuilder(symtab.New(), opts)
	c.Symbols = b.Table()
	prog, err := parser.ParseProgram(parser.NewLexer(input), b)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("parsing errors: %w", err)
		}
		return nil, fmt.Errorf("symbol resolution errors: %w", err)
	}
	c.Program = prog
	return c, nil
}

// compileProgram runs the whole pipeline: parse, build the symbol table,
// then lower to quads.
func compileProgram(input []byte, opts sdt.Options, verbose bool) (*compilation, error) {
	c, err := analyzeProgram(input, opts)
	if err != nil {
		return nil, err
	}

	if verbose {
		fmt.Printf("AST: %s\n", ast.ToSExpr(c.Program))
		fmt.Printf("Symbols: %s\n", symbolsToSExpr(c))
	}

	quads, err := tac.NewGenerator(c.Symbols).Generate(c.Program)
	if err != nil {
		return nil, fmt.Errorf("code generation errors: %w", err)
	}
	c.Quads = quads
	return c, nil
}

// symbolsToSExpr renders every exited function scope, in the order the
// functions were closed, followed by the global scope.
func symbolsToSExpr(c *compilation) string {
	var parts []string
	for _, s := range c.Scopes {
		parts = append(parts, scopeToSExpr("scope "+quote(s.Function), s.Scope))
	}
	parts = append(parts, scopeToSExpr("global", c.Symbols.Global()))
	return "(symbols " + strings.Join(parts, " ") + ")"
}

func scopeToSExpr(head string, scope *symtab.Scope) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(head)
	for _, e := range scope.Entries() {
		sb.WriteString(" ")
		sb.WriteString(entryToSExpr(e))
	}
	sb.WriteString(")")
	return sb.String()
}

func entryToSExpr(e *symtab.Entry) string {
	s := fmt.Sprintf("(%s %s %s %d %d", e.Kind, quote(e.Name), quote(e.Type), e.Level, e.Offset)
	if e.Kind == symtab.KindFunc {
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = fmt.Sprintf("(param %s %s)", quote(p.Type), quote(p.Name))
		}
		s += " [" + strings.Join(params, " ") + "]"
	}
	return s + ")"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}
