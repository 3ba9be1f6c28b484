// Package parser scans and parses source text, firing syntax-directed
// construction actions on an sdt.Builder as each production is recognized.
package parser

import (
	"fmt"

	"github.com/strager/sdtac/ast"
	"github.com/strager/sdtac/sdt"
)

// SyntaxError is a malformed-input error at a source position.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Line, e.Column, e.Msg)
}

// Parser is a recursive-descent parser with one token of lookahead beyond
// the current token.
type Parser struct {
	lexer *Lexer
	b     *sdt.Builder

	cur  Token
	peek Token
}

// New returns a parser reading from l and reducing into b.
func New(l *Lexer, b *sdt.Builder) *Parser {
	p := &Parser{lexer: l, b: b}
	p.next()
	p.next()
	return p
}

// ParseProgram parses declarations until EOF. The first error aborts the
// parse; the builder's table must then be discarded.
func ParseProgram(l *Lexer, b *sdt.Builder) (*ast.Program, error) {
	return New(l, b).ParseProgram()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf(format, args...)}
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of file"
	case IDENT, NUMBER, TYPE, RETURN, ILLEGAL:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return describeType(tok.Type)
	}
}

func describeType(tt TokenType) string {
	switch tt {
	case IDENT, NUMBER, TYPE, RETURN, ILLEGAL, EOF:
		return string(tt)
	default:
		return "'" + string(tt) + "'"
	}
}

// expect consumes the current token, which must be of type tt, and returns it.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.cur
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s but got %s", describeType(tt), describe(tok))
	}
	p.next()
	return tok, nil
}

// ParseProgram parses: decl*
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var decls []ast.Decl
	for p.cur.Type != EOF {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return p.b.Program(decls), nil
}

// parseDecl parses: var_decl | func_decl
func (p *Parser) parseDecl() (ast.Decl, error) {
	if p.cur.Type != TYPE {
		return nil, p.errorf(p.cur, "expected declaration but got %s", describe(p.cur))
	}
	if p.peek.Type == IDENT {
		// TYPE ID '(' starts a function; anything else is a variable list.
		typ := p.cur
		p.next()
		name := p.cur
		p.next()
		if p.cur.Type == LPAREN {
			return p.parseFuncRest(typ.Literal, name.Literal)
		}
		return p.parseVarDeclRest(typ.Literal, name.Literal)
	}
	return nil, p.errorf(p.peek, "expected IDENT but got %s", describe(p.peek))
}

// parseVarDecl parses: TYPE ID (',' ID)* ';'
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	typ, err := p.expect(TYPE)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	return p.parseVarDeclRest(typ.Literal, name.Literal)
}

func (p *Parser) parseVarDeclRest(typ string, first string) (*ast.VarDecl, error) {
	names := []string{first}
	for p.cur.Type == COMMA {
		p.next()
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		names = append(names, name.Literal)
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return p.b.VarDecl(typ, names)
}

// parseFuncRest parses: '(' params? ')' '{' stmt* '}'
//
// The header is reduced as soon as '{' is seen so that the body's
// statements are reduced inside the function's scope.
func (p *Parser) parseFuncRest(returnType string, name string) (*ast.FuncDecl, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	if p.cur.Type != RPAREN {
		for {
			typ, err := p.expect(TYPE)
			if err != nil {
				return nil, err
			}
			pname, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Type: typ.Literal, Name: pname.Literal})
			if p.cur.Type != COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	if err := p.b.OpenFunc(returnType, name, params); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	for p.cur.Type != RBRACE {
		if p.cur.Type == EOF {
			return nil, p.errorf(p.cur, "expected '}' to close function '%s' but got end of file", name)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.next() // consume '}'
	return p.b.CloseFunc(returnType, name, params, body), nil
}

// parseStatement parses:
//
//	var_decl | ID '=' expr ';' | 'return' expr? ';' | expr ';'
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.cur.Type == TYPE:
		return p.parseVarDecl()

	case p.cur.Type == RETURN:
		p.next()
		var expr ast.Expr
		if p.cur.Type != SEMICOLON {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			expr = e
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return p.b.Return(expr), nil

	case p.cur.Type == IDENT && p.peek.Type == ASSIGN:
		name := p.cur.Literal
		p.next()
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		// The target is reduced after the right-hand side.
		return p.b.Assign(name, expr)

	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return p.b.ExprStmt(expr), nil
	}
}

// precedence returns the binding power of a binary operator token, or 0 if
// the token is not a binary operator.
func precedence(tt TokenType) int {
	switch tt {
	case PLUS, MINUS:
		return 1
	case ASTERISK, SLASH:
		return 2
	default:
		return 0
	}
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseExpressionWithPrecedence(1)
}

// parseExpressionWithPrecedence implements precedence climbing. All
// operators are left-associative.
func (p *Parser) parseExpressionWithPrecedence(minPrec int) (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		prec := precedence(p.cur.Type)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		op := string(p.cur.Type)
		p.next()
		right, err := p.parseExpressionWithPrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		left = p.b.BinOp(op, left, right)
	}
}

// parseTerm parses: NUMBER | ID | ID '(' args? ')' | '(' expr ')'
func (p *Parser) parseTerm() (ast.Expr, error) {
	switch p.cur.Type {
	case NUMBER:
		tok := p.cur
		p.next()
		num, err := p.b.Num(tok.Literal)
		if err != nil {
			return nil, p.errorf(tok, "invalid number %q", tok.Literal)
		}
		return num, nil

	case IDENT:
		name := p.cur.Literal
		p.next()
		if p.cur.Type != LPAREN {
			return p.b.Ident(name)
		}
		p.next()
		var args []ast.Expr
		if p.cur.Type != RPAREN {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur.Type != COMMA {
					break
				}
				p.next()
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return p.b.Call(name, args)

	case LPAREN:
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.errorf(p.cur, "expected expression but got %s", describe(p.cur))
	}
}
