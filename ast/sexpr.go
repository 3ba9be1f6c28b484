package ast

import "strings"

// ToSExpr converts an AST node to s-expression string representation
func ToSExpr(node Node) string {
	switch n := node.(type) {
	case *Program:
		result := "(program"
		for _, decl := range n.Decls {
			result += " " + ToSExpr(decl)
		}
		return result + ")"
	case *VarDecl:
		result := "(var-decl " + quote(n.Type)
		for _, name := range n.Names {
			result += " " + quote(name)
		}
		return result + ")"
	case *FuncDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = "(param " + quote(p.Type) + " " + quote(p.Name) + ")"
		}
		body := make([]string, len(n.Body))
		for i, stmt := range n.Body {
			body[i] = ToSExpr(stmt)
		}
		return "(func " + quote(n.ReturnType) + " " + quote(n.Name) +
			" [" + strings.Join(params, " ") + "]" +
			" [" + strings.Join(body, " ") + "])"
	case *Assign:
		return "(assign " + quote(n.Name) + " " + ToSExpr(n.Expr) + ")"
	case *Return:
		if n.Expr == nil {
			return "(return)"
		}
		return "(return " + ToSExpr(n.Expr) + ")"
	case *ExprStmt:
		return "(expr " + ToSExpr(n.Expr) + ")"
	case *BinOp:
		return "(binary " + quote(n.Op) + " " + ToSExpr(n.Left) + " " + ToSExpr(n.Right) + ")"
	case *Num:
		return "(number " + n.Text + ")"
	case *Var:
		return "(var " + quote(n.Name) + ")"
	case *Call:
		result := "(call " + quote(n.Name)
		for _, arg := range n.Args {
			result += " " + ToSExpr(arg)
		}
		return result + ")"
	default:
		return ""
	}
}

func quote(s string) string {
	return "\"" + s + "\""
}
