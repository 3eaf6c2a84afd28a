package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for i, stmt := range p.Stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}
	return b.String()
}

func (i *Ident) String() string {
	return i.Name
}

func (be *BadExpr) String() string {
	return fmt.Sprintf("BadExpr: %s", be.Bad.Message)
}

func (bs *BadStmt) String() string {
	return fmt.Sprintf("BadStmt: %s", bs.Bad.Message)
}

func (v *VarDecl) String() string {
	if v.Value == nil {
		return fmt.Sprintf("%s %s;", v.Keyword, v.Name.Name)
	}
	return fmt.Sprintf("%s %s = %s;", v.Keyword, v.Name.Name, exprString(v.Value))
}

func (f *FuncDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name
	}
	return fmt.Sprintf("fn %s(%s) %s", f.Name.Name, strings.Join(params, ", "), blockString(f.Body))
}

func (b *BlockStmt) String() string {
	if len(b.Stmts) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, stmt := range b.Stmts {
		sb.WriteString("  " + strings.ReplaceAll(stmt.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (es *ExprStmt) String() string {
	return exprString(es.Expr) + ";"
}

func (is *IfStmt) String() string {
	s := fmt.Sprintf("if %s %s", exprString(is.Cond), blockString(is.Then))
	if is.Else != nil {
		s += " else " + is.Else.String()
	}
	return s
}

func (ws *WhileStmt) String() string {
	return fmt.Sprintf("while %s %s", exprString(ws.Cond), blockString(ws.Body))
}

func (rs *ReturnStmt) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + exprString(rs.Value) + ";"
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", exprString(b.Left), b.Op, exprString(b.Right))
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, exprString(u.Operand))
}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = exprString(arg)
	}
	return fmt.Sprintf("%s(%s)", c.Callee.Name, strings.Join(args, ", "))
}

// Binary and unary expressions already print their own parentheses.
func (g *GroupingExpr) String() string {
	switch g.Inner.(type) {
	case *BinaryExpr, *UnaryExpr:
		return g.Inner.String()
	}
	return "(" + exprString(g.Inner) + ")"
}

func (l *LiteralExpr) String() string {
	return l.Raw
}

func (ie *IdentExpr) String() string {
	return ie.Name.Name
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

func blockString(b *BlockStmt) string {
	if b == nil {
		return "{}"
	}
	return b.String()
}
