package grammar

import (
	"fmt"
	"strings"
)

// The printer renders the same canonical text as the AST printer: binary
// and unary operations fully parenthesized, blocks indented by two spaces,
// empty statements dropped.

func indentBlock(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

func (p *Program) String() string {
	return joinStatements(p.Statements, "\n")
}

// StatementCount is the number of top-level statements, empty ones excluded.
func (p *Program) StatementCount() int {
	n := 0
	for _, s := range p.Statements {
		if !s.Empty {
			n++
		}
	}
	return n
}

func joinStatements(stmts []*Statement, sep string) string {
	var parts []string
	for _, s := range stmts {
		if s.Empty {
			continue
		}
		parts = append(parts, s.String())
	}
	return strings.Join(parts, sep)
}

func (s *Statement) String() string {
	switch {
	case s.Var != nil:
		return s.Var.String()
	case s.Func != nil:
		return s.Func.String()
	case s.If != nil:
		return s.If.String()
	case s.While != nil:
		return s.While.String()
	case s.Return != nil:
		return s.Return.String()
	case s.Block != nil:
		return s.Block.String()
	case s.Expr != nil:
		return s.Expr.Expr.String() + ";"
	}
	return ""
}

func (v *VarDecl) String() string {
	if v.Value == nil {
		return fmt.Sprintf("%s %s;", v.Keyword, v.Name)
	}
	return fmt.Sprintf("%s %s = %s;", v.Keyword, v.Name, v.Value)
}

func (f *FuncDecl) String() string {
	return fmt.Sprintf("fn %s(%s) %s", f.Name, strings.Join(f.Params, ", "), f.Body)
}

func (b *Block) String() string {
	var lines []string
	for _, s := range b.Statements {
		if s.Empty {
			continue
		}
		lines = append(lines, indentBlock(s.String()))
	}
	if len(lines) == 0 {
		return "{}"
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}

func (i *IfStmt) String() string {
	s := fmt.Sprintf("if %s %s", i.Cond, i.Then)
	switch {
	case i.ElseIf != nil:
		s += " else " + i.ElseIf.String()
	case i.Else != nil:
		s += " else " + i.Else.String()
	}
	return s
}

func (w *WhileStmt) String() string {
	return fmt.Sprintf("while %s %s", w.Cond, w.Body)
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}

func (e *Expr) String() string {
	return e.Assignment.String()
}

// isOperation reports whether the outermost node is a binary or unary
// operation, which already prints its own parentheses.
func (e *Expr) isOperation() bool {
	a := e.Assignment
	if a.Op != "" {
		return true
	}
	or := a.Target
	if len(or.Rest) > 0 {
		return true
	}
	and := or.Left
	if len(and.Rest) > 0 {
		return true
	}
	eq := and.Left
	if len(eq.Rest) > 0 {
		return true
	}
	cmp := eq.Left
	if len(cmp.Rest) > 0 {
		return true
	}
	add := cmp.Left
	if len(add.Rest) > 0 {
		return true
	}
	term := add.Left
	if len(term.Rest) > 0 {
		return true
	}
	return term.Left.Op != ""
}

func binary(left, op, right string) string {
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

func (a *Assignment) String() string {
	if a.Op == "" {
		return a.Target.String()
	}
	return binary(a.Target.String(), a.Op, a.Value.String())
}

func (l *LogicOr) String() string {
	s := l.Left.String()
	for _, r := range l.Rest {
		s = binary(s, r.Op, r.Right.String())
	}
	return s
}

func (l *LogicAnd) String() string {
	s := l.Left.String()
	for _, r := range l.Rest {
		s = binary(s, r.Op, r.Right.String())
	}
	return s
}

func (e *Equality) String() string {
	s := e.Left.String()
	for _, r := range e.Rest {
		s = binary(s, r.Op, r.Right.String())
	}
	return s
}

func (c *Comparison) String() string {
	s := c.Left.String()
	for _, r := range c.Rest {
		s = binary(s, r.Op, r.Right.String())
	}
	return s
}

func (a *Additive) String() string {
	s := a.Left.String()
	for _, r := range a.Rest {
		s = binary(s, r.Op, r.Right.String())
	}
	return s
}

func (t *Term) String() string {
	s := t.Left.String()
	for _, r := range t.Rest {
		s = binary(s, r.Op, r.Right.String())
	}
	return s
}

func (u *Unary) String() string {
	if u.Op != "" {
		return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
	}
	return u.Primary.String()
}

func (p *Primary) String() string {
	switch {
	case p.Float != nil:
		return *p.Float
	case p.Int != nil:
		return *p.Int
	case p.Str != nil:
		return *p.Str
	case p.Bool != nil:
		return *p.Bool
	case p.Call != nil:
		return p.Call.String()
	case p.Ident != nil:
		return *p.Ident
	case p.Group != nil:
		if p.Group.isOperation() {
			return p.Group.String()
		}
		return "(" + p.Group.String() + ")"
	}
	return ""
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}
