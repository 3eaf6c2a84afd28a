package ast

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		out = append(out, n)
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			add(stmt)
		}

	case *VarDecl:
		add(&n.Name)
		addExpr(n.Value)

	case *FuncDecl:
		add(&n.Name)
		for i := range n.Params {
			add(&n.Params[i])
		}
		if n.Body != nil {
			add(n.Body)
		}

	case *BlockStmt:
		for _, stmt := range n.Stmts {
			add(stmt)
		}

	case *ExprStmt:
		addExpr(n.Expr)

	case *IfStmt:
		addExpr(n.Cond)
		if n.Then != nil {
			add(n.Then)
		}
		if n.Else != nil {
			add(n.Else)
		}

	case *WhileStmt:
		addExpr(n.Cond)
		if n.Body != nil {
			add(n.Body)
		}

	case *ReturnStmt:
		addExpr(n.Value)

	case *BinaryExpr:
		addExpr(n.Left)
		addExpr(n.Right)

	case *UnaryExpr:
		addExpr(n.Operand)

	case *CallExpr:
		add(&n.Callee)
		for _, arg := range n.Args {
			addExpr(arg)
		}

	case *GroupingExpr:
		addExpr(n.Inner)

	case *IdentExpr:
		add(&n.Name)
	}

	return out
}

// Inspect traverses the tree rooted at node in depth-first pre-order.
// If fn returns false the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

// SourceText returns the slice of src covered by node, or "" when the span
// does not fit the text.
func SourceText(node Node, src string) string {
	span := node.NodeSpan()
	start, end := span.Start.Offset, span.End.Offset
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}
