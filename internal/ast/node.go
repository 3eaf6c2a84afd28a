package ast

import "coquito/internal/token"

type Node interface {
	NodeSpan() token.Span
	NodeType() NodeType
	String() string
}

func (p *Program) NodeSpan() token.Span { return p.Span }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (i *Ident) NodeSpan() token.Span { return i.Span }
func (*Ident) NodeType() NodeType     { return IDENT }

func (be *BadExpr) NodeSpan() token.Span { return be.Bad.Span }
func (*BadExpr) NodeType() NodeType      { return BAD_EXPR }

func (bs *BadStmt) NodeSpan() token.Span { return bs.Bad.Span }
func (*BadStmt) NodeType() NodeType      { return BAD_STMT }

func (v *VarDecl) NodeSpan() token.Span { return v.Span }
func (*VarDecl) NodeType() NodeType     { return VAR_DECL }

func (f *FuncDecl) NodeSpan() token.Span { return f.Span }
func (*FuncDecl) NodeType() NodeType     { return FUNC_DECL }

func (b *BlockStmt) NodeSpan() token.Span { return b.Span }
func (*BlockStmt) NodeType() NodeType     { return BLOCK_STMT }

func (es *ExprStmt) NodeSpan() token.Span { return es.Span }
func (*ExprStmt) NodeType() NodeType      { return EXPR_STMT }

func (is *IfStmt) NodeSpan() token.Span { return is.Span }
func (*IfStmt) NodeType() NodeType      { return IF_STMT }

func (ws *WhileStmt) NodeSpan() token.Span { return ws.Span }
func (*WhileStmt) NodeType() NodeType      { return WHILE_STMT }

func (rs *ReturnStmt) NodeSpan() token.Span { return rs.Span }
func (*ReturnStmt) NodeType() NodeType      { return RETURN_STMT }

func (b *BinaryExpr) NodeSpan() token.Span { return b.Span }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (u *UnaryExpr) NodeSpan() token.Span { return u.Span }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (c *CallExpr) NodeSpan() token.Span { return c.Span }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (g *GroupingExpr) NodeSpan() token.Span { return g.Span }
func (*GroupingExpr) NodeType() NodeType     { return GROUPING_EXPR }

func (l *LiteralExpr) NodeSpan() token.Span { return l.Span }
func (*LiteralExpr) NodeType() NodeType     { return LITERAL_EXPR }

func (ie *IdentExpr) NodeSpan() token.Span { return ie.Name.Span }
func (*IdentExpr) NodeType() NodeType      { return IDENT_EXPR }
