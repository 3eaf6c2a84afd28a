package ast

import (
	"strings"

	"coquito/internal/token"
)

// Program is the root of a parsed source buffer.
// Its Span covers the whole buffer, including leading and trailing trivia.
type Program struct {
	Span  token.Span
	Name  string
	Stmts []Stmt
}

// Ident represents any identifier like variable names or function names
// Example: "count", "add", "_tmp"
type Ident struct {
	Span token.Span
	Name string
}

// BadNode contains error information for failed parsing
type BadNode struct {
	Span    token.Span
	Message string
}

// BadExpr stands in for an expression that could not be parsed
type BadExpr struct {
	Bad BadNode
}

// BadStmt stands in for a run of tokens skipped during recovery
type BadStmt struct {
	Bad BadNode
}

// VarDecl represents variable declarations
// Example: "let x = 1;", "const limit = 10;", "let y;"
type VarDecl struct {
	Span    token.Span
	Keyword string // "let" or "const"
	Name    Ident
	Value   Expr // nil when there is no initializer
}

// IsConst reports whether the declaration used "const".
func (v *VarDecl) IsConst() bool {
	return v.Keyword == "const"
}

// FuncDecl represents function declarations
// Example: "fn add(a, b) { return a + b; }"
type FuncDecl struct {
	Span   token.Span
	Name   Ident
	Params []Ident
	Body   *BlockStmt
}

// BlockStmt represents a braced statement list
// Example: "{ let x = 1; x += 2; }"
type BlockStmt struct {
	Span  token.Span
	Stmts []Stmt
}

// ExprStmt represents an expression used as a statement
// Example: "x = x + 1;", "print(x);"
type ExprStmt struct {
	Span token.Span
	Expr Expr
}

// IfStmt represents conditionals. Else is nil, a *BlockStmt or an *IfStmt.
// Example: "if x > 0 { ... } else if x < 0 { ... } else { ... }"
type IfStmt struct {
	Span token.Span
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

// WhileStmt represents loops
// Example: "while i < 10 { i += 1; }"
type WhileStmt struct {
	Span token.Span
	Cond Expr
	Body *BlockStmt
}

// ReturnStmt represents return statements
// Example: "return;", "return a * b;"
type ReturnStmt struct {
	Span  token.Span
	Value Expr // nil for a bare return
}

// BinaryExpr represents binary operations, assignments included
// Example: "a + b", "x == y", "total += n"
type BinaryExpr struct {
	Span   token.Span
	Op     string
	OpSpan token.Span
	Left   Expr
	Right  Expr
}

// IsAssignment reports whether the operator is "=" or a compound assignment.
func (b *BinaryExpr) IsAssignment() bool {
	switch b.Op {
	case "=", "+=", "-=", "*=", "/=", "%=":
		return true
	}
	return false
}

// UnaryExpr represents prefix operations
// Example: "-x", "!done", "+1"
type UnaryExpr struct {
	Span    token.Span
	Op      string
	Operand Expr
}

// CallExpr represents function calls
// Example: "max(a, b)", "tick()"
type CallExpr struct {
	Span   token.Span
	Callee Ident
	Args   []Expr
}

// GroupingExpr represents a parenthesized expression
// Example: "(a + b)"
type GroupingExpr struct {
	Span  token.Span
	Inner Expr
}

// LiteralExpr represents literal values; Raw is the source text.
// Example: "42", "3.14", "\"hello\"", "true"
type LiteralExpr struct {
	Span token.Span
	Kind LiteralKind
	Raw  string
}

// Value returns the literal's value as text. String literals are unquoted
// and their escapes resolved; other kinds return Raw.
func (l *LiteralExpr) Value() string {
	if l.Kind != STRING || len(l.Raw) < 2 {
		return l.Raw
	}
	body := l.Raw[1 : len(l.Raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// IdentExpr represents a name used as an expression
// Example: "balance"
type IdentExpr struct {
	Name Ident
}
