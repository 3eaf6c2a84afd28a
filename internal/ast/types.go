package ast

import "fmt"

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota
	BAD_EXPR
	BAD_STMT

	// High-level constructs
	PROGRAM
	IDENT

	// Declarations
	VAR_DECL
	FUNC_DECL

	// Statements
	BLOCK_STMT
	EXPR_STMT
	IF_STMT
	WHILE_STMT
	RETURN_STMT

	// Expressions
	BINARY_EXPR
	UNARY_EXPR
	CALL_EXPR
	GROUPING_EXPR
	LITERAL_EXPR
	IDENT_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	BAD_EXPR:      "BAD_EXPR",
	BAD_STMT:      "BAD_STMT",
	PROGRAM:       "PROGRAM",
	IDENT:         "IDENT",
	VAR_DECL:      "VAR_DECL",
	FUNC_DECL:     "FUNC_DECL",
	BLOCK_STMT:    "BLOCK_STMT",
	EXPR_STMT:     "EXPR_STMT",
	IF_STMT:       "IF_STMT",
	WHILE_STMT:    "WHILE_STMT",
	RETURN_STMT:   "RETURN_STMT",
	BINARY_EXPR:   "BINARY_EXPR",
	UNARY_EXPR:    "UNARY_EXPR",
	CALL_EXPR:     "CALL_EXPR",
	GROUPING_EXPR: "GROUPING_EXPR",
	LITERAL_EXPR:  "LITERAL_EXPR",
	IDENT_EXPR:    "IDENT_EXPR",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// LiteralKind distinguishes the literal forms a LiteralExpr can hold.
type LiteralKind int

const (
	INT LiteralKind = iota
	FLOAT
	STRING
	BOOL
)

func (k LiteralKind) String() string {
	switch k {
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case BOOL:
		return "BOOL"
	default:
		return fmt.Sprintf("LiteralKind(%d)", int(k))
	}
}
