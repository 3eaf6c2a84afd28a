package ast

type Stmt interface {
	Node
	isStmt()
}

func (*BadStmt) isStmt() {}

func (*ExprStmt) isStmt() {}

func (*VarDecl) isStmt() {}

func (*FuncDecl) isStmt() {}

func (*BlockStmt) isStmt() {}

func (*IfStmt) isStmt() {}

func (*WhileStmt) isStmt() {}

func (*ReturnStmt) isStmt() {}

// Decl is the subset of statements that introduce a name.
type Decl interface {
	Stmt
	isDecl()
}

func (*VarDecl) isDecl() {}

func (*FuncDecl) isDecl() {}
