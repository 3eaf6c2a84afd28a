package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is the reference parse of a whole source file.
type Program struct {
	Pos        lexer.Position
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos    lexer.Position
	Empty  bool        `  @";"`
	Var    *VarDecl    `| @@`
	Func   *FuncDecl   `| @@`
	If     *IfStmt     `| @@`
	While  *WhileStmt  `| @@`
	Return *ReturnStmt `| @@`
	Block  *Block      `| @@`
	Expr   *ExprStmt   `| @@`
}

type VarDecl struct {
	Keyword string `@("let" | "const")`
	Name    string `@Ident`
	Value   *Expr  `[ "=" @@ ] ";"`
}

type FuncDecl struct {
	Name   string   `"fn" @Ident "("`
	Params []string `[ @Ident { "," @Ident } [ "," ] ] ")"`
	Body   *Block   `@@`
}

type Block struct {
	Statements []*Statement `"{" @@* "}"`
}

type IfStmt struct {
	Cond   *Expr   `"if" @@`
	Then   *Block  `@@`
	ElseIf *IfStmt `[ "else" ( @@`
	Else   *Block  `         | @@ ) ]`
}

type WhileStmt struct {
	Cond *Expr  `"while" @@`
	Body *Block `@@`
}

type ReturnStmt struct {
	Value *Expr `"return" @@? ";"`
}

type ExprStmt struct {
	Expr *Expr `@@ ";"`
}

// Expressions are layered one type per precedence level, loosest first.

type Expr struct {
	Assignment *Assignment `@@`
}

type Assignment struct {
	Target *LogicOr    `@@`
	Op     string      `[ @("=" | "+=" | "-=" | "*=" | "/=" | "%=")`
	Value  *Assignment `  @@ ]`
}

type LogicOr struct {
	Left *LogicAnd    `@@`
	Rest []*OpLogicAnd `@@*`
}

type OpLogicAnd struct {
	Op    string    `@"||"`
	Right *LogicAnd `@@`
}

type LogicAnd struct {
	Left *Equality    `@@`
	Rest []*OpEquality `@@*`
}

type OpEquality struct {
	Op    string    `@"&&"`
	Right *Equality `@@`
}

type Equality struct {
	Left *Comparison    `@@`
	Rest []*OpComparison `@@*`
}

type OpComparison struct {
	Op    string      `@("==" | "!=")`
	Right *Comparison `@@`
}

type Comparison struct {
	Left *Additive    `@@`
	Rest []*OpAdditive `@@*`
}

type OpAdditive struct {
	Op    string    `@("<=" | ">=" | "<" | ">")`
	Right *Additive `@@`
}

type Additive struct {
	Left *Term    `@@`
	Rest []*OpTerm `@@*`
}

type OpTerm struct {
	Op    string `@("+" | "-")`
	Right *Term  `@@`
}

type Term struct {
	Left *Unary    `@@`
	Rest []*OpUnary `@@*`
}

type OpUnary struct {
	Op    string `@("*" | "/" | "%")`
	Right *Unary `@@`
}

type Unary struct {
	Op      string   `  @("-" | "+" | "!")`
	Operand *Unary   `  @@`
	Primary *Primary `| @@`
}

type Primary struct {
	Float  *string `  @Float`
	Int    *string `| @Int`
	Str    *string `| @String`
	Bool   *string `| @("true" | "false")`
	Call   *Call   `| @@`
	Ident  *string `| @Ident`
	Group  *Expr   `| "(" @@ ")"`
}

type Call struct {
	Name string  `@Ident "("`
	Args []*Expr `[ @@ { "," @@ } [ "," ] ] ")"`
}
