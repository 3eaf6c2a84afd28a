package parser

import (
	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/token"
)

// parseStatementWithProgress parses one statement and guarantees that at
// least one token was consumed.
func (p *Parser) parseStatementWithProgress() ast.Stmt {
	before := p.tok.Span.Start.Offset
	stmt := p.parseStatement()
	if !p.atEnd() && p.tok.Span.Start.Offset == before {
		p.advance()
	}
	return stmt
}

// parseStatement dispatches on the leading token. A nil result means an
// empty statement.
func (p *Parser) parseStatement() ast.Stmt {
	p.enter()
	defer p.leave()

	tok := p.tok
	switch {
	case tok.IsKeyword("let"), tok.IsKeyword("const"):
		return p.parseVarDecl()
	case tok.IsKeyword("fn"):
		return p.parseFuncDecl()
	case tok.IsKeyword("if"):
		return p.parseIfStmt()
	case tok.IsKeyword("while"):
		return p.parseWhileStmt()
	case tok.IsKeyword("return"):
		return p.parseReturnStmt()
	case tok.IsPunct("{"):
		return p.parseBlock()
	case tok.IsPunct(";"):
		p.advance()
		return nil
	case canStartExpression(tok):
		return p.parseExprStmt()
	}

	return p.synchronizeStatement()
}

func (p *Parser) parseVarDecl() ast.Stmt {
	kw := p.advance()
	name, _ := p.expectIdent("variable name")

	var value ast.Expr
	if p.tok.IsOperator("=") {
		p.advance()
		value = p.parseExpr()
	} else if kw.Text == "const" {
		p.errorExpected("'=' after constant name", "=")
	}
	p.expectSemicolon()

	return &ast.VarDecl{
		Span:    p.spanFrom(kw.Span.Start),
		Keyword: kw.Text,
		Name:    name,
		Value:   value,
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.tok.Span.Start
	expr := p.parseExpr()
	p.expectSemicolon()

	return &ast.ExprStmt{
		Span: p.spanFrom(start),
		Expr: expr,
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	kw := p.advance()

	var value ast.Expr
	if canStartExpression(p.tok) {
		value = p.parseExpr()
	}
	p.expectSemicolon()

	return &ast.ReturnStmt{
		Span:  p.spanFrom(kw.Span.Start),
		Value: value,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	kw := p.advance()
	cond := p.parseExpr()
	then := p.parseBlock()

	var elseStmt ast.Stmt
	if p.checkKeyword("else") {
		p.advance()
		if p.checkKeyword("if") {
			p.enter()
			elseStmt = p.parseIfStmt()
			p.leave()
		} else {
			elseStmt = p.parseBlock()
		}
	}

	return &ast.IfStmt{
		Span: p.spanFrom(kw.Span.Start),
		Cond: cond,
		Then: then,
		Else: elseStmt,
	}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	kw := p.advance()
	cond := p.parseExpr()
	body := p.parseBlock()

	return &ast.WhileStmt{
		Span: p.spanFrom(kw.Span.Start),
		Cond: cond,
		Body: body,
	}
}

// parseBlock parses "{ statements }". A missing '{' yields an empty block at
// the insertion point; reaching end of input inside the block is reported
// as an unterminated construct.
func (p *Parser) parseBlock() *ast.BlockStmt {
	if !p.checkPunct("{") {
		p.errorExpected("'{'", "{")
		return &ast.BlockStmt{Span: p.insertionPoint()}
	}
	open := p.advance()

	block := &ast.BlockStmt{}
	for !p.checkPunct("}") && !p.atEnd() {
		if stmt := p.parseStatementWithProgress(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}

	if p.atEnd() {
		p.report(&errors.ParseError{
			Kind:     errors.UnterminatedConstruct,
			Span:     token.Span{Start: open.Span.Start, End: p.tok.Span.End},
			Message:  "unterminated block: expected '}'",
			Expected: "}",
			What:     "block",
		})
	} else {
		p.advance()
	}

	block.Span = p.spanFrom(open.Span.Start)
	return block
}
