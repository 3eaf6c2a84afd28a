package parser

import "coquito/internal/ast"

func (p *Parser) parseFuncDecl() ast.Stmt {
	kw := p.advance()

	name, ok := p.expectIdent("function name")
	if !ok && !p.checkPunct("(") && !p.checkPunct("{") {
		return &ast.BadStmt{Bad: ast.BadNode{
			Span:    p.spanFrom(kw.Span.Start),
			Message: "expected function name",
		}}
	}

	params := p.parseFunctionParameters()
	body := p.parseBlock()

	return &ast.FuncDecl{
		Span:   p.spanFrom(kw.Span.Start),
		Name:   name,
		Params: params,
		Body:   body,
	}
}

// parseFunctionParameters parses "( [ident {, ident} [,]] )".
func (p *Parser) parseFunctionParameters() []ast.Ident {
	if !p.expectPunct("(") {
		return nil
	}

	var params []ast.Ident
	for !p.checkPunct(")") && !p.atEnd() {
		param, ok := p.expectIdent("parameter name")
		if !ok {
			p.skipToClose(")")
			return params
		}
		params = append(params, param)

		if !p.matchPunct(",") {
			break
		}
	}

	if !p.matchPunct(")") {
		p.errorExpected("')'", ")")
		if !p.isMissing(p.tok) {
			p.skipToClose(")")
		}
	}
	return params
}
