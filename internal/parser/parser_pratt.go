package parser

import (
	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/token"
)

type binding struct {
	prec       int
	rightAssoc bool
}

var binaryPrecedence = map[string]binding{
	"=": {1, true}, "+=": {1, true}, "-=": {1, true},
	"*=": {1, true}, "/=": {1, true}, "%=": {1, true},
	"||": {2, false},
	"&&": {3, false},
	"==": {4, false}, "!=": {4, false},
	"<": {5, false}, "<=": {5, false}, ">": {5, false}, ">=": {5, false},
	"+": {6, false}, "-": {6, false},
	"*": {7, false}, "/": {7, false}, "%": {7, false},
}

// prefixOperators bind tighter than every binary operator.
var prefixOperators = map[string]struct{}{
	"-": {}, "+": {}, "!": {},
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parsePrattExpr(1)
}

// parsePrattExpr is precedence climbing: operands bind to operators whose
// power is at least minPrec; left-associative operators parse their right
// operand one level higher.
func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	p.enter()
	defer p.leave()

	expr := p.parsePrefixExpr()

	for {
		tok := p.tok
		if tok.Kind != token.OPERATOR {
			break
		}
		b, ok := binaryPrecedence[tok.Text]
		if !ok || b.prec < minPrec {
			break
		}

		p.advance()
		nextMin := b.prec + 1
		if b.rightAssoc {
			nextMin = b.prec
		}
		right := p.parsePrattExpr(nextMin)

		bin := &ast.BinaryExpr{
			Span:   token.Join(expr.NodeSpan(), right.NodeSpan()),
			Op:     tok.Text,
			OpSpan: tok.Span,
			Left:   expr,
			Right:  right,
		}
		if bin.IsAssignment() {
			p.checkAssignTarget(bin)
		}
		expr = bin
	}

	return expr
}

func (p *Parser) checkAssignTarget(bin *ast.BinaryExpr) {
	switch bin.Left.(type) {
	case *ast.IdentExpr, *ast.BadExpr:
		return
	}
	p.report(&errors.ParseError{
		Kind:     errors.UnexpectedToken,
		Span:     bin.OpSpan,
		Message:  "invalid assignment target",
		Expected: "identifier",
		Found:    bin.Left.String(),
	})
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	if p.tok.Kind == token.OPERATOR {
		if _, ok := prefixOperators[p.tok.Text]; ok {
			p.enter()
			defer p.leave()

			op := p.advance()
			operand := p.parsePrefixExpr()
			return &ast.UnaryExpr{
				Span:    token.Join(op.Span, operand.NodeSpan()),
				Op:      op.Text,
				Operand: operand,
			}
		}
	}

	return p.parsePrimaryExpr()
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.tok

	switch tok.Kind {
	case token.INTEGER:
		p.advance()
		return &ast.LiteralExpr{Span: tok.Span, Kind: ast.INT, Raw: tok.Text}

	case token.FLOAT:
		p.advance()
		return &ast.LiteralExpr{Span: tok.Span, Kind: ast.FLOAT, Raw: tok.Text}

	case token.STRING:
		p.advance()
		return &ast.LiteralExpr{Span: tok.Span, Kind: ast.STRING, Raw: tok.Text}

	case token.KEYWORD:
		if tok.Text == "true" || tok.Text == "false" {
			p.advance()
			return &ast.LiteralExpr{Span: tok.Span, Kind: ast.BOOL, Raw: tok.Text}
		}

	case token.IDENTIFIER:
		// one extra token of lookahead separates a call from a plain name
		if p.peekNext().IsPunct("(") {
			return p.parseCallExpr()
		}
		p.advance()
		return &ast.IdentExpr{Name: p.makeIdent(tok)}

	case token.PUNCTUATION:
		if tok.Text == "(" {
			return p.parseGroupingExpr()
		}

	case token.INVALID:
		p.errorInvalid(tok)
		p.advance()
		return &ast.BadExpr{Bad: ast.BadNode{Span: tok.Span, Message: tok.Reason}}
	}

	p.errorExpected("expression", "expression")
	return &ast.BadExpr{Bad: ast.BadNode{Span: p.insertionPoint(), Message: "expected expression"}}
}

func (p *Parser) parseGroupingExpr() ast.Expr {
	open := p.advance()
	inner := p.parseExpr()
	p.expectPunct(")")

	return &ast.GroupingExpr{
		Span:  p.spanFrom(open.Span.Start),
		Inner: inner,
	}
}

func (p *Parser) parseCallExpr() ast.Expr {
	name := p.advance()
	p.advance() // '('

	args := p.parseExprList()
	if !p.matchPunct(")") {
		p.errorExpected("')'", ")")
		if !p.isMissing(p.tok) {
			p.skipToClose(")")
		}
	}

	return &ast.CallExpr{
		Span:   p.spanFrom(name.Span.Start),
		Callee: p.makeIdent(name),
		Args:   args,
	}
}

// parseExprList parses comma separated arguments up to, not including, ')'.
// A trailing comma is allowed.
func (p *Parser) parseExprList() []ast.Expr {
	var args []ast.Expr

	for !p.checkPunct(")") && !p.atEnd() {
		args = append(args, p.parseExpr())
		if !p.matchPunct(",") {
			break
		}
	}

	return args
}
