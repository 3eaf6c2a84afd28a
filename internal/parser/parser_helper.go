package parser

import (
	"fmt"

	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/token"
)

func (p *Parser) advance() token.Token {
	p.prev = p.tok
	if p.hasNext {
		p.tok = p.next
		p.hasNext = false
	} else {
		p.tok = p.pull()
	}
	return p.prev
}

// peekNext returns the token after the current one without consuming either.
func (p *Parser) peekNext() token.Token {
	if !p.hasNext {
		p.next = p.pull()
		p.hasNext = true
	}
	return p.next
}

// pull reads one token from the lexer and enforces the token budget.
func (p *Parser) pull() token.Token {
	tok := p.lex.NextToken()
	if tok.Kind == token.EOF {
		return tok
	}

	p.tokens++
	if p.maxTokens > 0 && p.tokens > p.maxTokens {
		p.abort(tok.Span, "token limit of %d exceeded", p.maxTokens)
	}
	if p.tokens%ctxCheckInterval == 0 {
		p.checkContext()
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.tok.Kind == token.EOF
}

func (p *Parser) checkPunct(text string) bool {
	return p.tok.IsPunct(text)
}

func (p *Parser) matchPunct(text string) bool {
	if p.tok.IsPunct(text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) checkKeyword(kw string) bool {
	return p.tok.IsKeyword(kw)
}

// expectPunct consumes the punctuation or reports it missing. The current
// token is never consumed on failure.
func (p *Parser) expectPunct(text string) bool {
	if p.matchPunct(text) {
		return true
	}
	p.errorExpected(fmt.Sprintf("'%s'", text), text)
	return false
}

// expectIdent consumes an identifier. On failure it reports and returns a
// zero-width placeholder at the insertion point.
func (p *Parser) expectIdent(what string) (ast.Ident, bool) {
	if p.tok.Kind == token.IDENTIFIER {
		tok := p.advance()
		return p.makeIdent(tok), true
	}
	p.errorExpected(what, "identifier")
	return ast.Ident{Span: p.insertionPoint()}, false
}

// insertionPoint is the zero-width span just after the last consumed token.
func (p *Parser) insertionPoint() token.Span {
	return token.At(p.prev.Span.End)
}

// spanFrom runs from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	end := p.prev.Span.End
	if end.Offset < start.Offset {
		return token.At(start)
	}
	return token.Span{Start: start, End: end}
}

func (p *Parser) makeIdent(tok token.Token) ast.Ident {
	return ast.Ident{Span: tok.Span, Name: tok.Text}
}

// isMissing decides between MissingToken and UnexpectedToken: the wanted
// token is missing when nothing follows on the same line that could have
// been meant in its place.
func (p *Parser) isMissing(tok token.Token) bool {
	switch {
	case tok.Kind == token.EOF:
		return true
	case tok.IsPunct(")"), tok.IsPunct("}"):
		return true
	case tok.Span.Start.Line > p.prev.Span.End.Line:
		return true
	}
	return false
}

// errorExpected reports that desc was expected at the current token.
func (p *Parser) errorExpected(desc, expected string) {
	tok := p.tok
	switch {
	case tok.Kind == token.INVALID:
		p.errorInvalid(tok)
	case p.isMissing(tok):
		p.report(&errors.ParseError{
			Kind:     errors.MissingToken,
			Span:     p.insertionPoint(),
			Message:  "expected " + desc,
			Expected: expected,
		})
	default:
		p.errorUnexpected(tok, desc, expected)
	}
}

func (p *Parser) errorUnexpected(tok token.Token, desc, expected string) {
	p.report(&errors.ParseError{
		Kind:     errors.UnexpectedToken,
		Span:     tok.Span,
		Message:  fmt.Sprintf("expected %s, found %s", desc, tok.Describe()),
		Expected: expected,
		Found:    tok.Describe(),
	})
}

func (p *Parser) errorInvalid(tok token.Token) {
	p.report(&errors.ParseError{
		Kind:    errors.InvalidToken,
		Span:    tok.Span,
		Message: fmt.Sprintf("%s %s", tok.Reason, tok.Describe()),
		Found:   tok.Text,
	})
}

// report appends pe unless it is a cascade of the previous diagnostic: it
// starts at the same offset or inside its span, or it is a MissingToken
// inserted right where the previous diagnostic ends.
func (p *Parser) report(pe *errors.ParseError) {
	if last := p.errors.Last(); last != nil {
		off := pe.Span.Start.Offset
		start, end := last.Span.Start.Offset, last.Span.End.Offset
		switch {
		case off == start:
			return
		case off > start && off < end:
			return
		case pe.Kind == errors.MissingToken && off == end:
			return
		}
	}
	pe.Filename = p.buf.Name
	p.errors.Add(pe)
}

// canStartStatement reports whether tok may begin a statement.
func canStartStatement(tok token.Token) bool {
	switch tok.Kind {
	case token.KEYWORD:
		return !tok.IsKeyword("else")
	case token.PUNCTUATION:
		return tok.Text == "{" || tok.Text == ";" || tok.Text == "("
	}
	return canStartExpression(tok)
}

// canStartExpression reports whether tok may begin an expression.
func canStartExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.IDENTIFIER, token.INTEGER, token.FLOAT, token.STRING:
		return true
	case token.KEYWORD:
		return tok.Text == "true" || tok.Text == "false"
	case token.OPERATOR:
		_, ok := prefixOperators[tok.Text]
		return ok
	case token.PUNCTUATION:
		return tok.Text == "("
	}
	return false
}

func isStatementKeyword(tok token.Token) bool {
	if tok.Kind != token.KEYWORD {
		return false
	}
	switch tok.Text {
	case "let", "const", "fn", "if", "while", "return":
		return true
	}
	return false
}

// synchronizeStatement recovers from a token that cannot start a statement.
// It reports once, consumes the offending token, then discards tokens until
// a statement boundary. The skipped range becomes a BadStmt.
func (p *Parser) synchronizeStatement() ast.Stmt {
	start := p.tok
	if start.Kind == token.INVALID {
		p.errorInvalid(start)
	} else {
		p.errorUnexpected(start, "statement", "statement")
	}
	p.advance()

	for !p.atEnd() && !p.checkPunct("}") {
		if p.matchPunct(";") {
			break
		}
		if canStartStatement(p.tok) {
			break
		}
		p.advance()
	}

	return &ast.BadStmt{Bad: ast.BadNode{
		Span:    p.spanFrom(start.Span.Start),
		Message: "unexpected " + start.Describe(),
	}}
}

// expectSemicolon ends a statement. When the semicolon is missing and more
// tokens follow on the same line, they are discarded through the next
// semicolon or up to a closing brace or statement keyword.
func (p *Parser) expectSemicolon() {
	if p.expectPunct(";") {
		return
	}
	if p.isMissing(p.tok) {
		return
	}
	for !p.atEnd() && !p.checkPunct("}") && !isStatementKeyword(p.tok) {
		if p.matchPunct(";") {
			return
		}
		p.advance()
	}
}

// skipToClose discards tokens of a broken list up to and including close,
// stopping early at a statement boundary.
func (p *Parser) skipToClose(close string) {
	for !p.atEnd() && !p.checkPunct("}") && !p.checkPunct(";") && !p.checkPunct("{") {
		if p.matchPunct(close) {
			return
		}
		if p.tok.Span.Start.Line > p.prev.Span.End.Line && isStatementKeyword(p.tok) {
			return
		}
		p.advance()
	}
}
