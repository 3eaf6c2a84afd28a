package parser

import (
	"fmt"

	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/lexer"
	"coquito/internal/source"
	"coquito/internal/token"
)

// New creates a parser for buf. A nil buffer is an unrecoverable condition.
func New(buf *source.Buffer, opts ...Option) (*Parser, error) {
	if buf == nil {
		return nil, &errors.ParseError{
			Kind:    errors.Unrecoverable,
			Span:    token.At(token.Position{Line: 1, Column: 1}),
			Message: "no source buffer to parse",
		}
	}

	p := &Parser{
		buf:      buf,
		lex:      *lexer.New(buf),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Errors returns the diagnostics of the last parse.
func (p *Parser) Errors() errors.ErrorList {
	return p.errors
}

// ParseProgram parses the whole buffer. The returned Program is never nil.
// The error is non-nil only when the parse was aborted; the Program then
// holds the statements completed so far and the error is also the last
// entry of Errors().
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	prog = &ast.Program{
		Name: p.buf.Name,
		Span: token.Span{
			Start: token.Position{Line: 1, Column: 1},
			End:   lexer.NewAt(p.buf, p.buf.Len()).Pos(),
		},
	}

	defer p.recoverBailout(&err)

	p.reset()
	for !p.atEnd() {
		if stmt := p.parseStatementWithProgress(); stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	return prog, nil
}

// ParseExpr parses the buffer as a single expression followed by end of input.
// The returned expression is never nil.
func (p *Parser) ParseExpr() (expr ast.Expr, err error) {
	expr = &ast.BadExpr{Bad: ast.BadNode{
		Span:    token.At(token.Position{Line: 1, Column: 1}),
		Message: "parse aborted",
	}}

	defer p.recoverBailout(&err)

	p.reset()
	expr = p.parseExpr()
	if !p.atEnd() {
		p.errorUnexpected(p.tok, "end of input", "end of input")
	}
	return expr, nil
}

func (p *Parser) reset() {
	p.lex.Reset()
	p.errors = nil
	p.depth = 0
	p.tokens = 0
	p.hasNext = false
	start := token.Position{Line: 1, Column: 1}
	p.prev = token.Token{Kind: token.INVALID, Span: token.At(start)}
	p.tok = p.prev
	p.checkContext()
	p.advance()
}

func (p *Parser) recoverBailout(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

// abort records an unrecoverable error and unwinds to the parse entry point.
func (p *Parser) abort(span token.Span, format string, args ...any) {
	pe := &errors.ParseError{
		Kind:     errors.Unrecoverable,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		Filename: p.buf.Name,
	}
	p.errors.Add(pe)
	panic(bailout{err: pe})
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.abort(p.tok.Span, "maximum nesting depth of %d exceeded", p.maxDepth)
	}
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) checkContext() {
	if p.ctx == nil {
		return
	}
	if err := p.ctx.Err(); err != nil {
		p.abort(p.tok.Span, "parse cancelled: %v", err)
	}
}
