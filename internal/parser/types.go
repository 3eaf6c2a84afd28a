package parser

import (
	"context"

	"coquito/internal/errors"
	"coquito/internal/lexer"
	"coquito/internal/source"
	"coquito/internal/token"
)

// DefaultMaxDepth bounds statement and expression nesting.
const DefaultMaxDepth = 256

// ctxCheckInterval is how many tokens are read between context checks.
const ctxCheckInterval = 256

// Parser turns the token stream of one source buffer into a Program.
// It owns its lexer; independent parsers share no mutable state.
type Parser struct {
	buf *source.Buffer
	lex lexer.Lexer

	tok     token.Token // current token
	next    token.Token // second lookahead token, valid when hasNext
	hasNext bool
	prev    token.Token // last consumed token

	errors errors.ErrorList

	depth     int
	maxDepth  int
	tokens    int
	maxTokens int
	ctx       context.Context
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithMaxTokens aborts the parse after n tokens. Zero means no limit.
func WithMaxTokens(n int) Option {
	return func(p *Parser) {
		if n >= 0 {
			p.maxTokens = n
		}
	}
}

// WithContext aborts the parse when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(p *Parser) {
		p.ctx = ctx
	}
}

// bailout is the panic value used to unwind an aborted parse.
type bailout struct {
	err *errors.ParseError
}
