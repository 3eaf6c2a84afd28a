package parser

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/source"
)

// ParseSource parses text under the logical name. It always returns a
// Program and the ordered diagnostics; the error is non-nil only when the
// parse was aborted.
func ParseSource(name, text string, opts ...Option) (*ast.Program, errors.ErrorList, error) {
	p, err := New(source.New(name, text), opts...)
	if err != nil {
		return nil, nil, err
	}
	prog, err := p.ParseProgram()
	return prog, p.Errors(), err
}

// ParseExpression parses text as a single expression.
func ParseExpression(name, text string, opts ...Option) (ast.Expr, errors.ErrorList, error) {
	p, err := New(source.New(name, text), opts...)
	if err != nil {
		return nil, nil, err
	}
	expr, err := p.ParseExpr()
	return expr, p.Errors(), err
}

// Result is the outcome of parsing one buffer with ParseAll.
type Result struct {
	Name    string
	Program *ast.Program
	Errors  errors.ErrorList
	Err     error // set when the parse was aborted
}

// ParseAll parses independent buffers concurrently, one Parser per buffer.
// Results are in input order. An aborted parse is reported in its Result
// and does not stop the others; the returned error is the context's.
func ParseAll(ctx context.Context, bufs []*source.Buffer, opts ...Option) ([]Result, error) {
	results := make([]Result, len(bufs))

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	fileOpts := append(opts[:len(opts):len(opts)], WithContext(ctx))

	for i, buf := range bufs {
		g.Go(func() error {
			p, err := New(buf, fileOpts...)
			if err != nil {
				results[i] = Result{Err: err}
				return nil
			}
			prog, err := p.ParseProgram()
			results[i] = Result{
				Name:    buf.Name,
				Program: prog,
				Errors:  p.Errors(),
				Err:     err,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, origCtx.Err()
}
