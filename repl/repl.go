// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"coquito/internal/errors"
	"coquito/internal/lexer"
	"coquito/internal/parser"
	"coquito/internal/source"
	"coquito/internal/token"
)

const (
	PROMPT      = ">> "
	CONTINUE    = ".. "
	sessionName = "<repl>"
)

// Start reads statements from in and prints their syntax tree, or the
// diagnostics, to out. Input whose braces are still open is continued on
// the next line. Start returns at end of input.
func Start(in io.Reader, out io.Writer, opts ...parser.Option) error {
	scanner := bufio.NewScanner(in)
	var pending strings.Builder

	for {
		if pending.Len() == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUE)
		}

		if !scanner.Scan() {
			if pending.Len() > 0 {
				eval(out, pending.String(), opts)
			}
			fmt.Fprintln(out)
			return scanner.Err()
		}

		pending.WriteString(scanner.Text())
		pending.WriteByte('\n')

		if openBraces(pending.String()) > 0 {
			continue
		}
		eval(out, pending.String(), opts)
		pending.Reset()
	}
}

func eval(out io.Writer, text string, opts []parser.Option) {
	if strings.TrimSpace(text) == "" {
		return
	}

	prog, errs, err := parser.ParseSource(sessionName, text, opts...)
	if err != nil && prog == nil {
		fmt.Fprintln(out, err)
		return
	}
	if len(errs) > 0 {
		fmt.Fprint(out, errors.NewErrorReporter(sessionName, text).FormatAll(errs))
		return
	}
	if len(prog.Stmts) > 0 {
		fmt.Fprintln(out, prog.String())
	}
}

// openBraces counts '{' tokens not yet closed by '}'.
func openBraces(text string) int {
	var depth int
	lex := lexer.New(source.New(sessionName, text))
	for {
		tok := lex.NextToken()
		switch {
		case tok.Kind == token.EOF:
			return depth
		case tok.IsPunct("{"):
			depth++
		case tok.IsPunct("}"):
			depth--
		}
	}
}
