// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"coquito/internal/config"
	"coquito/internal/lexer"
	"coquito/internal/source"
	"coquito/internal/token"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Example: `  coquito-cli tokens examples/fib.cq
  coquito-cli tokens -o json examples/fib.cq`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, path string) error {
	cfg := getConfig(cmd.Context())
	out := cmd.OutOrStdout()

	buf, err := source.Load(path)
	if err != nil {
		return err
	}
	tokens := lexer.Tokenize(buf)

	if cfg.Output == config.OutputJSON {
		return renderJSON(out, toJSONTokens(tokens))
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Text", "Start", "End", "Reason"})

	var invalid int
	for i, tok := range tokens {
		if tok.Kind == token.INVALID {
			invalid++
		}
		t.AppendRow(table.Row{i, tok.Kind, fmt.Sprintf("%q", tok.Text), tok.Span.Start, tok.Span.End, tok.Reason})
	}
	t.Render()
	_, _ = fmt.Fprintf(out, "(%d tokens, %d invalid)\n", len(tokens), invalid)

	return nil
}
