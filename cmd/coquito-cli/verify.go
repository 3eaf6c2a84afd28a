// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"coquito/grammar"
	"coquito/internal/config"
	"coquito/internal/parser"
	"coquito/internal/source"
)

func newVerifyCmd() *cobra.Command {
	var ebnf bool

	cmd := &cobra.Command{
		Use:   "verify FILE...",
		Short: "Cross-check the parser against the reference grammar",
		Long: `Parse each file with both the recovering parser and the declarative
reference grammar. The two agree when both accept the file with the same
canonical syntax tree, or when both reject it.`,
		Example: `  coquito-cli verify examples/*.cq
  coquito-cli verify --ebnf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ebnf {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), grammar.EBNF())
				return err
			}
			if len(args) == 0 {
				return fmt.Errorf("requires at least 1 file")
			}
			return runVerify(cmd, args)
		},
	}

	cmd.Flags().BoolVar(&ebnf, "ebnf", false, "print the reference grammar and exit")
	return cmd
}

type verdict struct {
	File       string `json:"file"`
	Statements int    `json:"statements"`
	Recovering string `json:"recovering"`
	Reference  string `json:"reference"`
	Agree      bool   `json:"agree"`

	detail string
}

func verifyFile(path string, opts []parser.Option) verdict {
	v := verdict{File: path}

	buf, err := source.Load(path)
	if err != nil {
		v.Recovering, v.Reference = "unreadable", "unreadable"
		v.detail = err.Error()
		return v
	}

	prog, errs, _ := parser.ParseSource(buf.Name, buf.Text, opts...)
	ref, refErr := grammar.Parse(buf.Name, buf.Text)

	accepted := len(errs) == 0
	v.Recovering = "ok"
	if !accepted {
		v.Recovering = fmt.Sprintf("%d errors", len(errs))
	}
	v.Reference = "ok"
	if refErr != nil {
		v.Reference = "rejected"
		v.detail = grammar.FormatParseError(buf.Text, refErr)
	}
	if prog != nil {
		v.Statements = len(prog.Stmts)
	}

	switch {
	case accepted && refErr == nil:
		v.Agree = prog.String() == ref.String()
		if !v.Agree {
			v.Reference = "different tree"
			v.detail = fmt.Sprintf("parser:\n%s\nreference:\n%s\n", prog, ref)
		}
	case !accepted && refErr != nil:
		v.Agree = true
	}
	return v
}

func runVerify(cmd *cobra.Command, paths []string) error {
	cfg := getConfig(cmd.Context())
	out := cmd.OutOrStdout()

	ctx, cancel := cfg.Context(cmd.Context())
	defer cancel()

	verdicts := make([]verdict, 0, len(paths))
	var mismatches int
	for _, path := range paths {
		v := verifyFile(path, cfg.ParserOptions(ctx))
		if !v.Agree {
			mismatches++
		}
		verdicts = append(verdicts, v)
	}

	if cfg.Output == config.OutputJSON {
		if err := renderJSON(out, verdicts); err != nil {
			return err
		}
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"File", "Statements", "Parser", "Reference", "Result"})
		for _, v := range verdicts {
			result := "agree"
			if !v.Agree {
				result = "DISAGREE"
			}
			t.AppendRow(table.Row{v.File, v.Statements, v.Recovering, v.Reference, result})
		}
		t.Render()

		for _, v := range verdicts {
			if v.detail != "" && (!v.Agree || v.Reference == "rejected") {
				_, _ = fmt.Fprintf(out, "\n%s:\n%s", v.File, strings.TrimRight(v.detail, "\n")+"\n")
			}
		}
	}

	if mismatches > 0 {
		log.Warningf("%d of %d files disagree", mismatches, len(paths))
		return errFailed
	}
	return nil
}
