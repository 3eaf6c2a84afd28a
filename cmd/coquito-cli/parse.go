// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"coquito/internal/config"
	"coquito/internal/errors"
	"coquito/internal/parser"
	"coquito/internal/source"
)

func newParseCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse files and print their syntax trees or diagnostics",
		Long: `Parse one or more files concurrently.

A file without errors has its syntax tree printed in canonical form.
Otherwise every diagnostic is reported, in source order, and the
command exits with status 1.`,
		Example: `  # Print the syntax tree
  coquito-cli parse examples/fib.cq

  # Diagnostics as JSON, for editors and scripts
  coquito-cli parse --output json examples/broken.cq`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "report diagnostics only")
	return cmd
}

type loadFailure struct {
	path string
	err  error
}

func loadSources(paths []string) ([]*source.Buffer, []loadFailure) {
	var bufs []*source.Buffer
	var failures []loadFailure
	for _, path := range paths {
		buf, err := source.Load(path)
		if err != nil {
			failures = append(failures, loadFailure{path: path, err: err})
			continue
		}
		bufs = append(bufs, buf)
	}
	return bufs, failures
}

func runParse(cmd *cobra.Command, paths []string, quiet bool) error {
	cfg := getConfig(cmd.Context())
	out := cmd.OutOrStdout()
	startTime := time.Now()

	bufs, failures := loadSources(paths)

	ctx, cancel := cfg.Context(cmd.Context())
	defer cancel()

	results, err := parser.ParseAll(ctx, bufs, cfg.ParserOptions(ctx)...)
	if err != nil {
		log.Warningf("parsing interrupted: %s", err)
	}

	failed := len(failures) > 0
	var errorCount int
	for _, res := range results {
		errorCount += len(res.Errors)
		if len(res.Errors) > 0 || res.Err != nil {
			failed = true
		}
	}

	duration := time.Since(startTime)
	log.Infof("parsed %d files in %s", len(results), formatDuration(duration))

	if cfg.Output == config.OutputJSON {
		if err := renderJSON(out, parseReport(failures, results)); err != nil {
			return err
		}
	} else {
		printParseText(out, failures, bufs, results, quiet)

		if failed {
			color.New(color.FgRed).Fprintf(out, "Parsing failed after %s (%d errors)\n", formatDuration(duration), errorCount+len(failures))
		} else {
			color.New(color.FgGreen).Fprintf(out, "Successfully parsed %d files in %s\n", len(results), formatDuration(duration))
		}
	}

	if failed {
		return errFailed
	}
	return nil
}

func printParseText(out io.Writer, failures []loadFailure, bufs []*source.Buffer, results []parser.Result, quiet bool) {
	red := color.New(color.FgRed).SprintFunc()
	for _, f := range failures {
		fmt.Fprintf(out, "%s[%s]: %v\n  --> %s\n\n", red("error"), errors.ErrorSourceLoad, f.err, f.path)
	}

	for i, res := range results {
		if len(res.Errors) > 0 {
			reporter := errors.NewErrorReporter(res.Name, bufs[i].Text)
			fmt.Fprint(out, reporter.FormatAll(res.Errors))
			continue
		}
		if quiet || res.Program == nil {
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(out, "// %s\n", res.Name)
		}
		fmt.Fprintln(out, res.Program.String())
	}
}

func parseReport(failures []loadFailure, results []parser.Result) []jsonFile {
	report := make([]jsonFile, 0, len(failures)+len(results))
	for _, f := range failures {
		report = append(report, jsonFile{
			File:        f.path,
			Error:       f.err.Error(),
			Diagnostics: []jsonDiagnostic{},
		})
	}
	for _, res := range results {
		file := jsonFile{
			File:        res.Name,
			Aborted:     res.Err != nil,
			Diagnostics: toJSONDiagnostics(res.Errors),
		}
		if res.Program != nil {
			file.Statements = len(res.Program.Stmts)
		}
		if res.Err != nil {
			file.Error = res.Err.Error()
		}
		report = append(report, file)
	}
	return report
}
