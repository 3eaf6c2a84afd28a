// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"io"

	"coquito/internal/errors"
	"coquito/internal/token"
)

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

type jsonDiagnostic struct {
	Kind     string       `json:"kind"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Start    jsonPosition `json:"start"`
	End      jsonPosition `json:"end"`
	Expected string       `json:"expected,omitempty"`
	Found    string       `json:"found,omitempty"`
	What     string       `json:"what,omitempty"`
}

type jsonFile struct {
	File        string           `json:"file"`
	Statements  int              `json:"statements"`
	Aborted     bool             `json:"aborted"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonToken struct {
	Kind   string       `json:"kind"`
	Text   string       `json:"text"`
	Start  jsonPosition `json:"start"`
	End    jsonPosition `json:"end"`
	Reason string       `json:"reason,omitempty"`
}

func toJSONPosition(p token.Position) jsonPosition {
	return jsonPosition{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func toJSONDiagnostics(list errors.ErrorList) []jsonDiagnostic {
	out := make([]jsonDiagnostic, 0, len(list))
	for _, pe := range list {
		out = append(out, jsonDiagnostic{
			Kind:     pe.Kind.String(),
			Code:     pe.Kind.Code(),
			Message:  pe.Message,
			Start:    toJSONPosition(pe.Span.Start),
			End:      toJSONPosition(pe.Span.End),
			Expected: pe.Expected,
			Found:    pe.Found,
			What:     pe.What,
		})
	}
	return out
}

func toJSONTokens(tokens []token.Token) []jsonToken {
	out := make([]jsonToken, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, jsonToken{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Start:  toJSONPosition(tok.Span.Start),
			End:    toJSONPosition(tok.Span.End),
			Reason: tok.Reason,
		})
	}
	return out
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
