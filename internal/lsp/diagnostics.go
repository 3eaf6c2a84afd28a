package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"coquito/internal/errors"
)

const diagnosticSource = "coquito"

// diagnostics converts the parse errors of d into LSP diagnostics.
// Ranges are the exact error spans; a zero-width range marks where a
// missing token belongs.
func (d *document) diagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, pe := range d.errors {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    d.rangeOf(pe.Span),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: pe.Kind.Code()},
			Source:   ptrString(diagnosticSource),
			Message:  pe.Message,
		})
	}

	// a parse aborted before the document could be read has no span
	if d.program == nil && d.aborted != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: errors.ErrorUnrecoverable},
			Source:   ptrString(diagnosticSource),
			Message:  d.aborted.Error(),
		})
	}

	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
