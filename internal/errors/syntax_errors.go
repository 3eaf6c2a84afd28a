package errors

import (
	"fmt"
	"strings"

	"coquito/internal/token"
)

// SyntaxErrorBuilder provides a fluent interface for creating parser errors with suggestions
type SyntaxErrorBuilder struct {
	err CompilerError
}

// NewSyntaxError creates a new syntax error builder
func NewSyntaxError(code, message string, pos token.Position) *SyntaxErrorBuilder {
	return &SyntaxErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SyntaxErrorBuilder) WithLength(length int) *SyntaxErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SyntaxErrorBuilder) WithSuggestion(message string) *SyntaxErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SyntaxErrorBuilder) WithReplacement(message, replacement string, pos token.Position, length int) *SyntaxErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SyntaxErrorBuilder) WithNote(note string) *SyntaxErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SyntaxErrorBuilder) WithHelp(help string) *SyntaxErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SyntaxErrorBuilder) Build() CompilerError {
	return b.err
}

// FromParseError prepares a parser diagnostic for display.
func FromParseError(pe *ParseError) CompilerError {
	builder := NewSyntaxError(pe.Kind.Code(), pe.Message, pe.Span.Start).
		WithLength(spanColumns(pe.Span))

	switch pe.Kind {
	case MissingToken:
		if isSymbol(pe.Expected) {
			builder = builder.WithReplacement(
				fmt.Sprintf("insert '%s'", pe.Expected), pe.Expected, pe.Span.Start, 0)
		} else {
			builder = builder.WithSuggestion(fmt.Sprintf("add %s here", pe.Expected))
		}
	case UnexpectedToken:
		if pe.Expected != "" && pe.Found != "" {
			builder = builder.WithNote(fmt.Sprintf("expected %s, found %s", pe.Expected, pe.Found))
		}
	case UnterminatedConstruct:
		builder = builder.WithHelp(fmt.Sprintf("the %s opened here is never closed", pe.What))
	case InvalidToken:
		builder = builder.WithHelp(invalidTokenHelp(pe.Message))
	case Unrecoverable:
		builder = builder.WithNote("no further diagnostics were collected for this file")
	}

	return builder.Build()
}

// spanColumns is the marker width for a span; multi-line spans mark one column.
func spanColumns(s token.Span) int {
	if s.Start.Line != s.End.Line {
		return 1
	}
	return max(1, s.End.Column-s.Start.Column)
}

func isSymbol(expected string) bool {
	_, _, ok := token.MatchSymbol(expected)
	return ok
}

func invalidTokenHelp(message string) string {
	switch {
	case strings.Contains(message, "unterminated string"):
		return "close the string with a matching quote on the same line"
	case strings.Contains(message, "unterminated block comment"):
		return "close the comment with '*/'"
	case strings.Contains(message, "malformed numeric literal"):
		return "numbers are digits with at most one '.' followed by digits"
	default:
		return "remove the character or place it inside a string"
	}
}
