package errors

import (
	"fmt"
	"strings"

	"coquito/internal/token"
)

// ErrorKind classifies a diagnostic produced while lexing or parsing.
type ErrorKind int

const (
	// UnexpectedToken: a specific token was expected, another was found.
	UnexpectedToken ErrorKind = iota + 1
	// MissingToken: a required token is absent.
	MissingToken
	// UnterminatedConstruct: the input ended inside a construct.
	UnterminatedConstruct
	// InvalidToken: the lexer could not form a valid token.
	InvalidToken
	// Unrecoverable: the parse was aborted.
	Unrecoverable
)

var kindNames = map[ErrorKind]string{
	UnexpectedToken:       "UnexpectedToken",
	MissingToken:          "MissingToken",
	UnterminatedConstruct: "UnterminatedConstruct",
	InvalidToken:          "InvalidToken",
	Unrecoverable:         "Unrecoverable",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Code returns the stable diagnostic code for the kind.
func (k ErrorKind) Code() string {
	switch k {
	case UnexpectedToken:
		return ErrorUnexpectedToken
	case MissingToken:
		return ErrorMissingToken
	case UnterminatedConstruct:
		return ErrorUnterminatedConstruct
	case InvalidToken:
		return ErrorInvalidToken
	case Unrecoverable:
		return ErrorUnrecoverable
	default:
		return ""
	}
}

// ParseError is one syntax or lexical diagnostic.
//
// A MissingToken error does not sit on the token that was found instead: its
// Span is zero-width at the insertion point, just after the last consumed
// token. Every other kind spans the offending token or construct.
type ParseError struct {
	Kind     ErrorKind
	Span     token.Span
	Message  string
	Filename string

	Expected string // UnexpectedToken, MissingToken
	Found    string // UnexpectedToken, InvalidToken
	What     string // UnterminatedConstruct
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%s: %s", e.Filename, e.Span.Start, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

// ErrorList is an ordered, append-only collection of diagnostics.
type ErrorList []*ParseError

// Add appends err to the list.
func (l *ErrorList) Add(err *ParseError) {
	*l = append(*l, err)
}

func (l ErrorList) Len() int {
	return len(l)
}

// Last returns the most recent diagnostic, or nil.
func (l ErrorList) Last() *ParseError {
	if len(l) == 0 {
		return nil
	}
	return l[len(l)-1]
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	b.WriteString(l[0].Error())
	fmt.Fprintf(&b, " (and %d more errors)", len(l)-1)
	return b.String()
}

// Err returns the list as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// IsUnrecoverable reports whether err is a ParseError that aborted a parse.
func IsUnrecoverable(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == Unrecoverable
}
