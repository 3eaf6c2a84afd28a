package token

import "fmt"

type Kind int

const (
	// Special tokens
	INVALID Kind = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	INTEGER
	FLOAT
	STRING

	// Symbols; the concrete symbol is the token text
	OPERATOR
	KEYWORD
	PUNCTUATION
)

var kindNames = [...]string{
	INVALID:     "INVALID",
	EOF:         "EOF",
	IDENTIFIER:  "IDENTIFIER",
	INTEGER:     "INTEGER",
	FLOAT:       "FLOAT",
	STRING:      "STRING",
	OPERATOR:    "OPERATOR",
	KEYWORD:     "KEYWORD",
	PUNCTUATION: "PUNCTUATION",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is an immutable lexical unit. Text is a slice of the source buffer;
// Reason is only set for INVALID tokens.
type Token struct {
	Kind   Kind
	Text   string
	Span   Span
	Reason string
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsOperator reports whether the token is the operator op.
func (t Token) IsOperator(op string) bool {
	return t.Is(OPERATOR, op)
}

// IsKeyword reports whether the token is the keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Is(KEYWORD, kw)
}

// IsPunct reports whether the token is the punctuation p.
func (t Token) IsPunct(p string) bool {
	return t.Is(PUNCTUATION, p)
}

// Describe renders the token for use in diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case OPERATOR, KEYWORD, PUNCTUATION:
		return fmt.Sprintf("'%s'", t.Text)
	case INVALID:
		return fmt.Sprintf("%q", t.Text)
	default:
		return fmt.Sprintf("%s %q", lowerKind[t.Kind], t.Text)
	}
}

var lowerKind = map[Kind]string{
	IDENTIFIER: "identifier",
	INTEGER:    "integer",
	FLOAT:      "float",
	STRING:     "string",
}

func (t Token) String() string {
	if t.Kind == INVALID {
		return fmt.Sprintf("%s(%q: %s)@%s", t.Kind, t.Text, t.Reason, t.Span.Start)
	}
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Span.Start)
}
