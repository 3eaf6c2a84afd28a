// Package lexer turns a source buffer into tokens, one at a time, on demand.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"coquito/internal/source"
	"coquito/internal/token"
)

// Reasons attached to INVALID tokens.
const (
	ReasonUnterminatedString  = "unterminated string"
	ReasonUnterminatedComment = "unterminated block comment"
	ReasonMalformedNumber     = "malformed numeric literal"
	ReasonUnrecognized        = "unrecognized character"
	ReasonBadEncoding         = "invalid UTF-8 encoding"
)

// Lexer scans a Buffer left to right. It references the buffer without owning
// it and must not be shared between goroutines.
type Lexer struct {
	src   *source.Buffer
	start token.Position // where the current scan began; Reset returns here
	pos   token.Position
}

// New returns a lexer positioned at the start of buf.
func New(buf *source.Buffer) *Lexer {
	return NewAt(buf, 0)
}

// NewAt returns a lexer positioned at offset. Line and column are derived
// from the text before offset; offsets outside the text are clamped.
func NewAt(buf *source.Buffer, offset int) *Lexer {
	pos := token.Position{Line: 1, Column: 1}
	offset = min(max(offset, 0), len(buf.Text))
	for _, r := range buf.Text[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	pos.Offset = offset

	return &Lexer{src: buf, start: pos, pos: pos}
}

// Reset restarts the scan from the lexer's initial position.
func (l *Lexer) Reset() {
	l.pos = l.start
}

// Pos returns the position of the next unread character.
func (l *Lexer) Pos() token.Position {
	return l.pos
}

// Source returns the buffer being scanned.
func (l *Lexer) Source() *source.Buffer {
	return l.src
}

// PeekChar returns the character at the current position without consuming
// it. The second result is false at the end of the buffer.
func (l *Lexer) PeekChar() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src.Text[l.pos.Offset:])
	return r, true
}

// peekCharAt looks n runes past the current position.
func (l *Lexer) peekCharAt(n int) (rune, bool) {
	off := l.pos.Offset
	for ; n > 0; n-- {
		if off >= len(l.src.Text) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(l.src.Text[off:])
		off += size
	}
	if off >= len(l.src.Text) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src.Text[off:])
	return r, true
}

// Advance consumes the current character and returns it. A newline moves to
// column 1 of the next line; anything else moves one column right. At the
// end of the buffer Advance returns 0 and does nothing.
func (l *Lexer) Advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.src.Text[l.pos.Offset:])
	l.pos.Offset += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return r
}

func (l *Lexer) isAtEnd() bool {
	return l.pos.Offset >= len(l.src.Text)
}

// NextToken scans and returns the next token. After the end of the buffer it
// keeps returning the same zero-width EOF token.
func (l *Lexer) NextToken() token.Token {
	if tok, ok := l.skipTrivia(); ok {
		return tok
	}

	start := l.pos
	if l.isAtEnd() {
		return token.Token{Kind: token.EOF, Span: token.At(start)}
	}

	r, size := utf8.DecodeRuneInString(l.src.Text[start.Offset:])
	switch {
	case r == utf8.RuneError && size == 1:
		l.Advance()
		return l.invalid(start, ReasonBadEncoding)
	case isIdentStart(r):
		return l.scanIdentifier(start)
	case isDigit(r):
		return l.scanNumber(start)
	case r == '"' || r == '\'':
		return l.scanString(start, r)
	case r < utf8.RuneSelf && token.IsSymbolStart(byte(r)):
		if text, kind, ok := token.MatchSymbol(l.src.Text[start.Offset:]); ok {
			for range text {
				l.Advance()
			}
			return l.makeToken(kind, start)
		}
	}

	l.Advance()
	return l.invalid(start, ReasonUnrecognized)
}

// skipTrivia consumes whitespace and comments. An unterminated block comment
// is returned as an INVALID token.
func (l *Lexer) skipTrivia() (token.Token, bool) {
	for {
		r, ok := l.PeekChar()
		if !ok {
			return token.Token{}, false
		}

		switch {
		case unicode.IsSpace(r):
			l.Advance()
		case r == '/':
			next, _ := l.peekCharAt(1)
			switch next {
			case '/':
				l.skipLineComment()
			case '*':
				if tok, bad := l.skipBlockComment(); bad {
					return tok, true
				}
			default:
				return token.Token{}, false
			}
		default:
			return token.Token{}, false
		}
	}
}

func (l *Lexer) skipLineComment() {
	for r, ok := l.PeekChar(); ok && r != '\n'; r, ok = l.PeekChar() {
		l.Advance()
	}
}

func (l *Lexer) skipBlockComment() (token.Token, bool) {
	start := l.pos
	l.Advance() // /
	l.Advance() // *
	for !l.isAtEnd() {
		if r, _ := l.PeekChar(); r == '*' {
			if next, _ := l.peekCharAt(1); next == '/' {
				l.Advance()
				l.Advance()
				return token.Token{}, false
			}
		}
		l.Advance()
	}
	return l.invalid(start, ReasonUnterminatedComment), true
}

func (l *Lexer) scanIdentifier(start token.Position) token.Token {
	for r, ok := l.PeekChar(); ok && isIdentPart(r); r, ok = l.PeekChar() {
		l.Advance()
	}
	text := l.src.Text[start.Offset:l.pos.Offset]
	return l.makeToken(token.LookupIdent(text), start)
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	l.consumeDigits()
	kind := token.INTEGER

	if r, _ := l.PeekChar(); r == '.' {
		next, ok := l.peekCharAt(1)
		if !ok || !isDigit(next) {
			// trailing '.'
			l.Advance()
			l.consumeNumberTail()
			return l.invalid(start, ReasonMalformedNumber)
		}
		l.Advance()
		l.consumeDigits()
		kind = token.FLOAT
	}

	if r, ok := l.PeekChar(); ok && (r == '.' || isIdentPart(r)) {
		// 1.2.3, 12abc
		l.consumeNumberTail()
		return l.invalid(start, ReasonMalformedNumber)
	}

	return l.makeToken(kind, start)
}

func (l *Lexer) consumeDigits() {
	for r, ok := l.PeekChar(); ok && isDigit(r); r, ok = l.PeekChar() {
		l.Advance()
	}
}

func (l *Lexer) consumeNumberTail() {
	for r, ok := l.PeekChar(); ok && (r == '.' || isIdentPart(r)); r, ok = l.PeekChar() {
		l.Advance()
	}
}

// scanString consumes a quoted literal. A string left open at the end of a
// line or of the buffer becomes INVALID and stops before the newline, so the
// next line lexes normally.
func (l *Lexer) scanString(start token.Position, quote rune) token.Token {
	l.Advance() // opening quote
	for {
		r, ok := l.PeekChar()
		if !ok || r == '\n' {
			return l.invalid(start, ReasonUnterminatedString)
		}
		l.Advance()
		switch r {
		case '\\':
			if next, ok := l.PeekChar(); ok && next != '\n' {
				l.Advance()
			}
		case quote:
			return l.makeToken(token.STRING, start)
		}
	}
}

func (l *Lexer) makeToken(kind token.Kind, start token.Position) token.Token {
	return token.Token{
		Kind: kind,
		Text: l.src.Text[start.Offset:l.pos.Offset],
		Span: token.Span{Start: start, End: l.pos},
	}
}

func (l *Lexer) invalid(start token.Position, reason string) token.Token {
	tok := l.makeToken(token.INVALID, start)
	tok.Reason = reason
	return tok
}

// Tokenize scans buf to completion. The result always ends with one EOF.
func Tokenize(buf *source.Buffer) []token.Token {
	l := New(buf)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Helper functions.

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
