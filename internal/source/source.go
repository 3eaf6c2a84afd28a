// Package source holds the immutable text buffers the front end reads and
// the loader that produces them from files.
package source

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Buffer is an already-decoded source text plus the name used in diagnostics.
// A Buffer is never mutated after creation and may be shared by any number of
// concurrent lexers.
type Buffer struct {
	Name string
	Text string
}

func New(name, text string) *Buffer {
	return &Buffer{Name: name, Text: text}
}

// Len returns the size of the text in bytes.
func (b *Buffer) Len() int {
	return len(b.Text)
}

// Load reads path and normalises its encoding. A UTF-8 or UTF-16 byte order
// mark selects the decoding and is removed; text without a BOM must be UTF-8.
func Load(path string) (*Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return New(path, text), nil
}

// Decode converts raw file contents into a UTF-8 string, honouring a leading
// byte order mark.
func Decode(raw []byte) (string, error) {
	// The UTF-8 decoder substitutes U+FFFD for bad bytes, so validate first.
	if !hasUTF16BOM(raw) && !utf8.Valid(raw) {
		return "", fmt.Errorf("invalid UTF-8 encoding")
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hasUTF16BOM(raw []byte) bool {
	return len(raw) >= 2 &&
		((raw[0] == 0xff && raw[1] == 0xfe) || (raw[0] == 0xfe && raw[1] == 0xff))
}
