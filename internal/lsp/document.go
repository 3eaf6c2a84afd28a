package lsp

import (
	"sort"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/parser"
	"coquito/internal/source"
	"coquito/internal/token"
)

// document is one open text buffer and the result of its last parse.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	buf     *source.Buffer
	lines   []int // byte offset of each line start

	program *ast.Program
	errors  errors.ErrorList
	aborted error
}

func newDocument(uri protocol.DocumentUri, version protocol.Integer, name, text string, opts []parser.Option) *document {
	doc := &document{
		uri:     uri,
		version: version,
		buf:     source.New(name, text),
		lines:   lineStarts(text),
	}

	p, err := parser.New(doc.buf, opts...)
	if err != nil {
		doc.aborted = err
		return doc
	}
	doc.program, doc.aborted = p.ParseProgram()
	doc.errors = p.Errors()
	return doc
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// position converts a byte offset into an LSP position, whose character
// index counts UTF-16 code units.
func (d *document) position(offset int) protocol.Position {
	text := d.buf.Text
	offset = max(0, min(offset, len(text)))

	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1
	var units int
	for _, r := range text[d.lines[line]:offset] {
		units += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(units)}
}

func (d *document) rangeOf(span token.Span) protocol.Range {
	return protocol.Range{
		Start: d.position(span.Start.Offset),
		End:   d.position(span.End.Offset),
	}
}

// offset converts an LSP position back into a byte offset, clamping
// positions past the end of a line or of the document.
func (d *document) offset(pos protocol.Position) int {
	text := d.buf.Text
	if int(pos.Line) >= len(d.lines) {
		return len(text)
	}

	off := d.lines[pos.Line]
	var units protocol.UInteger
	for i, r := range text[off:] {
		if r == '\n' || units >= pos.Character {
			return off + i
		}
		units += protocol.UInteger(utf16.RuneLen(r))
	}
	return len(text)
}

// applyChanges folds content change events into text. Whole-document events
// replace it; ranged events splice their text in.
func (d *document) applyChanges(changes []any) string {
	text := d.buf.Text
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			cur := &document{buf: source.New(d.buf.Name, text), lines: lineStarts(text)}
			start, end := cur.offset(c.Range.Start), cur.offset(c.Range.End)
			if end < start {
				start, end = end, start
			}
			text = text[:start] + c.Text + text[end:]
		}
	}
	return text
}
