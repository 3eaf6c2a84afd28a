package lsp_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"coquito/internal/lsp"
	"coquito/internal/parser"
)

const testURI = "file:///work/test.cq"

// recorder captures the notifications a handler sends to the client.
type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, r.published, "no diagnostics published")
	return r.published[len(r.published)-1]
}

func openDocument(t *testing.T, h *lsp.Handler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "coquito",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	h := lsp.NewHandler("coquito", "1.2.3")

	res, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	result, ok := res.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "coquito", result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *result.ServerInfo.Version)

	sem, ok := result.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, sem.Legend.TokenTypes)
	assert.NotNil(t, result.Capabilities.CompletionProvider)
}

func TestDidOpenPublishesExactDiagnostics(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	rec := &recorder{}

	openDocument(t, h, rec.context(), "let x = 1\nlet y = 2;\n")

	params := rec.last(t)
	assert.Equal(t, testURI, params.URI)
	require.Len(t, params.Diagnostics, 1)

	diag := params.Diagnostics[0]
	// zero-width range right after the '1' where the semicolon belongs
	assert.Equal(t, protocol.Position{Line: 0, Character: 9}, diag.Range.Start)
	assert.Equal(t, diag.Range.Start, diag.Range.End)
	assert.Equal(t, "E0101", diag.Code.Value)
	assert.Equal(t, "coquito", *diag.Source)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	assert.Contains(t, diag.Message, "';'")
}

func TestDiagnosticRangesCountUTF16Units(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	rec := &recorder{}

	openDocument(t, h, rec.context(), "let s = \"😀\" @;\n")

	params := rec.last(t)
	require.NotEmpty(t, params.Diagnostics)

	diag := params.Diagnostics[0]
	// the emoji takes two UTF-16 units, so '@' sits at unit 13
	assert.Equal(t, protocol.Position{Line: 0, Character: 13}, diag.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, diag.Range.End)
}

func TestDidChangeReparses(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	rec := &recorder{}
	ctx := rec.context()

	openDocument(t, h, ctx, "let x = ;\n")
	require.NotEmpty(t, rec.last(t).Diagnostics)

	t.Run("whole document", func(t *testing.T) {
		err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
				Version:                2,
			},
			ContentChanges: []any{
				protocol.TextDocumentContentChangeEventWhole{Text: "let x = 1;\n"},
			},
		})
		require.NoError(t, err)
		assert.Empty(t, rec.last(t).Diagnostics)
	})

	t.Run("ranged edit", func(t *testing.T) {
		// replace "1" with "1 +"
		err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
				Version:                3,
			},
			ContentChanges: []any{
				protocol.TextDocumentContentChangeEvent{
					Range: &protocol.Range{
						Start: protocol.Position{Line: 0, Character: 8},
						End:   protocol.Position{Line: 0, Character: 9},
					},
					Text: "1 +",
				},
			},
		})
		require.NoError(t, err)

		diags := rec.last(t).Diagnostics
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Message, "expected expression")
	})

	t.Run("unknown document", func(t *testing.T) {
		err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///work/other.cq"},
			},
		})
		assert.Error(t, err)
	})
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	rec := &recorder{}
	ctx := rec.context()

	openDocument(t, h, ctx, "let = 1;\n")
	require.NotEmpty(t, rec.last(t).Diagnostics)

	err := h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.last(t).Diagnostics)
}

func TestAbortedParseIsReported(t *testing.T) {
	h := lsp.NewHandler("coquito", "test", parser.WithMaxDepth(3))
	rec := &recorder{}

	openDocument(t, h, rec.context(), "let x = ((((1))));\n")

	diags := rec.last(t).Diagnostics
	require.NotEmpty(t, diags)
	assert.Equal(t, "E0104", diags[len(diags)-1].Code.Value)
}

func TestCompletion(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	ctx := (&recorder{}).context()

	openDocument(t, h, ctx, "fn area(w, h) { return w * h; }\nconst side = 3;\nlet total = area(side, side);\n")

	res, err := h.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)

	list, ok := res.(*protocol.CompletionList)
	require.True(t, ok)

	kinds := map[string]protocol.CompletionItemKind{}
	for _, item := range list.Items {
		kinds[item.Label] = *item.Kind
	}

	for _, kw := range []string{"let", "const", "fn", "if", "else", "while", "return", "true", "false"} {
		assert.Equal(t, protocol.CompletionItemKindKeyword, kinds[kw], kw)
	}
	assert.Equal(t, protocol.CompletionItemKindFunction, kinds["area"])
	assert.Equal(t, protocol.CompletionItemKindConstant, kinds["side"])
	assert.Equal(t, protocol.CompletionItemKindVariable, kinds["total"])
	assert.NotContains(t, kinds, "w", "parameters are not offered")
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	ctx := (&recorder{}).context()

	openDocument(t, h, ctx, "fn add(a, b) {\n  return a + b;\n}\nconst k = add(1, 2);\n")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 14)

	assertToken(t, &decoded[0], 1, 1, 2, "keyword", nil)
	assertToken(t, &decoded[1], 1, 4, 3, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 8, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[3], 1, 11, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[4], 2, 3, 6, "keyword", nil)
	assertToken(t, &decoded[5], 2, 10, 1, "variable", nil)
	assertToken(t, &decoded[6], 2, 12, 1, "operator", nil)
	assertToken(t, &decoded[7], 2, 14, 1, "variable", nil)
	assertToken(t, &decoded[8], 4, 1, 5, "keyword", nil)
	assertToken(t, &decoded[9], 4, 7, 1, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[10], 4, 9, 1, "operator", nil)
	assertToken(t, &decoded[11], 4, 11, 3, "function", nil)
	assertToken(t, &decoded[12], 4, 15, 1, "number", nil)
	assertToken(t, &decoded[13], 4, 18, 1, "number", nil)
}

func TestSemanticTokensUTF16(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	ctx := (&recorder{}).context()

	openDocument(t, h, ctx, "let s = \"😀\"; s;\n")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 5)

	assertToken(t, &decoded[3], 1, 9, 4, "string", nil)
	assertToken(t, &decoded[4], 1, 15, 1, "variable", nil)
}

func TestSemanticTokensForUnopenedFile(t *testing.T) {
	h := lsp.NewHandler("coquito", "test")
	rec := &recorder{}

	absPath, err := filepath.Abs(filepath.Join("../../examples", "fib.cq"))
	require.NoError(t, err, "Failed to get absolute path")
	uri := "file://" + filepath.ToSlash(absPath)

	tokens, err := h.TextDocumentSemanticTokensFull(rec.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.NotEmpty(t, decoded)

	assertToken(t, &decoded[0], 3, 1, 2, "keyword", nil)
	assertToken(t, &decoded[1], 3, 4, 3, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 3, 8, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[3], 4, 5, 2, "keyword", nil)
	assertToken(t, &decoded[4], 4, 8, 1, "variable", nil)
	assertToken(t, &decoded[5], 4, 10, 1, "operator", nil)
	assertToken(t, &decoded[6], 4, 12, 1, "number", nil)

	// loading the file also publishes its (empty) diagnostics
	assert.Empty(t, rec.last(t).Diagnostics)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	t.Helper()
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
