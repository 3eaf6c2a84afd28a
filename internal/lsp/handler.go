package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"coquito/internal/ast"
	"coquito/internal/parser"
	"coquito/internal/source"
	"coquito/internal/token"
)

var log = commonlog.GetLogger("coquito.lsp")

// Handler implements the LSP server handlers for coquito source files.
// Open documents are kept in memory and reparsed on every change.
type Handler struct {
	name    string
	version string
	opts    []parser.Option

	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*document
}

// NewHandler creates a handler that parses with opts.
func NewHandler(name, version string, opts ...parser.Option) *Handler {
	return &Handler{
		name:    name,
		version: version,
		opts:    opts,
		docs:    make(map[protocol.DocumentUri]*document),
	}
}

// Protocol wires the handler methods into a glsp protocol handler.
func (h *Handler) Protocol() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    h.name,
			Version: &h.version,
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen parses the opened text and publishes its diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	log.Debugf("opened %s (version %d)", item.URI, item.Version)

	doc, err := h.update(item.URI, item.Version, item.Text)
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, doc.uri, doc.diagnostics())
	return nil
}

// TextDocumentDidChange applies the content changes, reparses and
// republishes diagnostics.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s (version %d)", uri, params.TextDocument.Version)

	h.mu.RLock()
	prev, ok := h.docs[uri]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("change for unknown document %s", uri)
	}

	doc, err := h.update(uri, params.TextDocument.Version, prev.applyChanges(params.ContentChanges))
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, doc.uri, doc.diagnostics())
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("closed %s", uri)

	h.mu.Lock()
	delete(h.docs, uri)
	h.mu.Unlock()

	publishDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// TextDocumentCompletion offers the keywords plus the functions and
// variables declared in the document.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	var items []protocol.CompletionItem

	for _, kw := range token.Keywords() {
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
		})
	}

	h.mu.RLock()
	doc := h.docs[params.TextDocument.URI]
	h.mu.RUnlock()
	if doc != nil {
		items = append(items, declaredNames(doc.program)...)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// declaredNames lists each declared function and variable once, sorted.
func declaredNames(prog *ast.Program) []protocol.CompletionItem {
	if prog == nil {
		return nil
	}

	kinds := make(map[string]protocol.CompletionItemKind)
	ast.Inspect(prog, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.FuncDecl:
			if v.Name.Name != "" {
				kinds[v.Name.Name] = protocol.CompletionItemKindFunction
			}
		case *ast.VarDecl:
			if _, seen := kinds[v.Name.Name]; !seen && v.Name.Name != "" {
				kind := protocol.CompletionItemKindVariable
				if v.IsConst() {
					kind = protocol.CompletionItemKindConstant
				}
				kinds[v.Name.Name] = kind
			}
		}
		return true
	})

	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  ptrCompletionKind(kinds[name]),
		})
	}
	return items
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := params.TextDocument.URI
	log.Debugf("semantic tokens for %s", uri)

	doc, err := h.getOrLoad(ctx, uri)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc)),
	}, nil
}

// getOrLoad returns the open document for uri, reading it from disk when the
// client asks about a file it never opened.
func (h *Handler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	buf, err := source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", uri, err)
	}

	doc, err = h.update(uri, 0, buf.Text)
	if err != nil {
		return nil, err
	}
	publishDiagnostics(ctx, uri, doc.diagnostics())
	return doc, nil
}

// update parses text and stores it as the current state of uri.
func (h *Handler) update(uri protocol.DocumentUri, version protocol.Integer, text string) (*document, error) {
	name, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}

	doc := newDocument(uri, version, name, text, h.opts)
	if doc.aborted != nil {
		log.Warningf("parse of %s aborted: %s", uri, doc.aborted)
	}

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return rawURI, nil
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
