package lsp

import (
	"coquito/internal/ast"
	"coquito/internal/lexer"
	"coquito/internal/token"
)

// SemanticTokenTypes is the legend of token types the server reports.
var SemanticTokenTypes = []string{
	"function",
	"variable",
	"parameter",
	"keyword",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is the legend of modifier bits.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

const (
	modDeclaration = 1 << iota
	modReadonly
)

// SemanticToken represents a single LSP semantic token entry.
// Line and StartChar are 0-based; StartChar and Length count UTF-16 units.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

type identRole struct {
	tokenType string
	modifiers int
}

// identifierRoles classifies identifiers by byte offset using the AST:
// declared names, parameters and call targets. Anything else is a variable.
func identifierRoles(prog *ast.Program) map[int]identRole {
	roles := make(map[int]identRole)
	if prog == nil {
		return roles
	}

	ast.Inspect(prog, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.FuncDecl:
			roles[v.Name.Span.Start.Offset] = identRole{"function", modDeclaration}
			for _, param := range v.Params {
				roles[param.Span.Start.Offset] = identRole{"parameter", modDeclaration}
			}
		case *ast.VarDecl:
			mods := modDeclaration
			if v.IsConst() {
				mods |= modReadonly
			}
			roles[v.Name.Span.Start.Offset] = identRole{"variable", mods}
		case *ast.CallExpr:
			roles[v.Callee.Span.Start.Offset] = identRole{"function", 0}
		}
		return true
	})
	return roles
}

// collectSemanticTokens walks the token stream of d in source order.
// Punctuation, invalid tokens and tokens spanning lines are skipped.
func collectSemanticTokens(d *document) []SemanticToken {
	var tokens []SemanticToken

	roles := identifierRoles(d.program)
	lex := lexer.New(d.buf)
	for {
		tok := lex.NextToken()
		if tok.Kind == token.EOF {
			break
		}

		var role identRole
		switch tok.Kind {
		case token.KEYWORD:
			role.tokenType = "keyword"
		case token.INTEGER, token.FLOAT:
			role.tokenType = "number"
		case token.STRING:
			role.tokenType = "string"
		case token.OPERATOR:
			role.tokenType = "operator"
		case token.IDENTIFIER:
			var ok bool
			if role, ok = roles[tok.Span.Start.Offset]; !ok {
				role.tokenType = "variable"
			}
		default:
			continue
		}

		if t, ok := makeToken(d, tok.Span, role); ok {
			tokens = append(tokens, t)
		}
	}

	return tokens
}

func makeToken(d *document, span token.Span, role identRole) (SemanticToken, bool) {
	start, end := d.position(span.Start.Offset), d.position(span.End.Offset)
	if start.Line != end.Line || end.Character <= start.Character {
		return SemanticToken{}, false
	}

	return SemanticToken{
		Line:           start.Line,
		StartChar:      start.Character,
		Length:         end.Character - start.Character,
		TokenType:      indexOf(role.tokenType, SemanticTokenTypes),
		TokenModifiers: role.modifiers,
	}, true
}

// encodeSemanticTokens produces the LSP wire format: five integers per token
// with line and start relative to the previous token.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))

		prevLine = t.Line
		prevStart = t.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
