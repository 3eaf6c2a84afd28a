package token

import (
	"sort"
	"strings"
)

var keywords = map[string]struct{}{
	"let":    {},
	"const":  {},
	"fn":     {},
	"if":     {},
	"else":   {},
	"while":  {},
	"return": {},
	"true":   {},
	"false":  {},
}

// LookupIdent classifies an identifier-shaped word.
func LookupIdent(text string) Kind {
	if _, ok := keywords[text]; ok {
		return KEYWORD
	}
	return IDENTIFIER
}

// Keywords returns the keyword table in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

type symbol struct {
	text string
	kind Kind
}

// symbolTable lists every operator and punctuation symbol.
var symbolTable = []symbol{
	{"==", OPERATOR}, {"!=", OPERATOR}, {"<=", OPERATOR}, {">=", OPERATOR},
	{"&&", OPERATOR}, {"||", OPERATOR},
	{"+=", OPERATOR}, {"-=", OPERATOR}, {"*=", OPERATOR}, {"/=", OPERATOR}, {"%=", OPERATOR},
	{"=", OPERATOR}, {"<", OPERATOR}, {">", OPERATOR}, {"!", OPERATOR},
	{"+", OPERATOR}, {"-", OPERATOR}, {"*", OPERATOR}, {"/", OPERATOR}, {"%", OPERATOR},

	{"(", PUNCTUATION}, {")", PUNCTUATION}, {"{", PUNCTUATION}, {"}", PUNCTUATION},
	{",", PUNCTUATION}, {";", PUNCTUATION},
}

// symbolsByFirst indexes symbolTable by leading byte, longest symbol first.
var symbolsByFirst = buildSymbolIndex()

func buildSymbolIndex() map[byte][]symbol {
	index := make(map[byte][]symbol)
	for _, sym := range symbolTable {
		index[sym.text[0]] = append(index[sym.text[0]], sym)
	}
	for _, syms := range index {
		sort.SliceStable(syms, func(i, j int) bool {
			return len(syms[i].text) > len(syms[j].text)
		})
	}
	return index
}

// MatchSymbol returns the longest operator or punctuation symbol that
// prefixes s.
func MatchSymbol(s string) (string, Kind, bool) {
	if s == "" {
		return "", INVALID, false
	}
	for _, sym := range symbolsByFirst[s[0]] {
		if strings.HasPrefix(s, sym.text) {
			return sym.text, sym.kind, true
		}
	}
	return "", INVALID, false
}

// IsSymbolStart reports whether c can begin an operator or punctuation.
func IsSymbolStart(c byte) bool {
	_, ok := symbolsByFirst[c]
	return ok
}
