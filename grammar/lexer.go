package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var CoquitoLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments
	{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},

	// Keywords before identifiers; \b keeps "lettuce" an identifier
	{Name: "Keyword", Pattern: `\b(let|const|fn|if|else|while|return|true|false)\b`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},

	// Literals (float before integer)
	{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"|'(\\.|[^'\\\n])*'`},

	// Operators, longest first
	{Name: "Operator", Pattern: `==|!=|<=|>=|&&|\|\||\+=|-=|\*=|/=|%=|[-+*/%=<>!]`},

	// Punctuation
	{Name: "Punct", Pattern: `[(){},;]`},

	// Whitespace
	{Name: "Whitespace", Pattern: `\s+`},
})
