package tptp

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// tptpLexer tokenizes TPTP problem source. Comment and whitespace tokens
// are dropped by lex in parser.go; the rules follow kanso-lang-kanso's
// grammar/lexer.go layout (a participle stateful lexer with ordered rules,
// longest-operator-first).
var tptpLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"BlockComment", `/\*([^*]|\*+[^*/])*\*+/`, nil},
		{"LineComment", `%[^\n]*`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},

		{"Real", `[+-]?[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?`, nil},
		{"Rational", `[+-]?[0-9]+/[0-9]+`, nil},
		{"Integer", `[+-]?[0-9]+`, nil},

		{"SingleQuoted", `'([^'\\]|\\.)*'`, nil},
		{"DoubleQuoted", `"([^"\\]|\\.)*"`, nil},

		{"DollarWord", `\$[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"UpperWord", `[A-Z][a-zA-Z0-9_]*`, nil},
		{"LowerWord", `[a-z][a-zA-Z0-9_]*`, nil},

		{"Iff", `<=>`, nil},
		{"Xor", `<~>`, nil},
		{"Implies", `=>`, nil},
		{"Nor", `~\|`, nil},
		{"Nand", `~&`, nil},
		{"NotEquals", `!=`, nil},

		{"Punct", `[()\[\],.:!?~&|=]`, nil},
	},
})
