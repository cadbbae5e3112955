package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// tzLexer tokenizes the Michelson-like surface syntax (spec §6). Grounded on
// the teacher's grammar/lexer.go pattern (a single "Root" state, rules tried
// in listed order), with the token vocabulary reworked for this language:
// no block comments, annotations (%field / :type / @var) as their own token
// class, and a signed integer literal rather than the teacher's unsigned one
// (PUSH int -5 needs a leading sign).
var tzLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Annotation", Pattern: `[%:@][a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Bytes", Pattern: `0x[0-9a-fA-F]*`},
		{Name: "Int", Pattern: `-?[0-9]+`},
		{Name: "String", Pattern: `"(\\.|[^"])*"`},
		{Name: "Punct", Pattern: `[{}();]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})
