package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the participle grammar for a whole contract: a declared parameter
// type, a declared storage type, and a code block (spec §6). Grounded on the
// teacher's grammar/grammar.go struct-tag style; the surface syntax itself
// (parameter/storage/code keywords, semicolon-separated instruction blocks)
// follows real Michelson concrete syntax, since original_source never
// parsed text at all — it built CompoundInstruction trees directly in Rust.
type File struct {
	Pos       lexer.Position
	Parameter *TypeExpr `"parameter" @@ ";"`
	Storage   *TypeExpr `"storage" @@ ";"`
	Code      *Block    `"code" @@ ";"?`
}

// TypeExpr is a declared ground type: either a bare atomic name (optionally
// annotated) or a parenthesized "(name arg arg...)" group — nested compound
// arguments must be parenthesized, exactly as in real Michelson, which keeps
// the grammar unambiguous without needing arity lookahead.
type TypeExpr struct {
	Pos   lexer.Position
	Group *TypeGroup `  "(" @@ ")"`
	Atom  *TypeAtom  `| @@`
}

type TypeGroup struct {
	Pos    lexer.Position
	Name   string      `@Ident`
	Annots []string    `@Annotation*`
	Args   []*TypeExpr `@@*`
}

type TypeAtom struct {
	Pos    lexer.Position
	Name   string   `@Ident`
	Annots []string `@Annotation*`
}

// Block is a semicolon-separated, brace-delimited instruction sequence: a
// compound-instruction body, or a contract's "code" block.
type Block struct {
	Pos    lexer.Position
	Instrs []*Instr `"{" ( @@ ( ";" @@ )* ";"? )? "}"`
}

// Instr is one instruction node. Compound constructs (spec §3, §4.7) each
// get their own literal-keyword-led arm; everything else falls through to
// OtherInstr, the schema-driven Other(name, args) leaf — the schema
// registry, not the grammar, knows which mnemonics actually exist.
type Instr struct {
	Pos lexer.Position

	If        *IfArm    `(  "IF" @@`
	IfCons    *IfArm    ` | "IF_CONS" @@`
	IfLeft    *IfArm    ` | "IF_LEFT" @@`
	IfNone    *IfArm    ` | "IF_NONE" @@`
	IfSome    *IfArm    ` | "IF_SOME" @@`
	Iter      *Block    ` | "ITER" @@`
	Map       *Block    ` | "MAP" @@`
	Loop      *Block    ` | "LOOP" @@`
	LoopLeft  *Block    ` | "LOOP_LEFT" @@`
	Dip       *NBlock   ` | "DIP" @@`
	Dup       *NArg     ` | "DUP" @@`
	Drop      *NArg     ` | "DROP" @@`
	Dig       *NArg     ` | "DIG" @@`
	Dug       *NArg     ` | "DUG" @@`
	Pair      *NArg     ` | "PAIR" @@`
	Unpair    *NArg     ` | "UNPAIR" @@`
	Get       *NArg     ` | "GET" @@`
	Update    *NArg     ` | "UPDATE" @@`
	LambdaRec *LambdaRec ` | "LAMBDA_REC" @@`
	SelfKw    bool      ` | @"SELF"`
	FailKw    bool      ` | @"FAIL"`
	FailwithKw bool     ` | @"FAILWITH"`
	Other     *OtherInstr ` | @@ )`
	Annots    []string  `@Annotation*`
}

// IfArm holds the two bracketed branches every IF-shaped construct takes, in
// source order; instruction.go documents which branch means what per
// construct (e.g. IF_NONE is (none, some), IF_SOME is (some, none)).
type IfArm struct {
	Pos     lexer.Position
	Branch1 *Block `@@`
	Branch2 *Block `@@`
}

// NBlock is DIP's optional count followed by its body.
type NBlock struct {
	Pos  lexer.Position
	N    *int64 `@Int?`
	Body *Block `@@`
}

// NArg is a bare optional/required numeric argument (DUP/DROP/DIG/DUG/PAIR/
// UNPAIR/GET/UPDATE); whether it's optional and what its default is belongs
// to the converter, not the grammar. For GET/UPDATE specifically, whether N
// is present at all decides which of two distinct instructions this is
// (see convert.go's getOrUpdate) rather than just supplying a default.
type NArg struct {
	Pos lexer.Position
	N   *int64 `@Int?`
}

type LambdaRec struct {
	Pos  lexer.Position
	In   *TypeExpr `@@`
	Out  *TypeExpr `@@`
	Body *Block    `@@`
}

// OtherInstr is a schema-driven instruction: an uppercase mnemonic plus zero
// or more static arguments, each either a type name or a literal value.
type OtherInstr struct {
	Pos  lexer.Position
	Name   string      `@Ident`
	Annots []string    `@Annotation*`
	Args   []*InstrArg `@@*`
}

type InstrArg struct {
	Pos   lexer.Position
	Value *Value    `  @@`
	Type  *TypeExpr `| @@`
}

// Value is a literal-value expression (spec §3 "Literal values"). Value
// constructors are tried before the generic instruction fallback in SeqItem
// and before a type name in InstrArg specifically because they're a closed
// set of literal keywords, not a generic identifier, so they never shadow a
// real mnemonic or type name.
type Value struct {
	Pos     lexer.Position
	Group   *Value    `  "(" @@ ")"`
	Number  *int64    `| @Int`
	Str     *string   `| @String`
	Bytes   *string   `| @Bytes`
	True    bool      `| @"True"`
	False   bool      `| @"False"`
	UnitV   bool      `| @"Unit"`
	Pair    *PairLit  `| "Pair" @@`
	Left    *Value    `| "Left" @@`
	Right   *Value    `| "Right" @@`
	Some    *Value    `| "Some" @@`
	NoneV   bool      `| @"None"`
	Seq     *SeqLit   `| @@`
}

type PairLit struct {
	Pos lexer.Position
	A   *Value `@@`
	B   *Value `@@`
}

// SeqLit is a brace-delimited literal sequence. Which of list/set/map
// literal or lambda-body instruction sequence it denotes is decided in
// convert.go by inspecting the parsed items, exactly as spec §3 describes
// ("distinguishing value sequences from code blocks is the parser's job").
type SeqLit struct {
	Pos   lexer.Position
	Items []*SeqItem `"{" ( @@ ( ";" @@ )* ";"? )? "}"`
}

// SeqItem tries, in order: an Elt key/value entry (map/big_map literal
// syntax), then a value (the closed literal-keyword set), then an
// instruction (a lambda literal's body). Value is tried before Instr so that
// "Pair"/"Left"/"Some"/... never get swallowed by OtherInstr's generic
// @Ident fallback.
type SeqItem struct {
	Pos   lexer.Position
	Elt   *EltPair `  "Elt" @@`
	Val   *Value   `| @@`
	Instr *Instr   `| @@`
}

type EltPair struct {
	Pos   lexer.Position
	Key   *Value `@@`
	Value *Value `@@`
}
