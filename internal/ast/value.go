package ast

// RawKind identifies which case of the literal-value sum a RawValue
// occupies (spec §3 "Literal values").
type RawKind int

const (
	RVNumber RawKind = iota
	RVString
	RVBool
	RVUnit
	RVPair
	RVLeft
	RVRight
	RVSome
	RVNone
	RVSeqValues // a sequence of value literals: list/set/empty-map syntax
	RVSeqKV     // a sequence of key/value pairs: map/big_map syntax
	RVSeqInstrs // a sequence of instructions: a lambda literal's body
)

// KV is one key/value entry of a map or big_map literal.
type KV struct {
	Key   *RawValue
	Value *RawValue
}

// RawValue is the parser-level literal-value tree. Whether a brace-delimited
// sequence denotes a list of values, a key/value list, or an instruction
// block is decided by the parser (spec §3, §6): that's why RVSeqValues,
// RVSeqKV and RVSeqInstrs are distinct kinds rather than one generic
// "sequence" the checker would have to disambiguate itself.
type RawValue struct {
	Pos Position
	Kind RawKind

	Number int64
	Str    string
	Bool   bool

	Left  *RawValue // RVPair.0, RVLeft, RVRight, RVSome payload
	Right *RawValue // RVPair.1

	Seq    []*RawValue
	KVs    []KV
	Instrs []*Instruction
}
