package schema

import (
	"sync"

	"tzcheck/internal/attrs"
	"tzcheck/internal/types"
)

// Registry is the process-wide, lazily initialised instruction table
// (spec §4.3, §5). It is built once behind registryOnce and never mutated
// afterwards, so concurrent readers need no further synchronisation.
var (
	registryOnce sync.Once
	registry     map[string][]Schema
)

// Lookup returns the schema list for name, or (nil, false) if name is not a
// known instruction mnemonic.
func Lookup(name string) ([]Schema, bool) {
	registryOnce.Do(buildRegistry)
	s, ok := registry[name]
	return s, ok
}

// Names returns every registered instruction mnemonic, for "did you mean"
// suggestions when an unknown one is used (internal/diagnostics).
func Names() []string {
	registryOnce.Do(buildRegistry)
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// shorthand constructors, named the way the reference DSL abbreviates them
// (a = atomic ground type, w = wild var, ta = type-arg var, r = ref).
func a(t types.Atomic) Constraint            { return Atomic(t) }
func w(v byte, want ...attrs.Attribute) Constraint { return Wild(v, want...) }
func ta(v byte, want ...attrs.Attribute) Constraint { return TypeArg(v, want...) }
func r(v byte) Constraint                    { return TypeArgRef(v) }

func re(t types.Atomic) StackResult { return Elem(t) }
func rr(v byte) StackResult         { return Ref(v) }

func buildRegistry() {
	registry = map[string][]Schema{
		"APPLY": {{
			Args:   nil,
			Input:  []Constraint{w('a'), Lambda(Pair(r('a'), w('b')), w('c'))},
			Output: []StackResult{RLambda_(rr('b'), rr('c'))},
		}},
		"CAR": {{Input: []Constraint{Pair(w('a'), w('b'))}, Output: []StackResult{rr('a')}}},
		"CDR": {{Input: []Constraint{Pair(w('a'), w('b'))}, Output: []StackResult{rr('b')}}},
		"HASH_KEY": {{Input: []Constraint{a(types.Key)}, Output: []StackResult{re(types.KeyHash)}}},
		"IMPLICIT_ACCOUNT": {{
			Input:  []Constraint{a(types.KeyHash)},
			Output: []StackResult{RContr_(re(types.Unit))},
		}},
		"SWAP": {{Input: []Constraint{w('a'), w('b')}, Output: []StackResult{rr('b'), rr('a')}}},
		"NIL": {{Args: []Constraint{ta('a')}, Output: []StackResult{RList_(rr('a'))}}},
		"CAST": {{}},
		"VIEW": {{
			Args:   []Constraint{a(types.String), ta('a')},
			Input:  []Constraint{w('b'), a(types.Address)},
			Output: []StackResult{ROption_(rr('a'))},
		}},
		"SENDER": {{Output: []StackResult{re(types.Address)}}},
		"EMPTY_BIG_MAP": {{
			Args:   []Constraint{ta('a'), ta('b')},
			Output: []StackResult{RBigMap_(rr('a'), rr('b'))},
		}},
		"NOT": {
			{Input: []Constraint{a(types.Bool)}, Output: []StackResult{re(types.Bool)}},
			{Input: []Constraint{a(types.Nat)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Int)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Bytes)}, Output: []StackResult{re(types.Bytes)}},
		},
		"MEM": {
			{Input: []Constraint{w('k'), Set(r('k'))}, Output: []StackResult{re(types.Bool)}},
			{Input: []Constraint{w('k'), Map(r('k'), w('b'))}, Output: []StackResult{re(types.Bool)}},
			{Input: []Constraint{w('k'), BigMap(r('k'), w('b'))}, Output: []StackResult{re(types.Bool)}},
		},
		"MUL": {
			{Input: []Constraint{a(types.Int), a(types.Nat)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Nat), a(types.Mutez)}, Output: []StackResult{re(types.Mutez)}},
			{Input: []Constraint{a(types.Mutez), a(types.Nat)}, Output: []StackResult{re(types.Mutez)}},
			{Input: []Constraint{a(types.Int), a(types.Int)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Nat), a(types.Nat)}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.Nat), a(types.Int)}, Output: []StackResult{re(types.Int)}},
		},
		"SIZE": {
			{Input: []Constraint{Set(w('b'))}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{Map(w('a'), w('b'))}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{List(w('a'))}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.String)}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.Bytes)}, Output: []StackResult{re(types.Nat)}},
		},
		"ADD": {
			{Input: []Constraint{a(types.Mutez), a(types.Mutez)}, Output: []StackResult{re(types.Mutez)}},
			{Input: []Constraint{a(types.Int), a(types.Timestamp)}, Output: []StackResult{re(types.Timestamp)}},
			{Input: []Constraint{a(types.Timestamp), a(types.Int)}, Output: []StackResult{re(types.Timestamp)}},
			{Input: []Constraint{a(types.Int), a(types.Nat)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Nat), a(types.Int)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Nat), a(types.Nat)}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.Int), a(types.Int)}, Output: []StackResult{re(types.Int)}},
		},
		"AND": {
			{Input: []Constraint{a(types.Bool), a(types.Bool)}, Output: []StackResult{re(types.Bool)}},
			{Input: []Constraint{a(types.Nat), a(types.Nat)}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.Int), a(types.Nat)}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.Bytes), a(types.Bytes)}, Output: []StackResult{re(types.Bytes)}},
		},
		"SUB": {
			{Input: []Constraint{a(types.Nat), a(types.Nat)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Int), a(types.Int)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Int), a(types.Nat)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Nat), a(types.Int)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Timestamp), a(types.Int)}, Output: []StackResult{re(types.Timestamp)}},
			{Input: []Constraint{a(types.Timestamp), a(types.Timestamp)}, Output: []StackResult{re(types.Int)}},
			{Input: []Constraint{a(types.Mutez), a(types.Mutez)}, Output: []StackResult{ROption_(re(types.Mutez))}},
		},
		"OR": {
			{Input: []Constraint{a(types.Bool), a(types.Bool)}, Output: []StackResult{re(types.Bool)}},
			{Input: []Constraint{a(types.Nat), a(types.Nat)}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.Bytes), a(types.Bytes)}, Output: []StackResult{re(types.Bytes)}},
		},
		"XOR": {
			{Input: []Constraint{a(types.Bool), a(types.Bool)}, Output: []StackResult{re(types.Bool)}},
			{Input: []Constraint{a(types.Nat), a(types.Nat)}, Output: []StackResult{re(types.Nat)}},
			{Input: []Constraint{a(types.Bytes), a(types.Bytes)}, Output: []StackResult{re(types.Bytes)}},
		},
		"GET": {
			{Input: []Constraint{w('k'), Map(r('k'), w('v'))}, Output: []StackResult{ROption_(rr('v'))}},
			{Input: []Constraint{w('k'), BigMap(r('k'), w('v'))}, Output: []StackResult{ROption_(rr('v'))}},
		},
		"EDIV": {
			{Input: []Constraint{a(types.Nat), a(types.Nat)}, Output: []StackResult{ROption_(RPair_(re(types.Nat), re(types.Nat)))}},
			{Input: []Constraint{a(types.Nat), a(types.Int)}, Output: []StackResult{ROption_(RPair_(re(types.Int), re(types.Nat)))}},
			{Input: []Constraint{a(types.Int), a(types.Nat)}, Output: []StackResult{ROption_(RPair_(re(types.Int), re(types.Nat)))}},
			{Input: []Constraint{a(types.Int), a(types.Int)}, Output: []StackResult{ROption_(RPair_(re(types.Int), re(types.Nat)))}},
			{Input: []Constraint{a(types.Mutez), a(types.Nat)}, Output: []StackResult{ROption_(RPair_(re(types.Mutez), re(types.Mutez)))}},
			{Input: []Constraint{a(types.Mutez), a(types.Mutez)}, Output: []StackResult{ROption_(RPair_(re(types.Nat), re(types.Mutez)))}},
		},
		"INT": {{Input: []Constraint{a(types.Nat)}, Output: []StackResult{re(types.Int)}}},
		"SOME": {{Input: []Constraint{w('a')}, Output: []StackResult{ROption_(rr('a'))}}},
		"NONE": {{Args: []Constraint{ta('a')}, Output: []StackResult{ROption_(rr('a'))}}},
		"UPDATE": {
			{Input: []Constraint{w('k'), Option(w('v')), Map(r('k'), r('v'))}, Output: []StackResult{RMap_(rr('k'), rr('v'))}},
			{Input: []Constraint{w('k'), Option(w('v')), BigMap(r('k'), r('v'))}, Output: []StackResult{RBigMap_(rr('k'), rr('v'))}},
			{Input: []Constraint{w('k'), a(types.Bool), Set(r('k'))}, Output: []StackResult{RSet_(rr('k'))}},
		},
		"CONS": {{Input: []Constraint{w('a'), List(r('a'))}, Output: []StackResult{RList_(rr('a'))}}},
		"LEFT":  {{Args: []Constraint{ta('a')}, Input: []Constraint{w('b')}, Output: []StackResult{ROr_(rr('b'), rr('a'))}}},
		"RIGHT": {{Args: []Constraint{ta('a')}, Input: []Constraint{w('b')}, Output: []StackResult{ROr_(rr('a'), rr('b'))}}},
		"CONTRACT": {{
			Args:   []Constraint{ta('a')},
			Input:  []Constraint{a(types.Address)},
			Output: []StackResult{ROption_(RContr_(rr('a')))},
		}},
		"BLAKE2B": {{Input: []Constraint{a(types.Bytes)}, Output: []StackResult{re(types.Bytes)}}},
		"PUSH": {{
			Args:   []Constraint{ta('a', attrs.Pushable), r('a')},
			Output: []StackResult{rr('a')},
		}},
		"ADDRESS":  {{Input: []Constraint{Contract(w('a'))}, Output: []StackResult{re(types.Address)}}},
		"CHAIN_ID": {{Output: []StackResult{re(types.ChainID)}}},
		"EQ":       {{Input: []Constraint{a(types.Int)}, Output: []StackResult{re(types.Bool)}}},
		"GE":       {{Input: []Constraint{a(types.Int)}, Output: []StackResult{re(types.Bool)}}},
		"GT":       {{Input: []Constraint{a(types.Int)}, Output: []StackResult{re(types.Bool)}}},
		"NEQ":      {{Input: []Constraint{a(types.Int)}, Output: []StackResult{re(types.Bool)}}},
		"ISNAT":    {{Input: []Constraint{a(types.Int)}, Output: []StackResult{ROption_(re(types.Nat))}}},
		"LEVEL":    {{Output: []StackResult{re(types.Nat)}}},
		"COMPARE": {{
			Input:  []Constraint{w('a', attrs.Comparable), r('a')},
			Output: []StackResult{re(types.Int)},
		}},
		"LT": {{Input: []Constraint{a(types.Int)}, Output: []StackResult{re(types.Bool)}}},
		"CHECK_SIGNATURE": {{
			Input:  []Constraint{a(types.Key), a(types.Signature), a(types.Bytes)},
			Output: []StackResult{re(types.Bool)},
		}},
		"PACK":   {{Input: []Constraint{w('a')}, Output: []StackResult{re(types.Bytes)}}},
		"UNPACK": {{Args: []Constraint{ta('a')}, Input: []Constraint{a(types.Bytes)}, Output: []StackResult{ROption_(rr('a'))}}},
		"SELF_ADDRESS": {{Output: []StackResult{re(types.Address)}}},
		"SOURCE":       {{Output: []StackResult{re(types.Address)}}},
		"AMOUNT":       {{Output: []StackResult{re(types.Mutez)}}},
		"UNIT":         {{Output: []StackResult{re(types.Unit)}}},
		"TRANSFER_TOKENS": {{
			Input:  []Constraint{w('a'), a(types.Mutez), Contract(r('a'))},
			Output: []StackResult{re(types.Operation)},
		}},
		"SET_DELEGATE": {{Input: []Constraint{Option(a(types.KeyHash))}, Output: []StackResult{re(types.Operation)}}},
		"LAMBDA": {{
			Args:   []Constraint{ta('a'), ta('b'), Lambda(r('a'), r('b'))},
			Output: []StackResult{RLambda_(rr('a'), rr('b'))},
		}},
		"EXEC":         {{Input: []Constraint{w('a'), Lambda(r('a'), w('b'))}, Output: []StackResult{rr('b')}}},
		"ASSERT":       {{Input: []Constraint{a(types.Bool)}}},
		"ASSERT_CMPEQ": {{Input: []Constraint{w('a'), w('b')}}},
		"ASSERT_CMPLE": {{Input: []Constraint{w('a'), w('b')}}},
	}
}
