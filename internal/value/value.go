// Package value type-checks literal value syntax (internal/ast's RawValue)
// against an already-resolved ground type, producing a TValue: a literal
// the checker is sure has the shape its target type demands. It ports
// original_source/typechecker/src/lib/typechecker.rs's typecheck_value
// (spec §4.6).
//
// One deliberate fix over the reference: that typecheck_value has no match
// arm for CVNone (the `None` literal) at all, so in that revision a literal
// `None` always fails to type-check against any `option t` — clearly a gap
// in the Rust source rather than an intentional restriction, since spec.md
// §3 lists "some/none" as a literal value variant on equal footing with
// "pair" and "left/right". CheckValue here accepts RVNone against any
// option type. See DESIGN.md.
package value

import (
	"fmt"
	"math"
	"sort"

	"tzcheck/internal/ast"
	"tzcheck/internal/attrs"
	"tzcheck/internal/types"
)

// Kind distinguishes a TValue's case.
type Kind int

const (
	VUnit Kind = iota
	VBool
	VNumber // nat, int, and mutez literals all carry a plain integer
	VString
	VPair
	VLeft
	VRight
	VSome
	VNone
	VSet
	VList
	VMap
	VBigMap
	VLambda
)

// Entry is one key/value pair of a VMap or VBigMap literal.
type Entry struct {
	Key   TValue
	Value TValue
}

// TValue is a type-checked literal value (the reference's MValue).
type TValue struct {
	Kind Kind

	Bool bool
	Num  int64
	Str  string

	Left  *TValue // VPair.0, VLeft, VRight, VSome payload
	Right *TValue // VPair.1

	Items   []TValue // VSet (deduplicated, ascending), VList (source order)
	Entries []Entry  // VMap, VBigMap, ascending by key

	Body []*ast.Instruction // VLambda
}

// LambdaChecker type-checks a lambda literal's instruction body starting
// from a one-element stack holding input, returning the single type left on
// the stack. It is declared here, not in internal/checker, because a
// lambda's checker callback must live on the side the cycle can be broken
// from: value needs to invoke the instruction driver, and the driver
// (internal/checker) needs to invoke CheckValue for every value argument, so
// neither package can import the other directly. internal/checker supplies
// the concrete implementation at its call sites into this package
// (spec §2's data-flow note: "F in turn reinvokes G when typing lambda
// literals").
type LambdaChecker func(body []*ast.Instruction, input types.GType) (types.GType, error)

// CheckValue type-checks raw against target, recursively validating every
// composite payload and, for a lambda literal, its instruction body via
// checkLambda. target must already be a fully resolved ground type (no
// schema variables) — by the time internal/checker calls this, constraint
// resolution has already happened (internal/unify.ResolveConstraint /
// the TypeArgRef case in internal/unify.UnifyConcrete).
func CheckValue(checkLambda LambdaChecker, raw *ast.RawValue, target types.GType) (TValue, error) {
	switch target.Shape {
	case types.ShapeAtomic:
		return checkAtomic(raw, target.Atom)

	case types.ShapeSet:
		if raw.Kind != ast.RVSeqValues {
			return TValue{}, fmt.Errorf("%s: expected a sequence of values for a set literal", raw.Pos)
		}
		items := make([]TValue, 0, len(raw.Seq))
		for _, rv := range raw.Seq {
			tv, err := CheckValue(checkLambda, rv, *target.Elem)
			if err != nil {
				return TValue{}, err
			}
			items = append(items, tv)
		}
		sort.Slice(items, func(i, j int) bool { return Compare(items[i], items[j]) < 0 })
		items = dedup(items)
		return TValue{Kind: VSet, Items: items}, nil

	case types.ShapeList:
		if raw.Kind != ast.RVSeqValues {
			if raw.Kind == ast.RVSeqInstrs {
				return TValue{}, fmt.Errorf("%s: expected a list of values, found instructions", raw.Pos)
			}
			return TValue{}, fmt.Errorf("%s: expected a sequence of values for a list literal", raw.Pos)
		}
		items := make([]TValue, 0, len(raw.Seq))
		for _, rv := range raw.Seq {
			tv, err := CheckValue(checkLambda, rv, *target.Elem)
			if err != nil {
				return TValue{}, err
			}
			items = append(items, tv)
		}
		return TValue{Kind: VList, Items: items}, nil

	case types.ShapeMap:
		keyT, valT := *target.Left, *target.Right
		if raw.Kind == ast.RVSeqValues {
			if len(raw.Seq) != 0 {
				return TValue{}, fmt.Errorf("%s: expected a key/value list, found a value list", raw.Pos)
			}
			return TValue{Kind: VMap}, nil
		}
		if raw.Kind != ast.RVSeqKV {
			return TValue{}, fmt.Errorf("%s: expected a key/value list for a map literal", raw.Pos)
		}
		if !attrs.Check(attrs.Comparable, keyT) {
			return TValue{}, fmt.Errorf("%s: map keys must be comparable, %s is not", raw.Pos, keyT)
		}
		entries, err := checkEntries(checkLambda, raw.KVs, keyT, valT)
		if err != nil {
			return TValue{}, err
		}
		return TValue{Kind: VMap, Entries: entries}, nil

	case types.ShapeBigMap:
		keyT, valT := *target.Left, *target.Right
		if raw.Kind != ast.RVSeqKV {
			return TValue{}, fmt.Errorf("%s: expected a key/value list for a big_map literal", raw.Pos)
		}
		if !attrs.Check(attrs.Comparable, keyT) {
			return TValue{}, fmt.Errorf("%s: big_map keys must be comparable, %s is not", raw.Pos, keyT)
		}
		if !attrs.Check(attrs.BigMapLegal, valT) {
			return TValue{}, fmt.Errorf("%s: %s is not allowed as a big_map value", raw.Pos, valT)
		}
		entries, err := checkEntries(checkLambda, raw.KVs, keyT, valT)
		if err != nil {
			return TValue{}, err
		}
		return TValue{Kind: VBigMap, Entries: entries}, nil

	case types.ShapePair:
		if raw.Kind != ast.RVPair {
			return TValue{}, fmt.Errorf("%s: expected a Pair literal", raw.Pos)
		}
		l, err := CheckValue(checkLambda, raw.Left, *target.Left)
		if err != nil {
			return TValue{}, err
		}
		r, err := CheckValue(checkLambda, raw.Right, *target.Right)
		if err != nil {
			return TValue{}, err
		}
		return TValue{Kind: VPair, Left: &l, Right: &r}, nil

	case types.ShapeOr:
		switch raw.Kind {
		case ast.RVLeft:
			l, err := CheckValue(checkLambda, raw.Left, *target.Left)
			if err != nil {
				return TValue{}, err
			}
			return TValue{Kind: VLeft, Left: &l}, nil
		case ast.RVRight:
			r, err := CheckValue(checkLambda, raw.Left, *target.Right)
			if err != nil {
				return TValue{}, err
			}
			return TValue{Kind: VRight, Left: &r}, nil
		default:
			return TValue{}, fmt.Errorf("%s: expected a Left/Right literal", raw.Pos)
		}

	case types.ShapeOption:
		switch raw.Kind {
		case ast.RVSome:
			v, err := CheckValue(checkLambda, raw.Left, *target.Elem)
			if err != nil {
				return TValue{}, err
			}
			return TValue{Kind: VSome, Left: &v}, nil
		case ast.RVNone:
			return TValue{Kind: VNone}, nil
		default:
			return TValue{}, fmt.Errorf("%s: expected a Some/None literal", raw.Pos)
		}

	case types.ShapeLambda:
		if raw.Kind != ast.RVSeqInstrs {
			return TValue{}, fmt.Errorf("%s: expected a lambda body", raw.Pos)
		}
		out, err := checkLambda(raw.Instrs, *target.Left)
		if err != nil {
			return TValue{}, err
		}
		if !types.Equal(out, *target.Right) {
			return TValue{}, fmt.Errorf("%s: lambda body leaves %s on the stack, expected %s", raw.Pos, out, *target.Right)
		}
		return TValue{Kind: VLambda, Body: raw.Instrs}, nil

	default: // ShapeContract, ShapeTicket: no literal syntax constructs these
		return TValue{}, fmt.Errorf("%s: %s has no literal value syntax", raw.Pos, target)
	}
}

func checkEntries(checkLambda LambdaChecker, kvs []ast.KV, keyT, valT types.GType) ([]Entry, error) {
	entries := make([]Entry, 0, len(kvs))
	for _, kv := range kvs {
		k, err := CheckValue(checkLambda, kv.Key, keyT)
		if err != nil {
			return nil, err
		}
		v, err := CheckValue(checkLambda, kv.Value, valT)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return Compare(entries[i].Key, entries[j].Key) < 0 })
	return entries, nil
}

func checkAtomic(raw *ast.RawValue, atom types.Atomic) (TValue, error) {
	switch atom {
	case types.Unit:
		if raw.Kind != ast.RVUnit {
			return TValue{}, fmt.Errorf("%s: expected Unit", raw.Pos)
		}
		return TValue{Kind: VUnit}, nil
	case types.Bool:
		if raw.Kind != ast.RVBool {
			return TValue{}, fmt.Errorf("%s: expected a boolean", raw.Pos)
		}
		return TValue{Kind: VBool, Bool: raw.Bool}, nil
	case types.Nat, types.Mutez:
		if raw.Kind != ast.RVNumber {
			return TValue{}, fmt.Errorf("%s: expected a number", raw.Pos)
		}
		if raw.Number < 0 || raw.Number > math.MaxUint32 {
			return TValue{}, fmt.Errorf("%s: expected a %s, found a negative or oversized number", raw.Pos, atom)
		}
		return TValue{Kind: VNumber, Num: raw.Number}, nil
	case types.Int:
		if raw.Kind != ast.RVNumber {
			return TValue{}, fmt.Errorf("%s: expected a number", raw.Pos)
		}
		return TValue{Kind: VNumber, Num: raw.Number}, nil
	case types.String:
		if raw.Kind != ast.RVString {
			return TValue{}, fmt.Errorf("%s: expected a string", raw.Pos)
		}
		return TValue{Kind: VString, Str: raw.Str}, nil
	default:
		// Bytes, timestamp, address, key, key_hash, chain_id, signature and
		// operation have no literal syntax (spec.md §3 lists only
		// numbers/strings/booleans/unit/pair/left-right/some-none/sequence).
		return TValue{}, fmt.Errorf("%s: %s has no literal value syntax", raw.Pos, atom)
	}
}

func dedup(sorted []TValue) []TValue {
	out := sorted[:0:0]
	for i, v := range sorted {
		if i == 0 || Compare(sorted[i-1], v) != 0 {
			out = append(out, v)
		}
	}
	return out
}

// Compare gives a total order over TValue, used to keep set/map literals in
// deterministic ascending-key order (the reference's BTreeSet/BTreeMap).
func Compare(a, b TValue) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case VUnit, VNone:
		return 0
	case VBool:
		return boolCompare(a.Bool, b.Bool)
	case VNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	case VString:
		switch {
		case a.Str < b.Str:
			return -1
		case a.Str > b.Str:
			return 1
		default:
			return 0
		}
	case VLeft, VRight, VSome:
		return Compare(*a.Left, *b.Left)
	case VPair:
		if c := Compare(*a.Left, *b.Left); c != 0 {
			return c
		}
		return Compare(*a.Right, *b.Right)
	default:
		// Sets, lists, maps, big_maps and lambdas are not themselves
		// comparable (spec §4.2), so they never appear as a set element or
		// map key; Compare is never called on them for ordering purposes.
		return 0
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}
