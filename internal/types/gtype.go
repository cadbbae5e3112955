// Package types implements the ground-type algebra: the recursive sum of
// atomic and composite types that the checker simulates on the symbolic
// stack. See GType for the full shape list.
package types

import "fmt"

// Atomic is one of the fourteen atomic ground types.
type Atomic string

const (
	Nat       Atomic = "nat"
	Int       Atomic = "int"
	String    Atomic = "string"
	Bytes     Atomic = "bytes"
	Bool      Atomic = "bool"
	Mutez     Atomic = "mutez"
	Unit      Atomic = "unit"
	Timestamp Atomic = "timestamp"
	Address   Atomic = "address"
	Key       Atomic = "key"
	KeyHash   Atomic = "key_hash"
	ChainID   Atomic = "chain_id"
	Signature Atomic = "signature"
	Operation Atomic = "operation"
)

// Shape identifies which case of the GType sum a value occupies.
type Shape int

const (
	ShapeAtomic Shape = iota
	ShapeList
	ShapeSet
	ShapeOption
	ShapeContract
	ShapeTicket
	ShapePair
	ShapeOr
	ShapeLambda
	ShapeMap
	ShapeBigMap
)

func (s Shape) String() string {
	switch s {
	case ShapeAtomic:
		return "atomic"
	case ShapeList:
		return "list"
	case ShapeSet:
		return "set"
	case ShapeOption:
		return "option"
	case ShapeContract:
		return "contract"
	case ShapeTicket:
		return "ticket"
	case ShapePair:
		return "pair"
	case ShapeOr:
		return "or"
	case ShapeLambda:
		return "lambda"
	case ShapeMap:
		return "map"
	case ShapeBigMap:
		return "big_map"
	default:
		return "?"
	}
}

// GType is a ground type: a closed type expression with no variables.
// Atomic carries Atom; one-payload containers carry Elem; two-payload
// pair-shaped types carry Left/Right (Left doubling as the key for
// map/big_map).
type GType struct {
	Shape Shape
	Atom  Atomic
	Elem  *GType
	Left  *GType
	Right *GType
}

func NewAtomic(a Atomic) GType { return GType{Shape: ShapeAtomic, Atom: a} }

func NewList(t GType) GType     { return GType{Shape: ShapeList, Elem: &t} }
func NewSet(t GType) GType      { return GType{Shape: ShapeSet, Elem: &t} }
func NewOption(t GType) GType   { return GType{Shape: ShapeOption, Elem: &t} }
func NewContract(t GType) GType { return GType{Shape: ShapeContract, Elem: &t} }
func NewTicket(t GType) GType   { return GType{Shape: ShapeTicket, Elem: &t} }

func NewPair(l, r GType) GType   { return GType{Shape: ShapePair, Left: &l, Right: &r} }
func NewOr(l, r GType) GType     { return GType{Shape: ShapeOr, Left: &l, Right: &r} }
func NewLambda(l, r GType) GType { return GType{Shape: ShapeLambda, Left: &l, Right: &r} }
func NewMap(k, v GType) GType    { return GType{Shape: ShapeMap, Left: &k, Right: &v} }
func NewBigMap(k, v GType) GType { return GType{Shape: ShapeBigMap, Left: &k, Right: &v} }

// Equal is structural equality, used throughout as the definition of type
// equality (spec §3).
func Equal(a, b GType) bool {
	if a.Shape != b.Shape {
		return false
	}
	switch a.Shape {
	case ShapeAtomic:
		return a.Atom == b.Atom
	case ShapeList, ShapeSet, ShapeOption, ShapeContract, ShapeTicket:
		return Equal(*a.Elem, *b.Elem)
	default:
		return Equal(*a.Left, *b.Left) && Equal(*a.Right, *b.Right)
	}
}

// Compare gives a total, deterministic ordering over GType values: by shape
// first, then by atom or by payloads left to right.
func Compare(a, b GType) int {
	if a.Shape != b.Shape {
		if a.Shape < b.Shape {
			return -1
		}
		return 1
	}
	switch a.Shape {
	case ShapeAtomic:
		switch {
		case a.Atom < b.Atom:
			return -1
		case a.Atom > b.Atom:
			return 1
		default:
			return 0
		}
	case ShapeList, ShapeSet, ShapeOption, ShapeContract, ShapeTicket:
		return Compare(*a.Elem, *b.Elem)
	default:
		if c := Compare(*a.Left, *b.Left); c != 0 {
			return c
		}
		return Compare(*a.Right, *b.Right)
	}
}

// MapLeaves rebuilds t, applying f to every atomic leaf and leaving the
// container shape untouched (spec §4.1).
func MapLeaves(t GType, f func(Atomic) Atomic) GType {
	switch t.Shape {
	case ShapeAtomic:
		return NewAtomic(f(t.Atom))
	case ShapeList:
		return NewList(MapLeaves(*t.Elem, f))
	case ShapeSet:
		return NewSet(MapLeaves(*t.Elem, f))
	case ShapeOption:
		return NewOption(MapLeaves(*t.Elem, f))
	case ShapeContract:
		return NewContract(MapLeaves(*t.Elem, f))
	case ShapeTicket:
		return NewTicket(MapLeaves(*t.Elem, f))
	case ShapePair:
		return NewPair(MapLeaves(*t.Left, f), MapLeaves(*t.Right, f))
	case ShapeOr:
		return NewOr(MapLeaves(*t.Left, f), MapLeaves(*t.Right, f))
	case ShapeLambda:
		return NewLambda(MapLeaves(*t.Left, f), MapLeaves(*t.Right, f))
	case ShapeMap:
		return NewMap(MapLeaves(*t.Left, f), MapLeaves(*t.Right, f))
	case ShapeBigMap:
		return NewBigMap(MapLeaves(*t.Left, f), MapLeaves(*t.Right, f))
	default:
		panic(fmt.Sprintf("unhandled shape %v", t.Shape))
	}
}

// String renders t in the source language's own notation, e.g. "pair nat (list int)".
func (t GType) String() string {
	switch t.Shape {
	case ShapeAtomic:
		return string(t.Atom)
	case ShapeList, ShapeSet, ShapeOption, ShapeContract, ShapeTicket:
		return fmt.Sprintf("%s %s", t.Shape, wrap(*t.Elem))
	default:
		return fmt.Sprintf("%s %s %s", t.Shape, wrap(*t.Left), wrap(*t.Right))
	}
}

func wrap(t GType) string {
	if t.Shape == ShapeAtomic {
		return t.String()
	}
	return "(" + t.String() + ")"
}
