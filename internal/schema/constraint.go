// Package schema defines instruction schemas: the argument and stack
// constraints that the unifier (internal/unify) matches against concrete
// arguments and stack elements, and the registry that maps an instruction
// mnemonic to its (possibly several) schemas (spec §4.3).
package schema

import (
	"fmt"

	"tzcheck/internal/attrs"
	"tzcheck/internal/types"
)

// Kind distinguishes a Constraint leaf from a container node. Container
// kinds reuse types.Shape's numbering by construction (see the constants
// below); leaf kinds start past ShapeBigMap.
type Kind int

const (
	KAtomic Kind = Kind(types.ShapeAtomic)
	KList   Kind = Kind(types.ShapeList)
	KSet    Kind = Kind(types.ShapeSet)
	KOption Kind = Kind(types.ShapeOption)
	KContr  Kind = Kind(types.ShapeContract)
	KTicket Kind = Kind(types.ShapeTicket)
	KPair   Kind = Kind(types.ShapePair)
	KOr     Kind = Kind(types.ShapeOr)
	KLambda Kind = Kind(types.ShapeLambda)
	KMap    Kind = Kind(types.ShapeMap)
	KBigMap Kind = Kind(types.ShapeBigMap)

	// Leaf kinds: a schema leaf that is not a literal atomic ground type.
	KWild       Kind = 100 + iota // fresh type variable bound to whatever appears
	KTypeArg                      // like KWild, but the source argument is a type name
	KTypeArgRef                   // reuse of a variable already bound in this schema
)

// Constraint is a schema-type leaf tree: GType's container shapes, plus four
// leaf variants (Atomic, Wild, TypeArg, TypeArgRef) in place of GType's bare
// atomic leaf (spec §3 "Schema types").
type Constraint struct {
	Kind  Kind
	Atom  types.Atomic     // valid when Kind == KAtomic
	Var   byte             // valid when Kind is KWild/KTypeArg/KTypeArgRef
	Attrs []attrs.Attribute // required attributes, for KWild/KTypeArg
	Elem  *Constraint
	Left  *Constraint
	Right *Constraint
}

func Atomic(a types.Atomic) Constraint { return Constraint{Kind: KAtomic, Atom: a} }
func Wild(v byte, want ...attrs.Attribute) Constraint {
	return Constraint{Kind: KWild, Var: v, Attrs: want}
}
func TypeArg(v byte, want ...attrs.Attribute) Constraint {
	return Constraint{Kind: KTypeArg, Var: v, Attrs: want}
}
func TypeArgRef(v byte) Constraint { return Constraint{Kind: KTypeArgRef, Var: v} }

func List(t Constraint) Constraint     { return Constraint{Kind: KList, Elem: &t} }
func Set(t Constraint) Constraint      { return Constraint{Kind: KSet, Elem: &t} }
func Option(t Constraint) Constraint   { return Constraint{Kind: KOption, Elem: &t} }
func Contract(t Constraint) Constraint { return Constraint{Kind: KContr, Elem: &t} }
func Ticket(t Constraint) Constraint   { return Constraint{Kind: KTicket, Elem: &t} }

func Pair(l, r Constraint) Constraint   { return Constraint{Kind: KPair, Left: &l, Right: &r} }
func Or(l, r Constraint) Constraint     { return Constraint{Kind: KOr, Left: &l, Right: &r} }
func Lambda(l, r Constraint) Constraint { return Constraint{Kind: KLambda, Left: &l, Right: &r} }
func Map(k, v Constraint) Constraint    { return Constraint{Kind: KMap, Left: &k, Right: &v} }
func BigMap(k, v Constraint) Constraint { return Constraint{Kind: KBigMap, Left: &k, Right: &v} }

func (c Constraint) String() string {
	switch c.Kind {
	case KAtomic:
		return string(c.Atom)
	case KWild:
		return fmt.Sprintf("<wild %c%v>", c.Var, c.Attrs)
	case KTypeArg:
		return fmt.Sprintf("<type-arg %c%v>", c.Var, c.Attrs)
	case KTypeArgRef:
		return fmt.Sprintf("<ref %c>", c.Var)
	case KList, KSet, KOption, KContr, KTicket:
		return fmt.Sprintf("%s %s", types.Shape(c.Kind), c.Elem)
	default:
		return fmt.Sprintf("%s %s %s", types.Shape(c.Kind), c.Left, c.Right)
	}
}

// ResultKind mirrors Kind but for output-stack leaves, which may only be a
// literal atomic ground type or a reference to a previously bound variable.
type ResultKind int

const (
	RList   ResultKind = ResultKind(types.ShapeList)
	RSet    ResultKind = ResultKind(types.ShapeSet)
	ROption ResultKind = ResultKind(types.ShapeOption)
	RContr  ResultKind = ResultKind(types.ShapeContract)
	RTicket ResultKind = ResultKind(types.ShapeTicket)
	RPair   ResultKind = ResultKind(types.ShapePair)
	ROr     ResultKind = ResultKind(types.ShapeOr)
	RLambda ResultKind = ResultKind(types.ShapeLambda)
	RMap    ResultKind = ResultKind(types.ShapeMap)
	RBigMap ResultKind = ResultKind(types.ShapeBigMap)

	RElem ResultKind = 200 // literal atomic ground type
	RRef  ResultKind = 201 // "the ground type bound to v"
)

type StackResult struct {
	Kind  ResultKind
	Atom  types.Atomic
	Var   byte
	Elem  *StackResult
	Left  *StackResult
	Right *StackResult
}

func Elem(a types.Atomic) StackResult { return StackResult{Kind: RElem, Atom: a} }
func Ref(v byte) StackResult          { return StackResult{Kind: RRef, Var: v} }

func RList_(t StackResult) StackResult   { return StackResult{Kind: RList, Elem: &t} }
func RSet_(t StackResult) StackResult    { return StackResult{Kind: RSet, Elem: &t} }
func ROption_(t StackResult) StackResult { return StackResult{Kind: ROption, Elem: &t} }
func RContr_(t StackResult) StackResult  { return StackResult{Kind: RContr, Elem: &t} }
func RTicket_(t StackResult) StackResult { return StackResult{Kind: RTicket, Elem: &t} }

func RPair_(l, r StackResult) StackResult   { return StackResult{Kind: RPair, Left: &l, Right: &r} }
func ROr_(l, r StackResult) StackResult     { return StackResult{Kind: ROr, Left: &l, Right: &r} }
func RLambda_(l, r StackResult) StackResult { return StackResult{Kind: RLambda, Left: &l, Right: &r} }
func RMap_(k, v StackResult) StackResult    { return StackResult{Kind: RMap, Left: &k, Right: &v} }
func RBigMap_(k, v StackResult) StackResult { return StackResult{Kind: RBigMap, Left: &k, Right: &v} }

// Schema is one polymorphic signature of an instruction: its static
// (type-name) arguments, the stack prefix it consumes, and the stack slice
// it produces (spec §4.3).
type Schema struct {
	Args   []Constraint
	Input  []Constraint
	Output []StackResult
}
