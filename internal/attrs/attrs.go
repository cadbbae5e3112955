// Package attrs implements the seven type attributes that constrain where a
// ground type may appear (comparable, passable, pushable, storable,
// packable, big-map-legal, duplicable). The table below is ported verbatim
// from the host chain's attribute semantics (spec §4.2); it is the single
// source of truth and must not be special-cased per instruction.
package attrs

import "tzcheck/internal/types"

// Attribute is one of the seven predicates over types.GType.
type Attribute int

const (
	Comparable Attribute = iota
	Passable
	Pushable
	Storable
	Packable
	BigMapLegal
	Duplicable
)

func (a Attribute) String() string {
	switch a {
	case Comparable:
		return "comparable"
	case Passable:
		return "passable"
	case Pushable:
		return "pushable"
	case Storable:
		return "storable"
	case Packable:
		return "packable"
	case BigMapLegal:
		return "big-map-legal"
	case Duplicable:
		return "duplicable"
	default:
		return "?"
	}
}

// Check decides whether t satisfies attr. It is total: every GType shape is
// handled explicitly, matching the reference implementation's
// check_attribute (original_source/typechecker/src/attributes.rs).
func Check(attr Attribute, t types.GType) bool {
	switch t.Shape {
	case types.ShapeAtomic:
		return true

	case types.ShapeMap:
		if attr == Comparable {
			return false
		}
		return Check(attr, *t.Right)

	case types.ShapeBigMap:
		switch attr {
		case Passable, Storable, Duplicable:
			return Check(attr, *t.Right)
		default:
			return false
		}

	case types.ShapePair, types.ShapeOr:
		return Check(attr, *t.Left) && Check(attr, *t.Right)

	case types.ShapeTicket:
		switch attr {
		case Comparable, Duplicable, Pushable, Passable:
			return false
		default:
			return true
		}

	case types.ShapeList, types.ShapeSet:
		if attr == Comparable {
			return false
		}
		return Check(attr, *t.Elem)

	case types.ShapeOption:
		return Check(attr, *t.Elem)

	case types.ShapeContract:
		switch attr {
		case Comparable, Storable, Pushable, BigMapLegal:
			return false
		default:
			return true
		}

	case types.ShapeLambda:
		if attr == Comparable {
			return false
		}
		return true

	default:
		panic("unhandled shape in attrs.Check")
	}
}

// CheckAll is the conjunction of Check over every attribute in want.
func CheckAll(want []Attribute, t types.GType) bool {
	for _, a := range want {
		if !Check(a, t) {
			return false
		}
	}
	return true
}
