// Package unify implements the unifier: matching schema constraints
// (internal/schema) against concrete ground types (internal/types), tracking
// the type-variable bindings a schema's wildcards and type-name arguments
// accumulate along the way. It is a direct port of
// original_source/typechecker/src/lib/typechecker.rs's unify_concrete_arg /
// constraint_to_concrete / stack_result_to_concrete_type / unify_stack
// (spec §4.4).
//
// One deliberate divergence from the Rust reference: the Rust
// unify_concrete_arg never checks a CWarg's attribute list, only CTypeArg's
// (inside unify_arg, for type-name arguments). That leaves a Wild
// constraint's Attrs field dead for stack-position use, which is exactly
// where COMPARE needs it (its left-hand operand must be Comparable, and
// that operand is a stack value, not a type-name argument). UnifyConcrete
// here checks Attrs on both Wild and TypeArg leaves, so attaching attrs to a
// Wild constraint actually has an effect. See DESIGN.md.
package unify

import (
	"fmt"

	"tzcheck/internal/attrs"
	"tzcheck/internal/schema"
	"tzcheck/internal/types"
)

// Cache is the resolution cache: the partial map from a schema's
// single-letter type variables to the concrete ground type each was bound
// to, accumulated over one instruction's argument and stack unification
// (the Rust reference's ResolveCache, a BTreeMap<char, ConcreteType>).
type Cache struct {
	bound map[byte]types.GType
}

// NewCache returns an empty cache, one per instruction occurrence.
func NewCache() *Cache { return &Cache{bound: map[byte]types.GType{}} }

// Get looks up v's current binding.
func (c *Cache) Get(v byte) (types.GType, bool) {
	t, ok := c.bound[v]
	return t, ok
}

// Set binds v to t, overwriting any previous binding. Matches the
// reference's add_symbol, which always overwrites: a well-formed schema
// introduces each variable exactly once as Wild/TypeArg and refers back to
// it afterwards only via TypeArgRef, so a rebind never actually occurs in
// practice, but nothing here depends on that not happening.
func (c *Cache) Set(v byte, t types.GType) { c.bound[v] = t }

// UnifyConcrete matches a concrete ground type against one schema
// constraint, binding any first-seen Wild/TypeArg variable into cache and
// checking a TypeArgRef against its prior binding. It ports
// unify_concrete_arg verbatim, plus the Attrs check described in the
// package doc.
func UnifyConcrete(cache *Cache, t types.GType, c schema.Constraint) error {
	switch c.Kind {
	case schema.KWild, schema.KTypeArg:
		if !attrs.CheckAll(c.Attrs, t) {
			return fmt.Errorf("%s does not satisfy the required attributes %v", t, c.Attrs)
		}
		cache.Set(c.Var, t)
		return nil

	case schema.KTypeArgRef:
		bound, ok := cache.Get(c.Var)
		if !ok {
			return fmt.Errorf("internal error: type variable %q referenced before it was bound", c.Var)
		}
		return UnifyConcrete(cache, t, fromGType(bound))

	case schema.KAtomic:
		if t.Shape != types.ShapeAtomic || t.Atom != c.Atom {
			return fmt.Errorf("expected %s, found %s", c.Atom, t)
		}
		return nil

	case schema.KList:
		if t.Shape != types.ShapeList {
			return fmt.Errorf("expected a list, found %s", t)
		}
		return UnifyConcrete(cache, *t.Elem, *c.Elem)
	case schema.KSet:
		if t.Shape != types.ShapeSet {
			return fmt.Errorf("expected a set, found %s", t)
		}
		return UnifyConcrete(cache, *t.Elem, *c.Elem)
	case schema.KOption:
		if t.Shape != types.ShapeOption {
			return fmt.Errorf("expected an option, found %s", t)
		}
		return UnifyConcrete(cache, *t.Elem, *c.Elem)
	case schema.KContr:
		if t.Shape != types.ShapeContract {
			return fmt.Errorf("expected a contract, found %s", t)
		}
		return UnifyConcrete(cache, *t.Elem, *c.Elem)
	case schema.KTicket:
		if t.Shape != types.ShapeTicket {
			return fmt.Errorf("expected a ticket, found %s", t)
		}
		return UnifyConcrete(cache, *t.Elem, *c.Elem)

	case schema.KPair:
		if t.Shape != types.ShapePair {
			return fmt.Errorf("expected a pair, found %s", t)
		}
	case schema.KOr:
		if t.Shape != types.ShapeOr {
			return fmt.Errorf("expected an or, found %s", t)
		}
	case schema.KLambda:
		if t.Shape != types.ShapeLambda {
			return fmt.Errorf("expected a lambda, found %s", t)
		}
	case schema.KMap:
		if t.Shape != types.ShapeMap {
			return fmt.Errorf("expected a map, found %s", t)
		}
	case schema.KBigMap:
		if t.Shape != types.ShapeBigMap {
			return fmt.Errorf("expected a big_map, found %s", t)
		}
	default:
		return fmt.Errorf("internal error: unhandled constraint kind %v", c.Kind)
	}
	if err := UnifyConcrete(cache, *t.Left, *c.Left); err != nil {
		return err
	}
	return UnifyConcrete(cache, *t.Right, *c.Right)
}

// fromGType turns an already-concrete ground type into the Constraint tree
// that matches it exactly (every leaf an Atomic), so a TypeArgRef's bound
// type can be re-unified through the same UnifyConcrete recursion. Ports
// the reference's `map_mtype(tt, &|x| CAtomic(x.clone()))`.
func fromGType(t types.GType) schema.Constraint {
	switch t.Shape {
	case types.ShapeAtomic:
		return schema.Atomic(t.Atom)
	case types.ShapeList:
		return schema.List(fromGType(*t.Elem))
	case types.ShapeSet:
		return schema.Set(fromGType(*t.Elem))
	case types.ShapeOption:
		return schema.Option(fromGType(*t.Elem))
	case types.ShapeContract:
		return schema.Contract(fromGType(*t.Elem))
	case types.ShapeTicket:
		return schema.Ticket(fromGType(*t.Elem))
	case types.ShapePair:
		return schema.Pair(fromGType(*t.Left), fromGType(*t.Right))
	case types.ShapeOr:
		return schema.Or(fromGType(*t.Left), fromGType(*t.Right))
	case types.ShapeLambda:
		return schema.Lambda(fromGType(*t.Left), fromGType(*t.Right))
	case types.ShapeMap:
		return schema.Map(fromGType(*t.Left), fromGType(*t.Right))
	case types.ShapeBigMap:
		return schema.BigMap(fromGType(*t.Left), fromGType(*t.Right))
	default:
		panic(fmt.Sprintf("internal error: unhandled shape %v", t.Shape))
	}
}

// ResolveConstraint turns a constraint into the concrete ground type it
// already fully determines — every TypeArgRef leaf resolved from cache,
// every other leaf either a literal Atomic or a container built from
// recursively resolved children. It returns ok=false where the reference's
// constraint_to_concrete returns None: a bare Wild or TypeArg leaf (not yet
// bound to anything a value could be checked against) or an unresolved
// TypeArgRef.
func ResolveConstraint(cache *Cache, c schema.Constraint) (types.GType, bool) {
	switch c.Kind {
	case schema.KTypeArgRef:
		return cache.Get(c.Var)
	case schema.KAtomic:
		return types.NewAtomic(c.Atom), true
	case schema.KWild, schema.KTypeArg:
		return types.GType{}, false
	case schema.KList, schema.KSet, schema.KOption, schema.KContr, schema.KTicket:
		elem, ok := ResolveConstraint(cache, *c.Elem)
		if !ok {
			return types.GType{}, false
		}
		switch c.Kind {
		case schema.KList:
			return types.NewList(elem), true
		case schema.KSet:
			return types.NewSet(elem), true
		case schema.KOption:
			return types.NewOption(elem), true
		case schema.KContr:
			return types.NewContract(elem), true
		default:
			return types.NewTicket(elem), true
		}
	default: // pair-shaped container kinds
		l, ok := ResolveConstraint(cache, *c.Left)
		if !ok {
			return types.GType{}, false
		}
		r, ok := ResolveConstraint(cache, *c.Right)
		if !ok {
			return types.GType{}, false
		}
		switch c.Kind {
		case schema.KPair:
			return types.NewPair(l, r), true
		case schema.KOr:
			return types.NewOr(l, r), true
		case schema.KLambda:
			return types.NewLambda(l, r), true
		case schema.KMap:
			return types.NewMap(l, r), true
		case schema.KBigMap:
			return types.NewBigMap(l, r), true
		default:
			return types.GType{}, false
		}
	}
}

// Materialize turns an output-stack leaf into the concrete ground type it
// denotes, substituting every Ref from cache. Ports
// stack_result_to_concrete_type. A missing Ref means a schema was authored
// with an output that names a variable its own input/args never bind: an
// internal invariant violation, not a user-facing type error, so — matching
// the reference, which panics in the same spot — this panics too.
func Materialize(cache *Cache, r schema.StackResult) types.GType {
	switch r.Kind {
	case schema.RElem:
		return types.NewAtomic(r.Atom)
	case schema.RRef:
		t, ok := cache.Get(r.Var)
		if !ok {
			panic(fmt.Sprintf("internal error: schema output refers to unbound variable %q", r.Var))
		}
		return t
	case schema.RList:
		return types.NewList(Materialize(cache, *r.Elem))
	case schema.RSet:
		return types.NewSet(Materialize(cache, *r.Elem))
	case schema.ROption:
		return types.NewOption(Materialize(cache, *r.Elem))
	case schema.RContr:
		return types.NewContract(Materialize(cache, *r.Elem))
	case schema.RTicket:
		return types.NewTicket(Materialize(cache, *r.Elem))
	case schema.RPair:
		return types.NewPair(Materialize(cache, *r.Left), Materialize(cache, *r.Right))
	case schema.ROr:
		return types.NewOr(Materialize(cache, *r.Left), Materialize(cache, *r.Right))
	case schema.RLambda:
		return types.NewLambda(Materialize(cache, *r.Left), Materialize(cache, *r.Right))
	case schema.RMap:
		return types.NewMap(Materialize(cache, *r.Left), Materialize(cache, *r.Right))
	case schema.RBigMap:
		return types.NewBigMap(Materialize(cache, *r.Left), Materialize(cache, *r.Right))
	default:
		panic(fmt.Sprintf("internal error: unhandled result kind %v", r.Kind))
	}
}

// UnifyStackPrefix matches the in constraints against st's top len(in)
// elements (top constraint first, as in a schema's declared order, so in[0]
// matches the top of stack), then pushes out, materialized through cache,
// back onto st in reverse so out[0]
// ends up on top. Ports unify_stack. A Failed stack is left untouched and
// reported as satisfied, matching "operations on Failed are silently
// skipped" (spec §4.5).
func UnifyStackPrefix(cache *Cache, in []schema.Constraint, out []schema.StackResult, st interface {
	IsFailed() bool
	EnsureAtLeast(int) bool
	Pop() (types.GType, bool)
	Push(types.GType)
}) error {
	if st.IsFailed() {
		return nil
	}
	if !st.EnsureAtLeast(len(in)) {
		return fmt.Errorf("stack too small: needed %d element(s)", len(in))
	}
	for _, c := range in {
		elem, ok := st.Pop()
		if !ok {
			return fmt.Errorf("stack too small: needed %d element(s)", len(in))
		}
		if err := UnifyConcrete(cache, elem, c); err != nil {
			return err
		}
	}
	for i := len(out) - 1; i >= 0; i-- {
		st.Push(Materialize(cache, out[i]))
	}
	return nil
}
