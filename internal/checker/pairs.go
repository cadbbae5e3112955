package checker

import (
	"fmt"

	"tzcheck/internal/stack"
	"tzcheck/internal/types"
)

// getNPair implements GET(n)'s right-nested pair descent (spec §4.7):
// GET(0) is the identity; GET(2k+1) is the car after k cdrs; GET(2k) is
// what remains after k cdrs. Ported from original_source/typechecker/src/types.rs's
// get_n_pair.
func getNPair(n int, t types.GType) (types.GType, error) {
	if n == 0 {
		return t, nil
	}
	if t.Shape != types.ShapePair {
		return types.GType{}, fmt.Errorf("GET(%d) requires a pair, found %s", n, t)
	}
	if n == 1 {
		return *t.Left, nil
	}
	if n == 2 {
		return *t.Right, nil
	}
	return getNPair(n-2, *t.Right)
}

// updateNPair implements UPDATE(n): it descends the same right spine as
// getNPair, then rebuilds the pair with the leaf at position n replaced by
// newValue. Ported from update_n_pair, restructured from the reference's
// in-place mutation into a collect-then-rebuild recursion (same result,
// since Go doesn't mutate through a shared pointer the way the Rust
// reference walks &mut ConcreteType).
func updateNPair(n int, newValue, target types.GType) (types.GType, error) {
	if n == 0 {
		return newValue, nil
	}
	if target.Shape != types.ShapePair {
		return types.GType{}, fmt.Errorf("UPDATE(%d) requires a pair, found %s", n, target)
	}
	if n == 1 {
		return types.NewPair(newValue, *target.Right), nil
	}
	if n == 2 {
		return types.NewPair(*target.Left, newValue), nil
	}
	right, err := updateNPair(n-2, newValue, *target.Right)
	if err != nil {
		return types.GType{}, err
	}
	return types.NewPair(*target.Left, right), nil
}

// mkPair implements PAIR(n) (n >= 2): it pops the top n stack elements and
// right-nests them into a single pair, the first-popped (top of stack)
// element ending up as the outermost pair's left member and the
// last-popped (deepest) one as the innermost pair's right member.
// Ported from mk_pair.
func mkPair(st *stack.Stack, n int) (types.GType, error) {
	if n == 2 {
		a, ok := st.Pop()
		if !ok {
			return types.GType{}, fmt.Errorf("stack too small for PAIR")
		}
		b, ok := st.Pop()
		if !ok {
			return types.GType{}, fmt.Errorf("stack too small for PAIR")
		}
		return types.NewPair(a, b), nil
	}
	a, ok := st.Pop()
	if !ok {
		return types.GType{}, fmt.Errorf("stack too small for PAIR")
	}
	rest, err := mkPair(st, n-1)
	if err != nil {
		return types.GType{}, err
	}
	return types.NewPair(a, rest), nil
}

// unmkPair implements UNPAIR(n) (n >= 2): the inverse of mkPair, pushing the
// n components back onto st in left-to-right source order (the left-most
// component ends up on top). Ported from unmk_pair.
func unmkPair(t types.GType, n int, st *stack.Stack) error {
	if n == 2 {
		if t.Shape != types.ShapePair {
			return fmt.Errorf("UNPAIR(2) requires a pair, found %s", t)
		}
		st.Push(*t.Right)
		st.Push(*t.Left)
		return nil
	}
	if t.Shape != types.ShapePair {
		return fmt.Errorf("UNPAIR(%d) requires a pair, found %s", n, t)
	}
	if err := unmkPair(*t.Right, n-1, st); err != nil {
		return err
	}
	st.Push(*t.Left)
	return nil
}
