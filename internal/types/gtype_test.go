package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGTypeStringAtomicAndContainers(t *testing.T) {
	assert.Equal(t, "nat", NewAtomic(Nat).String())
	assert.Equal(t, "list nat", NewList(NewAtomic(Nat)).String())
	assert.Equal(t, "pair nat nat", NewPair(NewAtomic(Nat), NewAtomic(Nat)).String())
	assert.Equal(t, "option nat", NewOption(NewAtomic(Nat)).String())
	assert.Equal(t, "map nat nat", NewMap(NewAtomic(Nat), NewAtomic(Nat)).String())
	assert.Equal(t, "lambda nat nat", NewLambda(NewAtomic(Nat), NewAtomic(Nat)).String())
}

func TestGTypeStringWrapsNonAtomicOperands(t *testing.T) {
	nested := NewPair(NewAtomic(Nat), NewList(NewAtomic(Int)))
	assert.Equal(t, "pair nat (list int)", nested.String())
}

func TestEqual(t *testing.T) {
	a := NewPair(NewAtomic(Nat), NewAtomic(String))
	b := NewPair(NewAtomic(Nat), NewAtomic(String))
	c := NewPair(NewAtomic(Nat), NewAtomic(Int))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(NewList(NewAtomic(Nat)), NewSet(NewAtomic(Nat))))
}

func TestCompareOrdersByShapeThenLeaves(t *testing.T) {
	assert.Equal(t, 0, Compare(NewAtomic(Nat), NewAtomic(Nat)))
	assert.NotEqual(t, 0, Compare(NewAtomic(Nat), NewAtomic(Int)))
	// atomic (shape 0) sorts before list (shape 1)
	assert.Equal(t, -1, Compare(NewAtomic(Nat), NewList(NewAtomic(Nat))))
}

func TestMapLeavesRewritesEveryAtomKeepingShape(t *testing.T) {
	in := NewPair(NewAtomic(Nat), NewList(NewAtomic(Int)))
	out := MapLeaves(in, func(a Atomic) Atomic {
		if a == Nat {
			return Mutez
		}
		return a
	})
	assert.Equal(t, "pair mutez (list int)", out.String())
}
