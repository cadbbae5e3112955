package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tzcheck/internal/types"
)

func TestAtomicTypesSatisfyEveryAttribute(t *testing.T) {
	nat := types.NewAtomic(types.Nat)
	for _, a := range []Attribute{Comparable, Passable, Pushable, Storable, Packable, BigMapLegal, Duplicable} {
		assert.True(t, Check(a, nat), "atomic type should satisfy %s", a)
	}
}

func TestMapIsNeverComparable(t *testing.T) {
	m := types.NewMap(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	assert.False(t, Check(Comparable, m))
	assert.True(t, Check(Passable, m))
}

func TestBigMapOnlyPassableStorableDuplicable(t *testing.T) {
	bm := types.NewBigMap(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	assert.True(t, Check(Passable, bm))
	assert.True(t, Check(Storable, bm))
	assert.True(t, Check(Duplicable, bm))
	assert.False(t, Check(Comparable, bm))
	assert.False(t, Check(Pushable, bm))
	assert.False(t, Check(Packable, bm))
	assert.False(t, Check(BigMapLegal, bm))
}

func TestTicketAttributes(t *testing.T) {
	tk := types.NewTicket(types.NewAtomic(types.Nat))
	assert.False(t, Check(Comparable, tk))
	assert.False(t, Check(Duplicable, tk))
	assert.False(t, Check(Pushable, tk))
	assert.False(t, Check(Passable, tk))
	assert.True(t, Check(Storable, tk))
	assert.True(t, Check(Packable, tk))
	assert.True(t, Check(BigMapLegal, tk))
}

func TestContractAttributes(t *testing.T) {
	c := types.NewContract(types.NewAtomic(types.Unit))
	assert.False(t, Check(Comparable, c))
	assert.False(t, Check(Storable, c))
	assert.False(t, Check(Pushable, c))
	assert.False(t, Check(BigMapLegal, c))
	assert.True(t, Check(Passable, c))
	assert.True(t, Check(Duplicable, c))
}

func TestLambdaIsEverythingButComparable(t *testing.T) {
	l := types.NewLambda(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	assert.False(t, Check(Comparable, l))
	assert.True(t, Check(Passable, l))
	assert.True(t, Check(Storable, l))
}

func TestPairPropagatesFromBothSides(t *testing.T) {
	okPair := types.NewPair(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	assert.True(t, Check(Comparable, okPair))

	withMap := types.NewPair(types.NewAtomic(types.Nat), types.NewMap(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat)))
	assert.False(t, Check(Comparable, withMap))
}

func TestCheckAllIsConjunction(t *testing.T) {
	nat := types.NewAtomic(types.Nat)
	assert.True(t, CheckAll([]Attribute{Comparable, Passable}, nat))

	bm := types.NewBigMap(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	assert.False(t, CheckAll([]Attribute{Passable, Comparable}, bm))
}
