package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzcheck/internal/attrs"
	"tzcheck/internal/schema"
	"tzcheck/internal/stack"
	"tzcheck/internal/types"
)

func TestUnifyConcreteAtomic(t *testing.T) {
	cache := NewCache()
	err := UnifyConcrete(cache, types.NewAtomic(types.Nat), schema.Atomic(types.Nat))
	require.NoError(t, err)

	err = UnifyConcrete(cache, types.NewAtomic(types.Int), schema.Atomic(types.Nat))
	assert.Error(t, err)
}

func TestUnifyConcreteWildBindsAndTypeArgRefChecks(t *testing.T) {
	cache := NewCache()
	require.NoError(t, UnifyConcrete(cache, types.NewAtomic(types.Nat), schema.Wild('a')))
	bound, ok := cache.Get('a')
	require.True(t, ok)
	assert.Equal(t, "nat", bound.String())

	// a second occurrence of the same stack position, matched against nat again, succeeds
	require.NoError(t, UnifyConcrete(cache, types.NewAtomic(types.Nat), schema.TypeArgRef('a')))
	// mismatched type fails
	assert.Error(t, UnifyConcrete(cache, types.NewAtomic(types.Int), schema.TypeArgRef('a')))
}

func TestUnifyConcreteWildAttributeCheck(t *testing.T) {
	cache := NewCache()
	m := types.NewMap(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	err := UnifyConcrete(cache, m, schema.Wild('a', attrs.Comparable))
	assert.Error(t, err, "a map is not comparable, so a Comparable-constrained wild must reject it")
}

func TestUnifyConcretePairRecurses(t *testing.T) {
	cache := NewCache()
	pairConstraint := schema.Pair(schema.Wild('a'), schema.Wild('b'))
	concrete := types.NewPair(types.NewAtomic(types.Nat), types.NewAtomic(types.String))
	require.NoError(t, UnifyConcrete(cache, concrete, pairConstraint))
	a, _ := cache.Get('a')
	b, _ := cache.Get('b')
	assert.Equal(t, "nat", a.String())
	assert.Equal(t, "string", b.String())
}

func TestUnifyConcreteShapeMismatch(t *testing.T) {
	cache := NewCache()
	err := UnifyConcrete(cache, types.NewAtomic(types.Nat), schema.List(schema.Wild('a')))
	assert.Error(t, err)
}

func TestResolveConstraintUnresolvedWildIsNotOk(t *testing.T) {
	cache := NewCache()
	_, ok := ResolveConstraint(cache, schema.Wild('a'))
	assert.False(t, ok)
}

func TestResolveConstraintTypeArgRef(t *testing.T) {
	cache := NewCache()
	cache.Set('a', types.NewAtomic(types.Nat))
	gt, ok := ResolveConstraint(cache, schema.TypeArgRef('a'))
	require.True(t, ok)
	assert.Equal(t, "nat", gt.String())
}

func TestMaterializeRef(t *testing.T) {
	cache := NewCache()
	cache.Set('a', types.NewAtomic(types.Nat))
	gt := Materialize(cache, schema.Ref('a'))
	assert.Equal(t, "nat", gt.String())
}

func TestMaterializePanicsOnUnboundRef(t *testing.T) {
	cache := NewCache()
	assert.Panics(t, func() {
		Materialize(cache, schema.Ref('z'))
	})
}

// TestUnifyStackPrefixBindsInputsAndPushesOutputs exercises ADD's shape:
// pop two wild-bound nats, push one nat back (the same variable reused
// across input and output leaves).
func TestUnifyStackPrefixBindsInputsAndPushesOutputs(t *testing.T) {
	cache := NewCache()
	st := stack.New(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	in := []schema.Constraint{schema.Wild('a'), schema.TypeArgRef('a')}
	out := []schema.StackResult{schema.Ref('a')}
	require.NoError(t, UnifyStackPrefix(cache, in, out, st))
	n, _ := st.Len()
	assert.Equal(t, 1, n)
	top, _ := st.Peek(0)
	assert.Equal(t, "nat", top.String())
}

func TestUnifyStackPrefixUnderflow(t *testing.T) {
	cache := NewCache()
	st := stack.New(types.NewAtomic(types.Nat))
	in := []schema.Constraint{schema.Wild('a'), schema.Wild('b')}
	err := UnifyStackPrefix(cache, in, nil, st)
	assert.Error(t, err)
}

func TestUnifyStackPrefixSkipsOnFailedStack(t *testing.T) {
	cache := NewCache()
	st := stack.Failed()
	in := []schema.Constraint{schema.Wild('a'), schema.Wild('b')}
	assert.NoError(t, UnifyStackPrefix(cache, in, nil, st))
}
