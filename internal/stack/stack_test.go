package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzcheck/internal/types"
)

func TestNewSeedZeroIsTop(t *testing.T) {
	s := New(types.NewAtomic(types.Nat), types.NewAtomic(types.String))
	top, ok := s.Peek(0)
	require.True(t, ok)
	assert.Equal(t, "nat", top.String())
	n, ok := s.Len()
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestPushPop(t *testing.T) {
	s := New(types.NewAtomic(types.Nat))
	s.Push(types.NewAtomic(types.Bool))
	top, _ := s.Peek(0)
	assert.Equal(t, "bool", top.String())

	popped, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "bool", popped.String())
	n, _ := s.Len()
	assert.Equal(t, 1, n)
}

func TestPopEmptyFails(t *testing.T) {
	s := New()
	_, ok := s.Pop()
	assert.False(t, ok)
}

func TestFailedStackSatisfiesAnyRequirement(t *testing.T) {
	s := Failed()
	assert.True(t, s.IsFailed())
	assert.True(t, s.EnsureAtLeast(100))
	_, lenOk := s.Len()
	assert.False(t, lenOk)
}

func TestFailMakesFurtherMutationsNoOps(t *testing.T) {
	s := New(types.NewAtomic(types.Nat))
	s.Fail()
	s.Push(types.NewAtomic(types.Bool))
	assert.True(t, s.IsFailed())
	_, ok := s.Pop()
	assert.False(t, ok)
}

func TestMoveRelocatesElement(t *testing.T) {
	s := New(types.NewAtomic(types.Nat), types.NewAtomic(types.Int), types.NewAtomic(types.Bool))
	s.Move(2, 0) // bring bool to the top
	top, _ := s.Peek(0)
	assert.Equal(t, "bool", top.String())
	n, _ := s.Len()
	assert.Equal(t, 3, n)
}

func TestTailAndTailFromAndHeadTill(t *testing.T) {
	s := New(types.NewAtomic(types.Nat), types.NewAtomic(types.Int), types.NewAtomic(types.Bool))
	tail := s.Tail()
	n, _ := tail.Len()
	assert.Equal(t, 2, n)
	top, _ := tail.Peek(0)
	assert.Equal(t, "int", top.String())

	from := s.TailFrom(2)
	n, _ = from.Len()
	assert.Equal(t, 1, n)

	head := s.HeadTill(2)
	n, _ = head.Len()
	assert.Equal(t, 2, n)
}

func TestAppendTailAndCloneAreIndependent(t *testing.T) {
	a := New(types.NewAtomic(types.Nat))
	b := New(types.NewAtomic(types.Bool))
	clone := a.Clone()
	a.AppendTail(b)
	n, _ := a.Len()
	assert.Equal(t, 2, n)
	cn, _ := clone.Len()
	assert.Equal(t, 1, cn, "clone must not see AppendTail mutations on the original")
}

func TestCompareVerdicts(t *testing.T) {
	live1 := New(types.NewAtomic(types.Nat))
	live1b := New(types.NewAtomic(types.Nat))
	live2 := New(types.NewAtomic(types.Int))

	assert.Equal(t, Match, Compare(live1, live1b))
	assert.Equal(t, NoMatch, Compare(live1, live2))
	assert.Equal(t, BothFailed, Compare(Failed(), Failed()))
	assert.Equal(t, LeftFailed, Compare(Failed(), live1))
	assert.Equal(t, RightFailed, Compare(live1, Failed()))
}

func TestCompareSingleton(t *testing.T) {
	s := New(types.NewAtomic(types.Nat))
	assert.True(t, s.CompareSingleton(types.NewAtomic(types.Nat)))
	assert.False(t, s.CompareSingleton(types.NewAtomic(types.Int)))

	multi := New(types.NewAtomic(types.Nat), types.NewAtomic(types.Int))
	assert.False(t, multi.CompareSingleton(types.NewAtomic(types.Nat)))
}
