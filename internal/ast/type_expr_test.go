package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAtomic(t *testing.T) {
	gt, err := Resolve(&TypeExpr{Name: "nat"})
	require.NoError(t, err)
	assert.Equal(t, "nat", gt.String())
}

func TestResolveContainer(t *testing.T) {
	gt, err := Resolve(&TypeExpr{Name: "pair", Args: []*TypeExpr{
		{Name: "nat"}, {Name: "string"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "pair nat string", gt.String())
}

func TestResolveNestedContainer(t *testing.T) {
	gt, err := Resolve(&TypeExpr{Name: "pair", Args: []*TypeExpr{
		{Name: "nat"},
		{Name: "list", Args: []*TypeExpr{{Name: "int"}}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "pair nat (list int)", gt.String())
}

func TestResolveUnknownTypeName(t *testing.T) {
	_, err := Resolve(&TypeExpr{Name: "frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestResolveArityMismatch(t *testing.T) {
	_, err := Resolve(&TypeExpr{Name: "pair", Args: []*TypeExpr{{Name: "nat"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 argument")
}

func TestResolveAtomicRejectsArguments(t *testing.T) {
	_, err := Resolve(&TypeExpr{Name: "nat", Args: []*TypeExpr{{Name: "int"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 0 argument")
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "test.tz", Line: 3, Column: 7}
	assert.Equal(t, "test.tz:3:7", p.String())
}
