package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzcheck/internal/ast"
	"tzcheck/internal/types"
)

func noLambdas(body []*ast.Instruction, input types.GType) (types.GType, error) {
	return types.GType{}, assertNeverCalled
}

var assertNeverCalled = &neverCalledError{}

type neverCalledError struct{}

func (e *neverCalledError) Error() string { return "lambda checker should not have been invoked" }

func TestCheckValueNumber(t *testing.T) {
	tv, err := CheckValue(noLambdas, &ast.RawValue{Kind: ast.RVNumber, Number: 5}, types.NewAtomic(types.Nat))
	require.NoError(t, err)
	assert.Equal(t, VNumber, tv.Kind)
	assert.Equal(t, int64(5), tv.Num)
}

func TestCheckValueNegativeNatRejected(t *testing.T) {
	_, err := CheckValue(noLambdas, &ast.RawValue{Kind: ast.RVNumber, Number: -1}, types.NewAtomic(types.Nat))
	assert.Error(t, err)
}

func TestCheckValueIntAllowsNegative(t *testing.T) {
	tv, err := CheckValue(noLambdas, &ast.RawValue{Kind: ast.RVNumber, Number: -1}, types.NewAtomic(types.Int))
	require.NoError(t, err)
	assert.Equal(t, int64(-1), tv.Num)
}

func TestCheckValueWrongKindIsTypeError(t *testing.T) {
	_, err := CheckValue(noLambdas, &ast.RawValue{Kind: ast.RVString, Str: "asd"}, types.NewAtomic(types.Nat))
	assert.Error(t, err)
}

func TestCheckValuePair(t *testing.T) {
	raw := &ast.RawValue{
		Kind:  ast.RVPair,
		Left:  &ast.RawValue{Kind: ast.RVNumber, Number: 1},
		Right: &ast.RawValue{Kind: ast.RVNumber, Number: 2},
	}
	target := types.NewPair(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	tv, err := CheckValue(noLambdas, raw, target)
	require.NoError(t, err)
	assert.Equal(t, VPair, tv.Kind)
	assert.Equal(t, int64(1), tv.Left.Num)
	assert.Equal(t, int64(2), tv.Right.Num)
}

// TestCheckValueNoneAcceptsAnyOption locks in the fix described in the
// package doc: a bare None literal type-checks against any option type,
// unlike the Rust reference it was ported from.
func TestCheckValueNoneAcceptsAnyOption(t *testing.T) {
	tv, err := CheckValue(noLambdas, &ast.RawValue{Kind: ast.RVNone}, types.NewOption(types.NewAtomic(types.Nat)))
	require.NoError(t, err)
	assert.Equal(t, VNone, tv.Kind)
}

func TestCheckValueSomeRecurses(t *testing.T) {
	raw := &ast.RawValue{Kind: ast.RVSome, Left: &ast.RawValue{Kind: ast.RVNumber, Number: 7}}
	tv, err := CheckValue(noLambdas, raw, types.NewOption(types.NewAtomic(types.Nat)))
	require.NoError(t, err)
	assert.Equal(t, VSome, tv.Kind)
	assert.Equal(t, int64(7), tv.Left.Num)
}

func TestCheckValueMapRejectsNonComparableKey(t *testing.T) {
	raw := &ast.RawValue{Kind: ast.RVSeqKV, KVs: []ast.KV{
		{Key: &ast.RawValue{Kind: ast.RVSeqValues}, Value: &ast.RawValue{Kind: ast.RVNumber, Number: 1}},
	}}
	mapType := types.NewMap(types.NewList(types.NewAtomic(types.Nat)), types.NewAtomic(types.Nat))
	_, err := CheckValue(noLambdas, raw, mapType)
	assert.Error(t, err)
}

func TestCheckValueMapOrdersEntriesByKey(t *testing.T) {
	raw := &ast.RawValue{Kind: ast.RVSeqKV, KVs: []ast.KV{
		{Key: &ast.RawValue{Kind: ast.RVNumber, Number: 2}, Value: &ast.RawValue{Kind: ast.RVNumber, Number: 20}},
		{Key: &ast.RawValue{Kind: ast.RVNumber, Number: 1}, Value: &ast.RawValue{Kind: ast.RVNumber, Number: 10}},
	}}
	mapType := types.NewMap(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	tv, err := CheckValue(noLambdas, raw, mapType)
	require.NoError(t, err)
	require.Len(t, tv.Entries, 2)
	assert.Equal(t, int64(1), tv.Entries[0].Key.Num)
	assert.Equal(t, int64(2), tv.Entries[1].Key.Num)
}

func TestCheckValueSetDedupsAndSorts(t *testing.T) {
	raw := &ast.RawValue{Kind: ast.RVSeqValues, Seq: []*ast.RawValue{
		{Kind: ast.RVNumber, Number: 3},
		{Kind: ast.RVNumber, Number: 1},
		{Kind: ast.RVNumber, Number: 1},
	}}
	tv, err := CheckValue(noLambdas, raw, types.NewSet(types.NewAtomic(types.Nat)))
	require.NoError(t, err)
	require.Len(t, tv.Items, 2)
	assert.Equal(t, int64(1), tv.Items[0].Num)
	assert.Equal(t, int64(3), tv.Items[1].Num)
}

func TestCheckValueLambdaInvokesCheckerAndChecksOutput(t *testing.T) {
	called := false
	checker := func(body []*ast.Instruction, input types.GType) (types.GType, error) {
		called = true
		assert.Equal(t, "nat", input.String())
		return types.NewAtomic(types.Nat), nil
	}
	raw := &ast.RawValue{Kind: ast.RVSeqInstrs, Instrs: []*ast.Instruction{}}
	target := types.NewLambda(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	tv, err := CheckValue(checker, raw, target)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, VLambda, tv.Kind)
}

func TestCheckValueLambdaOutputMismatch(t *testing.T) {
	checker := func(body []*ast.Instruction, input types.GType) (types.GType, error) {
		return types.NewAtomic(types.String), nil
	}
	raw := &ast.RawValue{Kind: ast.RVSeqInstrs}
	target := types.NewLambda(types.NewAtomic(types.Nat), types.NewAtomic(types.Nat))
	_, err := CheckValue(checker, raw, target)
	assert.Error(t, err)
}

func TestCheckValueContractHasNoLiteralSyntax(t *testing.T) {
	_, err := CheckValue(noLambdas, &ast.RawValue{Kind: ast.RVUnit}, types.NewContract(types.NewAtomic(types.Unit)))
	assert.Error(t, err)
}

func TestCompareOrdersByKindThenPayload(t *testing.T) {
	a := TValue{Kind: VNumber, Num: 1}
	b := TValue{Kind: VNumber, Num: 2}
	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 0, Compare(a, a))
	assert.Equal(t, 1, Compare(b, a))
}
