package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzcheck/internal/ast"
	"tzcheck/internal/checker"
	"tzcheck/internal/parser"
	"tzcheck/internal/stack"
)

// parseCode turns a bare instruction snippet into a full contract so
// internal/parser can parse it, then returns just its code body;
// parameter/storage are unit since these scenarios exercise the
// instruction-level driver (checker.TypeCheck), not the whole-contract
// driver's parameter/storage/final-shape rules (that's contract_test.go).
func parseCode(t *testing.T, snippet string) []*ast.Instruction {
	t.Helper()
	c, err := parser.ParseSource("scenario.tz", "parameter unit; storage unit; code { "+snippet+" };")
	require.NoError(t, err)
	return c.Code
}

// TestEndToEndScenarios runs spec §8's eight end-to-end scenarios through
// the real parser and checker together.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("1 PUSH nat 5 leaves [nat]", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat 5`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		n, ok := st.Len()
		require.True(t, ok)
		assert.Equal(t, 1, n)
		top, _ := st.Peek(0)
		assert.Equal(t, "nat", top.String())
	})

	t.Run("2 PUSH nat with a string literal is a ValueTypeMismatch", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat "asd"`)
		_, err := checker.TypeCheck(checker.Env{}, instrs, stack.New())
		require.Error(t, err)
		ce, ok := err.(*checker.Error)
		require.True(t, ok)
		assert.Equal(t, checker.ValueTypeMismatch, ce.Kind)
	})

	t.Run("3 PUSH nat 5; PUSH nat 5; ADD leaves [nat]", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat 5; PUSH nat 5; ADD`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		n, _ := st.Len()
		assert.Equal(t, 1, n)
		top, _ := st.Peek(0)
		assert.Equal(t, "nat", top.String())
	})

	t.Run("4 DROP past empty stack underflows", func(t *testing.T) {
		instrs := parseCode(t, `PUSH (pair nat nat) (Pair 2 3); DROP; DROP`)
		_, err := checker.TypeCheck(checker.Env{}, instrs, stack.New())
		require.Error(t, err)
		ce, ok := err.(*checker.Error)
		require.True(t, ok)
		assert.Equal(t, checker.StackUnderflow, ce.Kind)
	})

	t.Run("5 LAMBDA + EXEC leaves the lambda's output type", func(t *testing.T) {
		instrs := parseCode(t, `LAMBDA nat (pair nat nat) {DUP; PAIR}; PUSH nat 5; EXEC`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		n, _ := st.Len()
		assert.Equal(t, 1, n)
		top, _ := st.Peek(0)
		assert.Equal(t, "pair nat nat", top.String())
	})

	t.Run("6 IF branches disagreeing on type is a BranchDisagreement", func(t *testing.T) {
		instrs := parseCode(t, `PUSH bool True; IF {PUSH nat 5} {PUSH int 10}`)
		_, err := checker.TypeCheck(checker.Env{}, instrs, stack.New())
		require.Error(t, err)
		ce, ok := err.(*checker.Error)
		require.True(t, ok)
		assert.Equal(t, checker.BranchDisagreement, ce.Kind)
		require.Len(t, ce.Notes, 2)
		assert.Contains(t, ce.Notes[0], "nat")
		assert.Contains(t, ce.Notes[1], "int")
		require.Len(t, ce.Stack, 1, "the stack snapshot is taken just before IF runs, with its bool scrutinee still on top")
		assert.Equal(t, "bool", ce.Stack[0])
	})

	t.Run("7 ITER over a list literal drains it to empty", func(t *testing.T) {
		instrs := parseCode(t, `PUSH (list nat) {5;6}; ITER {DROP}`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		n, _ := st.Len()
		assert.Equal(t, 0, n)
	})

	t.Run("8 IF on a non-bool top is a TypeMismatch", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat 1; IF {} {}`)
		_, err := checker.TypeCheck(checker.Env{}, instrs, stack.New())
		require.Error(t, err)
		ce, ok := err.(*checker.Error)
		require.True(t, ok)
		assert.Equal(t, checker.TypeMismatch, ce.Kind)
	})
}

// TestBoundaryCases covers spec §8's named boundary cases beyond the main
// scenario table.
func TestBoundaryCases(t *testing.T) {
	t.Run("empty list literal", func(t *testing.T) {
		instrs := parseCode(t, `PUSH (list nat) {}`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		top, _ := st.Peek(0)
		assert.Equal(t, "list nat", top.String())
	})

	t.Run("empty map literal", func(t *testing.T) {
		instrs := parseCode(t, `PUSH (map nat nat) {}`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		top, _ := st.Peek(0)
		assert.Equal(t, "map nat nat", top.String())
	})

	t.Run("FAILWITH in one IF branch keeps the other branch's stack", func(t *testing.T) {
		instrs := parseCode(t, `PUSH bool True; IF {PUSH nat 5} {PUSH nat 0; FAILWITH}`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		n, _ := st.Len()
		assert.Equal(t, 1, n)
		top, _ := st.Peek(0)
		assert.Equal(t, "nat", top.String())
	})

	t.Run("DIP 0 is forbidden", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat 1; DIP 0 {PUSH nat 2}`)
		_, err := checker.TypeCheck(checker.Env{}, instrs, stack.New())
		require.Error(t, err)
		ce, ok := err.(*checker.Error)
		require.True(t, ok)
		assert.Equal(t, checker.InvalidInstructionForm, ce.Kind)
	})

	t.Run("PAIR 1 is forbidden", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat 1; PAIR 1`)
		_, err := checker.TypeCheck(checker.Env{}, instrs, stack.New())
		require.Error(t, err)
		ce, ok := err.(*checker.Error)
		require.True(t, ok)
		assert.Equal(t, checker.InvalidInstructionForm, ce.Kind)
	})

	t.Run("GET 0 is identity", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat 5; GET 0`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		top, _ := st.Peek(0)
		assert.Equal(t, "nat", top.String())
	})

	t.Run("bare GET dispatches to the schema-driven map accessor", func(t *testing.T) {
		instrs := parseCode(t, `PUSH (map nat nat) {}; PUSH nat 1; GET`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		top, _ := st.Peek(0)
		assert.Equal(t, "option nat", top.String())
	})

	t.Run("deep right-nested PAIR 5 and matching UNPAIR 5 round-trip", func(t *testing.T) {
		instrs := parseCode(t, `PUSH nat 1; PUSH nat 2; PUSH nat 3; PUSH nat 4; PUSH nat 5; PAIR 5; UNPAIR 5`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		n, _ := st.Len()
		assert.Equal(t, 5, n)
	})

	t.Run("LAMBDA_REC body referencing itself", func(t *testing.T) {
		// The body starts from [input; self-lambda(input,output)] (shuffle.go's
		// lambdaRec), so a body of just EXEC applies the lambda to itself at
		// the type level — the minimal body that actually uses the self
		// reference rather than discarding it.
		instrs := parseCode(t, `LAMBDA_REC nat nat {EXEC}`)
		st := stack.New()
		_, err := checker.TypeCheck(checker.Env{}, instrs, st)
		require.NoError(t, err)
		top, _ := st.Peek(0)
		assert.Equal(t, "lambda nat nat", top.String())
	})
}
