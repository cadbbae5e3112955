package checker

import (
	"fmt"
	"strings"

	"tzcheck/internal/ast"
	"tzcheck/internal/stack"
	"tzcheck/internal/types"
)

// reconcile merges two branch-outcome stacks (spec §4.7's reconciliation
// rule): the live one wins if exactly one branch diverged, either one wins
// if both agree, Failed wins if both diverged, and disagreement between two
// live stacks is an error. Ports the Match/LeftFailed/RightFailed/BothFailed
// handling repeated across ensure_if_cons_body / ensure_if_left_body /
// ensure_if_none_body / ensure_same_lambda_type.
func reconcile(pos ast.Position, name string, a, b *stack.Stack) (*stack.Stack, error) {
	switch stack.Compare(a, b) {
	case stack.Match, stack.RightFailed:
		return a, nil
	case stack.LeftFailed:
		return b, nil
	case stack.BothFailed:
		return stack.Failed(), nil
	default:
		return nil, &Error{
			Kind:    BranchDisagreement,
			Pos:     pos,
			Message: fmt.Sprintf("%s branches produce different stacks", name),
			Notes:   branchNotes(a, b),
		}
	}
}

// branchNotes renders the two disagreeing branch-outcome stacks side by
// side, one line per branch, so a BranchDisagreement diagnostic shows the
// actual shapes instead of just asserting they differ.
func branchNotes(a, b *stack.Stack) []string {
	return []string{
		fmt.Sprintf("first branch leaves: %s", describeStack(a)),
		fmt.Sprintf("second branch leaves: %s", describeStack(b)),
	}
}

func describeStack(st *stack.Stack) string {
	if st.IsFailed() {
		return "Failed"
	}
	lines := stackSnapshot(st)
	if len(lines) == 0 {
		return "[]"
	}
	return "[" + strings.Join(lines, " :: ") + "]"
}

// ifThenElse type-checks IF: both branches start from the tail beneath the
// scrutinee bool (spec §4.7).
func (tc *typeChecker) ifThenElse(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	if top, ok := st.Peek(0); ok {
		if !(top.Shape == types.ShapeAtomic && top.Atom == types.Bool) {
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("IF requires bool, found %s", top)}
		}
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "IF requires a non-empty stack"}
	}
	tail := st.Tail()
	tStack, fStack := tail.Clone(), tail.Clone()
	tTyped, err := tc.typeCheck(instr.Branch1, tStack)
	if err != nil {
		return nil, err
	}
	fTyped, err := tc.typeCheck(instr.Branch2, fStack)
	if err != nil {
		return nil, err
	}
	result, err := reconcile(instr.Pos, "IF", tStack, fStack)
	if err != nil {
		return nil, err
	}
	st.Assign(result)
	return &TypedInstruction{Pos: instr.Pos, Kind: ast.IIf, Branch1: tTyped, Branch2: fTyped}, nil
}

// ifCons type-checks IF_CONS: the cons branch starts from elem :: list elem
// :: tail, the nil branch from tail alone.
func (tc *typeChecker) ifCons(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	var elem types.GType
	if top, ok := st.Peek(0); ok {
		if top.Shape != types.ShapeList {
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("IF_CONS requires a list, found %s", top)}
		}
		elem = *top.Elem
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "IF_CONS requires a non-empty stack"}
	}
	tail := st.Tail()
	consStack := tail.Clone()
	consStack.Push(types.NewList(elem))
	consStack.Push(elem)
	nilStack := tail.Clone()

	consTyped, err := tc.typeCheck(instr.Branch1, consStack)
	if err != nil {
		return nil, err
	}
	nilTyped, err := tc.typeCheck(instr.Branch2, nilStack)
	if err != nil {
		return nil, err
	}
	result, err := reconcile(instr.Pos, "IF_CONS", consStack, nilStack)
	if err != nil {
		return nil, err
	}
	st.Assign(result)
	return &TypedInstruction{Pos: instr.Pos, Kind: ast.IIfCons, Branch1: consTyped, Branch2: nilTyped}, nil
}

// ifLeft type-checks IF_LEFT: the left branch starts from left :: tail, the
// right branch from right :: tail.
func (tc *typeChecker) ifLeft(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	var left, right types.GType
	if top, ok := st.Peek(0); ok {
		if top.Shape != types.ShapeOr {
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("IF_LEFT requires an or, found %s", top)}
		}
		left, right = *top.Left, *top.Right
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "IF_LEFT requires a non-empty stack"}
	}
	tail := st.Tail()
	lStack := tail.Clone()
	lStack.Push(left)
	rStack := tail.Clone()
	rStack.Push(right)

	lTyped, err := tc.typeCheck(instr.Branch1, lStack)
	if err != nil {
		return nil, err
	}
	rTyped, err := tc.typeCheck(instr.Branch2, rStack)
	if err != nil {
		return nil, err
	}
	result, err := reconcile(instr.Pos, "IF_LEFT", lStack, rStack)
	if err != nil {
		return nil, err
	}
	st.Assign(result)
	return &TypedInstruction{Pos: instr.Pos, Kind: ast.IIfLeft, Branch1: lTyped, Branch2: rTyped}, nil
}

// ifNoneSome type-checks both IF_NONE and IF_SOME: the some branch starts
// from elem :: tail, the none branch from tail alone. noneFirst selects
// which Branch field holds which per ast.Instruction's documented order
// (IIfNone = (none, some), IIfSome = (some, none)).
func (tc *typeChecker) ifNoneSome(instr *ast.Instruction, st *stack.Stack, noneFirst bool) (*TypedInstruction, error) {
	name := "IF_NONE"
	if !noneFirst {
		name = "IF_SOME"
	}
	var elem types.GType
	if top, ok := st.Peek(0); ok {
		if top.Shape != types.ShapeOption {
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("%s requires an option, found %s", name, top)}
		}
		elem = *top.Elem
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: fmt.Sprintf("%s requires a non-empty stack", name)}
	}
	tail := st.Tail()
	noneStack := tail.Clone()
	someStack := tail.Clone()
	someStack.Push(elem)

	var noneTyped, someTyped []*TypedInstruction
	var err error
	if noneFirst {
		noneTyped, err = tc.typeCheck(instr.Branch1, noneStack)
		if err != nil {
			return nil, err
		}
		someTyped, err = tc.typeCheck(instr.Branch2, someStack)
		if err != nil {
			return nil, err
		}
	} else {
		someTyped, err = tc.typeCheck(instr.Branch1, someStack)
		if err != nil {
			return nil, err
		}
		noneTyped, err = tc.typeCheck(instr.Branch2, noneStack)
		if err != nil {
			return nil, err
		}
	}
	first, second := noneStack, someStack
	if !noneFirst {
		first, second = someStack, noneStack
	}
	result, err := reconcile(instr.Pos, name, first, second)
	if err != nil {
		return nil, err
	}
	st.Assign(result)
	kind := ast.IIfNone
	branch1, branch2 := noneTyped, someTyped
	if !noneFirst {
		kind = ast.IIfSome
		branch1, branch2 = someTyped, noneTyped
	}
	return &TypedInstruction{Pos: instr.Pos, Kind: kind, Branch1: branch1, Branch2: branch2}, nil
}
