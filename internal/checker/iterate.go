package checker

import (
	"fmt"

	"tzcheck/internal/ast"
	"tzcheck/internal/stack"
	"tzcheck/internal/types"
)

// iter type-checks ITER: the body runs once per element, starting from
// elem :: tail and required to restore exactly tail (spec §4.7). Ports
// ensure_iter_body. When the scrutinee can't be inspected because the
// incoming stack is already Failed, elem stays the zero GType and every
// stack mutation on it is a no-op (internal/stack's Failed invariant), so
// the body is still genuinely type-checked — an intentional broadening from
// the reference's short-circuit-to-synthetic-FAIL behavior; see DESIGN.md.
func (tc *typeChecker) iter(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	var elem types.GType
	if top, ok := st.Peek(0); ok {
		switch top.Shape {
		case types.ShapeList, types.ShapeSet:
			elem = *top.Elem
		case types.ShapeMap:
			elem = types.NewPair(*top.Left, *top.Right)
		default:
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("ITER requires a list, set or map, found %s", top)}
		}
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "ITER requires a non-empty stack"}
	}
	tail := st.Tail()
	expected := tail.Clone()
	start := tail.Clone()
	start.Push(elem)

	typed, err := tc.typeCheck(instr.Body, start)
	if err != nil {
		return nil, err
	}
	if stack.Compare(start, expected) == stack.NoMatch {
		return nil, &Error{Kind: BranchDisagreement, Pos: instr.Pos, Message: "ITER body has unexpected type"}
	}
	st.Assign(expected)
	return &TypedInstruction{Pos: instr.Pos, Kind: ast.IIter, Body: typed}, nil
}

// mapInstr type-checks MAP: the body runs once per element, starting from
// elem :: tail, must leave exactly one value atop an otherwise unchanged
// tail, and that value is rewrapped in the same container shape the
// scrutinee had. Ports ensure_map_body.
func (tc *typeChecker) mapInstr(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	const (
		asList = iota
		asOption
		asMap
	)
	var elem, mapKey types.GType
	kind := asList
	if top, ok := st.Peek(0); ok {
		switch top.Shape {
		case types.ShapeList:
			elem, kind = *top.Elem, asList
		case types.ShapeOption:
			elem, kind = *top.Elem, asOption
		case types.ShapeMap:
			elem, kind, mapKey = types.NewPair(*top.Left, *top.Right), asMap, *top.Left
		default:
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("MAP requires a list, option or map, found %s", top)}
		}
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "MAP requires a non-empty stack"}
	}
	tail := st.Tail()
	expectedTail := tail.Clone()
	start := tail.Clone()
	start.Push(elem)

	typed, err := tc.typeCheck(instr.Body, start)
	if err != nil {
		return nil, err
	}
	if start.IsFailed() {
		st.Assign(stack.Failed())
		return &TypedInstruction{Pos: instr.Pos, Kind: ast.IMap, Body: typed}, nil
	}
	u, ok := start.Pop()
	if !ok {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "MAP body must leave a value on the stack"}
	}
	if stack.Compare(start, expectedTail) == stack.NoMatch {
		return nil, &Error{Kind: BranchDisagreement, Pos: instr.Pos, Message: "MAP body must leave the rest of the stack unchanged"}
	}
	var result types.GType
	switch kind {
	case asList:
		result = types.NewList(u)
	case asOption:
		result = types.NewOption(u)
	case asMap:
		result = types.NewMap(mapKey, u)
	}
	start.Push(result)
	st.Assign(start)
	return &TypedInstruction{Pos: instr.Pos, Kind: ast.IMap, Body: typed}, nil
}

// loop type-checks LOOP: the body starts from tail alone and must restore
// bool :: tail; the bool is then discarded, leaving tail.
//
// This departs from ensure_loop_body, which pushes a synthetic bool onto
// the body's *starting* stack (making it structurally identical to the
// stack before LOOP ran) and then compares that mutated stack against a
// target with no bool at all — a comparison that, for any body that doesn't
// itself push/pop exactly one stray element, can only ever be NoMatch; it
// conflates the body's entry stack with its required exit stack. spec.md
// §4.7 ("type-check body, which must restore the tail with bool on top;
// afterwards remove that bool") unambiguously describes the construction
// used here instead: start = tail, required exit = bool :: tail, final
// result = tail. Ported from the same function's structural skeleton
// (comparison via stack.Compare, any non-NoMatch verdict accepted) with
// that one fix. See DESIGN.md.
func (tc *typeChecker) loop(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	if top, ok := st.Peek(0); ok {
		if !(top.Shape == types.ShapeAtomic && top.Atom == types.Bool) {
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("LOOP requires bool, found %s", top)}
		}
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "LOOP requires a non-empty stack"}
	}
	tail := st.Tail()
	bodyStack := tail.Clone()
	typed, err := tc.typeCheck(instr.Body, bodyStack)
	if err != nil {
		return nil, err
	}
	expectedPost := tail.Clone()
	expectedPost.Push(types.NewAtomic(types.Bool))
	if stack.Compare(bodyStack, expectedPost) == stack.NoMatch {
		return nil, &Error{Kind: BranchDisagreement, Pos: instr.Pos, Message: "LOOP body has unexpected type"}
	}
	st.Assign(tail)
	return &TypedInstruction{Pos: instr.Pos, Kind: ast.ILoop, Body: typed}, nil
}

// loopLeft type-checks LOOP_LEFT: the body starts from left :: tail and
// must restore or(left, right) :: tail; on exit the or is replaced by
// right, leaving right :: tail. Ported faithfully from
// ensure_loop_left_body, which (unlike plain LOOP's ensure_loop_body) keeps
// the body's starting stack and its required-exit stack as two distinct
// values and is internally consistent.
func (tc *typeChecker) loopLeft(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	var left, right types.GType
	if top, ok := st.Peek(0); ok {
		if top.Shape != types.ShapeOr {
			return nil, &Error{Kind: TypeMismatch, Pos: instr.Pos, Message: fmt.Sprintf("LOOP_LEFT requires an or, found %s", top)}
		}
		left, right = *top.Left, *top.Right
	} else if !st.IsFailed() {
		return nil, &Error{Kind: StackUnderflow, Pos: instr.Pos, Message: "LOOP_LEFT requires a non-empty stack"}
	}
	tail := st.Tail()
	start := tail.Clone()
	start.Push(left)
	expectedPost := tail.Clone()
	expectedPost.Push(types.NewOr(left, right))

	typed, err := tc.typeCheck(instr.Body, start)
	if err != nil {
		return nil, err
	}
	if stack.Compare(start, expectedPost) == stack.NoMatch {
		return nil, &Error{Kind: BranchDisagreement, Pos: instr.Pos, Message: "LOOP_LEFT body has unexpected type"}
	}
	result := tail.Clone()
	result.Push(right)
	st.Assign(result)
	return &TypedInstruction{Pos: instr.Pos, Kind: ast.ILoopLeft, Body: typed}, nil
}
