package checker

import (
	"fmt"

	"tzcheck/internal/ast"
	"tzcheck/internal/stack"
	"tzcheck/internal/types"
)

type typeChecker struct {
	env Env
}

// TypeCheck type-checks instrs sequentially against st, mutating st in
// place exactly as each instruction's schema or compound-construct rule
// dictates, and returns the corresponding typed instruction tree. Ports
// typecheck (spec §4.7, §6).
func TypeCheck(env Env, instrs []*ast.Instruction, st *stack.Stack) ([]*TypedInstruction, error) {
	tc := &typeChecker{env: env}
	return tc.typeCheck(instrs, st)
}

func (tc *typeChecker) typeCheck(instrs []*ast.Instruction, st *stack.Stack) ([]*TypedInstruction, error) {
	out := make([]*TypedInstruction, 0, len(instrs))
	for _, instr := range instrs {
		typed, err := tc.one(instr, st)
		if err != nil {
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}

// stackSnapshot renders st top-to-bottom for attachment to a diagnostic. A
// Failed stack carries no useful shape, so it snapshots as nil.
func stackSnapshot(st *stack.Stack) []string {
	n, ok := st.Len()
	if !ok || n == 0 {
		return nil
	}
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		t, _ := st.Peek(i)
		lines[i] = t.String()
	}
	return lines
}

func (tc *typeChecker) one(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	snap := stackSnapshot(st)
	typed, err := tc.dispatch(instr, st)
	if err != nil {
		if ce, ok := err.(*Error); ok && ce.Stack == nil {
			ce.Stack = snap
		}
		return nil, err
	}
	return typed, nil
}

func (tc *typeChecker) dispatch(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	switch instr.Kind {
	case ast.IOther:
		return tc.other(instr, st)

	case ast.ISelf:
		st.Push(types.NewContract(tc.env.SelfType))
		return &TypedInstruction{Pos: instr.Pos, Kind: ast.ISelf}, nil

	case ast.IFail, ast.IFailwith:
		st.Fail()
		return &TypedInstruction{Pos: instr.Pos, Kind: instr.Kind}, nil

	case ast.IIf:
		return tc.ifThenElse(instr, st)
	case ast.IIfCons:
		return tc.ifCons(instr, st)
	case ast.IIfLeft:
		return tc.ifLeft(instr, st)
	case ast.IIfNone:
		return tc.ifNoneSome(instr, st, true)
	case ast.IIfSome:
		return tc.ifNoneSome(instr, st, false)

	case ast.IIter:
		return tc.iter(instr, st)
	case ast.IMap:
		return tc.mapInstr(instr, st)
	case ast.ILoop:
		return tc.loop(instr, st)
	case ast.ILoopLeft:
		return tc.loopLeft(instr, st)

	case ast.IDip:
		return tc.dip(instr, st)
	case ast.IDup:
		return tc.dup(instr, st)
	case ast.IDrop:
		return tc.drop(instr, st)
	case ast.IDig:
		return tc.dig(instr, st)
	case ast.IDug:
		return tc.dug(instr, st)
	case ast.IPair:
		return tc.pair(instr, st)
	case ast.IUnpair:
		return tc.unpair(instr, st)
	case ast.IGet:
		return tc.get(instr, st)
	case ast.IUpdate:
		return tc.update(instr, st)

	case ast.ILambdaRec:
		return tc.lambdaRec(instr, st)

	default:
		return nil, &Error{Kind: InvalidInstructionForm, Pos: instr.Pos, Message: fmt.Sprintf("internal error: unhandled instruction kind %v", instr.Kind)}
	}
}
