package checker

import (
	"tzcheck/internal/ast"
	"tzcheck/internal/types"
	"tzcheck/internal/value"
)

// TypedArg is one statically-checked instruction argument: exactly one of
// Type (a resolved type-name argument) or Value (a checked literal) is set,
// mirroring ast.Arg (spec §3 "Compound instruction tree").
type TypedArg struct {
	Type  *types.GType
	Value *value.TValue
}

// TypedInstruction is one node of the type-checked instruction tree the
// driver produces. Only the fields relevant to Kind are populated, in the
// same shape as ast.Instruction.
type TypedInstruction struct {
	Pos  ast.Position
	Kind ast.InstrKind

	Name string
	Args []TypedArg

	N int

	Branch1 []*TypedInstruction
	Branch2 []*TypedInstruction
	Body    []*TypedInstruction

	LambdaIn  types.GType
	LambdaOut types.GType
}

// TypedContract is the result of type-checking a whole contract (spec §4.8).
type TypedContract struct {
	Parameter types.GType
	Storage   types.GType
	Code      []*TypedInstruction
}

// Env carries the ambient information a compound-instruction body needs
// beyond the symbolic stack itself: currently just the contract's own
// parameter type, which SELF pushes wrapped in `contract`.
type Env struct {
	SelfType types.GType
}
