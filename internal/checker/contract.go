package checker

import (
	"fmt"

	"tzcheck/internal/ast"
	"tzcheck/internal/attrs"
	"tzcheck/internal/stack"
	"tzcheck/internal/types"
)

// TypeCheckContract type-checks a whole contract: it resolves and validates
// the declared parameter/storage types, seeds the stack with
// pair(parameter, storage), type-checks the code sequentially, and requires
// the terminal stack to be exactly [pair(list operation, storage)] (spec
// §4.8's five-step contract driver).
//
// The reference's typecheck_contract does not itself validate the
// parameter/storage attributes before running the body — it only resolves
// the declared types and seeds the stack. spec.md §4.8 names this
// validation as an explicit step, so it is added here rather than left
// implicit in whatever attribute violation the body might eventually (or
// might never) surface. Which attribute binds to which declaration is
// settled by what the host chain actually requires of a contract rather
// than by the prose's word order: the parameter is the type a transaction
// passes in, so it must be Passable; the storage is the type persisted
// between transactions, so it must be Storable. See DESIGN.md.
func TypeCheckContract(c *ast.Contract) (*TypedContract, error) {
	param, err := ast.Resolve(c.Parameter)
	if err != nil {
		return nil, &Error{Kind: TypeMismatch, Pos: c.Pos, Message: err.Error()}
	}
	storage, err := ast.Resolve(c.Storage)
	if err != nil {
		return nil, &Error{Kind: TypeMismatch, Pos: c.Pos, Message: err.Error()}
	}
	if !attrs.Check(attrs.Passable, param) {
		return nil, &Error{
			Kind:    AttributeViolation,
			Pos:     c.Pos,
			Message: fmt.Sprintf("parameter type %s is not passable", param),
			Notes:   attributeNotes(param),
		}
	}
	if !attrs.Check(attrs.Storable, storage) {
		return nil, &Error{
			Kind:    AttributeViolation,
			Pos:     c.Pos,
			Message: fmt.Sprintf("storage type %s is not storable", storage),
			Notes:   attributeNotes(storage),
		}
	}

	st := stack.New(types.NewPair(param, storage))
	env := Env{SelfType: param}
	typed, err := TypeCheck(env, c.Code, st)
	if err != nil {
		return nil, err
	}

	expected := types.NewPair(types.NewList(types.NewAtomic(types.Operation)), storage)
	if !st.CompareSingleton(expected) {
		return nil, &Error{Kind: TypeMismatch, Pos: c.Pos, Message: fmt.Sprintf("contract must terminate with exactly %s on the stack", expected)}
	}
	return &TypedContract{Parameter: param, Storage: storage, Code: typed}, nil
}
