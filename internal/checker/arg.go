package checker

import (
	"fmt"

	"tzcheck/internal/ast"
	"tzcheck/internal/attrs"
	"tzcheck/internal/schema"
	"tzcheck/internal/stack"
	"tzcheck/internal/types"
	"tzcheck/internal/unify"
	"tzcheck/internal/value"
)

// unifyArgs checks instrArgs against cons — a schema variant's static
// argument constraints — in order, binding every type-name/value argument's
// variable into cache as it goes. Ports unify_arg (spec §4.4).
func (tc *typeChecker) unifyArgs(pos ast.Position, instrArgs []*ast.Arg, cons []schema.Constraint, cache *unify.Cache) ([]TypedArg, error) {
	if len(instrArgs) != len(cons) {
		return nil, &Error{
			Kind:    InvalidInstructionForm,
			Pos:     pos,
			Message: fmt.Sprintf("expected %d argument(s), found %d", len(cons), len(instrArgs)),
		}
	}
	out := make([]TypedArg, len(instrArgs))
	for i, a := range instrArgs {
		con := cons[i]
		switch {
		case a.Type != nil:
			if con.Kind != schema.KTypeArg {
				return nil, &Error{Kind: InvalidInstructionForm, Pos: a.Type.Pos, Message: "this argument is not a type name"}
			}
			given, err := ast.Resolve(a.Type)
			if err != nil {
				return nil, &Error{Kind: TypeMismatch, Pos: a.Type.Pos, Message: err.Error()}
			}
			if !attrs.CheckAll(con.Attrs, given) {
				return nil, &Error{
					Kind:    AttributeViolation,
					Pos:     a.Type.Pos,
					Message: fmt.Sprintf("%s does not satisfy the required attributes", given),
					Notes:   requiredAttributeNotes(given, con.Attrs),
				}
			}
			cache.Set(con.Var, given)
			out[i] = TypedArg{Type: &given}

		case a.Value != nil:
			target, err := tc.resolveArgTarget(a.Value.Pos, con, cache)
			if err != nil {
				return nil, err
			}
			tv, verr := value.CheckValue(tc.lambdaChecker(), a.Value, target)
			if verr != nil {
				return nil, &Error{Kind: ValueTypeMismatch, Pos: a.Value.Pos, Message: verr.Error()}
			}
			if uerr := unify.UnifyConcrete(cache, target, con); uerr != nil {
				return nil, &Error{Kind: TypeMismatch, Pos: a.Value.Pos, Message: uerr.Error()}
			}
			out[i] = TypedArg{Value: &tv}

		default:
			return nil, &Error{Kind: InvalidInstructionForm, Pos: pos, Message: "argument has neither a type name nor a value"}
		}
	}
	return out, nil
}

// resolveArgTarget turns a value argument's schema constraint into the
// concrete ground type that value must check against: either a direct
// reference to an already-bound variable (PUSH's first argument binds the
// variable CheckValue's second argument then resolves), or — for a
// constraint with no free variables at all — the type the constraint itself
// denotes.
func (tc *typeChecker) resolveArgTarget(pos ast.Position, con schema.Constraint, cache *unify.Cache) (types.GType, error) {
	if con.Kind == schema.KTypeArgRef {
		t, ok := cache.Get(con.Var)
		if !ok {
			return types.GType{}, &Error{Kind: InvalidInstructionForm, Pos: pos, Message: "internal error: type variable referenced before it was bound"}
		}
		return t, nil
	}
	t, ok := unify.ResolveConstraint(cache, con)
	if !ok {
		return types.GType{}, &Error{Kind: InvalidInstructionForm, Pos: pos, Message: "internal error: value argument's type could not be resolved"}
	}
	return t, nil
}

// lambdaChecker closes over tc so value.CheckValue can type-check a lambda
// literal's instruction body without internal/value importing
// internal/checker (spec §2's "F in turn reinvokes G").
func (tc *typeChecker) lambdaChecker() value.LambdaChecker {
	return func(body []*ast.Instruction, input types.GType) (types.GType, error) {
		st := stack.New(input)
		_, err := tc.typeCheck(body, st)
		if err != nil {
			return types.GType{}, err
		}
		if st.IsFailed() {
			return types.GType{}, fmt.Errorf("lambda body always fails")
		}
		n, _ := st.Len()
		if n != 1 {
			return types.GType{}, fmt.Errorf("lambda body must leave exactly one value on the stack, found %d", n)
		}
		top, _ := st.Peek(0)
		return top, nil
	}
}
