package checker

import (
	"fmt"
	"strings"

	"tzcheck/internal/ast"
	"tzcheck/internal/schema"
	"tzcheck/internal/stack"
	"tzcheck/internal/unify"
)

// other type-checks a schema-driven instruction: it tries each of the
// instruction's polymorphic schemas in turn, on an independent cache and
// stack clone, committing the first variant whose arguments and stack
// prefix both unify. Ports typecheck_one's Other arm (spec §4.3, §4.7).
func (tc *typeChecker) other(instr *ast.Instruction, st *stack.Stack) (*TypedInstruction, error) {
	variants, ok := schema.Lookup(instr.Name)
	if !ok {
		return nil, &Error{Kind: UnknownInstruction, Pos: instr.Pos, Message: fmt.Sprintf("instruction %q not found", instr.Name)}
	}
	var failures []string
	for _, variant := range variants {
		cache := unify.NewCache()
		typedArgs, err := tc.unifyArgs(instr.Pos, instr.Args, variant.Args, cache)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		attempt := st.Clone()
		if err := unify.UnifyStackPrefix(cache, variant.Input, variant.Output, attempt); err != nil {
			failures = append(failures, err.Error())
			continue
		}
		st.Assign(attempt)
		return &TypedInstruction{Pos: instr.Pos, Kind: ast.IOther, Name: instr.Name, Args: typedArgs}, nil
	}
	return nil, &Error{
		Kind:    SchemaMismatch,
		Pos:     instr.Pos,
		Message: fmt.Sprintf("no schema for %s matched: %s", instr.Name, strings.Join(failures, "; ")),
	}
}
