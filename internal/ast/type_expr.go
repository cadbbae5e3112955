package ast

import (
	"fmt"

	"tzcheck/internal/types"
)

// TypeExpr is the surface syntax for a declared ground type: a lowercase
// name plus zero or more nested type arguments, e.g. "pair nat (list int)".
type TypeExpr struct {
	Pos  Position
	Name string
	Args []*TypeExpr
}

var containerArity = map[string]int{
	"nat": 0, "int": 0, "string": 0, "bytes": 0, "bool": 0, "mutez": 0,
	"unit": 0, "timestamp": 0, "address": 0, "key": 0, "key_hash": 0,
	"chain_id": 0, "signature": 0, "operation": 0,
	"list": 1, "set": 1, "option": 1, "contract": 1, "ticket": 1,
	"pair": 2, "or": 2, "lambda": 2, "map": 2, "big_map": 2,
}

var atomicNames = map[string]types.Atomic{
	"nat": types.Nat, "int": types.Int, "string": types.String,
	"bytes": types.Bytes, "bool": types.Bool, "mutez": types.Mutez,
	"unit": types.Unit, "timestamp": types.Timestamp, "address": types.Address,
	"key": types.Key, "key_hash": types.KeyHash, "chain_id": types.ChainID,
	"signature": types.Signature, "operation": types.Operation,
}

// Resolve turns surface syntax into a ground type, rejecting unknown type
// names and arity mismatches (e.g. "pair nat" with only one argument).
func Resolve(te *TypeExpr) (types.GType, error) {
	arity, known := containerArity[te.Name]
	if !known {
		return types.GType{}, fmt.Errorf("%s: unknown type %q", te.Pos, te.Name)
	}
	if len(te.Args) != arity {
		return types.GType{}, fmt.Errorf("%s: %q expects %d argument(s), found %d", te.Pos, te.Name, arity, len(te.Args))
	}
	if arity == 0 {
		return types.NewAtomic(atomicNames[te.Name]), nil
	}
	var args []types.GType
	for _, a := range te.Args {
		t, err := Resolve(a)
		if err != nil {
			return types.GType{}, err
		}
		args = append(args, t)
	}
	switch te.Name {
	case "list":
		return types.NewList(args[0]), nil
	case "set":
		return types.NewSet(args[0]), nil
	case "option":
		return types.NewOption(args[0]), nil
	case "contract":
		return types.NewContract(args[0]), nil
	case "ticket":
		return types.NewTicket(args[0]), nil
	case "pair":
		return types.NewPair(args[0], args[1]), nil
	case "or":
		return types.NewOr(args[0], args[1]), nil
	case "lambda":
		return types.NewLambda(args[0], args[1]), nil
	case "map":
		return types.NewMap(args[0], args[1]), nil
	case "big_map":
		return types.NewBigMap(args[0], args[1]), nil
	default:
		return types.GType{}, fmt.Errorf("%s: unknown type %q", te.Pos, te.Name)
	}
}
