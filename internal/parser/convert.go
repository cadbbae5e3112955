package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"tzcheck/internal/ast"
)

// converter lowers the participle grammar tree into internal/ast's
// checker-facing shapes, resolving the small structural ambiguities the
// grammar leaves open (an N argument's default, which kind of thing a brace
// sequence denotes) that participle itself can't express as a context-free
// rule.
type converter struct {
	filename string
}

func (c *converter) pos(lp lexer.Position) ast.Position {
	return ast.Position{Filename: c.filename, Line: lp.Line, Column: lp.Column}
}

func (c *converter) file(f *File) (*ast.Contract, error) {
	param, err := c.typeExpr(f.Parameter)
	if err != nil {
		return nil, err
	}
	storage, err := c.typeExpr(f.Storage)
	if err != nil {
		return nil, err
	}
	code, err := c.block(f.Code)
	if err != nil {
		return nil, err
	}
	return &ast.Contract{Pos: c.pos(f.Pos), Parameter: param, Storage: storage, Code: code}, nil
}

func (c *converter) typeExpr(t *TypeExpr) (*ast.TypeExpr, error) {
	if t.Group != nil {
		g := t.Group
		args := make([]*ast.TypeExpr, 0, len(g.Args))
		for _, a := range g.Args {
			at, err := c.typeExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, at)
		}
		return &ast.TypeExpr{Pos: c.pos(g.Pos), Name: g.Name, Args: args}, nil
	}
	a := t.Atom
	return &ast.TypeExpr{Pos: c.pos(a.Pos), Name: a.Name}, nil
}

func (c *converter) block(b *Block) ([]*ast.Instruction, error) {
	out := make([]*ast.Instruction, 0, len(b.Instrs))
	for _, in := range b.Instrs {
		ci, err := c.instr(in)
		if err != nil {
			return nil, err
		}
		out = append(out, ci)
	}
	return out, nil
}

func (c *converter) ifArm(pos ast.Position, kind ast.InstrKind, arm *IfArm) (*ast.Instruction, error) {
	b1, err := c.block(arm.Branch1)
	if err != nil {
		return nil, err
	}
	b2, err := c.block(arm.Branch2)
	if err != nil {
		return nil, err
	}
	return &ast.Instruction{Pos: pos, Kind: kind, Branch1: b1, Branch2: b2}, nil
}

func (c *converter) bodyInstr(pos ast.Position, kind ast.InstrKind, b *Block) (*ast.Instruction, error) {
	body, err := c.block(b)
	if err != nil {
		return nil, err
	}
	return &ast.Instruction{Pos: pos, Kind: kind, Body: body}, nil
}

// nArg resolves an optional numeric argument against its default, or
// reports a structural error (spec §7's InvalidInstructionForm) when the
// mnemonic requires one it didn't get (DIG/DUG have no sensible default).
func (c *converter) nArg(pos ast.Position, kind ast.InstrKind, name string, n *NArg, def int64, required bool) (*ast.Instruction, error) {
	v := def
	if n.N != nil {
		v = *n.N
	} else if required {
		return nil, ParseError{Message: fmt.Sprintf("%s requires a numeric argument", name), Position: pos}
	}
	return &ast.Instruction{Pos: pos, Kind: kind, N: int(v)}, nil
}

// getOrUpdate resolves GET/UPDATE's genuine Michelson overload: written with
// a static numeric literal ("GET 3", "UPDATE 2") it's the compound pair-field
// accessor (ast.IGet/ast.IUpdate, dispatched by internal/checker/shuffle.go);
// written bare ("GET;", "UPDATE;") it's the schema-driven map/big_map/set
// form (ast.IOther, dispatched against the schema registry's stack-based
// key+container entries for this name). The presence of the literal, not a
// default value, is what the grammar can't decide on its own.
func (c *converter) getOrUpdate(pos ast.Position, kind ast.InstrKind, name string, n *NArg) (*ast.Instruction, error) {
	if n.N == nil {
		return &ast.Instruction{Pos: pos, Kind: ast.IOther, Name: name}, nil
	}
	return &ast.Instruction{Pos: pos, Kind: kind, N: int(*n.N)}, nil
}

func (c *converter) instr(in *Instr) (*ast.Instruction, error) {
	pos := c.pos(in.Pos)
	switch {
	case in.If != nil:
		return c.ifArm(pos, ast.IIf, in.If)
	case in.IfCons != nil:
		return c.ifArm(pos, ast.IIfCons, in.IfCons)
	case in.IfLeft != nil:
		return c.ifArm(pos, ast.IIfLeft, in.IfLeft)
	case in.IfNone != nil:
		return c.ifArm(pos, ast.IIfNone, in.IfNone)
	case in.IfSome != nil:
		return c.ifArm(pos, ast.IIfSome, in.IfSome)
	case in.Iter != nil:
		return c.bodyInstr(pos, ast.IIter, in.Iter)
	case in.Map != nil:
		return c.bodyInstr(pos, ast.IMap, in.Map)
	case in.Loop != nil:
		return c.bodyInstr(pos, ast.ILoop, in.Loop)
	case in.LoopLeft != nil:
		return c.bodyInstr(pos, ast.ILoopLeft, in.LoopLeft)
	case in.Dip != nil:
		n := int64(1)
		if in.Dip.N != nil {
			n = *in.Dip.N
		}
		body, err := c.block(in.Dip.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Instruction{Pos: pos, Kind: ast.IDip, N: int(n), Body: body}, nil
	case in.Dup != nil:
		return c.nArg(pos, ast.IDup, "DUP", in.Dup, 1, false)
	case in.Drop != nil:
		return c.nArg(pos, ast.IDrop, "DROP", in.Drop, 1, false)
	case in.Dig != nil:
		return c.nArg(pos, ast.IDig, "DIG", in.Dig, 0, true)
	case in.Dug != nil:
		return c.nArg(pos, ast.IDug, "DUG", in.Dug, 0, true)
	case in.Pair != nil:
		return c.nArg(pos, ast.IPair, "PAIR", in.Pair, 2, false)
	case in.Unpair != nil:
		return c.nArg(pos, ast.IUnpair, "UNPAIR", in.Unpair, 2, false)
	case in.Get != nil:
		return c.getOrUpdate(pos, ast.IGet, "GET", in.Get)
	case in.Update != nil:
		return c.getOrUpdate(pos, ast.IUpdate, "UPDATE", in.Update)
	case in.LambdaRec != nil:
		inT, err := c.typeExpr(in.LambdaRec.In)
		if err != nil {
			return nil, err
		}
		outT, err := c.typeExpr(in.LambdaRec.Out)
		if err != nil {
			return nil, err
		}
		body, err := c.block(in.LambdaRec.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Instruction{Pos: pos, Kind: ast.ILambdaRec, LambdaIn: inT, LambdaOut: outT, Body: body}, nil
	case in.SelfKw:
		return &ast.Instruction{Pos: pos, Kind: ast.ISelf}, nil
	case in.FailKw:
		return &ast.Instruction{Pos: pos, Kind: ast.IFail}, nil
	case in.FailwithKw:
		return &ast.Instruction{Pos: pos, Kind: ast.IFailwith}, nil
	case in.Other != nil:
		return c.otherInstr(pos, in.Other)
	default:
		return nil, ParseError{Message: "internal error: empty instruction node", Position: pos}
	}
}

func (c *converter) otherInstr(pos ast.Position, o *OtherInstr) (*ast.Instruction, error) {
	args := make([]*ast.Arg, 0, len(o.Args))
	for _, a := range o.Args {
		arg, err := c.instrArg(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &ast.Instruction{Pos: pos, Kind: ast.IOther, Name: o.Name, Args: args}, nil
}

func (c *converter) instrArg(a *InstrArg) (*ast.Arg, error) {
	if a.Type != nil {
		t, err := c.typeExpr(a.Type)
		if err != nil {
			return nil, err
		}
		return &ast.Arg{Type: t}, nil
	}
	v, err := c.value(a.Value)
	if err != nil {
		return nil, err
	}
	return &ast.Arg{Value: v}, nil
}

func (c *converter) value(v *Value) (*ast.RawValue, error) {
	pos := c.pos(v.Pos)
	switch {
	case v.Group != nil:
		return c.value(v.Group)
	case v.Number != nil:
		return &ast.RawValue{Pos: pos, Kind: ast.RVNumber, Number: *v.Number}, nil
	case v.Str != nil:
		return &ast.RawValue{Pos: pos, Kind: ast.RVString, Str: unquote(*v.Str)}, nil
	case v.Bytes != nil:
		return &ast.RawValue{Pos: pos, Kind: ast.RVString, Str: *v.Bytes}, nil
	case v.True:
		return &ast.RawValue{Pos: pos, Kind: ast.RVBool, Bool: true}, nil
	case v.False:
		return &ast.RawValue{Pos: pos, Kind: ast.RVBool, Bool: false}, nil
	case v.UnitV:
		return &ast.RawValue{Pos: pos, Kind: ast.RVUnit}, nil
	case v.Pair != nil:
		a, err := c.value(v.Pair.A)
		if err != nil {
			return nil, err
		}
		b, err := c.value(v.Pair.B)
		if err != nil {
			return nil, err
		}
		return &ast.RawValue{Pos: pos, Kind: ast.RVPair, Left: a, Right: b}, nil
	case v.Left != nil:
		inner, err := c.value(v.Left)
		if err != nil {
			return nil, err
		}
		return &ast.RawValue{Pos: pos, Kind: ast.RVLeft, Left: inner}, nil
	case v.Right != nil:
		inner, err := c.value(v.Right)
		if err != nil {
			return nil, err
		}
		return &ast.RawValue{Pos: pos, Kind: ast.RVRight, Left: inner}, nil
	case v.Some != nil:
		inner, err := c.value(v.Some)
		if err != nil {
			return nil, err
		}
		return &ast.RawValue{Pos: pos, Kind: ast.RVSome, Left: inner}, nil
	case v.NoneV:
		return &ast.RawValue{Pos: pos, Kind: ast.RVNone}, nil
	case v.Seq != nil:
		return c.seqLit(v.Seq)
	default:
		return nil, ParseError{Message: "internal error: empty value node", Position: pos}
	}
}

// seqLit decides what a brace-delimited literal sequence denotes by
// inspecting its parsed items (spec §3: "distinguishing value sequences
// from code blocks is the parser's job"): any Elt entry makes it a
// map/big_map literal, any instruction makes it a lambda body, otherwise
// it's a list/set (or empty-container) literal.
func (c *converter) seqLit(s *SeqLit) (*ast.RawValue, error) {
	pos := c.pos(s.Pos)
	hasElt, hasInstr := false, false
	for _, item := range s.Items {
		if item.Elt != nil {
			hasElt = true
		}
		if item.Instr != nil {
			hasInstr = true
		}
	}
	if hasElt && hasInstr {
		return nil, ParseError{Message: "sequence mixes Elt entries with instructions", Position: pos}
	}

	switch {
	case hasElt:
		kvs := make([]ast.KV, 0, len(s.Items))
		for _, item := range s.Items {
			if item.Elt == nil {
				return nil, ParseError{Message: "expected Elt entry", Position: c.pos(item.Pos)}
			}
			k, err := c.value(item.Elt.Key)
			if err != nil {
				return nil, err
			}
			val, err := c.value(item.Elt.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ast.KV{Key: k, Value: val})
		}
		return &ast.RawValue{Pos: pos, Kind: ast.RVSeqKV, KVs: kvs}, nil

	case hasInstr:
		instrs := make([]*ast.Instruction, 0, len(s.Items))
		for _, item := range s.Items {
			if item.Instr == nil {
				return nil, ParseError{Message: "expected instruction", Position: c.pos(item.Pos)}
			}
			ci, err := c.instr(item.Instr)
			if err != nil {
				return nil, err
			}
			instrs = append(instrs, ci)
		}
		return &ast.RawValue{Pos: pos, Kind: ast.RVSeqInstrs, Instrs: instrs}, nil

	default:
		vals := make([]*ast.RawValue, 0, len(s.Items))
		for _, item := range s.Items {
			if item.Val == nil {
				return nil, ParseError{Message: "expected value", Position: c.pos(item.Pos)}
			}
			rv, err := c.value(item.Val)
			if err != nil {
				return nil, err
			}
			vals = append(vals, rv)
		}
		return &ast.RawValue{Pos: pos, Kind: ast.RVSeqValues, Seq: vals}, nil
	}
}

// unquote strips the surrounding double quotes and resolves backslash
// escapes in a lexed String token; participle hands us the raw lexeme
// including the quote characters.
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	inner := lexeme[1 : len(lexeme)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, inner[i])
			}
			continue
		}
		out = append(out, inner[i])
	}
	return string(out)
}
