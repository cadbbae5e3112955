package ast

// Contract is the root the external parser produces: declared parameter and
// storage types, plus the instruction sequence (spec §6).
type Contract struct {
	Pos       Position
	Parameter *TypeExpr
	Storage   *TypeExpr
	Code      []*Instruction
}
