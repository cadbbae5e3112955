// Package ast is the parse-tree contract the external parser hands to the
// checker (spec §6): declared parameter/storage type syntax, literal value
// syntax, and the compound-instruction tree, all still carrying source
// positions for diagnostics. The checker never mutates these trees.
package ast

import "fmt"

// Position locates a node in source text, 1-indexed like the teacher's own
// ast.Position.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
