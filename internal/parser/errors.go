package parser

import (
	"fmt"

	"tzcheck/internal/ast"
)

// ParseError is a syntax or structural defect found while turning source
// text into an ast.Contract: either participle's own grammar-syntax
// rejection, or a structural check this package's converter makes before
// handing the tree to the checker (e.g. "DIG requires a numeric argument").
// Mirrors the shape of the teacher's own parser.ParseError (Message +
// Position), which internal/lsp converts into LSP diagnostics. Position
// reuses ast.Position directly rather than a second, parallel position type.
type ParseError struct {
	Message  string
	Position ast.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}
