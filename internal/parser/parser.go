package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"

	"tzcheck/internal/ast"
)

var grammarParser = buildParser()

// buildParser mirrors the teacher's internal/parser.buildParser: build once
// at package init, panic on a grammar construction error since that can
// only happen from a programming mistake in grammar.go, never from input.
func buildParser() *participle.Parser[File] {
	p, err := participle.Build[File](
		participle.Lexer(tzLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

var commentPattern = regexp.MustCompile(`#[^\n]*`)

// stripComments removes every "#" line comment before the grammar ever sees
// the source (spec §6: comments are "stripped before grammar application",
// not tokenized). Each comment is blanked out with spaces rather than
// deleted so every remaining token keeps its original line/column/offset.
func stripComments(source string) string {
	return commentPattern.ReplaceAllStringFunc(source, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}

// ParseFile reads path and parses it as a contract.
func ParseFile(path string) (*ast.Contract, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source (named filename, for diagnostics) into a
// Contract ready for internal/checker.TypeCheckContract (spec §6).
func ParseSource(filename, source string) (*ast.Contract, error) {
	f, err := grammarParser.ParseString(filename, stripComments(source))
	if err != nil {
		return nil, toParseError(filename, err)
	}
	c := &converter{filename: filename}
	return c.file(f)
}

// toParseError adapts participle's own error type to this package's
// ParseError so every caller — CLI, LSP, tests — deals with one error shape
// regardless of whether the failure was lexical/grammatical or structural.
func toParseError(filename string, err error) error {
	if pe, ok := err.(participle.Error); ok {
		p := pe.Position()
		return ParseError{
			Message:  pe.Message(),
			Position: ast.Position{Filename: filename, Line: p.Line, Column: p.Column},
		}
	}
	return ParseError{Message: err.Error(), Position: ast.Position{Filename: filename, Line: 1, Column: 1}}
}
