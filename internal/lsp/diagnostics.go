// Package lsp exposes tzcheck's parser and checker to an editor via
// glsp/LSP's textDocument/publishDiagnostics notification. Grounded on the
// teacher's internal/lsp package: same protocol_3_16 diagnostic shape and
// 0-based line/column conversion, rebuilt against this module's own
// single ParseError/Error types instead of the teacher's separate
// ParseError/ScanError pair (this parser never distinguishes a lexical
// failure from a grammatical one — participle reports both through one
// participle.Error).
package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tzcheck/internal/checker"
	"tzcheck/internal/parser"
)

const sourceParser = "tzcheck-parser"
const sourceChecker = "tzcheck-checker"

// Diagnose parses and type-checks source, returning every diagnostic an
// editor should show for it. Parsing and checking are sequential — there's
// nothing to type-check once parsing fails — so this never returns more
// than one diagnostic today, but callers should treat the result as a list
// since spec §7's "first failure only" policy is a checker property, not an
// LSP one.
func Diagnose(filename, source string) []protocol.Diagnostic {
	contract, err := parser.ParseSource(filename, source)
	if err != nil {
		if pe, ok := err.(parser.ParseError); ok {
			return []protocol.Diagnostic{ConvertParseError(pe)}
		}
		return []protocol.Diagnostic{{
			Range:    zeroRange(),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(sourceParser),
			Message:  err.Error(),
		}}
	}

	if _, err := checker.TypeCheckContract(contract); err != nil {
		if ce, ok := err.(*checker.Error); ok {
			return []protocol.Diagnostic{ConvertCheckError(ce)}
		}
		return []protocol.Diagnostic{{
			Range:    zeroRange(),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(sourceChecker),
			Message:  err.Error(),
		}}
	}

	return nil
}

// ConvertParseError transforms one parser.ParseError into an LSP diagnostic.
func ConvertParseError(pe parser.ParseError) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    spanFrom(pe.Position.Line, pe.Position.Column, 1),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(sourceParser),
		Message:  pe.Message,
	}
}

// ConvertCheckError transforms one checker.Error into an LSP diagnostic.
func ConvertCheckError(ce *checker.Error) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    spanFrom(ce.Pos.Line, ce.Pos.Column, 1),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(sourceChecker),
		Message:  ce.Kind.String() + ": " + ce.Message,
	}
}

// spanFrom builds a single-line LSP range from a 1-based line/column,
// converting to LSP's 0-based convention; width widens the default span a
// little for visibility since the checker/parser positions are single
// points, not ranges.
func spanFrom(line, column, width int) protocol.Range {
	l := uint32(0)
	if line > 0 {
		l = uint32(line - 1)
	}
	c := uint32(0)
	if column > 0 {
		c = uint32(column - 1)
	}
	return protocol.Range{
		Start: protocol.Position{Line: l, Character: c},
		End:   protocol.Position{Line: l, Character: c + uint32(width)},
	}
}

func zeroRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 1},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
