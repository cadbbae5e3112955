package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tzcheck/internal/ast"
	"tzcheck/internal/checker"
	"tzcheck/internal/parser"
)

func TestFormatErrorIncludesLocationAndCode(t *testing.T) {
	source := "parameter nat;\nstorage nat;\ncode { DROPP }"
	reporter := NewReporter("test.tz", source)

	err := FromCheckerError(&checker.Error{
		Kind:    checker.UnknownInstruction,
		Pos:     ast.Position{Filename: "test.tz", Line: 3, Column: 8},
		Message: `instruction "DROPP" not found`,
	})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+CodeUnknownInstruction+"]")
	assert.Contains(t, formatted, "DROPP")
	assert.Contains(t, formatted, "test.tz:3:8")
}

func TestFromCheckerErrorSuggestsSimilarMnemonic(t *testing.T) {
	err := FromCheckerError(&checker.Error{
		Kind:    checker.UnknownInstruction,
		Pos:     ast.Position{Line: 1, Column: 1},
		Message: `instruction "DROPP" not found`,
	})

	assert.Equal(t, CodeUnknownInstruction, err.Code)
	if assert.Len(t, err.Suggestions, 1) {
		assert.Contains(t, err.Suggestions[0].Message, `"DROP"`)
	}
}

func TestFromCheckerErrorCodeMapping(t *testing.T) {
	cases := []struct {
		kind checker.ErrorKind
		code string
	}{
		{checker.StackUnderflow, CodeStackUnderflow},
		{checker.TypeMismatch, CodeTypeMismatch},
		{checker.AttributeViolation, CodeAttributeViolation},
		{checker.BranchDisagreement, CodeBranchDisagreement},
		{checker.ValueTypeMismatch, CodeValueTypeMismatch},
		{checker.InvalidInstructionForm, CodeInvalidInstructionForm},
	}
	for _, c := range cases {
		err := FromCheckerError(&checker.Error{Kind: c.kind, Message: "boom"})
		assert.Equal(t, c.code, err.Code)
	}
}

func TestFromParseError(t *testing.T) {
	pe := parser.ParseError{Message: "unexpected token", Position: ast.Position{Line: 1, Column: 1}}
	err := FromParseError(pe)
	assert.Equal(t, CodeSyntaxError, err.Code)
	assert.Equal(t, "unexpected token", err.Message)
}

func TestFormatErrorRendersNotesHelpAndStack(t *testing.T) {
	reporter := NewReporter("test.tz", "code { IF {} {} }")
	err := CompilerError{
		Level:    LevelError,
		Message:  "IF branches produce different stacks",
		Position: ast.Position{Line: 1, Column: 1},
		Notes:    []string{"first branch leaves: [nat]", "second branch leaves: []"},
		HelpText: "make both branches leave the same stack shape",
		Stack:    []string{"nat", "bool"},
	}
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "note:")
	assert.Contains(t, formatted, "first branch leaves: [nat]")
	assert.Contains(t, formatted, "help:")
	assert.Contains(t, formatted, "make both branches leave the same stack shape")
	assert.Contains(t, formatted, "stack (top first):")
	assert.Contains(t, formatted, "nat")
	assert.Contains(t, formatted, "bool")
}

func TestFormatErrorOmitsStackBlockWhenEmpty(t *testing.T) {
	reporter := NewReporter("test.tz", "code { DROP }")
	err := CompilerError{Level: LevelError, Message: "stack underflow", Position: ast.Position{Line: 1, Column: 1}}
	formatted := reporter.FormatError(err)
	assert.NotContains(t, formatted, "stack (top first):")
}

func TestFromCheckerErrorCarriesNotesStackAndHelp(t *testing.T) {
	err := FromCheckerError(&checker.Error{
		Kind:    checker.BranchDisagreement,
		Pos:     ast.Position{Line: 1, Column: 1},
		Message: "IF branches produce different stacks",
		Notes:   []string{"first branch leaves: [nat]", "second branch leaves: []"},
		Stack:   []string{"bool"},
	})

	assert.Equal(t, []string{"first branch leaves: [nat]", "second branch leaves: []"}, err.Notes)
	assert.Equal(t, []string{"bool"}, err.Stack)
	assert.NotEmpty(t, err.HelpText)
}

func TestFromCheckerErrorLeavesHelpEmptyForKindsWithoutOne(t *testing.T) {
	err := FromCheckerError(&checker.Error{Kind: checker.StackUnderflow, Message: "boom"})
	assert.Empty(t, err.HelpText)
}

func TestWarningFormatting(t *testing.T) {
	reporter := NewReporter("test.tz", "code { DROP }")
	err := CompilerError{Level: LevelWarning, Message: "unreachable code after FAILWITH", Position: ast.Position{Line: 1, Column: 1}}
	formatted := reporter.FormatError(err)
	assert.Contains(t, formatted, "warning:")
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("DROP", "DROP"))
	assert.Equal(t, 1, levenshteinDistance("DROP", "DROPP"))
	assert.Equal(t, 1, levenshteinDistance("DUP", "DU"))
}

func TestFindSimilarNames(t *testing.T) {
	candidates := []string{"DROP", "DUP", "SWAP", "GET", "UPDATE"}
	similar := findSimilarNames("DROPP", candidates)
	assert.Contains(t, similar, "DROP")
	assert.NotContains(t, similar, "SWAP")
}

func TestMarkerSpacing(t *testing.T) {
	reporter := NewReporter("test.tz", "code { DROP }")
	marker := reporter.marker(5, 4, LevelError)
	assert.Equal(t, 4, strings.Count(marker, " "))
	assert.Equal(t, 4, strings.Count(marker, "^"))
}
