package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"tzcheck/internal/checker"
	"tzcheck/internal/parser"
	"tzcheck/internal/schema"
)

// FromParseError turns a parser.ParseError into a reportable CompilerError.
func FromParseError(err parser.ParseError) CompilerError {
	return CompilerError{
		Level:    LevelError,
		Code:     CodeSyntaxError,
		Message:  err.Message,
		Position: err.Position,
		Length:   1,
	}
}

// FromCheckerError turns a checker.Error into a reportable CompilerError,
// adding an instruction-name suggestion for UnknownInstruction the way the
// teacher's UndefinedVariable/UndefinedFunction constructors do for
// identifiers (semantic_errors.go), just against the schema registry's
// mnemonic list plus keywordMnemonics instead of a symbol table.
func FromCheckerError(err *checker.Error) CompilerError {
	ce := CompilerError{
		Level:    LevelError,
		Code:     codeFor(err.Kind),
		Message:  err.Message,
		Position: err.Pos,
		Length:   1,
		Notes:    err.Notes,
		Stack:    err.Stack,
		HelpText: helpFor(err.Kind),
	}

	if err.Kind == checker.UnknownInstruction {
		if name := unknownName(err.Message); name != "" {
			candidates := append(append([]string{}, schema.Names()...), keywordMnemonics...)
			similar := findSimilarNames(name, candidates)
			switch {
			case len(similar) == 1:
				ce.Suggestions = append(ce.Suggestions, Suggestion{Message: fmt.Sprintf("did you mean %q?", similar[0])})
			case len(similar) > 1:
				sort.Strings(similar)
				ce.Suggestions = append(ce.Suggestions, Suggestion{
					Message: fmt.Sprintf("did you mean one of: %s?", strings.Join(quoteAll(similar), ", ")),
				})
			}
		}
	}

	return ce
}

// keywordMnemonics are the instructions the grammar parses through its own
// keyword arms, which therefore have no entry in schema.Names().
var keywordMnemonics = []string{
	"IF", "IF_CONS", "IF_LEFT", "IF_NONE", "IF_SOME", "ITER", "MAP", "LOOP",
	"LOOP_LEFT", "DIP", "DUP", "DROP", "DIG", "DUG", "PAIR", "UNPAIR",
	"LAMBDA_REC", "SELF", "FAIL", "FAILWITH",
}

// helpFor supplies the fix-it text a diagnostic's kind affords, for the
// kinds where there is a general-purpose suggestion beyond the message
// itself. Other kinds carry no HelpText: the message and notes already say
// everything there is to say about, e.g., a stack underflow.
func helpFor(kind checker.ErrorKind) string {
	switch kind {
	case checker.AttributeViolation:
		return "pick a type that satisfies every attribute listed above, or restructure the contract to avoid requiring this one here"
	case checker.BranchDisagreement:
		return "make both branches leave the same stack shape, e.g. by converting one side's result or re-annotating a polymorphic value"
	default:
		return ""
	}
}

func codeFor(kind checker.ErrorKind) string {
	switch kind {
	case checker.UnknownInstruction:
		return CodeUnknownInstruction
	case checker.SchemaMismatch:
		return CodeSchemaMismatch
	case checker.StackUnderflow:
		return CodeStackUnderflow
	case checker.TypeMismatch:
		return CodeTypeMismatch
	case checker.AttributeViolation:
		return CodeAttributeViolation
	case checker.BranchDisagreement:
		return CodeBranchDisagreement
	case checker.ValueTypeMismatch:
		return CodeValueTypeMismatch
	default:
		return CodeInvalidInstructionForm
	}
}

// unknownName pulls the quoted mnemonic back out of other.go's
// `instruction %q not found` message, since checker.Error carries only the
// rendered string, not the original instr.Name.
func unknownName(message string) string {
	start := strings.IndexByte(message, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(message[start+1:], '"')
	if end < 0 {
		return ""
	}
	return message[start+1 : start+1+end]
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}

// findSimilarNames and levenshteinDistance port the teacher's own fuzzy
// "did you mean" matcher (internal/errors/semantic_errors.go) verbatim in
// algorithm, retargeted here from identifier/symbol tables to instruction
// mnemonics.
func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
