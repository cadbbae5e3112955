// Package diagnostics formats checker and parser failures the way a
// contract author reads them: a caret diagram against the offending line, a
// "did you mean" suggestion for a misspelled mnemonic, the type-attribute
// table or pair of branch stacks a checker.AttributeViolation or
// BranchDisagreement was reasoning about.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tzcheck/internal/ast"
)

// Level is the severity of a reported diagnostic. The checker itself only
// ever produces Error-level failures (spec §7: "the driver reports a single
// string describing the first failure"); Warning is reserved for future use
// by the LSP server (e.g. unreachable code after FAIL/FAILWITH).
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// CompilerError is a structured diagnostic with optional suggestions,
// notes, and a stack snapshot. Stack has no teacher counterpart: it
// carries the live type stack at the point a checker.Error fired (nil for
// parse errors, or for checker errors raised against a Failed stack), so a
// reader can see the exact shapes a BranchDisagreement or AttributeViolation
// was reasoning about without re-running the checker by hand.
type CompilerError struct {
	Level       Level
	Code        string
	Message     string
	Position    ast.Position
	Length      int
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
	Stack       []string
}

// Suggestion is one suggested fix attached to a CompilerError.
type Suggestion struct {
	Message     string
	Replacement string
	Position    ast.Position
	Length      int
}

// Reporter renders CompilerErrors against one source file.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter for filename/source.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// FormatError renders err as a multi-line, Rust-style caret diagram.
func (r *Reporter) FormatError(err CompilerError) string {
	var out strings.Builder

	levelColor := r.levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		out.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(err.Level)), err.Message))
	}

	width := r.lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)

	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Position.Line, err.Position.Column))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Position.Line > 1 && err.Position.Line-1 < len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, err.Position.Line-1)), dim("│"), r.lines[err.Position.Line-2]))
	}

	if err.Position.Line <= len(r.lines) && err.Position.Line > 0 {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, err.Position.Line)), dim("│"), r.lines[err.Position.Line-1]))
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), r.marker(err.Position.Column, err.Length, err.Level)))
	}

	if err.Position.Line < len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, err.Position.Line+1)), dim("│"), r.lines[err.Position.Line]))
	}

	if len(err.Suggestions) > 0 {
		out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		cyan := color.New(color.FgCyan).SprintFunc()
		for i, s := range err.Suggestions {
			if i == 0 {
				out.WriteString(fmt.Sprintf("%s %s %s: %s\n", indent, cyan("help"), cyan("try"), s.Message))
			} else {
				out.WriteString(fmt.Sprintf("%s %s %s\n", indent, cyan("    "), s.Message))
			}
			if s.Replacement != "" {
				out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
				replacement := strings.ReplaceAll(s.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
				out.WriteString(fmt.Sprintf("%s %s %s\n", indent, cyan("│"), cyan(replacement)))
			}
		}
	}

	for _, note := range err.Notes {
		blue := color.New(color.FgBlue).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), blue("note:"), note))
	}

	if err.HelpText != "" {
		green := color.New(color.FgGreen).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), green("help:"), err.HelpText))
	}

	if len(err.Stack) > 0 {
		magenta := color.New(color.FgMagenta).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), magenta("stack (top first):")))
		for _, line := range err.Stack {
			out.WriteString(fmt.Sprintf("%s %s   %s\n", indent, dim("│"), magenta(line)))
		}
	}

	out.WriteString("\n")
	return out.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == LevelWarning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return spaces + markerColor(strings.Repeat("^", length))
}

func (r *Reporter) lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
