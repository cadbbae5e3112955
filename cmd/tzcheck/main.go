// Command tzcheck type-checks a single contract file and reports the first
// failure found, formatted the way internal/diagnostics renders it (spec
// §6, §7). Grounded on the teacher's cmd/kanso-cli/main.go: same
// read-file/parse/report shape, with the teacher's own hand-rolled caret
// printer replaced by internal/diagnostics.Reporter, and a checker pass
// added after the parse succeeds since this CLI's job is type-checking,
// not merely parsing.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"tzcheck/internal/checker"
	"tzcheck/internal/diagnostics"
	"tzcheck/internal/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: tzcheck <file.tz>")
		os.Exit(1)
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	contract, err := parser.ParseSource(path, string(source))
	if err != nil {
		report(path, string(source), err)
		os.Exit(1)
	}

	if _, err := checker.TypeCheckContract(contract); err != nil {
		report(path, string(source), err)
		os.Exit(1)
	}

	color.Green("%s type-checks", path)
}

func report(path, source string, err error) {
	reporter := diagnostics.NewReporter(path, source)

	switch e := err.(type) {
	case parser.ParseError:
		fmt.Print(reporter.FormatError(diagnostics.FromParseError(e)))
	case *checker.Error:
		fmt.Print(reporter.FormatError(diagnostics.FromCheckerError(e)))
	default:
		color.Red("%s: %s", path, err)
	}
}
