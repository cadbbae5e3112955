package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnoseValidContractReturnsNoDiagnostics(t *testing.T) {
	src := "parameter nat; storage nat; code { CDR; NIL operation; PAIR };"
	diags := Diagnose("ok.tz", src)
	assert.Empty(t, diags)
}

func TestDiagnoseSyntaxErrorReturnsOneDiagnosticFromParser(t *testing.T) {
	src := "parameter unit; storage unit; code { IF {PUSH nat 1} };"
	diags := Diagnose("bad.tz", src)
	require.Len(t, diags, 1)
	assert.Equal(t, "tzcheck-parser", *diags[0].Source)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
}

func TestDiagnoseCheckerErrorReturnsOneDiagnosticFromChecker(t *testing.T) {
	src := "parameter unit; storage unit; code { DROP };"
	diags := Diagnose("underflow.tz", src)
	require.Len(t, diags, 1)
	assert.Equal(t, "tzcheck-checker", *diags[0].Source)
}

func TestSpanFromConvertsToZeroBasedLSPRange(t *testing.T) {
	r := spanFrom(1, 1, 1)
	assert.Equal(t, uint32(0), r.Start.Line)
	assert.Equal(t, uint32(0), r.Start.Character)
	assert.Equal(t, uint32(1), r.End.Character)
}

func TestSpanFromHandlesLineZero(t *testing.T) {
	r := spanFrom(0, 0, 1)
	assert.Equal(t, uint32(0), r.Start.Line)
	assert.Equal(t, uint32(0), r.Start.Character)
}
