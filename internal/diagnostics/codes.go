package diagnostics

// Error codes for this type-checker, grounded on the teacher's own
// range-banded convention (internal/errors/codes.go): a contiguous block per
// concern, reported as error[Exxxx] alongside the message.
//
// E0001-E0099: parser (syntax/structural) errors
// E0100-E0199: checker errors (spec §7's ErrorKind set)
const (
	CodeSyntaxError = "E0001"

	CodeUnknownInstruction    = "E0100"
	CodeSchemaMismatch        = "E0101"
	CodeStackUnderflow        = "E0102"
	CodeTypeMismatch          = "E0103"
	CodeAttributeViolation    = "E0104"
	CodeBranchDisagreement    = "E0105"
	CodeValueTypeMismatch     = "E0106"
	CodeInvalidInstructionForm = "E0107"
)
