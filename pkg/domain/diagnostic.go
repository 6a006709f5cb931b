package domain

import "fmt"

// DiagnosticCode classifies an authoring problem found during validation.
type DiagnosticCode string

const (
	DiagEmptyID            DiagnosticCode = "empty_id"
	DiagDuplicateID        DiagnosticCode = "duplicate_id"
	DiagNoInitial          DiagnosticCode = "no_initial"
	DiagMultipleInitial    DiagnosticCode = "multiple_initial"
	DiagDanglingTransition DiagnosticCode = "dangling_transition"
	DiagUnknownVariant     DiagnosticCode = "unknown_variant"
	DiagUnknownCondition   DiagnosticCode = "unknown_condition"
	DiagUndeclaredParam    DiagnosticCode = "undeclared_parameter"
	DiagParamTypeMismatch  DiagnosticCode = "parameter_type_mismatch"
	DiagInvalidParameter   DiagnosticCode = "invalid_parameter"
	DiagUnreachable        DiagnosticCode = "unreachable_state"
)

// Diagnostic is a non-fatal authoring issue. Validation repairs what it can and
// reports what it did.
type Diagnostic struct {
	Code    DiagnosticCode
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Subject, d.Message)
}
