package diagnostics

import (
	"fmt"

	"github.com/funvibe/funcheck/internal/source"
)

// ErrorCode identifies a diagnostic kind. Codes are stable and user-visible.
type ErrorCode string

const (
	// Check errors (ErrC...)
	ErrC001 ErrorCode = "ErrC001" // redeclaration of an imported entity that was previously used
	ErrC002 ErrorCode = "ErrC002" // duplicate name
	ErrC003 ErrorCode = "ErrC003" // merging not yet supported for this declaration kind
	ErrC004 ErrorCode = "ErrC004" // function redefined
	ErrC005 ErrorCode = "ErrC005" // function signature mismatch on redeclaration

	// Loader errors (ErrL...)
	ErrL001 ErrorCode = "ErrL001" // imported entity not found in source unit
	ErrL002 ErrorCode = "ErrL002" // export cache unavailable

	// Unit description errors (ErrU...)
	ErrU001 ErrorCode = "ErrU001" // malformed unit directive
	ErrU002 ErrorCode = "ErrU002" // reference to unknown unit or name
	ErrU003 ErrorCode = "ErrU003" // duplicate unit name
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Note is an auxiliary message attached to a diagnostic, carrying its own
// location (e.g. "import used here" pointing at the recorded use site).
type Note struct {
	Loc     source.Location
	Message string
}

// DiagnosticError is a single reported problem with provenance.
type DiagnosticError struct {
	Code     ErrorCode
	Severity Severity
	Loc      source.Location
	Message  string
	Notes    []Note
}

// NewError creates an error-severity diagnostic.
func NewError(code ErrorCode, loc source.Location, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityError, Loc: loc, Message: message}
}

// NewWarning creates a warning-severity diagnostic.
func NewWarning(code ErrorCode, loc source.Location, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityWarning, Loc: loc, Message: message}
}

// WithNote attaches a note and returns the diagnostic for chaining.
func (e *DiagnosticError) WithNote(loc source.Location, message string) *DiagnosticError {
	e.Notes = append(e.Notes, Note{Loc: loc, Message: message})
	return e
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] %s: %s: %s", e.Code, e.Loc, e.Severity, e.Message)
}

// Emitter receives diagnostics. Emission is fire-and-forget: callers never
// inspect a result, and emitting never interrupts the analysis pass.
type Emitter interface {
	Emit(*DiagnosticError)
}
