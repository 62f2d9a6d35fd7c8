package forms

import (
	"fmt"
	"strings"
)

// Validation error codes attached to ValidationError.Code.
const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
	CodeRange    = "range"
	CodeLength   = "length"
	CodeChoice   = "choice"
)

// ValidationError reports a conversion or constraint failure for a single
// field value. It is recovered locally into per-field message lists and never
// aborts a form-wide validation pass.
type ValidationError struct {
	Message string
	Code    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewConversionError marks raw input that cannot be parsed into the field's
// domain type.
func NewConversionError(format string, args ...any) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
		Code:    CodeInvalid,
	}
}

// FieldError reports a structural field misconfiguration, such as a field
// kind with no registered widget factory. These are build-time failures: a
// caller that hits one must refuse to start, not limp along.
type FieldError struct {
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return "forms: " + e.Message
}

// CompositionError reports a structural failure while flattening a form
// definition: composing something that is not a resolved definition, or a
// field-name collision. Raised at definition time, never deferred to
// instantiation.
type CompositionError struct {
	// Name carries the offending identifier when one is known (for example
	// the duplicated field name).
	Name    string
	Message string
}

// Error implements the error interface.
func (e *CompositionError) Error() string {
	return "forms: " + e.Message
}

// AmbiguousFieldError is returned by the two-tier lookup when an unqualified
// name matches more than one flattened field. Unlike the other structural
// errors it surfaces at call time; the caller reacts by supplying a
// qualified name.
type AmbiguousFieldError struct {
	Query      string
	Candidates []string // qualified names, sorted
}

// Error implements the error interface.
func (e *AmbiguousFieldError) Error() string {
	return fmt.Sprintf("forms: field %q is ambiguous, could be: %s; use the full qualified name to disambiguate",
		e.Query, strings.Join(e.Candidates, ", "))
}
