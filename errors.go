package chquery

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes validation failures.
type ErrorCode string

const (
	// ErrCodeMalformedIdentifier indicates a qualified identifier whose
	// segments fall outside the strict identifier character class.
	ErrCodeMalformedIdentifier ErrorCode = "MALFORMED_IDENTIFIER"

	// ErrCodeUnsupportedOperator indicates an operator used in a position
	// it cannot be lowered from, such as a bare column-less comparison.
	ErrCodeUnsupportedOperator ErrorCode = "UNSUPPORTED_OPERATOR"

	// ErrCodeUnsupportedExpression indicates an expression kind the
	// compiler cannot lower.
	ErrCodeUnsupportedExpression ErrorCode = "UNSUPPORTED_EXPRESSION"

	// ErrCodeUnsupportedPredicate indicates a predicate input shape the
	// compiler cannot lower.
	ErrCodeUnsupportedPredicate ErrorCode = "UNSUPPORTED_PREDICATE"

	// ErrCodeCaseDepthExceeded indicates a CASE expression nested beyond
	// the construction-time depth limit.
	ErrCodeCaseDepthExceeded ErrorCode = "CASE_DEPTH_EXCEEDED"

	// ErrCodeMissingSubquery indicates an EXISTS-family operator whose
	// argument is not subquery-shaped.
	ErrCodeMissingSubquery ErrorCode = "MISSING_SUBQUERY"

	// ErrCodeNonStreamableFormat indicates a Stream call with an output
	// format outside the streamable allowlist.
	ErrCodeNonStreamableFormat ErrorCode = "NON_STREAMABLE_FORMAT"

	// ErrCodeInvalidQuery aggregates validator and normalizer errors
	// surfaced at ToSQL time.
	ErrCodeInvalidQuery ErrorCode = "INVALID_QUERY"
)

// ValidationError is the single externally-visible failure mode of query
// compilation. It is always returned synchronously from builder methods
// or ToSQL, never during I/O.
//
// The structured fields carry machine-readable metadata: Code identifies
// the failure category, Field and Value identify the offending input, and
// QueryID ties the failure back to the compilation attempt.
type ValidationError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   any
	QueryID string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.Field != "" && e.QueryID != "":
		return fmt.Sprintf("%s: %s (field=%s, query=%s)", e.Code, e.Message, e.Field, e.QueryID)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	case e.QueryID != "":
		return fmt.Sprintf("%s: %s (query=%s)", e.Code, e.Message, e.QueryID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidationError reports whether err is a *ValidationError, unwrapping
// as needed.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HasErrorCode reports whether err is a *ValidationError with the given
// code. Uses errors.As to handle wrapped errors.
func HasErrorCode(err error, code ErrorCode) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}

func newValidationError(code ErrorCode, field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
		Value:   value,
	}
}
