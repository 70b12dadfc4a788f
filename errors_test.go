package chquery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorFormatting(t *testing.T) {
	err := &ValidationError{
		Code:    ErrCodeMalformedIdentifier,
		Message: "bad identifier",
		Field:   "users.id;",
		QueryID: "q-123",
	}
	assert.Equal(t, "MALFORMED_IDENTIFIER: bad identifier (field=users.id;, query=q-123)", err.Error())

	bare := &ValidationError{Code: ErrCodeInvalidQuery, Message: "oops"}
	assert.Equal(t, "INVALID_QUERY: oops", bare.Error())
}

func TestIsValidationError(t *testing.T) {
	ve := &ValidationError{Code: ErrCodeInvalidQuery, Message: "x"}
	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", ve)))
	assert.False(t, IsValidationError(errors.New("plain")))
	assert.False(t, IsValidationError(nil))
}

func TestHasErrorCode(t *testing.T) {
	ve := &ValidationError{Code: ErrCodeCaseDepthExceeded, Message: "x"}
	assert.True(t, HasErrorCode(ve, ErrCodeCaseDepthExceeded))
	assert.False(t, HasErrorCode(ve, ErrCodeInvalidQuery))
	assert.True(t, HasErrorCode(fmt.Errorf("wrap: %w", ve), ErrCodeCaseDepthExceeded))
	assert.False(t, HasErrorCode(errors.New("plain"), ErrCodeInvalidQuery))
}

func TestCompileErrorsCarryDistinctQueryIDs(t *testing.T) {
	bad := func() error {
		_, err := Select("id").From("").ToSQL()
		return err
	}
	var first, second *ValidationError
	assert.ErrorAs(t, bad(), &first)
	assert.ErrorAs(t, bad(), &second)
	assert.NotEmpty(t, first.QueryID)
	assert.NotEqual(t, first.QueryID, second.QueryID)
}
