package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewNotFoundError("listing not found"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "listing not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "name", Message: "name is required"},
		{Field: "price", Message: "price must be non-negative"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestConflictAndForbidden(t *testing.T) {
	_, ok := IsConflictError(NewConflictError("gate closed"))
	assert.True(t, ok)

	_, ok = IsForbiddenError(NewForbiddenError("not yours"))
	assert.True(t, ok)

	_, ok = IsConflictError(NewForbiddenError("not yours"))
	assert.False(t, ok)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "underlying error")
}

func TestIsInternalError(t *testing.T) {
	wrapped := fmt.Errorf("perform: %w", NewInternalError("decoding 200 response", nil))

	ie, ok := IsInternalError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "decoding 200 response", ie.Message)

	_, ok = IsInternalError(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNormalizedError_Classification(t *testing.T) {
	tests := []struct {
		name      string
		err       *NormalizedError
		client    bool
		retryable bool
		notFound  bool
	}{
		{"bad request", &NormalizedError{Status: 400}, true, false, false},
		{"not found", &NormalizedError{Status: 404}, true, false, true},
		{"unavailable", &NormalizedError{Status: 503}, false, true, false},
		{"network", &NormalizedError{Status: 0, Cause: errors.New("dial tcp")}, false, true, false},
		{"timeout", &NormalizedError{Status: 0, Timeout: true}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.client, tt.err.IsClientError())
			assert.Equal(t, tt.retryable, tt.err.Retryable())
			assert.Equal(t, tt.notFound, tt.err.IsNotFound())
			assert.Equal(t, tt.err.Status, tt.err.StatusCode())
		})
	}
}

func TestNormalizedError_ErrorText(t *testing.T) {
	assert.Equal(t, "remote 409: already confirmed", (&NormalizedError{Status: 409, Message: "already confirmed"}).Error())
	assert.Equal(t, "remote 502: Bad Gateway", (&NormalizedError{Status: 502}).Error())
	assert.Equal(t, "remote 0: request timed out", (&NormalizedError{Timeout: true}).Error())
}

func TestIsVerificationRequired(t *testing.T) {
	err := fmt.Errorf("refreshing roles: %w", &NormalizedError{Status: 403, RequiresVerification: true})

	assert.True(t, IsVerificationRequired(err))
	assert.False(t, IsVerificationRequired(&NormalizedError{Status: 403}))
	assert.False(t, IsVerificationRequired(errors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Store name taken", UserMessage(&NormalizedError{Status: 422, Message: "Store name taken"}, "Could not save"))
	assert.Equal(t, "Could not save", UserMessage(&NormalizedError{Status: 500}, "Could not save"))
	assert.Equal(t, GenericFailureMessage, UserMessage(errors.New("boom"), ""))
	assert.Equal(t, "name is required", UserMessage(NewValidationError("name is required"), "x"))
}
