package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// GenericFailureMessage is shown when a failure carries no usable server message.
const GenericFailureMessage = "Something went wrong. Please try again."

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if stderrors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// ConflictError means the requested transition is not open for the order's
// current state.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	var fe *ForbiddenError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// NormalizedError is the single internal shape of every failure that
// crossed the network boundary. Status is 0 for transport failures and
// timeouts.
type NormalizedError struct {
	Status               int
	Message              string
	FieldErrors          []ValidationDetail
	RequiresVerification bool
	Timeout              bool
	Cause                error
}

func (e *NormalizedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Status == 0 {
		msg = "network error"
		if e.Timeout {
			msg = "request timed out"
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("remote %d: %s: %v", e.Status, msg, e.Cause)
	}
	return fmt.Sprintf("remote %d: %s", e.Status, msg)
}

func (e *NormalizedError) Unwrap() error {
	return e.Cause
}

func (e *NormalizedError) StatusCode() int {
	return e.Status
}

func (e *NormalizedError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

func (e *NormalizedError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// Retryable reports whether a later attempt could succeed: 5xx, transport
// failures and timeouts.
func (e *NormalizedError) Retryable() bool {
	return !e.IsClientError()
}

func IsNormalizedError(err error) (*NormalizedError, bool) {
	var ne *NormalizedError
	if stderrors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

// IsVerificationRequired matches the 403 the backend sends to users who
// still have to verify their account.
func IsVerificationRequired(err error) bool {
	ne, ok := IsNormalizedError(err)
	return ok && ne.RequiresVerification
}

// UserMessage picks the text shown to the user for err: the server's own
// message when there is one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = GenericFailureMessage
	}
	if err == nil {
		return fallback
	}
	if ne, ok := IsNormalizedError(err); ok {
		if ne.Message != "" {
			return ne.Message
		}
		return fallback
	}
	if ve, ok := IsValidationError(err); ok && ve.Message != "" {
		return ve.Message
	}
	if ce, ok := IsConflictError(err); ok && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
