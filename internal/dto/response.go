package dto

import (
	"time"

	apperrors "campusmart/internal/errors"
)

type Response struct {
	TraceID   string    `json:"traceId"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	TraceID              string                       `json:"traceId"`
	Status               int                          `json:"status"`
	Code                 string                       `json:"code"`
	Message              string                       `json:"message"`
	Details              []apperrors.ValidationDetail `json:"details,omitempty"`
	RequiresVerification bool                         `json:"requiresVerification,omitempty"`
	Timestamp            time.Time                    `json:"timestamp"`
}
