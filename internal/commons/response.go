package commons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusmart/internal/dto"
	apperrors "campusmart/internal/errors"
)

func NewTraceID() string {
	return uuid.New().String()
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteData(w http.ResponseWriter, logger *zap.Logger, traceID string, status int, data any) {
	WriteJSON(w, logger, status, dto.Response{
		TraceID:   traceID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, traceID, message string, details ...apperrors.ValidationDetail) {
	WriteError(w, logger, traceID, apperrors.NewValidationError(message, details...))
}

// WriteError maps err onto a status and error code. Failures the backend
// reported keep its message; anything unclassified is a 500.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	resp := dto.ErrorResponse{
		TraceID:   traceID,
		Timestamp: time.Now().UTC(),
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Status, resp.Code, resp.Message, resp.Details = http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details
	} else if nf, ok := apperrors.IsNotFoundError(err); ok {
		resp.Status, resp.Code, resp.Message = http.StatusNotFound, "NOT_FOUND", nf.Message
	} else if ce, ok := apperrors.IsConflictError(err); ok {
		resp.Status, resp.Code, resp.Message = http.StatusConflict, "CONFLICT", ce.Message
	} else if fe, ok := apperrors.IsForbiddenError(err); ok {
		resp.Status, resp.Code, resp.Message = http.StatusForbidden, "FORBIDDEN", fe.Message
	} else if ne, ok := apperrors.IsNormalizedError(err); ok {
		writeRemoteError(&resp, ne)
	} else if errors.Is(err, context.Canceled) {
		resp.Status, resp.Code, resp.Message = http.StatusServiceUnavailable, "CANCELLED", "request cancelled"
	} else {
		logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
		resp.Status, resp.Code, resp.Message = http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
	}

	WriteJSON(w, logger, resp.Status, resp)
}

func writeRemoteError(resp *dto.ErrorResponse, ne *apperrors.NormalizedError) {
	resp.Message = apperrors.UserMessage(ne, "")
	resp.Details = ne.FieldErrors

	switch {
	case ne.RequiresVerification:
		resp.Status, resp.Code = http.StatusForbidden, "VERIFICATION_REQUIRED"
		resp.RequiresVerification = true
	case ne.IsClientError():
		resp.Status, resp.Code = ne.Status, "REMOTE_REJECTED"
	case ne.Timeout:
		resp.Status, resp.Code = http.StatusGatewayTimeout, "REMOTE_TIMEOUT"
	default:
		resp.Status, resp.Code = http.StatusBadGateway, "REMOTE_UNAVAILABLE"
	}
}
