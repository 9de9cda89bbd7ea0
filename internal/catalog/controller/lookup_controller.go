package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"campusmart/internal/commons"
	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
)

const maxLookupIDs = 100

type LookupUseCase interface {
	Lookup(ctx context.Context, ids []domain.ID) domain.CatalogLookup
}

type LookupRequest struct {
	ProductIDs []domain.ID `json:"productIds"`
}

type LookupController struct {
	useCase LookupUseCase
	logger  *zap.Logger
}

func NewLookupController(useCase LookupUseCase, logger *zap.Logger) *LookupController {
	return &LookupController{useCase: useCase, logger: logger}
}

// LookupProducts resolves product ids to the names and stores order views
// show for them.
func (c *LookupController) LookupProducts(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateLookupRequest(req); err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	commons.WriteData(w, c.logger, traceID, http.StatusOK, c.useCase.Lookup(r.Context(), req.ProductIDs))
}

func validateLookupRequest(req LookupRequest) error {
	if len(req.ProductIDs) == 0 {
		return apperrors.NewValidationError("productIds is required", apperrors.ValidationDetail{
			Field:   "productIds",
			Message: "productIds must not be empty",
		})
	}

	if len(req.ProductIDs) > maxLookupIDs {
		msg := "productIds exceeds maximum of 100"
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "productIds",
			Message: msg,
		})
	}

	for _, id := range req.ProductIDs {
		if id.IsZero() || id.IsTemporary() {
			msg := "each productId must be a backend id"
			return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
				Field:   "productIds",
				Message: msg,
			})
		}
	}

	return nil
}
