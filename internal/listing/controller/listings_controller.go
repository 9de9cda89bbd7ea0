package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"campusmart/internal/commons"
	"campusmart/internal/domain"
	"campusmart/internal/dto"
	apperrors "campusmart/internal/errors"
)

const maxImages = 10

type ListingsUseCase interface {
	ListListings(ctx context.Context) ([]domain.Listing, error)
	Create(ctx context.Context, draft domain.Listing) (domain.Listing, error)
	RetryLastCreate(ctx context.Context) (domain.Listing, error)
	Update(ctx context.Context, id domain.ID, edit domain.Listing) (domain.Listing, error)
	Delete(ctx context.Context, id domain.ID) error
}

type ListingsController struct {
	useCase ListingsUseCase
	logger  *zap.Logger
}

func NewListingsController(useCase ListingsUseCase, logger *zap.Logger) *ListingsController {
	return &ListingsController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *ListingsController) ListListings(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	listings, err := c.useCase.ListListings(r.Context())
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	commons.WriteData(w, c.logger, traceID, http.StatusOK, listings)
}

func (c *ListingsController) CreateListing(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()
	logger := c.logger.With(zap.String("traceId", traceID))

	req, ok := c.decode(w, r, traceID, logger)
	if !ok {
		return
	}
	if err := validateListingRequest(req, true); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	created, err := c.useCase.Create(r.Context(), toListing(req))
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteData(w, logger, traceID, http.StatusCreated, created)
}

func (c *ListingsController) RetryCreate(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	created, err := c.useCase.RetryLastCreate(r.Context())
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	commons.WriteData(w, c.logger, traceID, http.StatusCreated, created)
}

func (c *ListingsController) UpdateListing(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()
	id := domain.ID(chi.URLParam(r, "listingId"))
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("listingId", id.String()))

	req, ok := c.decode(w, r, traceID, logger)
	if !ok {
		return
	}
	if err := validateListingRequest(req, false); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	updated, err := c.useCase.Update(r.Context(), id, toListing(req))
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteData(w, logger, traceID, http.StatusOK, updated)
}

func (c *ListingsController) DeleteListing(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()
	id := domain.ID(chi.URLParam(r, "listingId"))

	if err := c.useCase.Delete(r.Context(), id); err != nil {
		commons.WriteError(w, c.logger.With(zap.String("listingId", id.String())), traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *ListingsController) decode(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (dto.ListingRequest, bool) {
	var req dto.ListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return dto.ListingRequest{}, false
	}
	return req, true
}

// validateListingRequest checks the form before anything is shown
// optimistically. Creates need every required field; edits only need the
// fields they send to be valid.
func validateListingRequest(req dto.ListingRequest, create bool) error {
	var details []apperrors.ValidationDetail

	if create || req.Name != "" {
		if strings.TrimSpace(req.Name) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "name",
				Message: "name is required",
			})
		}
	}

	if create || req.Type != "" {
		switch domain.ListingKind(req.Type) {
		case domain.ListingProduct, domain.ListingService:
		default:
			details = append(details, apperrors.ValidationDetail{
				Field:   "type",
				Message: "type must be product or service",
			})
		}
	}

	if req.Price == nil {
		if create {
			details = append(details, apperrors.ValidationDetail{
				Field:   "price",
				Message: "price is required",
			})
		}
	} else if req.Price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}

	if req.Currency != "" && len(req.Currency) != 3 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "currency",
			Message: "currency must be a 3-letter code",
		})
	}

	if len(req.Images) > maxImages {
		details = append(details, apperrors.ValidationDetail{
			Field:   "images",
			Message: "images exceeds maximum of 10",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func toListing(req dto.ListingRequest) domain.Listing {
	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}
	return domain.Listing{
		Kind:        domain.ListingKind(req.Type),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		Price:       price,
		Currency:    strings.ToUpper(req.Currency),
		Images:      req.Images,
	}
}
