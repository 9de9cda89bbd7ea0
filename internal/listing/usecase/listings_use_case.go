package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
	"campusmart/internal/notify"
	"campusmart/internal/optimistic"
	"campusmart/internal/store"
)

type ListingService interface {
	Create(ctx context.Context, draft domain.Listing) (domain.Listing, error)
	Update(ctx context.Context, listing domain.Listing) (domain.Listing, error)
	Delete(ctx context.Context, id domain.ID) error
	MyListings(ctx context.Context) ([]domain.Listing, error)
}

// CatalogInvalidator drops cached catalog entries for edited listings.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context, ids ...domain.ID) error
}

type ListingsUseCase struct {
	service     ListingService
	store       *store.Store
	coordinator *optimistic.Coordinator[domain.Listing]
	invalidator CatalogInvalidator
	logger      *zap.Logger

	mu         sync.Mutex
	lastFailed *domain.Listing
}

type Option func(*ListingsUseCase)

func WithCatalogInvalidator(inv CatalogInvalidator) Option {
	return func(uc *ListingsUseCase) { uc.invalidator = inv }
}

func NewListingsUseCase(service ListingService, st *store.Store, notifier notify.Notifier, logger *zap.Logger, opts ...Option) *ListingsUseCase {
	uc := &ListingsUseCase{
		service: service,
		store:   st,
		coordinator: optimistic.New[domain.Listing](st.ListingTable(), notifier, logger,
			optimistic.WithMessages[domain.Listing](optimistic.Messages{
				Create: "Could not create the listing. Please try again.",
				Update: "Could not save the listing. Please try again.",
				Delete: "Could not delete the listing. Please try again.",
			}),
		),
		logger: logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ListListings refreshes the store's listings from the backend. Listings
// still waiting for their create to resolve stay in the result.
func (uc *ListingsUseCase) ListListings(ctx context.Context) ([]domain.Listing, error) {
	if err := uc.refresh(ctx); err != nil {
		return nil, err
	}
	return uc.store.Listings(), nil
}

// Create shows draft at once under a temporary id and replaces it with the
// backend's record. A failed draft is kept for RetryLastCreate.
func (uc *ListingsUseCase) Create(ctx context.Context, draft domain.Listing) (domain.Listing, error) {
	created, err := uc.coordinator.Create(ctx, draft, func(ctx context.Context, d domain.Listing) (domain.Listing, error) {
		return uc.service.Create(ctx, d)
	})
	if err != nil {
		uc.keepFailed(draft)
		return domain.Listing{}, fieldErrors(err)
	}

	uc.clearFailed()
	uc.invalidate(ctx, created.ID)
	uc.logger.Info("listing created", zap.String("listingId", created.ID.String()))
	return created, nil
}

// RetryLastCreate resubmits the last draft whose create failed.
func (uc *ListingsUseCase) RetryLastCreate(ctx context.Context) (domain.Listing, error) {
	uc.mu.Lock()
	last := uc.lastFailed
	uc.mu.Unlock()

	if last == nil {
		return domain.Listing{}, apperrors.NewNotFoundError("no failed listing to retry")
	}
	return uc.Create(ctx, *last)
}

// Update applies edit to the stored listing. Listings that only exist
// locally cannot be edited until their create resolves.
func (uc *ListingsUseCase) Update(ctx context.Context, id domain.ID, edit domain.Listing) (domain.Listing, error) {
	if id.IsTemporary() {
		return domain.Listing{}, apperrors.NewConflictError(fmt.Sprintf("listing %s is still being created", id))
	}

	updated, err := uc.coordinator.Update(ctx, id.String(),
		func(current domain.Listing) domain.Listing {
			return applyEdit(current, edit)
		},
		func(ctx context.Context, patched domain.Listing) (domain.Listing, error) {
			return uc.service.Update(ctx, patched)
		},
	)
	if err != nil {
		return domain.Listing{}, fieldErrors(err)
	}

	uc.invalidate(ctx, id)
	return updated, nil
}

// Delete removes the listing locally, asks the backend to delete it and
// resyncs the list on success.
func (uc *ListingsUseCase) Delete(ctx context.Context, id domain.ID) error {
	if id.IsTemporary() {
		return apperrors.NewConflictError(fmt.Sprintf("listing %s is still being created", id))
	}

	err := uc.coordinator.Delete(ctx, id.String(), func(ctx context.Context, removed domain.Listing) error {
		return uc.service.Delete(ctx, removed.ID)
	})
	if err != nil {
		return err
	}

	uc.invalidate(ctx, id)
	if err := uc.refresh(ctx); err != nil {
		uc.logger.Warn("refetch after delete failed", zap.String("listingId", id.String()), zap.Error(err))
	}
	return nil
}

func (uc *ListingsUseCase) refresh(ctx context.Context) error {
	listings, err := uc.service.MyListings(ctx)
	if err != nil {
		uc.logger.Warn("refreshing listings failed", zap.Error(err))
		return err
	}
	uc.store.Dispatch(store.SyncListings{Listings: listings})
	return nil
}

func (uc *ListingsUseCase) keepFailed(draft domain.Listing) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lastFailed = &draft
}

func (uc *ListingsUseCase) clearFailed() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lastFailed = nil
}

func (uc *ListingsUseCase) invalidate(ctx context.Context, id domain.ID) {
	if uc.invalidator == nil || id.IsZero() {
		return
	}
	if err := uc.invalidator.Invalidate(ctx, id); err != nil {
		uc.logger.Warn("catalog invalidation failed", zap.String("listingId", id.String()), zap.Error(err))
	}
}

func applyEdit(current, edit domain.Listing) domain.Listing {
	next := current
	if edit.Kind != "" {
		next.Kind = edit.Kind
	}
	if edit.Name != "" {
		next.Name = edit.Name
	}
	if edit.Description != "" {
		next.Description = edit.Description
	}
	if edit.Category != "" {
		next.Category = edit.Category
	}
	if !edit.Price.IsZero() {
		next.Price = edit.Price
	}
	if edit.Currency != "" {
		next.Currency = edit.Currency
	}
	if edit.Images != nil {
		next.Images = append([]string{}, edit.Images...)
	}
	return next
}

// fieldErrors turns a backend rejection that names fields into a
// ValidationError so the form can show them.
func fieldErrors(err error) error {
	ne, ok := apperrors.IsNormalizedError(err)
	if !ok || !ne.IsClientError() || len(ne.FieldErrors) == 0 {
		return err
	}
	return apperrors.NewValidationError(apperrors.UserMessage(ne, "listing rejected"), ne.FieldErrors...)
}
