package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusmart/internal/domain"
	"campusmart/internal/retry"
)

// RemoteClient is the slice of the marketplace API listings need.
type RemoteClient interface {
	CreateListing(ctx context.Context, draft domain.Listing, idempotencyKey string) (domain.Listing, error)
	UpdateListing(ctx context.Context, listing domain.Listing) (domain.Listing, error)
	DeleteListing(ctx context.Context, id domain.ID) error
	MyListings(ctx context.Context) ([]domain.Listing, error)
}

type ListingService struct {
	client RemoteClient
	policy retry.Policy
	sleep  retry.Sleeper
	newKey func() string
	logger *zap.Logger
}

func NewListingService(client RemoteClient, policy retry.Policy, logger *zap.Logger) *ListingService {
	return &ListingService{
		client: client,
		policy: policy,
		newKey: func() string { return uuid.New().String() },
		logger: logger,
	}
}

// WithSleeper overrides the backoff wait, for tests.
func (s *ListingService) WithSleeper(sleep retry.Sleeper) *ListingService {
	s.sleep = sleep
	return s
}

func (s *ListingService) options(operation string) []retry.Option {
	extra := []retry.Option{retry.Named(operation), retry.WithLogger(s.logger)}
	if s.sleep != nil {
		extra = append(extra, retry.WithSleeper(s.sleep))
	}
	return s.policy.Options(extra...)
}

// Create sends draft under one idempotency key shared by every attempt.
func (s *ListingService) Create(ctx context.Context, draft domain.Listing) (domain.Listing, error) {
	key := s.newKey()
	s.logger.Debug("creating listing", zap.String("idempotencyKey", key), zap.String("name", draft.Name))

	return retry.Do(ctx, func(ctx context.Context) (domain.Listing, error) {
		return s.client.CreateListing(ctx, draft, key)
	}, s.options("create_listing")...)
}

func (s *ListingService) Update(ctx context.Context, listing domain.Listing) (domain.Listing, error) {
	return retry.Do(ctx, func(ctx context.Context) (domain.Listing, error) {
		return s.client.UpdateListing(ctx, listing)
	}, s.options("update_listing")...)
}

func (s *ListingService) Delete(ctx context.Context, id domain.ID) error {
	_, err := retry.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.DeleteListing(ctx, id)
	}, s.options("delete_listing")...)
	return err
}

func (s *ListingService) MyListings(ctx context.Context) ([]domain.Listing, error) {
	return retry.Do(ctx, s.client.MyListings, s.options("list_listings")...)
}
