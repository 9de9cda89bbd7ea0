package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
	"campusmart/internal/retry"
)

type mockRemoteClient struct {
	CreateListingFunc func(ctx context.Context, draft domain.Listing, idempotencyKey string) (domain.Listing, error)
	UpdateListingFunc func(ctx context.Context, listing domain.Listing) (domain.Listing, error)
	DeleteListingFunc func(ctx context.Context, id domain.ID) error
	MyListingsFunc    func(ctx context.Context) ([]domain.Listing, error)
}

func (m *mockRemoteClient) CreateListing(ctx context.Context, draft domain.Listing, idempotencyKey string) (domain.Listing, error) {
	return m.CreateListingFunc(ctx, draft, idempotencyKey)
}

func (m *mockRemoteClient) UpdateListing(ctx context.Context, listing domain.Listing) (domain.Listing, error) {
	return m.UpdateListingFunc(ctx, listing)
}

func (m *mockRemoteClient) DeleteListing(ctx context.Context, id domain.ID) error {
	return m.DeleteListingFunc(ctx, id)
}

func (m *mockRemoteClient) MyListings(ctx context.Context) ([]domain.Listing, error) {
	return m.MyListingsFunc(ctx)
}

func newTestService(client RemoteClient, delays *[]time.Duration) *ListingService {
	svc := NewListingService(client, retry.Policy{MaxRetries: 3, InitialDelay: time.Second}, zap.NewNop())
	return svc.WithSleeper(func(_ context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return nil
	})
}

func TestCreate_ReusesIdempotencyKeyAcrossRetries(t *testing.T) {
	var keys []string
	client := &mockRemoteClient{
		CreateListingFunc: func(ctx context.Context, draft domain.Listing, key string) (domain.Listing, error) {
			keys = append(keys, key)
			if len(keys) < 3 {
				return domain.Listing{}, &apperrors.NormalizedError{Status: http.StatusBadGateway}
			}
			return domain.Listing{ID: "42", Name: draft.Name}, nil
		},
	}
	var delays []time.Duration
	svc := newTestService(client, &delays)

	created, err := svc.Create(context.Background(), domain.Listing{Name: "Test Widget"})

	require.NoError(t, err)
	assert.Equal(t, domain.ID("42"), created.ID)
	require.Len(t, keys, 3)
	assert.NotEmpty(t, keys[0])
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestCreate_FreshKeyPerCreate(t *testing.T) {
	var keys []string
	client := &mockRemoteClient{
		CreateListingFunc: func(ctx context.Context, draft domain.Listing, key string) (domain.Listing, error) {
			keys = append(keys, key)
			return domain.Listing{ID: "1"}, nil
		},
	}
	svc := newTestService(client, nil)

	_, err := svc.Create(context.Background(), domain.Listing{Name: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.Listing{Name: "b"})
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestCreate_ValidationFailureNotRetried(t *testing.T) {
	attempts := 0
	client := &mockRemoteClient{
		CreateListingFunc: func(context.Context, domain.Listing, string) (domain.Listing, error) {
			attempts++
			return domain.Listing{}, &apperrors.NormalizedError{
				Status:      http.StatusUnprocessableEntity,
				FieldErrors: []apperrors.ValidationDetail{{Field: "price", Message: "too low"}},
			}
		},
	}
	svc := newTestService(client, nil)

	_, err := svc.Create(context.Background(), domain.Listing{Name: "x"})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDelete_RetriesServerErrors(t *testing.T) {
	attempts := 0
	client := &mockRemoteClient{
		DeleteListingFunc: func(ctx context.Context, id domain.ID) error {
			attempts++
			if attempts == 1 {
				return &apperrors.NormalizedError{Status: http.StatusInternalServerError}
			}
			return nil
		},
	}
	svc := newTestService(client, nil)

	require.NoError(t, svc.Delete(context.Background(), "7"))
	assert.Equal(t, 2, attempts)
}

func TestDelete_GivesUpAfterBudget(t *testing.T) {
	attempts := 0
	client := &mockRemoteClient{
		DeleteListingFunc: func(ctx context.Context, id domain.ID) error {
			attempts++
			return &apperrors.NormalizedError{Status: http.StatusServiceUnavailable}
		},
	}
	svc := newTestService(client, nil)

	err := svc.Delete(context.Background(), "7")

	ne, ok := apperrors.IsNormalizedError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, ne.Status)
	assert.Equal(t, 4, attempts)
}
