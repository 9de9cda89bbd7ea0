package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmart/internal/domain"
	"campusmart/internal/testutil"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "catalog:product:42", Key("42"))
}

func TestNewRedisCache_DefaultTTL(t *testing.T) {
	c := NewRedisCache(nil, 0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

// Integration Tests

func TestRedisCache_RoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	err := c.SetMany(ctx, []domain.CatalogProduct{
		{ID: "1", Name: "Desk Lamp", StoreName: "Hall 3 Supplies", Currency: "GHS"},
		{ID: "2", Name: "Kettle", StoreName: "Hall 3 Supplies", Currency: "GHS"},
	})
	require.NoError(t, err)

	found, err := c.GetMany(ctx, []domain.ID{"1", "2", "3"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "Desk Lamp", found["1"].Name)

	ttl, err := client.TTL(ctx, Key("1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, c.Invalidate(ctx, "1"))
	found, err = c.GetMany(ctx, []domain.ID{"1", "2"})
	require.NoError(t, err)
	assert.NotContains(t, found, domain.ID("1"))
	assert.Contains(t, found, domain.ID("2"))
}

func TestRedisCache_SkipsCorruptEntries(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, Key("9"), "{not json", time.Minute).Err())

	found, err := c.GetMany(ctx, []domain.ID{"9"})
	require.NoError(t, err)
	assert.Empty(t, found)
}
