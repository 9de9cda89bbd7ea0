package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"campusmart/internal/domain"
)

const (
	DefaultTTL = 10 * time.Minute
	keyPrefix  = "catalog:product:"
)

// RedisCache holds catalog entries as JSON under catalog:product:<id>.
type RedisCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client goredis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func Key(id domain.ID) string {
	return keyPrefix + id.String()
}

// GetMany returns the cached entries among ids. Misses and undecodable
// values are left out.
func (c *RedisCache) GetMany(ctx context.Context, ids []domain.ID) (map[domain.ID]domain.CatalogProduct, error) {
	found := make(map[domain.ID]domain.CatalogProduct, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading catalog cache: %w", err)
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var p domain.CatalogProduct
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			continue
		}
		found[ids[i]] = p
	}
	return found, nil
}

// SetMany writes products in one pipeline, each with the cache TTL.
func (c *RedisCache) SetMany(ctx context.Context, products []domain.CatalogProduct) error {
	if len(products) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding catalog entry %s: %w", p.ID, err)
		}
		pipe.Set(ctx, Key(p.ID), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing catalog cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached entries for ids.
func (c *RedisCache) Invalidate(ctx context.Context, ids ...domain.ID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidating catalog cache: %w", err)
	}
	return nil
}
