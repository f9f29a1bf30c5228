// internal/domain/catalog/snapshot_cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// SnapshotCache stores authoritative catalog lists per category
type SnapshotCache interface {
	Get(ctx context.Context, category string) ([]Product, bool, error)
	Set(ctx context.Context, category string, products []Product) error
	Invalidate(ctx context.Context, category string) error
}

// RedisSnapshotCache keeps one JSON document per category
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache creates a Redis backed snapshot cache
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(category string) string {
	if category == "" {
		category = "all"
	}
	return "catalog:snapshot:" + category
}

// Get returns the cached snapshot, ok=false on a miss
func (c *RedisSnapshotCache) Get(ctx context.Context, category string) ([]Product, bool, error) {
	data, err := c.client.Get(ctx, snapshotKey(category)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, errors.Wrap(err, "failed to read catalog snapshot")
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, errors.Wrap(err, "failed to decode catalog snapshot")
	}
	return products, true, nil
}

// Set stores a snapshot. Callers must pass the list exactly as read from the catalog.
func (c *RedisSnapshotCache) Set(ctx context.Context, category string, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "failed to encode catalog snapshot")
	}
	return errors.Wrap(c.client.Set(ctx, snapshotKey(category), data, c.ttl).Err(), "failed to write catalog snapshot")
}

// Invalidate drops a cached snapshot
func (c *RedisSnapshotCache) Invalidate(ctx context.Context, category string) error {
	return errors.Wrap(c.client.Del(ctx, snapshotKey(category)).Err(), "failed to invalidate catalog snapshot")
}
