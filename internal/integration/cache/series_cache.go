// Package cache implements the series cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farm-manager/backend/internal/application/adapter"
	"github.com/farm-manager/backend/internal/domain/entity"
)

// seriesCache implements the adapter.SeriesCache interface.
type seriesCache struct {
	client *redis.Client
}

// NewSeriesCache creates a new Redis-backed series cache.
func NewSeriesCache(client *redis.Client) adapter.SeriesCache {
	return &seriesCache{client: client}
}

// Get returns the snapshot stored under key, or nil on a miss.
func (c *seriesCache) Get(ctx context.Context, key string) (*entity.SeriesSnapshot, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached series: %w", err)
	}

	var snapshot entity.SeriesSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// A corrupt entry is dropped so the next request rebuilds it.
		c.client.Del(ctx, key)
		return nil, fmt.Errorf("failed to decode cached series: %w", err)
	}
	return &snapshot, nil
}

// Set stores a snapshot under key for ttl.
func (c *seriesCache) Set(ctx context.Context, key string, snapshot *entity.SeriesSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode series: %w", err)
	}
	if err := c.client.SetEx(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache series: %w", err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (c *seriesCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
