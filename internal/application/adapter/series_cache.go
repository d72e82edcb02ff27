// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// SeriesCache stores computed daily series snapshots.
type SeriesCache interface {
	// Get returns the snapshot stored under key. Returns nil, nil on a miss.
	Get(ctx context.Context, key string) (*entity.SeriesSnapshot, error)

	// Set stores a snapshot under key for ttl.
	Set(ctx context.Context, key string, snapshot *entity.SeriesSnapshot, ttl time.Duration) error

	// Ping checks that the cache backend is reachable.
	Ping(ctx context.Context) error
}
