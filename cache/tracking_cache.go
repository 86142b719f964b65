// Package cache holds a small redis-backed cache for public tracking
// responses, so repeated anonymous lookups of the same tracking number skip
// the database. The cache is optional: without a configured redis address
// every lookup goes straight through.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shipment-tracker/config"
)

const (
	trackingKeyPrefix = "cache:tracking:"
	trackingTTL       = 30 * time.Second
)

type TrackingCache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewTrackingCache connects to redis. It returns nil when no address is
// configured or the server is unreachable; a nil cache is valid and simply
// never hits.
func NewTrackingCache(cfg *config.RedisConfig, logger *zap.Logger) *TrackingCache {
	if cfg == nil || cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, tracking cache disabled", zap.Error(err))
		return nil
	}

	return &TrackingCache{rdb: rdb, logger: logger}
}

// Get returns the cached response body for a lookup key, if present.
func (c *TrackingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, trackingKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a response body under a lookup key for a short TTL.
func (c *TrackingCache) Set(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, trackingKeyPrefix+key, data, trackingTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache tracking response", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the cached entries for a shipment's lookup keys.
func (c *TrackingCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = trackingKeyPrefix + k
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate tracking cache", zap.Error(err))
	}
}
