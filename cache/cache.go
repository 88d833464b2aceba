// Package cache keeps rendered listing responses in Redis, keyed by surface
// and normalized filter criteria.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	SurfaceProperties = "properties"
	SurfaceCommercial = "commercial"
	SurfaceCommunity  = "community"
)

const keyPrefix = "listing:"

type ListingCache interface {
	Get(ctx context.Context, surface string, criteria interface{}) ([]byte, bool)
	Set(ctx context.Context, surface string, criteria interface{}, body []byte)
	Invalidate(ctx context.Context, surfaces ...string)
}

// Key hashes the JSON form of criteria. Criteria are structs, so the JSON
// field order is fixed and equal filters share a key.
func Key(surface string, criteria interface{}) (string, error) {
	raw, err := json.Marshal(criteria)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return keyPrefix + surface + ":" + hex.EncodeToString(sum[:]), nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func (c *RedisCache) Get(ctx context.Context, surface string, criteria interface{}) ([]byte, bool) {
	key, err := Key(surface, criteria)
	if err != nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Redis GET failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	c.log.Debug("Cache hit", zap.String("key", key))
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, surface string, criteria interface{}, body []byte) {
	key, err := Key(surface, criteria)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached response for the given surfaces, or for all
// surfaces when none are named.
func (c *RedisCache) Invalidate(ctx context.Context, surfaces ...string) {
	patterns := []string{keyPrefix + "*"}
	if len(surfaces) > 0 {
		patterns = patterns[:0]
		for _, s := range surfaces {
			patterns = append(patterns, keyPrefix+s+":*")
		}
	}
	for _, pattern := range patterns {
		c.deleteMatching(ctx, pattern)
	}
}

func (c *RedisCache) deleteMatching(ctx context.Context, pattern string) {
	const scanCount = 100

	var keys []string
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			c.log.Error("Redis SCAN failed", zap.String("pattern", pattern), zap.Error(err))
			return
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Error("Failed to delete cached listings", zap.Int("keys", len(keys)), zap.Error(err))
		return
	}
	c.log.Info("Listing cache invalidated", zap.String("pattern", pattern), zap.Int("keys", len(keys)))
}

// Noop is used when Redis is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, interface{}, []byte)        {}
func (Noop) Invalidate(context.Context, ...string)                   {}
