package weather

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "weather:temp:"

// RedisCache wraps a Lookup and keeps answers in Redis for ttl.
// Only successful lookups are cached; cache errors fall through to next.
type RedisCache struct {
	client *redis.Client
	next   Lookup
	ttl    time.Duration
	log    *zap.Logger
}

var _ Lookup = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, next Lookup, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{client: client, next: next, ttl: ttl, log: log}
}

func cacheKey(city string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(city))
}

func (c *RedisCache) CurrentTemperature(ctx context.Context, city string) (float64, bool) {
	if strings.TrimSpace(city) == "" {
		return 0, false
	}
	key := cacheKey(city)

	t, err := c.client.Get(ctx, key).Float64()
	switch {
	case err == nil:
		return t, true
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("weather cache read failed", zap.String("city", city), zap.Error(err))
	}

	t, ok := c.next.CurrentTemperature(ctx, city)
	if !ok {
		return 0, false
	}
	if err := c.client.Set(ctx, key, t, c.ttl).Err(); err != nil {
		c.log.Warn("weather cache write failed", zap.String("city", city), zap.Error(err))
	}
	return t, true
}
