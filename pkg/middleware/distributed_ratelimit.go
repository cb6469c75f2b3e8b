package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter implements a fixed-window counter in Redis so every replica draws on
// the same budget. BurstSize is not used.
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	prefix string
}

// NewRedisLimiter creates a new Redis-backed rate limiter
func NewRedisLimiter(client *redis.Client, config RateLimitConfig) *RedisLimiter {
	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = DefaultRateLimitConfig().KeyPrefix
	}
	return &RedisLimiter{redis: client, config: config, prefix: prefix}
}

// Allow increments the key's counter for the current window. On a Redis error the
// request is allowed and the error returned so the caller can log it.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)
	d := Decision{Allowed: true, Limit: l.config.RequestsPerWindow}

	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return d, fmt.Errorf("redis error: %w", err)
	}

	// first hit of the window, or a key that lost its expiry
	window := ttl.Val()
	if window < 0 {
		if err := l.redis.PExpire(ctx, redisKey, l.config.WindowDuration).Err(); err != nil {
			return d, fmt.Errorf("redis error: %w", err)
		}
		window = l.config.WindowDuration
	}

	count := int(incr.Val())
	if count <= l.config.RequestsPerWindow {
		d.Remaining = l.config.RequestsPerWindow - count
		return d, nil
	}

	d.Allowed = false
	d.RetryAfter = window
	if d.RetryAfter <= 0 {
		d.RetryAfter = time.Millisecond
	}
	return d, nil
}
