package middleware

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// RateLimitConfig defines rate limiting configuration
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled"`
	// RequestsPerWindow is the sustained number of requests allowed per window
	RequestsPerWindow int `yaml:"requests_per_window"`
	// WindowDuration is the time window for rate limiting
	WindowDuration time.Duration `yaml:"window"`
	// BurstSize allows temporary bursts above the rate (memory limiter only)
	BurstSize int `yaml:"burst"`
	// TrustProxy keys callers by the first X-Forwarded-For address
	TrustProxy bool `yaml:"trust_proxy"`
	// Distributed shares counters through the cache's Redis instance
	Distributed bool   `yaml:"distributed"`
	KeyPrefix   string `yaml:"key_prefix"`
}

// DefaultRateLimitConfig returns default rate limit settings. Limiting is off until
// Enabled is set.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: 600,
		WindowDuration:    time.Minute,
		BurstSize:         60,
		KeyPrefix:         "ordcheck:ratelimit",
	}
}

// Validate checks the limits are usable when limiting is enabled
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RequestsPerWindow <= 0 {
		return fmt.Errorf("rate limit requests_per_window must be positive, got %d", c.RequestsPerWindow)
	}
	if c.WindowDuration <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %v", c.WindowDuration)
	}
	if c.BurstSize < 0 {
		return fmt.Errorf("rate limit burst must not be negative, got %d", c.BurstSize)
	}
	return nil
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is how long until the next request could succeed; zero when allowed
	RetryAfter time.Duration
}

// Limiter decides whether the caller identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// MemoryLimiter implements a token bucket per key. Buckets hold up to
// RequestsPerWindow+BurstSize tokens and refill at RequestsPerWindow per window.
type MemoryLimiter struct {
	config  RateLimitConfig
	rate    float64 // tokens per second
	buckets map[string]*bucket
	mu      sync.Mutex
	now     func() time.Time
}

type bucket struct {
	tokens     float64
	lastUpdate time.Time
}

// NewMemoryLimiter creates a new in-process limiter
func NewMemoryLimiter(config RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		config:  config,
		rate:    float64(config.RequestsPerWindow) / config.WindowDuration.Seconds(),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) capacity() float64 {
	return float64(l.config.RequestsPerWindow + l.config.BurstSize)
}

// Allow takes one token from key's bucket
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity(), lastUpdate: now}
		l.buckets[key] = b
	}

	b.tokens = math.Min(l.capacity(), b.tokens+now.Sub(b.lastUpdate).Seconds()*l.rate)
	b.lastUpdate = now

	d := Decision{Limit: l.config.RequestsPerWindow}
	if b.tokens >= 1 {
		b.tokens--
		d.Allowed = true
		d.Remaining = int(b.tokens)
		return d, nil
	}

	d.RetryAfter = time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
	return d, nil
}

// Cleanup drops buckets that have refilled completely, which is equivalent to never
// having seen the key
func (l *MemoryLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		if b.tokens+now.Sub(b.lastUpdate).Seconds()*l.rate >= l.capacity() {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
