package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           true,
		RequestsPerWindow: 10,
		WindowDuration:    time.Second,
		BurstSize:         2,
	}
}

// fakeClock lets tests move a MemoryLimiter through time
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedLimiter(cfg RateLimitConfig) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := NewMemoryLimiter(cfg)
	l.now = clock.now
	return l, clock
}

func TestRateLimitConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RateLimitConfig)
		wantErr bool
	}{
		{"valid", func(c *RateLimitConfig) {}, false},
		{"disabled ignores limits", func(c *RateLimitConfig) { c.Enabled = false; c.RequestsPerWindow = 0 }, false},
		{"zero requests", func(c *RateLimitConfig) { c.RequestsPerWindow = 0 }, true},
		{"zero window", func(c *RateLimitConfig) { c.WindowDuration = 0 }, true},
		{"negative burst", func(c *RateLimitConfig) { c.BurstSize = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemoryLimiter_Allow(t *testing.T) {
	cfg := testConfig()
	limiter, clock := newClockedLimiter(cfg)
	ctx := context.Background()

	allowed := 0
	for i := 0; i < cfg.RequestsPerWindow+cfg.BurstSize+5; i++ {
		d, err := limiter.Allow(ctx, "ip:1")
		require.NoError(t, err)
		if d.Allowed {
			allowed++
		}
	}
	assert.Equal(t, cfg.RequestsPerWindow+cfg.BurstSize, allowed)

	d, _ := limiter.Allow(ctx, "ip:1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, 100*time.Millisecond, d.RetryAfter)

	// 10 per second refills one token every 100ms
	clock.advance(100 * time.Millisecond)
	d, _ = limiter.Allow(ctx, "ip:1")
	assert.True(t, d.Allowed)

	// other keys have their own bucket
	d, _ = limiter.Allow(ctx, "ip:2")
	assert.True(t, d.Allowed)
	assert.Equal(t, cfg.RequestsPerWindow+cfg.BurstSize-1, d.Remaining)
}

func TestMemoryLimiter_RefillIsCapped(t *testing.T) {
	cfg := testConfig()
	limiter, clock := newClockedLimiter(cfg)
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "ip:1")
	clock.advance(time.Hour)

	d, _ := limiter.Allow(ctx, "ip:1")
	assert.True(t, d.Allowed)
	assert.Equal(t, cfg.RequestsPerWindow+cfg.BurstSize-1, d.Remaining)
}

func TestMemoryLimiter_Cleanup(t *testing.T) {
	limiter, clock := newClockedLimiter(testConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = limiter.Allow(ctx, "ip:busy")
	}
	_, _ = limiter.Allow(ctx, "ip:idle")
	assert.Equal(t, 2, limiter.Len())

	// ip:idle spent one token, refilled after 100ms; ip:busy needs 500ms
	clock.advance(200 * time.Millisecond)
	assert.Equal(t, 1, limiter.Cleanup())
	assert.Equal(t, 1, limiter.Len())

	clock.advance(time.Second)
	assert.Equal(t, 1, limiter.Cleanup())
	assert.Equal(t, 0, limiter.Len())
}
