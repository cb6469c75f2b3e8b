package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisLimiter_Allow(t *testing.T) {
	mr, client := newTestRedis(t)
	cfg := testConfig()
	cfg.RequestsPerWindow = 3
	cfg.WindowDuration = time.Minute
	limiter := NewRedisLimiter(client, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, "ip:1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d, err := limiter.Allow(ctx, "ip:1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)

	assert.True(t, mr.Exists("ordcheck:ratelimit:ip:1"))
	assert.Equal(t, time.Minute, mr.TTL("ordcheck:ratelimit:ip:1"))

	// the window expires and the budget resets
	mr.FastForward(time.Minute + time.Second)
	d, err = limiter.Allow(ctx, "ip:1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisLimiter_SharedBudget(t *testing.T) {
	_, client := newTestRedis(t)
	cfg := testConfig()
	cfg.RequestsPerWindow = 2
	cfg.KeyPrefix = "shared"
	a := NewRedisLimiter(client, cfg)
	b := NewRedisLimiter(client, cfg)
	ctx := context.Background()

	d, _ := a.Allow(ctx, "ip:1")
	assert.True(t, d.Allowed)
	d, _ = b.Allow(ctx, "ip:1")
	assert.True(t, d.Allowed)
	d, _ = a.Allow(ctx, "ip:1")
	assert.False(t, d.Allowed)
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, testConfig())
	mr.Close()

	d, err := limiter.Allow(context.Background(), "ip:1")
	assert.Error(t, err)
	assert.True(t, d.Allowed)
}
