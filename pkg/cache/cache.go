package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// MultiLevelCache checks an in-process LRU first and Redis second. L2 hits are
// promoted into L1.
type MultiLevelCache struct {
	config  *Config
	l1      *lru.LRU[string, *Entry]
	l2      *RedisClient
	metrics *metrics
}

// NewCache creates a cache with the levels enabled in config. A nil config selects
// DefaultConfig.
func NewCache(config *Config) (Cache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	c := &MultiLevelCache{config: config, metrics: newMetrics()}
	if config.EnableL1 {
		size := config.L1MaxEntries
		if size < 10 {
			size = 10
		}
		c.l1 = lru.NewLRU[string, *Entry](size, nil, config.L1TTL)
	}
	if config.EnableL2 {
		l2, err := NewRedisClient(config)
		if err != nil {
			return nil, err
		}
		c.l2 = l2
	}
	return c, nil
}

// Get retrieves a cached result
func (c *MultiLevelCache) Get(ctx context.Context, key *Key) (*Entry, error) {
	if key == nil {
		return nil, ErrInvalidCacheKey
	}
	k := key.String()

	if c.l1 != nil {
		if entry, ok := c.l1.Get(k); ok {
			c.metrics.recordL1Hit()
			return entry, nil
		}
	}
	if c.l2 != nil {
		entry, err := c.l2.Get(ctx, key)
		switch {
		case err == nil:
			c.metrics.recordL2Hit()
			if c.l1 != nil {
				c.l1.Add(k, entry)
			}
			return entry, nil
		case !errors.Is(err, ErrCacheMiss):
			c.metrics.recordMiss()
			return nil, err
		}
	}

	c.metrics.recordMiss()
	return nil, ErrCacheMiss
}

// Set stores a result in every enabled level
func (c *MultiLevelCache) Set(ctx context.Context, key *Key, entry *Entry) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if c.l1 == nil && c.l2 == nil {
		return ErrCacheUnavailable
	}

	if c.l1 != nil {
		c.l1.Add(key.String(), entry)
	}
	if c.l2 != nil {
		if err := c.l2.Set(ctx, key, entry); err != nil {
			return fmt.Errorf("failed to write L2 cache: %w", err)
		}
	}
	return nil
}

func (c *MultiLevelCache) Delete(ctx context.Context, key *Key) error {
	if key == nil {
		return ErrInvalidCacheKey
	}
	if c.l1 != nil {
		c.l1.Remove(key.String())
	}
	if c.l2 != nil {
		return c.l2.Delete(ctx, key)
	}
	return nil
}

// Purge drops every cached result, for example after the rule set changes
func (c *MultiLevelCache) Purge(ctx context.Context) error {
	if c.l1 != nil {
		c.l1.Purge()
	}
	if c.l2 != nil {
		return c.l2.Purge(ctx)
	}
	return nil
}

// Stats returns cache statistics. ItemCount covers L1 only.
func (c *MultiLevelCache) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Hits:   c.metrics.getHits(),
		Misses: c.metrics.getMisses(),
		L1Hits: c.metrics.getL1Hits(),
		L2Hits: c.metrics.getL2Hits(),
	}
	if c.l1 != nil {
		stats.ItemCount = int64(c.l1.Len())
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats, nil
}

// Ping checks the shared level; an L1-only cache is always reachable
func (c *MultiLevelCache) Ping(ctx context.Context) error {
	if c.l2 == nil {
		return nil
	}
	return c.l2.Ping(ctx)
}

func (c *MultiLevelCache) Close() error {
	if c.l1 != nil {
		c.l1.Purge()
	}
	if c.l2 != nil {
		return c.l2.Close()
	}
	return nil
}

type metrics struct {
	l1Hits atomic.Int64
	l2Hits atomic.Int64
	misses atomic.Int64
}

func newMetrics() *metrics {
	return &metrics{}
}

func (m *metrics) recordL1Hit() { m.l1Hits.Add(1) }
func (m *metrics) recordL2Hit() { m.l2Hits.Add(1) }
func (m *metrics) recordMiss()  { m.misses.Add(1) }

func (m *metrics) getHits() int64   { return m.l1Hits.Load() + m.l2Hits.Load() }
func (m *metrics) getL1Hits() int64 { return m.l1Hits.Load() }
func (m *metrics) getL2Hits() int64 { return m.l2Hits.Load() }
func (m *metrics) getMisses() int64 { return m.misses.Load() }
