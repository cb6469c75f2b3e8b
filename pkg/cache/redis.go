package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
)

// RedisClient is the shared second cache level
type RedisClient struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions builds client options from the L2 settings. L2Addr may be host:port or
// a redis:// URL.
func RedisOptions(config *Config) (*redis.Options, error) {
	if config.L2Addr == "" {
		return nil, fmt.Errorf("no Redis address provided")
	}

	var opts *redis.Options
	if strings.Contains(config.L2Addr, "://") {
		parsed, err := redis.ParseURL(config.L2Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: config.L2Addr, DB: config.L2DB}
	}
	if config.L2Password != "" {
		opts.Password = config.L2Password
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second
	return opts, nil
}

// NewRedisClient connects to Redis and pings it once
func NewRedisClient(config *Config) (*RedisClient, error) {
	opts, err := RedisOptions(config)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := config.L2KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisClient{client: client, prefix: prefix, ttl: config.L2TTL}, nil
}

func (c *RedisClient) key(key *Key) string {
	return c.prefix + key.String()
}

// Get returns ErrCacheMiss when the key is absent. Corrupt entries are deleted.
func (c *RedisClient) Get(ctx context.Context, key *Key) (*Entry, error) {
	k := c.key(key)
	data, err := c.client.Get(ctx, k).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.client.Del(ctx, k)
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}

func (c *RedisClient) Set(ctx context.Context, key *Key, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

func (c *RedisClient) Delete(ctx context.Context, key *Key) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Purge removes every key under the prefix
func (c *RedisClient) Purge(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan failed for prefix %s: %w", c.prefix, err)
	}
	return nil
}

// Ping checks Redis connectivity
func (c *RedisClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetClient returns the underlying Redis client for health checks
func (c *RedisClient) GetClient() *redis.Client {
	return c.client
}

func (c *RedisClient) Close() error {
	return c.client.Close()
}
