package cache

import (
	"context"
	"time"

	"github.com/platinummonkey/ordcheck/pkg/validation"
)

const (
	DefaultL1MaxEntries = 4096
	DefaultL1TTL        = 5 * time.Minute
	DefaultL2TTL        = 24 * time.Hour
	DefaultKeyPrefix    = "ordcheck:result:"
)

// Entry is a cached processing result. Canonical holds the normalized record encoded
// as JSON and is empty for validate-only results.
type Entry struct {
	Report    *validation.Report `json:"report"`
	Canonical []byte             `json:"canonical,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Cache stores processing results by key
type Cache interface {
	Get(ctx context.Context, key *Key) (*Entry, error)
	Set(ctx context.Context, key *Key, entry *Entry) error
	Delete(ctx context.Context, key *Key) error
	Purge(ctx context.Context) error
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// Stats represents cache statistics
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	L1Hits    int64   `json:"l1_hits"`
	L2Hits    int64   `json:"l2_hits"`
	HitRate   float64 `json:"hit_rate"`
	ItemCount int64   `json:"item_count"`
}

// Config holds cache configuration
type Config struct {
	EnableL1     bool          `yaml:"enable_l1"`
	L1MaxEntries int           `yaml:"l1_max_entries"`
	L1TTL        time.Duration `yaml:"l1_ttl"`

	EnableL2    bool          `yaml:"enable_l2"`
	L2Addr      string        `yaml:"l2_addr"` // host:port or redis:// URL
	L2Password  string        `yaml:"l2_password"`
	L2DB        int           `yaml:"l2_db"`
	L2TTL       time.Duration `yaml:"l2_ttl"`
	L2KeyPrefix string        `yaml:"l2_key_prefix"`
}

// DefaultConfig returns an in-process cache without a Redis tier
func DefaultConfig() *Config {
	return &Config{
		EnableL1:     true,
		L1MaxEntries: DefaultL1MaxEntries,
		L1TTL:        DefaultL1TTL,
		L2TTL:        DefaultL2TTL,
		L2KeyPrefix:  DefaultKeyPrefix,
	}
}
