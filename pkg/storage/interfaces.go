package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/platinummonkey/ordcheck/pkg/validation"
)

var (
	// ErrNotFound is returned when a record id is unknown
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is returned when a record is missing required fields
	ErrInvalidRecord = errors.New("invalid record")
)

// Record is a processed reaction record together with its report. Canonical holds the
// normalized record in JSON form and Digest the sha256 of the raw input it came from.
type Record struct {
	ID        string             `json:"id"`
	Source    string             `json:"source"`
	Format    string             `json:"format"`
	Digest    string             `json:"digest"`
	Canonical []byte             `json:"canonical,omitempty"`
	Report    *validation.Report `json:"report"`
	Accepted  bool               `json:"accepted"`
	CreatedAt time.Time          `json:"created_at"`
}

// Validate checks the fields every backend relies on
func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	if r.Digest == "" {
		return fmt.Errorf("%w: digest is required", ErrInvalidRecord)
	}
	if r.Report == nil {
		return fmt.Errorf("%w: report is required", ErrInvalidRecord)
	}
	return nil
}

// ListFilter narrows ListRecords. A nil Accepted returns both accepted and rejected
// records.
type ListFilter struct {
	Accepted *bool
	Limit    int
	Offset   int
}

// RecordStore persists processed records
type RecordStore interface {
	// PutRecord inserts or replaces the record with the same id
	PutRecord(ctx context.Context, record *Record) error
	GetRecord(ctx context.Context, id string) (*Record, error)
	// GetRecordByDigest returns the newest record with the given input digest
	GetRecordByDigest(ctx context.Context, digest string) (*Record, error)
	// ListRecords returns one page, newest first, and the total matching count
	ListRecords(ctx context.Context, filter ListFilter) ([]*Record, int64, error)
	DeleteRecord(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// Config for storage backend
type Config struct {
	Type string `yaml:"type"` // "filesystem", "postgres", "sqlite"

	// Filesystem config
	FilesystemRoot string `yaml:"filesystem_root"`

	// SQL config. DatabaseURL is a postgres URL or a sqlite file path.
	DatabaseURL string        `yaml:"database_url"`
	ReplicaURLs []string      `yaml:"replica_urls"`
	MaxConns    int           `yaml:"max_conns"`
	MinConns    int           `yaml:"min_conns"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Type:           "filesystem",
		FilesystemRoot: "/tmp/ordcheck",
		MaxConns:       20,
		MinConns:       2,
		Timeout:        30 * time.Second,
	}
}

// Validate checks that the selected backend has what it needs
func (c Config) Validate() error {
	switch c.Type {
	case "filesystem":
		if c.FilesystemRoot == "" {
			return fmt.Errorf("filesystem storage requires a root directory")
		}
	case "postgres", "sqlite":
		if c.DatabaseURL == "" {
			return fmt.Errorf("%s storage requires a database url", c.Type)
		}
	default:
		return fmt.Errorf("unknown storage type %q (expected filesystem, postgres or sqlite)", c.Type)
	}
	return nil
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
)

// Normalize clamps limit and offset into the supported range
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
