// Package cache stores processing results keyed by record content.
//
// Key format version: v1
// Format: v1:{mode}:{format}:{engineHash}:{recordHash}
//
// The engine hash covers every setting that changes findings (traversal limits and
// the enabled rule set, sorted by name). Changing the hashing below invalidates every
// cached result, so bump the version when doing so.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/validation"
)

const keyVersion = "v1"

// Key identifies one processing result
type Key struct {
	Mode       string // "normalize" or "validate"
	Format     string // codec format of the raw record
	RecordHash string
	EngineHash string
}

// NewKey hashes the raw record bytes into a key
func NewKey(mode, format string, record []byte, engineHash string) *Key {
	sum := sha256.Sum256(record)
	return &Key{
		Mode:       mode,
		Format:     format,
		RecordHash: hex.EncodeToString(sum[:]),
		EngineHash: engineHash,
	}
}

func (k *Key) String() string {
	return strings.Join([]string{keyVersion, k.Mode, k.Format, k.EngineHash, k.RecordHash}, ":")
}

// EngineFingerprint hashes the engine settings that affect findings. Rule order does
// not matter.
func EngineFingerprint(config *validation.Config, ruleNames []string) string {
	sorted := make([]string, len(ruleNames))
	copy(sorted, ruleNames)
	sort.Strings(sorted)

	hasher := sha256.New()
	if config != nil {
		hasher.Write([]byte(strconv.Itoa(config.MaxDepth)))
		hasher.Write([]byte{0})
		hasher.Write([]byte(strconv.Itoa(config.MaxNodes)))
		hasher.Write([]byte{0})
	}
	for _, name := range sorted {
		hasher.Write([]byte(name))
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}

// ValidateKey validates a cache key
func ValidateKey(key *Key) error {
	if key == nil {
		return fmt.Errorf("%w: key is nil", ErrInvalidCacheKey)
	}
	if key.Mode == "" {
		return fmt.Errorf("%w: mode is required", ErrInvalidCacheKey)
	}
	if key.RecordHash == "" {
		return fmt.Errorf("%w: record hash is required", ErrInvalidCacheKey)
	}
	if key.EngineHash == "" {
		return fmt.Errorf("%w: engine hash is required", ErrInvalidCacheKey)
	}
	return nil
}
