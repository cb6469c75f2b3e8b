package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platinummonkey/ordcheck/pkg/validation"
)

func TestNewKey(t *testing.T) {
	k := NewKey("validate", "yaml", []byte("inputs: {}"), "eng")

	assert.Equal(t, "validate", k.Mode)
	assert.Equal(t, "yaml", k.Format)
	assert.Len(t, k.RecordHash, 64)
	assert.True(t, strings.HasPrefix(k.String(), "v1:validate:yaml:eng:"))

	same := NewKey("validate", "yaml", []byte("inputs: {}"), "eng")
	assert.Equal(t, k.String(), same.String())

	other := NewKey("validate", "yaml", []byte("inputs: {a: 1}"), "eng")
	assert.NotEqual(t, k.RecordHash, other.RecordHash)
}

func TestEngineFingerprint(t *testing.T) {
	cfg := validation.DefaultConfig()

	a := EngineFingerprint(cfg, []string{"units", "references"})
	b := EngineFingerprint(cfg, []string{"references", "units"})
	assert.Equal(t, a, b, "rule order must not change the fingerprint")
	assert.Len(t, a, 16)

	fewer := EngineFingerprint(cfg, []string{"units"})
	assert.NotEqual(t, a, fewer)

	shallow := validation.DefaultConfig()
	shallow.MaxDepth = 3
	assert.NotEqual(t, a, EngineFingerprint(shallow, []string{"units", "references"}))
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     *Key
		wantErr bool
	}{
		{"nil", nil, true},
		{"missing mode", &Key{RecordHash: "r", EngineHash: "e"}, true},
		{"missing record hash", &Key{Mode: "normalize", EngineHash: "e"}, true},
		{"missing engine hash", &Key{Mode: "normalize", RecordHash: "r"}, true},
		{"valid", &Key{Mode: "normalize", RecordHash: "r", EngineHash: "e"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCacheKey)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
