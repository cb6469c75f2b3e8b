package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/webhooks"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ORDCHECK_TEST_VAR", "custom")

	assert.Equal(t, "custom", getEnv("ORDCHECK_TEST_VAR", "default"))
	assert.Equal(t, "default", getEnv("ORDCHECK_TEST_VAR_NOT_SET", "default"))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"true", "true", false, true},
		{"TRUE", "TRUE", false, true},
		{"one", "1", false, true},
		{"false", "false", true, false},
		{"garbage", "yes please", true, false},
		{"unset", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ORDCHECK_TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.want, getEnvBool("ORDCHECK_TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("ORDCHECK_TEST_INT", "42")
	t.Setenv("ORDCHECK_TEST_BAD_INT", "forty-two")
	t.Setenv("ORDCHECK_TEST_DURATION", "90s")
	t.Setenv("ORDCHECK_TEST_BAD_DURATION", "soon")

	assert.Equal(t, 42, getEnvInt("ORDCHECK_TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("ORDCHECK_TEST_BAD_INT", 1))
	assert.Equal(t, int64(42), getEnvInt64("ORDCHECK_TEST_INT", 1))
	assert.Equal(t, 90*time.Second, getEnvDuration("ORDCHECK_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("ORDCHECK_TEST_BAD_DURATION", time.Second))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b,,c "))
	assert.Nil(t, splitList(" , "))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "filesystem", cfg.Storage.Type)
	assert.True(t, cfg.Cache.EnableL1)
	assert.False(t, cfg.Cache.EnableL2)
	assert.Equal(t, ingest.ModeNormalize, cfg.Import.Mode)
	assert.Equal(t, ingest.DefaultWorkers, cfg.Import.Workers)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.False(t, cfg.Observability.OTelEnabled)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("ORDCHECK_PORT", "9000")
	t.Setenv("ORDCHECK_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ORDCHECK_STORAGE_TYPE", "sqlite")
	t.Setenv("ORDCHECK_DATABASE_URL", "/var/lib/ordcheck/records.db")
	t.Setenv("ORDCHECK_REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("ORDCHECK_DISABLED_RULES", "ordering,provenance")
	t.Setenv("ORDCHECK_IMPORT_MODE", "VALIDATE")
	t.Setenv("ORDCHECK_IMPORT_WORKERS", "8")
	t.Setenv("ORDCHECK_S3_BUCKET", "records")
	t.Setenv("ORDCHECK_LOG_FORMAT", "json")
	t.Setenv("ORDCHECK_RATE_LIMIT_ENABLED", "true")
	t.Setenv("ORDCHECK_RATE_LIMIT_WINDOW", "10s")
	t.Setenv("ORDCHECK_WEBHOOK_URLS", "https://hooks.example/a,https://hooks.example/b")
	t.Setenv("ORDCHECK_WEBHOOK_SECRET", "shh")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "/var/lib/ordcheck/records.db", cfg.Storage.DatabaseURL)
	assert.True(t, cfg.Cache.EnableL2)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Cache.L2Addr)
	assert.Equal(t, []string{"ordering", "provenance"}, cfg.Engine.DisabledRules)
	assert.Equal(t, ingest.ModeValidate, cfg.Import.Mode)
	assert.Equal(t, 8, cfg.Import.Workers)
	assert.Equal(t, "records", cfg.Import.S3.Bucket)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Server.RateLimit.WindowDuration)
	assert.Equal(t, 600, cfg.Server.RateLimit.RequestsPerWindow)
	require.Len(t, cfg.Webhooks.Endpoints, 2)
	assert.Equal(t, "https://hooks.example/b", cfg.Webhooks.Endpoints[1].URL)
	assert.Equal(t, "shh", cfg.Webhooks.Endpoints[1].Secret)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ordcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
  shutdown_timeout: 5s
storage:
  type: postgres
  database_url: postgres://localhost/ordcheck
engine:
  max_depth: 12
import:
  workers: 2
  store_rejected: true
  inbox_dir: /srv/inbox
  schedule: "@hourly"
webhooks:
  endpoints:
    - url: https://hooks.example/ordcheck
      events: [record.rejected]
  retry:
    max_attempts: 2
`), 0644))

	t.Setenv("ORDCHECK_PORT", "7171")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7171", cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "absent fields keep defaults")
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, 12, cfg.Engine.MaxDepth)
	assert.Equal(t, 2, cfg.Import.Workers)
	assert.True(t, cfg.Import.StoreRejected)
	assert.True(t, cfg.Import.SkipDuplicates)
	assert.Equal(t, "/srv/inbox", cfg.Import.InboxDir)
	assert.Equal(t, "@hourly", cfg.Import.Schedule)
	require.Len(t, cfg.Webhooks.Endpoints, 1)
	assert.Equal(t, []webhooks.EventType{webhooks.EventRecordRejected}, cfg.Webhooks.Endpoints[0].Events)
	assert.Equal(t, 2, cfg.Webhooks.Retry.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.Webhooks.Timeout)
}

func TestLoadEngineConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_nodes: 500\ndisabled_rules: [ordering]\n"), 0644))
	t.Setenv("ORDCHECK_ENGINE_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Engine.MaxNodes)
	assert.Equal(t, []string{"ordering"}, cfg.Engine.DisabledRules)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [unterminated"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server port is required"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max body bytes"},
		{"postgres without url", func(c *Config) { c.Storage.Type = "postgres" }, "database url"},
		{"unknown storage", func(c *Config) { c.Storage.Type = "tape" }, "unknown storage type"},
		{"redis without address", func(c *Config) { c.Cache.EnableL2 = true }, "redis address"},
		{
			name: "rate limit window",
			mutate: func(c *Config) {
				c.Server.RateLimit.Enabled = true
				c.Server.RateLimit.WindowDuration = 0
			},
			wantErr: "rate limit window",
		},
		{
			name: "distributed rate limit without redis",
			mutate: func(c *Config) {
				c.Server.RateLimit.Enabled = true
				c.Server.RateLimit.Distributed = true
			},
			wantErr: "distributed rate limiting",
		},
		{"engine depth", func(c *Config) { c.Engine.MaxDepth = 0 }, "max_depth"},
		{"unknown mode", func(c *Config) { c.Import.Mode = "repair" }, "unknown mode"},
		{"no workers", func(c *Config) { c.Import.Workers = 0 }, "import workers"},
		{"log format", func(c *Config) { c.Observability.LogFormat = "xml" }, "invalid log format"},
		{
			name: "webhook url",
			mutate: func(c *Config) {
				c.Webhooks.Endpoints = []webhooks.Endpoint{{URL: "not a url"}}
			},
			wantErr: "webhook endpoint 0",
		},
		{
			name: "otel without endpoint",
			mutate: func(c *Config) {
				c.Observability.OTelEnabled = true
				c.Observability.OTelEndpoint = ""
			},
			wantErr: "OpenTelemetry endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
