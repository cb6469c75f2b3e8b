package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/ordcheck/pkg/cache"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/middleware"
	"github.com/platinummonkey/ordcheck/pkg/storage"
	"github.com/platinummonkey/ordcheck/pkg/validation"
	"github.com/platinummonkey/ordcheck/pkg/webhooks"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Storage configuration
	Storage storage.Config `yaml:"storage"`

	// Result cache configuration
	Cache cache.Config `yaml:"cache"`

	// Engine limits and rule toggles
	Engine validation.Config `yaml:"engine"`

	// Batch import, inbox watching and scheduled imports
	Import ImportConfig `yaml:"import"`

	// Endpoints notified about imports
	Webhooks webhooks.Config `yaml:"webhooks"`

	// Observability configuration
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	CORSOrigins     []string      `yaml:"cors_origins"`

	RateLimit middleware.RateLimitConfig `yaml:"rate_limit"`
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// ImportConfig holds batch import settings and where records come from
type ImportConfig struct {
	ingest.ImportConfig `yaml:",inline"`

	// S3 source and archive. Empty bucket disables both.
	S3            ingest.S3Config `yaml:"s3"`
	ArchiveBucket string          `yaml:"archive_bucket"`
	ArchivePrefix string          `yaml:"archive_prefix"`

	// Inbox directory for watch mode
	InboxDir string        `yaml:"inbox_dir"`
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is a cron spec for importing from the S3 source
	Schedule string `yaml:"schedule"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Metrics
	MetricsEnabled bool `yaml:"metrics_enabled"`

	// OpenTelemetry
	OTelEnabled        bool   `yaml:"otel_enabled"`
	OTelEndpoint       string `yaml:"otel_endpoint"`
	OTelServiceName    string `yaml:"otel_service_name"`
	OTelServiceVersion string `yaml:"otel_service_version"`
	OTelInsecure       bool   `yaml:"otel_insecure"` // Use insecure gRPC connection
}

// Default returns the configuration used when neither a file nor the environment say otherwise
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    10 << 20,
			RateLimit:       middleware.DefaultRateLimitConfig(),
		},
		Storage: storage.DefaultConfig(),
		Cache:   *cache.DefaultConfig(),
		Engine:  *validation.DefaultConfig(),
		Import: ImportConfig{
			ImportConfig:  ingest.DefaultImportConfig(),
			ArchivePrefix: "canonical/",
			Debounce:      ingest.DefaultDebounce,
		},
		Webhooks: webhooks.DefaultConfig(),
		Observability: ObservabilityConfig{
			LogLevel:           "info",
			LogFormat:          "text",
			MetricsEnabled:     true,
			OTelEndpoint:       "localhost:4317",
			OTelServiceName:    "ordcheck",
			OTelServiceVersion: "1.0.0",
			OTelInsecure:       true,
		},
	}
}

// LoadConfig loads configuration from the file named by ORDCHECK_CONFIG, if any, and
// the environment
func LoadConfig() (*Config, error) {
	return Load(getEnv("ORDCHECK_CONFIG", ""))
}

// Load reads path as YAML over the defaults, then applies ORDCHECK_* environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	loadServerConfig(&cfg.Server)
	loadStorageConfig(&cfg.Storage)
	loadCacheConfig(&cfg.Cache)
	if err := loadEngineConfig(&cfg.Engine); err != nil {
		return nil, err
	}
	loadImportConfig(&cfg.Import)
	loadWebhooksConfig(&cfg.Webhooks)
	loadObservabilityConfig(&cfg.Observability)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig(cfg *ServerConfig) {
	cfg.Host = getEnv("ORDCHECK_HOST", cfg.Host)
	cfg.Port = getEnv("ORDCHECK_PORT", cfg.Port)
	cfg.ReadTimeout = getEnvDuration("ORDCHECK_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvDuration("ORDCHECK_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.IdleTimeout = getEnvDuration("ORDCHECK_IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.ShutdownTimeout = getEnvDuration("ORDCHECK_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MaxBodyBytes = getEnvInt64("ORDCHECK_MAX_BODY_BYTES", cfg.MaxBodyBytes)
	if origins := getEnv("ORDCHECK_CORS_ORIGINS", ""); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	cfg.RateLimit.Enabled = getEnvBool("ORDCHECK_RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.RequestsPerWindow = getEnvInt("ORDCHECK_RATE_LIMIT_REQUESTS", cfg.RateLimit.RequestsPerWindow)
	cfg.RateLimit.WindowDuration = getEnvDuration("ORDCHECK_RATE_LIMIT_WINDOW", cfg.RateLimit.WindowDuration)
	cfg.RateLimit.BurstSize = getEnvInt("ORDCHECK_RATE_LIMIT_BURST", cfg.RateLimit.BurstSize)
	cfg.RateLimit.TrustProxy = getEnvBool("ORDCHECK_RATE_LIMIT_TRUST_PROXY", cfg.RateLimit.TrustProxy)
	cfg.RateLimit.Distributed = getEnvBool("ORDCHECK_RATE_LIMIT_DISTRIBUTED", cfg.RateLimit.Distributed)
}

// loadStorageConfig loads storage configuration from environment
func loadStorageConfig(cfg *storage.Config) {
	// Storage type
	if storageType := getEnv("ORDCHECK_STORAGE_TYPE", ""); storageType != "" {
		cfg.Type = storageType
	}

	// Filesystem config
	if fsRoot := getEnv("ORDCHECK_FILESYSTEM_ROOT", ""); fsRoot != "" {
		cfg.FilesystemRoot = fsRoot
	}

	// SQL config
	if dbURL := getEnv("ORDCHECK_DATABASE_URL", ""); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if replicaURLs := getEnv("ORDCHECK_DATABASE_REPLICA_URLS", ""); replicaURLs != "" {
		cfg.ReplicaURLs = splitList(replicaURLs)
	}
	if maxConns := getEnvInt("ORDCHECK_DATABASE_MAX_CONNS", 0); maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns := getEnvInt("ORDCHECK_DATABASE_MIN_CONNS", 0); minConns > 0 {
		cfg.MinConns = minConns
	}
	if timeout := getEnvDuration("ORDCHECK_DATABASE_TIMEOUT", 0); timeout > 0 {
		cfg.Timeout = timeout
	}
}

// loadCacheConfig loads cache configuration from environment
func loadCacheConfig(cfg *cache.Config) {
	cfg.EnableL1 = getEnvBool("ORDCHECK_CACHE_ENABLED", cfg.EnableL1)
	if entries := getEnvInt("ORDCHECK_CACHE_MAX_ENTRIES", 0); entries > 0 {
		cfg.L1MaxEntries = entries
	}
	cfg.L1TTL = getEnvDuration("ORDCHECK_CACHE_TTL", cfg.L1TTL)

	// Redis config
	if redisURL := getEnv("ORDCHECK_REDIS_URL", ""); redisURL != "" {
		cfg.EnableL2 = true
		cfg.L2Addr = redisURL
	}
	if redisPassword := getEnv("ORDCHECK_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.L2Password = redisPassword
	}
	if redisDB := getEnvInt("ORDCHECK_REDIS_DB", -1); redisDB >= 0 {
		cfg.L2DB = redisDB
	}
	cfg.L2TTL = getEnvDuration("ORDCHECK_REDIS_TTL", cfg.L2TTL)
}

// loadEngineConfig merges the engine YAML file named by ORDCHECK_ENGINE_CONFIG and
// the rule toggles from the environment
func loadEngineConfig(cfg *validation.Config) error {
	if path := getEnv("ORDCHECK_ENGINE_CONFIG", ""); path != "" {
		loaded, err := validation.LoadConfig(path)
		if err != nil {
			return err
		}
		*cfg = *loaded
	}
	cfg.MaxDepth = getEnvInt("ORDCHECK_MAX_DEPTH", cfg.MaxDepth)
	cfg.MaxNodes = getEnvInt("ORDCHECK_MAX_NODES", cfg.MaxNodes)
	if disabled := getEnv("ORDCHECK_DISABLED_RULES", ""); disabled != "" {
		cfg.DisabledRules = splitList(disabled)
	}
	return nil
}

// loadWebhooksConfig appends one endpoint per ORDCHECK_WEBHOOK_URLS entry, all
// subscribed to every event and signed with ORDCHECK_WEBHOOK_SECRET
func loadWebhooksConfig(cfg *webhooks.Config) {
	secret := getEnv("ORDCHECK_WEBHOOK_SECRET", "")
	for _, u := range splitList(getEnv("ORDCHECK_WEBHOOK_URLS", "")) {
		cfg.Endpoints = append(cfg.Endpoints, webhooks.Endpoint{URL: u, Secret: secret})
	}
	cfg.Timeout = getEnvDuration("ORDCHECK_WEBHOOK_TIMEOUT", cfg.Timeout)
}

// loadImportConfig loads import configuration from environment
func loadImportConfig(cfg *ImportConfig) {
	cfg.Workers = getEnvInt("ORDCHECK_IMPORT_WORKERS", cfg.Workers)
	if mode := getEnv("ORDCHECK_IMPORT_MODE", ""); mode != "" {
		cfg.Mode = ingest.Mode(strings.ToLower(mode))
	}
	cfg.SkipDuplicates = getEnvBool("ORDCHECK_IMPORT_SKIP_DUPLICATES", cfg.SkipDuplicates)
	cfg.StoreRejected = getEnvBool("ORDCHECK_IMPORT_STORE_REJECTED", cfg.StoreRejected)

	// S3 config
	cfg.S3.Bucket = getEnv("ORDCHECK_S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.Prefix = getEnv("ORDCHECK_S3_PREFIX", cfg.S3.Prefix)
	cfg.S3.Region = getEnv("ORDCHECK_S3_REGION", cfg.S3.Region)
	cfg.S3.Endpoint = getEnv("ORDCHECK_S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.AccessKey = getEnv("ORDCHECK_S3_ACCESS_KEY", cfg.S3.AccessKey)
	cfg.S3.SecretKey = getEnv("ORDCHECK_S3_SECRET_KEY", cfg.S3.SecretKey)
	cfg.S3.UsePathStyle = getEnvBool("ORDCHECK_S3_USE_PATH_STYLE", cfg.S3.UsePathStyle)
	cfg.ArchiveBucket = getEnv("ORDCHECK_ARCHIVE_BUCKET", cfg.ArchiveBucket)
	cfg.ArchivePrefix = getEnv("ORDCHECK_ARCHIVE_PREFIX", cfg.ArchivePrefix)

	cfg.InboxDir = getEnv("ORDCHECK_INBOX_DIR", cfg.InboxDir)
	cfg.Debounce = getEnvDuration("ORDCHECK_INBOX_DEBOUNCE", cfg.Debounce)
	cfg.Schedule = getEnv("ORDCHECK_IMPORT_SCHEDULE", cfg.Schedule)
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig(cfg *ObservabilityConfig) {
	cfg.LogLevel = getEnv("ORDCHECK_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("ORDCHECK_LOG_FORMAT", cfg.LogFormat)
	cfg.MetricsEnabled = getEnvBool("ORDCHECK_METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.OTelEnabled = getEnvBool("ORDCHECK_OTEL_ENABLED", cfg.OTelEnabled)
	cfg.OTelEndpoint = getEnv("ORDCHECK_OTEL_ENDPOINT", cfg.OTelEndpoint)
	cfg.OTelServiceName = getEnv("ORDCHECK_OTEL_SERVICE_NAME", cfg.OTelServiceName)
	cfg.OTelServiceVersion = getEnv("ORDCHECK_OTEL_SERVICE_VERSION", cfg.OTelServiceVersion)
	cfg.OTelInsecure = getEnvBool("ORDCHECK_OTEL_INSECURE", cfg.OTelInsecure)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if err := c.Server.RateLimit.Validate(); err != nil {
		return err
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.Distributed && !c.Cache.EnableL2 {
		return fmt.Errorf("distributed rate limiting needs the redis cache enabled")
	}

	if err := c.Storage.Validate(); err != nil {
		return err
	}

	if c.Cache.EnableL2 && c.Cache.L2Addr == "" {
		return fmt.Errorf("redis address is required when the redis cache is enabled")
	}

	// Rule names are checked against the registry when the engine is built
	if err := c.Engine.Validate(nil); err != nil {
		return err
	}

	if _, err := ingest.ParseMode(string(c.Import.Mode)); err != nil {
		return err
	}
	if c.Import.Workers < 1 {
		return fmt.Errorf("import workers must be at least 1, got %d", c.Import.Workers)
	}

	if err := c.Webhooks.Validate(); err != nil {
		return err
	}

	switch strings.ToLower(c.Observability.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Observability.LogFormat)
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
