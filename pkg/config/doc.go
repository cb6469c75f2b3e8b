// Package config loads ordcheck configuration from an optional YAML file and ORDCHECK_*
// environment variables. Environment values win over the file, and both win over the
// defaults.
//
// Server settings:
//
//	ORDCHECK_HOST="0.0.0.0"
//	ORDCHECK_PORT="8080"
//	ORDCHECK_MAX_BODY_BYTES="10485760"
//	ORDCHECK_CORS_ORIGINS="https://eln.example.org"
//
// Storage settings:
//
//	ORDCHECK_STORAGE_TYPE="postgres"  # filesystem, postgres, sqlite
//	ORDCHECK_FILESYSTEM_ROOT="/var/lib/ordcheck"
//	ORDCHECK_DATABASE_URL="postgres://localhost/ordcheck"
//	ORDCHECK_DATABASE_MAX_CONNS="20"
//
// Cache settings:
//
//	ORDCHECK_CACHE_ENABLED="true"
//	ORDCHECK_REDIS_URL="redis://localhost:6379/0"
//
// Engine settings. ORDCHECK_ENGINE_CONFIG names a YAML file with max_depth, max_nodes
// and disabled_rules:
//
//	ORDCHECK_ENGINE_CONFIG="/etc/ordcheck/engine.yaml"
//	ORDCHECK_DISABLED_RULES="ordering,provenance"
//
// Import settings:
//
//	ORDCHECK_IMPORT_WORKERS="4"
//	ORDCHECK_IMPORT_MODE="normalize"  # normalize, validate
//	ORDCHECK_S3_BUCKET="ord-inbox"
//	ORDCHECK_ARCHIVE_BUCKET="ord-canonical"
//	ORDCHECK_INBOX_DIR="/srv/inbox"
//	ORDCHECK_IMPORT_SCHEDULE="@every 15m"
//
// Observability settings:
//
//	ORDCHECK_LOG_LEVEL="info"  # debug, info, warn, error
//	ORDCHECK_LOG_FORMAT="text"  # text, json
//	ORDCHECK_METRICS_ENABLED="true"
//	ORDCHECK_OTEL_ENABLED="true"
//	ORDCHECK_OTEL_ENDPOINT="otel-collector:4317"
package config
