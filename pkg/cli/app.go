package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/ordcheck/pkg/cache"
	"github.com/platinummonkey/ordcheck/pkg/config"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/observability"
	"github.com/platinummonkey/ordcheck/pkg/storage"
	"github.com/platinummonkey/ordcheck/pkg/storage/sqlstore"
	"github.com/platinummonkey/ordcheck/pkg/validation"
	"github.com/platinummonkey/ordcheck/pkg/webhooks"
)

// webhookDrainTimeout bounds how long Close waits for queued webhook deliveries
const webhookDrainTimeout = 30 * time.Second

// app holds the components shared by the commands
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	engine    *validation.Engine
	cache     cache.Cache
	processor *ingest.Processor
	registry  *prometheus.Registry
	metrics   *observability.Metrics
	store     storage.RecordStore
	closers   []func() error
}

type appOptions struct {
	configPath string
	logLevel   string
	withCache  bool
	withStore  bool
	// telemetry starts the OTLP exporters when enabled in the config
	telemetry bool
}

func newApp(opts appOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Observability.LogLevel = opts.logLevel
	}

	a := &app{
		cfg:    cfg,
		logger: observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, stderr),
	}

	a.engine, err = validation.NewEngine(&cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	if cfg.Observability.MetricsEnabled {
		a.registry = prometheus.NewRegistry()
		a.metrics = observability.NewMetrics(a.registry)
	}

	procOpts := []ingest.ProcessorOption{
		ingest.WithLogger(a.logger),
		ingest.WithMetrics(a.metrics),
	}
	if opts.telemetry {
		otelMetrics, err := a.initTelemetry()
		if err != nil {
			return nil, err
		}
		procOpts = append(procOpts, ingest.WithOTelMetrics(otelMetrics))
	}
	if opts.withCache {
		c, err := cache.NewCache(&cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		a.cache = c
		a.closers = append(a.closers, c.Close)
		procOpts = append(procOpts, ingest.WithCache(c))
	}
	a.processor = ingest.NewProcessor(a.engine, procOpts...)

	if opts.withStore {
		store, err := openStore(cfg.Storage, a.logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.store = store
		a.closers = append(a.closers, store.Close)
	}

	return a, nil
}

func (a *app) initTelemetry() (*observability.OTelMetrics, error) {
	obs := a.cfg.Observability
	providers, err := observability.InitOTel(context.Background(), observability.OTelConfig{
		Enabled:        obs.OTelEnabled,
		Endpoint:       obs.OTelEndpoint,
		ServiceName:    obs.OTelServiceName,
		ServiceVersion: obs.OTelServiceVersion,
		Insecure:       obs.OTelInsecure,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	if providers != nil {
		a.closers = append(a.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return observability.ShutdownOTel(ctx, providers, a.logger)
		})
	}

	m, err := observability.NewOTelMetrics()
	if err != nil {
		a.Close()
		return nil, err
	}
	return m, nil
}

// openStore builds the record store selected by cfg.Type
func openStore(cfg storage.Config, logger *logrus.Logger) (storage.RecordStore, error) {
	switch cfg.Type {
	case "filesystem":
		logger.WithField("root", cfg.FilesystemRoot).Info("Using filesystem record store")
		return storage.NewFileSystemStore(cfg.FilesystemRoot)
	case "postgres", "sqlite":
		logger.WithField("type", cfg.Type).Info("Using SQL record store")
		return sqlstore.Open(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// s3Source connects to the configured bucket. It returns nil when no bucket is set.
func (a *app) s3Source(ctx context.Context) (*ingest.S3Source, error) {
	s3cfg := a.cfg.Import.S3
	if s3cfg.Bucket == "" {
		return nil, nil
	}
	client, err := ingest.NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, err
	}
	return ingest.NewS3Source(client, s3cfg.Bucket, s3cfg.Prefix), nil
}

// importerOptions adds the canonical archive when an archive bucket is configured and
// webhook notifications when endpoints are
func (a *app) importerOptions(ctx context.Context) ([]ingest.ImporterOption, error) {
	opts := []ingest.ImporterOption{
		ingest.WithImportLogger(a.logger),
		ingest.WithImportMetrics(a.metrics),
	}
	if len(a.cfg.Webhooks.Endpoints) > 0 {
		dispatcher, err := webhooks.NewDispatcher(a.cfg.Webhooks, nil, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), webhookDrainTimeout)
			defer cancel()
			return dispatcher.Close(ctx)
		})
		opts = append(opts, ingest.WithNotifier(webhooks.NewNotifier(dispatcher)))
		a.logger.WithField("endpoints", len(a.cfg.Webhooks.Endpoints)).Info("Webhook notifications enabled")
	}
	if bucket := a.cfg.Import.ArchiveBucket; bucket != "" {
		s3cfg := a.cfg.Import.S3
		s3cfg.Bucket = bucket
		client, err := ingest.NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ingest.WithArchive(ingest.NewS3Archive(client, bucket, a.cfg.Import.ArchivePrefix)))
	}
	return opts, nil
}

// Close releases the store and cache in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.WithError(err).Warn("Failed to close component")
		}
	}
	a.closers = nil
}

// readInput reads a named file, or stdin for "-"
func readInput(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
