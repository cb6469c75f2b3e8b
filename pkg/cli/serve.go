package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/platinummonkey/ordcheck/pkg/api"
	"github.com/platinummonkey/ordcheck/pkg/async"
	"github.com/platinummonkey/ordcheck/pkg/cache"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/middleware"
	"github.com/platinummonkey/ordcheck/pkg/observability"
	"github.com/platinummonkey/ordcheck/pkg/storage/sqlstore"
	"github.com/platinummonkey/ordcheck/pkg/swagger"
)

// Version is reported by the health endpoints
var Version = "dev"

const dbStatsInterval = 15 * time.Second

func newServeCommand() *Command {
	cmd := &Command{
		Name:        "serve",
		Description: "Run the HTTP API, plus the inbox watcher and import schedule when configured",
		Flags:       newFlagSet("serve"),
	}

	configPath := cmd.Flags.String("config", "", "Path to a YAML config file")
	port := cmd.Flags.String("port", "", "Port to listen on (default from config)")
	logLevel := cmd.Flags.String("log-level", "", "Log level (default from config)")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		a, err := newApp(appOptions{
			configPath: *configPath,
			logLevel:   *logLevel,
			withCache:  true,
			withStore:  true,
			telemetry:  true,
		})
		if err != nil {
			return err
		}
		if *port != "" {
			a.cfg.Server.Port = *port
		}
		return a.serve(context.Background())
	}

	return cmd
}

// serve blocks until a signal arrives or ctx is done, then shuts everything down
func (a *app) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts, err := a.importerOptions(ctx)
	if err != nil {
		a.Close()
		return err
	}
	importer := ingest.NewImporter(a.processor, a.store, a.cfg.Import.ImportConfig, opts...)

	health := observability.NewHealthChecker(Version)
	health.AddCheck("storage", true, a.store.HealthCheck)
	if pinger, ok := a.cache.(interface{ Ping(context.Context) error }); ok && a.cfg.Cache.EnableL2 {
		health.AddCheck("cache", false, pinger.Ping)
	}

	s3src, err := a.s3Source(ctx)
	if err != nil {
		a.Close()
		return err
	}
	if s3src != nil {
		health.AddCheck("s3", false, s3src.HealthCheck)
	}

	var tasks []*async.Task
	limiter, err := a.rateLimiter(ctx, &tasks)
	if err != nil {
		a.Close()
		return err
	}

	serverOpts := []api.Option{
		api.WithStore(a.store, importer),
		api.WithHealth(health),
		api.WithMetrics(a.metrics, a.registry),
		api.WithLogger(a.logger),
		api.WithConfig(api.Config{
			MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
			CORSOrigins:  a.cfg.Server.CORSOrigins,
		}),
	}
	if limiter != nil {
		serverOpts = append(serverOpts, api.WithRateLimit(limiter, a.cfg.Server.RateLimit))
	}
	server := api.NewServer(a.processor, serverOpts...)

	docs, err := swagger.NewSwaggerHandlers()
	if err != nil {
		a.Close()
		return err
	}
	server.RegisterRoutes(docs)

	httpServer := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	var scheduler *ingest.Scheduler
	if spec := a.cfg.Import.Schedule; spec != "" {
		if s3src == nil {
			a.Close()
			return errors.New("an import schedule needs an S3 bucket to import from")
		}
		scheduler = ingest.NewScheduler(importer, a.logger)
		if err := scheduler.AddImport(spec, s3src); err != nil {
			a.Close()
			return err
		}
		scheduler.Start()
		a.logger.WithField("schedule", spec).WithField("source", s3src.Name()).Info("Scheduled imports enabled")
	}

	if dir := a.cfg.Import.InboxDir; dir != "" {
		watcher, err := ingest.NewWatcher(dir, importer, a.cfg.Import.Debounce, a.logger)
		if err != nil {
			a.Close()
			return err
		}
		tasks = append(tasks, async.Go(ctx, a.logger, "inbox watcher", watcher.Run))
	}

	if db, ok := a.store.(*sqlstore.Store); ok && a.metrics != nil {
		tasks = append(tasks, async.Every(ctx, a.logger, "db stats", dbStatsInterval, func(context.Context) {
			a.metrics.UpdateDBStats(db.Stats().Primary)
		}))
	}

	shutdown := observability.NewShutdownManager(a.logger, httpServer, a.cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		cancel()
		if scheduler != nil {
			select {
			case <-scheduler.Stop().Done():
			case <-ctx.Done():
				return fmt.Errorf("scheduled import still running: %w", ctx.Err())
			}
		}
		// task failures were logged as they happened; only running out of time aborts
		if err := async.Wait(ctx, tasks...); err != nil && ctx.Err() != nil {
			return err
		}
		a.Close()
		return nil
	})

	waitCtx, stopWaiting := context.WithCancel(ctx)
	defer stopWaiting()

	// a listener failure ends the wait as if a signal had arrived
	listenErr := make(chan error, 1)
	go func() {
		a.logger.WithField("addr", httpServer.Addr).Info("Starting ordcheck API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
			stopWaiting()
		}
	}()

	if err := shutdown.WaitForShutdown(waitCtx); err != nil {
		return err
	}
	select {
	case err := <-listenErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	default:
	}
	a.logger.Info("Server stopped")
	return nil
}

// rateLimiter builds the configured limiter, or nil when limiting is off. The memory
// limiter gets a cleanup task appended to tasks.
func (a *app) rateLimiter(ctx context.Context, tasks *[]*async.Task) (middleware.Limiter, error) {
	cfg := a.cfg.Server.RateLimit
	if !cfg.Enabled {
		return nil, nil
	}

	if cfg.Distributed {
		opts, err := cache.RedisOptions(&a.cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("distributed rate limiting: %w", err)
		}
		client := redis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		a.logger.WithField("redis", opts.Addr).Info("Rate limiting through redis")
		return middleware.NewRedisLimiter(client, cfg), nil
	}

	limiter := middleware.NewMemoryLimiter(cfg)
	*tasks = append(*tasks, async.Every(ctx, a.logger, "rate limit cleanup", cfg.WindowDuration, func(context.Context) {
		if n := limiter.Cleanup(); n > 0 {
			a.logger.WithField("removed", n).Debug("Dropped idle rate limit buckets")
		}
	}))
	return limiter, nil
}
