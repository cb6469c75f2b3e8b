// Package observability provides structured logging, Prometheus metrics, health checks
// and OpenTelemetry tracing for ordcheck.
//
// # Logging
//
// Loggers are logrus loggers configured by level and format:
//
//	logger := observability.NewLogger("info", "json", os.Stderr)
//	ctx = observability.WithLogger(ctx, logger)
//	observability.FromContext(ctx).WithField("source", path).Info("Record accepted")
//
// FromContext attaches the request id and, when a span is recording, the trace and
// span ids.
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RecordProcessed("validate", true, nil, time.Since(start))
//	router.Handle("/metrics", observability.MetricsHandler(registry))
//
// All recording methods accept a nil *Metrics.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(version)
//	checker.AddCheck("storage", true, store.HealthCheck)
//	checker.AddCheck("cache", false, cache.Ping)
//
// A failing critical check marks the service unhealthy and Readiness answers 503. A
// failing optional check only degrades it.
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, cfg.OTel, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// Spans are started from Tracer(), which resolves against the global provider, so
// tracing is a no-op until InitOTel succeeds.
//
// # Graceful Shutdown
//
//	sm := observability.NewShutdownManager(logger, server, 30*time.Second)
//	sm.RegisterShutdownFunc(store.Close)
//	sm.WaitForShutdown(ctx)
package observability
