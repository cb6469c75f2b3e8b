package observability

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Recording methods are safe on a nil *Metrics
// so components can run without a registry.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Processing metrics
	RecordsProcessedTotal *prometheus.CounterVec
	ProcessingDuration    *prometheus.HistogramVec
	FindingsTotal         *prometheus.CounterVec
	DecodeErrorsTotal     *prometheus.CounterVec

	// Import metrics
	ImportRunsTotal    *prometheus.CounterVec
	ImportRunDuration  prometheus.Histogram
	ImportRecordsTotal *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal prometheus.Counter

	// Storage metrics
	StorageOperationsTotal   *prometheus.CounterVec
	StorageOperationDuration *prometheus.HistogramVec

	// Database metrics
	DBConnectionsActive prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge
	DBConnectionsWait   prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ordcheck_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ordcheck_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "route"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ordcheck_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "route"},
		),

		RecordsProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_records_processed_total",
				Help: "Records processed, by mode and outcome (accepted or rejected)",
			},
			[]string{"mode", "outcome"},
		),
		ProcessingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ordcheck_processing_duration_seconds",
				Help:    "Time spent decoding and checking one record",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1},
			},
			[]string{"mode"},
		),
		FindingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_findings_total",
				Help: "Findings reported, by kind and severity",
			},
			[]string{"kind", "severity"},
		),
		DecodeErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_decode_errors_total",
				Help: "Records that could not be decoded at all",
			},
			[]string{"format"},
		),

		ImportRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_import_runs_total",
				Help: "Batch import runs, by status",
			},
			[]string{"status"},
		),
		ImportRunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ordcheck_import_run_duration_seconds",
				Help:    "Batch import run duration in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 900},
			},
		),
		ImportRecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_import_records_total",
				Help: "Records seen by batch imports, by result",
			},
			[]string{"result"},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_cache_hits_total",
				Help: "Total number of result cache hits",
			},
			[]string{"mode"},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ordcheck_cache_misses_total",
				Help: "Total number of result cache misses",
			},
		),

		StorageOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordcheck_storage_operations_total",
				Help: "Total number of storage operations",
			},
			[]string{"operation", "status"},
		),
		StorageOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ordcheck_storage_operation_duration_seconds",
				Help:    "Storage operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		DBConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ordcheck_db_connections_active",
				Help: "Number of active database connections",
			},
		),
		DBConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ordcheck_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBConnectionsWait: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ordcheck_db_connections_wait_count",
				Help: "Total number of connections waited for",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSize,
		m.HTTPResponseSize,
		m.RecordsProcessedTotal,
		m.ProcessingDuration,
		m.FindingsTotal,
		m.DecodeErrorsTotal,
		m.ImportRunsTotal,
		m.ImportRunDuration,
		m.ImportRecordsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.StorageOperationsTotal,
		m.StorageOperationDuration,
		m.DBConnectionsActive,
		m.DBConnectionsIdle,
		m.DBConnectionsWait,
	)

	return m
}

// FindingCount is one (kind, severity) bucket of a report
type FindingCount struct {
	Kind     string
	Severity string
	Count    int
}

// RecordProcessed records one checked record
func (m *Metrics) RecordProcessed(mode string, accepted bool, findings []FindingCount, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	m.RecordsProcessedTotal.WithLabelValues(mode, outcome).Inc()
	m.ProcessingDuration.WithLabelValues(mode).Observe(duration.Seconds())
	for _, f := range findings {
		m.FindingsTotal.WithLabelValues(f.Kind, f.Severity).Add(float64(f.Count))
	}
}

// RecordDecodeError records a record rejected before checking
func (m *Metrics) RecordDecodeError(format string) {
	if m == nil {
		return
	}
	m.DecodeErrorsTotal.WithLabelValues(format).Inc()
}

// RecordCacheLookup records a result cache lookup
func (m *Metrics) RecordCacheLookup(mode string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(mode).Inc()
	} else {
		m.CacheMissesTotal.Inc()
	}
}

// RecordStorageOperation records one store call
func (m *Metrics) RecordStorageOperation(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	m.StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordImportRun records a finished batch import
func (m *Metrics) RecordImportRun(err error, duration time.Duration, accepted, rejected, failed, skipped int) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ImportRunsTotal.WithLabelValues(status).Inc()
	m.ImportRunDuration.Observe(duration.Seconds())
	m.ImportRecordsTotal.WithLabelValues("accepted").Add(float64(accepted))
	m.ImportRecordsTotal.WithLabelValues("rejected").Add(float64(rejected))
	m.ImportRecordsTotal.WithLabelValues("failed").Add(float64(failed))
	m.ImportRecordsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// UpdateDBStats copies connection pool statistics into the gauges
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBConnectionsActive.Set(float64(stats.InUse))
	m.DBConnectionsIdle.Set(float64(stats.Idle))
	m.DBConnectionsWait.Set(float64(stats.WaitCount))
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// routeLabel prefers the matched route template so ids do not explode label cardinality
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metrics == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := routeLabel(r)
			if r.ContentLength > 0 {
				metrics.HTTPRequestSize.WithLabelValues(r.Method, route).Observe(float64(r.ContentLength))
			}
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			metrics.HTTPResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.bytesWritten))
		})
	}
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
