package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/ordcheck/pkg/httputil"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/middleware"
	"github.com/platinummonkey/ordcheck/pkg/observability"
	"github.com/platinummonkey/ordcheck/pkg/storage"
)

// DefaultMaxBodyBytes bounds a posted record
const DefaultMaxBodyBytes int64 = 10 << 20

// Config holds HTTP-level settings
type Config struct {
	MaxBodyBytes int64    `yaml:"max_body_bytes"`
	CORSOrigins  []string `yaml:"cors_origins"`
}

// Server represents our API server
type Server struct {
	processor *ingest.Processor
	store     storage.RecordStore
	importer  *ingest.Importer
	health    *observability.HealthChecker
	metrics   *observability.Metrics
	registry  *prometheus.Registry
	logger    *logrus.Logger
	config    Config
	limiter   middleware.Limiter
	rateLimit middleware.RateLimitConfig
	router    *mux.Router
}

// Option configures a Server
type Option func(*Server)

// WithStore enables the record endpoints. Posted records go through importer so they
// get the same acceptance gate and ids as batch imports.
func WithStore(store storage.RecordStore, importer *ingest.Importer) Option {
	return func(s *Server) {
		s.store = store
		s.importer = importer
	}
}

// WithHealth serves liveness and readiness probes from checker
func WithHealth(checker *observability.HealthChecker) Option {
	return func(s *Server) { s.health = checker }
}

// WithMetrics instruments routes and serves registry on /metrics
func WithMetrics(metrics *observability.Metrics, registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = metrics
		s.registry = registry
	}
}

// WithLogger sets the request logger
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig sets HTTP-level settings
func WithConfig(cfg Config) Option {
	return func(s *Server) { s.config = cfg }
}

// WithRateLimit charges every /api/v1 request against limiter. Probes and /metrics
// are never limited.
func WithRateLimit(limiter middleware.Limiter, cfg middleware.RateLimitConfig) Option {
	return func(s *Server) {
		s.limiter = limiter
		s.rateLimit = cfg
	}
}

// NewServer creates a new API server
func NewServer(processor *ingest.Processor, opts ...Option) *Server {
	s := &Server{
		processor: processor,
		logger:    logrus.StandardLogger(),
		router:    mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.config.MaxBodyBytes <= 0 {
		s.config.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	if s.limiter != nil {
		v1.Use(middleware.RateLimit(s.limiter, s.rateLimit, s.logger))
	}

	// Record processing
	v1.HandleFunc("/normalize", s.normalize).Methods(http.MethodPost)
	v1.HandleFunc("/validate", s.validate).Methods(http.MethodPost)

	// Units and rules
	v1.HandleFunc("/canonicalize", s.canonicalize).Methods(http.MethodPost)
	v1.HandleFunc("/units", s.listUnits).Methods(http.MethodGet)
	v1.HandleFunc("/units/{kind}", s.getUnits).Methods(http.MethodGet)
	v1.HandleFunc("/rules", s.listRules).Methods(http.MethodGet)

	// Stored records
	if s.store != nil {
		v1.HandleFunc("/records", s.createRecord).Methods(http.MethodPost)
		v1.HandleFunc("/records", s.listRecords).Methods(http.MethodGet)
		v1.HandleFunc("/records/{id}", s.getRecord).Methods(http.MethodGet)
		v1.HandleFunc("/records/{id}/canonical", s.getCanonical).Methods(http.MethodGet)
		v1.HandleFunc("/records/{id}", s.deleteRecord).Methods(http.MethodDelete)
	}

	if s.health != nil {
		s.router.HandleFunc("/health/live", s.health.Liveness).Methods(http.MethodGet)
		s.router.HandleFunc("/health/ready", s.health.Readiness).Methods(http.MethodGet)
	}

	if s.registry != nil {
		s.router.Handle("/metrics", observability.MetricsHandler(s.registry)).Methods(http.MethodGet)
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the router wrapped in the request middleware and tracing
func (s *Server) Handler() http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
		httputil.MaxBytesMiddleware(s.config.MaxBodyBytes),
	}
	if len(s.config.CORSOrigins) > 0 {
		middlewares = append(middlewares, httputil.CORSMiddleware(s.config.CORSOrigins))
	}
	return otelhttp.NewHandler(httputil.Chain(middlewares...)(s.router), "ordcheck-api")
}

// RouteRegistrar is an interface for types that can register routes
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// RegisterRoutes registers routes from a RouteRegistrar
func (s *Server) RegisterRoutes(registrar RouteRegistrar) {
	registrar.RegisterRoutes(s.router)
}
