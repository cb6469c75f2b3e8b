// Package middleware rate limits the /api/v1 routes.
//
// Callers are keyed by client address. The in-memory MemoryLimiter is a token bucket
// per key; RedisLimiter keeps a fixed-window counter in Redis so several replicas share
// one budget:
//
//	limiter := middleware.NewMemoryLimiter(cfg)
//	v1.Use(middleware.RateLimit(limiter, cfg, logger))
//
// Limited responses are 429 with Retry-After and X-RateLimit-* headers.
package middleware
