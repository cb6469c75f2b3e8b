package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/platinummonkey/ordcheck/pkg/contextkeys"
)

type stubLimiter struct {
	decision Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func TestRateLimit(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := testConfig()

	var seenClient string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenClient = contextkeys.Client(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("allowed", func(t *testing.T) {
		limiter := &stubLimiter{decision: Decision{Allowed: true, Limit: 10, Remaining: 9}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		rec := httptest.NewRecorder()

		RateLimit(limiter, cfg, logger)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, []string{"ip:10.1.2.3"}, limiter.keys)
		assert.Equal(t, "ip:10.1.2.3", seenClient)
	})

	t.Run("limited", func(t *testing.T) {
		limiter := &stubLimiter{decision: Decision{Limit: 10, RetryAfter: 1500e6}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		rec := httptest.NewRecorder()

		RateLimit(limiter, cfg, logger)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
		assert.Contains(t, rec.Body.String(), "rate limit exceeded")
	})

	t.Run("limiter error fails open", func(t *testing.T) {
		limiter := &stubLimiter{decision: Decision{Allowed: true}, err: assert.AnError}
		rec := httptest.NewRecorder()

		RateLimit(limiter, cfg, logger)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"socket address", "192.0.2.1:1234", nil, false, "192.0.2.1"},
		{"no port", "192.0.2.1", nil, false, "192.0.2.1"},
		{"ipv6", "[2001:db8::1]:443", nil, false, "2001:db8::1"},
		{"forwarded ignored without trust", "192.0.2.1:1", map[string]string{"X-Forwarded-For": "203.0.113.9"}, false, "192.0.2.1"},
		{"first forwarded entry", "192.0.2.1:1", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, true, "203.0.113.9"},
		{"real ip", "192.0.2.1:1", map[string]string{"X-Real-IP": "198.51.100.7"}, true, "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req, tt.trustProxy))
		})
	}
}
