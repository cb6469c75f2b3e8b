package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck(context.Context) error   { return nil }
func failCheck(context.Context) error { return errors.New("unreachable") }

func TestHealthChecker_Check(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(h *HealthChecker)
		want     string
		wantDeps int
	}{
		{"no checks", func(h *HealthChecker) {}, StatusHealthy, 0},
		{"all passing", func(h *HealthChecker) {
			h.AddCheck("storage", true, okCheck)
			h.AddCheck("cache", false, okCheck)
		}, StatusHealthy, 2},
		{"optional failing", func(h *HealthChecker) {
			h.AddCheck("storage", true, okCheck)
			h.AddCheck("cache", false, failCheck)
		}, StatusDegraded, 2},
		{"critical failing", func(h *HealthChecker) {
			h.AddCheck("storage", true, failCheck)
			h.AddCheck("cache", false, failCheck)
		}, StatusUnhealthy, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthChecker("v1.2.3")
			tt.setup(h)

			status := h.Check(context.Background())
			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, "v1.2.3", status.Version)
			assert.Len(t, status.Dependencies, tt.wantDeps)
		})
	}
}

func TestHealthChecker_DependencyMessage(t *testing.T) {
	h := NewHealthChecker("")
	h.AddCheck("cache", false, failCheck)

	status := h.Check(context.Background())
	dep := status.Dependencies["cache"]
	assert.Equal(t, StatusDegraded, dep.Status)
	assert.Equal(t, "unreachable", dep.Message)
}

func TestHealthChecker_Handlers(t *testing.T) {
	h := NewHealthChecker("dev")

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h.AddCheck("storage", true, failCheck)
	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Equal(t, StatusUnhealthy, status.Dependencies["storage"].Status)
}
