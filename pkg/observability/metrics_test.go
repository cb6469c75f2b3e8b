package observability

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordProcessed(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordProcessed("validate", true, nil, time.Millisecond)
	m.RecordProcessed("validate", false, []FindingCount{
		{Kind: "UNIT_MISMATCH", Severity: "ERROR", Count: 2},
		{Kind: "DUPLICATE_KEY", Severity: "WARNING", Count: 1},
	}, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsProcessedTotal.WithLabelValues("validate", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsProcessedTotal.WithLabelValues("validate", "rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FindingsTotal.WithLabelValues("UNIT_MISMATCH", "ERROR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FindingsTotal.WithLabelValues("DUPLICATE_KEY", "WARNING")))
}

func TestMetrics_Recorders(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordDecodeError("yaml")
	m.RecordCacheLookup("normalize", true)
	m.RecordCacheLookup("normalize", false)
	m.RecordStorageOperation("put", time.Millisecond, nil)
	m.RecordStorageOperation("put", time.Millisecond, errors.New("down"))
	m.RecordImportRun(nil, time.Second, 3, 1, 0, 2)
	m.UpdateDBStats(sql.DBStats{InUse: 4, Idle: 1, WaitCount: 7})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeErrorsTotal.WithLabelValues("yaml")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("normalize")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageOperationsTotal.WithLabelValues("put", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageOperationsTotal.WithLabelValues("put", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportRunsTotal.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ImportRecordsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ImportRecordsTotal.WithLabelValues("skipped")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DBConnectionsActive))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.DBConnectionsWait))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordProcessed("validate", true, nil, 0)
		m.RecordDecodeError("json")
		m.RecordCacheLookup("validate", true)
		m.RecordStorageOperation("get", 0, nil)
		m.RecordImportRun(nil, 0, 0, 0, 0, 0)
		m.UpdateDBStats(sql.DBStats{})
	})
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	router := mux.NewRouter()
	router.Use(HTTPMetricsMiddleware(m))
	router.HandleFunc("/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	})
	router.Handle("/metrics", MetricsHandler(registry))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/records/{id}", "404")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `ordcheck_http_requests_total{method="GET",route="/records/{id}",status="404"} 2`))
}
