package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/storage"
)

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	return port
}

func TestServe(t *testing.T) {
	root := isolateConfig(t)
	inboxDir := t.TempDir()
	port := freePort(t)
	t.Setenv("ORDCHECK_HOST", "127.0.0.1")
	t.Setenv("ORDCHECK_PORT", port)
	t.Setenv("ORDCHECK_INBOX_DIR", inboxDir)
	t.Setenv("ORDCHECK_INBOX_DEBOUNCE", "50ms")
	t.Setenv("ORDCHECK_RATE_LIMIT_ENABLED", "true")
	captureOutput(t)

	a, err := newApp(appOptions{withCache: true, withStore: true, telemetry: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()

	base := "http://127.0.0.1:" + port
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/health/ready")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base+"/api/v1/validate", "application/json", strings.NewReader(validRecordJSON))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "600", resp.Header.Get("X-RateLimit-Limit"))

	resp, err = http.Get(base + "/openapi.json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// files dropped in the inbox are imported into the store
	require.NoError(t, os.WriteFile(filepath.Join(inboxDir, "new.json"), []byte(validRecordJSON), 0644))
	store, err := storage.NewFileSystemStore(root)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, total, err := store.ListRecords(context.Background(), storage.ListFilter{})
		return err == nil && total == 1
	}, 5*time.Second, 25*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_ScheduleNeedsBucket(t *testing.T) {
	isolateConfig(t)
	t.Setenv("ORDCHECK_IMPORT_SCHEDULE", "@every 1m")
	captureOutput(t)

	a, err := newApp(appOptions{withStore: true})
	require.NoError(t, err)

	err = a.serve(context.Background())
	assert.ErrorContains(t, err, "needs an S3 bucket")
}
