package webhooks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

type delivery struct {
	header http.Header
	body   []byte
	event  Event
}

// receiver records deliveries and answers with the queued status codes, then 200
type receiver struct {
	mu         sync.Mutex
	deliveries []delivery
	statuses   []int
	server     *httptest.Server
}

func newReceiver(t *testing.T, statuses ...int) *receiver {
	t.Helper()
	r := &receiver{statuses: statuses}
	r.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		var ev Event
		_ = json.Unmarshal(body, &ev)

		r.mu.Lock()
		r.deliveries = append(r.deliveries, delivery{header: req.Header.Clone(), body: body, event: ev})
		status := http.StatusOK
		if len(r.statuses) > 0 {
			status, r.statuses = r.statuses[0], r.statuses[1:]
		}
		r.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(r.server.Close)
	return r
}

func (r *receiver) received() []delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivery(nil), r.deliveries...)
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func newTestDispatcher(t *testing.T, endpoints ...Endpoint) *Dispatcher {
	t.Helper()
	logger, _ := test.NewNullLogger()
	d, err := NewDispatcher(Config{Endpoints: endpoints, Retry: fastRetry()}, nil, logger)
	require.NoError(t, err)
	return d
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ep      Endpoint
		wantErr bool
	}{
		{"https", Endpoint{URL: "https://hooks.example.com/ordcheck"}, false},
		{"with events", Endpoint{URL: "http://localhost:9000", Events: []EventType{EventRecordRejected}}, false},
		{"no scheme", Endpoint{URL: "hooks.example.com"}, true},
		{"ftp", Endpoint{URL: "ftp://hooks.example.com"}, true},
		{"unknown event", Endpoint{URL: "https://x.example", Events: []EventType{"module.created"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{Endpoints: []Endpoint{tt.ep}}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDispatch(t *testing.T) {
	rcv := newReceiver(t)
	d := newTestDispatcher(t, Endpoint{URL: rcv.server.URL, Secret: "s3cret"})

	event := NewEvent(EventImportCompleted, map[string]interface{}{"total": 3})
	require.NoError(t, d.Dispatch(context.Background(), event))

	got := rcv.received()
	require.Len(t, got, 1)
	assert.Equal(t, "import.completed", got[0].header.Get("X-Ordcheck-Event"))
	assert.Equal(t, event.ID, got[0].header.Get("X-Ordcheck-Event-ID"))
	assert.Equal(t, "application/json", got[0].header.Get("Content-Type"))
	assert.True(t, VerifySignature(got[0].body, got[0].header.Get("X-Ordcheck-Signature"), "s3cret"))
	assert.False(t, VerifySignature(got[0].body, got[0].header.Get("X-Ordcheck-Signature"), "other"))
	assert.Equal(t, EventImportCompleted, got[0].event.Type)
	assert.EqualValues(t, 3, got[0].event.Data["total"])
}

func TestDispatch_Subscriptions(t *testing.T) {
	all := newReceiver(t)
	rejectedOnly := newReceiver(t)
	d := newTestDispatcher(t,
		Endpoint{URL: all.server.URL},
		Endpoint{URL: rejectedOnly.server.URL, Events: []EventType{EventRecordRejected}},
	)
	ctx := context.Background()

	require.NoError(t, d.Dispatch(ctx, NewEvent(EventRecordAccepted, nil)))
	require.NoError(t, d.Dispatch(ctx, NewEvent(EventRecordRejected, nil)))

	assert.Len(t, all.received(), 2)
	require.Len(t, rejectedOnly.received(), 1)
	assert.Equal(t, EventRecordRejected, rejectedOnly.received()[0].event.Type)
	assert.Empty(t, rejectedOnly.received()[0].header.Get("X-Ordcheck-Signature"))
}

func TestDispatch_Retries(t *testing.T) {
	rcv := newReceiver(t, http.StatusServiceUnavailable, http.StatusBadGateway)
	d := newTestDispatcher(t, Endpoint{URL: rcv.server.URL})

	require.NoError(t, d.Dispatch(context.Background(), NewEvent(EventRecordFailed, nil)))
	got := rcv.received()
	require.Len(t, got, 3)
	assert.Equal(t, got[0].header.Get("X-Ordcheck-Event-ID"), got[2].header.Get("X-Ordcheck-Event-ID"),
		"retries resend the same event")
}

func TestDispatch_GivesUp(t *testing.T) {
	flaky := newReceiver(t, 500, 500, 500, 500)
	gone := newReceiver(t, http.StatusNotFound)
	d := newTestDispatcher(t, Endpoint{URL: flaky.server.URL}, Endpoint{URL: gone.server.URL})

	err := d.Dispatch(context.Background(), NewEvent(EventRecordAccepted, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "404")
	assert.Len(t, flaky.received(), 3)
	assert.Len(t, gone.received(), 1, "client errors are not retried")
}

func TestDispatcher_GoAndClose(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		hits.Add(1)
	}))
	defer server.Close()

	d := newTestDispatcher(t, Endpoint{URL: server.URL})
	d.Go(NewEvent(EventRecordAccepted, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, d.Close(ctx), "delivery is still blocked")

	close(release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(1), hits.Load())

	// closed dispatchers drop new events
	d.Go(NewEvent(EventRecordAccepted, nil))
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(1), hits.Load())
}

func TestNotifier(t *testing.T) {
	rcv := newReceiver(t)
	d := newTestDispatcher(t, Endpoint{URL: rcv.server.URL})
	n := NewNotifier(d)
	ctx := context.Background()

	report := &validation.Report{}
	n.ImportFinished(ctx, &ingest.Summary{
		Source:   "inbox",
		Total:    3,
		Accepted: 1,
		Rejected: 1,
		Failed:   1,
		Items: []ingest.ItemResult{
			{Name: "a.json", Status: ingest.StatusAccepted},
			{Name: "b.json", Status: ingest.StatusRejected},
			{Name: "c.json", Status: ingest.StatusFailed, Error: "unreadable"},
		},
	})
	n.ItemImported(ctx, "inbox", ingest.ItemResult{Name: "d.json", Status: ingest.StatusAccepted, RecordID: "ord-1", Report: report})
	n.ItemImported(ctx, "inbox", ingest.ItemResult{Name: "e.json", Status: ingest.StatusSkipped})
	require.NoError(t, d.Close(ctx))

	got := rcv.received()
	require.Len(t, got, 2, "skipped items send nothing")

	byType := map[EventType]Event{}
	for _, dl := range got {
		byType[dl.event.Type] = dl.event
	}

	completed := byType[EventImportCompleted]
	assert.Equal(t, "inbox", completed.Data["source"])
	assert.EqualValues(t, 3, completed.Data["total"])
	assert.Equal(t, []interface{}{"b.json"}, completed.Data["rejected_items"])
	assert.Equal(t, []interface{}{"c.json"}, completed.Data["failed_items"])

	accepted := byType[EventRecordAccepted]
	assert.Equal(t, "ord-1", accepted.Data["record_id"])
	assert.Equal(t, "d.json", accepted.Data["name"])
	assert.Equal(t, report.Summary(), accepted.Data["summary"])
}
