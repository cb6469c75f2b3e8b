package webhooks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/ordcheck/pkg/observability"
)

// EventType represents the type of webhook event
type EventType string

const (
	EventImportCompleted EventType = "import.completed"
	EventRecordAccepted  EventType = "record.accepted"
	EventRecordRejected  EventType = "record.rejected"
	EventRecordFailed    EventType = "record.failed"
)

// AllEvents lists every event type, in a stable order
var AllEvents = []EventType{EventImportCompleted, EventRecordAccepted, EventRecordRejected, EventRecordFailed}

// Event represents a webhook event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Endpoint is one subscriber. An empty Events list subscribes to everything.
type Endpoint struct {
	URL    string      `yaml:"url"`
	Events []EventType `yaml:"events"`
	Secret string      `yaml:"secret"`
}

func (e Endpoint) wants(t EventType) bool {
	if len(e.Events) == 0 {
		return true
	}
	for _, want := range e.Events {
		if want == t {
			return true
		}
	}
	return false
}

// Config lists the endpoints and how deliveries are retried
type Config struct {
	Endpoints []Endpoint    `yaml:"endpoints"`
	Timeout   time.Duration `yaml:"timeout"`
	Retry     RetryConfig   `yaml:"retry"`
}

// DefaultConfig has no endpoints, so nothing is delivered
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Retry:   DefaultRetryConfig(),
	}
}

// Validate checks endpoint URLs and event names
func (c Config) Validate() error {
	for i, ep := range c.Endpoints {
		u, err := url.Parse(ep.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("webhook endpoint %d: %q is not an http(s) URL", i, ep.URL)
		}
		for _, t := range ep.Events {
			if !knownEvent(t) {
				return fmt.Errorf("webhook endpoint %d: unknown event %q", i, t)
			}
		}
	}
	return nil
}

func knownEvent(t EventType) bool {
	for _, known := range AllEvents {
		if t == known {
			return true
		}
	}
	return false
}

// statusError is a non-2xx response. 4xx other than 408 and 429 is not retried.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("webhook returned non-2xx status: %d", e.code)
}

func (e *statusError) Permanent() bool {
	return e.code >= 400 && e.code < 500 && e.code != http.StatusRequestTimeout && e.code != http.StatusTooManyRequests
}

// Dispatcher delivers events to the configured endpoints
type Dispatcher struct {
	endpoints []Endpoint
	client    *http.Client
	retry     *RetryPolicy
	logger    logrus.FieldLogger

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher. A nil client gets one with cfg.Timeout.
func NewDispatcher(cfg Config, client *http.Client, logger logrus.FieldLogger) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultConfig().Timeout
		}
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{
		endpoints: cfg.Endpoints,
		client:    client,
		retry:     NewRetryPolicy(cfg.Retry),
		logger:    logger,
	}, nil
}

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(t EventType, data map[string]interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Dispatch delivers event to every subscribed endpoint and waits for the outcome.
// Endpoints are tried one after another; every failure is joined into the result.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	var errs []error
	for _, ep := range d.endpoints {
		if !ep.wants(event.Type) {
			continue
		}
		attempts, err := d.retry.Do(ctx, func(ctx context.Context) error {
			return d.send(ctx, ep, event, payload)
		})
		logger := d.logger.WithFields(logrus.Fields{
			"url":      ep.URL,
			"event":    event.Type,
			"event_id": event.ID,
			"attempts": attempts,
		})
		if err != nil {
			logger.WithError(err).Warn("Webhook delivery failed")
			errs = append(errs, fmt.Errorf("%s: %w", ep.URL, err))
			continue
		}
		logger.Debug("Webhook delivered")
	}
	return errors.Join(errs...)
}

// Go dispatches in the background. It is a no-op after Close.
func (d *Dispatcher) Go(event *Event) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer observability.RecoverPanic(d.logger, "webhook delivery")
		_ = d.Dispatch(context.Background(), event)
	}()
}

// Close stops accepting background deliveries and waits for running ones until ctx
// is done
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("webhook deliveries still running: %w", ctx.Err())
	}
}

func (d *Dispatcher) send(ctx context.Context, ep Endpoint, event *Event, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ordcheck-webhooks")
	req.Header.Set("X-Ordcheck-Event", string(event.Type))
	req.Header.Set("X-Ordcheck-Event-ID", event.ID)
	if ep.Secret != "" {
		req.Header.Set("X-Ordcheck-Signature", Sign(payload, ep.Secret))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

// Sign returns the X-Ordcheck-Signature value for payload
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies the webhook signature
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(Sign(payload, secret)), []byte(signature))
}
