package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics mirrors the processing metrics as OpenTelemetry instruments for
// deployments that export through an OTLP collector instead of scraping.
type OTelMetrics struct {
	recordsProcessed   metric.Int64Counter
	processingDuration metric.Float64Histogram
	findings           metric.Int64Counter
	cacheLookups       metric.Int64Counter
	storageOperations  metric.Int64Counter
	storageDuration    metric.Float64Histogram
}

// NewOTelMetrics creates the instruments on the global meter provider
func NewOTelMetrics() (*OTelMetrics, error) {
	meter := otel.Meter(TracerName)

	m := &OTelMetrics{}
	var err error

	m.recordsProcessed, err = meter.Int64Counter(
		"ordcheck.records.processed",
		metric.WithDescription("Records processed"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create records_processed counter: %w", err)
	}

	m.processingDuration, err = meter.Float64Histogram(
		"ordcheck.processing.duration",
		metric.WithDescription("Time spent decoding and checking one record"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create processing_duration histogram: %w", err)
	}

	m.findings, err = meter.Int64Counter(
		"ordcheck.findings",
		metric.WithDescription("Findings reported"),
		metric.WithUnit("{finding}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create findings counter: %w", err)
	}

	m.cacheLookups, err = meter.Int64Counter(
		"ordcheck.cache.lookups",
		metric.WithDescription("Result cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache_lookups counter: %w", err)
	}

	m.storageOperations, err = meter.Int64Counter(
		"ordcheck.storage.operations",
		metric.WithDescription("Record store operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage_operations counter: %w", err)
	}

	m.storageDuration, err = meter.Float64Histogram(
		"ordcheck.storage.duration",
		metric.WithDescription("Record store operation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage_duration histogram: %w", err)
	}

	return m, nil
}

// RecordProcessed records one checked record
func (m *OTelMetrics) RecordProcessed(ctx context.Context, mode string, accepted bool, findings []FindingCount, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("accepted", accepted),
	)
	m.recordsProcessed.Add(ctx, 1, attrs)
	m.processingDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("mode", mode)))

	for _, f := range findings {
		m.findings.Add(ctx, int64(f.Count), metric.WithAttributes(
			attribute.String("kind", f.Kind),
			attribute.String("severity", f.Severity),
		))
	}
}

// RecordCacheLookup records a result cache lookup
func (m *OTelMetrics) RecordCacheLookup(ctx context.Context, mode string, hit bool) {
	if m == nil {
		return
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("hit", hit),
	))
}

// RecordStorageOperation records one store call
func (m *OTelMetrics) RecordStorageOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("storage.operation", operation),
		attribute.Bool("error", err != nil),
	)
	m.storageOperations.Add(ctx, 1, attrs)
	m.storageDuration.Record(ctx, duration.Seconds(), attrs)
}
