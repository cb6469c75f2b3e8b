package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/ordcheck/pkg/cache"
	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/observability"
	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

// ErrDecode is returned when input cannot be decoded into a record at all
var ErrDecode = errors.New("failed to decode record")

// Mode selects what the processor does with a decoded record
type Mode string

const (
	// ModeNormalize canonicalizes units and validates
	ModeNormalize Mode = "normalize"
	// ModeValidate validates the record as written
	ModeValidate Mode = "validate"
)

// ParseMode accepts "normalize" or "validate"
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNormalize, ModeValidate:
		return Mode(s), nil
	case "":
		return ModeNormalize, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected normalize or validate)", s)
	}
}

// Result is the outcome of processing one input. Record is nil when the result came
// from the cache; Canonical is only set in normalize mode.
type Result struct {
	Mode      Mode
	Format    codec.Format
	Digest    string
	Record    *reaction.Reaction
	Canonical []byte
	Report    *validation.Report
	Cached    bool
	Duration  time.Duration
}

// Accepted reports whether the record passed the acceptance gate
func (r *Result) Accepted() bool {
	return r.Report != nil && !r.Report.HasErrors()
}

// Processor runs raw input through decode, cache lookup and the engine. It is safe
// for concurrent use.
type Processor struct {
	engine      *validation.Engine
	cache       cache.Cache
	engineHash  string
	metrics     *observability.Metrics
	otelMetrics *observability.OTelMetrics
	logger      *logrus.Logger
	tracer      trace.Tracer
}

// ProcessorOption configures a Processor
type ProcessorOption func(*Processor)

// WithCache enables the result cache
func WithCache(c cache.Cache) ProcessorOption {
	return func(p *Processor) { p.cache = c }
}

// WithMetrics records Prometheus metrics
func WithMetrics(m *observability.Metrics) ProcessorOption {
	return func(p *Processor) { p.metrics = m }
}

// WithOTelMetrics records OpenTelemetry metrics
func WithOTelMetrics(m *observability.OTelMetrics) ProcessorOption {
	return func(p *Processor) { p.otelMetrics = m }
}

// WithLogger sets the logger used for cache warnings
func WithLogger(l *logrus.Logger) ProcessorOption {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProcessor creates a processor around engine
func NewProcessor(engine *validation.Engine, opts ...ProcessorOption) *Processor {
	cfg := engine.Config()
	rules := engine.Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name()
	}

	p := &Processor{
		engine:     engine,
		engineHash: cache.EngineFingerprint(&cfg, names),
		logger:     logrus.StandardLogger(),
		tracer:     observability.Tracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Engine returns the underlying engine
func (p *Processor) Engine() *validation.Engine {
	return p.engine
}

// Digest returns the hex sha256 of raw input
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Process decodes data and runs it through the engine. An empty format is detected from
// the content. Findings are never errors: the returned error is non-nil only when the
// input could not be decoded, and then wraps ErrDecode.
func (p *Processor) Process(ctx context.Context, data []byte, format codec.Format, mode Mode) (*Result, error) {
	if format == "" {
		format = codec.DetectFormat(data)
	}
	if mode == "" {
		mode = ModeNormalize
	}

	ctx, span := p.tracer.Start(ctx, "ingest.Process",
		trace.WithAttributes(
			attribute.String("ordcheck.mode", string(mode)),
			attribute.String("ordcheck.format", string(format)),
			attribute.Int("ordcheck.input.size", len(data)),
		),
	)
	defer span.End()

	start := time.Now()
	result := &Result{Mode: mode, Format: format, Digest: Digest(data)}

	key := cache.NewKey(string(mode), string(format), data, p.engineHash)
	if entry := p.lookup(ctx, key, mode); entry != nil {
		result.Report = entry.Report
		result.Canonical = entry.Canonical
		result.Cached = true
		result.Duration = time.Since(start)
		span.SetAttributes(attribute.Bool("ordcheck.cache.hit", true))
		p.observe(ctx, result)
		return result, nil
	}

	rec, issues, err := codec.Decode(data, format)
	if err != nil {
		p.metrics.RecordDecodeError(string(format))
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	switch mode {
	case ModeValidate:
		report := validation.NewReport()
		report.AddDecodeIssues(issues)
		report.Merge(p.engine.CheckInvariants(rec))
		result.Record = rec
		result.Report = report
	default:
		out, report := p.engine.NormalizeDecoded(rec, issues)
		result.Record = out
		result.Report = report
		if out != nil {
			canonical, err := codec.EncodeJSON(out)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "encode failed")
				return nil, fmt.Errorf("failed to encode canonical record: %w", err)
			}
			result.Canonical = canonical
		}
	}
	result.Duration = time.Since(start)

	p.store(ctx, key, result)
	p.observe(ctx, result)

	span.SetAttributes(
		attribute.Bool("ordcheck.cache.hit", false),
		attribute.Bool("ordcheck.accepted", result.Accepted()),
		attribute.Int("ordcheck.findings", result.Report.Len()),
	)
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (p *Processor) lookup(ctx context.Context, key *cache.Key, mode Mode) *cache.Entry {
	if p.cache == nil {
		return nil
	}
	entry, err := p.cache.Get(ctx, key)
	hit := err == nil && entry != nil && entry.Report != nil
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		p.logger.WithError(err).Warn("Result cache lookup failed")
	}
	p.metrics.RecordCacheLookup(string(mode), hit)
	p.otelMetrics.RecordCacheLookup(ctx, string(mode), hit)
	if !hit {
		return nil
	}
	return entry
}

func (p *Processor) store(ctx context.Context, key *cache.Key, result *Result) {
	if p.cache == nil {
		return
	}
	entry := &cache.Entry{
		Report:    result.Report,
		Canonical: result.Canonical,
		CreatedAt: time.Now(),
	}
	if err := p.cache.Set(ctx, key, entry); err != nil {
		p.logger.WithError(err).Warn("Failed to cache result")
	}
}

func (p *Processor) observe(ctx context.Context, result *Result) {
	counts := findingCounts(result.Report)
	p.metrics.RecordProcessed(string(result.Mode), result.Accepted(), counts, result.Duration)
	p.otelMetrics.RecordProcessed(ctx, string(result.Mode), result.Accepted(), counts, result.Duration)
}

// findingCounts buckets findings by kind and severity in first-seen order
func findingCounts(report *validation.Report) []observability.FindingCount {
	if report == nil {
		return nil
	}
	index := make(map[validation.Kind]int)
	var counts []observability.FindingCount
	for _, f := range report.Findings() {
		i, ok := index[f.Kind]
		if !ok {
			i = len(counts)
			index[f.Kind] = i
			counts = append(counts, observability.FindingCount{Kind: string(f.Kind), Severity: string(f.Severity)})
		}
		counts[i].Count++
	}
	return counts
}
