package ingest

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/observability"
	"github.com/platinummonkey/ordcheck/pkg/storage"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

const (
	DefaultWorkers = 4
	maxWorkers     = 64
)

// ImportConfig controls a batch import
type ImportConfig struct {
	Workers int  `yaml:"workers"`
	Mode    Mode `yaml:"mode"`
	// SkipDuplicates skips items whose input digest is already stored
	SkipDuplicates bool `yaml:"skip_duplicates"`
	// StoreRejected keeps rejected records with Accepted=false instead of dropping them
	StoreRejected bool `yaml:"store_rejected"`
}

// DefaultImportConfig returns the default import settings
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Workers:        DefaultWorkers,
		Mode:           ModeNormalize,
		SkipDuplicates: true,
	}
}

// ErrItemPanic marks an item whose import panicked
var ErrItemPanic = errors.New("import worker panicked")

// ItemStatus is the outcome of importing one item
type ItemStatus string

const (
	StatusAccepted ItemStatus = "accepted"
	StatusRejected ItemStatus = "rejected"
	StatusFailed   ItemStatus = "failed"
	StatusSkipped  ItemStatus = "skipped"
)

// ItemResult describes one imported item
type ItemResult struct {
	Name     string             `json:"name"`
	Status   ItemStatus         `json:"status"`
	RecordID string             `json:"record_id,omitempty"`
	Digest   string             `json:"digest,omitempty"`
	Report   *validation.Report `json:"report,omitempty"`
	Error    string             `json:"error,omitempty"`

	// Err is the failure behind StatusFailed
	Err error `json:"-"`
}

// Summary aggregates a batch import
type Summary struct {
	Source   string        `json:"source"`
	Total    int           `json:"total"`
	Accepted int           `json:"accepted"`
	Rejected int           `json:"rejected"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
	Items    []ItemResult  `json:"items"`
}

func (s *Summary) String() string {
	return fmt.Sprintf("%s: %d items, %d accepted, %d rejected, %d failed, %d skipped in %s",
		s.Source, s.Total, s.Accepted, s.Rejected, s.Failed, s.Skipped, s.Duration.Round(time.Millisecond))
}

// Importer feeds a Source through a Processor and stores the results
type Importer struct {
	processor *Processor
	store     storage.RecordStore
	archive   Archive
	config    ImportConfig
	metrics   *observability.Metrics
	notifier  Notifier
	logger    *logrus.Logger
	tracer    trace.Tracer
}

// Notifier hears about finished work. Implementations must not block for long; the
// importer calls them inline.
type Notifier interface {
	// ImportFinished is called once per Run, including cancelled runs
	ImportFinished(ctx context.Context, summary *Summary)
	// ItemImported is called for every ImportFile
	ItemImported(ctx context.Context, source string, item ItemResult)
}

// ImporterOption configures an Importer
type ImporterOption func(*Importer)

// WithArchive copies the canonical form of every accepted record to archive
func WithArchive(a Archive) ImporterOption {
	return func(im *Importer) { im.archive = a }
}

// WithImportMetrics records import and storage metrics
func WithImportMetrics(m *observability.Metrics) ImporterOption {
	return func(im *Importer) { im.metrics = m }
}

// WithNotifier reports finished runs and single-file imports to n
func WithNotifier(n Notifier) ImporterOption {
	return func(im *Importer) { im.notifier = n }
}

// WithImportLogger sets the importer logger
func WithImportLogger(l *logrus.Logger) ImporterOption {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// NewImporter creates an importer. A nil store runs imports as a dry run.
func NewImporter(processor *Processor, store storage.RecordStore, cfg ImportConfig, opts ...ImporterOption) *Importer {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Workers > maxWorkers {
		cfg.Workers = maxWorkers
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeNormalize
	}

	im := &Importer{
		processor: processor,
		store:     store,
		config:    cfg,
		logger:    logrus.StandardLogger(),
		tracer:    observability.Tracer(),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

var recordIDPattern = regexp.MustCompile(`^ord-[0-9a-f]{32}$`)

// NewRecordID returns a fresh reaction id, "ord-" followed by 32 hex digits
func NewRecordID() string {
	id := uuid.New()
	return "ord-" + hex.EncodeToString(id[:])
}

// Run imports every item in src. Item failures are counted in the summary; the
// returned error is non-nil only when listing fails or ctx is cancelled.
func (im *Importer) Run(ctx context.Context, src Source) (*Summary, error) {
	start := time.Now()
	ctx, span := im.tracer.Start(ctx, "ingest.Import",
		trace.WithAttributes(attribute.String("ordcheck.source", src.Name())),
	)
	defer span.End()

	summary := &Summary{Source: src.Name()}

	names, err := src.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		im.metrics.RecordImportRun(err, time.Since(start), 0, 0, 0, 0)
		return nil, err
	}

	items := make([]ItemResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.config.Workers)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer observability.RecoverPanicWithCallback(im.logger.WithField("item", name), "import worker", func() {
				items[i] = ItemResult{Name: name, Status: StatusFailed, Error: ErrItemPanic.Error(), Err: ErrItemPanic}
			})
			items[i] = im.importItem(gctx, src, name)
			return nil
		})
	}
	err = g.Wait()

	summary.Total = len(names)
	for _, item := range items {
		switch item.Status {
		case StatusAccepted:
			summary.Accepted++
		case StatusRejected:
			summary.Rejected++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
	}
	summary.Items = items
	summary.Duration = time.Since(start)

	im.metrics.RecordImportRun(err, summary.Duration, summary.Accepted, summary.Rejected, summary.Failed, summary.Skipped)
	span.SetAttributes(
		attribute.Int("ordcheck.import.total", summary.Total),
		attribute.Int("ordcheck.import.accepted", summary.Accepted),
		attribute.Int("ordcheck.import.rejected", summary.Rejected),
		attribute.Int("ordcheck.import.failed", summary.Failed),
	)

	im.logger.WithFields(logrus.Fields{
		"source":   summary.Source,
		"total":    summary.Total,
		"accepted": summary.Accepted,
		"rejected": summary.Rejected,
		"failed":   summary.Failed,
		"skipped":  summary.Skipped,
		"duration": summary.Duration,
	}).Info("Import finished")

	if im.notifier != nil {
		im.notifier.ImportFinished(ctx, summary)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import cancelled")
		return summary, fmt.Errorf("import cancelled: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return summary, nil
}

// ImportFile imports a single item from src, as the watcher does for new files
func (im *Importer) ImportFile(ctx context.Context, src Source, name string) ItemResult {
	result := im.importItem(ctx, src, name)
	if im.notifier != nil {
		im.notifier.ItemImported(ctx, src.Name(), result)
	}
	return result
}

func (im *Importer) importItem(ctx context.Context, src Source, name string) ItemResult {
	logger := im.logger.WithFields(logrus.Fields{"source": src.Name(), "item": name})
	result := ItemResult{Name: name}

	fail := func(err error) ItemResult {
		logger.WithError(err).Warn("Import failed")
		result.Status = StatusFailed
		result.Error = err.Error()
		result.Err = err
		return result
	}

	data, err := src.Read(ctx, name)
	if err != nil {
		return fail(err)
	}
	result.Digest = Digest(data)

	if im.config.SkipDuplicates && im.store != nil {
		existing, err := im.timed("get_by_digest", func() error {
			_, err := im.store.GetRecordByDigest(ctx, result.Digest)
			return err
		})
		if existing {
			logger.Debug("Skipping already imported record")
			result.Status = StatusSkipped
			return result
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fail(err)
		}
	}

	processed, err := im.processor.Process(ctx, data, FormatOf(name, data), im.config.Mode)
	if err != nil {
		return fail(err)
	}
	result.Report = processed.Report

	accepted := processed.Accepted()
	if accepted {
		result.Status = StatusAccepted
	} else {
		result.Status = StatusRejected
		logger.WithField("summary", processed.Report.Summary()).Info("Record rejected")
	}

	id, canonical, err := assignRecordID(processed)
	if err != nil {
		return fail(err)
	}
	result.RecordID = id

	if im.store == nil || (!accepted && !im.config.StoreRejected) {
		return result
	}

	record := &storage.Record{
		ID:        id,
		Source:    src.Name() + "/" + name,
		Format:    string(processed.Format),
		Digest:    processed.Digest,
		Canonical: canonical,
		Report:    processed.Report,
		Accepted:  accepted,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := im.timed("put", func() error { return im.store.PutRecord(ctx, record) }); err != nil {
		return fail(err)
	}

	if accepted && im.archive != nil && canonical != nil {
		if _, err := im.archive.Put(ctx, processed.Digest, canonical); err != nil {
			logger.WithError(err).Warn("Failed to archive canonical record")
		}
	}
	return result
}

// timed runs a store call and records its metrics. found is true when the call
// succeeded.
func (im *Importer) timed(operation string, fn func() error) (found bool, err error) {
	start := time.Now()
	err = fn()
	if errors.Is(err, storage.ErrNotFound) {
		im.metrics.RecordStorageOperation(operation, time.Since(start), nil)
		return false, err
	}
	im.metrics.RecordStorageOperation(operation, time.Since(start), err)
	return err == nil, err
}

// assignRecordID keeps a record's own well-formed reaction_id and otherwise mints one and
// writes it into the canonical form. Validate-mode results carry no canonical form.
func assignRecordID(res *Result) (string, []byte, error) {
	rec := res.Record
	if rec == nil && res.Canonical != nil {
		decoded, _, err := codec.DecodeJSON(res.Canonical)
		if err != nil {
			return "", nil, fmt.Errorf("failed to decode cached canonical record: %w", err)
		}
		rec = decoded
	}
	if rec != nil && recordIDPattern.MatchString(rec.ReactionID) {
		return rec.ReactionID, res.Canonical, nil
	}
	if res.Canonical == nil {
		return NewRecordID(), nil, nil
	}

	withID := rec.Clone()
	withID.ReactionID = NewRecordID()
	canonical, err := codec.EncodeJSON(withID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode canonical record: %w", err)
	}
	return withID.ReactionID, canonical, nil
}
