package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs imports on cron schedules. A run that is still going when its next
// slot comes up causes that slot to be skipped.
type Scheduler struct {
	cron     *cron.Cron
	importer *Importer
	logger   *logrus.Logger

	mu   sync.Mutex
	last map[string]*Summary
}

// NewScheduler creates a scheduler for importer
func NewScheduler(importer *Importer, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		importer: importer,
		logger:   logger,
		last:     make(map[string]*Summary),
	}
}

// AddImport schedules an import of src. spec is a standard five-field cron expression
// or a descriptor such as "@hourly".
func (s *Scheduler) AddImport(spec string, src Source) error {
	_, err := s.cron.AddFunc(spec, func() { s.RunNow(context.Background(), src) })
	if err != nil {
		return fmt.Errorf("failed to schedule import of %s: %w", src.Name(), err)
	}
	s.logger.WithFields(logrus.Fields{
		"source":   src.Name(),
		"schedule": spec,
	}).Info("Scheduled import")
	return nil
}

// RunNow runs one import of src immediately and records its summary
func (s *Scheduler) RunNow(ctx context.Context, src Source) *Summary {
	s.logger.WithField("source", src.Name()).Info("Starting scheduled import")

	summary, err := s.importer.Run(ctx, src)
	if err != nil {
		s.logger.WithError(err).WithField("source", src.Name()).Error("Scheduled import failed")
	}
	if summary != nil {
		s.mu.Lock()
		s.last[src.Name()] = summary
		s.mu.Unlock()
	}
	return summary
}

// LastSummary returns the summary of the most recent run for a source name
func (s *Scheduler) LastSummary(source string) (*Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.last[source]
	return summary, ok
}

// Entries returns the number of scheduled jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start starts the cron scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and returns a context that is done once running imports finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
