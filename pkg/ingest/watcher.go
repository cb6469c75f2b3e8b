package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long a file must stay quiet before it is imported
const DefaultDebounce = 250 * time.Millisecond

// Watcher imports record files as they are written below an inbox directory
type Watcher struct {
	root     string
	importer *Importer
	source   *DirSource
	debounce time.Duration
	logger   *logrus.Logger
	watcher  *fsnotify.Watcher

	// OnResult, when set, is called after every import
	OnResult func(ItemResult)
}

// NewWatcher watches root and every directory below it
func NewWatcher(root string, importer *Importer, debounce time.Duration, logger *logrus.Logger) (*Watcher, error) {
	src, err := NewDirSource(root)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		importer: importer,
		source:   src,
		debounce: debounce,
		logger:   logger,
		watcher:  fw,
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to setup watcher: %w", err)
	}
	return w, nil
}

// addTree recursively adds all directories to the watcher
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Run processes events until ctx is done. Files still waiting out the debounce when
// ctx ends are not imported.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	w.logger.WithField("dir", w.root).Info("Started watching for record files")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					w.logger.WithField("dir", event.Name).Debug("New directory")
					if err := w.addTree(event.Name); err != nil {
						w.logger.WithError(err).Warn("Error watching new directory")
					}
					continue
				}
			}

			if (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) && IsRecordFile(event.Name) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for file, t := range pending {
				if now.Sub(t) < w.debounce {
					continue
				}
				delete(pending, file)
				w.importFile(ctx, file)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Watcher error")
		}
	}
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		w.logger.WithError(err).WithField("file", path).Warn("Error getting relative path")
		return
	}
	if _, err := os.Stat(path); err != nil {
		// removed before it settled
		return
	}

	result := w.importer.ImportFile(ctx, w.source, filepath.ToSlash(rel))
	w.logger.WithFields(logrus.Fields{
		"file":      rel,
		"status":    result.Status,
		"record_id": result.RecordID,
	}).Info("Imported record file")

	if w.OnResult != nil {
		w.OnResult(result)
	}
}
