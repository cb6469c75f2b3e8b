package webhooks

import (
	"context"

	"github.com/platinummonkey/ordcheck/pkg/ingest"
)

// maxListedItems bounds the rejected and failed names carried by import.completed
const maxListedItems = 100

// Notifier turns importer callbacks into background deliveries
type Notifier struct {
	dispatcher *Dispatcher
}

var _ ingest.Notifier = (*Notifier)(nil)

// NewNotifier wraps d for use with ingest.WithNotifier
func NewNotifier(d *Dispatcher) *Notifier {
	return &Notifier{dispatcher: d}
}

// ImportFinished sends import.completed with the run's counts and the names of the
// items that did not make it
func (n *Notifier) ImportFinished(ctx context.Context, summary *ingest.Summary) {
	var rejected, failed []string
	for _, item := range summary.Items {
		switch item.Status {
		case ingest.StatusRejected:
			if len(rejected) < maxListedItems {
				rejected = append(rejected, item.Name)
			}
		case ingest.StatusFailed:
			if len(failed) < maxListedItems {
				failed = append(failed, item.Name)
			}
		}
	}

	n.dispatcher.Go(NewEvent(EventImportCompleted, map[string]interface{}{
		"source":         summary.Source,
		"total":          summary.Total,
		"accepted":       summary.Accepted,
		"rejected":       summary.Rejected,
		"failed":         summary.Failed,
		"skipped":        summary.Skipped,
		"duration_ms":    summary.Duration.Milliseconds(),
		"rejected_items": rejected,
		"failed_items":   failed,
	}))
}

// ItemImported sends record.accepted, record.rejected or record.failed. Skipped
// duplicates send nothing.
func (n *Notifier) ItemImported(ctx context.Context, source string, item ingest.ItemResult) {
	var t EventType
	switch item.Status {
	case ingest.StatusAccepted:
		t = EventRecordAccepted
	case ingest.StatusRejected:
		t = EventRecordRejected
	case ingest.StatusFailed:
		t = EventRecordFailed
	default:
		return
	}

	data := map[string]interface{}{
		"source": source,
		"name":   item.Name,
		"digest": item.Digest,
	}
	if item.RecordID != "" {
		data["record_id"] = item.RecordID
	}
	if item.Report != nil {
		data["summary"] = item.Report.Summary()
		data["error_count"] = len(item.Report.Errors())
	}
	if item.Error != "" {
		data["error"] = item.Error
	}
	n.dispatcher.Go(NewEvent(t, data))
}
