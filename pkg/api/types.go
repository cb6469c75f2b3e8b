package api

import (
	"time"

	json "github.com/goccy/go-json"

	"github.com/platinummonkey/ordcheck/pkg/storage"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

// ProcessResponse is returned by the normalize and validate endpoints. Record holds the
// canonical record and is only present for normalize.
type ProcessResponse struct {
	Accepted bool               `json:"accepted"`
	Digest   string             `json:"digest"`
	Format   string             `json:"format"`
	Cached   bool               `json:"cached"`
	Report   *validation.Report `json:"report"`
	Record   json.RawMessage    `json:"record,omitempty"`
}

// CanonicalizeRequest is one measurement to convert
type CanonicalizeRequest struct {
	Kind      string  `json:"kind"`
	Value     float64 `json:"value"`
	Precision float64 `json:"precision,omitempty"`
	Unit      string  `json:"unit"`
}

// CanonicalizeResponse is the measurement in its kind's canonical unit
type CanonicalizeResponse struct {
	Kind      string  `json:"kind"`
	Value     float64 `json:"value"`
	Precision float64 `json:"precision"`
	Unit      string  `json:"unit"`
}

// KindInfo lists the units of one quantity kind
type KindInfo struct {
	Kind      string   `json:"kind"`
	Canonical string   `json:"canonical"`
	Units     []string `json:"units"`
}

// RuleInfo describes one enabled rule
type RuleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RecordSummary is a stored record without its canonical body
type RecordSummary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Format    string    `json:"format"`
	Digest    string    `json:"digest"`
	Accepted  bool      `json:"accepted"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordResponse is a stored record with its report and canonical body
type RecordResponse struct {
	RecordSummary
	Report *validation.Report `json:"report"`
	Record json.RawMessage    `json:"record,omitempty"`
}

// ListRecordsResponse is one page of stored records
type ListRecordsResponse struct {
	Records []RecordSummary `json:"records"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

func summarize(r *storage.Record) RecordSummary {
	s := RecordSummary{
		ID:        r.ID,
		Source:    r.Source,
		Format:    r.Format,
		Digest:    r.Digest,
		Accepted:  r.Accepted,
		CreatedAt: r.CreatedAt,
	}
	if r.Report != nil {
		s.Summary = r.Report.Summary()
	}
	return s
}
