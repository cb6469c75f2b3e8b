package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

func testRecord(id string, accepted bool, created time.Time) *Record {
	report := validation.NewReport()
	if !accepted {
		report.Add(validation.Finding{
			Path:     reaction.Root().Field("inputs"),
			Severity: validation.SeverityError,
			Kind:     validation.KindRequiredFieldAbsent,
			Rule:     "required-fields",
			Message:  "reaction has no inputs",
		})
	}
	return &Record{
		ID:        id,
		Source:    "dir:" + id + ".json",
		Format:    "json",
		Digest:    "digest-" + id,
		Canonical: []byte(`{"inputs":{}}`),
		Report:    report,
		Accepted:  accepted,
		CreatedAt: created,
	}
}

func newTestStore(t *testing.T) *FileSystemStore {
	t.Helper()
	store, err := NewFileSystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNewFileSystemStore(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "nested", "store")

	store, err := NewFileSystemStore(rootDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if store.rootDir != rootDir {
		t.Errorf("Expected rootDir %s, got %s", rootDir, store.rootDir)
	}
	if _, err := os.Stat(filepath.Join(rootDir, "records")); err != nil {
		t.Errorf("records directory should have been created: %v", err)
	}
	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestFileSystemStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	rejected := testRecord("ord-1", false, created)
	if err := store.PutRecord(ctx, rejected); err != nil {
		t.Fatalf("PutRecord() error = %v", err)
	}

	got, err := store.GetRecord(ctx, "ord-1")
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if got.Accepted {
		t.Error("record should be rejected")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if got.Report.Len() != 1 || !got.Report.HasErrors() {
		t.Errorf("report did not survive storage: %s", got.Report.Summary())
	}
	if string(got.Canonical) != `{"inputs":{}}` {
		t.Errorf("Canonical = %s", got.Canonical)
	}

	// replacing keeps a single file
	if err := store.PutRecord(ctx, testRecord("ord-1", true, created)); err != nil {
		t.Fatalf("PutRecord() error = %v", err)
	}
	got, err = store.GetRecord(ctx, "ord-1")
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if !got.Accepted {
		t.Error("replacement should be accepted")
	}
}

func TestFileSystemStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.GetRecord(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRecord() error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteRecord(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteRecord() error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetRecordByDigest(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRecordByDigest() error = %v, want ErrNotFound", err)
	}

	bad := testRecord("../escape", true, time.Now())
	if err := store.PutRecord(ctx, bad); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("PutRecord() error = %v, want ErrInvalidRecord", err)
	}
	if err := store.PutRecord(ctx, &Record{ID: "x"}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("PutRecord() error = %v, want ErrInvalidRecord", err)
	}
}

func TestFileSystemStore_ListRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, r := range []*Record{
		testRecord("ord-a", true, base),
		testRecord("ord-b", false, base.Add(time.Hour)),
		testRecord("ord-c", true, base.Add(2*time.Hour)),
		testRecord("ord-d", true, base.Add(2*time.Hour)),
	} {
		if err := store.PutRecord(ctx, r); err != nil {
			t.Fatalf("PutRecord(%d) error = %v", i, err)
		}
	}

	ids := func(records []*Record) []string {
		out := make([]string, len(records))
		for i, r := range records {
			out[i] = r.ID
		}
		return out
	}
	accepted := true

	tests := []struct {
		name      string
		filter    ListFilter
		wantIDs   []string
		wantTotal int64
	}{
		{"all newest first", ListFilter{}, []string{"ord-c", "ord-d", "ord-b", "ord-a"}, 4},
		{"page", ListFilter{Limit: 2, Offset: 1}, []string{"ord-d", "ord-b"}, 4},
		{"accepted only", ListFilter{Accepted: &accepted}, []string{"ord-c", "ord-d", "ord-a"}, 3},
		{"past the end", ListFilter{Offset: 10}, []string{}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, total, err := store.ListRecords(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListRecords() error = %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			got := ids(records)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Errorf("ids = %v, want %v", got, tt.wantIDs)
					break
				}
			}
		})
	}

	byDigest, err := store.GetRecordByDigest(ctx, "digest-ord-b")
	if err != nil {
		t.Fatalf("GetRecordByDigest() error = %v", err)
	}
	if byDigest.ID != "ord-b" {
		t.Errorf("GetRecordByDigest() id = %s, want ord-b", byDigest.ID)
	}
}

func TestFileSystemStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.PutRecord(ctx, testRecord("ord-1", true, time.Now())); err != nil {
		t.Fatalf("PutRecord() error = %v", err)
	}
	if err := store.DeleteRecord(ctx, "ord-1"); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if _, err := store.GetRecord(ctx, "ord-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRecord() after delete error = %v, want ErrNotFound", err)
	}
}
