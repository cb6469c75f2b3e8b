package ingest

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/observability"
	"github.com/platinummonkey/ordcheck/pkg/storage"
)

var recordWithIDJSON = strings.Replace(validRecordJSON, "{",
	`{"reaction_id": "ord-0123456789abcdef0123456789abcdef",`, 1)

func newTestStore(t *testing.T) *storage.FileSystemStore {
	t.Helper()
	store, err := storage.NewFileSystemStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func newTestImporter(t *testing.T, store storage.RecordStore, cfg ImportConfig, opts ...ImporterOption) *Importer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewImporter(newTestProcessor(t), store, cfg, append([]ImporterOption{WithImportLogger(logger)}, opts...)...)
}

func inboxSource(t *testing.T) *DirSource {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.json":   validRecordJSON,
		"empty.json":  rejectedRecordJSON,
		"broken.json": brokenRecordJSON,
		"readme.md":   "not a record",
	})
	src, err := NewDirSource(dir)
	require.NoError(t, err)
	return src
}

func itemByName(t *testing.T, s *Summary, name string) ItemResult {
	t.Helper()
	for _, item := range s.Items {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("no item %s in summary", name)
	return ItemResult{}
}

func TestNewRecordID(t *testing.T) {
	a, b := NewRecordID(), NewRecordID()
	assert.Regexp(t, `^ord-[0-9a-f]{32}$`, a)
	assert.NotEqual(t, a, b)
}

func TestNewImporter_Defaults(t *testing.T) {
	im := newTestImporter(t, nil, ImportConfig{Workers: 1000})
	assert.Equal(t, maxWorkers, im.config.Workers)
	assert.Equal(t, ModeNormalize, im.config.Mode)

	im = newTestImporter(t, nil, ImportConfig{})
	assert.Equal(t, DefaultWorkers, im.config.Workers)
}

func TestImporter_Run(t *testing.T) {
	store := newTestStore(t)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	im := newTestImporter(t, store, DefaultImportConfig(), WithImportMetrics(metrics))
	src := inboxSource(t)
	ctx := context.Background()

	summary, err := im.Run(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.String(), "3 items, 1 accepted, 1 rejected, 1 failed, 0 skipped")

	good := itemByName(t, summary, "good.json")
	assert.Equal(t, StatusAccepted, good.Status)
	assert.Regexp(t, `^ord-[0-9a-f]{32}$`, good.RecordID)

	broken := itemByName(t, summary, "broken.json")
	assert.Equal(t, StatusFailed, broken.Status)
	assert.Contains(t, broken.Error, "failed to decode record")

	records, total, err := store.ListRecords(ctx, storage.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	stored := records[0]
	assert.Equal(t, good.RecordID, stored.ID)
	assert.True(t, stored.Accepted)
	assert.Equal(t, good.Digest, stored.Digest)
	assert.True(t, strings.HasSuffix(stored.Source, "/good.json"))

	canonical, _, err := codec.DecodeJSON(stored.Canonical)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, canonical.ReactionID, "minted id is written into the canonical record")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ImportRunsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StorageOperationsTotal.WithLabelValues("put", "success")))

	// a second run skips what is already stored
	summary, err = im.Run(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
}

func TestImporter_StoreRejected(t *testing.T) {
	store := newTestStore(t)
	cfg := DefaultImportConfig()
	cfg.StoreRejected = true
	im := newTestImporter(t, store, cfg)
	ctx := context.Background()

	_, err := im.Run(ctx, inboxSource(t))
	require.NoError(t, err)

	rejected := false
	records, total, err := store.ListRecords(ctx, storage.ListFilter{Accepted: &rejected})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.False(t, records[0].Accepted)
	assert.True(t, records[0].Report.HasErrors())
}

func TestImporter_KeepsReactionID(t *testing.T) {
	store := newTestStore(t)
	im := newTestImporter(t, store, DefaultImportConfig())
	ctx := context.Background()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"known.json": recordWithIDJSON})
	src, err := NewDirSource(dir)
	require.NoError(t, err)

	summary, err := im.Run(ctx, src)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Accepted)

	record, err := store.GetRecord(ctx, "ord-0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, summary.Items[0].Digest, record.Digest)
}

func TestImporter_DryRun(t *testing.T) {
	im := newTestImporter(t, nil, ImportConfig{Mode: ModeValidate, Workers: 2})

	summary, err := im.Run(context.Background(), inboxSource(t))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Accepted)
	assert.NotEmpty(t, itemByName(t, summary, "good.json").RecordID)
}

func TestImporter_Archive(t *testing.T) {
	client := newFakeS3(nil)
	im := newTestImporter(t, newTestStore(t), DefaultImportConfig(),
		WithArchive(NewS3Archive(client, "records", "canonical/")))

	summary, err := im.Run(context.Background(), inboxSource(t))
	require.NoError(t, err)

	good := itemByName(t, summary, "good.json")
	_, ok := client.objects[ArchiveKey("canonical/", good.Digest)]
	assert.True(t, ok, "accepted record is archived")
	assert.Equal(t, 1, client.puts, "rejected records are not archived")
}

func TestImporter_FromS3(t *testing.T) {
	client := newFakeS3(map[string]string{
		"inbox/1.json": validRecordJSON,
		"inbox/2.yaml": validRecordYAML,
		"inbox/3.json": rejectedRecordJSON,
	})
	store := newTestStore(t)
	im := newTestImporter(t, store, DefaultImportConfig())

	summary, err := im.Run(context.Background(), NewS3Source(client, "records", "inbox/"))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
}

func TestImporter_Cancelled(t *testing.T) {
	im := newTestImporter(t, newTestStore(t), ImportConfig{Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := im.Run(ctx, inboxSource(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImporter_ListError(t *testing.T) {
	client := newFakeS3(nil)
	client.listErr = assert.AnError
	im := newTestImporter(t, nil, DefaultImportConfig())

	summary, err := im.Run(context.Background(), NewS3Source(client, "records", ""))
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, assert.AnError)
}

type panickingSource struct {
	Source
	panicOn string
}

func (s panickingSource) Read(ctx context.Context, name string) ([]byte, error) {
	if name == s.panicOn {
		panic("read exploded")
	}
	return s.Source.Read(ctx, name)
}

func TestImporter_WorkerPanic(t *testing.T) {
	im := newTestImporter(t, newTestStore(t), DefaultImportConfig())

	summary, err := im.Run(context.Background(), panickingSource{Source: inboxSource(t), panicOn: "good.json"})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, summary.Total, summary.Accepted+summary.Rejected+summary.Failed+summary.Skipped)

	item := itemByName(t, summary, "good.json")
	assert.Equal(t, StatusFailed, item.Status)
	assert.ErrorIs(t, item.Err, ErrItemPanic)
	assert.Equal(t, ErrItemPanic.Error(), item.Error)
}

type recordingNotifier struct {
	mu        sync.Mutex
	summaries []*Summary
	items     []ItemResult
}

func (n *recordingNotifier) ImportFinished(ctx context.Context, summary *Summary) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.summaries = append(n.summaries, summary)
}

func (n *recordingNotifier) ItemImported(ctx context.Context, source string, item ItemResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

func TestImporter_Notifier(t *testing.T) {
	notifier := &recordingNotifier{}
	im := newTestImporter(t, newTestStore(t), DefaultImportConfig(), WithNotifier(notifier))
	src := inboxSource(t)
	ctx := context.Background()

	summary, err := im.Run(ctx, src)
	require.NoError(t, err)
	require.Len(t, notifier.summaries, 1)
	assert.Same(t, summary, notifier.summaries[0])
	assert.Empty(t, notifier.items, "Run reports the summary only")

	result := im.ImportFile(ctx, src, "good.json")
	assert.Equal(t, StatusSkipped, result.Status)
	require.Len(t, notifier.items, 1)
	assert.Equal(t, "good.json", notifier.items[0].Name)
}
