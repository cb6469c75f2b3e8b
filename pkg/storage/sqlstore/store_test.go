package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/storage"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

var recordRowColumns = []string{"id", "source", "format", "digest", "canonical", "report", "accepted", "created_at"}

const rejectedReportJSON = `{"valid":false,"error_count":1,"warning_count":0,"findings":[{"path":"inputs","severity":"ERROR","kind":"RequiredFieldAbsent","rule":"required-fields","message":"reaction has no inputs"}]}`

func testRecord(id string, accepted bool, created time.Time) *storage.Record {
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
	return &storage.Record{
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

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ord_records").WillReturnResult(sqlmock.NewResult(0, 0))

	store, err := NewStore(NewConnectionManagerFromDB(DriverPostgres, db))
	require.NoError(t, err)
	return store, mock
}

func TestNewStore_RequiresConnection(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestNewStore_SchemaError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ord_records").WillReturnError(errors.New("permission denied"))

	_, err = NewStore(NewConnectionManagerFromDB(DriverPostgres, db))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure ord_records table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PutRecord(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)
	record := testRecord("ord-1", false, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	mock.ExpectExec(`INSERT INTO ord_records (.+) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\) ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("ord-1", "dir:ord-1.json", "json", "digest-ord-1", `{"inputs":{}}`, sqlmock.AnyArg(), false, record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.PutRecord(ctx, record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PutRecord_Invalid(t *testing.T) {
	store, mock := newMockStore(t)

	err := store.PutRecord(context.Background(), &storage.Record{ID: "x"})
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetRecord(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows(recordRowColumns).
			AddRow("ord-1", "dir:a.json", "json", "abc", []byte(`{"inputs":{}}`), []byte(rejectedReportJSON), false, created)
		mock.ExpectQuery(`SELECT (.+) FROM ord_records WHERE id = \$1`).WithArgs("ord-1").WillReturnRows(rows)

		record, err := store.GetRecord(ctx, "ord-1")
		require.NoError(t, err)
		assert.Equal(t, "ord-1", record.ID)
		assert.False(t, record.Accepted)
		assert.True(t, record.Report.HasErrors())
		require.Len(t, record.Report.Findings(), 1)
		assert.Equal(t, "inputs", record.Report.Findings()[0].Path.String())
		assert.True(t, record.CreatedAt.Equal(created))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT (.+) FROM ord_records WHERE id = \$1`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := store.GetRecord(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt report", func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows(recordRowColumns).
			AddRow("ord-1", "s", "json", "abc", nil, []byte(`{"findings":`), true, created)
		mock.ExpectQuery(`SELECT (.+) FROM ord_records WHERE id = \$1`).WillReturnRows(rows)

		_, err := store.GetRecord(ctx, "ord-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestStore_ListRecords(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	accepted := true

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ord_records WHERE accepted = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT (.+) FROM ord_records WHERE accepted = \$1 ORDER BY created_at DESC, id LIMIT \$2 OFFSET \$3`).
		WithArgs(true, 2, 4).
		WillReturnRows(sqlmock.NewRows(recordRowColumns).
			AddRow("ord-5", "s", "json", "d5", nil, []byte(`{"findings":[]}`), true, created).
			AddRow("ord-6", "s", "json", "d6", nil, []byte(`{"findings":[]}`), true, created))

	records, total, err := store.ListRecords(ctx, storage.ListFilter{Accepted: &accepted, Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, records, 2)
	assert.Equal(t, "ord-5", records[0].ID)
	assert.Nil(t, records[0].Canonical)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`DELETE FROM ord_records WHERE id = \$1`).WithArgs("ord-1").WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, store.DeleteRecord(ctx, "ord-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`DELETE FROM ord_records WHERE id = \$1`).WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, store.DeleteRecord(ctx, "nope"), storage.ErrNotFound)
	})
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ? LIMIT ?"
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2 LIMIT $3", rebind(DriverPostgres, q))
	assert.Equal(t, q, rebind(DriverSQLite, q))
}

func TestStore_SQLite(t *testing.T) {
	ctx := context.Background()
	store, err := Open(storage.Config{
		Type:        "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "ord.db"),
	}, nil)
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.PutRecord(ctx, testRecord("ord-a", true, base)))
	require.NoError(t, store.PutRecord(ctx, testRecord("ord-b", false, base.Add(time.Minute))))
	require.NoError(t, store.PutRecord(ctx, testRecord("ord-c", true, base.Add(2*time.Minute))))

	got, err := store.GetRecord(ctx, "ord-b")
	require.NoError(t, err)
	assert.False(t, got.Accepted)
	assert.True(t, got.Report.HasErrors())
	assert.JSONEq(t, `{"inputs":{}}`, string(got.Canonical))
	assert.True(t, got.CreatedAt.Equal(base.Add(time.Minute)))

	// upsert replaces in place
	require.NoError(t, store.PutRecord(ctx, testRecord("ord-b", true, base.Add(time.Minute))))
	got, err = store.GetRecord(ctx, "ord-b")
	require.NoError(t, err)
	assert.True(t, got.Accepted)

	records, total, err := store.ListRecords(ctx, storage.ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	assert.Equal(t, "ord-c", records[0].ID)
	assert.Equal(t, "ord-b", records[1].ID)

	byDigest, err := store.GetRecordByDigest(ctx, "digest-ord-a")
	require.NoError(t, err)
	assert.Equal(t, "ord-a", byDigest.ID)

	require.NoError(t, store.DeleteRecord(ctx, "ord-a"))
	_, err = store.GetRecord(ctx, "ord-a")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, store.HealthCheck(ctx))
}
