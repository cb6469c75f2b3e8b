package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/ordcheck/pkg/storage"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

const recordColumns = `id, source, format, digest, canonical, report, accepted, created_at`

// Store implements storage.RecordStore on PostgreSQL or SQLite. Writes go to the
// primary and reads to a replica when one is configured.
type Store struct {
	conn *ConnectionManager
}

var _ storage.RecordStore = (*Store)(nil)

// Open connects using a storage config of type "postgres" or "sqlite"
func Open(config storage.Config, logger *logrus.Logger) (*Store, error) {
	driver := DriverPostgres
	if config.Type == "sqlite" {
		driver = DriverSQLite
	}

	conn, err := NewConnectionManager(ConnectionConfig{
		Driver:      driver,
		PrimaryURL:  config.DatabaseURL,
		ReplicaURLs: config.ReplicaURLs,
		MaxConns:    config.MaxConns,
		MinConns:    config.MinConns,
		Timeout:     config.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	store, err := NewStore(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

// NewStore ensures the schema exists on the primary
func NewStore(conn *ConnectionManager) (*Store, error) {
	if conn == nil || conn.Primary() == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if _, err := conn.Primary().Exec(schemaFor(conn.Driver())); err != nil {
		return nil, fmt.Errorf("failed to ensure ord_records table: %w", err)
	}
	return &Store{conn: conn}, nil
}

func (s *Store) q(query string) string {
	return rebind(s.conn.Driver(), query)
}

// PutRecord upserts by id
func (s *Store) PutRecord(ctx context.Context, record *storage.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	report, err := json.Marshal(record.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	var canonical any
	if len(record.Canonical) > 0 {
		canonical = string(record.Canonical)
	}

	query := s.q(`
		INSERT INTO ord_records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			source = excluded.source,
			format = excluded.format,
			digest = excluded.digest,
			canonical = excluded.canonical,
			report = excluded.report,
			accepted = excluded.accepted,
			created_at = excluded.created_at
	`)

	_, err = s.conn.Primary().ExecContext(ctx, query,
		record.ID,
		record.Source,
		record.Format,
		record.Digest,
		canonical,
		string(report),
		record.Accepted,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store record %s: %w", record.ID, err)
	}
	return nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (*storage.Record, error) {
	query := s.q(`SELECT ` + recordColumns + ` FROM ord_records WHERE id = ?`)
	return s.getOne(ctx, query, id)
}

func (s *Store) GetRecordByDigest(ctx context.Context, digest string) (*storage.Record, error) {
	query := s.q(`SELECT ` + recordColumns + ` FROM ord_records WHERE digest = ? ORDER BY created_at DESC, id LIMIT 1`)
	return s.getOne(ctx, query, digest)
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*storage.Record, error) {
	record, err := scanRecord(s.conn.Replica().QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

// ListRecords returns one page ordered newest first
func (s *Store) ListRecords(ctx context.Context, filter storage.ListFilter) ([]*storage.Record, int64, error) {
	filter = filter.Normalize()
	db := s.conn.Replica()

	where := ""
	var args []any
	if filter.Accepted != nil {
		where = " WHERE accepted = ?"
		args = append(args, *filter.Accepted)
	}

	var total int64
	if err := db.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM ord_records`+where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	query := s.q(`SELECT ` + recordColumns + ` FROM ord_records` + where + ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`)
	rows, err := db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]*storage.Record, 0, filter.Limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}
	return records, total, nil
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.conn.Primary().ExecContext(ctx, s.q(`DELETE FROM ord_records WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.conn.HealthCheck(ctx)
}

// Stats exposes pool statistics for metrics
func (s *Store) Stats() ConnectionStats {
	return s.conn.Stats()
}

func (s *Store) Close() error {
	return s.conn.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*storage.Record, error) {
	var (
		record    storage.Record
		canonical []byte
		report    []byte
	)
	err := row.Scan(
		&record.ID,
		&record.Source,
		&record.Format,
		&record.Digest,
		&canonical,
		&report,
		&record.Accepted,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(canonical) > 0 {
		record.Canonical = canonical
	}
	record.Report = validation.NewReport()
	if err := json.Unmarshal(report, record.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report for %s: %w", record.ID, err)
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}
