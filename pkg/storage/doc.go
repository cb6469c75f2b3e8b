// Package storage persists processed reaction records.
//
// # Overview
//
// A Record pairs the canonical JSON form of a normalized record with the validation
// report produced for it, the digest of the raw input and whether the record passed
// the acceptance gate (no ERROR findings). Rejected records are stored too so that
// operators can inspect why an import failed.
//
// # Backends
//
//   - FileSystemStore: one JSON document per record, suitable for the CLI and tests
//   - sqlstore.Store: PostgreSQL (lib/pq) or SQLite (go-sqlite3) through database/sql,
//     with optional read replicas
//
// All backends implement RecordStore and return ErrNotFound for unknown ids.
//
// # Usage
//
//	store, err := storage.NewFileSystemStore("/var/lib/ordcheck")
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	page, total, err := store.ListRecords(ctx, storage.ListFilter{Limit: 20})
//
// # Related Packages
//
//   - pkg/storage/sqlstore: SQL backend
//   - pkg/ingest: writes records after normalization
//   - pkg/api: serves stored records over HTTP
package storage
