package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// FileSystemStore keeps one JSON document per record under rootDir/records
type FileSystemStore struct {
	rootDir string
	mu      sync.RWMutex
}

// NewFileSystemStore creates a new filesystem-based store
func NewFileSystemStore(rootDir string) (*FileSystemStore, error) {
	if err := os.MkdirAll(filepath.Join(rootDir, "records"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create root directory: %w", err)
	}
	return &FileSystemStore{rootDir: rootDir}, nil
}

func (s *FileSystemStore) recordFile(id string) (string, error) {
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: id %q is not a valid file name", ErrInvalidRecord, id)
	}
	return filepath.Join(s.rootDir, "records", id+".json"), nil
}

// PutRecord writes the record through a temp file so readers never see a partial document
func (s *FileSystemStore) PutRecord(ctx context.Context, record *Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	path, err := s.recordFile(record.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

func (s *FileSystemStore) GetRecord(ctx context.Context, id string) (*Record, error) {
	path, err := s.recordFile(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return readRecord(path)
}

func readRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &record, nil
}

func (s *FileSystemStore) GetRecordByDigest(ctx context.Context, digest string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.all()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Digest == digest {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileSystemStore) ListRecords(ctx context.Context, filter ListFilter) ([]*Record, int64, error) {
	filter = filter.Normalize()

	s.mu.RLock()
	records, err := s.all()
	s.mu.RUnlock()
	if err != nil {
		return nil, 0, err
	}

	matched := records[:0]
	for _, r := range records {
		if filter.Accepted != nil && r.Accepted != *filter.Accepted {
			continue
		}
		matched = append(matched, r)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []*Record{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

// all loads every record, newest first with ties broken by id. Callers hold the lock.
func (s *FileSystemStore) all() ([]*Record, error) {
	dir := filepath.Join(s.rootDir, "records")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read records directory: %w", err)
	}

	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		record, err := readRecord(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to load record %s: %w", entry.Name(), err)
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (s *FileSystemStore) DeleteRecord(ctx context.Context, id string) error {
	path, err := s.recordFile(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to delete record file: %w", err)
	}
	return nil
}

// HealthCheck verifies the records directory is still reachable
func (s *FileSystemStore) HealthCheck(ctx context.Context) error {
	info, err := os.Stat(filepath.Join(s.rootDir, "records"))
	if err != nil {
		return fmt.Errorf("records directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("records path is not a directory")
	}
	return nil
}

func (s *FileSystemStore) Close() error {
	return nil
}
