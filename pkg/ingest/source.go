package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/platinummonkey/ordcheck/pkg/codec"
)

// Source enumerates and reads raw records for a batch import
type Source interface {
	// Name identifies the source in logs and stored records
	Name() string
	// List returns the names of every readable item in a stable order
	List(ctx context.Context) ([]string, error)
	// Read returns the raw bytes of one item
	Read(ctx context.Context, name string) ([]byte, error)
}

// FormatOf resolves the format of an item from its name, falling back to content
// sniffing when the extension is unknown.
func FormatOf(name string, data []byte) codec.Format {
	if f, ok := codec.FormatFromPath(name); ok {
		return f
	}
	return codec.DetectFormat(data)
}

// IsRecordFile reports whether name has an extension the codec understands
func IsRecordFile(name string) bool {
	_, ok := codec.FormatFromPath(name)
	return ok
}

// DirSource reads record files below a directory
type DirSource struct {
	root string
}

// NewDirSource creates a source over root, which must be an existing directory
func NewDirSource(root string) (*DirSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", root)
	}
	return &DirSource{root: root}, nil
}

func (s *DirSource) Name() string {
	return "dir:" + s.root
}

// List walks the tree and returns paths relative to the root, skipping hidden
// directories and files with unknown extensions.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != s.root && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsRecordFile(path) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.root, err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// FileSource is a fixed list of paths, as given on a command line
type FileSource struct {
	paths []string
}

func NewFileSource(paths ...string) *FileSource {
	return &FileSource{paths: paths}
}

func (s *FileSource) Name() string { return "files" }

func (s *FileSource) List(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.paths...), nil
}

func (s *FileSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// BytesSource serves in-memory items, such as a record posted to the API
type BytesSource struct {
	name  string
	items map[string][]byte
}

func NewBytesSource(name string, items map[string][]byte) *BytesSource {
	return &BytesSource{name: name, items: items}
}

func (s *BytesSource) Name() string { return s.name }

func (s *BytesSource) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *BytesSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, ok := s.items[name]
	if !ok {
		return nil, fmt.Errorf("no item %s in %s", name, s.name)
	}
	return data, nil
}
