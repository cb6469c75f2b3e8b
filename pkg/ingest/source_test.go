package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/codec"
)

// writeFiles creates files below dir, making parent directories as needed
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.yaml":         validRecordYAML,
		"a.json":         validRecordJSON,
		"notes.txt":      "ignored",
		"sub/c.json":     validRecordJSON,
		".git/d.json":    validRecordJSON,
		"sub/.e/f.json":  validRecordJSON,
		"sub/record.yml": validRecordYAML,
	})

	src, err := NewDirSource(dir)
	require.NoError(t, err)
	assert.Equal(t, "dir:"+dir, src.Name())

	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.yaml", "sub/c.json", "sub/record.yml"}, names)

	data, err := src.Read(context.Background(), "sub/c.json")
	require.NoError(t, err)
	assert.Equal(t, validRecordJSON, string(data))
}

func TestNewDirSource_Errors(t *testing.T) {
	_, err := NewDirSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))
	_, err = NewDirSource(file)
	assert.ErrorContains(t, err, "not a directory")
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.json": validRecordJSON})
	path := filepath.Join(dir, "a.json")

	src := NewFileSource(path)
	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{path}, names)

	_, err = src.Read(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		data string
		want codec.Format
	}{
		{"a.json", "", codec.FormatJSON},
		{"a.yml", "", codec.FormatYAML},
		{"a.binpb", "", codec.FormatProto},
		{"stdin", `{"inputs": {}}`, codec.FormatJSON},
		{"stdin", "inputs: {}", codec.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOf(tt.name, []byte(tt.data)))
		})
	}
}

func TestBytesSource(t *testing.T) {
	src := NewBytesSource("api", map[string][]byte{
		"b.yaml": []byte(validRecordYAML),
		"a.json": []byte(validRecordJSON),
	})
	assert.Equal(t, "api", src.Name())

	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.yaml"}, names)

	_, err = src.Read(context.Background(), "c.json")
	assert.Error(t, err)
}
