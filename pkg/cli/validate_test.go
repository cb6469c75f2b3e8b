package cli

import (
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.json":        validRecordJSON,
		"nested/good.yaml": validRecordYAML,
		"empty.json":       `{}`,
		"broken.json":      `{"inputs": [`,
		"notes.txt":        "not a record",
	})

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		contains []string
	}{
		{
			name:     "valid file",
			args:     []string{filepath.Join(dir, "good.json")},
			contains: []string{"good.json: valid: 0 errors"},
		},
		{
			name:     "yaml in a subdirectory",
			args:     []string{filepath.Join(dir, "nested", "good.yaml")},
			contains: []string{"good.yaml: valid"},
		},
		{
			name:     "missing required fields",
			args:     []string{filepath.Join(dir, "empty.json")},
			wantErr:  ErrRejected,
			contains: []string{"empty.json: invalid: 2 errors", "RequiredFieldAbsent"},
		},
		{
			name:     "undecodable",
			args:     []string{filepath.Join(dir, "broken.json")},
			wantErr:  ErrRejected,
			contains: []string{"broken.json: "},
		},
		{
			name:     "directory expands to record files",
			args:     []string{dir},
			wantErr:  ErrRejected,
			contains: []string{"good.json: valid", "good.yaml: valid", "empty.json: invalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := captureOutput(t)

			err := NewRootCommand().ExecuteArgs(append([]string{"validate"}, tt.args...))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
			assert.NotContains(t, out.String(), "notes.txt")
		})
	}
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"good.json": validRecordJSON, "empty.json": `{}`})
	out, _ := captureOutput(t)

	err := NewRootCommand().ExecuteArgs([]string{"validate", "-output", "json", dir})
	assert.ErrorIs(t, err, ErrRejected)

	var results []fileReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "empty.json", filepath.Base(results[0].File))
	assert.False(t, results[0].Accepted)
	assert.Len(t, results[0].Report.Errors(), 2)
	assert.Equal(t, "good.json", filepath.Base(results[1].File))
	assert.True(t, results[1].Accepted)
	assert.Equal(t, "json", results[1].Format)
}

func TestValidateCommand_Stdin(t *testing.T) {
	isolateConfig(t)
	out, _ := captureOutput(t)
	old := stdin
	stdin = strings.NewReader(validRecordYAML)
	t.Cleanup(func() { stdin = old })

	err := NewRootCommand().ExecuteArgs([]string{"validate", "-format", "yaml", "-"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "-: valid")
}

func TestValidateCommand_Errors(t *testing.T) {
	isolateConfig(t)
	captureOutput(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", []string{"validate"}, "no input files"},
		{"missing file", []string{"validate", filepath.Join(t.TempDir(), "nope.json")}, "failed to stat"},
		{"bad output", []string{"validate", "-output", "xml", "x.json"}, "invalid output format"},
		{"bad format", []string{"validate", "-format", "xml", "x.json"}, "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRootCommand().ExecuteArgs(tt.args)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
