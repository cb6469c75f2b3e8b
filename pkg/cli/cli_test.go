package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validRecordJSON = `{
  "inputs": {
    "a": {"components": [{
      "identifiers": [{"type": "SMILES", "value": "CCO"}],
      "mass": {"value": 1, "units": "GRAM"},
      "reaction_role": "REACTANT",
      "is_limiting": true
    }]}
  },
  "outcomes": [{
    "products": [{
      "compound": {
        "identifiers": [{"type": "SMILES", "value": "CC=O"}],
        "mass": {"value": 0.8, "units": "GRAM"}
      },
      "is_desired_product": true,
      "compound_yield": {"value": 80}
    }]
  }]
}`

const validRecordYAML = `
inputs:
  a:
    components:
      - identifiers:
          - type: SMILES
            value: CCO
        mass:
          value: 1000
          units: MILLIGRAM
        reaction_role: REACTANT
        is_limiting: true
outcomes:
  - products:
      - compound:
          identifiers:
            - type: SMILES
              value: CC=O
          mass:
            value: 800
            units: MILLIGRAM
        is_desired_product: true
        compound_yield:
          value: 80
`

// captureOutput points the command output streams at buffers for the rest of the test
func captureOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr = oldOut, oldErr
	})
	return out, errOut
}

// isolateConfig keeps tests off the host's ORDCHECK_* settings and default store path
func isolateConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ORDCHECK_CONFIG", "")
	t.Setenv("ORDCHECK_ENGINE_CONFIG", "")
	t.Setenv("ORDCHECK_STORAGE_TYPE", "filesystem")
	t.Setenv("ORDCHECK_FILESYSTEM_ROOT", root)
	t.Setenv("ORDCHECK_REDIS_URL", "")
	t.Setenv("ORDCHECK_S3_BUCKET", "")
	t.Setenv("ORDCHECK_ARCHIVE_BUCKET", "")
	t.Setenv("ORDCHECK_WEBHOOK_URLS", "")
	t.Setenv("ORDCHECK_RATE_LIMIT_ENABLED", "")
	t.Setenv("ORDCHECK_LOG_LEVEL", "error")
	return root
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}
