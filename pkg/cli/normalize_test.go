package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

func TestNormalizeCommand(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"record.yaml": validRecordYAML, "empty.json": `{}`})
	out, errOut := captureOutput(t)

	err := NewRootCommand().ExecuteArgs([]string{"normalize", filepath.Join(dir, "record.yaml")})
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "record.yaml: valid")

	rec, _, err := codec.DecodeJSON(out.Bytes())
	require.NoError(t, err)
	amount, ok := rec.Inputs["a"].Components[0].Amount.(*reaction.MassAmount)
	require.True(t, ok)
	assert.Equal(t, units.Gram, amount.Mass.Units)
	assert.InDelta(t, 1.0, amount.Mass.Value, 1e-9)
}

func TestNormalizeCommand_OutputFormats(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"record.json": validRecordJSON})
	captureOutput(t)

	for _, format := range []codec.Format{codec.FormatYAML, codec.FormatProto} {
		t.Run(string(format), func(t *testing.T) {
			target := filepath.Join(dir, "out."+string(format))
			err := NewRootCommand().ExecuteArgs([]string{
				"normalize", "-to", string(format), "-o", target, filepath.Join(dir, "record.json"),
			})
			require.NoError(t, err)

			data, err := os.ReadFile(target)
			require.NoError(t, err)
			rec, _, err := codec.Decode(data, format)
			require.NoError(t, err)
			assert.Len(t, rec.Outcomes, 1)
		})
	}
}

func TestNormalizeCommand_Rejected(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"empty.json": `{}`})

	out, errOut := captureOutput(t)
	err := NewRootCommand().ExecuteArgs([]string{"normalize", filepath.Join(dir, "empty.json")})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "RequiredFieldAbsent")

	out.Reset()
	err = NewRootCommand().ExecuteArgs([]string{"normalize", "-force", filepath.Join(dir, "empty.json")})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "{")
}

func TestNormalizeCommand_Args(t *testing.T) {
	isolateConfig(t)
	captureOutput(t)

	err := NewRootCommand().ExecuteArgs([]string{"normalize"})
	assert.ErrorContains(t, err, "exactly one input file")

	err = NewRootCommand().ExecuteArgs([]string{"normalize", "-to", "csv", "x.json"})
	assert.ErrorContains(t, err, "unsupported format")
}
