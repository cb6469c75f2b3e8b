package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	assert.Equal(t, "ordcheck", root.Name)
	assert.NotNil(t, root.Flags)

	expected := []string{"validate", "normalize", "import", "watch", "serve", "units"}
	for _, name := range expected {
		if assert.Contains(t, root.Subcommands, name) {
			assert.NotEmpty(t, root.Subcommands[name].Description)
			assert.NotNil(t, root.Subcommands[name].Run)
		}
	}
	assert.Len(t, root.Subcommands, len(expected))
}

func TestCommandUsage(t *testing.T) {
	out, _ := captureOutput(t)

	for _, args := range [][]string{nil, {"-h"}, {"--help"}, {"help"}} {
		out.Reset()
		assert.NoError(t, NewRootCommand().ExecuteArgs(args))
		assert.Contains(t, out.String(), "Usage: ordcheck <command> [args]")
		assert.Contains(t, out.String(), "normalize")
	}

	// commands are listed alphabetically
	out.Reset()
	NewRootCommand().usage()
	assert.Less(t, strings.Index(out.String(), "import"), strings.Index(out.String(), "validate"))
}

func TestCommandExecute_Unknown(t *testing.T) {
	captureOutput(t)

	err := NewRootCommand().ExecuteArgs([]string{"frobnicate"})
	assert.EqualError(t, err, "unknown command: frobnicate")
}

func TestCommandExecute_BadFlag(t *testing.T) {
	_, errOut := captureOutput(t)

	err := NewRootCommand().ExecuteArgs([]string{"validate", "-no-such-flag"})
	assert.Error(t, err)
	assert.Contains(t, errOut.String(), "no-such-flag")
}
