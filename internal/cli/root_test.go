package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/testutil"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// seedDB loads the sample catalog into a fresh database through the load
// command and returns its path.
func seedDB(t *testing.T) string {
	t.Helper()
	catalog := testutil.WriteFile(t, "catalog.yaml", testutil.SampleCatalog)
	db := filepath.Join(t.TempDir(), "cards.db")
	_, _, err := execute(t, "load", "--db", db, catalog)
	require.NoError(t, err)
	return db
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"parse", "compile", "search", "load", "test", "shell"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "yaml", "parse", "c:w")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
	assert.False(t, IsReported(err))
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, _, err := execute(t, "--page-size", "-1", "parse", "c:w")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
	assert.Contains(t, err.Error(), "page_size must be positive")
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	_, _, err := execute(t, "parse", "--bogus", "c:w")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestRootCommand_LogsToStderr(t *testing.T) {
	catalog := testutil.WriteFile(t, "catalog.yaml", testutil.SampleCatalog)
	db := filepath.Join(t.TempDir(), "cards.db")

	stdout, stderr, err := execute(t, "--log-level", "info", "--format", "json", "load", "--db", db, catalog)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"status":"ok"`)
	assert.Contains(t, stderr, "catalogs loaded")
	assert.NotContains(t, stdout, "catalogs loaded")
}
