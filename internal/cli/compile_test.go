package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCommand_Text(t *testing.T) {
	stdout, _, err := execute(t, "compile", "kw:flying")
	require.NoError(t, err)

	want := `where: t_0.card_id IS NOT NULL
joins:
  LEFT JOIN card_keywords t_0 ON cards.id = t_0.card_id AND t_0.keyword LIKE ? ESCAPE '\'
params:
  "%flying%"
`
	assert.Equal(t, want, stdout)
}

func TestCompileCommand_MatchAll(t *testing.T) {
	stdout, _, err := execute(t, "compile", "")
	require.NoError(t, err)
	assert.Equal(t, "where: (none)\n", stdout)
}

func TestCompileCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "compile", "--full", "kw:flying")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   CompileResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "kw:flying", resp.Data.Query)
	assert.Equal(t, []any{"%flying%"}, resp.Data.Params)
	assert.Contains(t, resp.Data.SQL, "SELECT DISTINCT cards.id FROM cards LEFT JOIN card_keywords t_0 ON cards.id = t_0.card_id AND t_0.keyword LIKE ?")
	assert.Contains(t, resp.Data.SQL, "WHERE t_0.card_id IS NOT NULL")
	assert.Contains(t, resp.Data.SQL, "LIMIT :limit OFFSET :cursor")
}

func TestCompileCommand_EmptySlicesInJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "compile", "")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"joins":[]`)
	assert.Contains(t, stdout, `"params":[]`)
	assert.NotContains(t, stdout, `"sql"`)
}

func TestCompileCommand_SyntaxError(t *testing.T) {
	stdout, _, err := execute(t, "compile", "(c:w")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stdout, "Error [E001]: syntax error")
}
