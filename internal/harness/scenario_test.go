package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_File(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/keywords_and_paging.yaml")
	require.NoError(t, err)

	assert.Equal(t, "keywords_and_paging", s.Name)
	require.Len(t, s.Catalogs, 1)
	assert.Equal(t, filepath.Join("testdata", "catalogs", "sample.yaml"), s.Catalogs[0])
	require.Len(t, s.Cards, 1)
	assert.Equal(t, "Boros Swiftblade", s.Cards[0].Name)
	require.Len(t, s.Searches, 5)

	first := s.Searches[0]
	assert.Equal(t, "kw:flying", first.Query)
	assert.Equal(t, 2, first.Limit)
	require.NotNil(t, first.Expect.HasMore)
	assert.True(t, *first.Expect.HasMore)

	last := s.Searches[4]
	assert.NotNil(t, last.Expect.Names, "an explicit empty list is kept")
	assert.Empty(t, last.Expect.Names)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: misspelled key
search:
  - query: c:w
    expect:
      names: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: d
searches:
  - query: c:w
    expect: {names: []}
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: n
searches:
  - query: c:w
    expect: {names: []}
`,
			wantErr: "description is required",
		},
		{
			name: "no searches",
			content: `
name: n
description: d
`,
			wantErr: "searches list is required",
		},
		{
			name: "missing catalog",
			content: `
name: n
description: d
catalogs: [missing.yaml]
searches:
  - query: c:w
    expect: {names: []}
`,
			wantErr: "catalog file not found",
		},
		{
			name: "negative cursor",
			content: `
name: n
description: d
searches:
  - query: c:w
    cursor: -1
    expect: {names: []}
`,
			wantErr: "cursor must be non-negative",
		},
		{
			name: "empty expect",
			content: `
name: n
description: d
searches:
  - query: c:w
    expect: {}
`,
			wantErr: "at least one of",
		},
		{
			name: "unknown error code",
			content: `
name: n
description: d
searches:
  - query: c:w
    expect: {error: BAD_THING}
`,
			wantErr: `unknown error code "BAD_THING"`,
		},
		{
			name: "error with names",
			content: `
name: n
description: d
searches:
  - query: c:w
    expect: {error: SYNTAX_ERROR, names: []}
`,
			wantErr: "cannot be combined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
