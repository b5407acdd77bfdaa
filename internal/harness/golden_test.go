package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// To regenerate golden files, run:
//
//	go test ./internal/harness -run TestRunWithGolden -update
func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"esper_identity", "keywords_and_paging"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRenderTrace(t *testing.T) {
	result := NewResult("render")
	result.AddTrace(TraceEvent{
		Step:     1,
		Query:    "kw:flying",
		Compiled: true,
		Where:    "t_0.card_id IS NOT NULL",
		Joins:    []string{"LEFT JOIN card_keywords t_0 ON cards.id = t_0.card_id AND t_0.keyword LIKE ? ESCAPE '\\'"},
		Params:   []any{"%flying%"},
		Names:    []string{"Serra Angel"},
		HasMore:  true,
	})
	result.AddTrace(TraceEvent{Step: 2, Query: "c=red)", Lenient: true, Names: []string{}})
	result.AddTrace(TraceEvent{Step: 3, Query: "(", Error: "SYNTAX_ERROR"})

	want := `scenario: render
search 1: kw:flying
  where: t_0.card_id IS NOT NULL
  join: LEFT JOIN card_keywords t_0 ON cards.id = t_0.card_id AND t_0.keyword LIKE ? ESCAPE '\'
  param: "%flying%"
  names:
    Serra Angel
  has_more: true
search 2: c=red)
  lenient: true
  names:
search 3: (
  error: SYNTAX_ERROR
`
	assert.Equal(t, want, string(RenderTrace(result)))
}
