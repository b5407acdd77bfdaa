package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/fixture"
)

func TestRun_ScenarioFiles(t *testing.T) {
	for _, name := range []string{"esper_identity", "keywords_and_paging", "lenient"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := Run(context.Background(), s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(s.Searches))
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	s := &Scenario{
		Name:        "mismatch",
		Description: "expectations that do not hold",
		Cards: []fixture.CardSpec{
			{Name: "Llanowar Elves", TypeLine: "Creature — Elf Druid", Colors: "G", Identity: "G", Power: "1", Toughness: "1"},
		},
		Searches: []SearchStep{
			{Query: "t:elf", Expect: ExpectClause{Names: []string{"Elvish Mystic"}}},
			{Query: "t:elf", Expect: ExpectClause{Error: "SYNTAX_ERROR"}},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Expected: [Elvish Mystic]")
	assert.Contains(t, result.Errors[0], "Actual: [Llanowar Elves]")
	assert.Contains(t, result.Errors[1], "Expected: SYNTAX_ERROR")
}

func TestRun_TraceContents(t *testing.T) {
	s := &Scenario{
		Name:        "trace",
		Description: "trace records compiled SQL and names",
		Cards: []fixture.CardSpec{
			{Name: "Giant Growth", TypeLine: "Instant", OracleText: "Target creature gets +3/+3 until end of turn.", Colors: "G", Identity: "G"},
		},
		Searches: []SearchStep{
			{Query: "o:+3/+3", Expect: ExpectClause{Names: []string{"Giant Growth"}}},
			{Query: "(", Expect: ExpectClause{Error: "SYNTAX_ERROR"}},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 2)

	found := result.Trace[0]
	assert.Equal(t, 1, found.Step)
	assert.True(t, found.Compiled)
	assert.Equal(t, `cards.oracle_text LIKE ? ESCAPE '\'`, found.Where)
	assert.Equal(t, []any{"%+3/+3%"}, found.Params)
	assert.Empty(t, found.Error)

	failed := result.Trace[1]
	assert.False(t, failed.Compiled)
	assert.Equal(t, "SYNTAX_ERROR", failed.Error)
	assert.Empty(t, failed.Names)
}

func TestRun_InvalidInlineCards(t *testing.T) {
	s := &Scenario{
		Name:        "bad_cards",
		Description: "duplicate inline cards",
		Cards: []fixture.CardSpec{
			{Name: "Opt"},
			{Name: "Opt"},
		},
		Searches: []SearchStep{{Query: "opt", Expect: ExpectClause{Names: []string{"Opt"}}}},
	}

	_, err := Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline cards")
}
