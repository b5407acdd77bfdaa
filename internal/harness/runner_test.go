package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/fixture"
)

func TestRunAll(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.Len(t, paths, 3)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		require.NoError(t, err)
		scenarios = append(scenarios, s)
	}

	for _, workers := range []int{0, 1, 4} {
		results, err := RunAll(context.Background(), scenarios, workers)
		require.NoError(t, err)
		require.Len(t, results, len(scenarios))
		for i, r := range results {
			require.NotNil(t, r)
			assert.Equal(t, scenarios[i].Name, r.Scenario, "results keep input order")
			assert.True(t, r.Pass, "%s: %v", r.Scenario, r.Errors)
		}
	}
}

func TestRunAll_SetupFailure(t *testing.T) {
	good, err := LoadScenario("testdata/scenarios/lenient.yaml")
	require.NoError(t, err)
	bad := &Scenario{
		Name:        "bad",
		Description: "card with an unknown color",
		Cards:       []fixture.CardSpec{{Name: "Mystery", Colors: "purple"}},
		Searches:    []SearchStep{{Query: "", Expect: ExpectClause{Names: []string{}}}},
	}

	results, err := RunAll(context.Background(), []*Scenario{good, bad}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario bad")
	require.Len(t, results, 2)
	assert.True(t, results[0].Pass)
	assert.False(t, results[1].Pass)
	assert.Equal(t, "bad", results[1].Scenario)
	require.Len(t, results[1].Errors, 1)
	assert.Contains(t, results[1].Errors[0], `unknown color "purple"`)
	assert.NotErrorIs(t, err, ErrNotRun)
}

func TestRunAll_CancelledContext(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/lenient.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunAll(ctx, []*Scenario{s}, 2)
	require.ErrorIs(t, err, ErrNotRun)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
