package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RenderTrace lays out a result's trace as plain text for golden
// comparison. Compiled SQL is listed only for searches that compiled.
func RenderTrace(result *Result) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario: %s\n", result.Scenario)
	for _, event := range result.Trace {
		fmt.Fprintf(&sb, "search %d: %s\n", event.Step, event.Query)
		if event.Error != "" {
			fmt.Fprintf(&sb, "  error: %s\n", event.Error)
			continue
		}
		if event.Compiled {
			fmt.Fprintf(&sb, "  where: %s\n", event.Where)
			for _, j := range event.Joins {
				fmt.Fprintf(&sb, "  join: %s\n", j)
			}
			for _, p := range event.Params {
				fmt.Fprintf(&sb, "  param: %q\n", p)
			}
		}
		if event.Lenient {
			sb.WriteString("  lenient: true\n")
		}
		sb.WriteString("  names:\n")
		for _, name := range event.Names {
			fmt.Fprintf(&sb, "    %s\n", name)
		}
		if event.HasMore {
			sb.WriteString("  has_more: true\n")
		}
	}
	return []byte(sb.String())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, RenderTrace(result))
}
