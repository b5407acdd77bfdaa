package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when a search does not match its expect
// clause. It includes detailed context to help debug the failure.
type AssertionError struct {
	Step     int    // 1-based search position
	Query    string // Search string
	Field    string // Expectation that failed (names, where, error, ...)
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: search %d %q: %s\n", e.Step, e.Query, e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// CheckExpect compares a trace event against an expect clause and returns
// every mismatch.
func CheckExpect(expect ExpectClause, event TraceEvent) []*AssertionError {
	var failures []*AssertionError
	fail := func(field, expected, actual string) {
		failures = append(failures, &AssertionError{
			Step:     event.Step,
			Query:    event.Query,
			Field:    field,
			Expected: expected,
			Actual:   actual,
		})
	}

	if expect.Error != "" {
		if event.Error != expect.Error {
			fail("error", expect.Error, describeError(event.Error))
		}
		return failures
	}
	if event.Error != "" {
		fail("error", "no error", event.Error)
		return failures
	}

	if expect.Names != nil && !slices.Equal(expect.Names, event.Names) {
		fail("names", formatNames(expect.Names), formatNames(event.Names))
	}
	if expect.Where != "" && expect.Where != event.Where {
		fail("where", expect.Where, event.Where)
	}
	if expect.HasMore != nil && *expect.HasMore != event.HasMore {
		fail("has_more", fmt.Sprint(*expect.HasMore), fmt.Sprint(event.HasMore))
	}
	if expect.Lenient != nil && *expect.Lenient != event.Lenient {
		fail("lenient", fmt.Sprint(*expect.Lenient), fmt.Sprint(event.Lenient))
	}
	return failures
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func describeError(code string) string {
	if code == "" {
		return "no error"
	}
	return code
}
