package harness

// TraceEvent records what one search step produced.
type TraceEvent struct {
	// Step is the 1-based position of the search in the scenario.
	Step  int
	Query string

	// Compiled is false if the query did not compile; Where, Joins and
	// Params are then empty.
	Compiled bool
	Where    string
	Joins    []string
	Params   []any

	// Names are the card names of the returned page.
	Names   []string
	HasMore bool
	Lenient bool

	// Error is the engine error code, empty on success.
	Error string
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Scenario is the name of the scenario that produced this result.
	Scenario string

	// Pass indicates overall test success.
	// True if every search matched its expect clause.
	Pass bool

	// Trace contains one event per search, in order.
	Trace []TraceEvent

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a search event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
