// Package harness runs conformance scenarios for card search.
//
// A scenario is a YAML file naming a card catalog and a list of searches
// with their expected pages:
//
//	name: esper_identity
//	description: identity equality and subset over the Esper colors
//	catalogs: [../catalogs/sample.yaml]
//	searches:
//	  - query: id=esper
//	    expect:
//	      names: [Esper Charm, Sphinx of the Steel Wind]
//	  - query: c=red)
//	    expect:
//	      error: SYNTAX_ERROR
//
// Each scenario runs against its own in-memory SQLite store through the
// same engine the CLI uses, so a scenario exercises parsing, compilation,
// page assembly and the store together. The trace of a run (compiled SQL
// plus returned names per search) can be snapshotted with goldie.
//
// RunAll spreads independent scenarios over a bounded goroutine pool.
package harness
