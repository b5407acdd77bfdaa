// Package engine runs card searches end to end.
//
// A search string is parsed into a search.Node, compiled into a
// querysql.SQL fragment and handed to a Fetcher (normally *store.Store)
// which returns one page of card ids.
//
// Compiled fragments are cached by query text in a bounded LRU so repeated
// searches skip parsing and compilation. Parse and compile are pure, so the
// cache is the only shared state and is internally locked; an Engine is
// safe for concurrent use.
//
// Syntax errors are handled according to the engine mode:
//
//	strict (default): Search returns a *SearchError wrapping *parser.SyntaxError
//	lenient:          the error is logged and the search runs with an empty predicate
//
// Each search is stamped with a monotonically increasing sequence number
// that appears in log records so a page can be traced back to its request.
package engine
