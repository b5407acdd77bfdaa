// Package querysql compiles a search.Node into a SQLite query fragment.
//
// A compiled SQL value holds a WHERE predicate, the JOIN clauses the
// predicate refers to, and the parameters bound to its ? placeholders:
//
//	[search text] → [search.Node] → [querysql.SQL] → [store.FetchIDs]
//
// User text is never interpolated into the predicate. Substring matches
// bind their pattern as a parameter. Color comparisons render fixed column
// references, and power literals are emitted only after they pass the
// decimal number check in search.Validate.
//
// Keyword predicates join the card_keywords table under an alias t_N.
// Aliases are numbered by a counter owned by a single Compile call, so
// every compilation of the same tree yields the same SQL.
package querysql
