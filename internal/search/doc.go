// Package search defines the abstract syntax tree of a parsed card search.
//
// A search is a tree of Node values:
//
//	Or{Operands}         any operand matches
//	And{Operands}        every operand matches (an empty And matches all cards)
//	Negated{Negated, X}  X, inverted when Negated is true
//	KeywordNode{K}       a single predicate leaf
//
// Leaves implement Keyword: ColorQuery, ColorIdentityQuery, PowerQuery,
// OracleQuery, TypeLineQuery, KeywordQuery and Name.
//
// # Sealed Interfaces
//
// Node and Keyword use the marker method pattern, so only types in this
// package implement them and backends can switch over them exhaustively.
//
// # Negation
//
// Negation lives only on Negated nodes. Leaves carry no negated flag, so a
// tree has exactly one way to say "not".
//
// # Construction
//
// NewOr and NewAnd collapse a one-element list to that element; the tree
// never holds a singleton Or or And built through them. Trees are values:
// they are built once per search and never mutated afterwards.
package search
