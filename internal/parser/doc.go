// Package parser turns search text into a search.Node tree.
//
// The grammar, loosest binding first:
//
//	search  := or
//	or      := and ( ("OR" | ws) and )*
//	and     := negated ( ("AND" | ws) negated )*
//	negated := "-"? ( "(" ws? search ws? ")" | keyword )
//	keyword := color | identity | power | type | keyword | oracle | name
//
// Predicate prefixes and the OR/AND words are case-insensitive. Anything
// that is not a recognized predicate is a bare name match, except the
// words "or" and "and", which a bare name never consumes.
//
// Input is NFC-normalized and trimmed before parsing. Parsing is pure: the
// same text always yields the same tree.
package parser
