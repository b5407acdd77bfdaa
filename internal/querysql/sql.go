package querysql

import "strings"

// SQL is a compiled search: a WHERE predicate, the joins it needs and the
// values bound to their ? placeholders. Joins precede WHERE in the query
// text, so JoinParams bind first; Args returns both in binding order.
type SQL struct {
	Where      string
	Joins      []string
	JoinParams []any
	Params     []any
}

// Args returns every bound value in placeholder order.
func (s SQL) Args() []any {
	args := make([]any, 0, len(s.JoinParams)+len(s.Params))
	args = append(args, s.JoinParams...)
	return append(args, s.Params...)
}

// Wheres returns the WHERE clause, or "" when the search matches every
// card.
func (s SQL) Wheres() string {
	if s.Where == "" {
		return ""
	}
	return "WHERE " + s.Where
}

// JoinClauses returns the joins separated by newlines.
func (s SQL) JoinClauses() string {
	return strings.Join(s.Joins, "\n")
}

// IsEmpty reports whether the search places no restriction on cards.
func (s SQL) IsEmpty() bool {
	return s.Where == "" && len(s.Joins) == 0
}
