package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cardsearch/internal/search"
)

// Parse parses a search string. Blank input yields search.MatchAll().
// Input the grammar cannot consume completely yields a *SyntaxError.
func Parse(input string) (search.Node, error) {
	src := strings.TrimSpace(norm.NFC.String(input))
	if src == "" {
		return search.MatchAll(), nil
	}

	s := &scanner{src: src}
	node, ok := parseOr(s)
	if !ok || !s.eof() {
		return nil, &SyntaxError{Input: src, Offset: s.pos, Remaining: s.rest()}
	}
	return node, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// fixed queries.
func MustParse(input string) search.Node {
	node, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return node
}

func parseOr(s *scanner) (search.Node, bool) {
	first, ok := parseAnd(s)
	if !ok {
		return nil, false
	}
	operands := []search.Node{first}
	for {
		save := s.pos
		if !separator(s, "or") {
			break
		}
		next, ok := parseAnd(s)
		if !ok {
			s.pos = save
			break
		}
		operands = append(operands, next)
	}
	return search.NewOr(operands...), true
}

func parseAnd(s *scanner) (search.Node, bool) {
	first, ok := parseNegated(s)
	if !ok {
		return nil, false
	}
	operands := []search.Node{first}
	for {
		save := s.pos
		if !separator(s, "and") {
			break
		}
		next, ok := parseNegated(s)
		if !ok {
			s.pos = save
			break
		}
		operands = append(operands, next)
	}
	return search.NewAnd(operands...), true
}

// separator consumes whitespace, optionally around the operator word. The
// word only counts when whitespace or a group or negation follows it, so
// "a orc" is two names.
func separator(s *scanner, word string) bool {
	if s.skipSpace() == 0 {
		return false
	}
	afterSpace := s.pos
	if s.fold(word) {
		if s.skipSpace() > 0 || (!s.eof() && (s.peek() == '(' || s.peek() == '-')) {
			return true
		}
		s.pos = afterSpace
	}
	return true
}

func parseNegated(s *scanner) (search.Node, bool) {
	start := s.pos
	negated := s.char('-')

	var inner search.Node
	if s.char('(') {
		s.skipSpace()
		node, ok := parseOr(s)
		if !ok {
			s.pos = start
			return nil, false
		}
		s.skipSpace()
		if !s.char(')') {
			s.pos = start
			return nil, false
		}
		inner = node
	} else {
		k, ok := keyword(s)
		if !ok {
			s.pos = start
			return nil, false
		}
		inner = search.Leaf(k)
	}

	if negated {
		return search.Not(inner), true
	}
	return inner, true
}
