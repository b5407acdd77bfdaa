package parser

import (
	"strings"

	"github.com/roach88/cardsearch/internal/color"
	"github.com/roach88/cardsearch/internal/search"
)

// predicate parses one kind of leaf. On failure the scanner position is
// left wherever the attempt stopped; keyword restores it.
type predicate func(s *scanner) (search.Keyword, bool)

// predicates are tried in order; name comes last because it accepts almost
// anything.
var predicates = []predicate{
	colorQuery,
	identityQuery,
	powerQuery,
	typeLineQuery,
	keywordQuery,
	oracleQuery,
	name,
}

func keyword(s *scanner) (search.Keyword, bool) {
	start := s.pos
	for _, p := range predicates {
		if k, ok := p(s); ok {
			return k, true
		}
		s.pos = start
	}
	return nil, false
}

func operator(s *scanner) (search.Operator, bool) {
	for _, op := range search.Operators {
		if s.fold(op.String()) {
			return op, true
		}
	}
	return 0, false
}

// colorOperand reads a color word: a name, an alias or a run of letters.
func colorOperand(s *scanner) (color.Operand, bool) {
	word, ok := s.bare()
	if !ok || word == "" {
		return 0, false
	}
	return color.Lookup(word)
}

func colorComparison(s *scanner, prefixes ...string) (search.Operator, color.Operand, bool) {
	if !s.foldAny(prefixes...) {
		return 0, 0, false
	}
	op, ok := operator(s)
	if !ok {
		return 0, 0, false
	}
	operand, ok := colorOperand(s)
	if !ok {
		return 0, 0, false
	}
	return op, operand, true
}

func colorQuery(s *scanner) (search.Keyword, bool) {
	op, operand, ok := colorComparison(s, "color", "c")
	if !ok {
		return nil, false
	}
	return search.ColorQuery{Operator: op, Operand: operand}, true
}

func identityQuery(s *scanner) (search.Keyword, bool) {
	op, operand, ok := colorComparison(s, "identity", "id")
	if !ok {
		return nil, false
	}
	return search.ColorIdentityQuery{Operator: op, Operand: operand}, true
}

func powerQuery(s *scanner) (search.Keyword, bool) {
	if !s.foldAny("power", "pow") {
		return nil, false
	}
	op, ok := operator(s)
	if !ok {
		return nil, false
	}
	word, ok := s.bare()
	if !ok {
		return nil, false
	}
	switch {
	case strings.EqualFold(word, "toughness"), strings.EqualFold(word, "tou"):
		return search.PowerQuery{Operator: op, Operand: search.PowerToughness}, true
	case search.IsNumber(word):
		return search.PowerQuery{Operator: op, Operand: search.PowerNumber(word)}, true
	}
	return nil, false
}

func typeLineQuery(s *scanner) (search.Keyword, bool) {
	if !s.foldAny("type", "t") {
		return nil, false
	}
	if !s.char(':') && !s.char('=') {
		return nil, false
	}
	text, _, ok := s.text()
	if !ok {
		return nil, false
	}
	return search.TypeLineQuery{Text: text}, true
}

func keywordQuery(s *scanner) (search.Keyword, bool) {
	if !s.foldAny("keyword:", "kw:") {
		return nil, false
	}
	text, quoted, ok := s.text()
	if !ok {
		return nil, false
	}
	if !quoted {
		if synonym, ok := search.KeywordSynonym(text); ok {
			text = synonym
		}
	}
	return search.KeywordQuery{Keyword: text}, true
}

func oracleQuery(s *scanner) (search.Keyword, bool) {
	if !s.foldAny("oracle:", "o:") {
		return nil, false
	}
	text, _, ok := s.text()
	if !ok {
		return nil, false
	}
	return search.OracleQuery{Text: text}, true
}

// name matches bare or quoted text. A bare name is never empty and never
// one of the boolean operator words.
func name(s *scanner) (search.Keyword, bool) {
	text, quoted, ok := s.text()
	if !ok {
		return nil, false
	}
	if !quoted && (text == "" || search.IsReservedWord(text)) {
		return nil, false
	}
	return search.Name{Text: text}, true
}
