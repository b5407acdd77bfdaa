package search

import (
	"strings"
	"unicode"
)

// Format renders n as search text. Parsing the result yields a tree equal
// to n, with one exception: free text holding both quote characters cannot
// be quoted faithfully and is written between double quotes.
func Format(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch node := n.(type) {
	case Or:
		writeList(sb, node.Operands, " OR ", func(child Node) bool {
			switch unwrapPlain(child).(type) {
			case Or, *Or:
				return true
			}
			return false
		})
	case *Or:
		writeNode(sb, *node)
	case And:
		writeList(sb, node.Operands, " ", func(child Node) bool {
			switch unwrapPlain(child).(type) {
			case Or, And, *Or, *And:
				return true
			}
			return false
		})
	case *And:
		writeNode(sb, *node)
	case Negated:
		if !node.Negated {
			writeNode(sb, node.Operand)
			return
		}
		sb.WriteString("-")
		if isLeaf(node.Operand) {
			writeNode(sb, node.Operand)
			return
		}
		sb.WriteString("(")
		writeNode(sb, node.Operand)
		sb.WriteString(")")
	case *Negated:
		writeNode(sb, *node)
	case KeywordNode:
		writeKeyword(sb, node.Keyword)
	case *KeywordNode:
		writeKeyword(sb, node.Keyword)
	}
}

func writeList(sb *strings.Builder, operands []Node, sep string, needsParens func(Node) bool) {
	for i, child := range operands {
		if i > 0 {
			sb.WriteString(sep)
		}
		if needsParens(child) {
			sb.WriteString("(")
			writeNode(sb, child)
			sb.WriteString(")")
			continue
		}
		writeNode(sb, child)
	}
}

func writeKeyword(sb *strings.Builder, k Keyword) {
	switch kw := DerefKeyword(k).(type) {
	case ColorQuery:
		sb.WriteString("c" + kw.Operator.String() + kw.Operand.Name())
	case ColorIdentityQuery:
		sb.WriteString("id" + kw.Operator.String() + kw.Operand.Name())
	case PowerQuery:
		sb.WriteString("pow" + kw.Operator.String())
		if kw.Operand.IsToughness() {
			sb.WriteString("toughness")
		} else {
			sb.WriteString(kw.Operand.Number)
		}
	case OracleQuery:
		sb.WriteString("o:" + quoteText(kw.Text))
	case TypeLineQuery:
		sb.WriteString("t:" + quoteText(kw.Text))
	case KeywordQuery:
		text := quoteText(kw.Keyword)
		if _, ok := KeywordSynonym(text); ok {
			// A bare synonym would parse back as the printed name.
			text = quote(text)
		}
		sb.WriteString("kw:" + text)
	case Name:
		sb.WriteString(quoteName(kw.Text))
	}
}

// quoteText quotes free text following a prefix when it would not survive
// as a bare word.
func quoteText(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == ')' }) ||
		s[0] == '"' || s[0] == '\'' {
		return quote(s)
	}
	return s
}

// quoteName quotes a bare name unless it is a plain word that no other
// predicate or operator could claim.
func quoteName(s string) string {
	plain := s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if plain && !IsReservedWord(s) {
		return s
	}
	return quote(s)
}

func quote(s string) string {
	if strings.Contains(s, `"`) && !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

var keywordSynonyms = map[string]string{
	"doublestrike": "Double Strike",
	"firststrike":  "First Strike",
}

// KeywordSynonym returns the printed keyword name for a run-together
// spelling such as "doublestrike". Matching ignores case.
func KeywordSynonym(s string) (string, bool) {
	name, ok := keywordSynonyms[strings.ToLower(s)]
	return name, ok
}

// IsReservedWord reports whether s is a boolean operator word (or, and)
// that a bare name may not consume.
func IsReservedWord(s string) bool {
	return strings.EqualFold(s, "or") || strings.EqualFold(s, "and")
}

// unwrapPlain strips Negated wrappers that do not negate; they render as
// their operand.
func unwrapPlain(n Node) Node {
	for {
		switch node := n.(type) {
		case Negated:
			if node.Negated {
				return n
			}
			n = node.Operand
		case *Negated:
			if node == nil || node.Negated {
				return n
			}
			n = node.Operand
		default:
			return n
		}
	}
}

func isLeaf(n Node) bool {
	switch n.(type) {
	case KeywordNode, *KeywordNode:
		return true
	}
	return false
}
