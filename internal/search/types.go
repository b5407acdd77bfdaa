package search

import (
	"fmt"

	"github.com/roach88/cardsearch/internal/color"
)

// Node is a node of a parsed search.
//
// This is a sealed interface - only types in this package implement it.
type Node interface {
	searchNode() // Marker method - seals interface to this package
}

// Keyword is a predicate leaf of a parsed search.
//
// This is a sealed interface - only types in this package implement it.
type Keyword interface {
	searchKeyword() // Marker method - seals interface to this package
}

// Operator is a comparison operator of a color, identity or power query.
// The zero value is not a valid operator.
type Operator int

const (
	LessThan Operator = iota + 1
	LessThanOrEqual
	NotEqual
	Colon
	Equal
	GreaterThan
	GreaterThanOrEqual
)

var operatorTokens = map[Operator]string{
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	NotEqual:           "!=",
	Colon:              ":",
	Equal:              "=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
}

// Operators lists every operator in scan order: two-character tokens come
// before their one-character prefixes.
var Operators = []Operator{NotEqual, LessThanOrEqual, GreaterThanOrEqual, LessThan, Colon, Equal, GreaterThan}

// String returns the operator as it is written in a search.
func (o Operator) String() string {
	if tok, ok := operatorTokens[o]; ok {
		return tok
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Valid reports whether o is one of the seven operators.
func (o Operator) Valid() bool {
	_, ok := operatorTokens[o]
	return ok
}

// Or matches when any operand matches.
type Or struct {
	Operands []Node
}

func (Or) searchNode() {}

// And matches when every operand matches. An And with no operands matches
// every card.
type And struct {
	Operands []Node
}

func (And) searchNode() {}

// Negated inverts Operand when Negated is true and passes it through
// otherwise.
type Negated struct {
	Negated bool
	Operand Node
}

func (Negated) searchNode() {}

// KeywordNode wraps a predicate leaf.
type KeywordNode struct {
	Keyword Keyword
}

func (KeywordNode) searchNode() {}

// ColorQuery compares a card's printed colors (c:, color:).
type ColorQuery struct {
	Operator Operator
	Operand  color.Operand
}

func (ColorQuery) searchKeyword() {}

// ColorIdentityQuery compares a card's color identity (id:, identity:).
type ColorIdentityQuery struct {
	Operator Operator
	Operand  color.Operand
}

func (ColorIdentityQuery) searchKeyword() {}

// PowerOperandKind tells a literal number from the toughness reference.
type PowerOperandKind int

const (
	// PowerLiteral compares against a number.
	PowerLiteral PowerOperandKind = iota
	// PowerSelfToughness compares against the card's own toughness.
	PowerSelfToughness
)

// PowerOperand is the right-hand side of a power query.
type PowerOperand struct {
	Kind PowerOperandKind
	// Number is the numeric text exactly as parsed (PowerLiteral only).
	Number string
}

// PowerNumber returns a literal operand holding the parsed numeric text.
func PowerNumber(text string) PowerOperand {
	return PowerOperand{Kind: PowerLiteral, Number: text}
}

// PowerToughness compares power against the card's toughness column.
var PowerToughness = PowerOperand{Kind: PowerSelfToughness}

// IsToughness reports whether the operand refers to the toughness column.
func (p PowerOperand) IsToughness() bool { return p.Kind == PowerSelfToughness }

// PowerQuery compares a card's power (pow:, power:).
type PowerQuery struct {
	Operator Operator
	Operand  PowerOperand
}

func (PowerQuery) searchKeyword() {}

// OracleQuery matches a substring of the rules text (o:, oracle:).
type OracleQuery struct {
	Text string
}

func (OracleQuery) searchKeyword() {}

// TypeLineQuery matches a substring of the type line (t:, type:).
type TypeLineQuery struct {
	Text string
}

func (TypeLineQuery) searchKeyword() {}

// KeywordQuery matches a keyword ability (kw:, keyword:).
type KeywordQuery struct {
	Keyword string
}

func (KeywordQuery) searchKeyword() {}

// Name matches a substring of the card name. It is what bare words parse to.
type Name struct {
	Text string
}

func (Name) searchKeyword() {}

// NewOr builds an Or, collapsing a single operand to itself.
func NewOr(operands ...Node) Node {
	if len(operands) == 1 {
		return operands[0]
	}
	return Or{Operands: operands}
}

// NewAnd builds an And, collapsing a single operand to itself.
func NewAnd(operands ...Node) Node {
	if len(operands) == 1 {
		return operands[0]
	}
	return And{Operands: operands}
}

// Not wraps n in a Negated node that inverts it.
func Not(n Node) Node {
	return Negated{Negated: true, Operand: n}
}

// Leaf wraps a keyword in a KeywordNode.
func Leaf(k Keyword) Node {
	return KeywordNode{Keyword: k}
}

// MatchAll is the search produced by blank input.
func MatchAll() Node {
	return And{}
}

// DerefKeyword returns the value form of a pointer leaf so callers can
// switch on value types only. A nil pointer yields nil.
func DerefKeyword(k Keyword) Keyword {
	switch kw := k.(type) {
	case *ColorQuery:
		if kw == nil {
			return nil
		}
		return *kw
	case *ColorIdentityQuery:
		if kw == nil {
			return nil
		}
		return *kw
	case *PowerQuery:
		if kw == nil {
			return nil
		}
		return *kw
	case *OracleQuery:
		if kw == nil {
			return nil
		}
		return *kw
	case *TypeLineQuery:
		if kw == nil {
			return nil
		}
		return *kw
	case *KeywordQuery:
		if kw == nil {
			return nil
		}
		return *kw
	case *Name:
		if kw == nil {
			return nil
		}
		return *kw
	}
	return k
}
