package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/color"
)

func TestValidate_WellFormedTrees(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"match all", MatchAll()},
		{"name", Leaf(Name{Text: "bolt"})},
		{"empty text", Leaf(TypeLineQuery{})},
		{"color", Leaf(ColorQuery{Operator: GreaterThanOrEqual, Operand: color.Esper})},
		{"identity pseudo", Leaf(ColorIdentityQuery{Operator: Equal, Operand: color.Colorless})},
		{"power literal", Leaf(PowerQuery{Operator: Colon, Operand: PowerNumber("-1.5e2")})},
		{"power toughness", Leaf(PowerQuery{Operator: GreaterThan, Operand: PowerToughness})},
		{"nested", NewOr(
			NewAnd(Leaf(Name{Text: "a"}), Not(Leaf(KeywordQuery{Keyword: "Flying"}))),
			Negated{Negated: false, Operand: Leaf(OracleQuery{Text: "draw"})},
		)},
		{"pointers", &Or{Operands: []Node{
			&Negated{Negated: true, Operand: &KeywordNode{Keyword: &Name{Text: "x"}}},
			&And{},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, Validate(tt.node))
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	node := And{Operands: []Node{
		nil,
		Leaf(ColorQuery{Operator: Operator(99), Operand: color.Red}),
		Leaf(ColorIdentityQuery{Operator: Equal, Operand: color.Operand(0)}),
		Leaf(PowerQuery{Operator: Equal, Operand: PowerNumber("NaN")}),
		Or{},
		KeywordNode{},
		Negated{Negated: true},
	}}

	err := Validate(node)
	require.Error(t, err)
	assert.True(t, IsContractError(err))

	var ce *ContractError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Problems, 7)
	assert.Contains(t, err.Error(), "malformed search tree")
}

func TestValidate_WrappedContractError(t *testing.T) {
	err := fmt.Errorf("compile: %w", Validate(Or{}))
	assert.True(t, IsContractError(err))
	assert.False(t, IsContractError(fmt.Errorf("other")))
}

func TestValidate_Leaf(t *testing.T) {
	assert.NoError(t, Validate(Leaf(Name{Text: "bolt"})))
	assert.Error(t, Validate(KeywordNode{}))
	assert.Error(t, Validate(Leaf(PowerQuery{Operator: Equal, Operand: PowerNumber("")})))
}

func TestIsNumber(t *testing.T) {
	valid := []string{"0", "3", "-1", "+2", "1.5", ".5", "5.", "1e3", "2.5E-1"}
	for _, s := range valid {
		assert.True(t, IsNumber(s), s)
	}
	invalid := []string{"", "-", ".", "x", "1x", "0x10", "Inf", "NaN", "1 2", "1e"}
	for _, s := range invalid {
		assert.False(t, IsNumber(s), s)
	}
}
