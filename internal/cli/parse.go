package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/parser"
	"github.com/roach88/cardsearch/internal/search"
)

// ASTNode is the printable form of a parsed search.
type ASTNode struct {
	Type     string    `json:"type"` // or, and, not, color, identity, power, oracle, type, keyword, name
	Operator string    `json:"operator,omitempty"`
	Value    string    `json:"value,omitempty"`
	Operands []ASTNode `json:"operands,omitempty"`
}

// ParseResult is the output of the parse command.
type ParseResult struct {
	Query     string  `json:"query"`
	Canonical string  `json:"canonical"`
	AST       ASTNode `json:"ast"`
}

// RenderText prints the canonical search and an indented tree.
func (r ParseResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "canonical: %s\n", r.Canonical)
	writeTree(w, r.AST, 0)
	return nil
}

func writeTree(w io.Writer, n ASTNode, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case n.Operator != "":
		fmt.Fprintf(w, "%s%s %s %s\n", indent, n.Type, n.Operator, n.Value)
	case n.Value != "":
		fmt.Fprintf(w, "%s%s %q\n", indent, n.Type, n.Value)
	default:
		fmt.Fprintf(w, "%s%s\n", indent, n.Type)
	}
	for _, child := range n.Operands {
		writeTree(w, child, depth+1)
	}
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <query>",
		Short: "Parse a search string and print its syntax tree",
		Long: `Parse a search string and print the canonical form and syntax tree.

Exit codes:
  0 - The search parsed
  1 - Syntax error
  2 - Command error`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
}

func runParse(opts *RootOptions, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	node, err := parser.Parse(query)
	if err != nil {
		return failQuery(formatter, err)
	}

	return formatter.Success(ParseResult{
		Query:     query,
		Canonical: search.Format(node),
		AST:       describeNode(node),
	})
}

// failQuery reports a parse or compile error with its position details.
func failQuery(formatter *OutputFormatter, err error) error {
	var syn *parser.SyntaxError
	if errors.As(err, &syn) {
		return formatter.Fail(ExitFailure, ErrCodeSyntax, err, map[string]any{
			"offset":    syn.Offset,
			"remaining": syn.Remaining,
		})
	}
	return formatter.Fail(ExitFailure, ErrCodeInvalidQuery, err, nil)
}

func describeNode(n search.Node) ASTNode {
	switch node := n.(type) {
	case search.Or:
		return ASTNode{Type: "or", Operands: describeAll(node.Operands)}
	case search.And:
		return ASTNode{Type: "and", Operands: describeAll(node.Operands)}
	case search.Negated:
		if !node.Negated {
			return describeNode(node.Operand)
		}
		return ASTNode{Type: "not", Operands: []ASTNode{describeNode(node.Operand)}}
	case search.KeywordNode:
		return describeKeyword(node.Keyword)
	}
	return ASTNode{Type: fmt.Sprintf("%T", n)}
}

func describeAll(nodes []search.Node) []ASTNode {
	out := make([]ASTNode, len(nodes))
	for i, n := range nodes {
		out[i] = describeNode(n)
	}
	return out
}

func describeKeyword(k search.Keyword) ASTNode {
	switch kw := search.DerefKeyword(k).(type) {
	case search.ColorQuery:
		return ASTNode{Type: "color", Operator: kw.Operator.String(), Value: kw.Operand.Name()}
	case search.ColorIdentityQuery:
		return ASTNode{Type: "identity", Operator: kw.Operator.String(), Value: kw.Operand.Name()}
	case search.PowerQuery:
		value := kw.Operand.Number
		if kw.Operand.IsToughness() {
			value = "toughness"
		}
		return ASTNode{Type: "power", Operator: kw.Operator.String(), Value: value}
	case search.OracleQuery:
		return ASTNode{Type: "oracle", Value: kw.Text}
	case search.TypeLineQuery:
		return ASTNode{Type: "type", Value: kw.Text}
	case search.KeywordQuery:
		return ASTNode{Type: "keyword", Value: kw.Keyword}
	case search.Name:
		return ASTNode{Type: "name", Value: kw.Text}
	}
	return ASTNode{Type: fmt.Sprintf("%T", k)}
}
