package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/cardsearch/internal/search"
)

// KeywordTable is the table keyword predicates join against.
const KeywordTable = "card_keywords"

// likeEscape is the ESCAPE clause paired with every bound LIKE pattern.
const likeEscape = `ESCAPE '\'`

// SQLCompiler compiles search trees to SQLite fragments.
//
// CRITICAL: user text is always bound as a parameter, never interpolated.
type SQLCompiler struct {
	// Colors resolves c: queries.
	Colors ColorColumns
	// Identity resolves id: queries.
	Identity ColorColumns
}

// NewSQLCompiler creates a compiler over the cards table layout.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{
		Colors:   PrintedColorColumns,
		Identity: IdentityColumns,
	}
}

// Compile compiles n with the default column layout.
func Compile(n search.Node) (SQL, error) {
	return NewSQLCompiler().Compile(n)
}

// Compile converts a search tree to a WHERE predicate, joins and params.
// A malformed tree yields a *search.ContractError and no SQL.
func (c *SQLCompiler) Compile(n search.Node) (SQL, error) {
	if err := search.Validate(n); err != nil {
		return SQL{}, err
	}

	cc := &compileContext{compiler: c}
	frag, err := cc.compileNode(n)
	if err != nil {
		return SQL{}, err
	}
	return SQL{Where: frag.where, Joins: frag.joins, JoinParams: frag.joinParams, Params: frag.params}, nil
}

// compileContext carries the state of one Compile call.
type compileContext struct {
	compiler *SQLCompiler
	aliases  int
}

// nextAlias returns t_0, t_1, ... in call order.
func (cc *compileContext) nextAlias() string {
	alias := fmt.Sprintf("t_%d", cc.aliases)
	cc.aliases++
	return alias
}

// fragment is a partially compiled predicate. An empty where means the
// subtree places no restriction. joinParams bind the placeholders in
// joins, params those in where.
type fragment struct {
	where      string
	joins      []string
	joinParams []any
	params     []any
}

// matchNone is the predicate of a subtree that excludes every card.
const matchNone = "FALSE"

func (cc *compileContext) compileNode(n search.Node) (fragment, error) {
	switch node := n.(type) {
	case search.Or:
		return cc.compileList(node.Operands, " OR ", true)
	case *search.Or:
		return cc.compileList(node.Operands, " OR ", true)
	case search.And:
		return cc.compileList(node.Operands, " AND ", false)
	case *search.And:
		return cc.compileList(node.Operands, " AND ", false)
	case search.Negated:
		return cc.compileNegated(node)
	case *search.Negated:
		return cc.compileNegated(*node)
	case search.KeywordNode:
		return cc.compileKeyword(node.Keyword)
	case *search.KeywordNode:
		return cc.compileKeyword(node.Keyword)
	default:
		return fragment{}, fmt.Errorf("unsupported node type: %T", n)
	}
}

// compileList joins the contributing operands with sep, parenthesizing
// each when more than one contributes. An operand without a predicate
// matches every card: under AND it is dropped, under OR (anyMatchesAll)
// it makes the whole list unrestricted. Joins are kept either way.
func (cc *compileContext) compileList(operands []search.Node, sep string, anyMatchesAll bool) (fragment, error) {
	var out fragment
	var wheres []string
	unrestricted := false
	for _, op := range operands {
		frag, err := cc.compileNode(op)
		if err != nil {
			return fragment{}, err
		}
		out.joins = append(out.joins, frag.joins...)
		out.joinParams = append(out.joinParams, frag.joinParams...)
		if frag.where == "" {
			unrestricted = unrestricted || anyMatchesAll
			continue
		}
		out.params = append(out.params, frag.params...)
		wheres = append(wheres, frag.where)
	}

	if unrestricted {
		out.params = nil
		return out, nil
	}
	switch len(wheres) {
	case 0:
	case 1:
		out.where = wheres[0]
	default:
		for i, w := range wheres {
			wheres[i] = "(" + w + ")"
		}
		out.where = strings.Join(wheres, sep)
	}
	return out, nil
}

// compileNegated inverts the operand. The negation of a subtree that
// matches every card matches none.
func (cc *compileContext) compileNegated(n search.Negated) (fragment, error) {
	frag, err := cc.compileNode(n.Operand)
	if err != nil {
		return fragment{}, err
	}
	if !n.Negated {
		return frag, nil
	}
	if frag.where == "" {
		frag.where = matchNone
		frag.params = nil
		return frag, nil
	}
	frag.where = "NOT (" + frag.where + ")"
	return frag, nil
}

func (cc *compileContext) compileKeyword(k search.Keyword) (fragment, error) {
	switch kw := search.DerefKeyword(k).(type) {
	case search.ColorQuery:
		where, err := compileColor(kw.Operator, kw.Operand, cc.compiler.Colors)
		return fragment{where: where}, err
	case search.ColorIdentityQuery:
		where, err := compileColor(kw.Operator, kw.Operand, cc.compiler.Identity)
		return fragment{where: where}, err
	case search.PowerQuery:
		return compilePower(kw), nil
	case search.OracleQuery:
		return compileLike("cards.oracle_text", kw.Text), nil
	case search.TypeLineQuery:
		return compileLike("cards.type_line", kw.Text), nil
	case search.Name:
		return compileLike("cards.name", kw.Text), nil
	case search.KeywordQuery:
		return cc.compileKeywordQuery(kw), nil
	default:
		return fragment{}, fmt.Errorf("unsupported keyword type: %T", k)
	}
}

// compilePower emits the operand as SQL text. Validate has already checked
// that a literal is a plain decimal number.
func compilePower(pq search.PowerQuery) fragment {
	op := pq.Operator.String()
	if pq.Operator == search.Colon {
		op = "="
	}
	value := pq.Operand.Number
	if pq.Operand.IsToughness() {
		value = "cards.toughness"
	}
	return fragment{where: fmt.Sprintf("cards.power %s %s", op, value)}
}

func compileLike(column, text string) fragment {
	if text == "" {
		return fragment{}
	}
	return fragment{
		where:  fmt.Sprintf("%s LIKE ? %s", column, likeEscape),
		params: []any{ContainsPattern(text)},
	}
}

// compileKeywordQuery matches inside the join so each card yields at most
// its matching keyword rows, or a single NULL row when none match. The
// predicate then tests for a match per card, and negating it keeps cards
// without keywords.
func (cc *compileContext) compileKeywordQuery(kq search.KeywordQuery) fragment {
	if kq.Keyword == "" {
		return fragment{}
	}
	alias := cc.nextAlias()
	return fragment{
		where: fmt.Sprintf("%s.card_id IS NOT NULL", alias),
		joins: []string{fmt.Sprintf("LEFT JOIN %s %s ON cards.id = %s.card_id AND %s.keyword LIKE ? %s",
			KeywordTable, alias, alias, alias, likeEscape)},
		joinParams: []any{ContainsPattern(kq.Keyword)},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a LIKE pattern matching text anywhere, with the
// LIKE wildcards in text escaped by backslash.
func ContainsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
