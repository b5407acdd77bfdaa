package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/color"
	"github.com/roach88/cardsearch/internal/parser"
	"github.com/roach88/cardsearch/internal/querysql"
)

// seedCatalog stores six cards whose names sort as
// a5 < a6 < a1 < a4 < a2 < a3.
func seedCatalog(t *testing.T, s *Store) {
	t.Helper()
	wub := []color.Color{color.W, color.U, color.B}
	cards := []Card{
		{ID: "a1", Name: "Lightning Bolt", TypeLine: "Instant",
			OracleText: "Lightning Bolt deals 3 damage to any target.",
			Colors:     []color.Color{color.R}, Identity: []color.Color{color.R}},
		{ID: "a2", Name: "Serra Angel", TypeLine: "Creature — Angel", Power: "4", Toughness: "4",
			Colors: []color.Color{color.W}, Identity: []color.Color{color.W},
			Keywords: []string{"Flying", "Vigilance"}},
		{ID: "a3", Name: "Sphinx of the Steel Wind", TypeLine: "Artifact Creature — Sphinx",
			Power: "6", Toughness: "6", Colors: wub, Identity: wub,
			Keywords: []string{"Flying", "First Strike", "Vigilance", "Lifelink"}},
		{ID: "a4", Name: "Ornithopter", TypeLine: "Artifact Creature — Thopter",
			Power: "0", Toughness: "2", Keywords: []string{"Flying"}},
		{ID: "a5", Name: "Colossal Dreadmaw", TypeLine: "Creature — Dinosaur", Power: "6", Toughness: "6",
			Colors: []color.Color{color.G}, Identity: []color.Color{color.G},
			Keywords: []string{"Trample"}},
		{ID: "a6", Name: "Esper Charm", TypeLine: "Instant",
			OracleText: "Choose one — Destroy target enchantment; or draw two cards; or target player discards two cards.",
			Colors:     wub, Identity: wub},
	}
	require.NoError(t, s.InsertCards(context.Background(), cards))
}

func fetch(t *testing.T, s *Store, text string) []string {
	t.Helper()
	q, err := querysql.Compile(parser.MustParse(text))
	require.NoError(t, err)
	ids, err := s.FetchIDs(context.Background(), q, 0, 100)
	require.NoError(t, err)
	return ids
}

func TestFetchIDs_Searches(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"a5", "a6", "a1", "a4", "a2", "a3"}},
		{"t:", []string{"a5", "a6", "a1", "a4", "a2", "a3"}},
		{"id=esper", []string{"a6", "a3"}},
		{"id<=esper", []string{"a6", "a2", "a3"}},
		{"id<esper", []string{"a2"}},
		{"id>w", []string{"a6", "a3"}},
		{"c:m", []string{"a6", "a3"}},
		{"c=c", []string{"a4"}},
		{"c!=c", []string{"a5", "a6", "a1", "a2", "a3"}},
		{"c=red OR c=green", []string{"a5", "a1"}},
		{"kw:flying", []string{"a4", "a2", "a3"}},
		{"kw:flying kw:vigilance", []string{"a2", "a3"}},
		{"kw:firststrike", []string{"a3"}},
		{"pow>=toughness", []string{"a5", "a2", "a3"}},
		{"pow>4", []string{"a5", "a3"}},
		{"pow<1", []string{"a4"}},
		{"t:creature -t:artifact", []string{"a5", "a2"}},
		{`o:"3 damage"`, []string{"a1"}},
		{"bolt", []string{"a1"}},
		{"-(c=red OR c=green) t:instant", []string{"a6"}},
		{"nothing matches this", []string{}},
		{"-kw:flying", []string{"a5", "a6", "a1"}},
		{"-kw:flying -kw:trample", []string{"a6", "a1"}},
		{"kw:flying -kw:lifelink", []string{"a4", "a2"}},
		{"kw:flying OR c=red", []string{"a1", "a4", "a2", "a3"}},
		{"o:damage OR kw:trample", []string{"a5", "a1"}},
		{"t: OR c=red", []string{"a5", "a6", "a1", "a4", "a2", "a3"}},
		{"-t:", []string{}},
		{`-kw:""`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, fetch(t, s, tt.search))
		})
	}
}

func TestFetchIDs_Pagination(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	var pages [][]string
	for cursor := 0; cursor <= 6; cursor += 2 {
		ids, err := s.FetchIDs(ctx, querysql.SQL{}, cursor, 2)
		require.NoError(t, err)
		pages = append(pages, ids)
	}

	assert.Equal(t, [][]string{
		{"a5", "a6"},
		{"a1", "a4"},
		{"a2", "a3"},
		{},
	}, pages)
}

func TestFetchIDs_DistinctAcrossKeywordRows(t *testing.T) {
	s := createTestStore(t)
	seedCatalog(t, s)

	// Sphinx has four keyword rows; each matches the pattern "i".
	assert.Equal(t, []string{"a4", "a2", "a3"}, fetch(t, s, "kw:i"))
}

func TestFetchIDs_LikeWildcardsAreLiteral(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertCards(ctx, []Card{
		{ID: "p1", Name: "50% Off"},
		{ID: "p2", Name: "500 Off"},
		{ID: "u1", Name: "a_c"},
		{ID: "u2", Name: "abc"},
	}))

	assert.Equal(t, []string{"p1"}, fetch(t, s, `"50%"`))
	assert.Equal(t, []string{"u1"}, fetch(t, s, "a_c"))
}

func TestFetchIDs_InvalidBounds(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.FetchIDs(ctx, querysql.SQL{}, -1, 10)
	assert.Error(t, err)

	_, err = s.FetchIDs(ctx, querysql.SQL{}, 0, 0)
	assert.Error(t, err)
}

func TestFetchIDs_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchIDs(ctx, querysql.SQL{}, 0, 10)
	assert.Error(t, err)
}

func TestFetchIDsQuery(t *testing.T) {
	empty := FetchIDsQuery(querysql.SQL{})
	assert.Equal(t,
		"SELECT DISTINCT cards.id FROM cards   ORDER BY cards.name COLLATE BINARY, cards.id COLLATE BINARY LIMIT :limit OFFSET :cursor",
		empty)

	q, err := querysql.Compile(parser.MustParse("kw:flying bolt"))
	require.NoError(t, err)
	text := FetchIDsQuery(q)

	assert.True(t, strings.HasPrefix(text,
		`SELECT DISTINCT cards.id FROM cards LEFT JOIN card_keywords t_0 ON cards.id = t_0.card_id AND t_0.keyword LIKE ? ESCAPE '\' WHERE `))
	assert.Equal(t, 2, strings.Count(text, "?"))
	assert.NotContains(t, text, "flying")
	assert.NotContains(t, text, "{")
}
