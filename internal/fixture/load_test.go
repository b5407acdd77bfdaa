package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/color"
	"github.com/roach88/cardsearch/internal/store"
)

func TestReadFile_YAML(t *testing.T) {
	catalog, err := ReadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	require.Len(t, catalog.Cards, 3)

	angel := catalog.Cards[1]
	assert.Equal(t, "Serra Angel", angel.Name)
	assert.Equal(t, "4", angel.Power, "numeric YAML scalars decode as text")
	assert.Equal(t, []string{"Flying", "Vigilance"}, angel.Keywords)

	cards, err := catalog.StoreCards()
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, DeriveID("Lightning Bolt"), cards[0].ID)
	assert.Equal(t, []color.Color{color.R}, cards[0].Colors)
	assert.Equal(t, "5b1c4e3a-2f6d-4a8b-9c0d-1e2f3a4b5c6d", cards[1].ID, "ids are canonicalized")
	assert.Equal(t, []color.Color{color.W}, cards[1].Colors)
	assert.Empty(t, cards[2].Colors, "c is colorless")
	assert.Empty(t, cards[2].Identity)
}

func TestReadFile_CUE(t *testing.T) {
	catalog, err := ReadFile("testdata/catalog.cue")
	require.NoError(t, err)
	require.Len(t, catalog.Cards, 2)

	cards, err := catalog.StoreCards()
	require.NoError(t, err)

	wub := []color.Color{color.W, color.U, color.B}
	assert.Equal(t, "Sphinx of the Steel Wind", cards[0].Name)
	assert.Equal(t, wub, cards[0].Colors)
	assert.Equal(t, wub, cards[0].Identity)
	assert.Equal(t, "6", cards[0].Power)
	assert.Len(t, cards[0].Keywords, 4)
	assert.Equal(t, wub, cards[1].Colors)
}

func TestReadFile_UnknownFields(t *testing.T) {
	for _, path := range []string{"testdata/unknown_field.yaml", "testdata/unknown_field.cue"} {
		t.Run(path, func(t *testing.T) {
			_, err := ReadFile(path)
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Contains(t, err.Error(), "rarity")
		})
	}
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile("testdata/missing.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	_, err = ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog format")
}

func TestParseCUE_MissingName(t *testing.T) {
	_, err := ParseCUE("inline.cue", []byte(`cards: [{type_line: "Instant"}]`))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestParseCUE_SyntaxErrorHasPosition(t *testing.T) {
	_, err := ParseCUE("broken.cue", []byte("cards: [\n  {name: }\n]"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, loadErr.Pos.IsValid())
	assert.Contains(t, err.Error(), "broken.cue")
}

func TestParseYAML_Empty(t *testing.T) {
	catalog, err := ParseYAML("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, catalog.Cards)
}

func TestStoreCards_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		cards []CardSpec
		want  string
	}{
		{"no name", []CardSpec{{TypeLine: "Instant"}}, "without a name"},
		{"bad id", []CardSpec{{ID: "not-a-uuid", Name: "X"}}, "invalid id"},
		{"bad colors", []CardSpec{{Name: "X", Colors: "purple"}}, "unknown color"},
		{"multicolor identity", []CardSpec{{Name: "X", Identity: "m"}}, "specific colors"},
		{"duplicate", []CardSpec{{Name: "X"}, {Name: "X"}}, "same id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Catalog{Cards: tt.cards}).StoreCards()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDeriveID_Stable(t *testing.T) {
	assert.Equal(t, DeriveID("Lightning Bolt"), DeriveID("Lightning Bolt"))
	assert.NotEqual(t, DeriveID("Lightning Bolt"), DeriveID("Lightning Helix"))
	assert.Len(t, DeriveID("x"), 36)
}

func TestLoad_IntoStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	n, err := Load(ctx, st, "testdata/catalog.yaml", "testdata/catalog.cue")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// Reloading overwrites by id.
	_, err = Load(ctx, st, "testdata/catalog.yaml")
	require.NoError(t, err)

	count, err := st.CountCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	sphinx, err := st.GetCard(ctx, DeriveID("Sphinx of the Steel Wind"))
	require.NoError(t, err)
	assert.Equal(t, []string{"First Strike", "Flying", "Lifelink", "Vigilance"}, sphinx.Keywords)
}

func TestLoad_BadFileWritesNothing(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	_, err = Load(ctx, st, "testdata/catalog.yaml", "testdata/unknown_field.yaml")
	require.Error(t, err)

	count, err := st.CountCards(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
