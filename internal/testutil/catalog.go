package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/cardsearch/internal/fixture"
	"github.com/roach88/cardsearch/internal/store"
)

// SampleCatalog is a small YAML catalog covering every predicate kind.
// By name the cards sort as: Colossal Dreadmaw, Esper Charm, Lightning
// Bolt, Ornithopter, Serra Angel, Sphinx of the Steel Wind.
const SampleCatalog = `cards:
  - name: Lightning Bolt
    type_line: Instant
    oracle_text: Lightning Bolt deals 3 damage to any target.
    colors: R
    identity: R
  - name: Serra Angel
    type_line: Creature — Angel
    power: 4
    toughness: 4
    colors: W
    identity: W
    keywords: [Flying, Vigilance]
  - name: Sphinx of the Steel Wind
    type_line: Artifact Creature — Sphinx
    power: 6
    toughness: 6
    colors: WUB
    identity: WUB
    keywords: [Flying, First Strike, Vigilance, Lifelink]
  - name: Ornithopter
    type_line: Artifact Creature — Thopter
    power: 0
    toughness: 2
    keywords: [Flying]
  - name: Colossal Dreadmaw
    type_line: Creature — Dinosaur
    power: 6
    toughness: 6
    colors: G
    identity: G
    keywords: [Trample]
  - name: Esper Charm
    type_line: Instant
    oracle_text: Choose one — Destroy target enchantment; or draw two cards; or target player discards two cards.
    colors: esper
    identity: esper
`

// WriteFile writes content to name inside a fresh temp directory and
// returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// NewStore opens an empty store in a temp directory and closes it when the
// test ends. It returns the store and its path.
func NewStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, path
}

// SeedStore opens a store holding SampleCatalog.
func SeedStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	st, path := NewStore(t)
	catalog := WriteFile(t, "catalog.yaml", SampleCatalog)
	if _, err := fixture.Load(context.Background(), st, catalog); err != nil {
		t.Fatalf("fixture.Load() failed: %v", err)
	}
	return st, path
}

// SampleID returns the id the sample catalog assigns to a card name.
func SampleID(name string) string {
	return fixture.DeriveID(name)
}
