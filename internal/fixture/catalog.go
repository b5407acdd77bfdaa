package fixture

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/cardsearch/internal/color"
	"github.com/roach88/cardsearch/internal/store"
)

// Catalog is the decoded form of a catalog file.
type Catalog struct {
	Cards []CardSpec `yaml:"cards" json:"cards"`
}

// CardSpec is a card as written in a catalog file.
type CardSpec struct {
	ID         string   `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string   `yaml:"name" json:"name"`
	TypeLine   string   `yaml:"type_line,omitempty" json:"type_line,omitempty"`
	OracleText string   `yaml:"oracle_text,omitempty" json:"oracle_text,omitempty"`
	Power      string   `yaml:"power,omitempty" json:"power,omitempty"`
	Toughness  string   `yaml:"toughness,omitempty" json:"toughness,omitempty"`
	Colors     string   `yaml:"colors,omitempty" json:"colors,omitempty"`
	Identity   string   `yaml:"identity,omitempty" json:"identity,omitempty"`
	Keywords   []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// idNamespace scopes name-derived card ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/cardsearch/cards"))

// DeriveID returns the stable id given to a card that has none.
func DeriveID(name string) string {
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// StoreCards converts the catalog to store rows. It rejects invalid ids,
// unknown colors and duplicate ids.
func (c *Catalog) StoreCards() ([]store.Card, error) {
	seen := make(map[string]string, len(c.Cards))
	out := make([]store.Card, 0, len(c.Cards))
	for i, spec := range c.Cards {
		card, err := spec.storeCard()
		if err != nil {
			return nil, fmt.Errorf("cards[%d]: %w", i, err)
		}
		if prev, dup := seen[card.ID]; dup {
			return nil, fmt.Errorf("cards[%d]: %q has the same id as %q", i, card.Name, prev)
		}
		seen[card.ID] = card.Name
		out = append(out, card)
	}
	return out, nil
}

func (s CardSpec) storeCard() (store.Card, error) {
	if s.Name == "" {
		return store.Card{}, fmt.Errorf("card without a name")
	}

	id := DeriveID(s.Name)
	if s.ID != "" {
		parsed, err := uuid.Parse(s.ID)
		if err != nil {
			return store.Card{}, fmt.Errorf("%s: invalid id %q: %w", s.Name, s.ID, err)
		}
		id = parsed.String()
	}

	colors, err := parseColors(s.Colors)
	if err != nil {
		return store.Card{}, fmt.Errorf("%s: colors: %w", s.Name, err)
	}
	identity, err := parseColors(s.Identity)
	if err != nil {
		return store.Card{}, fmt.Errorf("%s: identity: %w", s.Name, err)
	}

	return store.Card{
		ID:         id,
		Name:       s.Name,
		TypeLine:   s.TypeLine,
		OracleText: s.OracleText,
		Power:      s.Power,
		Toughness:  s.Toughness,
		Colors:     colors,
		Identity:   identity,
		Keywords:   s.Keywords,
	}, nil
}

// parseColors reads a color word. Empty text and colorless yield no colors.
func parseColors(text string) ([]color.Color, error) {
	if text == "" {
		return nil, nil
	}
	op, ok := color.Lookup(text)
	if !ok {
		return nil, fmt.Errorf("unknown color %q", text)
	}
	if op == color.Multicolor {
		return nil, fmt.Errorf("%q does not name specific colors", text)
	}
	return op.AsSet(), nil
}
