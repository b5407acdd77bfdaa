package store

import (
	"errors"

	"github.com/roach88/cardsearch/internal/color"
)

// ErrNotFound is returned when a card id has no row.
var ErrNotFound = errors.New("card not found")

// Card is one row of the catalog with its keywords.
type Card struct {
	ID         string
	Name       string
	TypeLine   string
	OracleText string
	// Power and Toughness hold the printed value; empty means the card has
	// none. Numeric text is stored as a number.
	Power     string
	Toughness string
	// Colors are the printed colors, Identity the color identity.
	Colors   []color.Color
	Identity []color.Color
	Keywords []string
}

// colorFlags expands colors into one flag per base color in WUBRG order.
func colorFlags(colors []color.Color) [5]bool {
	var flags [5]bool
	for _, c := range colors {
		if int(c) < len(flags) {
			flags[c] = true
		}
	}
	return flags
}

// flagColors is the inverse of colorFlags.
func flagColors(flags [5]bool) []color.Color {
	var out []color.Color
	for _, c := range color.All {
		if flags[c] {
			out = append(out, c)
		}
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
