package color

import (
	"errors"
	"fmt"
	"strings"
)

// Color is one of the five base colors.
type Color uint8

// Base colors in canonical WUBRG order.
const (
	W Color = iota
	U
	B
	R
	G
)

// All lists the base colors in canonical order.
var All = []Color{W, U, B, R, G}

var letters = [...]string{W: "W", U: "U", B: "B", R: "R", G: "G"}

// Letter returns the single upper-case letter for the color.
func (c Color) Letter() string {
	if int(c) < len(letters) {
		return letters[c]
	}
	return fmt.Sprintf("Color(%d)", c)
}

func (c Color) String() string { return c.Letter() }

func (c Color) valid() bool { return c <= G }

// ParseLetter maps a single color letter (any case) to its Color.
func ParseLetter(r rune) (Color, bool) {
	switch r {
	case 'w', 'W':
		return W, true
	case 'u', 'U':
		return U, true
	case 'b', 'B':
		return B, true
	case 'r', 'R':
		return R, true
	case 'g', 'G':
		return G, true
	}
	return 0, false
}

// ErrInvalidCombination is the sentinel wrapped by InvalidCombinationError.
var ErrInvalidCombination = errors.New("invalid color combination")

// InvalidCombinationError reports colors that do not form a valid operand:
// an empty list or a value outside the base alphabet.
type InvalidCombinationError struct {
	Colors []Color
}

func (e *InvalidCombinationError) Error() string {
	if len(e.Colors) == 0 {
		return "invalid color combination: no colors"
	}
	parts := make([]string, len(e.Colors))
	for i, c := range e.Colors {
		parts[i] = c.String()
	}
	return fmt.Sprintf("invalid color combination: [%s]", strings.Join(parts, " "))
}

func (e *InvalidCombinationError) Unwrap() error { return ErrInvalidCombination }

// IsInvalidCombination reports whether err is, or wraps, an
// InvalidCombinationError.
func IsInvalidCombination(err error) bool {
	var ice *InvalidCombinationError
	return errors.As(err, &ice)
}
