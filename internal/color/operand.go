package color

import (
	"strings"
)

// Operand is the right-hand side of a color or identity comparison.
//
// The low five bits hold the base colors, one bit per Color. Colorless and
// Multicolor occupy their own bits and never combine with base colors.
type Operand uint8

// Mono colors and pseudo operands.
const (
	White Operand = 1 << iota
	Blue
	Black
	Red
	Green
	Colorless
	Multicolor
)

// Guilds.
const (
	Azorius  Operand = White | Blue
	Dimir    Operand = Blue | Black
	Rakdos   Operand = Black | Red
	Gruul    Operand = Red | Green
	Selesnya Operand = White | Green
	Orzhov   Operand = White | Black
	Izzet    Operand = Blue | Red
	Golgari  Operand = Black | Green
	Boros    Operand = White | Red
	Simic    Operand = Blue | Green
)

// Shards and wedges.
const (
	Bant   Operand = White | Blue | Green
	Esper  Operand = White | Blue | Black
	Grixis Operand = Blue | Black | Red
	Jund   Operand = Black | Red | Green
	Naya   Operand = White | Red | Green
	Abzan  Operand = White | Black | Green
	Jeskai Operand = White | Blue | Red
	Sultai Operand = Blue | Black | Green
	Mardu  Operand = White | Black | Red
	Temur  Operand = Blue | Red | Green
)

// Four and five colors.
const (
	Chaos      Operand = Blue | Black | Red | Green
	Aggression Operand = White | Black | Red | Green
	Altruism   Operand = White | Blue | Red | Green
	Growth     Operand = White | Blue | Black | Green
	Artifice   Operand = White | Blue | Black | Red
	WUBRG      Operand = White | Blue | Black | Red | Green
)

// names holds the canonical name of every valid operand.
var names = map[Operand]string{
	White: "white", Blue: "blue", Black: "black", Red: "red", Green: "green",
	Colorless: "colorless", Multicolor: "multicolor",

	Azorius: "azorius", Dimir: "dimir", Rakdos: "rakdos", Gruul: "gruul", Selesnya: "selesnya",
	Orzhov: "orzhov", Izzet: "izzet", Golgari: "golgari", Boros: "boros", Simic: "simic",

	Bant: "bant", Esper: "esper", Grixis: "grixis", Jund: "jund", Naya: "naya",
	Abzan: "abzan", Jeskai: "jeskai", Sultai: "sultai", Mardu: "mardu", Temur: "temur",

	Chaos: "chaos", Aggression: "aggression", Altruism: "altruism", Growth: "growth",
	Artifice: "artifice", WUBRG: "wubrg",
}

// aliases maps every accepted spelling, beyond the canonical names and the
// raw letter strings, to its operand.
var aliases = map[string]Operand{
	"c": Colorless,
	"m": Multicolor,

	// Strixhaven colleges.
	"lorehold":    Boros,
	"prismari":    Izzet,
	"quandrix":    Simic,
	"silverquill": Orzhov,
	"witherbloom": Golgari,
}

func init() {
	for op, name := range names {
		aliases[name] = op
	}
}

// Collapse maps a list of base colors, in any order and with repeats, to
// the operand naming that combination.
func Collapse(colors []Color) (Operand, error) {
	if len(colors) == 0 {
		return 0, &InvalidCombinationError{}
	}
	var op Operand
	for _, c := range colors {
		if !c.valid() {
			return 0, &InvalidCombinationError{Colors: append([]Color(nil), colors...)}
		}
		op |= 1 << c
	}
	return op, nil
}

// ParseLetters collapses a string made only of color letters (any case,
// any order, repeats allowed). The boolean is false if s is empty or holds
// any other character.
func ParseLetters(s string) (Operand, bool) {
	if s == "" {
		return 0, false
	}
	colors := make([]Color, 0, len(s))
	for _, r := range s {
		c, ok := ParseLetter(r)
		if !ok {
			return 0, false
		}
		colors = append(colors, c)
	}
	op, err := Collapse(colors)
	if err != nil {
		return 0, false
	}
	return op, true
}

// Lookup resolves a color word: a canonical name, an alias, or a string of
// color letters. Matching is case-insensitive.
func Lookup(word string) (Operand, bool) {
	lower := strings.ToLower(word)
	if op, ok := aliases[lower]; ok {
		return op, true
	}
	return ParseLetters(lower)
}

// Valid reports whether o is one of the 33 named operands.
func (o Operand) Valid() bool {
	_, ok := names[o]
	return ok
}

// IsPseudo reports whether o is Colorless or Multicolor.
func (o Operand) IsPseudo() bool {
	return o == Colorless || o == Multicolor
}

// Contains reports whether the base color c is part of o.
func (o Operand) Contains(c Color) bool {
	return !o.IsPseudo() && o&(1<<c) != 0
}

// AsSet returns the base colors of o in canonical order. Pseudo operands
// have no base colors and return nil.
func (o Operand) AsSet() []Color {
	if o.IsPseudo() {
		return nil
	}
	var out []Color
	for _, c := range All {
		if o.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Others returns the base colors not in o, in canonical order.
func (o Operand) Others() []Color {
	var out []Color
	for _, c := range All {
		if !o.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Display renders o as its letters in WUBRG order, or C / M for the pseudo
// operands.
func (o Operand) Display() string {
	switch o {
	case Colorless:
		return "C"
	case Multicolor:
		return "M"
	}
	var sb strings.Builder
	for _, c := range o.AsSet() {
		sb.WriteString(c.Letter())
	}
	return sb.String()
}

// Name returns the canonical lower-case name of o, or its letters when o is
// not a named operand.
func (o Operand) Name() string {
	if name, ok := names[o]; ok {
		return name
	}
	return strings.ToLower(o.Display())
}

func (o Operand) String() string { return o.Name() }

// Operands returns every valid operand, real combinations first in bit
// order, then Colorless and Multicolor.
func Operands() []Operand {
	out := make([]Operand, 0, len(names))
	for op := Operand(1); op <= WUBRG; op++ {
		out = append(out, op)
	}
	return append(out, Colorless, Multicolor)
}
