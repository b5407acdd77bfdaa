// Package color implements the color algebra used by color and color
// identity searches.
//
// The five base colors are W (white), U (blue), B (black), R (red) and
// G (green), always rendered in that order (WUBRG). An Operand is a bit set
// over the base colors, so every one of the 31 non-empty combinations has
// exactly one representation regardless of the order or case the letters
// were typed in. Two pseudo operands, Colorless and Multicolor, carry no
// base letters and are compiled as special predicates.
//
// Every combination has a name: the mono colors, the ten guilds, the five
// shards, the five wedges, the five four-color nicknames and WUBRG. The
// Strixhaven college names are accepted as aliases for their guild pairs.
package color
