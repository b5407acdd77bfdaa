package querysql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/cardsearch/internal/color"
	"github.com/roach88/cardsearch/internal/search"
)

// ColorColumns names the boolean column holding each base color.
type ColorColumns interface {
	Column(c color.Color) string
}

// columnPrefix names columns by appending the color letter to a prefix.
type columnPrefix string

func (p columnPrefix) Column(c color.Color) string { return string(p) + c.Letter() }

var (
	// IdentityColumns are the color identity columns cards.W through cards.G.
	IdentityColumns ColorColumns = columnPrefix("cards.")
	// PrintedColorColumns are the printed color columns cards.color_W
	// through cards.color_G.
	PrintedColorColumns ColorColumns = columnPrefix("cards.color_")
)

// compileColor renders a color comparison over the given columns. T is the
// operand's colors and O the remaining ones; columns are listed in
// alphabetical order of their letters.
func compileColor(op search.Operator, operand color.Operand, cols ColorColumns) (string, error) {
	switch operand {
	case color.Colorless:
		return compileColorless(op, cols)
	case color.Multicolor:
		return compileMulticolor(op, cols)
	}

	t := columns(cols, operand.AsSet())
	o := columns(cols, operand.Others())

	switch op {
	case search.Equal:
		parts := []string{allTrue(t)}
		if len(o) > 0 {
			parts = append(parts, "NOT ("+anyTrue(o)+")")
		}
		return strings.Join(parts, " AND "), nil
	case search.NotEqual:
		return "NOT (" + allTrue(t) + ")", nil
	case search.Colon, search.GreaterThanOrEqual:
		return allTrue(t), nil
	case search.LessThanOrEqual:
		parts := []string{anyTrue(t)}
		if len(o) > 0 {
			parts = append(parts, allFalse(o))
		}
		return conjoin(parts), nil
	case search.LessThan:
		parts := []string{anyTrue(t), "NOT (" + allTrue(t) + ")"}
		if len(o) > 0 {
			parts = append(parts, allFalse(o))
		}
		return conjoin(parts), nil
	case search.GreaterThan:
		if len(o) == 0 {
			return "FALSE", nil
		}
		return conjoin([]string{allTrue(t), anyTrue(o)}), nil
	}
	return "", fmt.Errorf("unsupported color operator %s", op)
}

func compileColorless(op search.Operator, cols ColorColumns) (string, error) {
	all := columns(cols, color.All)
	switch op {
	case search.Equal, search.Colon, search.GreaterThanOrEqual, search.LessThanOrEqual:
		return allFalse(all), nil
	case search.NotEqual, search.GreaterThan:
		return anyTrue(all), nil
	case search.LessThan:
		return "FALSE", nil
	}
	return "", fmt.Errorf("unsupported color operator %s", op)
}

func compileMulticolor(op search.Operator, cols ColorColumns) (string, error) {
	count := "(" + strings.Join(columns(cols, color.All), " + ") + ")"
	switch op {
	case search.Equal, search.Colon, search.GreaterThanOrEqual, search.LessThanOrEqual:
		return count + " >= 2", nil
	case search.GreaterThan:
		return count + " >= 3", nil
	case search.LessThan, search.NotEqual:
		return count + " < 2", nil
	}
	return "", fmt.Errorf("unsupported color operator %s", op)
}

// columns returns the column names for colors, sorted by letter.
func columns(cols ColorColumns, colors []color.Color) []string {
	sorted := append([]color.Color(nil), colors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Letter() < sorted[j].Letter() })

	out := make([]string, len(sorted))
	for i, c := range sorted {
		out[i] = cols.Column(c)
	}
	return out
}

func allTrue(cols []string) string  { return compare(cols, "TRUE", " AND ") }
func anyTrue(cols []string) string  { return compare(cols, "TRUE", " OR ") }
func allFalse(cols []string) string { return compare(cols, "FALSE", " AND ") }

func compare(cols []string, value, sep string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + "=" + value
	}
	return strings.Join(parts, sep)
}

// conjoin ANDs parts, parenthesizing each when there is more than one.
func conjoin(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	wrapped := make([]string, len(parts))
	for i, p := range parts {
		wrapped[i] = "(" + p + ")"
	}
	return strings.Join(wrapped, " AND ")
}
