// Package normalize turns raw extracted strings into typed sale values.
// Every function is total: malformed input yields a zero value, never an error.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips diacritics and collapses whitespace,
// so "  José  PÉREZ " becomes "jose perez".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// upperFold is Fold uppercased, used for keyword matching.
func upperFold(s string) string {
	return strings.ToUpper(Fold(s))
}
