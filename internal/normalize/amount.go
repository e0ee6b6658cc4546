package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmountChars = regexp.MustCompile(`[^\d.,-]`)

// Amount parses a European or plain formatted amount.
//
// With both '.' and ',' present, '.' groups thousands and ',' is the decimal
// point ("1.234,56"). A single ',' is the decimal point; repeated ',' or '.'
// are thousands separators. Anything unparseable yields an invalid NullDecimal.
func Amount(s string) decimal.NullDecimal {
	s = nonAmountChars.ReplaceAllString(s, "")
	negative := strings.HasPrefix(s, "-")
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return decimal.NullDecimal{}
	}

	dots, commas := strings.Count(s, "."), strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if negative {
		s = "-" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Mileage parses an odometer reading, ignoring separators. Empty input yields nil.
func Mileage(s string) *int {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 || digits.Len() > 9 {
		return nil
	}
	n := 0
	for _, r := range digits.String() {
		n = n*10 + int(r-'0')
	}
	return &n
}
