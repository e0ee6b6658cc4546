package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

const (
	BrandBMW      = "BMW"
	BrandMotorrad = "BMW Motorrad"
	BrandMINI     = "MINI"
)

var (
	motorradModel = regexp.MustCompile(`\b(?:MOTORRAD|R\s?1[23]\d0|S\s?1000|M\s?1000|F\s?[789][05]0|C\s?400|CE\s?0[24]|K\s?1600|G\s?310)\b`)
	miniWord      = regexp.MustCompile(`\bMINI\b`)
	bmwWord       = regexp.MustCompile(`\bBMW\b`)
	brandPrefix   = regexp.MustCompile(`(?i)^(?:BMW\s+MOTORRAD|BMW|MINI)\s+`)
	powerSuffix   = regexp.MustCompile(`(?i)\s+\d{2,3}\s*kW\b.*$|\s*\(\s*\d{2,3}\s*CV\s*\).*$`)
)

// Brand detects the make mentioned in s, or "" when none is found.
func Brand(s string) string {
	upper := upperFold(s)
	switch {
	case motorradModel.MatchString(upper):
		return BrandMotorrad
	case miniWord.MatchString(upper):
		return BrandMINI
	case bmwWord.MatchString(upper):
		return BrandBMW
	}
	return ""
}

// CleanModel strips the make prefix and the trailing power rating,
// so "BMW X1 sDrive18d 110 kW (150 CV)" becomes "X1 sDrive18d".
func CleanModel(model string) string {
	model = strings.TrimSpace(model)
	model = brandPrefix.ReplaceAllString(model, "")
	model = powerSuffix.ReplaceAllString(model, "")
	return strings.TrimSpace(model)
}

// VehicleType returns Moto for motorbike brands or models, Coche otherwise.
func VehicleType(brand, model string) domain.VehicleType {
	if brand == BrandMotorrad || strings.Contains(upperFold(model), "MOTO") {
		return domain.VehicleMoto
	}
	return domain.VehicleCar
}

// Capitalize uppercases the first letter and lowercases the rest.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
