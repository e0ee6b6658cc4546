package normalize

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

var (
	mmcWord = regexp.MustCompile(`\bMMC\b`)
	mmWord  = regexp.MustCompile(`\bMM\b`)
)

// DealershipFromTomo reads the dealership from the mercantile register line
// ("TOMO ...") printed on orders. Cornellà is MMC, Terrassa is MM.
func DealershipFromTomo(tomo string) domain.Dealership {
	upper := upperFold(tomo)
	switch {
	case upper == "":
		return domain.DealershipNone
	case strings.Contains(upper, "CORNELLA") || mmcWord.MatchString(upper):
		return domain.DealershipMMC
	case strings.Contains(upper, "TERRASSA") || strings.Contains(upper, "MOTOR MUNICH") || mmWord.MatchString(upper):
		return domain.DealershipMM
	}
	return domain.DealershipNone
}

// DealershipFromSelection maps the dealership picked in the upload form.
func DealershipFromSelection(selection string) domain.Dealership {
	upper := strings.ToUpper(selection)
	switch {
	case strings.Contains(upper, "MMC"):
		return domain.DealershipMMC
	case strings.Contains(upper, "MM"):
		return domain.DealershipMM
	}
	return domain.DealershipNone
}
