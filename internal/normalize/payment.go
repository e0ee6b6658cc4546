package normalize

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

type paymentRule struct {
	method domain.PaymentMethod
	match  func(upper string) bool
}

// paymentRules are evaluated in order; the first match wins.
var paymentRules = []paymentRule{
	{domain.PaymentFinanced, containsAny(
		"BMW BANK", "BMW FINANCIAL", "BMW FS", "BMWBANK",
		"SELECT", "LINEAL", "BALLOON", "TRIPLE 0", "TRIPLE0",
	)},
	{domain.PaymentCash, containsAny("CONTADO", "EFECTIVO", "CASH", "PAGO UNICO")},
	{domain.PaymentExternal, regexp.MustCompile(
		`\b(?:BBVA|CAIXABANK|CAIXA|SANTANDER|SABADELL|BANKINTER|ING|UNICAJA|KUTXABANK|ABANCA|OPENBANK)\b`,
	).MatchString},
	{domain.PaymentFinanced, containsAny(
		"FINANCIAD", "FINANCIACION", "CREDITO", "PRESTAMO", "CUOTAS", "MENSUALIDADES",
	)},
}

// PaymentMethod classifies the free-text bank/financing field.
// Empty or unrecognised text is a cash sale.
func PaymentMethod(bank string) domain.PaymentMethod {
	upper := upperFold(bank)
	if upper == "" {
		return domain.PaymentCash
	}
	for _, rule := range paymentRules {
		if rule.match(upper) {
			return rule.method
		}
	}
	return domain.PaymentCash
}

func containsAny(needles ...string) func(string) bool {
	return func(s string) bool {
		for _, n := range needles {
			if strings.Contains(s, n) {
				return true
			}
		}
		return false
	}
}
