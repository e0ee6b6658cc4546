package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/cvo-backend/internal/advisor"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/extract"
	"github.com/heartmarshall/cvo-backend/internal/normalize"
)

// saleFromFields builds the normalized sale for an extraction. The dealership
// printed in the TOMO line wins over fallback.
func saleFromFields(f extract.Fields, adv advisor.Resolution, fallback domain.Dealership) *domain.Sale {
	brand := f.Get(extract.Brand)
	if brand == "" {
		brand = normalize.Brand(f.Get(extract.Model))
	}
	model := normalize.CleanModel(f.Get(extract.Model))

	dealership := normalize.DealershipFromTomo(f.Get(extract.Tomo))
	if dealership == domain.DealershipNone {
		dealership = fallback
	}

	documentID := normalize.DocumentID(f.Get(extract.DocumentID))

	return &domain.Sale{
		LicensePlate:     domain.NormalizePlate(f.Get(extract.Plate)),
		Model:            model,
		Brand:            brand,
		VehicleType:      normalize.VehicleType(brand, model),
		VIN:              strings.ToUpper(strings.TrimSpace(f.Get(extract.VIN))),
		Color:            f.Get(extract.Color),
		Mileage:          normalize.Mileage(f.Get(extract.Kilometers)),
		OrderDate:        datePtr(f.Get(extract.OrderDate)),
		RegistrationDate: datePtr(f.Get(extract.FirstRegistration)),
		OrderNumber:      f.Get(extract.OrderNumber),

		Advisor:     adv.Alias,
		AdvisorName: adv.FullName,
		AdvisorID:   adv.ID,

		PaymentMethod: normalize.PaymentMethod(f.Get(extract.Bank)),
		PaymentStatus: domain.StatusPending,
		Bank:          f.Get(extract.Bank),
		Price:         normalize.Amount(f.Get(extract.Total)),
		Discount:      normalize.Amount(f.Get(extract.Discount)),

		DocumentType:   normalize.DocumentType(documentID),
		DocumentID:     documentID,
		ClientName:     f.Get(extract.ClientName),
		ClientEmail:    strings.ToLower(f.Get(extract.Email)),
		ClientPhone:    f.Get(extract.Phone),
		ClientAddress:  f.Get(extract.Address),
		ClientCity:     f.Get(extract.City),
		ClientProvince: f.Get(extract.Province),
		ClientZIP:      f.Get(extract.PostalCode),

		PortalOrigin:   f.Get(extract.PortalOrigin),
		Dealership:     dealership,
		CYPStatus:      domain.StatusPending,
		Photo360Status: domain.StatusPending,
	}
}

// extractionFromFields builds the audit row for an extraction attempt.
func extractionFromFields(f extract.Fields, rawText string, source domain.ExtractionSource) *domain.Extraction {
	status := extract.Status(f)

	var errs []string
	if status != domain.ExtractionSuccess {
		for _, label := range []string{extract.Plate, extract.DocumentID, extract.ClientName} {
			if f.Get(label) == "" {
				errs = append(errs, "missing "+label)
			}
		}
	}

	for _, d := range unparsedDates(f) {
		errs = append(errs, d.String())
	}

	return &domain.Extraction{
		Source:      source,
		Fields:      f,
		RawText:     rawText,
		OrderNumber: f.Get(extract.OrderNumber),
		Plate:       domain.NormalizePlate(f.Get(extract.Plate)),
		ClientName:  f.Get(extract.ClientName),
		DocumentID:  normalize.DocumentID(f.Get(extract.DocumentID)),
		Total:       normalize.Amount(f.Get(extract.Total)),
		Discount:    normalize.Amount(f.Get(extract.Discount)),
		Status:      status,
		Errors:      errs,
	}
}

var dateLabels = []string{extract.OrderDate, extract.FirstRegistration}

type unparsedDate struct {
	label string
	raw   string
}

func (d unparsedDate) String() string { return "unparsed " + d.label + ": " + d.raw }

// unparsedDates lists date fields whose value the normalizer rejects.
// The sale is still stored with those dates left empty.
func unparsedDates(f extract.Fields) []unparsedDate {
	var out []unparsedDate
	for _, label := range dateLabels {
		raw := f.Get(label)
		if raw == "" {
			continue
		}
		if _, ok := normalize.Date(raw); !ok {
			out = append(out, unparsedDate{label: label, raw: raw})
		}
	}
	return out
}

func (s *Service) logUnparsedDates(ctx context.Context, f extract.Fields) {
	for _, d := range unparsedDates(f) {
		s.log.WarnContext(ctx, "date not recognized",
			slog.String("field", d.label),
			slog.String("value", d.raw),
		)
	}
}
