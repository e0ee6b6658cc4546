package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale is paid. Values are persisted as-is.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Contado"
	PaymentFinanced PaymentMethod = "Financiado"
	PaymentExternal PaymentMethod = "Externa"
)

func (p PaymentMethod) String() string { return string(p) }

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentFinanced, PaymentExternal:
		return true
	}
	return false
}

// DocumentType classifies a Spanish identity document.
type DocumentType string

const (
	DocumentUnknown DocumentType = ""
	DocumentDNI     DocumentType = "DNI"
	DocumentNIE     DocumentType = "NIE"
	DocumentNIF     DocumentType = "NIF"
	// DocumentOther is stored for non-empty ids that match no known shape.
	DocumentOther DocumentType = "DNI/NIF"
)

func (d DocumentType) String() string { return string(d) }

// Dealership is the selling dealership code.
type Dealership string

const (
	DealershipNone Dealership = ""
	DealershipMM   Dealership = "MM"
	DealershipMMC  Dealership = "MMC"
)

func (d Dealership) String() string { return string(d) }

func (d Dealership) IsValid() bool {
	switch d {
	case DealershipMM, DealershipMMC:
		return true
	}
	return false
}

// VehicleType distinguishes cars from motorbikes.
type VehicleType string

const (
	VehicleCar  VehicleType = "Coche"
	VehicleMoto VehicleType = "Moto"
)

// StatusPending is the initial value of the workflow status columns of a new sale.
const StatusPending = "pendiente"

// Sale is a normalized vehicle sale record (sales_vehicles).
type Sale struct {
	ID               uuid.UUID
	LicensePlate     string
	Model            string
	Brand            string
	VehicleType      VehicleType
	VIN              string
	Color            string
	Mileage          *int
	SaleDate         time.Time
	OrderDate        *time.Time
	RegistrationDate *time.Time
	OrderNumber      string

	Advisor     string
	AdvisorName string
	AdvisorID   *uuid.UUID

	PaymentMethod PaymentMethod
	PaymentStatus string
	Bank          string
	Price         decimal.NullDecimal
	Discount      decimal.NullDecimal

	DocumentType   DocumentType
	DocumentID     string
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	ClientAddress  string
	ClientCity     string
	ClientProvince string
	ClientZIP      string

	PortalOrigin    string
	Dealership      Dealership
	CYPStatus       string
	Photo360Status  string
	Validated       bool
	IsResale        bool
	PDFExtractionID *uuid.UUID

	// IsDuplicate is reported to callers and never persisted.
	IsDuplicate bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SameDocument reports whether two document ids refer to the same client.
// Comparison is trimmed and case-insensitive.
func SameDocument(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NormalizePlate uppercases a plate and removes separators.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	return strings.NewReplacer("-", "", " ", "").Replace(plate)
}

// SaleSummary aggregates sales over a date range.
type SaleSummary struct {
	From      time.Time
	To        time.Time
	Total     int
	Resales   int
	Revenue   decimal.Decimal
	ByAdvisor []CountBucket
	ByPayment []CountBucket
	ByMonth   []CountBucket
}

// CountBucket is one group of a summary.
type CountBucket struct {
	Key     string
	Count   int
	Revenue decimal.Decimal
}
