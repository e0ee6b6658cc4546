// Package sale implements the sales_vehicles repository using PostgreSQL.
package sale

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/domain"
)

const table = "sales_vehicles"

var columns = []string{
	"id", "license_plate", "model", "brand", "vehicle_type", "vin", "color", "mileage",
	"sale_date", "order_date", "registration_date", "order_number",
	"advisor", "advisor_name", "advisor_id",
	"payment_method", "payment_status", "bank", "price", "discount",
	"document_type", "document_id", "client_name", "client_email", "client_phone",
	"client_address", "client_city", "client_province", "client_postal_code",
	"portal_origin", "dealership_code", "cyp_status", "photo_360_status",
	"validated", "is_resale", "pdf_extraction_id", "created_at", "updated_at",
}

// Repo provides sale persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sale repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// LockPlate takes a transaction-scoped advisory lock on plate. Concurrent
// ingests of the same plate wait here until the holder commits. It must run
// inside TxManager.RunInTx.
func (r *Repo) LockPlate(ctx context.Context, plate string) error {
	if !postgres.InTx(ctx) {
		return fmt.Errorf("lock plate %s: no transaction in context", plate)
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, plate); err != nil {
		return postgres.MapError(err, "sale", plate)
	}
	return nil
}

// LatestByPlate returns the most recently created sale for plate.
// It returns domain.ErrNotFound when the plate was never sold.
func (r *Repo) LatestByPlate(ctx context.Context, plate string) (*domain.Sale, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"license_plate": plate}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row saleRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "sale", plate)
	}

	s := row.toDomain()
	return &s, nil
}

// GetByID returns a sale by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row saleRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "sale", id.String())
	}

	s := row.toDomain()
	return &s, nil
}

// Insert stores a new sale and returns it with the generated id and timestamps.
func (r *Repo) Insert(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	values := fromDomain(s)

	query, args, err := postgres.Builder().
		Insert(table).
		SetMap(values).
		Suffix("RETURNING id, sale_date, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	out := *s
	err = postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, query, args...).
		Scan(&out.ID, &out.SaleDate, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "sale", s.LicensePlate)
	}
	return &out, nil
}

// Update overwrites the document-derived columns of an existing sale.
// Workflow columns (statuses, validation) and sale_date are left untouched.
func (r *Repo) Update(ctx context.Context, s *domain.Sale) error {
	values := fromDomain(s)
	for _, workflow := range []string{"sale_date", "payment_status", "cyp_status", "photo_360_status", "validated", "is_resale"} {
		delete(values, workflow)
	}

	query, args, err := postgres.Builder().
		Update(table).
		SetMap(values).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "sale", s.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

// fromDomain returns the writable columns of s. A zero SaleDate lets the
// column default apply.
func fromDomain(s *domain.Sale) map[string]any {
	values := map[string]any{
		"license_plate":      s.LicensePlate,
		"model":              s.Model,
		"brand":              s.Brand,
		"vehicle_type":       string(s.VehicleType),
		"vin":                s.VIN,
		"color":              s.Color,
		"mileage":            s.Mileage,
		"order_date":         s.OrderDate,
		"registration_date":  s.RegistrationDate,
		"order_number":       s.OrderNumber,
		"advisor":            s.Advisor,
		"advisor_name":       s.AdvisorName,
		"advisor_id":         s.AdvisorID,
		"payment_method":     string(s.PaymentMethod),
		"payment_status":     s.PaymentStatus,
		"bank":               s.Bank,
		"price":              s.Price,
		"discount":           s.Discount,
		"document_type":      string(s.DocumentType),
		"document_id":        s.DocumentID,
		"client_name":        s.ClientName,
		"client_email":       s.ClientEmail,
		"client_phone":       s.ClientPhone,
		"client_address":     s.ClientAddress,
		"client_city":        s.ClientCity,
		"client_province":    s.ClientProvince,
		"client_postal_code": s.ClientZIP,
		"portal_origin":      s.PortalOrigin,
		"dealership_code":    string(s.Dealership),
		"cyp_status":         s.CYPStatus,
		"photo_360_status":   s.Photo360Status,
		"validated":          s.Validated,
		"is_resale":          s.IsResale,
		"pdf_extraction_id":  s.PDFExtractionID,
	}
	if !s.SaleDate.IsZero() {
		values["sale_date"] = s.SaleDate
	}
	return values
}

type saleRow struct {
	ID               uuid.UUID           `db:"id"`
	LicensePlate     string              `db:"license_plate"`
	Model            string              `db:"model"`
	Brand            string              `db:"brand"`
	VehicleType      string              `db:"vehicle_type"`
	VIN              string              `db:"vin"`
	Color            string              `db:"color"`
	Mileage          *int                `db:"mileage"`
	SaleDate         time.Time           `db:"sale_date"`
	OrderDate        *time.Time          `db:"order_date"`
	RegistrationDate *time.Time          `db:"registration_date"`
	OrderNumber      string              `db:"order_number"`
	Advisor          string              `db:"advisor"`
	AdvisorName      string              `db:"advisor_name"`
	AdvisorID        *uuid.UUID          `db:"advisor_id"`
	PaymentMethod    string              `db:"payment_method"`
	PaymentStatus    string              `db:"payment_status"`
	Bank             string              `db:"bank"`
	Price            decimal.NullDecimal `db:"price"`
	Discount         decimal.NullDecimal `db:"discount"`
	DocumentType     string              `db:"document_type"`
	DocumentID       string              `db:"document_id"`
	ClientName       string              `db:"client_name"`
	ClientEmail      string              `db:"client_email"`
	ClientPhone      string              `db:"client_phone"`
	ClientAddress    string              `db:"client_address"`
	ClientCity       string              `db:"client_city"`
	ClientProvince   string              `db:"client_province"`
	ClientPostalCode string              `db:"client_postal_code"`
	PortalOrigin     string              `db:"portal_origin"`
	DealershipCode   string              `db:"dealership_code"`
	CYPStatus        string              `db:"cyp_status"`
	Photo360Status   string              `db:"photo_360_status"`
	Validated        bool                `db:"validated"`
	IsResale         bool                `db:"is_resale"`
	PDFExtractionID  *uuid.UUID          `db:"pdf_extraction_id"`
	CreatedAt        time.Time           `db:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at"`
}

func (r saleRow) toDomain() domain.Sale {
	return domain.Sale{
		ID:               r.ID,
		LicensePlate:     r.LicensePlate,
		Model:            r.Model,
		Brand:            r.Brand,
		VehicleType:      domain.VehicleType(r.VehicleType),
		VIN:              r.VIN,
		Color:            r.Color,
		Mileage:          r.Mileage,
		SaleDate:         r.SaleDate,
		OrderDate:        r.OrderDate,
		RegistrationDate: r.RegistrationDate,
		OrderNumber:      r.OrderNumber,
		Advisor:          r.Advisor,
		AdvisorName:      r.AdvisorName,
		AdvisorID:        r.AdvisorID,
		PaymentMethod:    domain.PaymentMethod(r.PaymentMethod),
		PaymentStatus:    r.PaymentStatus,
		Bank:             r.Bank,
		Price:            r.Price,
		Discount:         r.Discount,
		DocumentType:     domain.DocumentType(r.DocumentType),
		DocumentID:       r.DocumentID,
		ClientName:       r.ClientName,
		ClientEmail:      r.ClientEmail,
		ClientPhone:      r.ClientPhone,
		ClientAddress:    r.ClientAddress,
		ClientCity:       r.ClientCity,
		ClientProvince:   r.ClientProvince,
		ClientZIP:        r.ClientPostalCode,
		PortalOrigin:     r.PortalOrigin,
		Dealership:       domain.Dealership(r.DealershipCode),
		CYPStatus:        r.CYPStatus,
		Photo360Status:   r.Photo360Status,
		Validated:        r.Validated,
		IsResale:         r.IsResale,
		PDFExtractionID:  r.PDFExtractionID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
