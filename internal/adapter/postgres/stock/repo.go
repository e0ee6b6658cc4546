// Package stock stores dealer stock export rows (duc_scraper).
package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/domain"
)

const table = "duc_scraper"

// Column names of the export that are also stored as typed columns.
const (
	ColumnAdID    = "ID Anuncio"
	ColumnPlate   = "Matrícula"
	ColumnBrand   = "Marca"
	ColumnModel   = "Modelo"
	ColumnPrice   = "Precio"
	ColumnColumns = "columns"
)

// Repo provides stock listing persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new stock repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Upsert inserts the listing or, when its ad id already exists, overwrites
// every column except import_date. inserted reports which branch ran; it
// comes from the statement itself so concurrent imports of the same ad id
// cannot both insert.
func (r *Repo) Upsert(ctx context.Context, l *domain.StockListing) (id uuid.UUID, inserted bool, err error) {
	if l.AdID == "" {
		return uuid.Nil, false, fmt.Errorf("stock_listing: %w: empty ad id", domain.ErrValidation)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(quoted(ColumnAdID), quoted(ColumnPlate), quoted(ColumnBrand), quoted(ColumnModel),
			quoted(ColumnPrice), ColumnColumns, "file_name", "import_date", "last_seen_date").
		Values(l.AdID, l.LicensePlate, l.Brand, l.Model, l.Price, columnsOrEmpty(l), l.FileName, l.ImportDate, l.LastSeenDate).
		Suffix(`ON CONFLICT ("ID Anuncio") DO UPDATE SET
			"Matrícula" = EXCLUDED."Matrícula",
			"Marca" = EXCLUDED."Marca",
			"Modelo" = EXCLUDED."Modelo",
			"Precio" = EXCLUDED."Precio",
			columns = EXCLUDED.columns,
			file_name = EXCLUDED.file_name,
			last_seen_date = EXCLUDED.last_seen_date
		RETURNING id, (xmax = 0) AS inserted`).
		ToSql()
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("build query: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id, &inserted); err != nil {
		return uuid.Nil, false, postgres.MapError(err, "stock_listing", l.AdID)
	}
	return id, inserted, nil
}

// Insert stores a listing without an ad id. Such rows can never be matched
// again, so every import adds a new one.
func (r *Repo) Insert(ctx context.Context, l *domain.StockListing) (uuid.UUID, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(quoted(ColumnPlate), quoted(ColumnBrand), quoted(ColumnModel),
			quoted(ColumnPrice), ColumnColumns, "file_name", "import_date", "last_seen_date").
		Values(l.LicensePlate, l.Brand, l.Model, l.Price, columnsOrEmpty(l), l.FileName, l.ImportDate, l.LastSeenDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build query: %w", err)
	}

	var id uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, "stock_listing", l.LicensePlate)
	}
	return id, nil
}

func quoted(column string) string {
	return `"` + column + `"`
}

func columnsOrEmpty(l *domain.StockListing) map[string]string {
	if l.Columns == nil {
		return map[string]string{}
	}
	return l.Columns
}
