// Package extraction stores extraction audit rows (pdf_extracted_data).
package extraction

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/domain"
)

const table = "pdf_extracted_data"

// errorSeparator joins extraction errors in the text column.
const errorSeparator = "; "

// Repo provides extraction persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new extraction repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Insert stores an extraction and returns it with its id and created_at.
func (r *Repo) Insert(ctx context.Context, e *domain.Extraction) (*domain.Extraction, error) {
	fields := e.Fields
	if fields == nil {
		fields = map[string]string{}
	}

	query, args, err := postgres.Builder().
		Insert(table).
		SetMap(map[string]any{
			"received_email_id": e.ReceivedEmailID,
			"extraction_source": string(e.Source),
			"extraction_method": e.Method,
			"pdf_filename":      e.FileName,
			"email_subject":     e.Subject,
			"fields":            fields,
			"numero_pedido":     e.OrderNumber,
			"numero_matricula":  e.Plate,
			"nombre_apellidos":  e.ClientName,
			"dni_nif":           e.DocumentID,
			"total":             e.Total,
			"descuento":         e.Discount,
			"raw_text":          e.RawText,
			"extraction_status": string(e.Status),
			"extraction_errors": strings.Join(e.Errors, errorSeparator),
		}).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	out := *e
	out.Fields = fields
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "extraction", e.Plate)
	}
	return &out, nil
}

// SetOutcome records the reconciliation result and the sale it produced.
func (r *Repo) SetOutcome(ctx context.Context, id uuid.UUID, outcome string, saleID *uuid.UUID) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("outcome", outcome).
		Set("sale_id", saleID).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "extraction", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("extraction %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
