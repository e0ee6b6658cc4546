// Package email stores inbound webhook deliveries (received_emails).
package email

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/domain"
)

const table = "received_emails"

// Repo provides received e-mail persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new received e-mail repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Insert stores an inbound e-mail. Attachment payloads are never stored,
// only their metadata.
func (r *Repo) Insert(ctx context.Context, m *domain.ReceivedEmail) (*domain.ReceivedEmail, error) {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []domain.AttachmentMeta{}
	}

	query, args, err := postgres.Builder().
		Insert(table).
		SetMap(map[string]any{
			"from_email":  m.From,
			"to_email":    strings.Join(m.To, ", "),
			"subject":     m.Subject,
			"plain_text":  m.PlainBody,
			"html_text":   m.HTMLBody,
			"headers":     jsonOrEmpty(m.Headers, "{}"),
			"envelope":    jsonOrEmpty(m.Envelope, "{}"),
			"attachments": attachments,
		}).
		Suffix("RETURNING id, received_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	out := *m
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "received_email", m.From)
	}
	return &out, nil
}

// MarkProcessed flags the e-mail as handled, whatever the extraction outcome.
func (r *Repo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("processed", true).
		Set("processed_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "received_email", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("received_email %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// jsonOrEmpty keeps raw JSON as a string so pgx sends it verbatim to jsonb.
func jsonOrEmpty(raw json.RawMessage, empty string) string {
	if len(raw) == 0 || !json.Valid(raw) {
		return empty
	}
	return string(raw)
}
