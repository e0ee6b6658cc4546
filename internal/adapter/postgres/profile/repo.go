// Package profile implements the profiles repository using PostgreSQL.
package profile

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/domain"
)

const table = "profiles"

var columns = []string{
	"id", "email", "full_name", "alias", "phone", "position", "role",
	"avatar_url", "welcome_email_sent", "created_at", "updated_at",
}

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new profile repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns every profile, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Profile, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []profileRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", "")
	}

	out := make([]domain.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Profile(row))
	}
	return out, nil
}

// ListAdvisors returns the id, name and alias of every profile.
func (r *Repo) ListAdvisors(ctx context.Context) ([]domain.AdvisorProfile, error) {
	query, args, err := postgres.Builder().
		Select("id", "full_name", "alias").
		From(table).
		OrderBy("full_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []advisorRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", "")
	}

	out := make([]domain.AdvisorProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.AdvisorProfile(row))
	}
	return out, nil
}

// GetByEmail returns the profile with the given e-mail (case-insensitive).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, sq.Expr("lower(email) = lower(?)", email), email)
}

// GetByID returns a profile by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id.String())
}

func (r *Repo) getOne(ctx context.Context, where sq.Sqlizer, key string) (*domain.Profile, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row profileRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", key)
	}
	p := domain.Profile(row)
	return &p, nil
}

// Create inserts a profile. Its id must be the upstream auth user id.
func (r *Repo) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "email", "full_name", "alias", "phone", "position", "role", "avatar_url", "welcome_email_sent").
		Values(p.ID, p.Email, p.FullName, p.Alias, p.Phone, p.Position, p.Role, p.AvatarURL, p.WelcomeEmailSent).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	out := *p
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "profile", p.Email)
	}
	return &out, nil
}

// MarkWelcomeSent records that the welcome e-mail went out.
func (r *Repo) MarkWelcomeSent(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("welcome_email_sent", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "profile", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type profileRow struct {
	ID               uuid.UUID `db:"id"`
	Email            string    `db:"email"`
	FullName         string    `db:"full_name"`
	Alias            string    `db:"alias"`
	Phone            string    `db:"phone"`
	Position         string    `db:"position"`
	Role             string    `db:"role"`
	AvatarURL        string    `db:"avatar_url"`
	WelcomeEmailSent bool      `db:"welcome_email_sent"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type advisorRow struct {
	ID       uuid.UUID `db:"id"`
	FullName string    `db:"full_name"`
	Alias    string    `db:"alias"`
}
