package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniquePlate returns a plate that no other test uses.
func UniquePlate() string {
	return "T" + uniqueSuffix()
}

// SeedProfile creates a profile with the given full name and alias.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, fullName, alias string) domain.Profile {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Profile{
		ID:        uuid.New(),
		Email:     "advisor-" + suffix + "@example.com",
		FullName:  fullName,
		Alias:     alias,
		Role:      "asesor",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO profiles (id, email, full_name, alias, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Email, p.FullName, p.Alias, p.Role, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedSale stores a minimal sale for plate sold to documentID.
func SeedSale(t *testing.T, pool *pgxpool.Pool, plate, documentID string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO sales_vehicles (license_plate, document_id, client_name, payment_method)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		plate, documentID, "Seeded Client", string(domain.PaymentCash),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedSale: %v", err)
	}

	return id
}
