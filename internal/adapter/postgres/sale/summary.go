package sale

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/domain"
)

// UnassignedAdvisor groups sales without an advisor name in summaries.
const UnassignedAdvisor = "Sin asignar"

type bucketRow struct {
	Key     string          `db:"key"`
	Count   int             `db:"count"`
	Revenue decimal.Decimal `db:"revenue"`
}

// Summary aggregates sales whose sale_date falls in [from, to).
func (r *Repo) Summary(ctx context.Context, from, to time.Time) (*domain.SaleSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	inRange := sq.And{
		sq.GtOrEq{"sale_date": from},
		sq.Lt{"sale_date": to},
	}

	totalsSQL, args, err := postgres.Builder().
		Select(
			"count(*) AS count",
			"count(*) FILTER (WHERE is_resale) AS resales",
			"COALESCE(sum(price), 0) AS revenue",
		).
		From(table).
		Where(inRange).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	out := &domain.SaleSummary{From: from, To: to}
	if err := q.QueryRow(ctx, totalsSQL, args...).Scan(&out.Total, &out.Resales, &out.Revenue); err != nil {
		return nil, postgres.MapError(err, "sale_summary", "")
	}

	groups := []struct {
		expr string
		dst  *[]domain.CountBucket
	}{
		{fmt.Sprintf("COALESCE(NULLIF(advisor_name, ''), '%s')", UnassignedAdvisor), &out.ByAdvisor},
		{"payment_method", &out.ByPayment},
		{"to_char(date_trunc('month', sale_date), 'YYYY-MM')", &out.ByMonth},
	}
	for _, g := range groups {
		query, args, err := postgres.Builder().
			Select(
				g.expr+" AS key",
				"count(*) AS count",
				"COALESCE(sum(price), 0) AS revenue",
			).
			From(table).
			Where(inRange).
			GroupBy("1").
			OrderBy("1").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build query: %w", err)
		}

		var rows []bucketRow
		if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
			return nil, postgres.MapError(err, "sale_summary", "")
		}

		buckets := make([]domain.CountBucket, 0, len(rows))
		for _, row := range rows {
			buckets = append(buckets, domain.CountBucket(row))
		}
		*g.dst = buckets
	}

	return out, nil
}
