// Package dashboard serves read-only sales aggregates.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

// DateLayout is the query parameter format for summary ranges.
const DateLayout = "2006-01-02"

// MaxRange bounds a single summary query.
const MaxRange = 3 * 366 * 24 * time.Hour

type saleRepo interface {
	Summary(ctx context.Context, from, to time.Time) (*domain.SaleSummary, error)
}

// Service computes dashboard aggregates.
type Service struct {
	log   *slog.Logger
	sales saleRepo
	now   func() time.Time
}

// NewService creates a dashboard service.
func NewService(logger *slog.Logger, sales saleRepo) *Service {
	return &Service{
		log:   logger.With("service", "dashboard"),
		sales: sales,
		now:   time.Now,
	}
}

// SummaryInput is an inclusive date range in DateLayout. Empty bounds
// default to the current month.
type SummaryInput struct {
	From string
	To   string
}

// SalesSummary aggregates sales with sale_date between From and To, both inclusive.
func (s *Service) SalesSummary(ctx context.Context, in SummaryInput) (*domain.SaleSummary, error) {
	from, to, err := s.parseRange(in)
	if err != nil {
		return nil, err
	}

	// The repository range is half-open.
	summary, err := s.sales.Summary(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("dashboard.SalesSummary: %w", err)
	}
	summary.From, summary.To = from, to

	s.log.DebugContext(ctx, "sales summary",
		slog.String("from", from.Format(DateLayout)),
		slog.String("to", to.Format(DateLayout)),
		slog.Int("total", summary.Total),
	)
	return summary, nil
}

func (s *Service) parseRange(in SummaryInput) (time.Time, time.Time, error) {
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	var errs domain.FieldErrors
	if in.From != "" {
		t, err := time.Parse(DateLayout, in.From)
		if err != nil {
			errs.Add("from", "must be YYYY-MM-DD")
		}
		from = t
	}
	if in.To != "" {
		t, err := time.Parse(DateLayout, in.To)
		if err != nil {
			errs.Add("to", "must be YYYY-MM-DD")
		}
		to = t
	}
	if len(errs) == 0 {
		switch {
		case to.Before(from):
			errs.Add("to", "must not be before from")
		case to.Sub(from) > MaxRange:
			errs.Add("to", "range too large")
		}
	}
	if err := errs.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
