// Package ingest turns order documents (e-mailed or uploaded PDFs) into
// extraction audit rows and reconciled sales.
package ingest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

type emailRepo interface {
	Insert(ctx context.Context, m *domain.ReceivedEmail) (*domain.ReceivedEmail, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
}

type extractionRepo interface {
	Insert(ctx context.Context, e *domain.Extraction) (*domain.Extraction, error)
	SetOutcome(ctx context.Context, id uuid.UUID, outcome string, saleID *uuid.UUID) error
}

type saleRepo interface {
	LockPlate(ctx context.Context, plate string) error
	LatestByPlate(ctx context.Context, plate string) (*domain.Sale, error)
	Insert(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	Update(ctx context.Context, s *domain.Sale) error
}

type advisorSource interface {
	ListAdvisors(ctx context.Context) ([]domain.AdvisorProfile, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	EmailStored()
	ExtractionStored(source, status string)
	SaleReconciled(action string)
}

// Service runs the ingestion pipelines.
type Service struct {
	log         *slog.Logger
	emails      emailRepo
	extractions extractionRepo
	sales       saleRepo
	advisors    advisorSource
	tx          txManager
	metrics     recorder
}

// NewService creates an ingest service. A nil metrics recorder disables metrics.
func NewService(
	logger *slog.Logger,
	emails emailRepo,
	extractions extractionRepo,
	sales saleRepo,
	advisors advisorSource,
	tx txManager,
	metrics recorder,
) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{
		log:         logger.With("service", "ingest"),
		emails:      emails,
		extractions: extractions,
		sales:       sales,
		advisors:    advisors,
		tx:          tx,
		metrics:     metrics,
	}
}

type nopRecorder struct{}

func (nopRecorder) EmailStored()                 {}
func (nopRecorder) ExtractionStored(_, _ string) {}
func (nopRecorder) SaleReconciled(_ string)      {}
