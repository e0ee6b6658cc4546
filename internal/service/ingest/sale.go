package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/advisor"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/reconcile"
)

// SaleOutcome is what happened to the sale of one document.
type SaleOutcome struct {
	Action      reconcile.Action
	SaleID      uuid.UUID
	IsResale    bool
	IsDuplicate bool
}

// storeSale reconciles sale against the latest stored sale for its plate and
// writes it. The plate lock serialises concurrent deliveries of one vehicle.
func (s *Service) storeSale(ctx context.Context, sale *domain.Sale, origin reconcile.Origin) (SaleOutcome, error) {
	var out SaleOutcome

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.sales.LockPlate(ctx, sale.LicensePlate); err != nil {
			return err
		}

		var existing *reconcile.Existing
		latest, err := s.sales.LatestByPlate(ctx, sale.LicensePlate)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			return err
		default:
			existing = &reconcile.Existing{ID: latest.ID, DocumentID: latest.DocumentID}
		}

		d := reconcile.Sale(existing, sale.DocumentID, origin)
		out = SaleOutcome{Action: d.Action}

		switch d.Action {
		case reconcile.ActionInsert, reconcile.ActionResale:
			sale.IsResale = d.Action == reconcile.ActionResale
			stored, err := s.sales.Insert(ctx, sale)
			if err != nil {
				return err
			}
			out.SaleID = stored.ID
			out.IsResale = sale.IsResale
		case reconcile.ActionUpdate:
			sale.ID = d.ExistingID
			if err := s.sales.Update(ctx, sale); err != nil {
				return err
			}
			out.SaleID = d.ExistingID
		case reconcile.ActionDuplicate:
			out.SaleID = d.ExistingID
			out.IsDuplicate = true
		}
		return nil
	})
	if err != nil {
		return SaleOutcome{}, fmt.Errorf("ingest.storeSale %s: %w", sale.LicensePlate, err)
	}

	s.metrics.SaleReconciled(out.Action.String())
	s.log.InfoContext(ctx, "sale reconciled",
		slog.String("plate", sale.LicensePlate),
		slog.String("action", out.Action.String()),
		slog.String("sale_id", out.SaleID.String()),
	)
	return out, nil
}

// resolveAdvisor matches the advisor printed on the order. A failing profile
// lookup falls back to the printed name.
func (s *Service) resolveAdvisor(ctx context.Context, name string) advisor.Resolution {
	if name == "" {
		return advisor.Resolution{}
	}
	profiles, err := s.advisors.ListAdvisors(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "advisor profiles unavailable", slog.String("error", err.Error()))
		profiles = nil
	}
	res := advisor.Resolve(name, profiles)
	s.log.DebugContext(ctx, "advisor resolved",
		slog.String("input", name),
		slog.String("step", string(res.Step)),
		slog.String("alias", res.Alias),
	)
	return res
}

func (s *Service) recordOutcome(ctx context.Context, extractionID uuid.UUID, out SaleOutcome) {
	saleID := out.SaleID
	if err := s.extractions.SetOutcome(ctx, extractionID, out.Action.String(), &saleID); err != nil {
		s.log.WarnContext(ctx, "record extraction outcome failed",
			slog.String("extraction_id", extractionID.String()),
			slog.String("error", err.Error()),
		)
	}
}
