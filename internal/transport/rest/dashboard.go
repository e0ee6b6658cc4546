package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/service/dashboard"
)

type summaryService interface {
	SalesSummary(ctx context.Context, in dashboard.SummaryInput) (*domain.SaleSummary, error)
}

// DashboardHandler serves dashboard aggregates.
type DashboardHandler struct {
	svc summaryService
	log *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc summaryService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: logger.With("handler", "dashboard")}
}

type bucketResponse struct {
	Key     string          `json:"key"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type summaryResponse struct {
	From      string           `json:"from"`
	To        string           `json:"to"`
	Total     int              `json:"total"`
	Resales   int              `json:"resales"`
	Revenue   decimal.Decimal  `json:"revenue"`
	ByAdvisor []bucketResponse `json:"byAdvisor"`
	ByPayment []bucketResponse `json:"byPayment"`
	ByMonth   []bucketResponse `json:"byMonth"`
}

// SalesSummary handles GET /api/dashboard/sales-summary?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *DashboardHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s, err := h.svc.SalesSummary(r.Context(), dashboard.SummaryInput{
		From: q.Get("from"),
		To:   q.Get("to"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		From:      s.From.Format(dashboard.DateLayout),
		To:        s.To.Format(dashboard.DateLayout),
		Total:     s.Total,
		Resales:   s.Resales,
		Revenue:   s.Revenue,
		ByAdvisor: toBuckets(s.ByAdvisor),
		ByPayment: toBuckets(s.ByPayment),
		ByMonth:   toBuckets(s.ByMonth),
	})
}

func toBuckets(in []domain.CountBucket) []bucketResponse {
	out := make([]bucketResponse, 0, len(in))
	for _, b := range in {
		out = append(out, bucketResponse(b))
	}
	return out
}
