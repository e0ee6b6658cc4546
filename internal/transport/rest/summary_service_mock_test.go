package rest

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/service/dashboard"
	"sync"
)

var _ summaryService = &summaryServiceMock{}

type summaryServiceMock struct {
	SalesSummaryFunc func(ctx context.Context, in dashboard.SummaryInput) (*domain.SaleSummary, error)

	calls struct {
		SalesSummary []struct {
			Ctx context.Context
			In  dashboard.SummaryInput
		}
	}
	lockSalesSummary sync.RWMutex
}

func (mock *summaryServiceMock) SalesSummary(ctx context.Context, in dashboard.SummaryInput) (*domain.SaleSummary, error) {
	if mock.SalesSummaryFunc == nil {
		panic("summaryServiceMock.SalesSummaryFunc: method is nil but summaryService.SalesSummary was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  dashboard.SummaryInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockSalesSummary.Lock()
	mock.calls.SalesSummary = append(mock.calls.SalesSummary, callInfo)
	mock.lockSalesSummary.Unlock()
	return mock.SalesSummaryFunc(ctx, in)
}

func (mock *summaryServiceMock) SalesSummaryCalls() []struct {
	Ctx context.Context
	In  dashboard.SummaryInput
} {
	var calls []struct {
		Ctx context.Context
		In  dashboard.SummaryInput
	}
	mock.lockSalesSummary.RLock()
	calls = mock.calls.SalesSummary
	mock.lockSalesSummary.RUnlock()
	return calls
}
