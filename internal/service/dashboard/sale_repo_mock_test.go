package dashboard

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
	"time"
)

var _ saleRepo = &saleRepoMock{}

type saleRepoMock struct {
	SummaryFunc func(ctx context.Context, from time.Time, to time.Time) (*domain.SaleSummary, error)

	calls struct {
		Summary []struct {
			Ctx  context.Context
			From time.Time
			To   time.Time
		}
	}
	lockSummary sync.RWMutex
}

func (mock *saleRepoMock) Summary(ctx context.Context, from time.Time, to time.Time) (*domain.SaleSummary, error) {
	if mock.SummaryFunc == nil {
		panic("saleRepoMock.SummaryFunc: method is nil but saleRepo.Summary was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From time.Time
		To   time.Time
	}{
		Ctx:  ctx,
		From: from,
		To:   to,
	}
	mock.lockSummary.Lock()
	mock.calls.Summary = append(mock.calls.Summary, callInfo)
	mock.lockSummary.Unlock()
	return mock.SummaryFunc(ctx, from, to)
}

func (mock *saleRepoMock) SummaryCalls() []struct {
	Ctx  context.Context
	From time.Time
	To   time.Time
} {
	var calls []struct {
		Ctx  context.Context
		From time.Time
		To   time.Time
	}
	mock.lockSummary.RLock()
	calls = mock.calls.Summary
	mock.lockSummary.RUnlock()
	return calls
}
