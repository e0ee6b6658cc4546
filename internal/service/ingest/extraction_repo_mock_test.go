package ingest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
)

var _ extractionRepo = &extractionRepoMock{}

type extractionRepoMock struct {
	InsertFunc     func(ctx context.Context, e *domain.Extraction) (*domain.Extraction, error)
	SetOutcomeFunc func(ctx context.Context, id uuid.UUID, outcome string, saleID *uuid.UUID) error

	calls struct {
		Insert []struct {
			Ctx context.Context
			E   *domain.Extraction
		}
		SetOutcome []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Outcome string
			SaleID  *uuid.UUID
		}
	}
	lockInsert     sync.RWMutex
	lockSetOutcome sync.RWMutex
}

func (mock *extractionRepoMock) Insert(ctx context.Context, e *domain.Extraction) (*domain.Extraction, error) {
	if mock.InsertFunc == nil {
		panic("extractionRepoMock.InsertFunc: method is nil but extractionRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.Extraction
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, e)
}

func (mock *extractionRepoMock) InsertCalls() []struct {
	Ctx context.Context
	E   *domain.Extraction
} {
	var calls []struct {
		Ctx context.Context
		E   *domain.Extraction
	}
	mock.lockInsert.RLock()
	calls = mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *extractionRepoMock) SetOutcome(ctx context.Context, id uuid.UUID, outcome string, saleID *uuid.UUID) error {
	if mock.SetOutcomeFunc == nil {
		panic("extractionRepoMock.SetOutcomeFunc: method is nil but extractionRepo.SetOutcome was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Outcome string
		SaleID  *uuid.UUID
	}{
		Ctx:     ctx,
		ID:      id,
		Outcome: outcome,
		SaleID:  saleID,
	}
	mock.lockSetOutcome.Lock()
	mock.calls.SetOutcome = append(mock.calls.SetOutcome, callInfo)
	mock.lockSetOutcome.Unlock()
	return mock.SetOutcomeFunc(ctx, id, outcome, saleID)
}

func (mock *extractionRepoMock) SetOutcomeCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Outcome string
	SaleID  *uuid.UUID
} {
	var calls []struct {
		Ctx     context.Context
		ID      uuid.UUID
		Outcome string
		SaleID  *uuid.UUID
	}
	mock.lockSetOutcome.RLock()
	calls = mock.calls.SetOutcome
	mock.lockSetOutcome.RUnlock()
	return calls
}
