package stockimport

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
)

var _ stockRepo = &stockRepoMock{}

type stockRepoMock struct {
	InsertFunc func(ctx context.Context, l *domain.StockListing) (uuid.UUID, error)
	UpsertFunc func(ctx context.Context, l *domain.StockListing) (uuid.UUID, bool, error)

	calls struct {
		Insert []struct {
			Ctx context.Context
			L   *domain.StockListing
		}
		Upsert []struct {
			Ctx context.Context
			L   *domain.StockListing
		}
	}
	lockInsert sync.RWMutex
	lockUpsert sync.RWMutex
}

func (mock *stockRepoMock) Insert(ctx context.Context, l *domain.StockListing) (uuid.UUID, error) {
	if mock.InsertFunc == nil {
		panic("stockRepoMock.InsertFunc: method is nil but stockRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.StockListing
	}{
		Ctx: ctx,
		L:   l,
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, l)
}

func (mock *stockRepoMock) InsertCalls() []struct {
	Ctx context.Context
	L   *domain.StockListing
} {
	var calls []struct {
		Ctx context.Context
		L   *domain.StockListing
	}
	mock.lockInsert.RLock()
	calls = mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *stockRepoMock) Upsert(ctx context.Context, l *domain.StockListing) (uuid.UUID, bool, error) {
	if mock.UpsertFunc == nil {
		panic("stockRepoMock.UpsertFunc: method is nil but stockRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.StockListing
	}{
		Ctx: ctx,
		L:   l,
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, l)
}

func (mock *stockRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	L   *domain.StockListing
} {
	var calls []struct {
		Ctx context.Context
		L   *domain.StockListing
	}
	mock.lockUpsert.RLock()
	calls = mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
