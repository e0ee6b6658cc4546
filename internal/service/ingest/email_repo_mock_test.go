package ingest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
)

var _ emailRepo = &emailRepoMock{}

type emailRepoMock struct {
	InsertFunc        func(ctx context.Context, m *domain.ReceivedEmail) (*domain.ReceivedEmail, error)
	MarkProcessedFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Insert []struct {
			Ctx context.Context
			M   *domain.ReceivedEmail
		}
		MarkProcessed []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockInsert        sync.RWMutex
	lockMarkProcessed sync.RWMutex
}

func (mock *emailRepoMock) Insert(ctx context.Context, m *domain.ReceivedEmail) (*domain.ReceivedEmail, error) {
	if mock.InsertFunc == nil {
		panic("emailRepoMock.InsertFunc: method is nil but emailRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   *domain.ReceivedEmail
	}{
		Ctx: ctx,
		M:   m,
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, m)
}

func (mock *emailRepoMock) InsertCalls() []struct {
	Ctx context.Context
	M   *domain.ReceivedEmail
} {
	var calls []struct {
		Ctx context.Context
		M   *domain.ReceivedEmail
	}
	mock.lockInsert.RLock()
	calls = mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *emailRepoMock) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	if mock.MarkProcessedFunc == nil {
		panic("emailRepoMock.MarkProcessedFunc: method is nil but emailRepo.MarkProcessed was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockMarkProcessed.Lock()
	mock.calls.MarkProcessed = append(mock.calls.MarkProcessed, callInfo)
	mock.lockMarkProcessed.Unlock()
	return mock.MarkProcessedFunc(ctx, id)
}

func (mock *emailRepoMock) MarkProcessedCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockMarkProcessed.RLock()
	calls = mock.calls.MarkProcessed
	mock.lockMarkProcessed.RUnlock()
	return calls
}
