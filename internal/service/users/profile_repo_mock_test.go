package users

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
)

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	CreateFunc          func(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*domain.Profile, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListFunc            func(ctx context.Context) ([]domain.Profile, error)
	MarkWelcomeSentFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct {
			Ctx context.Context
			P   *domain.Profile
		}
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
		}
		MarkWelcomeSent []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate          sync.RWMutex
	lockGetByEmail      sync.RWMutex
	lockGetByID         sync.RWMutex
	lockList            sync.RWMutex
	lockMarkWelcomeSent sync.RWMutex
}

func (mock *profileRepoMock) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if mock.CreateFunc == nil {
		panic("profileRepoMock.CreateFunc: method is nil but profileRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Profile
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *profileRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   *domain.Profile
} {
	var calls []struct {
		Ctx context.Context
		P   *domain.Profile
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *profileRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if mock.GetByEmailFunc == nil {
		panic("profileRepoMock.GetByEmailFunc: method is nil but profileRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{
		Ctx:   ctx,
		Email: email,
	}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *profileRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	var calls []struct {
		Ctx   context.Context
		Email string
	}
	mock.lockGetByEmail.RLock()
	calls = mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}

func (mock *profileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if mock.GetByIDFunc == nil {
		panic("profileRepoMock.GetByIDFunc: method is nil but profileRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *profileRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *profileRepoMock) List(ctx context.Context) ([]domain.Profile, error) {
	if mock.ListFunc == nil {
		panic("profileRepoMock.ListFunc: method is nil but profileRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *profileRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *profileRepoMock) MarkWelcomeSent(ctx context.Context, id uuid.UUID) error {
	if mock.MarkWelcomeSentFunc == nil {
		panic("profileRepoMock.MarkWelcomeSentFunc: method is nil but profileRepo.MarkWelcomeSent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockMarkWelcomeSent.Lock()
	mock.calls.MarkWelcomeSent = append(mock.calls.MarkWelcomeSent, callInfo)
	mock.lockMarkWelcomeSent.Unlock()
	return mock.MarkWelcomeSentFunc(ctx, id)
}

func (mock *profileRepoMock) MarkWelcomeSentCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockMarkWelcomeSent.RLock()
	calls = mock.calls.MarkWelcomeSent
	mock.lockMarkWelcomeSent.RUnlock()
	return calls
}
