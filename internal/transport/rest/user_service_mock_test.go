package rest

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/service/users"
	"sync"
)

var _ userService = &userServiceMock{}

type userServiceMock struct {
	CreateFunc func(ctx context.Context, in users.CreateInput) (*users.CreateResult, error)
	ListFunc   func(ctx context.Context) ([]domain.Profile, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			In  users.CreateInput
		}
		List []struct {
			Ctx context.Context
		}
	}
	lockCreate sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *userServiceMock) Create(ctx context.Context, in users.CreateInput) (*users.CreateResult, error) {
	if mock.CreateFunc == nil {
		panic("userServiceMock.CreateFunc: method is nil but userService.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  users.CreateInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, in)
}

func (mock *userServiceMock) CreateCalls() []struct {
	Ctx context.Context
	In  users.CreateInput
} {
	var calls []struct {
		Ctx context.Context
		In  users.CreateInput
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userServiceMock) List(ctx context.Context) ([]domain.Profile, error) {
	if mock.ListFunc == nil {
		panic("userServiceMock.ListFunc: method is nil but userService.List was just called")
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

func (mock *userServiceMock) ListCalls() []struct {
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
