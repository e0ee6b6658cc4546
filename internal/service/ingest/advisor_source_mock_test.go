package ingest

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
)

var _ advisorSource = &advisorSourceMock{}

type advisorSourceMock struct {
	ListAdvisorsFunc func(ctx context.Context) ([]domain.AdvisorProfile, error)

	calls struct {
		ListAdvisors []struct {
			Ctx context.Context
		}
	}
	lockListAdvisors sync.RWMutex
}

func (mock *advisorSourceMock) ListAdvisors(ctx context.Context) ([]domain.AdvisorProfile, error) {
	if mock.ListAdvisorsFunc == nil {
		panic("advisorSourceMock.ListAdvisorsFunc: method is nil but advisorSource.ListAdvisors was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListAdvisors.Lock()
	mock.calls.ListAdvisors = append(mock.calls.ListAdvisors, callInfo)
	mock.lockListAdvisors.Unlock()
	return mock.ListAdvisorsFunc(ctx)
}

func (mock *advisorSourceMock) ListAdvisorsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListAdvisors.RLock()
	calls = mock.calls.ListAdvisors
	mock.lockListAdvisors.RUnlock()
	return calls
}
