package rest

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/service/ingest"
	"sync"
)

var _ emailIngester = &emailIngesterMock{}

type emailIngesterMock struct {
	ProcessEmailFunc func(ctx context.Context, in ingest.EmailInput) (*ingest.EmailResult, error)

	calls struct {
		ProcessEmail []struct {
			Ctx context.Context
			In  ingest.EmailInput
		}
	}
	lockProcessEmail sync.RWMutex
}

func (mock *emailIngesterMock) ProcessEmail(ctx context.Context, in ingest.EmailInput) (*ingest.EmailResult, error) {
	if mock.ProcessEmailFunc == nil {
		panic("emailIngesterMock.ProcessEmailFunc: method is nil but emailIngester.ProcessEmail was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  ingest.EmailInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockProcessEmail.Lock()
	mock.calls.ProcessEmail = append(mock.calls.ProcessEmail, callInfo)
	mock.lockProcessEmail.Unlock()
	return mock.ProcessEmailFunc(ctx, in)
}

func (mock *emailIngesterMock) ProcessEmailCalls() []struct {
	Ctx context.Context
	In  ingest.EmailInput
} {
	var calls []struct {
		Ctx context.Context
		In  ingest.EmailInput
	}
	mock.lockProcessEmail.RLock()
	calls = mock.calls.ProcessEmail
	mock.lockProcessEmail.RUnlock()
	return calls
}
