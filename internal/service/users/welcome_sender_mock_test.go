package users

import (
	"context"
	"sync"
)

var _ WelcomeSender = &WelcomeSenderMock{}

type WelcomeSenderMock struct {
	SendWelcomeFunc func(ctx context.Context, email string) error

	calls struct {
		SendWelcome []struct {
			Ctx   context.Context
			Email string
		}
	}
	lockSendWelcome sync.RWMutex
}

func (mock *WelcomeSenderMock) SendWelcome(ctx context.Context, email string) error {
	if mock.SendWelcomeFunc == nil {
		panic("WelcomeSenderMock.SendWelcomeFunc: method is nil but WelcomeSender.SendWelcome was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{
		Ctx:   ctx,
		Email: email,
	}
	mock.lockSendWelcome.Lock()
	mock.calls.SendWelcome = append(mock.calls.SendWelcome, callInfo)
	mock.lockSendWelcome.Unlock()
	return mock.SendWelcomeFunc(ctx, email)
}

func (mock *WelcomeSenderMock) SendWelcomeCalls() []struct {
	Ctx   context.Context
	Email string
} {
	var calls []struct {
		Ctx   context.Context
		Email string
	}
	mock.lockSendWelcome.RLock()
	calls = mock.calls.SendWelcome
	mock.lockSendWelcome.RUnlock()
	return calls
}
