package users

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
)

var _ AuthAdmin = &AuthAdminMock{}

type AuthAdminMock struct {
	CreateUserFunc      func(ctx context.Context, email string, metadata map[string]string) (domain.AuthUser, error)
	DeleteUserFunc      func(ctx context.Context, id uuid.UUID) error
	FindUserByEmailFunc func(ctx context.Context, email string) (domain.AuthUser, error)

	calls struct {
		CreateUser []struct {
			Ctx      context.Context
			Email    string
			Metadata map[string]string
		}
		DeleteUser []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		FindUserByEmail []struct {
			Ctx   context.Context
			Email string
		}
	}
	lockCreateUser      sync.RWMutex
	lockDeleteUser      sync.RWMutex
	lockFindUserByEmail sync.RWMutex
}

func (mock *AuthAdminMock) CreateUser(ctx context.Context, email string, metadata map[string]string) (domain.AuthUser, error) {
	if mock.CreateUserFunc == nil {
		panic("AuthAdminMock.CreateUserFunc: method is nil but AuthAdmin.CreateUser was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Email    string
		Metadata map[string]string
	}{
		Ctx:      ctx,
		Email:    email,
		Metadata: metadata,
	}
	mock.lockCreateUser.Lock()
	mock.calls.CreateUser = append(mock.calls.CreateUser, callInfo)
	mock.lockCreateUser.Unlock()
	return mock.CreateUserFunc(ctx, email, metadata)
}

func (mock *AuthAdminMock) CreateUserCalls() []struct {
	Ctx      context.Context
	Email    string
	Metadata map[string]string
} {
	var calls []struct {
		Ctx      context.Context
		Email    string
		Metadata map[string]string
	}
	mock.lockCreateUser.RLock()
	calls = mock.calls.CreateUser
	mock.lockCreateUser.RUnlock()
	return calls
}

func (mock *AuthAdminMock) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteUserFunc == nil {
		panic("AuthAdminMock.DeleteUserFunc: method is nil but AuthAdmin.DeleteUser was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDeleteUser.Lock()
	mock.calls.DeleteUser = append(mock.calls.DeleteUser, callInfo)
	mock.lockDeleteUser.Unlock()
	return mock.DeleteUserFunc(ctx, id)
}

func (mock *AuthAdminMock) DeleteUserCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockDeleteUser.RLock()
	calls = mock.calls.DeleteUser
	mock.lockDeleteUser.RUnlock()
	return calls
}

func (mock *AuthAdminMock) FindUserByEmail(ctx context.Context, email string) (domain.AuthUser, error) {
	if mock.FindUserByEmailFunc == nil {
		panic("AuthAdminMock.FindUserByEmailFunc: method is nil but AuthAdmin.FindUserByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{
		Ctx:   ctx,
		Email: email,
	}
	mock.lockFindUserByEmail.Lock()
	mock.calls.FindUserByEmail = append(mock.calls.FindUserByEmail, callInfo)
	mock.lockFindUserByEmail.Unlock()
	return mock.FindUserByEmailFunc(ctx, email)
}

func (mock *AuthAdminMock) FindUserByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	var calls []struct {
		Ctx   context.Context
		Email string
	}
	mock.lockFindUserByEmail.RLock()
	calls = mock.calls.FindUserByEmail
	mock.lockFindUserByEmail.RUnlock()
	return calls
}
