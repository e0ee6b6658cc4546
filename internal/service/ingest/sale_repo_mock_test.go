package ingest

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"sync"
)

var _ saleRepo = &saleRepoMock{}

type saleRepoMock struct {
	InsertFunc        func(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	LatestByPlateFunc func(ctx context.Context, plate string) (*domain.Sale, error)
	LockPlateFunc     func(ctx context.Context, plate string) error
	UpdateFunc        func(ctx context.Context, s *domain.Sale) error

	calls struct {
		Insert []struct {
			Ctx context.Context
			S   *domain.Sale
		}
		LatestByPlate []struct {
			Ctx   context.Context
			Plate string
		}
		LockPlate []struct {
			Ctx   context.Context
			Plate string
		}
		Update []struct {
			Ctx context.Context
			S   *domain.Sale
		}
	}
	lockInsert        sync.RWMutex
	lockLatestByPlate sync.RWMutex
	lockLockPlate     sync.RWMutex
	lockUpdate        sync.RWMutex
}

func (mock *saleRepoMock) Insert(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	if mock.InsertFunc == nil {
		panic("saleRepoMock.InsertFunc: method is nil but saleRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Sale
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, s)
}

func (mock *saleRepoMock) InsertCalls() []struct {
	Ctx context.Context
	S   *domain.Sale
} {
	var calls []struct {
		Ctx context.Context
		S   *domain.Sale
	}
	mock.lockInsert.RLock()
	calls = mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *saleRepoMock) LatestByPlate(ctx context.Context, plate string) (*domain.Sale, error) {
	if mock.LatestByPlateFunc == nil {
		panic("saleRepoMock.LatestByPlateFunc: method is nil but saleRepo.LatestByPlate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Plate string
	}{
		Ctx:   ctx,
		Plate: plate,
	}
	mock.lockLatestByPlate.Lock()
	mock.calls.LatestByPlate = append(mock.calls.LatestByPlate, callInfo)
	mock.lockLatestByPlate.Unlock()
	return mock.LatestByPlateFunc(ctx, plate)
}

func (mock *saleRepoMock) LatestByPlateCalls() []struct {
	Ctx   context.Context
	Plate string
} {
	var calls []struct {
		Ctx   context.Context
		Plate string
	}
	mock.lockLatestByPlate.RLock()
	calls = mock.calls.LatestByPlate
	mock.lockLatestByPlate.RUnlock()
	return calls
}

func (mock *saleRepoMock) LockPlate(ctx context.Context, plate string) error {
	if mock.LockPlateFunc == nil {
		panic("saleRepoMock.LockPlateFunc: method is nil but saleRepo.LockPlate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Plate string
	}{
		Ctx:   ctx,
		Plate: plate,
	}
	mock.lockLockPlate.Lock()
	mock.calls.LockPlate = append(mock.calls.LockPlate, callInfo)
	mock.lockLockPlate.Unlock()
	return mock.LockPlateFunc(ctx, plate)
}

func (mock *saleRepoMock) LockPlateCalls() []struct {
	Ctx   context.Context
	Plate string
} {
	var calls []struct {
		Ctx   context.Context
		Plate string
	}
	mock.lockLockPlate.RLock()
	calls = mock.calls.LockPlate
	mock.lockLockPlate.RUnlock()
	return calls
}

func (mock *saleRepoMock) Update(ctx context.Context, s *domain.Sale) error {
	if mock.UpdateFunc == nil {
		panic("saleRepoMock.UpdateFunc: method is nil but saleRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Sale
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, s)
}

func (mock *saleRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	S   *domain.Sale
} {
	var calls []struct {
		Ctx context.Context
		S   *domain.Sale
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
