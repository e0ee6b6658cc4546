package rest

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/service/stockimport"
	"sync"
)

var _ stockImporter = &stockImporterMock{}

type stockImporterMock struct {
	ImportBatchFunc func(ctx context.Context, rows []stockimport.Row, fileName string, progress func(done, total int)) (domain.StockImportResult, error)
	ImportRowFunc   func(ctx context.Context, row stockimport.Row, fileName string) (stockimport.RowResult, error)

	calls struct {
		ImportBatch []struct {
			Ctx      context.Context
			Rows     []stockimport.Row
			FileName string
			Progress func(done, total int)
		}
		ImportRow []struct {
			Ctx      context.Context
			Row      stockimport.Row
			FileName string
		}
	}
	lockImportBatch sync.RWMutex
	lockImportRow   sync.RWMutex
}

func (mock *stockImporterMock) ImportBatch(ctx context.Context, rows []stockimport.Row, fileName string, progress func(done, total int)) (domain.StockImportResult, error) {
	if mock.ImportBatchFunc == nil {
		panic("stockImporterMock.ImportBatchFunc: method is nil but stockImporter.ImportBatch was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Rows     []stockimport.Row
		FileName string
		Progress func(done, total int)
	}{
		Ctx:      ctx,
		Rows:     rows,
		FileName: fileName,
		Progress: progress,
	}
	mock.lockImportBatch.Lock()
	mock.calls.ImportBatch = append(mock.calls.ImportBatch, callInfo)
	mock.lockImportBatch.Unlock()
	return mock.ImportBatchFunc(ctx, rows, fileName, progress)
}

func (mock *stockImporterMock) ImportBatchCalls() []struct {
	Ctx      context.Context
	Rows     []stockimport.Row
	FileName string
	Progress func(done, total int)
} {
	var calls []struct {
		Ctx      context.Context
		Rows     []stockimport.Row
		FileName string
		Progress func(done, total int)
	}
	mock.lockImportBatch.RLock()
	calls = mock.calls.ImportBatch
	mock.lockImportBatch.RUnlock()
	return calls
}

func (mock *stockImporterMock) ImportRow(ctx context.Context, row stockimport.Row, fileName string) (stockimport.RowResult, error) {
	if mock.ImportRowFunc == nil {
		panic("stockImporterMock.ImportRowFunc: method is nil but stockImporter.ImportRow was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Row      stockimport.Row
		FileName string
	}{
		Ctx:      ctx,
		Row:      row,
		FileName: fileName,
	}
	mock.lockImportRow.Lock()
	mock.calls.ImportRow = append(mock.calls.ImportRow, callInfo)
	mock.lockImportRow.Unlock()
	return mock.ImportRowFunc(ctx, row, fileName)
}

func (mock *stockImporterMock) ImportRowCalls() []struct {
	Ctx      context.Context
	Row      stockimport.Row
	FileName string
} {
	var calls []struct {
		Ctx      context.Context
		Row      stockimport.Row
		FileName string
	}
	mock.lockImportRow.RLock()
	calls = mock.calls.ImportRow
	mock.lockImportRow.RUnlock()
	return calls
}
