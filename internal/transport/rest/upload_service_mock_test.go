package rest

import (
	"context"
	"github.com/heartmarshall/cvo-backend/internal/service/ingest"
	"sync"
)

var _ uploadService = &uploadServiceMock{}

type uploadServiceMock struct {
	PreviewPDFFunc func(ctx context.Context, data []byte) (*ingest.Preview, error)
	SaveManualFunc func(ctx context.Context, in ingest.ManualInput) (*ingest.ManualResult, error)

	calls struct {
		PreviewPDF []struct {
			Ctx  context.Context
			Data []byte
		}
		SaveManual []struct {
			Ctx context.Context
			In  ingest.ManualInput
		}
	}
	lockPreviewPDF sync.RWMutex
	lockSaveManual sync.RWMutex
}

func (mock *uploadServiceMock) PreviewPDF(ctx context.Context, data []byte) (*ingest.Preview, error) {
	if mock.PreviewPDFFunc == nil {
		panic("uploadServiceMock.PreviewPDFFunc: method is nil but uploadService.PreviewPDF was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Data []byte
	}{
		Ctx:  ctx,
		Data: data,
	}
	mock.lockPreviewPDF.Lock()
	mock.calls.PreviewPDF = append(mock.calls.PreviewPDF, callInfo)
	mock.lockPreviewPDF.Unlock()
	return mock.PreviewPDFFunc(ctx, data)
}

func (mock *uploadServiceMock) PreviewPDFCalls() []struct {
	Ctx  context.Context
	Data []byte
} {
	var calls []struct {
		Ctx  context.Context
		Data []byte
	}
	mock.lockPreviewPDF.RLock()
	calls = mock.calls.PreviewPDF
	mock.lockPreviewPDF.RUnlock()
	return calls
}

func (mock *uploadServiceMock) SaveManual(ctx context.Context, in ingest.ManualInput) (*ingest.ManualResult, error) {
	if mock.SaveManualFunc == nil {
		panic("uploadServiceMock.SaveManualFunc: method is nil but uploadService.SaveManual was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  ingest.ManualInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockSaveManual.Lock()
	mock.calls.SaveManual = append(mock.calls.SaveManual, callInfo)
	mock.lockSaveManual.Unlock()
	return mock.SaveManualFunc(ctx, in)
}

func (mock *uploadServiceMock) SaveManualCalls() []struct {
	Ctx context.Context
	In  ingest.ManualInput
} {
	var calls []struct {
		Ctx context.Context
		In  ingest.ManualInput
	}
	mock.lockSaveManual.RLock()
	calls = mock.calls.SaveManual
	mock.lockSaveManual.RUnlock()
	return calls
}
