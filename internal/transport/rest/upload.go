package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/heartmarshall/cvo-backend/internal/service/ingest"
)

type uploadService interface {
	PreviewPDF(ctx context.Context, data []byte) (*ingest.Preview, error)
	SaveManual(ctx context.Context, in ingest.ManualInput) (*ingest.ManualResult, error)
}

// UploadHandler serves the two steps of the manual PDF upload page.
type UploadHandler struct {
	svc      uploadService
	maxBytes int64
	log      *slog.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(svc uploadService, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		svc:      svc,
		maxBytes: maxBytes,
		log:      logger.With("handler", "upload"),
	}
}

type previewResponse struct {
	ExtractedFields  map[string]string `json:"extractedFields"`
	OriginalText     string            `json:"originalText"`
	Method           string            `json:"method"`
	ExtractionStatus string            `json:"extractionStatus"`
	MissingFields    []string          `json:"missingFields"`
}

type saveRequest struct {
	ExtractedFields    map[string]string `json:"extractedFields"`
	OriginalText       string            `json:"originalText"`
	FileName           string            `json:"fileName"`
	Method             string            `json:"method"`
	SelectedDealership string            `json:"selectedDealership"`
}

type saveResult struct {
	ID               string `json:"id"`
	ExtractionStatus string `json:"extractionStatus"`
	Action           string `json:"action"`
	SaleID           string `json:"saleId,omitempty"`
	IsResale         bool   `json:"isResale"`
	Dealership       string `json:"dealership,omitempty"`
}

type saveResponse struct {
	Message string     `json:"message"`
	Data    saveResult `json:"data"`
}

// Extract handles POST /api/extract-pdf. The body is the raw PDF, or a
// multipart form with the PDF in the "file" field.
func (h *UploadHandler) Extract(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readPDF(w, r)
	if !ok {
		return
	}

	preview, err := h.svc.PreviewPDF(r.Context(), data)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	missing := preview.Missing
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, previewResponse{
		ExtractedFields:  preview.Fields,
		OriginalText:     preview.Text,
		Method:           preview.Method,
		ExtractionStatus: preview.Status.String(),
		MissingFields:    missing,
	})
}

// Save handles POST /api/save-pdf-extraction.
func (h *UploadHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decodeJSON(w, r, h.maxBytes, &req) {
		return
	}

	res, err := h.svc.SaveManual(r.Context(), ingest.ManualInput{
		Fields:     req.ExtractedFields,
		RawText:    req.OriginalText,
		FileName:   req.FileName,
		Method:     req.Method,
		Dealership: req.SelectedDealership,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := saveResult{
		ID:               res.ExtractionID.String(),
		ExtractionStatus: res.Status.String(),
		Action:           res.Sale.Action.String(),
		IsResale:         res.Sale.IsResale,
		Dealership:       res.Dealership.String(),
	}
	if res.Sale.Action.Writes() {
		out.SaleID = res.Sale.SaleID.String()
	}
	writeJSON(w, http.StatusOK, saveResponse{Message: "PDF data saved successfully", Data: out})
}

func (h *UploadHandler) readPDF(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	var (
		data []byte
		err  error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		data, err = readFormFile(r, h.maxBytes)
	} else {
		data, err = io.ReadAll(r.Body)
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return nil, false
	case errors.Is(err, http.ErrMissingFile):
		writeError(w, http.StatusBadRequest, "file is required")
		return nil, false
	case err != nil:
		writeError(w, http.StatusBadRequest, "invalid upload")
		return nil, false
	}
	return data, true
}

func readFormFile(r *http.Request, maxBytes int64) ([]byte, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, err
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
