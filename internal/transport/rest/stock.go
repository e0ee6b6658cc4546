package rest

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/service/stockimport"
)

type stockImporter interface {
	ImportRow(ctx context.Context, row stockimport.Row, fileName string) (stockimport.RowResult, error)
	ImportBatch(ctx context.Context, rows []stockimport.Row, fileName string, progress func(done, total int)) (domain.StockImportResult, error)
}

// StockHandler receives stock export rows pushed by the scraper.
type StockHandler struct {
	svc      stockImporter
	apiKey   string
	maxBytes int64
	log      *slog.Logger
}

// NewStockHandler creates a StockHandler. Requests are refused while apiKey is empty.
func NewStockHandler(svc stockImporter, apiKey string, maxBytes int64, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		svc:      svc,
		apiKey:   apiKey,
		maxBytes: maxBytes,
		log:      logger.With("handler", "stock"),
	}
}

type importRequest struct {
	CSVData  json.RawMessage `json:"csv_data"`
	FileName string          `json:"file_name"`
	APIKey   string          `json:"api_key"`
}

type importSummary struct {
	TotalProcessed int `json:"total_processed"`
	Inserted       int `json:"inserted"`
	Updated        int `json:"updated"`
	Errors         int `json:"errors"`
}

type importResponse struct {
	Success      bool          `json:"success"`
	Action       string        `json:"action,omitempty"`
	RecordID     string        `json:"record_id,omitempty"`
	Message      string        `json:"message"`
	Summary      importSummary `json:"summary"`
	ErrorDetails []string      `json:"error_details,omitempty"`
}

type importInfo struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	Endpoint       string   `json:"endpoint"`
	Method         string   `json:"method"`
	RequiredFields []string `json:"required_fields"`
}

// Describe handles GET /api/import-csv.
func (h *StockHandler) Describe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, importInfo{
		Success:        true,
		Message:        "stock import endpoint ready",
		Endpoint:       "/api/import-csv",
		Method:         http.MethodPost,
		RequiredFields: []string{"csv_data", "file_name", "api_key"},
	})
}

// Import handles POST /api/import-csv. csv_data is a single row object or an
// array of them.
func (h *StockHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		handleError(h.log, w, r, fmt.Errorf("import api key: %w", domain.ErrNotConfigured))
		return
	}

	var req importRequest
	if !decodeJSON(w, r, h.maxBytes, &req) {
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		h.log.WarnContext(r.Context(), "import api key rejected")
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}

	data := bytes.TrimSpace(req.CSVData)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		writeError(w, http.StatusBadRequest, "csv_data is required")
		return
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "csv_data must be an object or an array of objects")
		return
	}

	switch v := payload.(type) {
	case []any:
		h.importBatch(w, r, v, req.FileName)
	case map[string]any:
		h.importOne(w, r, v, req.FileName)
	default:
		writeError(w, http.StatusBadRequest, "csv_data must be an object or an array of objects")
	}
}

func (h *StockHandler) importBatch(w http.ResponseWriter, r *http.Request, items []any, fileName string) {
	rows := make([]stockimport.Row, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("csv_data[%d] is not an object", i))
			return
		}
		rows = append(rows, stockimport.RowFromJSON(obj))
	}

	res, err := h.svc.ImportBatch(r.Context(), rows, fileName, nil)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Success: true,
		Message: fmt.Sprintf("Procesados %d registros: %d insertados, %d actualizados, %d errores",
			res.TotalProcessed, res.Inserted, res.Updated, res.Errors),
		Summary: importSummary{
			TotalProcessed: res.TotalProcessed,
			Inserted:       res.Inserted,
			Updated:        res.Updated,
			Errors:         res.Errors,
		},
		ErrorDetails: res.ErrorDetails,
	})
}

func (h *StockHandler) importOne(w http.ResponseWriter, r *http.Request, obj map[string]any, fileName string) {
	res, err := h.svc.ImportRow(r.Context(), stockimport.RowFromJSON(obj), fileName)
	if err != nil {
		// Any row failure is a 500, as for batch rows.
		h.log.ErrorContext(r.Context(), "stock row import failed",
			slog.String("file", fileName),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary := importSummary{TotalProcessed: 1}
	message := "Registro insertado correctamente"
	if res.Action == stockimport.ActionUpdated {
		summary.Updated = 1
		message = "Registro actualizado correctamente"
	} else {
		summary.Inserted = 1
	}

	writeJSON(w, http.StatusOK, importResponse{
		Success:  true,
		Action:   string(res.Action),
		RecordID: res.ID.String(),
		Message:  message,
		Summary:  summary,
	})
}
