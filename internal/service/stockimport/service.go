// Package stockimport loads dealer stock exports into duc_scraper, keyed by
// the export's ad id.
package stockimport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

type stockRepo interface {
	Upsert(ctx context.Context, l *domain.StockListing) (uuid.UUID, bool, error)
	Insert(ctx context.Context, l *domain.StockListing) (uuid.UUID, error)
}

type recorder interface {
	StockRow(result string)
}

// Row is one export row keyed by column header.
type Row map[string]string

// Action is the write performed for a row.
type Action string

const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
)

// RowResult is the outcome of importing one row.
type RowResult struct {
	ID     uuid.UUID
	Action Action
}

// Service imports stock rows.
type Service struct {
	log     *slog.Logger
	repo    stockRepo
	metrics recorder
	now     func() time.Time
}

// NewService creates a stock import service. A nil metrics recorder disables metrics.
func NewService(logger *slog.Logger, repo stockRepo, metrics recorder) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{
		log:     logger.With("service", "stockimport"),
		repo:    repo,
		metrics: metrics,
		now:     time.Now,
	}
}

type nopRecorder struct{}

func (nopRecorder) StockRow(string) {}

// ImportRow stores a single row: upserted by ad id when it has one, inserted otherwise.
func (s *Service) ImportRow(ctx context.Context, row Row, fileName string) (RowResult, error) {
	res, op, err := s.write(ctx, listingFromRow(row, fileName, s.now()))
	if err != nil {
		return RowResult{}, fmt.Errorf("stockimport.ImportRow (%s): %w", op, err)
	}
	return res, nil
}

// ImportBatch imports rows in order. A failing row is recorded in the result
// and the batch goes on. progress, when set, is called after every row.
// The error is non-nil only when ctx ends before the batch does.
func (s *Service) ImportBatch(ctx context.Context, rows []Row, fileName string, progress func(done, total int)) (domain.StockImportResult, error) {
	res := domain.StockImportResult{TotalProcessed: len(rows)}
	now := s.now()

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("stockimport.ImportBatch: stopped at row %d: %w", i+1, err)
		}

		l := listingFromRow(row, fileName, now)
		out, op, err := s.write(ctx, l)
		switch {
		case err != nil:
			res.Errors++
			res.ErrorDetails = append(res.ErrorDetails, fmt.Sprintf("Registro %d (%s): %s", i+1, op, err.Error()))
			s.log.WarnContext(ctx, "stock row failed",
				slog.Int("row", i+1),
				slog.String("ad_id", l.AdID),
				slog.String("error", err.Error()),
			)
		case out.Action == ActionInserted:
			res.Inserted++
		default:
			res.Updated++
		}

		if progress != nil {
			progress(i+1, len(rows))
		}
	}

	s.log.InfoContext(ctx, "stock import finished",
		slog.String("file", fileName),
		slog.Int("total", res.TotalProcessed),
		slog.Int("inserted", res.Inserted),
		slog.Int("updated", res.Updated),
		slog.Int("errors", res.Errors),
	)
	return res, nil
}

// write returns the operation name ("insert" or "upsert") for error reports.
func (s *Service) write(ctx context.Context, l *domain.StockListing) (RowResult, string, error) {
	if l.AdID == "" {
		id, err := s.repo.Insert(ctx, l)
		if err != nil {
			s.metrics.StockRow("failed")
			return RowResult{}, "insert", err
		}
		s.metrics.StockRow(string(ActionInserted))
		return RowResult{ID: id, Action: ActionInserted}, "insert", nil
	}

	id, inserted, err := s.repo.Upsert(ctx, l)
	if err != nil {
		s.metrics.StockRow("failed")
		return RowResult{}, "upsert", err
	}
	action := ActionUpdated
	if inserted {
		action = ActionInserted
	}
	s.metrics.StockRow(string(action))
	return RowResult{ID: id, Action: action}, "upsert", nil
}

func listingFromRow(row Row, fileName string, now time.Time) *domain.StockListing {
	cols := make(map[string]string, len(row))
	for k, v := range row {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if v != "" && knownColumn[k] {
			cols[k] = v
		}
	}
	return &domain.StockListing{
		AdID:         cols["ID Anuncio"],
		LicensePlate: cols["Matrícula"],
		Brand:        cols["Marca"],
		Model:        cols["Modelo"],
		Price:        cols["Precio"],
		Columns:      cols,
		FileName:     fileName,
		ImportDate:   now,
		LastSeenDate: now,
	}
}

// RowFromJSON converts a decoded JSON object into a Row. Numbers keep their
// textual form, booleans become "true"/"false" and null becomes "".
func RowFromJSON(obj map[string]any) Row {
	row := make(Row, len(obj))
	for k, v := range obj {
		row[k] = cellString(v)
	}
	return row
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
