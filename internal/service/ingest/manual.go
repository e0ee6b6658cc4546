package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/extract"
	"github.com/heartmarshall/cvo-backend/internal/normalize"
	"github.com/heartmarshall/cvo-backend/internal/reconcile"
)

// ManualInput is a user-reviewed extraction from the upload page.
type ManualInput struct {
	Fields     map[string]string
	RawText    string
	FileName   string
	Method     string
	Dealership string
}

func (i ManualInput) Validate() error {
	var errs domain.FieldErrors
	if len(i.Fields) == 0 {
		errs.Add("extractedFields", "required")
	} else if domain.NormalizePlate(i.Fields[extract.Plate]) == "" {
		errs.Add("extractedFields."+extract.Plate, "required")
	}
	if len(i.FileName) > 255 {
		errs.Add("fileName", "too long")
	}
	return errs.Err()
}

// ManualResult reports the stored extraction and the sale outcome.
type ManualResult struct {
	ExtractionID uuid.UUID
	Status       domain.ExtractionStatus
	Sale         SaleOutcome
	Dealership   domain.Dealership
}

// SaveManual stores a reviewed extraction and reconciles its sale. A known
// plate with the same buyer updates the stored sale instead of being skipped.
func (s *Service) SaveManual(ctx context.Context, in ManualInput) (*ManualResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	fields := extract.FromMap(trimValues(in.Fields))

	ext := extractionFromFields(fields, in.RawText, domain.SourceManual)
	ext.FileName = in.FileName
	ext.Method = in.Method
	if ext.Method == "" {
		ext.Method = "manual"
	}

	stored, err := s.extractions.Insert(ctx, ext)
	if err != nil {
		return nil, fmt.Errorf("ingest.SaveManual: save extraction: %w", err)
	}
	s.metrics.ExtractionStored(string(domain.SourceManual), ext.Status.String())

	s.logUnparsedDates(ctx, fields)
	adv := s.resolveAdvisor(ctx, fields.Get(extract.Advisor))
	sale := saleFromFields(fields, adv, normalize.DealershipFromSelection(in.Dealership))
	pdfID := stored.ID
	sale.PDFExtractionID = &pdfID

	out, err := s.storeSale(ctx, sale, reconcile.OriginManual)
	if err != nil {
		return nil, fmt.Errorf("ingest.SaveManual: %w", err)
	}
	s.recordOutcome(ctx, stored.ID, out)

	s.log.InfoContext(ctx, "manual extraction saved",
		slog.String("extraction_id", stored.ID.String()),
		slog.String("file", in.FileName),
		slog.String("dealership", sale.Dealership.String()),
	)

	return &ManualResult{
		ExtractionID: stored.ID,
		Status:       ext.Status,
		Sale:         out,
		Dealership:   sale.Dealership,
	}, nil
}

// Preview is the read-only extraction shown before a user saves an upload.
type Preview struct {
	Fields  extract.Fields
	Text    string
	Method  string
	Status  domain.ExtractionStatus
	Missing []string
}

// PreviewPDF extracts the order fields of an uploaded PDF without storing anything.
func (s *Service) PreviewPDF(ctx context.Context, data []byte) (*Preview, error) {
	if len(data) == 0 {
		return nil, domain.NewValidationError("file", "required")
	}
	text, err := extract.PDFText(data)
	if err != nil {
		s.log.WarnContext(ctx, "pdf preview failed", slog.String("error", err.Error()))
		return nil, domain.NewValidationError("file", err.Error())
	}
	fields := extract.FromText(text)
	return &Preview{
		Fields:  fields,
		Text:    text,
		Method:  "pdf-text",
		Status:  extract.Status(fields),
		Missing: fields.Missing(),
	}, nil
}

func trimValues(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
