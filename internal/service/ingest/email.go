package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/extract"
	"github.com/heartmarshall/cvo-backend/internal/reconcile"
)

// orderMarker identifies the order form among several PDF attachments.
const orderMarker = "COMANDA"

// Attachment is a decoded e-mail attachment.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (a Attachment) isPDF() bool {
	return strings.Contains(strings.ToLower(a.ContentType), "pdf") ||
		strings.HasSuffix(strings.ToLower(a.Filename), ".pdf")
}

// EmailInput is one inbound e-mail delivery.
type EmailInput struct {
	From        string
	To          []string
	Subject     string
	Plain       string
	HTML        string
	Headers     json.RawMessage
	Envelope    json.RawMessage
	Attachments []Attachment
}

func (i EmailInput) Validate() error {
	var errs domain.FieldErrors
	if strings.TrimSpace(i.From) == "" {
		errs.Add("envelope.from", "required")
	}
	if len(i.To) == 0 {
		errs.Add("envelope.to", "required")
	}
	return errs.Err()
}

// EmailResult reports how an e-mail was processed.
type EmailResult struct {
	EmailID      *uuid.UUID
	ExtractionID *uuid.UUID
	Source       domain.ExtractionSource
	Status       domain.ExtractionStatus
	Sale         *SaleOutcome
	Message      string
}

// ProcessEmail stores the e-mail, extracts order fields from the order PDF
// (or the body when there is none or it yields nothing) and reconciles the
// sale when a plate was found. Redelivered orders end as duplicates.
//
// Storing and marking the e-mail are best effort; the e-mail is marked
// processed even when a later step fails.
func (s *Service) ProcessEmail(ctx context.Context, in EmailInput) (*EmailResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	res := &EmailResult{}

	if stored := s.saveEmail(ctx, in); stored != nil {
		res.EmailID = &stored.ID
		defer s.markProcessed(ctx, stored.ID)
	}

	fields, rawText, source, fileName := s.extractEmail(ctx, in)
	res.Source = source
	res.Status = extract.Status(fields)

	if res.Status == domain.ExtractionFailed {
		res.Message = "no order data found"
		s.log.InfoContext(ctx, "email without order data", slog.String("subject", in.Subject))
		return res, nil
	}

	ext := extractionFromFields(fields, rawText, source)
	ext.ReceivedEmailID = res.EmailID
	ext.FileName = fileName
	ext.Subject = in.Subject
	ext.Method = "webhook"

	stored, err := s.extractions.Insert(ctx, ext)
	if err != nil {
		return nil, fmt.Errorf("ingest.ProcessEmail: save extraction: %w", err)
	}
	res.ExtractionID = &stored.ID
	s.metrics.ExtractionStored(string(source), res.Status.String())

	if ext.Plate == "" {
		res.Message = "extraction saved without plate"
		return res, nil
	}

	s.logUnparsedDates(ctx, fields)
	adv := s.resolveAdvisor(ctx, fields.Get(extract.Advisor))
	sale := saleFromFields(fields, adv, domain.DealershipNone)
	pdfID := stored.ID
	sale.PDFExtractionID = &pdfID

	out, err := s.storeSale(ctx, sale, reconcile.OriginAutomated)
	if err != nil {
		return nil, fmt.Errorf("ingest.ProcessEmail: %w", err)
	}
	s.recordOutcome(ctx, stored.ID, out)

	res.Sale = &out
	res.Message = "sale " + out.Action.String()
	return res, nil
}

// extractEmail prefers the order PDF and falls back to the body.
func (s *Service) extractEmail(ctx context.Context, in EmailInput) (extract.Fields, string, domain.ExtractionSource, string) {
	if pdf, ok := pickPDF(in.Attachments); ok {
		text, err := extract.PDFText(pdf.Content)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "pdf text extraction failed",
				slog.String("file", pdf.Filename),
				slog.String("error", err.Error()),
			)
		default:
			fields := extract.FromText(text)
			if len(fields.Found()) > 0 {
				return fields, text, domain.SourcePDF, pdf.Filename
			}
		}
	}

	body := in.Plain
	if strings.TrimSpace(body) == "" && in.HTML != "" {
		text, err := extract.HTMLText(in.HTML)
		if err != nil {
			s.log.WarnContext(ctx, "html body conversion failed", slog.String("error", err.Error()))
		}
		body = text
	}
	return extract.FromText(body), body, domain.SourceEmailBody, ""
}

// pickPDF returns the attachment named like an order form, else the first PDF.
func pickPDF(atts []Attachment) (Attachment, bool) {
	var first *Attachment
	for i := range atts {
		if !atts[i].isPDF() || len(atts[i].Content) == 0 {
			continue
		}
		if strings.Contains(strings.ToUpper(atts[i].Filename), orderMarker) {
			return atts[i], true
		}
		if first == nil {
			first = &atts[i]
		}
	}
	if first == nil {
		return Attachment{}, false
	}
	return *first, true
}

func (s *Service) saveEmail(ctx context.Context, in EmailInput) *domain.ReceivedEmail {
	meta := make([]domain.AttachmentMeta, 0, len(in.Attachments))
	for _, a := range in.Attachments {
		meta = append(meta, domain.AttachmentMeta{Filename: a.Filename, ContentType: a.ContentType, Size: len(a.Content)})
	}

	stored, err := s.emails.Insert(ctx, &domain.ReceivedEmail{
		From:        in.From,
		To:          in.To,
		Subject:     in.Subject,
		PlainBody:   in.Plain,
		HTMLBody:    in.HTML,
		Headers:     in.Headers,
		Envelope:    in.Envelope,
		Attachments: meta,
	})
	if err != nil {
		s.log.WarnContext(ctx, "save received email failed", slog.String("error", err.Error()))
		return nil
	}
	s.metrics.EmailStored()
	return stored
}

func (s *Service) markProcessed(ctx context.Context, id uuid.UUID) {
	// The request may already be cancelled; marking must still happen.
	ctx = context.WithoutCancel(ctx)
	if err := s.emails.MarkProcessed(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.WarnContext(ctx, "mark email processed failed",
			slog.String("email_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}
