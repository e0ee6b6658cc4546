package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExtractionStatus summarizes how much of a document was recovered.
type ExtractionStatus string

const (
	ExtractionSuccess ExtractionStatus = "success"
	ExtractionPartial ExtractionStatus = "partial"
	ExtractionFailed  ExtractionStatus = "failed"
)

func (s ExtractionStatus) String() string { return string(s) }

// Rank orders statuses so that a better extraction can replace a worse one.
func (s ExtractionStatus) Rank() int {
	switch s {
	case ExtractionSuccess:
		return 2
	case ExtractionPartial:
		return 1
	}
	return 0
}

// ExtractionSource names where the text came from.
type ExtractionSource string

const (
	SourcePDF       ExtractionSource = "pdf"
	SourceEmailBody ExtractionSource = "email_body"
	SourceManual    ExtractionSource = "manual"
)

// Extraction is the audit row of one extraction attempt (pdf_extracted_data).
type Extraction struct {
	ID              uuid.UUID
	ReceivedEmailID *uuid.UUID
	Source          ExtractionSource
	Method          string
	FileName        string
	Subject         string
	Fields          map[string]string
	RawText         string

	// Searchable copies of the main fields.
	OrderNumber string
	Plate       string
	ClientName  string
	DocumentID  string
	Total       decimal.NullDecimal
	Discount    decimal.NullDecimal

	Status    ExtractionStatus
	Errors    []string
	Outcome   string // reconciliation result recorded after the sale write
	SaleID    *uuid.UUID
	CreatedAt time.Time
}

// ReceivedEmail is an inbound webhook delivery (received_emails).
type ReceivedEmail struct {
	ID          uuid.UUID
	From        string
	To          []string
	Subject     string
	PlainBody   string
	HTMLBody    string
	Headers     json.RawMessage
	Envelope    json.RawMessage
	Attachments []AttachmentMeta
	Processed   bool
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

// AttachmentMeta describes an attachment without its payload.
type AttachmentMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}
