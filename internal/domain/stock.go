package domain

import (
	"time"

	"github.com/google/uuid"
)

// StockListing is one row of a dealer stock export (duc_scraper).
type StockListing struct {
	ID           uuid.UUID
	AdID         string
	LicensePlate string
	Brand        string
	Model        string
	Price        string
	Columns      map[string]string
	FileName     string
	ImportDate   time.Time
	LastSeenDate time.Time
}

// StockImportResult summarizes a bulk stock import.
type StockImportResult struct {
	TotalProcessed int
	Inserted       int
	Updated        int
	Errors         int
	ErrorDetails   []string
}
