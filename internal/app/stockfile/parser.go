// Package stockfile reads dealer stock exports (.csv or .xlsx) into rows keyed
// by column header. No database dependencies.
package stockfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/cvo-backend/internal/service/stockimport"
)

// ErrUnsupported is returned for files that are neither CSV nor XLSX.
var ErrUnsupported = errors.New("unsupported file type")

const bom = "\uFEFF"

// Parse reads the export at path. sheet selects the XLSX sheet (first when
// empty); comma is the CSV delimiter.
func Parse(path, sheet string, comma rune) ([]stockimport.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return parseCSV(f, comma)
	case ".xlsx", ".xlsm":
		return parseXLSX(f, sheet)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
}

func parseCSV(r io.Reader, comma rune) ([]stockimport.Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return toRows(records), nil
}

func parseXLSX(r io.Reader, sheet string) ([]stockimport.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toRows(records), nil
}

// toRows maps records onto the header row. Blank rows are dropped and
// cells beyond the header are ignored.
func toRows(records [][]string) []stockimport.Row {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]stockimport.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(stockimport.Row, len(header))
		blank := true
		for i, cell := range rec {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				blank = false
			}
			row[header[i]] = cell
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows
}
