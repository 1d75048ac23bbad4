// Package export renders the file-backed catalog into spreadsheet form.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vizitka/card-scanner/internal/store"
)

var exportHeaders = []string{"Name", "Phones", "Email", "Address", "Description", "File"}

// Service is a tiny façade over the catalog that produces XLSX or CSV bytes.
// Unreadable catalog entries are skipped with a warning rather than aborting
// the whole export.
type Service struct {
	catalog *store.FileStore
	logger  *slog.Logger
}

func NewService(catalog *store.FileStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: catalog, logger: logger}
}

// ExportXLSX returns an XLSX workbook (as bytes) with one row per readable
// catalog record.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Contacts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 28) // name
	_ = f.SetColWidth(sheet, "B", "B", 32) // phones
	_ = f.SetColWidth(sheet, "C", "C", 26) // email
	_ = f.SetColWidth(sheet, "D", "D", 40) // address
	_ = f.SetColWidth(sheet, "E", "E", 48) // description
	_ = f.SetColWidth(sheet, "F", "F", 30) // source file

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ExportCSV returns the same rows as UTF-8 CSV.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	s.logger.Info("export.csv.ok", "rows", len(rows))
	return buf.Bytes(), nil
}

func (s *Service) rows(ctx context.Context) ([][]string, error) {
	entries, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	var rows [][]string
	for _, e := range entries {
		if e.Unreadable {
			s.logger.Warn("export.skip_unreadable", "id", e.ID)
			continue
		}
		rec, err := s.catalog.Load(ctx, e.ID)
		if err != nil {
			s.logger.Warn("export.skip_unloadable", "id", e.ID, "error", err)
			continue
		}
		rows = append(rows, []string{
			rec.Name,
			strings.Join(rec.Phones, ", "),
			rec.Email,
			rec.Address,
			rec.Description,
			e.ID,
		})
	}
	return rows, nil
}
