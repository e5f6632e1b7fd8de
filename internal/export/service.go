package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/store"
)

// Lister is the slice of the record store the exporter needs.
type Lister interface {
	List(docType constants.DocumentType) ([]store.Record, error)
}

// Service is a tiny façade over the record store that produces XLSX bytes.
type Service struct {
	records Lister
	logger  *slog.Logger
}

func NewService(records Lister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

// RecordsXLSX returns an XLSX workbook (as bytes) for one document type's
// collection: one column per vocabulary field plus the confidence annotation.
func (s *Service) RecordsXLSX(docType constants.DocumentType) ([]byte, error) {
	start := time.Now()

	recs, err := s.records.List(docType)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	f := excelize.NewFile()
	sheet := string(docType)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := make([]string, 0, len(constants.FieldVocabulary)+1)
	headers = append(headers, constants.FieldVocabulary...)
	headers = append(headers, constants.FieldConfidence)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		for i, h := range headers {
			if v, ok := r[h]; ok && v != "" {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
		row++
	}

	// Widen the text-heavy columns
	_ = f.SetColWidth(sheet, "A", "B", 24) // names
	_ = f.SetColWidth(sheet, "E", "F", 20) // id/vid
	_ = f.SetColWidth(sheet, "G", "G", 48) // address

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"doc_type", docType,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
