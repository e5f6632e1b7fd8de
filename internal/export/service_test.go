package export

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/store"
)

type fakeLister struct {
	records []store.Record
	err     error
}

func (f *fakeLister) List(docType constants.DocumentType) ([]store.Record, error) {
	return f.records, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func TestRecordsXLSX(t *testing.T) {
	lister := &fakeLister{records: []store.Record{
		{
			constants.FieldName:       "Asha Rao",
			constants.FieldIDNumber:   "1234 5678 9012",
			constants.FieldConfidence: "93.5%",
		},
		{
			constants.FieldName:    "Ravi Rao",
			constants.FieldAddress: "12 MG Road, Pune",
		},
	}}
	s := NewService(lister, quietLogger())

	b, err := s.RecordsXLSX(constants.Aadhaar)
	if err != nil {
		t.Fatalf("RecordsXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheet := string(constants.Aadhaar)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%q): %v", sheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header + 2 records", len(rows))
	}

	header := rows[0]
	if header[0] != constants.FieldName {
		t.Errorf("header[0] = %q, want %q", header[0], constants.FieldName)
	}
	if header[len(header)-1] != constants.FieldConfidence {
		t.Errorf("last header = %q, want %q", header[len(header)-1], constants.FieldConfidence)
	}

	if rows[1][0] != "Asha Rao" {
		t.Errorf("rows[1][0] = %q", rows[1][0])
	}
	if rows[2][0] != "Ravi Rao" {
		t.Errorf("rows[2][0] = %q", rows[2][0])
	}
}

func TestRecordsXLSXEmptyCollection(t *testing.T) {
	s := NewService(&fakeLister{}, quietLogger())

	b, err := s.RecordsXLSX(constants.PAN)
	if err != nil {
		t.Fatalf("RecordsXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(string(constants.PAN))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want header only", len(rows))
	}
}
