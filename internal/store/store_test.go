package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/verifeye/verifeye/constants"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestUpsertCreates(t *testing.T) {
	s := newTestStore(t)

	outcome, err := s.Upsert(constants.Aadhaar, Record{
		constants.FieldName:     "Asha Rao",
		constants.FieldIDNumber: "1234 5678 9012",
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != Created {
		t.Errorf("outcome = %v, want %v", outcome, Created)
	}

	records, err := s.List(constants.Aadhaar)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0][constants.FieldName] != "Asha Rao" {
		t.Errorf("record = %v", records[0])
	}
}

func TestUpsertMergesByIDPreservingFields(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Upsert(constants.Aadhaar, Record{
		constants.FieldName:     "Asha Rao",
		constants.FieldDOB:      "15/06/1992",
		constants.FieldIDNumber: "1234 5678 9012",
	}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	// back side of the same card: address only, no name or DOB
	outcome, err := s.Upsert(constants.Aadhaar, Record{
		constants.FieldIDNumber: "1234 5678 9012",
		constants.FieldAddress:  "12 MG Road, Pune",
	})
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if outcome != Merged {
		t.Errorf("outcome = %v, want %v", outcome, Merged)
	}

	records, _ := s.List(constants.Aadhaar)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]
	if rec[constants.FieldName] != "Asha Rao" || rec[constants.FieldDOB] != "15/06/1992" {
		t.Errorf("merge lost existing fields: %v", rec)
	}
	if rec[constants.FieldAddress] != "12 MG Road, Pune" {
		t.Errorf("merge missing new field: %v", rec)
	}
}

func TestUpsertDifferentIDsAppend(t *testing.T) {
	s := newTestStore(t)

	s.Upsert(constants.PAN, Record{constants.FieldIDNumber: "ABCDE1234F"})
	outcome, err := s.Upsert(constants.PAN, Record{constants.FieldIDNumber: "VWXYZ9876K"})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != Created {
		t.Errorf("outcome = %v, want %v", outcome, Created)
	}
	records, _ := s.List(constants.PAN)
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestUpsertWithoutIDDeduplicatesExact(t *testing.T) {
	s := newTestStore(t)
	rec := Record{constants.FieldName: "Asha Rao", constants.FieldDOB: "15/06/1992"}

	s.Upsert(constants.Voter, rec)
	outcome, err := s.Upsert(constants.Voter, Record{constants.FieldName: "Asha Rao", constants.FieldDOB: "15/06/1992"})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != Merged {
		t.Errorf("outcome = %v, want %v (exact duplicate)", outcome, Merged)
	}

	outcome, _ = s.Upsert(constants.Voter, Record{constants.FieldName: "Ravi Rao"})
	if outcome != Created {
		t.Errorf("outcome = %v, want %v (different record)", outcome, Created)
	}
	records, _ := s.List(constants.Voter)
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestUpsertRejectsEmptyRecord(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Upsert(constants.Aadhaar, Record{}); err == nil {
		t.Error("Upsert(empty) error = nil, want error")
	}
}

func TestLoadToleratesBareObject(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	legacy := map[string]string{constants.FieldName: "Asha Rao"}
	b, _ := json.Marshal(legacy)
	if err := os.WriteFile(filepath.Join(dir, "PAN.json"), b, 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := s.List(constants.PAN)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || records[0][constants.FieldName] != "Asha Rao" {
		t.Errorf("records = %v, want the bare object wrapped", records)
	}
}

func TestLoadResetsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	if err := os.WriteFile(filepath.Join(dir, "AADHAAR.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcome, err := s.Upsert(constants.Aadhaar, Record{constants.FieldName: "Asha Rao"})
	if err != nil {
		t.Fatalf("Upsert() after corruption error = %v", err)
	}
	if outcome != Created {
		t.Errorf("outcome = %v, want %v", outcome, Created)
	}
	records, _ := s.List(constants.Aadhaar)
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1 (corrupt file reset)", len(records))
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	s.Upsert(constants.Aadhaar, Record{constants.FieldIDNumber: "1234 5678 9012", constants.FieldName: "Asha Rao"})

	records, _ := s.List(constants.Aadhaar)
	records[0][constants.FieldName] = "tampered"

	again, _ := s.List(constants.Aadhaar)
	if again[0][constants.FieldName] != "Asha Rao" {
		t.Errorf("List() exposed shared state: %v", again[0])
	}
}
