// Package store persists one JSON record collection per document type. The
// whole file is the unit of persistence: every upsert loads, mutates, and
// rewrites the collection under a per-type lock.
package store

import (
	"encoding/json"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/common"
)

// Record is one persisted, normalized extraction result.
type Record map[string]string

// Outcome reports what an upsert did to the collection.
type Outcome string

const (
	Created Outcome = "created"
	Merged  Outcome = "merged"
)

type Store struct {
	dataDir string
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[constants.DocumentType]*sync.Mutex
}

func New(dataDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dataDir: dataDir,
		logger:  logger,
		locks:   make(map[constants.DocumentType]*sync.Mutex),
	}
}

// lock returns the mutex guarding docType's load-merge-save cycle. Concurrent
// uploads of the same document type are an expected scenario.
func (s *Store) lock(docType constants.DocumentType) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[docType]
	if !ok {
		l = &sync.Mutex{}
		s.locks[docType] = l
	}
	return l
}

func (s *Store) path(docType constants.DocumentType) string {
	return filepath.Join(s.dataDir, strings.ToUpper(string(docType))+".json")
}

// Upsert merges rec into the collection for docType. Records are keyed by
// ID Number when present: an existing record with the same ID Number absorbs
// the new fields (fields absent from rec are preserved). Without an ID Number
// only an exact duplicate counts as already stored.
func (s *Store) Upsert(docType constants.DocumentType, rec Record) (Outcome, error) {
	if len(rec) == 0 {
		return "", common.NewAppError("STORE_EMPTY_RECORD", "no fields to save", common.ErrInvalidInput)
	}

	l := s.lock(docType)
	l.Lock()
	defer l.Unlock()

	records := s.load(docType)

	outcome := Created
	if id := rec[constants.FieldIDNumber]; id != "" {
		for i := range records {
			if records[i][constants.FieldIDNumber] == id {
				for k, v := range rec {
					records[i][k] = v
				}
				outcome = Merged
				break
			}
		}
	} else {
		for _, existing := range records {
			if maps.Equal(existing, rec) {
				outcome = Merged // already stored, don't append a duplicate
				break
			}
		}
	}
	if outcome == Created {
		records = append(records, rec)
	}

	if err := s.save(docType, records); err != nil {
		return "", err
	}

	s.logger.Info("store.upsert.ok",
		"doc_type", docType,
		"outcome", outcome,
		"records", len(records),
	)
	return outcome, nil
}

// List returns a copy of the collection for docType.
func (s *Store) List(docType constants.DocumentType) ([]Record, error) {
	l := s.lock(docType)
	l.Lock()
	defer l.Unlock()

	records := s.load(docType)
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = maps.Clone(r)
	}
	return out, nil
}

// load reads the collection for docType. A missing, unreadable or corrupt
// file resets the collection to empty; corruption is logged, not surfaced.
func (s *Store) load(docType constants.DocumentType) []Record {
	b, err := os.ReadFile(s.path(docType))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("store.load.unreadable", "doc_type", docType, "error", err)
		}
		return nil
	}

	var records []Record
	if err := json.Unmarshal(b, &records); err == nil {
		return records
	}
	// tolerate a single bare record object
	var one Record
	if err := json.Unmarshal(b, &one); err == nil {
		return []Record{one}
	}

	s.logger.Warn("store.load.corrupt", "doc_type", docType, "path", s.path(docType))
	return nil
}

func (s *Store) save(docType constants.DocumentType, records []Record) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return common.WrapError(err, "create data dir")
	}
	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return common.WrapError(err, "encode records")
	}
	if err := os.WriteFile(s.path(docType), b, 0o644); err != nil {
		return common.WrapError(err, "write records")
	}
	return nil
}
