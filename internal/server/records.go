package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/store"
)

// handleSave persists a field mapping into a document type's collection.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data    map[string]string `json:"data"`
		DocType string            `json:"doc_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(payload.Data) == 0 {
		WriteError(w, http.StatusBadRequest, "No data provided")
		return
	}
	docType, ok := constants.ParseDocumentType(payload.DocType)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Unknown document type")
		return
	}

	outcome, err := s.records.Upsert(docType, store.Record(payload.Data))
	if err != nil {
		s.logger.Error("save.upsert.failed", "doc_type", docType, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	action := "saved"
	if outcome == store.Merged {
		action = "updated"
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Data %s successfully", action),
	})
}

// handleListRecords returns the full collection for one document type.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	docType, ok := constants.ParseDocumentType(r.PathValue("type"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Unknown document type")
		return
	}
	records, err := s.records.List(docType)
	if err != nil {
		s.logger.Error("records.list.failed", "doc_type", docType, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list records")
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"doc_type": docType,
		"records":  records,
		"count":    len(records),
	})
}

// handleExportRecords streams one document type's collection as XLSX.
func (s *Server) handleExportRecords(w http.ResponseWriter, r *http.Request) {
	docType, ok := constants.ParseDocumentType(r.PathValue("type"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Unknown document type")
		return
	}
	b, err := s.exporter.RecordsXLSX(docType)
	if err != nil {
		s.logger.Error("records.export.failed", "doc_type", docType, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to export records")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-records.xlsx", docType))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
