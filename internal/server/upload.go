package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/verifeye/verifeye/constants"
)

// handleUpload accepts a multipart image upload plus an optional expected
// document-type hint, runs the pipeline, and returns its result. Input
// rejection (wrong type, oversized) is a transport error; everything past
// that is a structured business payload.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// some slack over the ceiling for multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+64<<10)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Max %dMB.", s.cfg.MaxUploadBytes>>20))
			return
		}
		WriteError(w, http.StatusBadRequest, "No file selected")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		WriteError(w, http.StatusBadRequest, "No file selected")
		return
	}
	if !constants.IsAllowedContentType(header.Header.Get("Content-Type")) {
		WriteError(w, http.StatusBadRequest, "Invalid file type. Use JPG or PNG only.")
		return
	}

	// "null"/"undefined" arrive from the frontend when no type was chosen
	expected, _ := constants.ParseDocumentType(r.FormValue("doc_type"))

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.logger.Error("upload.dir.failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if ext == "" || !constants.IsAllowedExtension(ext) {
		ext = "png"
	}
	dst := filepath.Join(s.cfg.UploadDir, uuid.New().String()+"."+ext)

	out, err := os.Create(dst)
	if err != nil {
		s.logger.Error("upload.save.failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	// the temp file is removed on every exit path, success or failure
	defer os.Remove(dst)

	written, err := io.Copy(out, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.logger.Error("upload.save.failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	if written > s.cfg.MaxUploadBytes {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Max %dMB.", s.cfg.MaxUploadBytes>>20))
		return
	}

	result := s.processor.Process(r.Context(), dst, expected)
	WriteJSON(w, http.StatusOK, result)
}
