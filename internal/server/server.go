// Package server exposes the HTTP surface: upload, save, records, export,
// health, and the static frontend.
package server

import (
	"log/slog"
	"net/http"

	"github.com/verifeye/verifeye/internal/common"
	"github.com/verifeye/verifeye/internal/export"
	"github.com/verifeye/verifeye/internal/pipeline"
	"github.com/verifeye/verifeye/internal/store"
)

// Health describes collaborator availability for the health endpoint.
type Health struct {
	OCRAvailable   bool
	LLMEnabled     bool
	DetectorModels int
}

type Server struct {
	cfg       common.ServerConfig
	processor *pipeline.Processor
	records   *store.Store
	exporter  *export.Service
	health    Health
	logger    *slog.Logger
}

func New(cfg common.ServerConfig, processor *pipeline.Processor, records *store.Store, exporter *export.Service, health Health, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		processor: processor,
		records:   records,
		exporter:  exporter,
		health:    health,
		logger:    logger,
	}
}

// Handler wires the routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/save", s.handleSave)
	mux.HandleFunc("GET /api/records/{type}", s.handleListRecords)
	mux.HandleFunc("GET /api/records/{type}/export", s.handleExportRecords)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return withLogging(s.logger, withCORS(withCacheControl(mux)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"ocr_available":   s.health.OCRAvailable,
		"llm_enabled":     s.health.LLMEnabled,
		"detector_models": s.health.DetectorModels,
	})
}
