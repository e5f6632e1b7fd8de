package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/verifeye/verifeye/internal/common"
	"github.com/verifeye/verifeye/internal/detector"
	"github.com/verifeye/verifeye/internal/export"
	"github.com/verifeye/verifeye/internal/llm"
	"github.com/verifeye/verifeye/internal/llm/ollama"
	"github.com/verifeye/verifeye/internal/ocr"
	"github.com/verifeye/verifeye/internal/pipeline"
	"github.com/verifeye/verifeye/internal/server"
	"github.com/verifeye/verifeye/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	recognizer := ocr.NewExtractor(ocr.Config{
		Tesseract:           cfg.OCR.Tesseract,
		TesseractLang:       cfg.OCR.TesseractLang,
		TessdataDir:         cfg.OCR.TessdataDir,
		EnableTSVConfidence: cfg.OCR.EnableTSVConfidence,
		MaxImageEdge:        cfg.OCR.MaxImageEdge,
		ArtifactCacheDir:    cfg.OCR.ArtifactCacheDir,
	}, logger)

	extractor := llm.Disabled()
	if cfg.LLM.Enabled {
		extractor = ollama.NewClient(ollama.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, logger)
	}

	scorer := detector.NewScorer(detector.Config{
		Binary:   cfg.Detector.Binary,
		ModelDir: cfg.Detector.ModelDir,
		Timeout:  cfg.Detector.Timeout,
	}, logger)

	records := store.New(cfg.Store.DataDir, logger)

	processor := pipeline.NewProcessor(logger, pipeline.Config{
		DOBPlaceholders: cfg.Pipeline.DOBPlaceholders,
	}, recognizer, extractor, scorer, records)

	exporter := export.NewService(records, logger)

	_, lookErr := exec.LookPath(cfg.OCR.Tesseract)
	srv := server.New(cfg.Server, processor, records, exporter, server.Health{
		OCRAvailable:   lookErr == nil,
		LLMEnabled:     cfg.LLM.Enabled,
		DetectorModels: scorer.AvailableModels(),
	}, logger)

	httpSrv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
