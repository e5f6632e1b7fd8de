// runextract runs the extraction pipeline over a single image file and prints
// the result as JSON. Useful for smoke-testing collaborators without the HTTP
// server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/common"
	"github.com/verifeye/verifeye/internal/detector"
	"github.com/verifeye/verifeye/internal/llm"
	"github.com/verifeye/verifeye/internal/llm/ollama"
	"github.com/verifeye/verifeye/internal/ocr"
	"github.com/verifeye/verifeye/internal/pipeline"
	"github.com/verifeye/verifeye/internal/store"
)

func main() {
	var (
		filePath = flag.String("file", "", "image file to process")
		docType  = flag.String("type", "", "expected document type (AADHAAR|PAN|VOTER|DRIVING)")
		noSave   = flag.Bool("no-save", false, "skip the record-store save")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: runextract -file <image> [-type AADHAAR] [-no-save]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()

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

	var records pipeline.Saver
	if !*noSave {
		records = store.New(cfg.Store.DataDir, logger)
	}

	processor := pipeline.NewProcessor(logger, pipeline.Config{
		DOBPlaceholders: cfg.Pipeline.DOBPlaceholders,
	}, recognizer, extractor, scorer, records)

	expected, _ := constants.ParseDocumentType(*docType)
	result := processor.Process(context.Background(), *filePath, expected)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
	if !result.Success {
		os.Exit(1)
	}
}
