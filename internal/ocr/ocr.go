package ocr

import (
	"context"
	"log/slog"
	"time"

	"github.com/verifeye/verifeye/internal/common"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string

	EnableTSVConfidence bool
	PSM                 int // e.g., 6 is good for uniform block of text
	OEM                 int // 1 = LSTM; leave 0 to use default

	// MaxImageEdge bounds the longest image edge before OCR; larger uploads
	// are downscaled into ArtifactCacheDir first. 0 disables the pre-step.
	MaxImageEdge     int
	ArtifactCacheDir string
}

// Result is one recognition outcome: the single-space-joined raw text plus
// diagnostics.
type Result struct {
	Text       string
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner common.Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.ArtifactCacheDir == "" {
		cfg.ArtifactCacheDir = "./tmp"
	}
	return &Extractor{cfg: cfg, runner: common.ExecRunner{}, logger: logger}
}

// NewExtractorWithRunner is the test seam.
func NewExtractorWithRunner(cfg Config, runner common.Runner, logger *slog.Logger) *Extractor {
	e := NewExtractor(cfg, logger)
	e.runner = runner
	return e
}

// Recognize runs OCR over one image. Oversized images are downscaled first;
// preprocessing failures are warnings, not errors, since the original photo
// may still recognize fine.
func (e *Extractor) Recognize(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	e.logger.Debug("ocr.recognize.start", "path", path)

	workPath := path
	var warns []string
	if e.cfg.MaxImageEdge > 0 {
		scaled, cleanup, err := downscale(path, e.cfg.MaxImageEdge, e.cfg.ArtifactCacheDir)
		switch {
		case err != nil:
			warns = append(warns, "downscale: "+err.Error())
		case scaled != "":
			defer cleanup()
			workPath = scaled
		}
	}

	txt, warn, err := e.tesseractOCR(ctx, workPath)
	warns = append(warns, warn...)
	if err != nil {
		return Result{Warnings: warns, Duration: time.Since(start)}, err
	}
	txt = CollapseText(txt)

	var ocrConf float32
	if e.cfg.EnableTSVConfidence {
		if c, w, err2 := e.tesseractTSVConfidence(ctx, workPath); err2 == nil {
			ocrConf = c
			warns = append(warns, w...)
		} else {
			warns = append(warns, err2.Error())
		}
	}
	heurConf := heuristicConfidence(txt)

	// blend: weight tesseract's own estimate higher when present
	conf := heurConf
	if ocrConf > 0 {
		conf = 0.7*ocrConf + 0.3*heurConf
	}
	if conf > 1.0 {
		conf = 1.0
	}

	return Result{
		Text:       txt,
		Language:   e.cfg.TesseractLang,
		Duration:   time.Since(start),
		Warnings:   warns,
		Confidence: conf,
	}, nil
}
