// Package pipeline sequences one extraction run: OCR, classification, the
// mismatch gate, lexical + semantic extraction, merge, normalization, optional
// detection scoring, and the record-store save.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/classify"
	"github.com/verifeye/verifeye/internal/common"
	"github.com/verifeye/verifeye/internal/detector"
	"github.com/verifeye/verifeye/internal/docfields"
	"github.com/verifeye/verifeye/internal/llm"
	"github.com/verifeye/verifeye/internal/ocr"
	"github.com/verifeye/verifeye/internal/store"
)

// TextRecognizer is the OCR collaborator boundary.
type TextRecognizer interface {
	Recognize(ctx context.Context, path string) (ocr.Result, error)
}

// Saver is the record-store boundary.
type Saver interface {
	Upsert(docType constants.DocumentType, rec store.Record) (store.Outcome, error)
}

// Config holds pipeline tuning knobs.
type Config struct {
	// DOBPlaceholders marks DOB values from a known misread pattern; treated
	// as configuration, not magic (default "1008").
	DOBPlaceholders []string

	// Now is the clock seam for the DRIVING DOB/Validity disambiguation.
	Now func() time.Time
}

type Processor struct {
	logger    *slog.Logger
	cfg       Config
	ocr       TextRecognizer
	extractor llm.FieldExtractor
	scorer    detector.ConfidenceScorer
	records   Saver
}

func NewProcessor(logger *slog.Logger, cfg Config, rec TextRecognizer, extractor llm.FieldExtractor, scorer detector.ConfidenceScorer, records Saver) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.DOBPlaceholders) == 0 {
		cfg.DOBPlaceholders = []string{"1008"}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if extractor == nil {
		extractor = llm.Disabled()
	}
	return &Processor{
		logger:    logger,
		cfg:       cfg,
		ocr:       rec,
		extractor: extractor,
		scorer:    scorer,
		records:   records,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]string      `json:"data"`
	DocType constants.DocumentType `json:"doc_type,omitempty"`
	IsBack  bool                   `json:"is_back"`
	RawText string                 `json:"raw_text,omitempty"`
	Error   string                 `json:"error,omitempty"`

	// Failure classifies unsuccessful runs for logs and tests; it is not part
	// of the response payload.
	Failure common.FailureKind `json:"-"`
}

// Process runs the pipeline over one uploaded image. expected is the caller's
// document-type hint; Unknown means no hint. The mismatch gate runs strictly
// before any extraction so a wrong document never pays for a semantic call.
func (p *Processor) Process(ctx context.Context, imagePath string, expected constants.DocumentType) Result {
	rid := uuid.New().String()
	start := time.Now()

	ocrRes, err := p.ocr.Recognize(ctx, imagePath)
	if err != nil || strings.TrimSpace(ocrRes.Text) == "" {
		p.logger.Error("pipeline.ocr.failed", "req_id", rid, "error", err, "warnings", ocrRes.Warnings)
		return Result{
			Success: false,
			Data:    map[string]string{},
			Error:   "Could not extract text from this image. Please try a clearer photo.",
			Failure: common.FailureRecognition,
		}
	}
	rawText := ocrRes.Text

	docType := classify.DetectType(rawText)
	isBack := classify.IsBackSide(rawText)
	p.logger.Info("pipeline.classify.ok",
		"req_id", rid,
		"doc_type", docType,
		"is_back", isBack,
		"ocr_confidence", ocrRes.Confidence,
		"text_len", len(rawText),
	)

	if expected != constants.Unknown && docType != constants.Unknown && docType != expected {
		p.logger.Warn("pipeline.mismatch", "req_id", rid, "expected", expected, "detected", docType)
		return Result{
			Success: false,
			Data:    map[string]string{},
			DocType: docType,
			IsBack:  isBack,
			Error:   "Document mismatch detected!",
			Failure: common.FailureMismatch,
		}
	}

	pattern := docfields.ExtractPattern(rawText, docType)

	// The semantic extractor and the detection scorer are independent of each
	// other; run both at once. Either failing degrades to "no contribution".
	semantic := docfields.FieldMap{}
	var percent float32
	var scored bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fields, _, err := p.extractor.ExtractFields(gctx, llm.ExtractRequest{
			RawText: rawText,
			DocType: docType,
			IsBack:  isBack,
		})
		if err != nil {
			p.logger.Warn("pipeline.semantic.degraded", "req_id", rid, "error", err)
			return nil
		}
		semantic = fields
		return nil
	})
	if p.scorer != nil && p.scorer.Available(docType) {
		g.Go(func() error {
			pc, ok, err := p.scorer.Score(gctx, imagePath, docType)
			if err != nil {
				if errors.Is(err, detector.ErrSkipped) {
					p.logger.Info("pipeline.score.skipped", "req_id", rid, "doc_type", docType)
				} else {
					p.logger.Warn("pipeline.score.degraded", "req_id", rid, "error", err)
				}
				return nil
			}
			percent, scored = pc, ok
			return nil
		})
	}
	_ = g.Wait()

	merged := docfields.Merge(pattern, semantic, rawText, p.cfg.DOBPlaceholders)
	clean := docfields.Normalize(merged, docType, isBack, p.cfg.Now().Year())

	if !hasAnyValue(clean) {
		p.logger.Warn("pipeline.empty_result", "req_id", rid, "doc_type", docType)
		return Result{
			Success: false,
			Data:    map[string]string{},
			DocType: docType,
			IsBack:  isBack,
			Error:   "No details could be extracted from this image. Please try a clearer image or another document.",
			Failure: common.FailureEmptyResult,
		}
	}

	data := map[string]string(clean)
	if scored {
		data[constants.FieldConfidence] = fmt.Sprintf("%.1f%%", percent)
	}

	if p.records != nil && docType != constants.Unknown {
		if outcome, err := p.records.Upsert(docType, store.Record(data)); err != nil {
			// a failed save degrades the persistence side effect, not the response
			p.logger.Error("pipeline.save.failed", "req_id", rid, "doc_type", docType, "error", err)
		} else {
			p.logger.Info("pipeline.save.ok", "req_id", rid, "doc_type", docType, "outcome", outcome)
		}
	}

	p.logger.Info("pipeline.ok",
		"req_id", rid,
		"doc_type", docType,
		"is_back", isBack,
		"fields", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Success: true,
		Data:    data,
		DocType: docType,
		IsBack:  isBack,
		RawText: rawText,
	}
}

func hasAnyValue(m docfields.Clean) bool {
	for _, v := range m {
		if v != "" {
			return true
		}
	}
	return false
}
