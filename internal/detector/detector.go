// Package detector wraps the object-detection model used for a secondary
// match-confidence score. The model runs as an external CLI over per-type
// weight files; it is loaded per call and released immediately afterward, so
// resident-vs-lazy stays a deployment decision outside the pipeline contract.
package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/common"
)

// ErrSkipped signals that the detector declined to score (resource pressure).
// The pipeline treats it like "no contribution".
var ErrSkipped = errors.New("detector: scoring skipped")

// ConfidenceScorer produces a secondary match confidence for a detected
// document type. ok=false means the scorer had nothing to contribute.
type ConfidenceScorer interface {
	Available(docType constants.DocumentType) bool
	Score(ctx context.Context, imagePath string, docType constants.DocumentType) (percent float32, ok bool, err error)
}

type Config struct {
	Binary   string // detection CLI; empty disables the scorer
	ModelDir string // per-type weight files: <dir>/<type>.pt
	Timeout  time.Duration
}

type Scorer struct {
	cfg    Config
	runner common.Runner
	logger *slog.Logger
}

func NewScorer(cfg Config, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Scorer{cfg: cfg, runner: common.ExecRunner{}, logger: logger}
}

// NewScorerWithRunner is the test seam.
func NewScorerWithRunner(cfg Config, runner common.Runner, logger *slog.Logger) *Scorer {
	s := NewScorer(cfg, logger)
	s.runner = runner
	return s
}

func (s *Scorer) modelPath(docType constants.DocumentType) string {
	return filepath.Join(s.cfg.ModelDir, strings.ToLower(string(docType))+".pt")
}

// Available reports whether a weight file exists for docType.
func (s *Scorer) Available(docType constants.DocumentType) bool {
	if s.cfg.Binary == "" || docType == constants.Unknown {
		return false
	}
	st, err := os.Stat(s.modelPath(docType))
	return err == nil && !st.IsDir()
}

// AvailableModels counts the types with a usable weight file.
func (s *Scorer) AvailableModels() int {
	n := 0
	for _, t := range constants.DocumentTypes {
		if s.Available(t) {
			n++
		}
	}
	return n
}

// Score runs the detection CLI and parses its confidence (0..1) from the last
// stdout line, returned as a percentage. A "SKIPPED" line is the CLI's
// resource-pressure signal and maps to ErrSkipped.
func (s *Scorer) Score(ctx context.Context, imagePath string, docType constants.DocumentType) (float32, bool, error) {
	if !s.Available(docType) {
		return 0, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, errb, err := s.runner.Run(ctx, s.cfg.Binary,
		"--weights", s.modelPath(docType),
		"--source", imagePath,
	)
	if err != nil {
		return 0, false, fmt.Errorf("detector: %w (stderr: %s)", err, strings.TrimSpace(string(errb)))
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if strings.EqualFold(last, "SKIPPED") {
		return 0, false, ErrSkipped
	}
	conf, perr := strconv.ParseFloat(last, 32)
	if perr != nil || conf < 0 || conf > 1 {
		return 0, false, fmt.Errorf("detector: unparseable confidence %q", last)
	}

	s.logger.Info("detector.score.ok",
		"doc_type", docType,
		"confidence", conf,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return float32(conf * 100), true, nil
}
