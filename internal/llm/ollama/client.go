// Package ollama implements llm.FieldExtractor against an Ollama-compatible
// chat endpoint running locally.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verifeye/verifeye/internal/docfields"
	"github.com/verifeye/verifeye/internal/llm"
)

type Config struct {
	BaseURL string // default http://localhost:11434
	Model   string // default "llama3"
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// ExtractFields asks the local model for a loose field mapping. The response
// JSON is recovered from the first '{' to the last '}' of the chat content,
// validated strictly against the document schema, then lenient-sanitized and
// re-validated before giving up.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (docfields.FieldMap, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"doc_type", req.DocType,
		"is_back", req.IsBack,
		"text_len", len(req.RawText),
	)

	body := map[string]any{
		"model":  c.cfg.Model,
		"stream": false,
		"messages": []map[string]any{
			{"role": "user", "content": llm.BuildPrompt(req)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/chat"
	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, nil, c.log)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, err
	}

	var cc struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("decode ollama response: %w", err)
	}

	span := llm.ExtractJSONSpan(cc.Message.Content)
	if span == "" {
		c.log.Error("llm.extract.no_json_object",
			"req_id", rid, "content_len", len(cc.Message.Content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("no json object in model response")
	}
	payload := []byte(span)

	// Validate strictly first; fall back to a lenient sanitize pass.
	schema := llm.BuildDocumentJSONSchema()
	if err := llm.ValidateAgainstSchema(schema, payload); err != nil {
		cleaned, dropped, sErr := llm.SanitizeFields(payload)
		if sErr != nil {
			c.log.Error("llm.extract.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, payload, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateAgainstSchema(schema, cleaned); vErr != nil {
			c.log.Error("llm.extract.schema_validation_failed",
				"req_id", rid, "error", vErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, payload, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.log.Warn("llm.extract.lenient_sanitize_applied",
			"req_id", rid, "dropped", dropped,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		payload = cleaned
	}

	var out docfields.FieldMap
	if err := json.Unmarshal(payload, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, payload, fmt.Errorf("unmarshal fields: %w", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"fields", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, payload, nil
}
