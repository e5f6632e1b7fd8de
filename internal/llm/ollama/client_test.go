package ollama

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/llm"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		var body struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Stream {
			t.Error("stream = true, want false")
		}
		if len(body.Messages) != 1 || body.Messages[0].Content == "" {
			t.Errorf("messages = %+v", body.Messages)
		}

		resp := map[string]any{
			"message": map[string]any{"role": "assistant", "content": content},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestExtractFieldsParsesWrappedJSON(t *testing.T) {
	srv := chatServer(t, "Sure! Here are the fields:\n{\"Name\": \"Asha Rao\", \"DOB\": \"15/06/1992\"}\nHope that helps.")
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Model: "llama3"}, quietLogger())
	fields, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{
		RawText: "some ocr text",
		DocType: constants.Aadhaar,
	})
	if err != nil {
		t.Fatalf("ExtractFields() error = %v", err)
	}
	if fields[constants.FieldName] != "Asha Rao" {
		t.Errorf("Name = %v", fields[constants.FieldName])
	}
	if fields[constants.FieldDOB] != "15/06/1992" {
		t.Errorf("DOB = %v", fields[constants.FieldDOB])
	}
}

func TestExtractFieldsSanitizesImperfectResponse(t *testing.T) {
	// unknown key + numeric value: fails strict validation, passes after sanitize
	srv := chatServer(t, `{"Name": "Asha Rao", "ID Number": 123456789012, "Reasoning": "it was printed"}`)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, quietLogger())
	fields, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{
		RawText: "some ocr text",
		DocType: constants.Aadhaar,
	})
	if err != nil {
		t.Fatalf("ExtractFields() error = %v", err)
	}
	if fields[constants.FieldIDNumber] != "123456789012" {
		t.Errorf("ID Number = %v, want stringified", fields[constants.FieldIDNumber])
	}
	if _, ok := fields["Reasoning"]; ok {
		t.Error("unknown key survived")
	}
}

func TestExtractFieldsNoJSONInResponse(t *testing.T) {
	srv := chatServer(t, "I am sorry, the image text is unreadable.")
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, quietLogger())
	if _, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{RawText: "x"}); err == nil {
		t.Error("ExtractFields() error = nil, want error for prose-only response")
	}
}

func TestExtractFieldsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, quietLogger())
	if _, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{RawText: "x"}); err == nil {
		t.Error("ExtractFields() error = nil, want error on 500")
	}
}
