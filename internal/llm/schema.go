package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/verifeye/verifeye/constants"
)

// BuildDocumentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. The model's recovered JSON is validated against it locally
// before any field is trusted. Every field is optional and nullable: absence
// is a normal, expected outcome for most fields on most documents.
func BuildDocumentJSONSchema() map[string]any {
	props := map[string]any{}
	for _, f := range constants.FieldVocabulary {
		props[f] = map[string]any{"type": []any{"string", "null"}}
	}
	// Addresses sometimes come back as nested objects; flattening is the
	// normalizer's job, so the schema admits them.
	props[constants.FieldAddress] = map[string]any{"type": []any{"string", "object", "null"}}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

// ValidateAgainstSchema validates data against schemaMap.
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ExtractJSONSpan returns the substring from the first '{' to the last '}'.
// Chat models wrap their JSON in prose more often than not; only that span is
// parsed.
func ExtractJSONSpan(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}
