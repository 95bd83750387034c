package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Schema describes the JSON object a structured completion must return.
// It renders to a JSON Schema fragment for the prompt and validates the
// model's reply before any caller sees it.
type Schema struct {
	Name        string
	Description string
	Properties  map[string]SchemaProperty
	Required    []string
}

// SchemaProperty is one field of a Schema
type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// JSONSchema renders the schema as a JSON Schema object
func (s Schema) JSONSchema() json.RawMessage {
	doc := map[string]interface{}{
		"type":       "object",
		"properties": s.Properties,
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	if s.Description != "" {
		doc["description"] = s.Description
	}
	raw, _ := json.Marshal(doc)
	return raw
}

// Validate checks that raw is a JSON object satisfying the schema: every
// required key present, every known key matching its declared type.
func (s Schema) Validate(raw json.RawMessage) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("response is not a JSON object: %w", err)
	}

	for _, key := range s.Required {
		value, ok := obj[key]
		if !ok {
			return fmt.Errorf("response missing required field %q", key)
		}
		if string(value) == "null" {
			return fmt.Errorf("response field %q is null", key)
		}
	}

	for key, value := range obj {
		prop, ok := s.Properties[key]
		if !ok {
			continue
		}
		if prop.Type == "string" {
			var str string
			if err := json.Unmarshal(value, &str); err != nil {
				return fmt.Errorf("response field %q is not a string", key)
			}
		}
	}

	return nil
}

// extractJSON trims markdown code fences some models wrap around JSON output
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	// Some models prepend prose before the object
	if start := strings.Index(text, "{"); start > 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		}
	}
	return text
}
