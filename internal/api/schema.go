package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Payload schemas for the generation endpoints. Validating at the API
// boundary keeps malformed backend responses out of the domain types;
// everything past this point can assume the canonical shape.
var (
	contentSchema = payloadSchema{
		name: "content-document",
		definition: map[string]any{
			"type":     "object",
			"required": []any{"topic", "summary", "sections"},
			"properties": map[string]any{
				"topic":   map[string]any{"type": "string", "minLength": 1},
				"summary": map[string]any{"type": "string"},
				"sections": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":     "object",
						"required": []any{"title", "content"},
						"properties": map[string]any{
							"title":   map[string]any{"type": "string"},
							"content": map[string]any{"type": "string"},
							"key_points": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
					},
				},
				"references": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"difficulty_level": map[string]any{"type": "string"},
			},
		},
	}

	questionsSchema = payloadSchema{
		name: "question-list",
		definition: map[string]any{
			"type":     "object",
			"required": []any{"questions"},
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"required": []any{
							"question", "option_a", "option_b", "option_c", "option_d",
						},
						"properties": map[string]any{
							"question": map[string]any{"type": "string", "minLength": 1},
							"option_a": map[string]any{"type": "string"},
							"option_b": map[string]any{"type": "string"},
							"option_c": map[string]any{"type": "string"},
							"option_d": map[string]any{"type": "string"},
							// The correct answer arrives as either a
							// bare "answer" or answer_option plus
							// answer_string; none of the three is
							// required here — an absent answer makes
							// the question unscorable, not invalid.
							"answer":        map[string]any{"type": "string"},
							"answer_option": map[string]any{"type": "string"},
							"answer_string": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
)

type payloadSchema struct {
	name       string
	definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload validates raw JSON against the schema, returning a
// *PayloadError on failure.
func validatePayload(endpoint string, schema payloadSchema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &PayloadError{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &PayloadError{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("compile schema %q: %w", schema.name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &PayloadError{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema payloadSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(schema.definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.name, compiled)
	return compiled, nil
}
