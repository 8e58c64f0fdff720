package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// contractSchema gates what reaches storage: confidences must be in range
// and the derived depreciation flags must respect the value bands.
var contractSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"raw_text":           map[string]any{"type": "string"},
		"overall_confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"document_type":      map[string]any{"enum": []any{"unknown", "pdf", "image"}},
		"parties": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "role", "confidence"},
				"properties": map[string]any{
					"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				},
			},
		},
		"key_dates": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"date", "date_type", "confidence"},
				"properties": map[string]any{
					"date": map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
				},
			},
		},
		"payment_schedules": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"amount", "confidence"},
				"properties": map[string]any{
					"amount": map[string]any{"type": "number", "minimum": 0},
				},
			},
		},
		"depreciation_assets": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"asset_value", "is_immediate_deduction", "is_low_value_pool"},
				"properties": map[string]any{
					"asset_value": map[string]any{"type": "number", "minimum": 0},
				},
				"not": map[string]any{
					"properties": map[string]any{
						"is_immediate_deduction": map[string]any{"const": true},
						"is_low_value_pool":      map[string]any{"const": true},
					},
				},
			},
		},
	},
	"required": []any{"raw_text", "overall_confidence", "parties", "key_dates"},
}

var compiledContractSchema = func() *jsonschema.Schema {
	b, err := json.Marshal(contractSchema)
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("contract.json", bytes.NewReader(b)); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile("contract.json")
	if err != nil {
		panic(err)
	}
	return schema
}()

// ValidateContractPayload validates a serialized ExtractedContract against
// the storage schema.
func ValidateContractPayload(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := compiledContractSchema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}
