package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON(t *testing.T) {
	schema := &Schema{
		Name: "test-operands",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"num1", "options"},
			"properties": map[string]any{
				"num1": map[string]any{"type": "integer"},
				"options": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items":    map[string]any{"type": "integer"},
				},
			},
		},
	}

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"valid", `{"num1":3,"options":[1,2]}`, true},
		{"missing field", `{"num1":3}`, false},
		{"wrong type", `{"num1":"three","options":[1,2]}`, false},
		{"float is not integer", `{"num1":3.5,"options":[1,2]}`, false},
		{"too few options", `{"num1":3,"options":[1]}`, false},
		{"not json", `{"num1":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(schema, json.RawMessage(tt.raw))
			if tt.valid {
				require.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestValidateJSONNilSchema(t *testing.T) {
	assert.NoError(t, ValidateJSON(nil, json.RawMessage(`anything`)))
}
