package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `plain`, StripFences("  plain \n"))
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare", `{"num1":2}`, `{"num1":2}`},
		{"surrounded by prose", "Sure! Here it is:\n{\"num1\": 2, \"num2\": 3}\nGood luck.", `{"num1": 2, "num2": 3}`},
		{"fenced", "```json\n{\"a\":{\"b\":1}}\n```", `{"a":{"b":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.text)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestExtractObjectFailures(t *testing.T) {
	for _, text := range []string{"", "no json here", "{broken", "{not: valid}"} {
		_, err := ExtractObject(text)
		require.Error(t, err, text)
		assert.True(t, errors.Is(err, ErrNoJSON), text)

		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	}
}

func TestExtractArray(t *testing.T) {
	got, err := ExtractArray("Plan:\n[{\"day\":1},{\"day\":2}]\n")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"day":1},{"day":2}]`, string(got))

	_, err = ExtractArray(`{"day":1}`)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestDecodeObjectWithSchema(t *testing.T) {
	schema := &Schema{
		Name: "test-decode",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"name"},
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
			},
		},
	}

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeObject(`result: {"name":"Asha"}`, schema, &out))
	assert.Equal(t, "Asha", out.Name)

	err := DecodeObject(`{"other":1}`, schema, &out)
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestDecodeArray(t *testing.T) {
	var days []struct {
		Day int `json:"day"`
	}
	require.NoError(t, DecodeArray("```json\n[{\"day\":3}]\n```", nil, &days))
	require.Len(t, days, 1)
	assert.Equal(t, 3, days[0].Day)
}
