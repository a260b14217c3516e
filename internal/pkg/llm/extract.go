package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	objectPattern = regexp.MustCompile(`\{[\s\S]*\}`)
	arrayPattern  = regexp.MustCompile(`\[[\s\S]*\]`)
)

// StripFences removes a surrounding markdown code fence.
func StripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ExtractObject returns the outermost {...} block of text.
func ExtractObject(text string) (json.RawMessage, error) {
	return extract(text, objectPattern)
}

// ExtractArray returns the outermost [...] block of text.
func ExtractArray(text string) (json.RawMessage, error) {
	return extract(text, arrayPattern)
}

func extract(text string, pattern *regexp.Regexp) (json.RawMessage, error) {
	match := pattern.FindString(StripFences(text))
	if match == "" {
		return nil, &ErrInvalidResponse{Text: text, Err: ErrNoJSON}
	}
	if !json.Valid([]byte(match)) {
		return nil, &ErrInvalidResponse{Text: text, Err: ErrNoJSON}
	}
	return json.RawMessage(match), nil
}

// DecodeObject extracts the JSON object in text into dest, validating it
// against schema first when one is given.
func DecodeObject(text string, schema *Schema, dest any) error {
	raw, err := ExtractObject(text)
	if err != nil {
		return err
	}
	return decode(raw, schema, dest)
}

// DecodeArray is DecodeObject for array-shaped responses.
func DecodeArray(text string, schema *Schema, dest any) error {
	raw, err := ExtractArray(text)
	if err != nil {
		return err
	}
	return decode(raw, schema, dest)
}

func decode(raw json.RawMessage, schema *Schema, dest any) error {
	if err := ValidateJSON(schema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &ErrInvalidResponse{Text: string(raw), Err: err}
	}
	return nil
}
