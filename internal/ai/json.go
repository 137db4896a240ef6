package ai

import (
	"encoding/json"
	"strings"
)

// CleanJSONText recovers a parseable JSON document from raw model output,
// which may be fenced in a markdown code block with or without a language
// tag. Text that is not fenced passes through unmodified.
func CleanJSONText(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// DecodeJSON strips code fences and unmarshals the result into v,
// returning a ParseError on failure. Used where a malformed response must
// fail the operation visibly (search result lists, exam generation).
func DecodeJSON(raw string, v interface{}) error {
	cleaned := CleanJSONText(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &ParseError{Raw: cleaned, Err: err}
	}
	return nil
}

// DecodeJSONLenient behaves like DecodeJSON but swallows parse failures,
// leaving v untouched so downstream field access degrades to zero values
// instead of erroring.
func DecodeJSONLenient(raw string, v interface{}) {
	_ = json.Unmarshal([]byte(CleanJSONText(raw)), v)
}
