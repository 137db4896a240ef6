package ai

import (
	"errors"
	"testing"
)

func TestCleanJSONText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare JSON passes through",
			input:    `{"word":"hello"}`,
			expected: `{"word":"hello"}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"word\":\"hello\"}\n```",
			expected: `{"word":"hello"}`,
		},
		{
			name:     "plain fence",
			input:    "```\n[1,2,3]\n```",
			expected: `[1,2,3]`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{}\n```  \n",
			expected: `{}`,
		},
		{
			name:     "unterminated fence",
			input:    "```json\n{\"a\":1}",
			expected: `{"a":1}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONText(tt.input)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Word string `json:"word"`
	}
	err := DecodeJSON("```json\n{\"word\":\"serendipity\"}\n```", &out)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Word != "serendipity" {
		t.Errorf("Expected word 'serendipity', got %q", out.Word)
	}
}

func TestDecodeJSONParseError(t *testing.T) {
	var out map[string]string
	err := DecodeJSON("the model rambled instead of answering", &out)
	if err == nil {
		t.Fatal("Expected an error for non-JSON input")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected ParseError, got %T", err)
	}
	if parseErr.Raw != "the model rambled instead of answering" {
		t.Errorf("Expected raw text preserved, got %q", parseErr.Raw)
	}
}

func TestDecodeJSONLenient(t *testing.T) {
	out := struct {
		Level string `json:"level"`
	}{Level: "B1"}

	DecodeJSONLenient("not json at all", &out)
	if out.Level != "B1" {
		t.Errorf("Expected value untouched on parse failure, got %q", out.Level)
	}

	DecodeJSONLenient(`{"level":"C1"}`, &out)
	if out.Level != "C1" {
		t.Errorf("Expected level 'C1', got %q", out.Level)
	}
}
