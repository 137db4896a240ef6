package cli

import (
	"strings"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Language", flags.Language, "en"},
		{"Provider", flags.Provider, "gemini"},
		{"Model", flags.Model, "gemini-2.5-flash"},
		{"Temperature", flags.Temperature, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	if flags.Archive {
		t.Error("Expected Archive to default to false")
	}
	if flags.StatePath == "" {
		t.Error("Expected a default state path")
	}
}

func TestDefaultStatePath(t *testing.T) {
	path := DefaultStatePath()
	if !strings.HasSuffix(path, "state.db") {
		t.Errorf("Expected path ending in state.db, got %s", path)
	}
	if !strings.Contains(path, "lingopal") {
		t.Errorf("Expected 'lingopal' in path, got %s", path)
	}
}
