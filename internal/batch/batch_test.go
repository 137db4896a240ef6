package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWordFile(t *testing.T) {
	content := `# vocabulary for chapter 3
serendipity
ephemeral = The show was an ephemeral pleasure.

  ubiquitous
= no word here
`
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	entries, err := ReadWordFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d: %+v", len(entries), entries)
	}

	if entries[0].Word != "serendipity" || entries[0].Context != "" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[1].Word != "ephemeral" || entries[1].Context != "The show was an ephemeral pleasure." {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}
	if entries[2].Word != "ubiquitous" {
		t.Errorf("Expected whitespace trimmed, got %+v", entries[2])
	}
}

func TestReadWordFileMissing(t *testing.T) {
	_, err := ReadWordFile("/nonexistent/words.txt")
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}
