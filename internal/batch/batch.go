// Package batch reads word list files for bulk notebook imports.
package batch

import (
	"fmt"
	"os"
	"strings"
)

// WordEntry represents a word with an optional context sentence
type WordEntry struct {
	Word    string
	Context string
}

// ReadWordFile reads words from a file and returns WordEntry slice
// Supports formats:
// - Word only: "serendipity"
// - With context sentence: "serendipity = Finding it was pure serendipity."
// Lines starting with # are skipped.
func ReadWordFile(filename string) ([]WordEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}

	var entries []WordEntry
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			word := strings.TrimSpace(parts[0])
			context := strings.TrimSpace(parts[1])
			if word == "" {
				continue
			}
			entries = append(entries, WordEntry{Word: word, Context: context})
		} else {
			entries = append(entries, WordEntry{Word: line})
		}
	}

	return entries, nil
}
