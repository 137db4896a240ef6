package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
	"unicode"
)

// NewID creates a unique ID for a stored entity based on timestamp and seed text
// Format: epochMillis_md5(seed)[:8]
func NewID(seed string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(seed))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

// TruncateRunes cuts s to at most max runes without splitting a character
func TruncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
