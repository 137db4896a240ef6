// Package archive moves the current state database aside so the user can
// start over with a clean notebook without losing previous data.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveState moves the state database to an archive with timestamp
func ArchiveState(statePath string) error {
	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		return fmt.Errorf("state database does not exist: %s", statePath)
	}

	parentDir := filepath.Dir(statePath)
	archiveDir := filepath.Join(parentDir, "archive")

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archiveName := fmt.Sprintf("state-%s.db", timestamp)
	archivePath := filepath.Join(archiveDir, archiveName)

	// Unlikely collision, disambiguate with microseconds
	if _, err := os.Stat(archivePath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		archiveName = fmt.Sprintf("state-%s.db", timestamp)
		archivePath = filepath.Join(archiveDir, archiveName)
	}

	if err := os.Rename(statePath, archivePath); err != nil {
		return fmt.Errorf("failed to archive state database: %w", err)
	}

	fmt.Printf("State database archived to: %s\n", archivePath)
	return nil
}
