package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Snapshot keys, one per persisted collection
const (
	keyArticles    = "articles"
	keyWords       = "saved_words"
	keyLanguage    = "language"
	keyNotes       = "notes"
	keyExamResults = "exam_results"
	keySettings    = "ai_settings"
)

// SnapshotDB mirrors the in-memory state to a local SQLite database. Each
// collection is stored as a single JSON snapshot under a fixed key, loaded
// once at startup and rewritten on every state change.
type SnapshotDB struct {
	db *sql.DB
}

// OpenSnapshotDB opens (or creates) the snapshot database at path
func OpenSnapshotDB(path string) (*SnapshotDB, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &SnapshotDB{db: db}, nil
}

// Save writes or replaces one snapshot
func (s *SnapshotDB) Save(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

// Load reads one snapshot; ok is false when the key has never been written
func (s *SnapshotDB) Load(key string) (value string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return value, true, nil
}

// Close closes the underlying database
func (s *SnapshotDB) Close() error {
	return s.db.Close()
}
