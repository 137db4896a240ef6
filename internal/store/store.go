package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/lingopal/internal"
)

const (
	// assessInterval is how many saved words trigger a level re-assessment
	assessInterval = 5
	// assessWindow is how many recent words the re-assessment considers
	assessWindow = 20
)

// AssessFunc estimates a CEFR level from recent vocabulary. It returns
// "Unknown" when no estimate could be made.
type AssessFunc func(ctx context.Context, words []string) string

// Store holds all application state in memory and mirrors every mutation
// to the snapshot database. All mutations are serialized through a single
// mutex; concurrent writers are last-write-wins with no merge.
type Store struct {
	mu     sync.Mutex
	db     *SnapshotDB
	assess AssessFunc

	articles    []Article
	words       []SavedWord
	notes       []Note
	examResults []ExamResult
	language    string
	settings    Settings
	stats       Stats
}

// New creates an in-memory store without a persistence mirror
func New() *Store {
	s := &Store{language: "en"}
	s.recomputeStats()
	return s
}

// Open creates a store mirrored to the snapshot database at path, loading
// any previously persisted state.
func Open(path string) (*Store, error) {
	db, err := OpenSnapshotDB(path)
	if err != nil {
		return nil, err
	}

	s := New()
	s.db = db
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	s.recomputeStats()
	return s, nil
}

// SetAssessor installs the level assessment callback. It runs in a
// goroutine whenever the saved word count crosses a multiple of the
// assessment interval; a failed assessment leaves the level unchanged.
func (s *Store) SetAssessor(assess AssessFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assess = assess
}

// Close closes the persistence mirror, if any
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) load() error {
	entries := []struct {
		key  string
		dest interface{}
	}{
		{keyArticles, &s.articles},
		{keyWords, &s.words},
		{keyNotes, &s.notes},
		{keyExamResults, &s.examResults},
		{keyLanguage, &s.language},
		{keySettings, &s.settings},
	}
	for _, e := range entries {
		value, ok, err := s.db.Load(e.key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(value), e.dest); err != nil {
			return fmt.Errorf("corrupt snapshot %q: %w", e.key, err)
		}
	}
	return nil
}

// persist writes one collection snapshot; persistence failures are
// reported but never block a state change.
func (s *Store) persist(key string, v interface{}) {
	if s.db == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to encode %s snapshot: %v\n", key, err)
		return
	}
	if err := s.db.Save(key, string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func (s *Store) recomputeStats() {
	s.stats.WordCount = len(s.words)
	s.stats.ArticleCount = len(s.articles)
}

// AddArticle stores an imported article, assigning an ID and creation
// timestamp when absent.
func (s *Store) AddArticle(a Article) Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = internal.NewID(a.Title)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.articles = append(s.articles, a)
	s.recomputeStats()
	s.persist(keyArticles, s.articles)
	return a
}

// Articles returns a snapshot copy of the article collection
func (s *Store) Articles() []Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Article(nil), s.articles...)
}

// DeleteArticle removes an article by ID
func (s *Store) DeleteArticle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.articles {
		if a.ID == id {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			s.recomputeStats()
			s.persist(keyArticles, s.articles)
			return true
		}
	}
	return false
}

// SaveWord adds a definition to the notebook. At most one saved word
// exists per distinct word text (case-insensitive); saving a duplicate is
// a no-op that returns the existing entry.
func (s *Store) SaveWord(def WordDefinition) (SavedWord, bool) {
	s.mu.Lock()

	for _, w := range s.words {
		if strings.EqualFold(w.Definition.Word, def.Word) {
			s.mu.Unlock()
			return w, false
		}
	}

	word := SavedWord{
		ID:         internal.NewID(def.Word),
		Definition: def,
		SavedAt:    time.Now(),
	}
	s.words = append(s.words, word)
	s.recomputeStats()
	s.persist(keyWords, s.words)

	trigger := len(s.words)%assessInterval == 0 && s.assess != nil
	s.mu.Unlock()

	if trigger {
		go s.reassessLevel()
	}
	return word, true
}

// Words returns a snapshot copy of the saved word collection
func (s *Store) Words() []SavedWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SavedWord(nil), s.words...)
}

// DeleteWord removes a saved word by ID
func (s *Store) DeleteWord(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.words {
		if w.ID == id {
			s.words = append(s.words[:i], s.words[i+1:]...)
			s.recomputeStats()
			s.persist(keyWords, s.words)
			return true
		}
	}
	return false
}

// MarkWordReviewed increments a saved word's review counter
func (s *Store) MarkWordReviewed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.words {
		if s.words[i].ID == id {
			s.words[i].ReviewCount++
			s.persist(keyWords, s.words)
			return true
		}
	}
	return false
}

// RecentWordTexts returns up to n most recently saved word texts,
// oldest first.
func (s *Store) RecentWordTexts(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentWordTextsLocked(n)
}

func (s *Store) recentWordTextsLocked(n int) []string {
	start := 0
	if len(s.words) > n {
		start = len(s.words) - n
	}
	texts := make([]string, 0, len(s.words)-start)
	for _, w := range s.words[start:] {
		texts = append(texts, w.Definition.Word)
	}
	return texts
}

// reassessLevel re-estimates the user level from recent vocabulary. It
// runs outside the store lock so a slow or failing model call never
// blocks other state updates.
func (s *Store) reassessLevel() {
	s.mu.Lock()
	assess := s.assess
	words := s.recentWordTextsLocked(assessWindow)
	s.mu.Unlock()

	level := assess(context.Background(), words)
	if level == "" || level == "Unknown" {
		return
	}

	s.mu.Lock()
	s.stats.EstimatedLevel = level
	s.mu.Unlock()
}

// AddNote stores a new notebook note
func (s *Store) AddNote(title, body string, tags []string) Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	note := Note{
		ID:        internal.NewID(title),
		Title:     title,
		Body:      body,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, note)
	s.persist(keyNotes, s.notes)
	return note
}

// UpdateNote replaces a note's content by ID
func (s *Store) UpdateNote(id, title, body string, tags []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Title = title
			s.notes[i].Body = body
			s.notes[i].Tags = tags
			s.notes[i].UpdatedAt = time.Now()
			s.persist(keyNotes, s.notes)
			return true
		}
	}
	return false
}

// DeleteNote removes a note by ID
func (s *Store) DeleteNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			s.persist(keyNotes, s.notes)
			return true
		}
	}
	return false
}

// Notes returns a snapshot copy of the note collection
func (s *Store) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Note(nil), s.notes...)
}

// RecordExamResult appends an immutable exam result
func (s *Store) RecordExamResult(r ExamResult) ExamResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = internal.NewID(r.Kind)
	}
	if r.TakenAt.IsZero() {
		r.TakenAt = time.Now()
	}
	s.examResults = append(s.examResults, r)
	s.persist(keyExamResults, s.examResults)
	return r
}

// ExamResults returns a snapshot copy of the exam history
func (s *Store) ExamResults() []ExamResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ExamResult(nil), s.examResults...)
}

// Language returns the current learning language preference
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage updates the learning language preference
func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	s.persist(keyLanguage, s.language)
}

// Settings returns the current AI settings
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the AI settings
func (s *Store) UpdateSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.persist(keySettings, s.settings)
}

// Stats returns the derived statistics
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
