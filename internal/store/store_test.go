package store

import (
	"context"
	"testing"
	"time"
)

func TestSaveWordDeduplicates(t *testing.T) {
	s := New()

	first, added := s.SaveWord(WordDefinition{Word: "Serendipity", Meaning: "lucky find"})
	if !added {
		t.Fatal("Expected first save to add the word")
	}

	// Same word in different case is a no-op returning the original
	dup, added := s.SaveWord(WordDefinition{Word: "serendipity", Meaning: "different meaning"})
	if added {
		t.Error("Expected duplicate save to be a no-op")
	}
	if dup.ID != first.ID {
		t.Errorf("Expected existing entry %s, got %s", first.ID, dup.ID)
	}
	if dup.Definition.Meaning != "lucky find" {
		t.Errorf("Expected original definition kept, got %q", dup.Definition.Meaning)
	}

	if got := s.Stats().WordCount; got != 1 {
		t.Errorf("Expected 1 word, got %d", got)
	}
}

func TestSaveWordTriggersAssessment(t *testing.T) {
	s := New()

	assessed := make(chan []string, 1)
	s.SetAssessor(func(ctx context.Context, words []string) string {
		assessed <- words
		return "B2"
	})

	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, w := range words {
		s.SaveWord(WordDefinition{Word: w})
		if i < len(words)-1 {
			select {
			case <-assessed:
				t.Fatalf("Assessment triggered early at word %d", i+1)
			default:
			}
		}
	}

	var got []string
	select {
	case got = <-assessed:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected assessment after the fifth word")
	}
	if len(got) != 5 {
		t.Errorf("Expected 5 words passed to assessor, got %d", len(got))
	}

	// The level lands asynchronously
	deadline := time.Now().Add(2 * time.Second)
	for s.Stats().EstimatedLevel != "B2" {
		if time.Now().After(deadline) {
			t.Fatalf("Expected estimated level 'B2', got %q", s.Stats().EstimatedLevel)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestUnknownAssessmentKeepsLevel(t *testing.T) {
	s := New()
	s.SetAssessor(func(ctx context.Context, words []string) string {
		return "Unknown"
	})
	s.stats.EstimatedLevel = "A2"

	for _, w := range []string{"a", "b", "c", "d", "e"} {
		s.SaveWord(WordDefinition{Word: w})
	}

	time.Sleep(100 * time.Millisecond)
	if got := s.Stats().EstimatedLevel; got != "A2" {
		t.Errorf("Expected level unchanged at 'A2', got %q", got)
	}
}

func TestRecentWordTexts(t *testing.T) {
	s := New()
	for _, w := range []string{"one", "two", "three", "four"} {
		s.SaveWord(WordDefinition{Word: w})
	}

	got := s.RecentWordTexts(2)
	if len(got) != 2 || got[0] != "three" || got[1] != "four" {
		t.Errorf("Expected [three four], got %v", got)
	}

	all := s.RecentWordTexts(10)
	if len(all) != 4 || all[0] != "one" {
		t.Errorf("Expected all words oldest first, got %v", all)
	}
}

func TestDeleteWord(t *testing.T) {
	s := New()
	word, _ := s.SaveWord(WordDefinition{Word: "ephemeral"})

	if !s.DeleteWord(word.ID) {
		t.Fatal("Expected delete to succeed")
	}
	if s.DeleteWord(word.ID) {
		t.Error("Expected second delete to fail")
	}
	if got := s.Stats().WordCount; got != 0 {
		t.Errorf("Expected 0 words, got %d", got)
	}

	// Word can be saved again after deletion
	if _, added := s.SaveWord(WordDefinition{Word: "ephemeral"}); !added {
		t.Error("Expected re-save after delete to add the word")
	}
}

func TestMarkWordReviewed(t *testing.T) {
	s := New()
	word, _ := s.SaveWord(WordDefinition{Word: "review"})

	s.MarkWordReviewed(word.ID)
	s.MarkWordReviewed(word.ID)

	if got := s.Words()[0].ReviewCount; got != 2 {
		t.Errorf("Expected review count 2, got %d", got)
	}
	if s.MarkWordReviewed("missing") {
		t.Error("Expected marking a missing word to fail")
	}
}

func TestArticles(t *testing.T) {
	s := New()
	article := s.AddArticle(Article{Title: "Space Travel", Content: "Rockets are fast.", Origin: OriginFetched})

	if article.ID == "" {
		t.Error("Expected an ID to be assigned")
	}
	if article.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}
	if got := s.Stats().ArticleCount; got != 1 {
		t.Errorf("Expected 1 article, got %d", got)
	}

	if !s.DeleteArticle(article.ID) {
		t.Fatal("Expected delete to succeed")
	}
	if got := s.Stats().ArticleCount; got != 0 {
		t.Errorf("Expected 0 articles, got %d", got)
	}
}

func TestNotes(t *testing.T) {
	s := New()
	note := s.AddNote("Grammar", "Past tense rules", []string{"grammar"})

	if !s.UpdateNote(note.ID, "Grammar", "Updated rules", nil) {
		t.Fatal("Expected update to succeed")
	}
	notes := s.Notes()
	if len(notes) != 1 || notes[0].Body != "Updated rules" {
		t.Errorf("Unexpected notes after update: %+v", notes)
	}
	if notes[0].UpdatedAt.Before(notes[0].CreatedAt) {
		t.Error("Expected UpdatedAt at or after CreatedAt")
	}

	if !s.DeleteNote(note.ID) {
		t.Fatal("Expected delete to succeed")
	}
	if s.UpdateNote(note.ID, "x", "y", nil) {
		t.Error("Expected updating a deleted note to fail")
	}
}

func TestExamResults(t *testing.T) {
	s := New()
	result := s.RecordExamResult(ExamResult{Score: 80, Total: 5, Kind: "vocabulary exam"})

	if result.ID == "" {
		t.Error("Expected an ID to be assigned")
	}
	if result.TakenAt.IsZero() {
		t.Error("Expected a timestamp")
	}
	if len(s.ExamResults()) != 1 {
		t.Errorf("Expected 1 result, got %d", len(s.ExamResults()))
	}
}

func TestLanguageAndSettings(t *testing.T) {
	s := New()
	if s.Language() != "en" {
		t.Errorf("Expected default language 'en', got %q", s.Language())
	}

	s.SetLanguage("de")
	if s.Language() != "de" {
		t.Errorf("Expected 'de', got %q", s.Language())
	}

	s.UpdateSettings(Settings{Provider: "compatible", Model: "llama3"})
	if got := s.Settings(); got.Provider != "compatible" || got.Model != "llama3" {
		t.Errorf("Unexpected settings: %+v", got)
	}
}
