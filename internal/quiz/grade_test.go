package quiz

import (
	"testing"

	"codeberg.org/snonux/lingopal/internal/store"
)

func question(prompt string, correct int) store.QuizQuestion {
	return store.QuizQuestion{
		Prompt:       prompt,
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: correct,
	}
}

func TestGrade(t *testing.T) {
	questions := []store.QuizQuestion{
		question("Q1", 0),
		question("Q2", 1),
		question("Q3", 2),
	}

	result := Grade(questions, []int{0, 1, 3}, "vocabulary exam")
	if result.Score != 67 {
		t.Errorf("Expected score 67, got %d", result.Score)
	}
	if result.Total != 3 {
		t.Errorf("Expected total 3, got %d", result.Total)
	}
	if len(result.Mistakes) != 1 {
		t.Fatalf("Expected 1 mistake, got %d", len(result.Mistakes))
	}
	if result.Mistakes[0].Question != "Q3" || result.Mistakes[0].Answer != "c" {
		t.Errorf("Unexpected mistake: %+v", result.Mistakes[0])
	}
	if result.Kind != "vocabulary exam" {
		t.Errorf("Expected kind 'vocabulary exam', got %q", result.Kind)
	}
	if result.ID == "" || result.TakenAt.IsZero() {
		t.Error("Expected ID and timestamp to be set")
	}
}

func TestGradeUnansweredCountsAsMistake(t *testing.T) {
	questions := []store.QuizQuestion{question("Q1", 0), question("Q2", 1)}

	// Second answer missing entirely
	result := Grade(questions, []int{0}, "exam")
	if result.Score != 50 {
		t.Errorf("Expected score 50, got %d", result.Score)
	}
	if len(result.Mistakes) != 1 || result.Mistakes[0].Question != "Q2" {
		t.Errorf("Expected unanswered question recorded, got %+v", result.Mistakes)
	}
}

func TestGradeEmptyExam(t *testing.T) {
	result := Grade(nil, nil, "exam")
	if result.Score != 0 || result.Total != 0 {
		t.Errorf("Expected zero result, got %+v", result)
	}
}

func TestGradePerfectScore(t *testing.T) {
	questions := []store.QuizQuestion{question("Q1", 2)}
	result := Grade(questions, []int{2}, "exam")
	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
	if len(result.Mistakes) != 0 {
		t.Errorf("Expected no mistakes, got %+v", result.Mistakes)
	}
}
