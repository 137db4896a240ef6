package quiz

import (
	"math"
	"time"

	"codeberg.org/snonux/lingopal/internal"
	"codeberg.org/snonux/lingopal/internal/store"
)

// Grade scores an answered exam. answers holds the chosen option index
// per question, -1 for unanswered. The score is the rounded percentage of
// correct answers; every missed question is recorded with its correct
// answer.
func Grade(questions []store.QuizQuestion, answers []int, kind string) store.ExamResult {
	correct := 0
	var mistakes []store.Mistake

	for i, q := range questions {
		answer := -1
		if i < len(answers) {
			answer = answers[i]
		}
		if answer == q.CorrectIndex {
			correct++
			continue
		}
		mistakes = append(mistakes, store.Mistake{
			Question: q.Prompt,
			Answer:   q.Options[q.CorrectIndex],
		})
	}

	score := 0
	if len(questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(questions)) * 100))
	}

	return store.ExamResult{
		ID:       internal.NewID(kind),
		TakenAt:  time.Now(),
		Score:    score,
		Total:    len(questions),
		Mistakes: mistakes,
		Kind:     kind,
	}
}
