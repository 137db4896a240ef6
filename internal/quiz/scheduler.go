package quiz

import (
	"math/rand"
	"sync"
	"time"
)

// Scheduler defaults
const (
	// DefaultMinWords is how many saved words must exist before surprise
	// quizzes start appearing
	DefaultMinWords = 3
	// DefaultMinDelay and DefaultMaxDelay bound the randomized interval
	// between surprise quiz prompts
	DefaultMinDelay = 2 * time.Minute
	DefaultMaxDelay = 5 * time.Minute
)

// Scheduler triggers a quiz prompt callback after a randomly chosen delay
// within a bounded window, whenever enough saved words exist and no quiz
// is currently displayed. Rescheduling replaces any pending timer.
type Scheduler struct {
	mu       sync.Mutex
	minWords int
	minDelay time.Duration
	maxDelay time.Duration
	prompt   func()
	timer    *time.Timer
}

// NewScheduler creates a scheduler that invokes prompt when a quiz is due
func NewScheduler(prompt func()) *Scheduler {
	return &Scheduler{
		minWords: DefaultMinWords,
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		prompt:   prompt,
	}
}

// SetWindow overrides the delay window and word threshold
func (s *Scheduler) SetWindow(minWords int, minDelay, maxDelay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minWords = minWords
	s.minDelay = minDelay
	s.maxDelay = maxDelay
}

// Reschedule cancels any pending prompt and, when the dependencies allow
// it, arms a new one after a random delay. Call it whenever the word
// count or quiz visibility changes.
func (s *Scheduler) Reschedule(wordCount int, quizVisible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if quizVisible || wordCount < s.minWords {
		return
	}

	delay := s.minDelay
	if s.maxDelay > s.minDelay {
		delay += time.Duration(rand.Int63n(int64(s.maxDelay - s.minDelay)))
	}
	s.timer = time.AfterFunc(delay, s.prompt)
}

// Stop cancels any pending prompt
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
