package assistant

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/chat"
	"codeberg.org/snonux/lingopal/internal/dictionary"
	"codeberg.org/snonux/lingopal/internal/importer"
	"codeberg.org/snonux/lingopal/internal/ocr"
	"codeberg.org/snonux/lingopal/internal/quiz"
	"codeberg.org/snonux/lingopal/internal/search"
	"codeberg.org/snonux/lingopal/internal/store"
	"codeberg.org/snonux/lingopal/internal/translation"
)

// Assistant coordinates the store and the domain operations
type Assistant struct {
	store      *store.Store
	backend    ai.Backend
	searcher   *search.Searcher
	dict       *dictionary.Service
	translator *translation.Translator
	cache      *translation.Cache
	importer   *importer.Importer
	extractor  *ocr.Extractor
	quizzes    *quiz.Generator
	tutor      *chat.Tutor
	session    *chat.Session
}

// New creates an assistant over the given store, building the model
// backend from the store's AI settings.
func New(st *store.Store) (*Assistant, error) {
	a := &Assistant{
		store:   st,
		cache:   translation.NewCache(),
		session: chat.NewSession(),
	}
	if err := a.rebuild(); err != nil {
		return nil, err
	}
	// Resolve the dictionary at call time so the assessor survives
	// settings rebuilds.
	st.SetAssessor(func(ctx context.Context, words []string) string {
		return a.dict.AssessLevel(ctx, words)
	})
	return a, nil
}

// newBackend is swapped out in tests
var newBackend = ai.NewBackend

// rebuild constructs the backend and every service on top of it from the
// current settings. Called at startup and after every settings change.
func (a *Assistant) rebuild() error {
	settings := a.store.Settings()
	backend, err := newBackend(aiConfig(settings))
	if err != nil {
		return fmt.Errorf("failed to create model backend: %w", err)
	}

	a.backend = backend
	a.searcher = search.NewSearcher(backend)
	a.dict = dictionary.NewService(backend)
	a.translator = translation.NewTranslator(backend)
	a.importer = importer.NewImporter(backend)
	a.extractor = ocr.NewExtractor(backend)
	a.quizzes = quiz.NewGenerator(backend)
	a.tutor = chat.NewTutor(backend, aiConfig(settings).Persona)
	return nil
}

func aiConfig(settings store.Settings) ai.Config {
	cfg := ai.DefaultConfig()
	if settings.Provider != "" {
		cfg.Provider = settings.Provider
	}
	if settings.Model != "" {
		cfg.Model = settings.Model
	}
	if settings.Temperature != 0 {
		cfg.Temperature = settings.Temperature
	}
	if settings.Persona != "" {
		cfg.Persona = settings.Persona
	}
	cfg.BaseURL = settings.BaseURL
	cfg.APIKey = settings.APIKey
	return cfg
}

// Store exposes the underlying state store
func (a *Assistant) Store() *store.Store {
	return a.store
}

// Backend exposes the active model backend
func (a *Assistant) Backend() ai.Backend {
	return a.backend
}

// UpdateSettings persists new AI settings and rebuilds the backend
func (a *Assistant) UpdateSettings(settings store.Settings) error {
	a.store.UpdateSettings(settings)
	return a.rebuild()
}

// SearchArticles finds reading material and stores every result
func (a *Assistant) SearchArticles(ctx context.Context, topic string) ([]store.Article, error) {
	articles, err := a.searcher.Search(ctx, topic, a.store.Language())
	if err != nil {
		return nil, err
	}
	stored := make([]store.Article, 0, len(articles))
	for _, article := range articles {
		stored = append(stored, a.store.AddArticle(article))
	}
	return stored, nil
}

// ImportText stores manually pasted text as an article
func (a *Assistant) ImportText(ctx context.Context, raw, name string) store.Article {
	return a.store.AddArticle(a.importer.ImportText(ctx, raw, name))
}

// ImportFile stores a text file or scanned image as an article
func (a *Assistant) ImportFile(ctx context.Context, path string) (store.Article, error) {
	article, err := a.importer.ImportFile(ctx, path)
	if err != nil {
		return store.Article{}, err
	}
	return a.store.AddArticle(article), nil
}

// ImportURL fetches a web page and stores it as an article
func (a *Assistant) ImportURL(ctx context.Context, rawURL string) (store.Article, error) {
	article, err := a.importer.ImportURL(ctx, rawURL)
	if err != nil {
		return store.Article{}, err
	}
	return a.store.AddArticle(article), nil
}

// Define looks up a word, optionally in the context of a sentence
func (a *Assistant) Define(ctx context.Context, word, contextSentence string) (store.WordDefinition, error) {
	return a.dict.Define(ctx, word, contextSentence, a.store.Language())
}

// DefineAndSave looks up a word and saves it into the notebook
func (a *Assistant) DefineAndSave(ctx context.Context, word, contextSentence string) (store.SavedWord, error) {
	def, err := a.Define(ctx, word, contextSentence)
	if err != nil {
		return store.SavedWord{}, err
	}
	saved, _ := a.store.SaveWord(def)
	return saved, nil
}

// Translate translates a text block, caching repeated lookups
func (a *Assistant) Translate(ctx context.Context, text string) (string, error) {
	if cached, ok := a.cache.Get(text); ok {
		return cached, nil
	}
	translated, err := a.translator.Translate(ctx, text, a.store.Language())
	if err != nil {
		return "", err
	}
	a.cache.Add(text, translated)
	return translated, nil
}

// WordQuiz builds a quiz question for a saved word
func (a *Assistant) WordQuiz(ctx context.Context, word string) (store.QuizQuestion, error) {
	return a.quizzes.WordQuiz(ctx, word)
}

// GenerateExam builds an exam from the learner's level and recent words
func (a *Assistant) GenerateExam(ctx context.Context, requirements string) ([]store.QuizQuestion, error) {
	level := a.store.Stats().EstimatedLevel
	if level == "" {
		level = "Unknown"
	}
	return a.quizzes.Exam(ctx, level, a.store.RecentWordTexts(30), requirements)
}

// RecordExam grades an answered exam and stores the result
func (a *Assistant) RecordExam(questions []store.QuizQuestion, answers []int, kind string) store.ExamResult {
	return a.store.RecordExamResult(quiz.Grade(questions, answers, kind))
}

// Chat sends a message to the tutor and appends both turns to the session
func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	history := a.session.History()
	reply, err := a.tutor.Reply(ctx, history, message, a.learnerContext())
	if err != nil {
		return "", err
	}
	a.session.Append(ai.RoleUser, message)
	a.session.Append(ai.RoleAssistant, reply)
	return reply, nil
}

// learnerContext summarizes the learner for the tutor's system instruction
func (a *Assistant) learnerContext() string {
	stats := a.store.Stats()
	parts := []string{fmt.Sprintf("learning language preference: %s", a.store.Language())}
	if stats.EstimatedLevel != "" {
		parts = append(parts, fmt.Sprintf("estimated CEFR level: %s", stats.EstimatedLevel))
	}
	if recent := a.store.RecentWordTexts(10); len(recent) > 0 {
		parts = append(parts, fmt.Sprintf("recently saved words: %s", strings.Join(recent, ", ")))
	}
	return strings.Join(parts, "; ")
}
