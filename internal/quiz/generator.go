package quiz

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/lingopal/internal"
	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/store"
)

const (
	// examWordLimit bounds how many recent known words an exam draws on
	examWordLimit = 30
	// examQuestionCount is how many questions we ask the model for
	examQuestionCount = 5
)

// Generator creates quiz questions and exams
type Generator struct {
	backend ai.Backend
}

// NewGenerator creates a new quiz generator
func NewGenerator(backend ai.Backend) *Generator {
	return &Generator{backend: backend}
}

var questionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"prompt":       {Type: genai.TypeString},
		"options":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"correctIndex": {Type: genai.TypeInteger},
		"explanation":  {Type: genai.TypeString},
	},
	Required: []string{"prompt", "options", "correctIndex"},
}

// WordQuiz builds a 4-option fill-in-the-blank question for a saved word.
// The returned question's correct option always equals the word.
func (g *Generator) WordQuiz(ctx context.Context, word string) (store.QuizQuestion, error) {
	prompt := fmt.Sprintf(
		"Create a fill-in-the-blank quiz question for the vocabulary word %q. "+
			"The prompt is a sentence with the word replaced by ____. "+
			"Provide exactly 4 options, one of which is %q, and the zero-based index "+
			"of the correct option. Add a one-sentence explanation.",
		word, word)

	raw, err := g.backend.Generate(ctx, ai.Request{
		Parts:  []ai.Part{ai.TextPart(prompt)},
		Schema: questionSchema,
	})
	if err != nil {
		return store.QuizQuestion{}, &ai.DomainError{Op: "generate quiz", Err: err}
	}

	var parsed struct {
		Prompt       string   `json:"prompt"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correctIndex"`
		Explanation  string   `json:"explanation"`
	}
	ai.DecodeJSONLenient(raw, &parsed)

	// The correct option must reference the supplied word; trust the
	// option list over the model's index.
	correct := -1
	for i, option := range parsed.Options {
		if strings.EqualFold(strings.TrimSpace(option), word) {
			correct = i
			break
		}
	}
	if parsed.Prompt == "" || correct < 0 {
		return store.QuizQuestion{}, &ai.DomainError{
			Op:  "generate quiz",
			Err: fmt.Errorf("no usable question returned for %q", word),
		}
	}

	return store.QuizQuestion{
		ID:           internal.NewID(word),
		Kind:         store.QuizFillBlank,
		Prompt:       parsed.Prompt,
		Options:      parsed.Options,
		CorrectIndex: correct,
		Explanation:  parsed.Explanation,
	}, nil
}

var examSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"kind":         {Type: genai.TypeString},
			"prompt":       {Type: genai.TypeString},
			"options":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"correctIndex": {Type: genai.TypeInteger},
			"explanation":  {Type: genai.TypeString},
		},
		Required: []string{"kind", "prompt", "options", "correctIndex"},
	},
}

var examKinds = map[string]store.QuizKind{
	string(store.QuizFillBlank):     store.QuizFillBlank,
	string(store.QuizPhoneticMatch): store.QuizPhoneticMatch,
	string(store.QuizToNative):      store.QuizToNative,
	string(store.QuizFromNative):    store.QuizFromNative,
}

// Exam builds an ordered list of mixed-kind questions for the learner's
// level. Unlike most operations, a malformed response fails the exam
// visibly instead of degrading.
func (g *Generator) Exam(ctx context.Context, level string, knownWords []string, requirements string) ([]store.QuizQuestion, error) {
	if len(knownWords) > examWordLimit {
		knownWords = knownWords[len(knownWords)-examWordLimit:]
	}

	prompt := fmt.Sprintf(
		"Create %d quiz questions for a %s level language learner. "+
			"Mix the kinds %q, %q, %q and %q. "+
			"Draw on these words the learner already knows where sensible: %s. "+
			"Each question has a prompt, 4 options and the zero-based correctIndex. ",
		examQuestionCount, level,
		store.QuizFillBlank, store.QuizPhoneticMatch, store.QuizToNative, store.QuizFromNative,
		strings.Join(knownWords, ", "))
	if requirements != "" {
		prompt += "Additional requirements: " + requirements
	}

	raw, err := g.backend.Generate(ctx, ai.Request{
		Parts:  []ai.Part{ai.TextPart(prompt)},
		Schema: examSchema,
	})
	if err != nil {
		return nil, &ai.DomainError{Op: "generate exam", Err: err}
	}

	var parsed []struct {
		Kind         string   `json:"kind"`
		Prompt       string   `json:"prompt"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correctIndex"`
		Explanation  string   `json:"explanation"`
	}
	if err := ai.DecodeJSON(raw, &parsed); err != nil {
		return nil, &ai.DomainError{Op: "generate exam", Err: err}
	}

	questions := make([]store.QuizQuestion, 0, len(parsed))
	for _, q := range parsed {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			continue
		}
		kind, ok := examKinds[q.Kind]
		if !ok {
			kind = store.QuizFillBlank
		}
		questions = append(questions, store.QuizQuestion{
			ID:           internal.NewID(q.Prompt),
			Kind:         kind,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}
	if len(questions) == 0 {
		return nil, &ai.DomainError{
			Op:  "generate exam",
			Err: fmt.Errorf("no usable questions returned"),
		}
	}
	return questions, nil
}
