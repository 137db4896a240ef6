// Package dictionary provides word definitions and CEFR level assessment
// through the model backend.
package dictionary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/store"
)

// assessWordLimit bounds how many recent words a level assessment considers
const assessWordLimit = 20

// Service answers dictionary lookups
type Service struct {
	backend ai.Backend
}

// NewService creates a new dictionary service
func NewService(backend ai.Backend) *Service {
	return &Service{backend: backend}
}

var definitionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"word":         {Type: genai.TypeString},
		"phonetic":     {Type: genai.TypeString},
		"meaning":      {Type: genai.TypeString},
		"definition":   {Type: genai.TypeString},
		"example":      {Type: genai.TypeString},
		"partOfSpeech": {Type: genai.TypeString},
		"level":        {Type: genai.TypeString},
		"synonyms":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"antonyms":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"related":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"word", "meaning", "definition", "level"},
}

// Define looks up a word. When a context sentence is given the definition
// is for the word as used there; otherwise it covers common usage.
func (s *Service) Define(ctx context.Context, word, contextSentence, nativeLanguage string) (store.WordDefinition, error) {
	var prompt string
	if contextSentence != "" {
		prompt = fmt.Sprintf(
			"Define the word %q as it is used in this sentence: %q. "+
				"Give the meaning in %s and the explanation in the word's own language. "+
				"Include IPA phonetics, part of speech, a CEFR level tag (A1-C2), an example "+
				"sentence and up to 3 synonyms, antonyms and related words each.",
			word, contextSentence, nativeLanguage)
	} else {
		prompt = fmt.Sprintf(
			"Define the word %q in its most common usage. "+
				"Give the meaning in %s and the explanation in the word's own language. "+
				"Include IPA phonetics, part of speech, a CEFR level tag (A1-C2), an example "+
				"sentence and up to 3 synonyms, antonyms and related words each.",
			word, nativeLanguage)
	}

	raw, err := s.backend.Generate(ctx, ai.Request{
		Parts:  []ai.Part{ai.TextPart(prompt)},
		Schema: definitionSchema,
	})
	if err != nil {
		return store.WordDefinition{}, &ai.DomainError{Op: "define word", Err: err}
	}

	var def store.WordDefinition
	ai.DecodeJSONLenient(raw, &def)
	if def.Word == "" {
		def.Word = word
	}
	if def.Meaning == "" || def.Definition == "" || def.Level == "" {
		return store.WordDefinition{}, &ai.DomainError{
			Op:  "define word",
			Err: fmt.Errorf("incomplete definition for %q", word),
		}
	}
	def.Synonyms = capList(def.Synonyms, 3)
	def.Antonyms = capList(def.Antonyms, 3)
	def.Related = capList(def.Related, 3)
	return def, nil
}

func capList(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}

var levelSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"level": {Type: genai.TypeString},
	},
	Required: []string{"level"},
}

// AssessLevel estimates a CEFR level from recently saved vocabulary. An
// empty word list short-circuits to "Unknown" without a model call, and
// any failure also yields "Unknown" rather than an error.
func (s *Service) AssessLevel(ctx context.Context, words []string) string {
	if len(words) == 0 {
		return "Unknown"
	}
	if len(words) > assessWordLimit {
		words = words[len(words)-assessWordLimit:]
	}

	prompt := fmt.Sprintf(
		"A language learner recently saved these vocabulary words: %s. "+
			"Estimate the learner's CEFR level from the difficulty of these words. "+
			"Return JSON with a single \"level\" field holding one of A1, A2, B1, B2, C1, C2.",
		strings.Join(words, ", "))

	raw, err := s.backend.Generate(ctx, ai.Request{
		Parts:  []ai.Part{ai.TextPart(prompt)},
		Schema: levelSchema,
	})
	if err != nil {
		return "Unknown"
	}

	var result struct {
		Level string `json:"level"`
	}
	ai.DecodeJSONLenient(raw, &result)
	if result.Level == "" {
		return "Unknown"
	}
	return result.Level
}
