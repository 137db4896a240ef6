package translation

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/lingopal/internal/ai"
)

// Translator handles translation into the learner's native language
type Translator struct {
	backend ai.Backend
}

// NewTranslator creates a new translator instance
func NewTranslator(backend ai.Backend) *Translator {
	return &Translator{backend: backend}
}

// Translate translates a text block into the target language. No response
// schema is requested; the model's text is returned as-is.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text to %s. Respond with only the translation, nothing else.\n\n%s",
		targetLanguage, text)

	raw, err := t.backend.Generate(ctx, ai.Request{
		Parts: []ai.Part{ai.TextPart(prompt)},
	})
	if err != nil {
		return "", &ai.DomainError{Op: "translate text", Err: err}
	}
	return strings.TrimSpace(raw), nil
}

// Cache stores translations in memory for repeated lookups
type Cache struct {
	translations map[string]string
}

// NewCache creates a new translation cache
func NewCache() *Cache {
	return &Cache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (c *Cache) Add(text, translation string) {
	c.translations[text] = translation
}

// Get retrieves a translation from the cache
func (c *Cache) Get(text string) (string, bool) {
	translation, ok := c.translations[text]
	return translation, ok
}
