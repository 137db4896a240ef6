// Package search finds reading material on a topic through the model,
// using web search grounding where the backend supports it.
package search

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"codeberg.org/snonux/lingopal/internal"
	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/store"
)

// articleSource labels articles found through grounded search
const articleSource = "Google Search"

// Searcher finds articles for a topic
type Searcher struct {
	backend ai.Backend
}

// NewSearcher creates a new article searcher
func NewSearcher(backend ai.Backend) *Searcher {
	return &Searcher{backend: backend}
}

var resultSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"content": {Type: genai.TypeString},
		},
		Required: []string{"title", "content"},
	},
}

// Search asks the model for short articles about the topic. A backend
// with web search grounding returns real material; others fabricate
// suitable reading texts. A malformed response yields an empty list, not
// an error.
func (s *Searcher) Search(ctx context.Context, topic, language string) ([]store.Article, error) {
	prompt := fmt.Sprintf(
		"Find 3 recent, interesting short articles about %q suitable for a %s learner. "+
			"Return a JSON array of objects with \"title\" and \"content\" fields. "+
			"Each content should be 2-4 paragraphs of plain text.",
		topic, language)

	raw, err := s.backend.Generate(ctx, ai.Request{
		Parts:     []ai.Part{ai.TextPart(prompt)},
		Schema:    resultSchema,
		WebSearch: true,
	})
	if err != nil {
		return nil, &ai.DomainError{Op: "search articles", Err: err}
	}

	var items []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := ai.DecodeJSON(raw, &items); err != nil {
		// Non-JSON search output degrades to no results
		return nil, nil
	}

	articles := make([]store.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" && item.Content == "" {
			continue
		}
		articles = append(articles, store.Article{
			ID:        internal.NewID(item.Title),
			Title:     item.Title,
			Content:   item.Content,
			Source:    articleSource,
			Origin:    store.OriginFetched,
			CreatedAt: time.Now(),
		})
	}
	return articles, nil
}
