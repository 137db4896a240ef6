package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/lingopal/internal/ai"
)

// Lister handles listing the models a compatible endpoint offers
type Lister struct {
	config ai.Config
}

// NewLister creates a new model lister for the compatible provider
func NewLister(config ai.Config) *Lister {
	return &Lister{config: config}
}

// ListAvailableModels prints the chat models the configured endpoint
// offers. Only meaningful for the compatible provider; the Gemini model
// name is typed directly into the settings.
func (l *Lister) ListAvailableModels() error {
	if l.config.BaseURL == "" {
		return &ai.ConfigurationError{Missing: "base URL for compatible provider"}
	}
	if l.config.APIKey == "" {
		return &ai.ConfigurationError{Missing: "API key for compatible provider"}
	}

	clientConfig := openai.DefaultConfig(l.config.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(l.config.BaseURL, "/")
	client := openai.NewClientWithConfig(clientConfig)

	models, err := client.ListModels(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	sort.Strings(ids)

	fmt.Println("Available models:")
	if len(ids) == 0 {
		fmt.Println("  No models found")
	}
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}
