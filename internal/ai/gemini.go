package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend implements Backend for the Gemini API
type GeminiBackend struct {
	config Config
	client *genai.Client
}

// NewGeminiBackend creates a new Gemini backend
func NewGeminiBackend(cfg Config) (*GeminiBackend, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{
		config: cfg,
		client: client,
	}, nil
}

// Generate sends the request through the Gemini structured generation API
func (b *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(b.config.Temperature),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.Schema
	}
	if req.WebSearch {
		config.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	var contents []*genai.Content
	for _, m := range req.History {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Data != nil {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MIME))
		} else {
			parts = append(parts, genai.NewPartFromText(p.Text))
		}
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	resp, err := b.client.Models.GenerateContent(ctx, b.config.Model, contents, config)
	if err != nil {
		return "", &ProviderError{Provider: b.Name(), Err: err}
	}

	// Text() returns the empty string when the response has no text part
	return resp.Text(), nil
}

// Name returns the backend name
func (b *GeminiBackend) Name() string {
	return ProviderGemini
}

// IsAvailable checks if the Gemini API key is configured
func (b *GeminiBackend) IsAvailable() error {
	if b.config.APIKey == "" {
		return &ConfigurationError{Missing: "Gemini API key"}
	}
	return nil
}

// SupportsVision reports inline image support
func (b *GeminiBackend) SupportsVision() bool {
	return true
}
