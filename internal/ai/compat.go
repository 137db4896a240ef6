package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

// placeholder sent in place of binary parts, which chat completion
// endpoints cannot carry on this path
const binaryPartPlaceholder = "[image attachment omitted: not supported by this provider]"

// CompatibleBackend implements Backend for any OpenAI-compatible chat
// completion endpoint reached over plain HTTP.
type CompatibleBackend struct {
	config  Config
	breaker *gobreaker.CircuitBreaker
}

// NewCompatibleBackend creates a new OpenAI-compatible backend. The client
// itself is built per call because the endpoint comes from user settings
// and may change between invocations.
func NewCompatibleBackend(cfg Config) *CompatibleBackend {
	return &CompatibleBackend{
		config: cfg,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "compatible-backend",
		}),
	}
}

// Generate sends the request as a chat completion call. A configured
// Schema becomes an appended system message instructing strict JSON
// output; conformance is advisory and enforced only by downstream parsing.
func (b *CompatibleBackend) Generate(ctx context.Context, req Request) (string, error) {
	if err := b.IsAvailable(); err != nil {
		return "", err
	}

	clientConfig := openai.DefaultConfig(b.config.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(b.config.BaseURL, "/")
	client := openai.NewClientWithConfig(clientConfig)

	messages := b.buildMessages(req)

	result, err := b.breaker.Execute(func() (interface{}, error) {
		return client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       b.config.Model,
			Messages:    messages,
			Temperature: b.config.Temperature,
		})
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &ProviderError{Provider: b.Name(), StatusCode: apiErr.HTTPStatusCode, Err: err}
		}
		return "", &ProviderError{Provider: b.Name(), Err: err}
	}

	resp := result.(openai.ChatCompletionResponse)
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *CompatibleBackend) buildMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	// The Gemini API names the model turn "model"; chat completion
	// endpoints name it "assistant". Map the role per message.
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	var prompt strings.Builder
	for _, p := range req.Parts {
		if prompt.Len() > 0 {
			prompt.WriteString("\n")
		}
		if p.Data != nil {
			prompt.WriteString(binaryPartPlaceholder)
		} else {
			prompt.WriteString(p.Text)
		}
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.String(),
	})

	if req.Schema != nil {
		schemaJSON, err := json.Marshal(req.Schema)
		if err == nil {
			messages = append(messages, openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Respond ONLY with valid JSON strictly matching this schema, without markdown formatting or any other text:\n%s",
					schemaJSON),
			})
		}
	}

	return messages
}

// Name returns the backend name
func (b *CompatibleBackend) Name() string {
	return ProviderCompatible
}

// IsAvailable checks that endpoint and credentials are configured
func (b *CompatibleBackend) IsAvailable() error {
	if b.config.BaseURL == "" {
		return &ConfigurationError{Missing: "base URL for compatible provider"}
	}
	if b.config.APIKey == "" {
		return &ConfigurationError{Missing: "API key for compatible provider"}
	}
	return nil
}

// SupportsVision reports inline image support
func (b *CompatibleBackend) SupportsVision() bool {
	return false
}
