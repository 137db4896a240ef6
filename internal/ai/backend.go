package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Provider names accepted in Config.Provider
const (
	ProviderGemini     = "gemini"
	ProviderCompatible = "compatible"
)

// Config holds common configuration for model backends
type Config struct {
	Provider    string  // Backend name: "gemini" or "compatible"
	BaseURL     string  // Endpoint base URL (compatible backend only)
	APIKey      string  // API key for the selected backend
	Model       string  // Model name, e.g. "gemini-2.5-flash"
	Temperature float32 // Sampling temperature
	Persona     string  // Tutor persona text used as system instruction
}

// DefaultConfig returns default backend configuration
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
		Persona:     "You are a friendly and patient language tutor.",
	}
}

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single prior turn of a chat conversation
type Message struct {
	Role    Role
	Content string
}

// Part is one piece of prompt content, either plain text or inline binary
// data such as an image for OCR.
type Part struct {
	Text string
	Data []byte
	MIME string
}

// TextPart creates a plain text prompt part
func TextPart(text string) Part {
	return Part{Text: text}
}

// DataPart creates an inline binary prompt part
func DataPart(data []byte, mimeType string) Part {
	return Part{Data: data, MIME: mimeType}
}

// Request describes a single model invocation
type Request struct {
	// System is an optional system-level instruction (persona, context)
	System string

	// History holds prior conversation turns, oldest first
	History []Message

	// Parts is the prompt content of the new turn
	Parts []Part

	// Schema, when set, requests a JSON response matching the schema.
	// The Gemini backend enforces it natively; the compatible backend
	// instructs the model textually and conformance is advisory only.
	Schema *genai.Schema

	// WebSearch requests search grounding. Only the Gemini backend
	// supports it; the compatible backend ignores the flag.
	WebSearch bool
}

// Backend defines the interface for model backends
type Backend interface {
	// Generate sends the request to the model and returns its raw text
	// response (empty string if the response carries no text)
	Generate(ctx context.Context, req Request) (string, error)

	// Name returns the backend name
	Name() string

	// IsAvailable checks if the backend is properly configured
	IsAvailable() error

	// SupportsVision reports whether inline binary parts are supported
	SupportsVision() bool
}

// NewBackend creates the appropriate model backend based on configuration.
// The selection happens once here so that callers stay provider-agnostic.
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGeminiBackend(cfg)
	case ProviderCompatible:
		return NewCompatibleBackend(cfg), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
}
