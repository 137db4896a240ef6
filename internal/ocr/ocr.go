// Package ocr extracts text from uploaded images through a vision-capable
// model backend.
package ocr

import (
	"context"
	"strings"

	"codeberg.org/snonux/lingopal/internal/ai"
)

// visionUnsupportedMessage is returned instead of an error when the
// configured backend cannot accept image input. This is a documented
// capability gap of chat completion endpoints, not a failure.
const visionUnsupportedMessage = "Image text extraction is not available with the current AI provider. " +
	"Switch to the Gemini provider in the settings, or paste the text manually."

const extractInstruction = "Extract ALL text from this image exactly as written. " +
	"Maintain the original structure and paragraph breaks. " +
	"Return ONLY the extracted text, no commentary or additional formatting."

// Extractor recovers text from images
type Extractor struct {
	backend ai.Backend
}

// NewExtractor creates a new text extractor
func NewExtractor(backend ai.Backend) *Extractor {
	return &Extractor{backend: backend}
}

// ExtractText runs OCR over the image. On a backend without vision
// support it returns an explanatory placeholder string instead of failing.
func (e *Extractor) ExtractText(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	if !e.backend.SupportsVision() {
		return visionUnsupportedMessage, nil
	}

	raw, err := e.backend.Generate(ctx, ai.Request{
		Parts: []ai.Part{
			ai.DataPart(imageData, mimeType),
			ai.TextPart(extractInstruction),
		},
	})
	if err != nil {
		return "", &ai.DomainError{Op: "extract text from image", Err: err}
	}
	return strings.TrimSpace(raw), nil
}
