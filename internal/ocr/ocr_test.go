package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/testutil"
)

func TestExtractText(t *testing.T) {
	backend := testutil.NewMockBackend("  Der schnelle Fuchs.\n")
	extractor := NewExtractor(backend)

	text, err := extractor.ExtractText(context.Background(), []byte{0x89, 0x50}, "image/png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "Der schnelle Fuchs." {
		t.Errorf("Expected trimmed text, got %q", text)
	}

	req := backend.LastRequest()
	if len(req.Parts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(req.Parts))
	}
	if req.Parts[0].MIME != "image/png" {
		t.Errorf("Expected image part first, got %+v", req.Parts[0])
	}
	if !strings.Contains(req.Parts[1].Text, "Extract ALL text") {
		t.Errorf("Unexpected instruction: %q", req.Parts[1].Text)
	}
}

func TestExtractTextWithoutVision(t *testing.T) {
	backend := testutil.NewMockBackend("should never be called")
	backend.Vision = false
	extractor := NewExtractor(backend)

	text, err := extractor.ExtractText(context.Background(), []byte{1}, "image/jpeg")
	if err != nil {
		t.Fatalf("Expected no error for the capability gap, got %v", err)
	}
	if text != visionUnsupportedMessage {
		t.Errorf("Expected placeholder message, got %q", text)
	}
	if backend.CallCount() != 0 {
		t.Errorf("Expected no model call, got %d", backend.CallCount())
	}
}

func TestExtractTextBackendError(t *testing.T) {
	extractor := NewExtractor(testutil.FailingBackend(errors.New("boom")))

	_, err := extractor.ExtractText(context.Background(), []byte{1}, "image/png")
	var domainErr *ai.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Expected DomainError, got %T", err)
	}
	if domainErr.Op != "extract text from image" {
		t.Errorf("Expected op 'extract text from image', got %q", domainErr.Op)
	}
}
