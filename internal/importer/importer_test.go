package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/lingopal/internal/store"
	"codeberg.org/snonux/lingopal/internal/testutil"
)

func TestProcessText(t *testing.T) {
	backend := testutil.NewMockBackend(`{"title":"Clean Title","content":"Clean content."}`)
	imp := NewImporter(backend)

	title, content := imp.ProcessText(context.Background(), "raw  broken\ntext", "notes.txt")
	if title != "Clean Title" {
		t.Errorf("Expected 'Clean Title', got %q", title)
	}
	if content != "Clean content." {
		t.Errorf("Expected cleaned content, got %q", content)
	}
}

func TestProcessTextFallback(t *testing.T) {
	tests := []struct {
		name    string
		backend *testutil.MockBackend
	}{
		{name: "backend error", backend: testutil.FailingBackend(errors.New("boom"))},
		{name: "malformed response", backend: testutil.NewMockBackend("not json")},
		{name: "empty content", backend: testutil.NewMockBackend(`{"title":"T","content":""}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := NewImporter(tt.backend)
			title, content := imp.ProcessText(context.Background(), "the raw text", "file.txt")
			if title != "file.txt" {
				t.Errorf("Expected fallback title 'file.txt', got %q", title)
			}
			if content != "the raw text" {
				t.Errorf("Expected raw text kept, got %q", content)
			}
		})
	}
}

func TestProcessTextTruncatesLongInput(t *testing.T) {
	backend := testutil.NewMockBackend(`{"title":"T","content":"C"}`)
	imp := NewImporter(backend)

	long := strings.Repeat("x", maxTextRunes+500)
	imp.ProcessText(context.Background(), long, "big.txt")

	prompt := backend.LastRequest().Parts[0].Text
	if len(prompt) >= len(long) {
		t.Errorf("Expected prompt shorter than input, got %d >= %d", len(prompt), len(long))
	}
}

func TestImportText(t *testing.T) {
	backend := testutil.NewMockBackend(`{"title":"Pasted","content":"Body"}`)
	imp := NewImporter(backend)

	article := imp.ImportText(context.Background(), "some pasted text", "pasted text")
	if article.Origin != store.OriginTyped {
		t.Errorf("Expected origin %q, got %q", store.OriginTyped, article.Origin)
	}
	if article.Title != "Pasted" || article.Content != "Body" {
		t.Errorf("Unexpected article: %+v", article)
	}
}

func TestImportTextFile(t *testing.T) {
	backend := testutil.NewMockBackend(`{"title":"Essay","content":"Essay body"}`)
	imp := NewImporter(backend)

	path := filepath.Join(t.TempDir(), "essay.txt")
	testutil.CreateTestFile(t, path, []byte("raw essay text"))

	article, err := imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if article.Origin != store.OriginTyped {
		t.Errorf("Expected origin %q, got %q", store.OriginTyped, article.Origin)
	}
	if article.Source != "essay.txt" {
		t.Errorf("Expected source 'essay.txt', got %q", article.Source)
	}
}

func TestImportImageFile(t *testing.T) {
	// First call is OCR, second is cleanup
	backend := testutil.NewMockBackend(
		"extracted page text",
		`{"title":"Scan","content":"extracted page text"}`,
	)
	imp := NewImporter(backend)

	path := filepath.Join(t.TempDir(), "page.png")
	testutil.CreateTestFile(t, path, []byte{0x89, 0x50, 0x4e, 0x47})

	article, err := imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if article.Origin != store.OriginScanned {
		t.Errorf("Expected origin %q, got %q", store.OriginScanned, article.Origin)
	}
	if article.Content != "extracted page text" {
		t.Errorf("Unexpected content: %q", article.Content)
	}

	if backend.CallCount() != 2 {
		t.Fatalf("Expected 2 model calls, got %d", backend.CallCount())
	}
	ocrReq := backend.Requests[0]
	if len(ocrReq.Parts) == 0 || ocrReq.Parts[0].MIME != "image/png" {
		t.Errorf("Expected image data in OCR request, got %+v", ocrReq.Parts)
	}
}

func TestImportMissingFile(t *testing.T) {
	imp := NewImporter(testutil.NewMockBackend("unused"))

	_, err := imp.ImportFile(context.Background(), "/nonexistent/file.txt")
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestImportURL(t *testing.T) {
	page := `<html><head><title>News</title></head><body>
		<article><h1>Big Story</h1>
		<p>First paragraph of the story with enough words to count as content.</p>
		<p>Second paragraph of the story, also reasonably long for extraction.</p>
		</article></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer server.Close()

	backend := testutil.NewMockBackend(`{"title":"Big Story","content":"Cleaned story text"}`)
	imp := NewImporter(backend)

	article, err := imp.ImportURL(context.Background(), server.URL+"/story")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if article.Origin != store.OriginFetched {
		t.Errorf("Expected origin %q, got %q", store.OriginFetched, article.Origin)
	}
	if !strings.Contains(server.URL, article.Source) {
		t.Errorf("Expected source to be the host, got %q", article.Source)
	}
	if article.Title != "Big Story" {
		t.Errorf("Expected title 'Big Story', got %q", article.Title)
	}
}

func TestImportURLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	imp := NewImporter(testutil.NewMockBackend("unused"))
	_, err := imp.ImportURL(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected an error for a 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected status in error, got %v", err)
	}
}
