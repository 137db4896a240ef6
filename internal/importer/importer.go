// Package importer turns raw user input (pasted text, files, images,
// URLs) into library articles. Text cleanup is delegated to the model but
// import never blocks on an AI failure: the raw text is always kept.
package importer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"google.golang.org/genai"

	"codeberg.org/snonux/lingopal/internal"
	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/ocr"
	"codeberg.org/snonux/lingopal/internal/store"
)

// maxTextRunes bounds how much raw text is handed to the model for cleanup
const maxTextRunes = 15000

// Importer builds articles from user-supplied sources
type Importer struct {
	backend   ai.Backend
	extractor *ocr.Extractor
	client    *http.Client
}

// NewImporter creates a new importer
func NewImporter(backend ai.Backend) *Importer {
	return &Importer{
		backend:   backend,
		extractor: ocr.NewExtractor(backend),
		client:    http.DefaultClient,
	}
}

var cleanupSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":   {Type: genai.TypeString},
		"content": {Type: genai.TypeString},
	},
	Required: []string{"title", "content"},
}

// ProcessText asks the model for a cleaned-up title and content for raw
// imported text. On any failure it falls back to the filename as title
// and the raw text as content, so import never fails here.
func (i *Importer) ProcessText(ctx context.Context, raw, filename string) (title, content string) {
	bounded := internal.TruncateRunes(raw, maxTextRunes)
	prompt := fmt.Sprintf(
		"The following text was extracted from a file named %q. "+
			"Produce a short descriptive title and the cleaned-up article content "+
			"(fix broken line wrapping, drop page numbers and boilerplate, keep the language unchanged). "+
			"Return JSON with \"title\" and \"content\".\n\n%s",
		filename, bounded)

	resp, err := i.backend.Generate(ctx, ai.Request{
		Parts:  []ai.Part{ai.TextPart(prompt)},
		Schema: cleanupSchema,
	})
	if err != nil {
		return filename, raw
	}

	var cleaned struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	ai.DecodeJSONLenient(resp, &cleaned)
	if cleaned.Content == "" {
		return filename, raw
	}
	if cleaned.Title == "" {
		cleaned.Title = filename
	}
	return cleaned.Title, cleaned.Content
}

// ImportText builds an article from manually pasted text
func (i *Importer) ImportText(ctx context.Context, raw, name string) store.Article {
	title, content := i.ProcessText(ctx, raw, name)
	return store.Article{
		Title:     title,
		Content:   content,
		Origin:    store.OriginTyped,
		CreatedAt: time.Now(),
	}
}

// imageMIMETypes maps image file extensions to their MIME type
var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// ImportFile builds an article from a plain text file or an image. Images
// go through OCR first and are marked as scanned.
func (i *Importer) ImportFile(ctx context.Context, path string) (store.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Article{}, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	if mimeType, isImage := imageMIMETypes[ext]; isImage {
		text, err := i.extractor.ExtractText(ctx, data, mimeType)
		if err != nil {
			return store.Article{}, err
		}
		title, content := i.ProcessText(ctx, text, name)
		return store.Article{
			Title:     title,
			Content:   content,
			Source:    name,
			Origin:    store.OriginScanned,
			CreatedAt: time.Now(),
		}, nil
	}

	title, content := i.ProcessText(ctx, string(data), name)
	return store.Article{
		Title:     title,
		Content:   content,
		Source:    name,
		Origin:    store.OriginTyped,
		CreatedAt: time.Now(),
	}, nil
}

// ImportURL fetches a web page, extracts its readable content and builds
// a fetched article from it.
func (i *Importer) ImportURL(ctx context.Context, rawURL string) (store.Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return store.Article{}, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return store.Article{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return store.Article{}, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return store.Article{}, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	page, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return store.Article{}, fmt.Errorf("failed to extract article: %w", err)
	}

	title, content := i.ProcessText(ctx, page.TextContent, page.Title)
	return store.Article{
		Title:     title,
		Content:   content,
		Source:    parsed.Host,
		Origin:    store.OriginFetched,
		CreatedAt: time.Now(),
	}, nil
}
