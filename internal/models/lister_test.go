package models

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lingopal/internal/ai"
)

func TestListAvailableModelsNotConfigured(t *testing.T) {
	tests := []struct {
		name   string
		config ai.Config
	}{
		{name: "missing base URL", config: ai.Config{APIKey: "k"}},
		{name: "missing API key", config: ai.Config{BaseURL: "http://localhost:11434/v1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLister(tt.config).ListAvailableModels()
			require.Error(t, err)

			var cfgErr *ai.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestListAvailableModels(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"id":"llama3","object":"model"},{"id":"mistral","object":"model"}]}`))
	}))
	defer server.Close()

	lister := NewLister(ai.Config{BaseURL: server.URL, APIKey: "test-key"})
	err := lister.ListAvailableModels()
	require.NoError(t, err)

	assert.Equal(t, "/models", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestListAvailableModelsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	lister := NewLister(ai.Config{BaseURL: server.URL, APIKey: "k"})
	assert.Error(t, lister.ListAvailableModels())
}
