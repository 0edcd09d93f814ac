package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func TestOpenAI_Query(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantURL string
	}{
		{
			name:    "cited url",
			content: "Paris is the capital of France. See https://en.wikipedia.org/wiki/Paris.",
			wantURL: "https://en.wikipedia.org/wiki/Paris",
		},
		{
			name:    "no citation",
			content: "Paris is the capital of France.",
			wantURL: "https://platform.openai.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatCompletion(tt.content))
			}))
			defer srv.Close()

			p, err := NewOpenAI(LLMConfig{APIKey: "sk-test"}, Options{BaseURL: srv.URL})
			require.NoError(t, err)

			res := p.Query(context.Background(), "What is the capital of France?")

			assert.Equal(t, SourceOpenAI, res.Source)
			assert.Equal(t, tt.content, res.Text)
			assert.Equal(t, tt.wantURL, res.URL)
		})
	}
}

func TestOpenAI_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p, err := NewOpenAI(LLMConfig{APIKey: "sk-test"}, Options{BaseURL: srv.URL})
	require.NoError(t, err)

	res := p.Query(context.Background(), "q")

	assert.True(t, res.Failed())
	assert.Equal(t, "https://platform.openai.com/", res.URL)
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(LLMConfig{}, Options{})
	assert.Error(t, err)
}
