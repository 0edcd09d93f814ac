package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuckDuckGoIA_Query(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
		wantURL  string
		wantErr  bool
	}{
		{
			name:     "answer wins",
			status:   http.StatusOK,
			body:     `{"Answer":"Paris","AbstractText":"Paris is the capital of France.","AbstractURL":"https://en.wikipedia.org/wiki/Paris"}`,
			wantText: "Paris",
			wantURL:  "https://en.wikipedia.org/wiki/Paris",
		},
		{
			name:     "answer is trimmed",
			status:   http.StatusOK,
			body:     `{"Answer":"  Paris \n","AbstractURL":"https://en.wikipedia.org/wiki/Paris"}`,
			wantText: "Paris",
			wantURL:  "https://en.wikipedia.org/wiki/Paris",
		},
		{
			name:     "abstract when no answer",
			status:   http.StatusOK,
			body:     `{"Answer":"","AbstractText":"Paris is the capital of France.","AbstractURL":"https://en.wikipedia.org/wiki/Paris"}`,
			wantText: "Paris is the capital of France.",
			wantURL:  "https://en.wikipedia.org/wiki/Paris",
		},
		{
			name:     "definition then fallback url",
			status:   http.StatusOK,
			body:     `{"Definition":"A city in France.","AbstractURL":""}`,
			wantText: "A city in France.",
			wantURL:  "https://duckduckgo.com/?q=capital+of+France",
		},
		{
			name:     "first related topic",
			status:   http.StatusOK,
			body:     `{"RelatedTopics":[{"Text":"Paris - capital city"},{"Text":"other"}]}`,
			wantText: "Paris - capital city",
			wantURL:  "https://duckduckgo.com/?q=capital+of+France",
		},
		{
			name:     "nothing found",
			status:   http.StatusOK,
			body:     `{"RelatedTopics":[]}`,
			wantText: "",
			wantURL:  "https://duckduckgo.com/?q=capital+of+France",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"Answer":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUA, gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUA = r.Header.Get("User-Agent")
				gotQuery = r.URL.Query().Get("q")
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.Equal(t, "1", r.URL.Query().Get("no_html"))
				assert.Equal(t, "1", r.URL.Query().Get("skip_disambig"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewDuckDuckGoIA(Options{BaseURL: srv.URL, UserAgent: "test-agent/1.0"})
			res := p.Query(context.Background(), "capital of France")

			assert.Equal(t, SourceDDGIA, res.Source)
			assert.Equal(t, "test-agent/1.0", gotUA)
			assert.Equal(t, "capital of France", gotQuery)
			if tt.wantErr {
				assert.True(t, strings.HasPrefix(res.Text, ErrorMarker+" "), "text %q", res.Text)
				assert.True(t, strings.HasPrefix(res.URL, srv.URL), "failure url should be the request url")
				return
			}
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, tt.wantURL, res.URL)
		})
	}
}

func TestDuckDuckGoIA_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	res := NewDuckDuckGoIA(Options{BaseURL: srv.URL}).Query(context.Background(), "x")

	assert.True(t, res.Failed())
	assert.False(t, res.Usable())
}
