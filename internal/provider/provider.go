// Package provider wraps external lookup services behind a single contract.
// Adapters never return Go errors: every failure is folded into the returned
// SourceResult so that one bad provider never aborts an aggregation.
package provider

import (
	"context"
	"fmt"
	"strings"
)

// Display names reported in SourceResult.Source.
const (
	SourceDDGIA     = "DuckDuckGo IA"
	SourceWikipedia = "Wikipedia"
	SourceWikidata  = "Wikidata"
	SourceDDGWeb    = "DuckDuckGo Web"
	SourceOpenAI    = "OpenAI"
)

// ErrorMarker prefixes the text of a result whose lookup failed.
const ErrorMarker = "(error)"

// SourceResult is the normalized outcome of one provider lookup.
// Source is the provider's display name.
type SourceResult struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	Text   string `json:"text"`
}

// Failed reports whether the lookup behind r failed.
func (r SourceResult) Failed() bool {
	return strings.Contains(r.Text, ErrorMarker)
}

// Usable reports whether r carries text worth merging.
func (r SourceResult) Usable() bool {
	return strings.TrimSpace(r.Text) != "" && !r.Failed()
}

// Provider looks up free text in one external service.
type Provider interface {
	// Name returns the registry kind, used for configuration and metric labels.
	Name() string
	Query(ctx context.Context, text string) SourceResult
}

func failure(source, url string, err error) SourceResult {
	return SourceResult{
		Source: source,
		URL:    url,
		Text:   fmt.Sprintf("%s %v", ErrorMarker, err),
	}
}
