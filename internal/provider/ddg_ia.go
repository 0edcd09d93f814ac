package provider

import (
	"context"
	"net/url"
	"strings"
)

const ddgIABaseURL = "https://api.duckduckgo.com"

// DuckDuckGoIA queries the DuckDuckGo Instant Answer API.
type DuckDuckGoIA struct {
	fetcher
	base string
}

func NewDuckDuckGoIA(opts Options) *DuckDuckGoIA {
	return &DuckDuckGoIA{
		fetcher: newFetcher(opts),
		base:    baseURL(opts.BaseURL, ddgIABaseURL),
	}
}

func (p *DuckDuckGoIA) Name() string { return KindDDGIA }

func (p *DuckDuckGoIA) Query(ctx context.Context, text string) SourceResult {
	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	reqURL := p.base + "/?" + params.Encode()

	doc, err := p.getJSON(ctx, reqURL)
	if err != nil {
		return failure(SourceDDGIA, reqURL, err)
	}

	answer := strings.TrimSpace(firstNonEmpty(
		stringField(doc, "Answer"),
		stringField(doc, "AbstractText"),
		stringField(doc, "Definition"),
		stringField(doc, "RelatedTopics.0.Text"),
	))
	link := stringField(doc, "AbstractURL")
	if link == "" {
		link = "https://duckduckgo.com/?q=" + url.QueryEscape(text)
	}
	return SourceResult{Source: SourceDDGIA, URL: link, Text: answer}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
