package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const ddgWebBaseURL = "https://duckduckgo.com"

// DuckDuckGoWeb scrapes the snippet of the first organic DuckDuckGo HTML result.
type DuckDuckGoWeb struct {
	fetcher
	base string
}

func NewDuckDuckGoWeb(opts Options) *DuckDuckGoWeb {
	return &DuckDuckGoWeb{
		fetcher: newFetcher(opts),
		base:    baseURL(opts.BaseURL, ddgWebBaseURL),
	}
}

func (p *DuckDuckGoWeb) Name() string { return KindDDGWeb }

func (p *DuckDuckGoWeb) Query(ctx context.Context, text string) SourceResult {
	reqURL := p.base + "/html/?q=" + url.QueryEscape(text)

	body, err := p.get(ctx, reqURL)
	if err != nil {
		return failure(SourceDDGWeb, reqURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return failure(SourceDDGWeb, reqURL, fmt.Errorf("parse html: %w", err))
	}

	var snippet string
	if first := doc.Find("a.result__a").First(); first.Length() > 0 {
		if result := first.Closest("div.result__body"); result.Length() > 0 {
			snippet = strings.Join(strings.Fields(result.Find(".result__snippet").First().Text()), " ")
		}
	}
	return SourceResult{Source: SourceDDGWeb, URL: reqURL, Text: snippet}
}
