package provider

import (
	"context"
	"net/url"
	"strings"
)

const wikipediaBaseURL = "https://en.wikipedia.org"

// Wikipedia resolves the best matching article title and returns its summary extract.
type Wikipedia struct {
	fetcher
	base string
}

func NewWikipedia(opts Options) *Wikipedia {
	return &Wikipedia{
		fetcher: newFetcher(opts),
		base:    baseURL(opts.BaseURL, wikipediaBaseURL),
	}
}

func (p *Wikipedia) Name() string { return KindWikipedia }

func (p *Wikipedia) Query(ctx context.Context, text string) SourceResult {
	params := url.Values{}
	params.Set("q", text)
	params.Set("limit", "1")

	search, err := p.getJSON(ctx, p.base+"/w/rest.php/v1/search/title?"+params.Encode())
	if err != nil {
		return failure(SourceWikipedia, wikipediaBaseURL, err)
	}

	key := stringField(search, "pages.0.key")
	if key == "" {
		return SourceResult{Source: SourceWikipedia, URL: wikipediaBaseURL, Text: ""}
	}

	summary, err := p.getJSON(ctx, p.base+"/api/rest_v1/page/summary/"+url.PathEscape(key))
	if err != nil {
		return failure(SourceWikipedia, wikipediaBaseURL, err)
	}

	link := stringField(summary, "content_urls.desktop.page")
	if link == "" {
		link = wikipediaBaseURL + "/wiki/" + key
	}
	return SourceResult{Source: SourceWikipedia, URL: link, Text: strings.TrimSpace(stringField(summary, "extract"))}
}
