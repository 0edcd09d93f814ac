package provider

import (
	"context"
	"net/url"
	"strings"
)

const wikidataBaseURL = "https://www.wikidata.org"

// Wikidata searches entities and reports the label and description of the top hit.
type Wikidata struct {
	fetcher
	base string
}

func NewWikidata(opts Options) *Wikidata {
	return &Wikidata{
		fetcher: newFetcher(opts),
		base:    baseURL(opts.BaseURL, wikidataBaseURL),
	}
}

func (p *Wikidata) Name() string { return KindWikidata }

func (p *Wikidata) Query(ctx context.Context, text string) SourceResult {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("format", "json")
	params.Set("language", "en")
	params.Set("limit", "1")
	params.Set("search", text)
	reqURL := p.base + "/w/api.php?" + params.Encode()

	doc, err := p.getJSON(ctx, reqURL)
	if err != nil {
		return failure(SourceWikidata, reqURL, err)
	}

	hits := doc.Get("search")
	if !hits.IsArray() || len(hits.Array()) == 0 {
		return SourceResult{Source: SourceWikidata, URL: wikidataBaseURL, Text: ""}
	}
	hit := hits.Array()[0]

	label := stringField(hit, "label")
	desc := stringField(hit, "description")
	answer := strings.Trim(label+" — "+desc, " —")

	link := wikidataBaseURL + "/"
	if id := stringField(hit, "id"); id != "" {
		link = wikidataBaseURL + "/wiki/" + id
	}
	return SourceResult{Source: SourceWikidata, URL: link, Text: answer}
}
