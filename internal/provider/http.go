package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// DefaultUserAgent is sent with every outbound lookup.
	DefaultUserAgent = "lookup-agents/1.0"
	// DefaultTimeout bounds a single outbound lookup.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 2 << 20
)

var errMalformedJSON = errors.New("malformed json payload")

// Options configures the HTTP behavior shared by the web adapters.
type Options struct {
	Client    *http.Client
	Timeout   time.Duration
	UserAgent string
	// BaseURL overrides the provider endpoint, mostly for tests.
	BaseURL string
}

type fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func newFetcher(opts Options) fetcher {
	f := fetcher{
		client:    opts.Client,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
	}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	if f.timeout <= 0 {
		f.timeout = DefaultTimeout
	}
	if f.userAgent == "" {
		f.userAgent = DefaultUserAgent
	}
	return f
}

func (f fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (f fetcher) getJSON(ctx context.Context, rawURL string) (gjson.Result, error) {
	body, err := f.get(ctx, rawURL)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errMalformedJSON
	}
	return gjson.ParseBytes(body), nil
}

// stringField returns the value at path only when it is a JSON string.
func stringField(doc gjson.Result, path string) string {
	v := doc.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

func baseURL(override, def string) string {
	if override != "" {
		return override
	}
	return def
}
