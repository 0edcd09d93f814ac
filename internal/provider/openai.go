package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"mvdan.cc/xurls/v2"
)

const (
	openAIFallbackURL  = "https://platform.openai.com/"
	defaultTemperature = 0.2
	systemPrompt       = "You answer factual questions in two or three short sentences. Cite one https source URL when you know it."
)

// LLMConfig configures the optional OpenAI-backed provider.
type LLMConfig struct {
	APIKey string
	Model  string
}

// OpenAI asks a chat model the question and reports its answer as a lookup result.
type OpenAI struct {
	model   openai.ChatModel
	client  openai.Client
	timeout time.Duration
}

// NewOpenAI builds the provider; an API key is required.
func NewOpenAI(cfg LLMConfig, opts Options) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key required")
	}
	model := openai.ChatModel(cfg.Model)
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	f := newFetcher(opts)
	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(f.client),
		option.WithHeader("User-Agent", f.userAgent),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &OpenAI{
		model:   model,
		client:  openai.NewClient(reqOpts...),
		timeout: f.timeout,
	}, nil
}

func (p *OpenAI) Name() string { return KindOpenAI }

func (p *OpenAI) Query(ctx context.Context, text string) SourceResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(defaultTemperature),
	})
	if err != nil {
		return failure(SourceOpenAI, openAIFallbackURL, fmt.Errorf("chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return failure(SourceOpenAI, openAIFallbackURL, errors.New("no choices returned"))
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	return SourceResult{Source: SourceOpenAI, URL: citedURL(answer), Text: answer}
}

// citedURL returns the first https URL mentioned in answer.
func citedURL(answer string) string {
	re, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return openAIFallbackURL
	}
	if u := re.FindString(answer); u != "" {
		return strings.TrimRight(u, ".,;)")
	}
	return openAIFallbackURL
}
