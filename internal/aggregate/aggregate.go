// Package aggregate runs a question across the ordered providers.
package aggregate

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lookup-agents/internal/provider"
)

// Mode selects how providers are invoked.
type Mode string

const (
	ModePoll  Mode = "poll"
	ModeChain Mode = "chain"
)

// DefaultPause separates sequential provider calls.
const DefaultPause = 100 * time.Millisecond

const priorAnswerLimit = 300

// ParseMode lower-cases s; anything other than "chain" resolves to poll.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeChain {
		return ModeChain
	}
	return ModePoll
}

// Options controls pacing of the strategy.
type Options struct {
	// Pause between sequential invocations. Negative disables it.
	Pause time.Duration
	// Concurrent fans poll mode out to all providers at once.
	Concurrent bool
}

// Strategy invokes an ordered provider list. It holds no per-request state.
type Strategy struct {
	providers []provider.Provider
	opts      Options
}

func New(providers []provider.Provider, opts Options) *Strategy {
	if opts.Pause == 0 {
		opts.Pause = DefaultPause
	}
	return &Strategy{providers: providers, opts: opts}
}

// Providers returns the configured provider names in order.
func (s *Strategy) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Run returns exactly one result per provider, in provider order.
func (s *Strategy) Run(ctx context.Context, mode Mode, question string) []provider.SourceResult {
	if mode == ModeChain {
		return s.chain(ctx, question)
	}
	if s.opts.Concurrent {
		return s.pollConcurrent(ctx, question)
	}
	return s.poll(ctx, question)
}

func (s *Strategy) poll(ctx context.Context, question string) []provider.SourceResult {
	out := make([]provider.SourceResult, 0, len(s.providers))
	for i, p := range s.providers {
		if i > 0 {
			s.pause(ctx)
		}
		out = append(out, p.Query(ctx, question))
	}
	return out
}

func (s *Strategy) pollConcurrent(ctx context.Context, question string) []provider.SourceResult {
	out := make([]provider.SourceResult, len(s.providers))
	var g errgroup.Group
	for i, p := range s.providers {
		g.Go(func() error {
			out[i] = p.Query(ctx, question)
			return nil
		})
	}
	// Query reports failures inside SourceResult, so the group never carries an error.
	_ = g.Wait()
	return out
}

func (s *Strategy) chain(ctx context.Context, question string) []provider.SourceResult {
	out := make([]provider.SourceResult, 0, len(s.providers))
	prompt := question
	for i, p := range s.providers {
		if i > 0 {
			s.pause(ctx)
		}
		res := p.Query(ctx, prompt)
		out = append(out, res)
		// Error-marked text is carried like any other answer; only empty text is skipped.
		if strings.TrimSpace(res.Text) != "" {
			prompt = ChainPrompt(question, res.Text)
		}
	}
	return out
}

// ChainPrompt appends the first 300 characters of prior to question.
func ChainPrompt(question, prior string) string {
	prior = strings.TrimSpace(prior)
	if r := []rune(prior); len(r) > priorAnswerLimit {
		prior = string(r[:priorAnswerLimit])
	}
	return question + ". Prior answer: " + prior
}

func (s *Strategy) pause(ctx context.Context) {
	if s.opts.Pause <= 0 {
		return
	}
	t := time.NewTimer(s.opts.Pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
