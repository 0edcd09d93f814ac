// Package merge folds provider texts into a short deduplicated sentence summary.
package merge

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"lookup-agents/internal/provider"
)

const (
	MinSentenceLen = 3
	MaxSentenceLen = 240
	MaxSentences   = 8
)

// Merge splits every usable result into sentences and keeps the first
// MaxSentences distinct ones, compared case-insensitively. Order follows the
// results and then the sentences within each text. The result is never nil.
func Merge(results []provider.SourceResult) []string {
	summary := make([]string, 0, MaxSentences)
	seen := make(map[string]struct{})

	for _, r := range results {
		if r.Text == "" || r.Failed() {
			continue
		}
		for _, s := range SplitSentences(r.Text) {
			s = strings.TrimSpace(s)
			n := utf8.RuneCountInString(s)
			if n < MinSentenceLen || n > MaxSentenceLen {
				continue
			}
			key := strings.ToLower(s)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			summary = append(summary, s)
			if len(summary) == MaxSentences {
				return summary
			}
		}
	}
	return summary
}

// SplitSentences cuts text after '.', '!' or '?' when whitespace follows.
// The whitespace run is dropped. Abbreviations and decimals followed by a
// space are split too.
func SplitSentences(text string) []string {
	var parts []string
	start := 0
	var prev rune
	for i, r := range text {
		if i < start {
			continue
		}
		if unicode.IsSpace(r) && isTerminal(prev) {
			parts = append(parts, text[start:i])
			start = skipSpace(text, i)
			prev = 0
			continue
		}
		prev = r
	}
	if start < len(text) || len(parts) == 0 {
		parts = append(parts, text[start:])
	}
	return parts
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
