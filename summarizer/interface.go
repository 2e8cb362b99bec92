// Package summarizer sends transcript text to a generative-text
// provider and returns a condensed summary. Two providers are
// supported behind one interface; the choice is configuration, not
// part of the contract.
package summarizer

import (
	"context"
	"time"

	"yt-summary/models"
)

type Summarizer interface {
	// Summarize returns a condensed rendering of the transcript in the
	// requested style and tone. Upstream failures are reported as
	// summary_unavailable; transcripts beyond the accepted size as
	// input_too_large.
	Summarize(ctx context.Context, transcript models.Transcript, style models.Style, tone models.Tone) (string, error)

	// Model identifies the upstream model, for logging and caching.
	Model() string
}

type Config struct {
	APIKey string

	// Model overrides the provider default when non-empty.
	Model string

	// CharLimit is the requested maximum summary length in characters.
	CharLimit int

	// Timeout bounds a single upstream call, retries included.
	Timeout time.Duration
}

func (c Config) withDefaults(defaultModel string) Config {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.CharLimit <= 0 {
		c.CharLimit = 900
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}
