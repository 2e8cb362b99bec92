package summary

import (
	"context"
	"time"

	"yt-summary/models"
)

// Service runs the extract-retrieve-summarize pipeline for one
// incoming message. Invocations are independent; the service holds no
// per-request state and may be called concurrently.
type Service interface {
	Summarize(ctx context.Context, req Request) (string, error)

	// UserMessage translates any pipeline error into the fixed reply
	// text shown to the sender. This is the only place error kinds are
	// turned into user-facing wording.
	UserMessage(err error) string
}

// TranscriptFetcher retrieves the caption text for a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, ref models.VideoRef) (models.Transcript, error)
}

// Request is one summarization run.
type Request struct {
	// Text is the raw message text; the video link is extracted from it.
	Text string

	// ChatID identifies the sender, for logging only.
	ChatID int64

	Style models.Style
	Tone  models.Tone
}

type Config struct {
	// TranscriptTimeout bounds the caption retrieval stage.
	TranscriptTimeout time.Duration

	// SummarizeTimeout bounds the generation stage.
	SummarizeTimeout time.Duration
}
