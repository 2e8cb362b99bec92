package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "yt-summary/errors"
	"yt-summary/models"
	"yt-summary/repository"
	"yt-summary/summarizer"
	"yt-summary/youtube"
)

type service struct {
	transcripts TranscriptFetcher
	summarizer  summarizer.Summarizer
	cache       repository.SummaryRepository
	config      Config
	logger      *logrus.Logger
}

func NewService(
	transcripts TranscriptFetcher,
	sum summarizer.Summarizer,
	cache repository.SummaryRepository,
	config Config,
) Service {
	if config.TranscriptTimeout <= 0 {
		config.TranscriptTimeout = 30 * time.Second
	}
	if config.SummarizeTimeout <= 0 {
		config.SummarizeTimeout = 90 * time.Second
	}

	return &service{
		transcripts: transcripts,
		summarizer:  sum,
		cache:       cache,
		config:      config,
		logger:      logrus.StandardLogger(),
	}
}

// Summarize runs the three stages strictly in order. The first failure
// short-circuits the rest; each stage's wait is bounded so a stalled
// upstream turns into an error instead of a hang.
func (s *service) Summarize(ctx context.Context, req Request) (string, error) {
	const op = "SummaryService.Summarize"

	logger := s.logger.WithFields(logrus.Fields{
		"request_id": uuid.New().String(),
		"chat_id":    req.ChatID,
		"style":      req.Style,
		"tone":       req.Tone,
	})

	logger.WithField("stage", "extracting").Info("Processing request")
	ref, ok := youtube.Extract(req.Text)
	if !ok {
		return "", apperrors.InvalidURL(op, nil, "no recognizable video link in message")
	}
	logger = logger.WithField("video_id", ref.ID)

	if cached := s.findCached(ctx, ref.ID, req.Style, req.Tone); cached != nil {
		logger.Info("Serving cached summary")
		return cached.Text, nil
	}

	logger.WithField("stage", "retrieving").Info("Fetching transcript")
	fetchCtx, cancel := context.WithTimeout(ctx, s.config.TranscriptTimeout)
	transcript, err := s.transcripts.Fetch(fetchCtx, ref)
	cancel()
	if err != nil {
		logger.WithError(err).Warn("Transcript retrieval failed")
		return "", err
	}

	logger.WithField("stage", "summarizing").WithField("words", transcript.WordCount()).Info("Generating summary")
	sumCtx, cancel := context.WithTimeout(ctx, s.config.SummarizeTimeout)
	text, err := s.summarizer.Summarize(sumCtx, transcript, req.Style, req.Tone)
	cancel()
	if err != nil {
		logger.WithError(err).Warn("Summarization failed")
		return "", err
	}

	s.store(ctx, ref.ID, req.Style, req.Tone, text)

	logger.WithField("stage", "done").Info("Request completed")
	return text, nil
}

func (s *service) findCached(ctx context.Context, videoID string, style models.Style, tone models.Tone) *models.Summary {
	cached, err := s.cache.Find(ctx, videoID, style, tone)
	if err != nil {
		s.logger.WithError(err).Warn("Summary cache lookup failed")
		return nil
	}
	// A summary produced by a different model is regenerated
	if cached != nil && cached.Model != s.summarizer.Model() {
		return nil
	}
	return cached
}

// store saves best-effort; a cache failure never fails the request.
func (s *service) store(ctx context.Context, videoID string, style models.Style, tone models.Tone, text string) {
	summary := &models.Summary{
		VideoID:   videoID,
		Style:     style,
		Tone:      tone,
		Text:      text,
		Model:     s.summarizer.Model(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cache.Save(ctx, summary); err != nil {
		s.logger.WithError(err).Warn("Failed to cache summary")
	}
}

// UserMessage is the single translation point from error kind to reply
// text. Adding a failure kind means adding a row here, nowhere else.
func (s *service) UserMessage(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidURL:
		return "Please send a valid YouTube URL"
	case apperrors.KindCaptionsDisabled, apperrors.KindCaptionsUnavailable:
		return "This video has no available English captions"
	case apperrors.KindVideoUnreachable:
		return "Video not found or unreachable. Please check the link"
	case apperrors.KindSummaryUnavailable:
		return "Summary service unavailable. Please try later"
	case apperrors.KindInputTooLarge:
		return "This video is too long to summarize"
	case apperrors.KindRateLimited:
		return "Too many requests. Please slow down"
	default:
		return "An error occurred while processing your request"
	}
}
