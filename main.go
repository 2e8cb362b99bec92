package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"yt-summary/bot"
	"yt-summary/config"
	"yt-summary/logger"
	"yt-summary/repository/sqlite"
	"yt-summary/services/summary"
	"yt-summary/summarizer"
	"yt-summary/transcript"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogDir, cfg.Debug); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	summaries := sqlite.NewSummaryRepository(db)
	settings := sqlite.NewSettingsRepository(db, cfg.DefaultStyle, cfg.DefaultTone)

	transcripts := transcript.NewClient(transcript.Config{
		Language: cfg.TranscriptLanguage,
		Timeout:  cfg.TranscriptTimeout,
	})

	sum := newSummarizer(cfg)

	service := summary.NewService(transcripts, sum, summaries, summary.Config{
		TranscriptTimeout: cfg.TranscriptTimeout,
		SummarizeTimeout:  cfg.SummarizerTimeout,
	})

	b, err := bot.New(bot.Config{
		Token:             cfg.TelegramToken,
		DefaultStyle:      cfg.DefaultStyle,
		RateLimit:         cfg.RateLimit,
		RateLimitInterval: cfg.RateLimitInterval,
		Debug:             cfg.Debug,
	}, service, settings)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil {
		log.Fatalf("Bot exited with error: %v", err)
	}
}

func newSummarizer(cfg *config.Config) summarizer.Summarizer {
	sumConfig := summarizer.Config{
		APIKey:    cfg.SummarizerAPIKey,
		Model:     cfg.SummarizerModel,
		CharLimit: cfg.SummaryCharLimit,
		Timeout:   cfg.SummarizerTimeout,
	}
	// Provider is validated during config load
	if cfg.SummarizerProvider == "anthropic" {
		return summarizer.NewAnthropic(sumConfig)
	}
	return summarizer.NewOpenAI(sumConfig)
}
