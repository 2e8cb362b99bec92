package repository

import (
	"context"

	"yt-summary/models"
)

// SummaryRepository caches finished summaries keyed by video, style,
// and tone.
type SummaryRepository interface {
	// Find returns the cached summary, or nil when there is none.
	Find(ctx context.Context, videoID string, style models.Style, tone models.Tone) (*models.Summary, error)
	Save(ctx context.Context, summary *models.Summary) error
}

// SettingsRepository stores per-chat preferences.
type SettingsRepository interface {
	// Get returns the chat's settings, falling back to defaults for
	// chats that never changed anything.
	Get(ctx context.Context, chatID int64) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}
