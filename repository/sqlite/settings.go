package sqlite

import (
	"context"
	"database/sql"

	apperrors "yt-summary/errors"
	"yt-summary/models"
)

type SettingsRepository struct {
	db       *DB
	defaults models.Settings
}

// NewSettingsRepository returns a repository whose misses report the
// given defaults rather than an error, so a chat that never changed
// anything gets the configured behavior.
func NewSettingsRepository(db *DB, defaultStyle models.Style, defaultTone models.Tone) *SettingsRepository {
	if _, ok := models.ParseStyle(string(defaultStyle)); !ok {
		defaultStyle = models.StyleDetailed
	}
	if _, ok := models.ParseTone(string(defaultTone)); !ok {
		defaultTone = models.ToneSimple
	}
	return &SettingsRepository{
		db:       db,
		defaults: models.Settings{Style: defaultStyle, Tone: defaultTone},
	}
}

// defaultSettings applies the configured defaults for a chat with no
// stored row.
func (r *SettingsRepository) defaultSettings(chatID int64) models.Settings {
	settings := r.defaults
	settings.ChatID = chatID
	return settings
}

func (r *SettingsRepository) Get(ctx context.Context, chatID int64) (models.Settings, error) {
	const op = "SQLiteSettingsRepository.Get"

	settings := models.Settings{}
	var styleStr, toneStr string

	err := r.db.statements.getSettings.QueryRowContext(ctx, chatID).Scan(
		&settings.ChatID,
		&styleStr,
		&toneStr,
		&settings.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return r.defaultSettings(chatID), nil
	}
	if err != nil {
		return models.Settings{}, apperrors.Internal(op, err, "failed to query settings")
	}

	style, ok := models.ParseStyle(styleStr)
	if !ok {
		// Unknown style left behind by an older version
		return r.defaultSettings(chatID), nil
	}
	settings.Style = style

	tone, ok := models.ParseTone(toneStr)
	if !ok {
		tone = r.defaults.Tone
	}
	settings.Tone = tone

	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	const op = "SQLiteSettingsRepository.Save"

	_, err := r.db.statements.saveSettings.ExecContext(ctx,
		settings.ChatID,
		string(settings.Style),
		string(settings.Tone),
		settings.UpdatedAt,
	)
	if err != nil {
		return apperrors.Internal(op, err, "failed to save settings")
	}
	return nil
}
