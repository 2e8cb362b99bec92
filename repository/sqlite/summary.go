package sqlite

import (
	"context"
	"database/sql"

	apperrors "yt-summary/errors"
	"yt-summary/models"
)

type SummaryRepository struct {
	db *DB
}

func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Find(ctx context.Context, videoID string, style models.Style, tone models.Tone) (*models.Summary, error) {
	const op = "SQLiteSummaryRepository.Find"

	summary := &models.Summary{}
	var styleStr, toneStr string

	err := r.db.statements.findSummary.QueryRowContext(ctx, videoID, string(style), string(tone)).Scan(
		&summary.VideoID,
		&styleStr,
		&toneStr,
		&summary.Text,
		&summary.Model,
		&summary.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal(op, err, "failed to query summary")
	}

	summary.Style = models.Style(styleStr)
	summary.Tone = models.Tone(toneStr)
	return summary, nil
}

func (r *SummaryRepository) Save(ctx context.Context, summary *models.Summary) error {
	const op = "SQLiteSummaryRepository.Save"

	_, err := r.db.statements.saveSummary.ExecContext(ctx,
		summary.VideoID,
		string(summary.Style),
		string(summary.Tone),
		summary.Text,
		summary.Model,
		summary.CreatedAt,
	)
	if err != nil {
		return apperrors.Internal(op, err, "failed to save summary")
	}
	return nil
}
