package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"yt-summary/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSummaryRoundTrip(t *testing.T) {
	repo := NewSummaryRepository(newTestDB(t))
	ctx := context.Background()

	summary := &models.Summary{
		VideoID:   "dQw4w9WgXcQ",
		Style:     models.StyleBullet,
		Tone:      models.ToneSimple,
		Text:      "• a\n• b",
		Model:     "gpt-4o-mini",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if err := repo.Save(ctx, summary); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	found, err := repo.Find(ctx, "dQw4w9WgXcQ", models.StyleBullet, models.ToneSimple)
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if found == nil {
		t.Fatal("expected a summary, got nil")
	}
	if found.Text != summary.Text {
		t.Errorf("expected %q, got %q", summary.Text, found.Text)
	}
	if found.Model != summary.Model {
		t.Errorf("expected %q, got %q", summary.Model, found.Model)
	}
}

func TestSummaryMiss(t *testing.T) {
	repo := NewSummaryRepository(newTestDB(t))

	found, err := repo.Find(context.Background(), "missing", models.StyleDetailed, models.ToneSimple)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for cache miss, got %+v", found)
	}
}

func TestSummaryStyleIsolation(t *testing.T) {
	repo := NewSummaryRepository(newTestDB(t))
	ctx := context.Background()

	summary := &models.Summary{
		VideoID:   "abc",
		Style:     models.StyleShort,
		Tone:      models.ToneSimple,
		Text:      "short version",
		Model:     "m",
		CreatedAt: time.Now(),
	}
	if err := repo.Save(ctx, summary); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	found, err := repo.Find(ctx, "abc", models.StyleDetailed, models.ToneSimple)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found != nil {
		t.Error("expected miss for different style")
	}

	found, err = repo.Find(ctx, "abc", models.StyleShort, models.ToneTechnical)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found != nil {
		t.Error("expected miss for different tone")
	}
}

func TestSummaryUpsert(t *testing.T) {
	repo := NewSummaryRepository(newTestDB(t))
	ctx := context.Background()

	first := &models.Summary{VideoID: "abc", Style: models.StyleBullet, Tone: models.ToneSimple, Text: "old", Model: "m1", CreatedAt: time.Now()}
	second := &models.Summary{VideoID: "abc", Style: models.StyleBullet, Tone: models.ToneSimple, Text: "new", Model: "m2", CreatedAt: time.Now()}

	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	found, err := repo.Find(ctx, "abc", models.StyleBullet, models.ToneSimple)
	if err != nil || found == nil {
		t.Fatalf("expected summary, got %v %v", found, err)
	}
	if found.Text != "new" || found.Model != "m2" {
		t.Errorf("expected upserted values, got %+v", found)
	}
}

func TestSettingsDefault(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t), models.StyleDetailed, models.ToneSimple)

	settings, err := repo.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if settings.ChatID != 42 {
		t.Errorf("expected chat id 42, got %d", settings.ChatID)
	}
	if settings.Style != models.StyleDetailed {
		t.Errorf("expected default style detailed, got %s", settings.Style)
	}
	if settings.Tone != models.ToneSimple {
		t.Errorf("expected default tone simple, got %s", settings.Tone)
	}
}

func TestSettingsConfiguredDefault(t *testing.T) {
	// A chat with no stored row gets the configured defaults, not the
	// built-in ones
	repo := NewSettingsRepository(newTestDB(t), models.StyleBullet, models.ToneBeginner)

	settings, err := repo.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if settings.Style != models.StyleBullet {
		t.Errorf("expected configured default bullet, got %s", settings.Style)
	}
	if settings.Tone != models.ToneBeginner {
		t.Errorf("expected configured default beginner, got %s", settings.Tone)
	}
}

func TestSettingsInvalidDefaultFallsBack(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t), models.Style("mystery"), models.Tone("mystery"))

	settings, err := repo.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if settings.Style != models.StyleDetailed {
		t.Errorf("expected detailed fallback, got %s", settings.Style)
	}
	if settings.Tone != models.ToneSimple {
		t.Errorf("expected simple fallback, got %s", settings.Tone)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t), models.StyleDetailed, models.ToneSimple)
	ctx := context.Background()

	saved := models.Settings{ChatID: 42, Style: models.StyleShort, Tone: models.ToneTechnical, UpdatedAt: time.Now()}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	// Update again to exercise the upsert path
	saved.Style = models.StyleBullet
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	settings, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if settings.Style != models.StyleBullet {
		t.Errorf("expected bullet, got %s", settings.Style)
	}
	if settings.Tone != models.ToneTechnical {
		t.Errorf("expected technical, got %s", settings.Tone)
	}
}
