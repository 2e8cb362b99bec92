package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"yt-summary/models"
)

type Config struct {
	// Required secrets
	TelegramToken    string
	SummarizerAPIKey string

	// Summarizer settings
	SummarizerProvider string // "openai" or "anthropic"
	SummarizerModel    string
	SummarizerTimeout  time.Duration
	SummaryCharLimit   int
	DefaultStyle       models.Style
	DefaultTone        models.Tone

	// Transcript settings
	TranscriptTimeout  time.Duration
	TranscriptLanguage string

	// Storage and logging
	DBPath string
	LogDir string
	Debug  bool

	// Per-chat rate limiting
	RateLimit         int
	RateLimitInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional; the system environment wins either way
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded environment variables from .env file")
	}

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		SummarizerAPIKey: os.Getenv("SUMMARIZER_API_KEY"),

		SummarizerProvider: strings.ToLower(getEnv("SUMMARIZER_PROVIDER", "openai")),
		SummarizerModel:    getEnv("SUMMARIZER_MODEL", ""),
		SummarizerTimeout:  getEnvAsDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		SummaryCharLimit:   getEnvAsInt("SUMMARY_CHAR_LIMIT", 900),

		TranscriptTimeout:  getEnvAsDuration("TRANSCRIPT_TIMEOUT", 30*time.Second),
		TranscriptLanguage: getEnv("TRANSCRIPT_LANGUAGE", "en"),

		DBPath: getEnv("DB_PATH", "./data/summaries.db"),
		LogDir: getEnv("LOG_DIR", "./logs"),
		Debug:  getEnvAsBool("DEBUG", false),

		RateLimit:         getEnvAsInt("RATE_LIMIT", 5),
		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 1*time.Minute),
	}

	style, ok := models.ParseStyle(getEnv("DEFAULT_STYLE", string(models.StyleDetailed)))
	if !ok {
		return nil, errors.Errorf("invalid DEFAULT_STYLE: %s", os.Getenv("DEFAULT_STYLE"))
	}
	cfg.DefaultStyle = style

	tone, ok := models.ParseTone(getEnv("DEFAULT_TONE", string(models.ToneSimple)))
	if !ok {
		return nil, errors.Errorf("invalid DEFAULT_TONE: %s", os.Getenv("DEFAULT_TONE"))
	}
	cfg.DefaultTone = tone

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if c.SummarizerAPIKey == "" {
		return errors.New("SUMMARIZER_API_KEY is required")
	}
	if c.SummarizerProvider != "openai" && c.SummarizerProvider != "anthropic" {
		return errors.Errorf("unsupported summarizer provider: %s", c.SummarizerProvider)
	}
	if c.SummarizerTimeout <= 0 {
		return errors.New("summarizer timeout must be greater than 0")
	}
	if c.TranscriptTimeout <= 0 {
		return errors.New("transcript timeout must be greater than 0")
	}
	if c.SummaryCharLimit < 100 || c.SummaryCharLimit > 5000 {
		return errors.Errorf("summary char limit %d outside valid range 100-5000", c.SummaryCharLimit)
	}
	if c.DBPath == "" {
		return errors.New("database path is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
