package summarizer

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "yt-summary/errors"
	"yt-summary/models"
)

const anthropicMaxTokens = 1024

// Anthropic implements Summarizer using the Claude messages API.
type Anthropic struct {
	client anthropic.Client
	config Config
	logger *logrus.Logger
}

func NewAnthropic(config Config) *Anthropic {
	config = config.withDefaults(string(anthropic.ModelClaudeSonnet4_5_20250929))

	logrus.WithFields(logrus.Fields{
		"model":      config.Model,
		"char_limit": config.CharLimit,
	}).Info("Initialized Anthropic summarizer")

	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		config: config,
		logger: logrus.StandardLogger(),
	}
}

func (a *Anthropic) Model() string {
	return a.config.Model
}

func (a *Anthropic) Summarize(ctx context.Context, transcript models.Transcript, style models.Style, tone models.Tone) (string, error) {
	const op = "AnthropicSummarizer.Summarize"

	input, err := prepareInput(transcript.Text)
	if err != nil {
		return "", err
	}
	prompt := buildPrompt(input, style, tone, a.config.CharLimit)

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	logger := a.logger.WithFields(logrus.Fields{
		"request_id":   requestID,
		"style":        style,
		"tone":         tone,
		"input_length": len(prompt),
	})
	logger.Info("Starting summarization")
	start := time.Now()

	summary, err := withRetry(ctx, a.config.Timeout, func() (string, error) {
		return a.doSummarize(ctx, prompt)
	})
	if err != nil {
		logger.WithError(err).WithField("duration", time.Since(start)).Error("Summarization failed")
		return "", apperrors.SummaryUnavailable(op, err, "summary service request failed")
	}

	logger.WithFields(logrus.Fields{
		"summary_length": len(summary),
		"duration":       time.Since(start),
	}).Info("Summarization completed")

	return summary, nil
}

func (a *Anthropic) doSummarize(ctx context.Context, prompt string) (string, error) {
	const op = "AnthropicSummarizer.doSummarize"

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.config.Model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", err
	}
	if len(message.Content) == 0 {
		return "", apperrors.SummaryUnavailable(op, nil, "empty response from api")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", apperrors.SummaryUnavailable(op, nil, "unexpected response type from api")
	}
	return textBlock.Text, nil
}
