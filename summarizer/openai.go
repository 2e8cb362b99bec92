package summarizer

import (
	"context"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	apperrors "yt-summary/errors"
	"yt-summary/models"
)

const openAIMaxTokens = 1024

// OpenAI implements Summarizer using the OpenAI chat completion API.
type OpenAI struct {
	client *openai.Client
	config Config
	logger *logrus.Logger
}

func NewOpenAI(config Config) *OpenAI {
	config = config.withDefaults(openai.GPT4oMini)

	logrus.WithFields(logrus.Fields{
		"model":      config.Model,
		"char_limit": config.CharLimit,
	}).Info("Initialized OpenAI summarizer")

	return &OpenAI{
		client: openai.NewClient(config.APIKey),
		config: config,
		logger: logrus.StandardLogger(),
	}
}

func (o *OpenAI) Model() string {
	return o.config.Model
}

func (o *OpenAI) Summarize(ctx context.Context, transcript models.Transcript, style models.Style, tone models.Tone) (string, error) {
	const op = "OpenAISummarizer.Summarize"

	input, err := prepareInput(transcript.Text)
	if err != nil {
		return "", err
	}
	prompt := buildPrompt(input, style, tone, o.config.CharLimit)

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	logger := o.logger.WithFields(logrus.Fields{
		"request_id":   requestID,
		"style":        style,
		"tone":         tone,
		"input_length": len(prompt),
	})
	logger.Info("Starting summarization")
	start := time.Now()

	summary, err := withRetry(ctx, o.config.Timeout, func() (string, error) {
		return o.doSummarize(ctx, prompt)
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

func (o *OpenAI) doSummarize(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: openAIMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.SummaryUnavailable("OpenAISummarizer.doSummarize", nil, "empty response from api")
	}
	return resp.Choices[0].Message.Content, nil
}
