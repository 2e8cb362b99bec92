package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	apperrors "yt-summary/errors"
	"yt-summary/models"
	"yt-summary/services/summary"
)

const (
	startText = `Hi! Send me a YouTube link and I will reply with a summary of the video.

Use /format to pick how summaries are written, or /help for details.`

	helpText = `Send a message containing a YouTube link (youtube.com or youtu.be) and I will fetch the English captions and summarize them.

Commands:
/summarize &lt;link&gt; - summarize a video
/format - choose the summary style and tone
/settings - show your current settings
/about - about this bot

Summaries are only possible for videos with English captions.`

	aboutText = `This bot condenses YouTube videos into short text summaries built from their caption tracks. Summaries are generated by a language model and may miss details; treat them as a preview, not a substitute for watching.`
)

var styleLabels = map[models.Style]string{
	models.StyleDetailed: "Detailed paragraphs",
	models.StyleBullet:   "Bullet points",
	models.StyleShort:    "Short (2-3 sentences)",
}

var toneLabels = map[models.Tone]string{
	models.ToneSimple:    "Simple language",
	models.ToneTechnical: "Technical",
	models.ToneBeginner:  "Beginner-friendly",
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	logger := b.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"command": message.Command(),
	})
	logger.Info("Handling command")

	switch message.Command() {
	case "start":
		b.reply(message.Chat.ID, 0, startText)
	case "help":
		b.reply(message.Chat.ID, 0, helpText)
	case "about":
		b.reply(message.Chat.ID, 0, aboutText)
	case "format", "settings":
		b.sendStyleMenu(ctx, message.Chat.ID)
	case "summarize":
		args := strings.TrimSpace(message.CommandArguments())
		if args == "" {
			b.reply(message.Chat.ID, message.MessageID, "Usage: /summarize &lt;YouTube link&gt;")
			return
		}
		b.handleMessage(ctx, message, args)
	default:
		b.reply(message.Chat.ID, 0, "Unknown command. Use /help to see what I can do.")
	}
}

// handleMessage runs the pipeline for one incoming message and always
// replies to the sender, with the summary or with a failure message.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message, text string) {
	const op = "Bot.handleMessage"

	chatID := message.Chat.ID
	logger := b.logger.WithField("chat_id", chatID)

	if !b.limiter.allow(chatID) {
		err := apperrors.RateLimited(op, nil, "chat over rate limit")
		logger.Warn("Rate limit exceeded")
		b.reply(chatID, message.MessageID, b.service.UserMessage(err))
		return
	}

	settings, err := b.settings.Get(ctx, chatID)
	if err != nil {
		logger.WithError(err).Warn("Failed to load chat settings, using defaults")
		settings = b.fallbackSettings(chatID)
	}

	b.sendTyping(chatID)

	start := time.Now()
	result, err := b.service.Summarize(ctx, summary.Request{
		Text:   text,
		ChatID: chatID,
		Style:  settings.Style,
		Tone:   settings.Tone,
	})
	if err != nil {
		b.reply(chatID, message.MessageID, b.service.UserMessage(err))
		return
	}

	logger.WithField("duration", time.Since(start).String()).Info("Summary delivered")
	b.reply(chatID, message.MessageID, formatSummary(result, settings.Style))
}

// fallbackSettings is used when the settings store is unavailable.
func (b *Bot) fallbackSettings(chatID int64) models.Settings {
	settings := models.DefaultSettings(chatID)
	if b.config.DefaultStyle != "" {
		settings.Style = b.config.DefaultStyle
	}
	return settings
}

func (b *Bot) sendStyleMenu(ctx context.Context, chatID int64) {
	settings, err := b.settings.Get(ctx, chatID)
	if err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to load chat settings")
		settings = b.fallbackSettings(chatID)
	}

	text := fmt.Sprintf("Current style: <b>%s</b>\nCurrent tone: <b>%s</b>\n\nPick a new style or tone:",
		styleLabels[settings.Style], toneLabels[settings.Tone])

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = settingsKeyboard()
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send style menu")
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// The originating message can be absent when it is too old or
	// inaccessible; the query must still be answered or the client
	// shows a spinner forever.
	if query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}

	chatID := query.Message.Chat.ID
	logger := b.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"data":    query.Data,
	})

	choice, ok := parseSettingsCallback(query.Data)
	if !ok {
		// Cancel or stale keyboard; acknowledge and remove it
		b.answerCallback(query.ID, "")
		b.editMessage(chatID, query.Message.MessageID, "Settings unchanged.")
		return
	}

	settings, err := b.settings.Get(ctx, chatID)
	if err != nil {
		settings = b.fallbackSettings(chatID)
	}

	var confirmation string
	if choice.style != "" {
		settings.Style = choice.style
		confirmation = fmt.Sprintf("Style set to <b>%s</b>.", styleLabels[choice.style])
	} else {
		settings.Tone = choice.tone
		confirmation = fmt.Sprintf("Tone set to <b>%s</b>.", toneLabels[choice.tone])
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := b.settings.Save(ctx, settings); err != nil {
		logger.WithError(err).Error("Failed to save chat settings")
		b.answerCallback(query.ID, "Could not save your choice, please try again")
		return
	}

	logger.WithFields(logrus.Fields{"style": settings.Style, "tone": settings.Tone}).Info("Chat settings updated")
	b.answerCallback(query.ID, "Settings updated")
	b.editMessage(chatID, query.Message.MessageID, confirmation)
}

func (b *Bot) answerCallback(queryID, text string) {
	callback := tgbotapi.NewCallback(queryID, text)
	if _, err := b.sender.Request(callback); err != nil {
		b.logger.WithError(err).Debug("Failed to answer callback query")
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.sender.Send(edit); err != nil {
		b.logger.WithError(err).Debug("Failed to edit message")
	}
}
