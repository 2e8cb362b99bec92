package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"yt-summary/models"
	"yt-summary/repository"
	"yt-summary/services/summary"
)

type Config struct {
	Token        string
	DefaultStyle models.Style

	// RateLimit requests per RateLimitInterval, per chat.
	RateLimit         int
	RateLimitInterval time.Duration

	Debug bool
}

// telegramSender is the sending surface of the Bot API client.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot receives Telegram updates over long polling and drives the
// summarization pipeline. Each update is handled on its own goroutine.
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   telegramSender
	service  summary.Service
	settings repository.SettingsRepository
	config   Config
	limiter  *chatLimiter
	logger   *logrus.Logger
	wg       sync.WaitGroup
}

func New(config Config, service summary.Service, settings repository.SettingsRepository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, err
	}
	api.Debug = config.Debug

	if config.DefaultStyle == "" {
		config.DefaultStyle = models.StyleDetailed
	}

	return &Bot{
		api:      api,
		sender:   api,
		service:  service,
		settings: settings,
		config:   config,
		limiter:  newChatLimiter(config.RateLimit, config.RateLimitInterval),
		logger:   logrus.StandardLogger(),
	}, nil
}

// Run polls for updates until ctx is cancelled, then waits for
// in-flight handlers to finish.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.WithField("username", b.api.Self.UserName).Info("Bot authorized")

	if err := b.registerCommands(); err != nil {
		b.logger.WithError(err).Warn("Failed to register command menu")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			b.logger.Info("Bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdate(ctx, update)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithField("panic", r).Error("Recovered from panic in update handler")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(ctx, update.Message, update.Message.Text)
	}
}

func (b *Bot) registerCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot"},
		tgbotapi.BotCommand{Command: "help", Description: "How to use the bot"},
		tgbotapi.BotCommand{Command: "summarize", Description: "Summarize a YouTube video"},
		tgbotapi.BotCommand{Command: "format", Description: "Choose summary style and tone"},
		tgbotapi.BotCommand{Command: "settings", Description: "Show current settings"},
		tgbotapi.BotCommand{Command: "about", Description: "About this bot"},
	)
	_, err := b.sender.Request(commands)
	return err
}

// reply sends text to the chat, splitting it when it exceeds the
// Telegram message size limit.
func (b *Bot) reply(chatID int64, replyTo int, text string) {
	for i, chunk := range splitMessage(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeHTML
		if i == 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := b.sender.Send(msg); err != nil {
			b.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
			return
		}
	}
}

func (b *Bot) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.sender.Request(action); err != nil {
		b.logger.WithError(err).Debug("Failed to send chat action")
	}
}
