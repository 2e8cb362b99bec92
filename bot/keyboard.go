package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yt-summary/models"
)

const (
	styleCallbackPrefix = "style_"
	toneCallbackPrefix  = "tone_"
	cancelCallback      = "style_cancel"
)

// settingsChoice is one decoded keyboard selection; exactly one of
// style or tone is set.
type settingsChoice struct {
	style models.Style
	tone  models.Tone
}

func settingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(styleLabels[models.StyleDetailed], styleCallbackPrefix+string(models.StyleDetailed)),
			tgbotapi.NewInlineKeyboardButtonData(styleLabels[models.StyleBullet], styleCallbackPrefix+string(models.StyleBullet)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(styleLabels[models.StyleShort], styleCallbackPrefix+string(models.StyleShort)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toneLabels[models.ToneSimple], toneCallbackPrefix+string(models.ToneSimple)),
			tgbotapi.NewInlineKeyboardButtonData(toneLabels[models.ToneTechnical], toneCallbackPrefix+string(models.ToneTechnical)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toneLabels[models.ToneBeginner], toneCallbackPrefix+string(models.ToneBeginner)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel", cancelCallback),
		),
	)
}

// parseSettingsCallback maps inline keyboard callback data back to a
// style or tone choice. Cancel and unrecognized data report false.
func parseSettingsCallback(data string) (settingsChoice, bool) {
	if data == cancelCallback {
		return settingsChoice{}, false
	}
	if strings.HasPrefix(data, styleCallbackPrefix) {
		style, ok := models.ParseStyle(strings.TrimPrefix(data, styleCallbackPrefix))
		return settingsChoice{style: style}, ok
	}
	if strings.HasPrefix(data, toneCallbackPrefix) {
		tone, ok := models.ParseTone(strings.TrimPrefix(data, toneCallbackPrefix))
		return settingsChoice{tone: tone}, ok
	}
	return settingsChoice{}, false
}
