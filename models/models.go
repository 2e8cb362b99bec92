package models

import (
	"strings"
	"time"
)

// Platform identifies the video-sharing site a reference came from.
type Platform string

const PlatformYouTube Platform = "youtube"

// VideoRef is an extracted video identifier. It lives for a single
// request and is never persisted.
type VideoRef struct {
	ID       string
	Platform Platform
}

// Transcript is the plain-text caption track of a video.
type Transcript struct {
	Text     string
	Language string
}

func (t Transcript) WordCount() int {
	return len(strings.Fields(t.Text))
}

// Style selects the presentation of a summary.
type Style string

const (
	StyleDetailed Style = "detailed"
	StyleBullet   Style = "bullet"
	StyleShort    Style = "short"
)

// ParseStyle returns the style matching s, or false if unknown.
func ParseStyle(s string) (Style, bool) {
	switch Style(s) {
	case StyleDetailed, StyleBullet, StyleShort:
		return Style(s), true
	}
	return "", false
}

// Tone selects the language register of a summary.
type Tone string

const (
	ToneSimple    Tone = "simple"
	ToneTechnical Tone = "technical"
	ToneBeginner  Tone = "beginner"
)

// ParseTone returns the tone matching s, or false if unknown.
func ParseTone(s string) (Tone, bool) {
	switch Tone(s) {
	case ToneSimple, ToneTechnical, ToneBeginner:
		return Tone(s), true
	}
	return "", false
}

// Summary is a cached summarization result keyed by video, style, and tone.
type Summary struct {
	VideoID   string    `json:"video_id"`
	Style     Style     `json:"style"`
	Tone      Tone      `json:"tone"`
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings holds per-chat preferences.
type Settings struct {
	ChatID    int64     `json:"chat_id"`
	Style     Style     `json:"style"`
	Tone      Tone      `json:"tone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings used before a chat customizes anything.
func DefaultSettings(chatID int64) Settings {
	return Settings{
		ChatID: chatID,
		Style:  StyleDetailed,
		Tone:   ToneSimple,
	}
}
