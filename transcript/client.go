// Package transcript retrieves caption tracks for a video and returns
// them as plain text. It talks to the public caption endpoints over
// HTTP; the four failure modes callers need to tell apart (captions
// disabled, no track in the requested language, video unreachable,
// generic upstream failure) are reported as distinct error kinds.
package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "yt-summary/errors"
	"yt-summary/models"
)

const defaultBaseURL = "https://www.youtube.com"

// maxResponseBytes caps how much of an upstream response is read.
// Watch pages run a few megabytes; caption tracks are far smaller.
const maxResponseBytes = 10 << 20

type Config struct {
	// BaseURL is the caption service root. Overridable for tests.
	BaseURL string

	// Language is the caption language code to request, e.g. "en".
	Language string

	// Timeout bounds each outbound HTTP call.
	Timeout time.Duration
}

type Client struct {
	config     Config
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Language == "" {
		config.Language = "en"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logrus.StandardLogger(),
	}
}

// captionTrack mirrors the track metadata embedded in the watch page.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// Fetch retrieves the caption track for ref in the configured language
// and returns its concatenated plain-text content.
func (c *Client) Fetch(ctx context.Context, ref models.VideoRef) (models.Transcript, error) {
	const op = "TranscriptClient.Fetch"
	logger := c.logger.WithField("video_id", ref.ID)

	tracks, err := c.listTracks(ctx, ref.ID)
	if err != nil {
		return models.Transcript{}, err
	}

	track, ok := pickTrack(tracks, c.config.Language)
	if !ok {
		logger.WithField("language", c.config.Language).Info("No caption track in requested language")
		return models.Transcript{}, apperrors.CaptionsUnavailable(op, nil,
			fmt.Sprintf("no %s caption track for video %s", c.config.Language, ref.ID))
	}

	text, err := c.downloadTrack(ctx, track.BaseURL)
	if err != nil {
		return models.Transcript{}, err
	}

	logger.WithField("length", len(text)).Info("Fetched transcript")
	return models.Transcript{Text: text, Language: track.LanguageCode}, nil
}

// listTracks loads the watch page for the video and extracts the
// caption track metadata embedded in it.
func (c *Client) listTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	const op = "TranscriptClient.listTracks"

	body, status, err := c.get(ctx, c.config.BaseURL+"/watch?v="+videoID)
	if err != nil {
		return nil, apperrors.Internal(op, err, "caption service request failed")
	}
	if status == http.StatusNotFound || status == http.StatusGone {
		return nil, apperrors.VideoUnreachable(op, nil, fmt.Sprintf("video %s not found", videoID))
	}
	if status != http.StatusOK {
		return nil, apperrors.Internal(op, nil, fmt.Sprintf("caption service returned status %d", status))
	}

	page := string(body)
	if strings.Contains(page, `"playabilityStatus":{"status":"ERROR"`) {
		return nil, apperrors.VideoUnreachable(op, nil,
			fmt.Sprintf("video %s is unavailable", videoID))
	}

	raw, ok := extractJSONArray(page, `"captionTracks":`)
	if !ok {
		// The page rendered but carries no caption metadata at all:
		// the uploader has captions turned off.
		return nil, apperrors.CaptionsDisabled(op, nil,
			fmt.Sprintf("captions are disabled for video %s", videoID))
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, apperrors.Internal(op, err, "failed to parse caption track metadata")
	}
	if len(tracks) == 0 {
		return nil, apperrors.CaptionsDisabled(op, nil,
			fmt.Sprintf("captions are disabled for video %s", videoID))
	}

	return tracks, nil
}

// timedText mirrors the XML caption document format.
type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

func (c *Client) downloadTrack(ctx context.Context, trackURL string) (string, error) {
	const op = "TranscriptClient.downloadTrack"

	body, status, err := c.get(ctx, trackURL)
	if err != nil {
		return "", apperrors.Internal(op, err, "caption track request failed")
	}
	if status != http.StatusOK {
		return "", apperrors.Internal(op, nil, fmt.Sprintf("caption track returned status %d", status))
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", apperrors.Internal(op, err, "failed to parse caption track")
	}

	parts := make([]string, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", apperrors.CaptionsUnavailable(op, nil, "caption track is empty")
	}

	return strings.Join(parts, " "), nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept-Language", c.config.Language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

// pickTrack prefers an exact language match, then a regional variant
// (en matches en-US), then nothing.
func pickTrack(tracks []captionTrack, language string) (captionTrack, bool) {
	for _, t := range tracks {
		if t.LanguageCode == language {
			return t, true
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, language+"-") {
			return t, true
		}
	}
	return captionTrack{}, false
}

// extractJSONArray returns the JSON array immediately following marker
// in page, found by bracket matching. Quoted brackets are skipped.
func extractJSONArray(page, marker string) (string, bool) {
	start := strings.Index(page, marker)
	if start < 0 {
		return "", false
	}
	rest := page[start+len(marker):]
	if len(rest) == 0 || rest[0] != '[' {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '[':
			depth++
		case ch == ']':
			depth--
			if depth == 0 {
				return rest[:i+1], true
			}
		}
	}
	return "", false
}
