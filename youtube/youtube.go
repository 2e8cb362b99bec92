// Package youtube recognizes YouTube links inside free-form text and
// extracts the video identifier. Matching is purely syntactic; no
// network calls are made.
package youtube

import (
	"net/url"
	"strings"

	"yt-summary/models"
)

var pathPrefixes = []string{"/embed/", "/shorts/", "/v/"}

// Extract scans text for a recognizable YouTube link and returns the
// video reference. It is total: any input, including empty or unrelated
// text, yields ok=false rather than an error.
func Extract(text string) (models.VideoRef, bool) {
	for _, token := range strings.Fields(text) {
		if id, ok := extractFromToken(token); ok {
			return models.VideoRef{ID: id, Platform: models.PlatformYouTube}, true
		}
	}
	return models.VideoRef{}, false
}

func extractFromToken(token string) (string, bool) {
	if !strings.Contains(token, "youtube.com") && !strings.Contains(token, "youtu.be") {
		return "", false
	}

	// Bare links without a scheme are common in chat messages
	if !strings.Contains(token, "://") {
		token = "https://" + token
	}

	u, err := url.Parse(token)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		return cleanID(strings.TrimPrefix(u.Path, "/"))
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			return cleanID(u.Query().Get("v"))
		}
		for _, prefix := range pathPrefixes {
			if strings.HasPrefix(u.Path, prefix) {
				return cleanID(strings.TrimPrefix(u.Path, prefix))
			}
		}
	}

	return "", false
}

// cleanID drops anything after the identifier segment, such as extra
// path components or leftover query fragments.
func cleanID(s string) (string, bool) {
	if i := strings.IndexAny(s, "/?&#"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", false
	}
	return s, true
}
