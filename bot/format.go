package bot

import (
	"html"
	"strings"

	"yt-summary/models"
)

// maxMessageLen stays under Telegram's 4096-character message cap,
// leaving headroom for markup added around chunks.
const maxMessageLen = 4000

// formatSummary escapes the generated text for HTML parse mode. The
// summary wording itself is passed through untouched.
func formatSummary(text string, style models.Style) string {
	return html.EscapeString(strings.TrimSpace(text))
}

// splitMessage breaks text into chunks of at most limit runes,
// preferring to break at a newline and then at a space so words and
// lines stay intact.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		if i := lastIndexRune(runes[:limit], '\n'); i > 0 {
			cut = i
		} else if i := lastIndexRune(runes[:limit], ' '); i > 0 {
			cut = i
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
		for len(runes) > 0 && (runes[0] == '\n' || runes[0] == ' ') {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		chunks = append(chunks, strings.TrimSpace(string(runes)))
	}
	return chunks
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
