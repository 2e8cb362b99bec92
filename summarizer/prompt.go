package summarizer

import (
	"fmt"
	"strings"

	apperrors "yt-summary/errors"
	"yt-summary/models"
)

const (
	// maxInputChars is the largest transcript slice sent upstream.
	// Longer transcripts are truncated deterministically at this point.
	maxInputChars = 12000

	// rejectInputChars is the hard ceiling. Transcripts beyond it lose
	// too much under truncation to summarize honestly, so they are
	// rejected instead.
	rejectInputChars = 4 * maxInputChars

	truncationNotice = "\n(transcript truncated)"
)

var styleInstructions = map[models.Style]string{
	models.StyleDetailed: "Write a detailed summary as coherent paragraphs. " +
		"Cover the main points, important details, and practical takeaways.",
	models.StyleBullet: "Write the summary as concise bullet points. " +
		"Start each point with the • character. One idea per point.",
	models.StyleShort: "Write a quick summary of at most three short lines " +
		"capturing only the most important points.",
}

var toneInstructions = map[models.Tone]string{
	models.ToneSimple: "Use plain, everyday language.",
	models.ToneTechnical: "Use precise technical language and keep the " +
		"domain terminology the speakers use.",
	models.ToneBeginner: "Write for a reader new to the topic; spell out " +
		"jargon and abbreviations when they first appear.",
}

// prepareInput applies the fixed truncation policy: same input always
// yields the same output, and oversized transcripts fail closed.
func prepareInput(text string) (string, error) {
	const op = "summarizer.prepareInput"

	runes := []rune(text)
	if len(runes) > rejectInputChars {
		return "", apperrors.InputTooLarge(op, nil,
			fmt.Sprintf("transcript of %d characters exceeds maximum %d", len(runes), rejectInputChars))
	}
	if len(runes) > maxInputChars {
		return string(runes[:maxInputChars]) + truncationNotice, nil
	}
	return text, nil
}

// buildPrompt constructs the fixed instruction template for a style
// and tone. It is deterministic: the same transcript, style, and tone
// always produce the same prompt.
func buildPrompt(text string, style models.Style, tone models.Tone, charLimit int) string {
	instruction, ok := styleInstructions[style]
	if !ok {
		instruction = styleInstructions[models.StyleDetailed]
	}
	toneInstruction, ok := toneInstructions[tone]
	if !ok {
		toneInstruction = toneInstructions[models.ToneSimple]
	}

	var b strings.Builder
	b.WriteString("You are summarizing the transcript of a video.\n")
	b.WriteString(instruction)
	b.WriteString("\n")
	b.WriteString(toneInstruction)
	b.WriteString(fmt.Sprintf("\nKeep the summary under %d characters.", charLimit))
	b.WriteString(" Be clear, skip filler, and do not invent content that is not in the transcript.\n\n")
	b.WriteString("Transcript:\n")
	b.WriteString(text)
	return b.String()
}
