// Package tui provides the Bubble Tea advisor interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// WrapText word-wraps plain text to the given display width. Words wider
// than the width are broken mid-word. Existing newlines are preserved.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n")
	for i, paragraph := range paragraphs {
		paragraphs[i] = wrapParagraph(paragraph, width)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapParagraph(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var out strings.Builder
	lineWidth := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		switch {
		case lineWidth == 0:
			// First word on the line always goes in, broken if oversized.
			lineWidth = writeWord(&out, word, wordWidth, width)
		case lineWidth+1+wordWidth <= width:
			out.WriteByte(' ')
			out.WriteString(word)
			lineWidth += 1 + wordWidth
		default:
			out.WriteByte('\n')
			lineWidth = writeWord(&out, word, wordWidth, width)
		}
	}
	return out.String()
}

// writeWord writes a word, splitting it across lines when it exceeds the
// width, and returns the width of the last line written.
func writeWord(out *strings.Builder, word string, wordWidth, width int) int {
	if wordWidth <= width {
		out.WriteString(word)
		return wordWidth
	}
	lineWidth := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if lineWidth+rw > width {
			out.WriteByte('\n')
			lineWidth = 0
		}
		out.WriteRune(r)
		lineWidth += rw
	}
	return lineWidth
}
