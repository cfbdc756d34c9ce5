package textutil

import (
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const (
	DefaultTextWidth = 88
	minTextWidth     = 60
	maxTextWidth     = 120
)

var termGetSize = term.GetSize

// TextWidth is the wrap width for non-paged prose: the terminal width clamped
// to a readable range, or DefaultTextWidth when stdout is not a terminal.
func TextWidth() int {
	width, _, err := termGetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = DefaultTextWidth
	}
	return max(minTextWidth, min(width, maxTextWidth))
}

// WrapParagraphs word-wraps every line of text to width while keeping blank
// lines between paragraphs.
func WrapParagraphs(text string, width int) string {
	if width <= 0 {
		width = TextWidth()
	}
	chunks := strings.Split(text, "\n\n")
	for i, chunk := range chunks {
		lines := strings.Split(chunk, "\n")
		for j, line := range lines {
			if strings.TrimSpace(line) == "" {
				lines[j] = ""
				continue
			}
			lines[j] = wordwrap.String(line, width)
		}
		chunks[i] = strings.Join(lines, "\n")
	}
	return strings.Join(chunks, "\n\n")
}
