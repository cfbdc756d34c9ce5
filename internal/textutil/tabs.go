package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		if ru == '\n' {
			builder.WriteRune(ru)
			column = 0
			continue
		}
		builder.WriteRune(ru)
		column += RuneWidth(ru)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text, measuring grapheme clusters
// so emoji sequences count as a single wide cell pair.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// RuneWidth is the cell width of a single rune. Zero-width runes count as one
// cell so cursor math never stalls on them.
func RuneWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w <= 0 {
		return 1
	}
	return w
}

// TruncateToWidth shortens plain text to width cells, ending with an ellipsis
// when anything was cut.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}

	const ellipsis = "…"
	ellipsisWidth := runewidth.StringWidth(ellipsis)
	if width <= ellipsisWidth {
		return ellipsis
	}

	target := width - ellipsisWidth
	var builder strings.Builder
	current := 0
	for _, ru := range text {
		w := RuneWidth(ru)
		if current+w > target {
			break
		}
		builder.WriteRune(ru)
		current += w
	}
	builder.WriteString(ellipsis)
	return builder.String()
}
