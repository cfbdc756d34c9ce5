package textutil

import (
	"strings"
	"unicode"
)

// SanitizeTerminalText makes text safe to echo on a single terminal row.
// Line breaks and tabs become spaces; control characters and invisible
// formatting runes (bidi overrides, zero-width joiners, soft hyphens, line and
// paragraph separators) become '?'.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsSanitizing) < 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return ' '
		case needsSanitizing(r):
			return '?'
		}
		return r
	}, text)
}

// IsControl reports whether r would be interpreted by the terminal rather than
// printed. Tabs are left alone; callers expand them first.
func IsControl(r rune) bool {
	return r != '\t' && ((r >= 0 && r < 0x20) || r == 0x7f)
}

func needsSanitizing(r rune) bool {
	return r == '\t' || IsControl(r) || unicode.Is(unicode.Cf, r) ||
		unicode.In(r, unicode.Zl, unicode.Zp)
}
