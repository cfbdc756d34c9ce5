package pager

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/shadowops/internal/textutil"
)

const (
	esc         = 0x1b
	styleReset  = "\x1b[0m"
	replacement = '?'
)

// Clip truncates line to width visible cells. SGR and OSC sequences are
// copied through untouched wherever they occur, including after the cut, and
// the result ends in a reset whenever the copied sequences leave a style
// active. Any other CSI (cursor motion, erase) is shown as literal text with
// ESC replaced, so a document cannot move the cursor or clear the frame.
// With width <= 0 only the reset survives, and only if the line used SGR at
// all. Clip never fails: broken escapes are printed as literal text.
func Clip(line string, width int) string {
	var b strings.Builder
	b.Grow(len(line) + len(styleReset))

	styled := false
	sawSGR := false
	used := 0

	for i := 0; i < len(line); {
		if n := markerLen(line[i:]); n > 0 {
			seq := line[i : i+n]
			params, isSGR := sgrParams(seq)
			if isSGR || seq[1] == ']' {
				if isSGR {
					sawSGR = true
					styled = applySGR(styled, params)
				}
				if width > 0 {
					b.WriteString(seq)
				}
				i += n
				continue
			}
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		i += size

		switch {
		case r == '\t':
			r = ' '
		case textutil.IsControl(r):
			r = replacement
		}
		w := runewidth.RuneWidth(r)
		if width <= 0 || (used >= width && w > 0) {
			continue
		}
		if used+w > width {
			// A wide rune straddling the edge is dropped, not split.
			used = width
			continue
		}
		b.WriteRune(r)
		used += w
	}

	if width <= 0 {
		if sawSGR {
			return styleReset
		}
		return ""
	}
	if styled {
		b.WriteString(styleReset)
	}
	return b.String()
}

// markerLen returns the byte length of a complete CSI or OSC sequence at the
// start of s, or 0 when s does not start with one.
func markerLen(s string) int {
	if len(s) < 2 || s[0] != esc {
		return 0
	}
	switch s[1] {
	case '[':
		for j := 2; j < len(s); j++ {
			c := s[j]
			if c >= 0x40 && c <= 0x7e {
				return j + 1
			}
			if c < 0x20 || c > 0x3f {
				return 0
			}
		}
	case ']':
		for j := 2; j < len(s); j++ {
			if s[j] == 0x07 {
				return j + 1
			}
			if s[j] == esc && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
		}
	}
	return 0
}

// sgrParams reports whether seq is a Select Graphic Rendition sequence and
// returns its parameter string.
func sgrParams(seq string) (string, bool) {
	if len(seq) < 3 || seq[1] != '[' || seq[len(seq)-1] != 'm' {
		return "", false
	}
	params := seq[2 : len(seq)-1]
	for i := 0; i < len(params); i++ {
		c := params[i]
		if (c < '0' || c > '9') && c != ';' && c != ':' {
			return "", false
		}
	}
	return params, true
}

// applySGR folds one parameter list into the styled flag. Colour selectors
// (38/48/58) swallow their arguments so a palette index of 0 is not taken
// for a reset.
func applySGR(styled bool, params string) bool {
	if params == "" {
		return false
	}
	fields := strings.Split(params, ";")
	for i := 0; i < len(fields); i++ {
		p := fields[i]
		if strings.Contains(p, ":") {
			styled = true
			continue
		}
		switch p {
		case "", "0":
			styled = false
		case "38", "48", "58":
			styled = true
			if i+1 < len(fields) {
				switch fields[i+1] {
				case "5":
					i += 2
				case "2":
					i += 4
				}
			}
		default:
			styled = true
		}
	}
	return styled
}
