// Package document turns markdown sources into the styled display lines the
// pager shows.
package document

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	StyleAuto  = "auto"
	StyleNoTTY = "notty"

	defaultWidth = 80
)

// Renderer converts a source into display lines for a given width. The same
// source and width always produce the same lines.
type Renderer interface {
	RenderLines(src Source, width int) ([]string, error)
}

// GlamourRenderer renders markdown with glamour. Style is one of the built-in
// names (auto, dark, light, notty, dracula, pink) or a JSON style file.
type GlamourRenderer struct {
	Style string
}

// Plain is the renderer for non-interactive output: no colour, no markers.
var Plain Renderer = GlamourRenderer{Style: StyleNoTTY}

// RenderLines word-wraps to width and returns one element per screen line.
func (g GlamourRenderer) RenderLines(src Source, width int) ([]string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(g.options(width)...)
	if err != nil {
		return nil, err
	}
	out, err := r.Render(src.Text())
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (g GlamourRenderer) options(width int) []glamour.TermRendererOption {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}

	style := strings.ToLower(strings.TrimSpace(g.Style))
	switch style {
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	case "dark", "light", StyleNoTTY, "dracula", "pink", "ascii", "tokyo-night":
		opts = append(opts, glamour.WithStylePath(style))
	default:
		if _, err := os.Stat(g.Style); err == nil {
			opts = append(opts, glamour.WithStylesFromJSONFile(g.Style))
		} else {
			opts = append(opts, glamour.WithAutoStyle())
		}
	}
	return opts
}

// splitLines drops glamour's right padding and the trailing blank lines.
func splitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if strings.TrimSpace(out) == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// ValidStyle reports whether style names a built-in glamour style or an
// existing style file.
func ValidStyle(style string) bool {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", StyleAuto, "dark", "light", StyleNoTTY, "dracula", "pink", "ascii", "tokyo-night":
		return true
	}
	_, err := os.Stat(style)
	return err == nil
}
