package reader

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/shadowops/internal/config"
	"github.com/kk-code-lab/shadowops/internal/document"
)

// Mode selects how documents are shown.
type Mode string

const (
	// ModeAuto pages styled output on an interactive terminal and dumps plain
	// text otherwise.
	ModeAuto Mode = config.ModeAuto
	// ModeStyled always tries the pager with styled rendering.
	ModeStyled Mode = config.ModeStyled
	// ModePlain always prints the whole document without styling.
	ModePlain Mode = config.ModePlain
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeAuto, ModeStyled, ModePlain}

const envForceANSI = config.EnvPrefix + "FORCE_ANSI"

// ParseMode accepts auto, styled or plain in any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeAuto, ModeStyled, ModePlain:
		return m, nil
	}
	return "", fmt.Errorf("%q (want auto, styled or plain): %w", s, config.ErrInvalidMode)
}

// ResolveMode applies the precedence flag > configured > auto. configured is
// the effective config value, which already carries SHADOWOPS_READER_MODE.
func ResolveMode(flag, configured string) (Mode, error) {
	if strings.TrimSpace(flag) != "" {
		return ParseMode(flag)
	}
	if strings.TrimSpace(configured) != "" {
		return ParseMode(configured)
	}
	return ModeAuto, nil
}

// Terminal describes the streams the reader writes to.
type Terminal struct {
	Interactive bool
	Color       bool
	ForceANSI   bool
}

// Plan is what Display will do: run the pager or dump text, and with which
// glamour style.
type Plan struct {
	Pager bool
	Style string
}

// Decide turns a mode and terminal description into a plan. style is the
// configured glamour style used whenever styling is on.
func Decide(mode Mode, term Terminal, style string) Plan {
	switch mode {
	case ModePlain:
		return Plan{Pager: false, Style: document.StyleNoTTY}
	case ModeStyled:
		return Plan{Pager: true, Style: style}
	}

	if term.ForceANSI {
		return Plan{Pager: true, Style: style}
	}
	if !term.Interactive {
		return Plan{Pager: false, Style: document.StyleNoTTY}
	}
	if !term.Color {
		return Plan{Pager: true, Style: document.StyleNoTTY}
	}
	return Plan{Pager: true, Style: style}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
