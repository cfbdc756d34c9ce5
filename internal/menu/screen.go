package menu

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/shadowops/internal/textutil"
)

const menuFooter = "↑/↓ j/k move  Enter select  1-9 jump  Esc/q back"

var errScreenClosed = errors.New("menu screen closed")

// selectScreen runs one full-screen choice. The screen is finalised before
// returning so the caller's handler gets a normal terminal.
func (c *Console) selectScreen(title string, options []string) (int, bool, error) {
	screen, err := c.NewScreen()
	if err != nil {
		return -1, false, err
	}
	if err := screen.Init(); err != nil {
		return -1, false, err
	}
	defer screen.Fini()
	screen.HideCursor()

	cursor := 0
	n := len(options)
	for {
		drawMenu(screen, title, options, cursor)

		switch ev := screen.PollEvent().(type) {
		case nil:
			return -1, false, errScreenClosed
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyUp, tcell.KeyCtrlP:
				cursor = (cursor - 1 + n) % n
			case tcell.KeyDown, tcell.KeyCtrlN, tcell.KeyTab:
				cursor = (cursor + 1) % n
			case tcell.KeyHome:
				cursor = 0
			case tcell.KeyEnd:
				cursor = n - 1
			case tcell.KeyEnter:
				return cursor, true, nil
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return -1, false, nil
			case tcell.KeyRune:
				r := ev.Rune()
				switch {
				case r == 'j':
					cursor = (cursor + 1) % n
				case r == 'k':
					cursor = (cursor - 1 + n) % n
				case r == 'q':
					return -1, false, nil
				case r >= '1' && r <= '9':
					if idx := int(r - '1'); idx < n {
						return idx, true, nil
					}
				}
			}
		}
	}
}

func drawMenu(screen tcell.Screen, title string, options []string, cursor int) {
	screen.Clear()
	w, h := screen.Size()
	base := tcell.StyleDefault
	titleStyle := base.Bold(true)
	selected := base.Reverse(true)
	hint := base.Dim(true)

	drawText(screen, 1, 0, w-1, titleStyle, title)

	// Keep the cursor row on screen when the list is taller than the window.
	rows := max(h-4, 1)
	first := 0
	if cursor >= rows {
		first = cursor - rows + 1
	}
	for i := first; i < len(options) && i-first < rows; i++ {
		style := base
		marker := "  "
		if i == cursor {
			style = selected
			marker = "› "
		}
		label := textutil.SanitizeTerminalText(options[i])
		drawText(screen, 1, 2+i-first, w-1, style, marker+label)
	}
	if h > 3 {
		drawText(screen, 1, h-1, w-1, hint, menuFooter)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, maxX int, style tcell.Style, text string) {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > maxX {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += rw
	}
}
