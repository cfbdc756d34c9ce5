package pager

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/shadowops/internal/textutil"
)

const statusLegend = "j/k:scroll SPACE:pgdn b:pgup gg:top G:bottom /:search n:next h:help q:quit"

// Frame is one fully composed screen: PageHeight content rows followed by a
// status line. Help is non-empty while the help overlay is shown.
type Frame struct {
	Rows   []string
	Status string
	Help   []string
	Width  int
}

// Compose renders the visible slice of doc for state. Rows are clipped to
// width and padded with empty strings past the end of the document.
func Compose(doc *Document, state *State, width int) Frame {
	height := max(state.PageHeight, 1)
	rows := make([]string, height)
	n := 0
	if doc != nil {
		n = doc.Len()
		for i := range rows {
			idx := state.Top + i
			if idx >= n {
				break
			}
			rows[i] = Clip(doc.Line(idx), width)
		}
	}

	frame := Frame{
		Rows:   rows,
		Status: statusLine(state, n, width),
		Width:  width,
	}
	if state.HelpVisible {
		frame.Help = helpLines(width, height)
	}
	return frame
}

// statusLine fits the key legend and the position into width cells. The
// legend is shortened first so the position indicator always survives.
func statusLine(state *State, n, width int) string {
	pos := fmt.Sprintf("%d/%d", state.Top+1, max(1, n))
	if state.LastQuery != "" {
		pos = fmt.Sprintf("[/%s] %s", textutil.SanitizeTerminalText(state.LastQuery), pos)
	}
	if width <= 0 {
		return pos
	}
	// Two cells of padding around the reversed bar, two between the parts.
	room := width - 2 - textutil.DisplayWidth(pos) - 2
	if room <= 0 {
		return textutil.TruncateToWidth(pos, max(width-2, 1))
	}
	legend := textutil.TruncateToWidth(statusLegend, room)
	gap := max(2, width-2-textutil.DisplayWidth(legend)-textutil.DisplayWidth(pos))
	return legend + strings.Repeat(" ", gap) + pos
}

type helpEntry struct {
	keys  string
	desc  string
	brief string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Scrolling",
		entries: []helpEntry{
			{keys: "j ↓ Enter", desc: "Line down", brief: "down"},
			{keys: "k ↑", desc: "Line up", brief: "up"},
			{keys: "Space f PgDn", desc: "Page down", brief: "pgdn"},
			{keys: "b PgUp", desc: "Page up", brief: "pgup"},
			{keys: "gg Home", desc: "Go to top", brief: "top"},
			{keys: "G End", desc: "Go to bottom", brief: "bottom"},
		},
	},
	{
		title: "Search",
		entries: []helpEntry{
			{keys: "/", desc: "Search forward (Enter to run, Esc to cancel)", brief: "search"},
			{keys: "n", desc: "Repeat last search", brief: "next"},
		},
	},
	{
		title: "Other",
		entries: []helpEntry{
			{keys: "h ?", desc: "Toggle this help", brief: "help"},
			{keys: "q Esc Ctrl+C", desc: "Quit", brief: "quit"},
		},
	},
}

// helpLines lays out every key binding. When the sectioned layout needs more
// than rows lines, the bindings are packed into a compact legend instead.
func helpLines(width, rows int) []string {
	lines := make([]string, 0, 16)
	for i, section := range helpSections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, Clip(fmt.Sprintf("  %-14s %s", entry.keys, entry.desc), width))
		}
	}
	if len(lines) <= rows {
		return lines
	}
	return compactHelp(width)
}

func compactHelp(width int) []string {
	const sep = "  "
	var lines []string
	var cur string
	for _, section := range helpSections {
		for _, entry := range section.entries {
			seg := entry.keys + " " + entry.brief
			switch {
			case cur == "":
				cur = seg
			case width > 0 && textutil.DisplayWidth(cur+sep+seg) > width:
				lines = append(lines, Clip(cur, width))
				cur = seg
			default:
				cur += sep + seg
			}
		}
	}
	return append(lines, Clip(cur, width))
}

// WriteTo draws the frame with a full clear. The cursor stays hidden; the
// session shows it again when it releases the terminal. Help that does not
// fit the content rows takes over the status line too.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	_, _ = io.WriteString(cw, "\x1b[?25l\x1b[2J\x1b[H")
	row := 1
	for i, line := range f.Rows {
		if i < len(f.Help) {
			line = "\x1b[1m" + f.Help[i] + styleReset
		}
		drawRow(cw, row, line)
		row++
	}
	if len(f.Help) > len(f.Rows) {
		drawRow(cw, row, "\x1b[1m"+f.Help[len(f.Rows)]+styleReset)
	} else {
		fmt.Fprintf(cw, "\x1b[%d;1H\x1b[2K\x1b[7m %s \x1b[0m", row, f.Status)
	}

	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func drawRow(w io.Writer, row int, text string) {
	fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K%s", row, text)
}

// writePrompt replaces the status line with the search input.
func writePrompt(w io.Writer, row, width int, query string) error {
	text := "/" + textutil.SanitizeTerminalText(query)
	if width > 0 {
		text = Clip(text, width-1)
	}
	_, err := fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K%s\x1b[?25h", row, text)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
