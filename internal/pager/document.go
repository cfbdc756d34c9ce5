package pager

import "github.com/charmbracelet/x/ansi"

// Document is the immutable sequence of display lines shown by a pager.
type Document struct {
	lines []string
	plain []string
}

// NewDocument copies lines into a Document.
func NewDocument(lines []string) Document {
	return Document{lines: append([]string(nil), lines...)}
}

// Len is the number of lines.
func (d Document) Len() int { return len(d.lines) }

// Line returns line i, or "" when i is out of range.
func (d Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Lines returns a copy of every line.
func (d Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// visible returns the text of line i with escape sequences removed. Search
// matches against this so a query never hits the bytes of a colour code.
func (d *Document) visible(i int) string {
	if d.plain == nil {
		d.plain = make([]string, len(d.lines))
		for idx, line := range d.lines {
			d.plain[idx] = ansi.Strip(line)
		}
	}
	return d.plain[i]
}
