package pager

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kk-code-lab/shadowops/internal/textutil"
)

func TestComposePadsPastEndOfDocument(t *testing.T) {
	doc := NewDocument([]string{"one", "two", "three"})
	s := NewState(doc.Len(), 5)

	frame := Compose(&doc, s, 40)
	want := []string{"one", "two", "three", "", ""}
	if len(frame.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(frame.Rows))
	}
	for i := range want {
		if frame.Rows[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, frame.Rows[i], want[i])
		}
	}
}

func TestComposeClipsVisibleSlice(t *testing.T) {
	doc := *fillerDoc(30)
	s := NewState(doc.Len(), 4)
	s.Top = 10

	frame := Compose(&doc, s, 8)
	if frame.Rows[0] != "filler r" || len(frame.Rows) != 4 {
		t.Fatalf("unexpected rows %q", frame.Rows)
	}
	if !strings.HasSuffix(frame.Status, "11/30") {
		t.Fatalf("status %q should end with the 1-based position", frame.Status)
	}
}

func TestStatusLineKeepsPositionWhenNarrow(t *testing.T) {
	s := NewState(100, 10)
	s.Top = 41
	for _, width := range []int{80, 30, 14, 9} {
		status := statusLine(s, 100, width)
		if !strings.Contains(status, "42/100") {
			t.Fatalf("width %d: status %q lost the position", width, status)
		}
		if got := textutil.DisplayWidth(status); got > width-2 {
			t.Fatalf("width %d: status %q is %d cells wide", width, status, got)
		}
	}
}

func TestStatusLineEmptyDocumentAndQuery(t *testing.T) {
	s := NewState(0, 10)
	s.LastQuery = "needle"
	status := statusLine(s, 0, 120)
	if !strings.HasSuffix(status, "[/needle] 1/1") {
		t.Fatalf("unexpected status %q", status)
	}
	if !strings.HasPrefix(status, "j/k:scroll") {
		t.Fatalf("status %q should start with the key legend", status)
	}
}

func TestComposeHelpOverlayListsKeys(t *testing.T) {
	doc := *fillerDoc(3)
	s := NewState(doc.Len(), 20)
	if frame := Compose(&doc, s, 80); len(frame.Help) != 0 {
		t.Fatalf("help should be hidden by default")
	}

	s.HelpVisible = true
	frame := Compose(&doc, s, 80)
	text := strings.Join(frame.Help, "\n")
	for _, want := range []string{"Scrolling", "Page down", "gg Home", "Repeat last search", "Quit"} {
		if !strings.Contains(text, want) {
			t.Fatalf("help overlay missing %q:\n%s", want, text)
		}
	}
}

func TestComposeHelpFitsShortTerminal(t *testing.T) {
	doc := *fillerDoc(3)
	for _, tc := range []struct{ width, height int }{{80, 5}, {80, 1}, {40, 3}} {
		s := NewState(doc.Len(), tc.height)
		s.HelpVisible = true
		frame := Compose(&doc, s, tc.width)

		if len(frame.Help) > tc.height+1 {
			t.Fatalf("%dx%d: help has %d lines for %d rows", tc.width, tc.height, len(frame.Help), tc.height+1)
		}
		text := strings.Join(frame.Help, "\n")
		for _, section := range helpSections {
			for _, entry := range section.entries {
				if !strings.Contains(text, entry.keys+" "+entry.brief) {
					t.Fatalf("%dx%d: help missing %q:\n%s", tc.width, tc.height, entry.keys, text)
				}
			}
		}
		for _, line := range frame.Help {
			if textutil.DisplayWidth(line) > tc.width {
				t.Fatalf("%dx%d: help line %q too wide", tc.width, tc.height, line)
			}
		}
	}
}

func TestFrameWriteToHelpTakesStatusRow(t *testing.T) {
	doc := *fillerDoc(3)
	s := NewState(doc.Len(), 1)
	s.HelpVisible = true
	frame := Compose(&doc, s, 80)
	if len(frame.Help) != 2 {
		t.Fatalf("expected a two-line legend, got %q", frame.Help)
	}

	var buf bytes.Buffer
	if _, err := frame.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[7m") {
		t.Fatalf("status bar should give way to help: %q", out)
	}
	if !strings.Contains(out, "\x1b[2;1H\x1b[2K\x1b[1m"+frame.Help[1]) {
		t.Fatalf("second help line not drawn on the status row: %q", out)
	}
}

func TestFrameWriteToClearsAndDrawsStatus(t *testing.T) {
	doc := NewDocument([]string{"\x1b[1mtitle", "body"})
	s := NewState(doc.Len(), 3)
	frame := Compose(&doc, s, 20)

	var buf bytes.Buffer
	n, err := frame.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	if n != int64(len(out)) {
		t.Fatalf("WriteTo reported %d bytes, wrote %d", n, len(out))
	}
	for _, want := range []string{
		"\x1b[2J\x1b[H",
		"\x1b[1;1H\x1b[2K\x1b[1mtitle\x1b[0m",
		"\x1b[2;1H\x1b[2Kbody",
		"\x1b[4;1H\x1b[2K\x1b[7m ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("frame output missing %q:\n%q", want, out)
		}
	}
}
