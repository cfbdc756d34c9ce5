package pager

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fillerDoc(n int) *Document {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("filler row %03d", i)
	}
	doc := NewDocument(lines)
	return &doc
}

func docWith(n int, marks map[int]string) *Document {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "filler"
		if text, ok := marks[i]; ok {
			lines[i] = text
		}
	}
	doc := NewDocument(lines)
	return &doc
}

func TestPageDownConvergesToBottom(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for height := 1; height <= 12; height++ {
			doc := fillerDoc(n)
			s := NewState(n, height)
			want := max(0, n-height)
			for i := 0; i < n+2; i++ {
				s.Apply(Action{Kind: ActionPageDown}, doc, false)
			}
			if s.Top != want {
				t.Fatalf("n=%d height=%d: top=%d, want %d", n, height, s.Top, want)
			}
			s.Apply(Action{Kind: ActionPageDown}, doc, false)
			if s.Top != want {
				t.Fatalf("n=%d height=%d: page-down at bottom moved top to %d", n, height, s.Top)
			}
		}
	}
}

func TestLongDocumentScenario(t *testing.T) {
	doc := fillerDoc(100)
	s := NewState(100, 10)

	var got []int
	steps := []ActionKind{ActionPageDown, ActionPageDown, ActionPageDown, ActionBottom, ActionLineUp}
	for _, kind := range steps {
		s.Apply(Action{Kind: kind}, doc, false)
		got = append(got, s.Top)
	}
	want := []int{10, 20, 30, 90, 89}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("top sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestShortDocumentStaysAtTop(t *testing.T) {
	doc := fillerDoc(5)
	s := NewState(5, 10)
	for _, kind := range []ActionKind{ActionPageDown, ActionPageUp, ActionBottom, ActionLineDown, ActionPageDown} {
		s.Apply(Action{Kind: kind}, doc, false)
		if s.Top != 0 {
			t.Fatalf("%s moved top to %d in a short document", kind, s.Top)
		}
	}
}

func TestEmptyDocumentFixesTopAtZero(t *testing.T) {
	doc := fillerDoc(0)
	s := NewState(0, 3)
	for kind := ActionNone; kind < ActionQuit; kind++ {
		s.Apply(Action{Kind: kind, Query: "x", Height: 4}, doc, true)
		if s.Top != 0 {
			t.Fatalf("%s moved top to %d in an empty document", kind, s.Top)
		}
	}
}

func TestSearchFindsLineAfterTop(t *testing.T) {
	doc := docWith(100, map[int]string{3: "the target phrase"})
	s := NewState(100, 10)

	s.Apply(Action{Kind: ActionSearch, Query: "target"}, doc, false)
	if s.Top != 3 {
		t.Fatalf("expected top=3 after search, got %d", s.Top)
	}
	if s.LastQuery != "target" {
		t.Fatalf("expected last query to be recorded, got %q", s.LastQuery)
	}
}

func TestSearchIsForwardOnly(t *testing.T) {
	doc := docWith(100, map[int]string{20: "needle", 60: "needle again"})
	s := NewState(100, 10)
	s.Top = 30

	s.Apply(Action{Kind: ActionSearch, Query: "needle"}, doc, false)
	if s.Top != 60 {
		t.Fatalf("expected forward match at 60, got %d", s.Top)
	}

	s.Apply(Action{Kind: ActionSearch, Query: "needle"}, doc, false)
	if s.Top != 60 {
		t.Fatalf("expected no match past 60 to leave top unchanged, got %d", s.Top)
	}

	s.Top = 30
	s.Apply(Action{Kind: ActionSearch, Query: "again"}, doc, false)
	if s.Top != 60 {
		t.Fatalf("expected match at 60, got %d", s.Top)
	}
	s.Top = 70
	s.Apply(Action{Kind: ActionSearch, Query: "again"}, doc, false)
	if s.Top != 70 {
		t.Fatalf("expected a match only before top to leave state unchanged, got %d", s.Top)
	}
}

func TestSearchSkipsCurrentTopLine(t *testing.T) {
	doc := docWith(50, map[int]string{0: "marker", 7: "marker"})
	s := NewState(50, 5)
	s.Apply(Action{Kind: ActionSearch, Query: "marker"}, doc, false)
	if s.Top != 7 {
		t.Fatalf("expected scan to start after top, got %d", s.Top)
	}
}

func TestSearchEmptyQueryIsNoop(t *testing.T) {
	doc := docWith(20, map[int]string{5: "x"})
	s := NewState(20, 5)
	s.LastQuery = "previous"
	s.Apply(Action{Kind: ActionSearch, Query: ""}, doc, false)
	if s.Top != 0 || s.LastQuery != "previous" {
		t.Fatalf("empty query changed state: top=%d last=%q", s.Top, s.LastQuery)
	}
}

func TestSearchIgnoresStyleMarkers(t *testing.T) {
	doc := docWith(30, map[int]string{
		4: "\x1b[31m31m colour bytes\x1b[0m",
		9: "\x1b[1mbold\x1b[0m heading",
	})
	s := NewState(30, 5)

	s.Apply(Action{Kind: ActionSearch, Query: "[1m"}, doc, false)
	if s.Top != 0 {
		t.Fatalf("query matched marker bytes, top=%d", s.Top)
	}
	s.Apply(Action{Kind: ActionSearch, Query: "bold heading"}, doc, false)
	if s.Top != 9 {
		t.Fatalf("expected visible-text match at 9, got %d", s.Top)
	}
}

func TestSearchIsCaseSensitive(t *testing.T) {
	doc := docWith(30, map[int]string{6: "Gamma tier"})
	s := NewState(30, 5)
	s.Apply(Action{Kind: ActionSearch, Query: "gamma"}, doc, false)
	if s.Top != 0 {
		t.Fatalf("expected case-sensitive miss, got top=%d", s.Top)
	}
}

func TestSearchMatchNearEndClampsToBottom(t *testing.T) {
	doc := docWith(20, map[int]string{18: "late"})
	s := NewState(20, 10)
	s.Apply(Action{Kind: ActionSearch, Query: "late"}, doc, false)
	if s.Top != s.MaxTop() {
		t.Fatalf("expected clamp to %d, got %d", s.MaxTop(), s.Top)
	}
}

func TestSearchNextRepeatsLastQuery(t *testing.T) {
	doc := docWith(100, map[int]string{10: "hit", 40: "hit", 70: "hit"})
	s := NewState(100, 10)

	s.Apply(Action{Kind: ActionSearch, Query: "hit"}, doc, false)
	s.Apply(Action{Kind: ActionSearchNext}, doc, false)
	if s.Top != 40 {
		t.Fatalf("expected second hit at 40, got %d", s.Top)
	}
	s.Apply(Action{Kind: ActionSearchNext}, doc, false)
	if s.Top != 70 {
		t.Fatalf("expected third hit at 70, got %d", s.Top)
	}
	s.Apply(Action{Kind: ActionSearchNext}, doc, false)
	if s.Top != 70 {
		t.Fatalf("expected no wrap without the option, got %d", s.Top)
	}
	s.Apply(Action{Kind: ActionSearchNext}, doc, true)
	if s.Top != 10 {
		t.Fatalf("expected wrap to first hit, got %d", s.Top)
	}
}

func TestSearchNextAdvancesPastClampedHits(t *testing.T) {
	doc := docWith(20, map[int]string{12: "hit", 15: "hit", 18: "hit"})
	s := NewState(20, 10)

	if !s.Search(doc, "hit", false) || s.Top != 10 || s.match != 12 {
		t.Fatalf("first hit: top=%d match=%d", s.Top, s.match)
	}
	for _, want := range []int{15, 18} {
		s.Apply(Action{Kind: ActionSearchNext}, doc, false)
		if s.match != want || s.Top != 10 {
			t.Fatalf("expected match %d with top 10, got match=%d top=%d", want, s.match, s.Top)
		}
	}
	if s.Search(doc, "hit", false) {
		t.Fatalf("expected no hit after the last one")
	}
	if !s.Search(doc, "hit", true) || s.match != 12 {
		t.Fatalf("expected wrap back to 12, got match=%d", s.match)
	}
}

func TestSearchCursorResetsWhenTopMoves(t *testing.T) {
	doc := docWith(20, map[int]string{12: "hit", 15: "hit", 16: "other"})
	s := NewState(20, 10)

	s.Search(doc, "hit", false)
	s.Search(doc, "hit", false)
	if s.match != 15 {
		t.Fatalf("expected match 15, got %d", s.match)
	}

	s.Apply(Action{Kind: ActionTop}, doc, false)
	s.Apply(Action{Kind: ActionSearchNext}, doc, false)
	if s.match != 12 {
		t.Fatalf("scrolling should restart the scan after top, got match=%d", s.match)
	}

	s.Apply(Action{Kind: ActionSearch, Query: "other"}, doc, false)
	if s.match != 16 || s.LastQuery != "other" {
		t.Fatalf("new query: match=%d last=%q", s.match, s.LastQuery)
	}
}

func TestSearchNextWithoutQueryIsNoop(t *testing.T) {
	doc := fillerDoc(30)
	s := NewState(30, 5)
	s.Apply(Action{Kind: ActionSearchNext}, doc, true)
	if s.Top != 0 {
		t.Fatalf("expected no movement, got %d", s.Top)
	}
}

func TestResizeReclampsTop(t *testing.T) {
	doc := fillerDoc(50)
	s := NewState(50, 10)
	s.Apply(Action{Kind: ActionBottom}, doc, false)
	if s.Top != 40 {
		t.Fatalf("expected bottom at 40, got %d", s.Top)
	}

	s.Apply(Action{Kind: ActionResize, Height: 25}, doc, false)
	if s.PageHeight != 25 || s.Top != 25 {
		t.Fatalf("after resize: height=%d top=%d, want 25/25", s.PageHeight, s.Top)
	}

	s.Apply(Action{Kind: ActionResize, Height: 0}, doc, false)
	if s.PageHeight != 1 {
		t.Fatalf("expected page height floor of 1, got %d", s.PageHeight)
	}
}

func TestToggleHelpAndQuit(t *testing.T) {
	doc := fillerDoc(10)
	s := NewState(10, 5)

	if !s.Apply(Action{Kind: ActionToggleHelp}, doc, false) || !s.HelpVisible {
		t.Fatalf("expected help to open")
	}
	s.Apply(Action{Kind: ActionToggleHelp}, doc, false)
	if s.HelpVisible {
		t.Fatalf("expected help to close")
	}
	if s.Apply(Action{Kind: ActionQuit}, doc, false) {
		t.Fatalf("quit must stop the loop")
	}
}

func TestLineMovesStayInRange(t *testing.T) {
	doc := fillerDoc(12)
	s := NewState(12, 5)
	s.Apply(Action{Kind: ActionLineUp}, doc, false)
	if s.Top != 0 {
		t.Fatalf("line-up at top moved to %d", s.Top)
	}
	for i := 0; i < 20; i++ {
		s.Apply(Action{Kind: ActionLineDown}, doc, false)
	}
	if s.Top != 7 {
		t.Fatalf("expected line-down to stop at 7, got %d", s.Top)
	}
	s.Apply(Action{Kind: ActionPageUp}, doc, false)
	if s.Top != 2 {
		t.Fatalf("expected page-up to 2, got %d", s.Top)
	}
	s.Apply(Action{Kind: ActionTop}, doc, false)
	if s.Top != 0 {
		t.Fatalf("expected top, got %d", s.Top)
	}
}
