package pager

import "strings"

// State is the scroll position of one pager session. It is owned by the
// session loop and changed only through Apply.
type State struct {
	Top         int
	PageHeight  int
	LastQuery   string
	HelpVisible bool

	lines int

	// match is the line of the last hit and matchTop the top that hit left.
	// Clamping can keep top short of the hit, so a repeated search continues
	// after match for as long as top stays put.
	match    int
	matchTop int
}

// NewState starts at the top of a document with lines lines.
func NewState(lines, pageHeight int) *State {
	if lines < 0 {
		lines = 0
	}
	s := &State{lines: lines, match: -1}
	s.setPageHeight(pageHeight)
	return s
}

// Lines is the document length the state clamps against.
func (s *State) Lines() int { return s.lines }

// MaxTop is the largest top that still fills the page: max(0, N - height).
func (s *State) MaxTop() int {
	return max(0, s.lines-s.PageHeight)
}

func (s *State) setPageHeight(h int) {
	if h < 1 {
		h = 1
	}
	s.PageHeight = h
}

func (s *State) clamp() {
	s.Top = max(0, min(s.Top, s.MaxTop()))
}

// Apply performs one transition. It reports false for ActionQuit, after which
// the owning loop must stop calling it.
func (s *State) Apply(a Action, doc *Document, wrap bool) bool {
	switch a.Kind {
	case ActionLineDown:
		s.Top = min(s.Top+1, s.MaxTop())
	case ActionLineUp:
		s.Top = max(s.Top-1, 0)
	case ActionPageDown:
		s.Top = min(s.Top+s.PageHeight, s.MaxTop())
	case ActionPageUp:
		s.Top = max(s.Top-s.PageHeight, 0)
	case ActionTop:
		s.Top = 0
	case ActionBottom:
		s.Top = s.MaxTop()
	case ActionToggleHelp:
		s.HelpVisible = !s.HelpVisible
	case ActionSearch:
		s.Search(doc, a.Query, wrap)
	case ActionSearchNext:
		s.Search(doc, s.LastQuery, wrap)
	case ActionResize:
		s.setPageHeight(a.Height)
	case ActionQuit:
		return false
	}
	s.clamp()
	return true
}

// Search moves top to the first line after the current top whose visible
// text contains query. An empty query or a miss leaves the state as it was.
// Repeating the last query without scrolling resumes after the previous hit.
// With wrap set the scan continues from the first line up to where it began.
func (s *State) Search(doc *Document, query string, wrap bool) bool {
	if query == "" || doc == nil {
		return false
	}
	from := s.Top + 1
	if query == s.LastQuery && s.match >= 0 && s.Top == s.matchTop {
		from = s.match + 1
	}
	s.LastQuery = query

	n := min(s.lines, doc.Len())
	idx := scanForward(doc, query, from, n)
	if idx < 0 && wrap {
		idx = scanForward(doc, query, 0, min(from, n))
	}
	if idx < 0 {
		return false
	}
	s.Top = idx
	s.clamp()
	s.match, s.matchTop = idx, s.Top
	return true
}

func scanForward(doc *Document, query string, from, to int) int {
	for i := max(from, 0); i < to; i++ {
		if strings.Contains(doc.visible(i), query) {
			return i
		}
	}
	return -1
}
