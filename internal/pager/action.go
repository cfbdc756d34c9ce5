package pager

// ActionKind names a pager transition.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionLineDown
	ActionLineUp
	ActionPageDown
	ActionPageUp
	ActionTop
	ActionBottom
	ActionToggleHelp
	ActionSearch
	ActionSearchNext
	ActionResize
	ActionQuit
)

func (k ActionKind) String() string {
	switch k {
	case ActionLineDown:
		return "line-down"
	case ActionLineUp:
		return "line-up"
	case ActionPageDown:
		return "page-down"
	case ActionPageUp:
		return "page-up"
	case ActionTop:
		return "top"
	case ActionBottom:
		return "bottom"
	case ActionToggleHelp:
		return "toggle-help"
	case ActionSearch:
		return "search"
	case ActionSearchNext:
		return "search-next"
	case ActionResize:
		return "resize"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Action is one decoded input event. Query is set for ActionSearch, Height
// for ActionResize.
type Action struct {
	Kind   ActionKind
	Query  string
	Height int
}
