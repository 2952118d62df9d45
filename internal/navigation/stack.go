package navigation

// View identifies one screen of the app.
type View string

const (
	ViewHome  View = "home"
	ViewAdd   View = "add"
	ViewStats View = "stats"
	ViewLogin View = "login"
)

// ParseView maps a name to a View.
func ParseView(s string) (View, bool) {
	switch v := View(s); v {
	case ViewHome, ViewAdd, ViewStats, ViewLogin:
		return v, true
	}
	return "", false
}

// Stack is the back-navigation history. The last element is the visible
// view. Once reset it is never empty: Pop refuses to remove the base.
type Stack struct {
	views []View
}

// Reset replaces the history with base.
func (s *Stack) Reset(base View) {
	s.views = []View{base}
}

// Push adds v on top unless it is already there.
func (s *Stack) Push(v View) {
	if s.Top() == v {
		return
	}
	s.views = append(s.views, v)
}

// Pop removes the top view and returns the new top. It fails when fewer
// than two views are stacked.
func (s *Stack) Pop() (View, bool) {
	if len(s.views) < 2 {
		return "", false
	}
	s.views = s.views[:len(s.views)-1]
	return s.Top(), true
}

// Top returns the visible view, or "" before the first Reset.
func (s *Stack) Top() View {
	if len(s.views) == 0 {
		return ""
	}
	return s.views[len(s.views)-1]
}

// Base returns the bottom view, or "" before the first Reset.
func (s *Stack) Base() View {
	if len(s.views) == 0 {
		return ""
	}
	return s.views[0]
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	return len(s.views)
}

// Views returns a copy of the history, base first.
func (s *Stack) Views() []View {
	return append([]View(nil), s.views...)
}
