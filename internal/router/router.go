// Package router keeps the TUI's screen stack. Screens navigate by
// returning one of the *Msg commands below; the app feeds every message
// through Router.Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/screen"
)

type (
	// PushScreenMsg opens Screen above the current one.
	PushScreenMsg struct{ Screen screen.Screen }

	// ReplaceScreenMsg swaps the current screen for Screen, e.g. an
	// assessment handing over to its report.
	ReplaceScreenMsg struct{ Screen screen.Screen }

	// PopScreenMsg closes the current screen.
	PopScreenMsg struct{}

	// PopToRootMsg closes everything above the first screen.
	PopToRootMsg struct{}

	// ResumedMsg is delivered to a screen when the screens above it close,
	// so it can refresh data that may have changed meanwhile.
	ResumedMsg struct{}
)

// Router owns the screen stack. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.stack); n > 0 {
		r.stack[n-1] = s
	} else {
		r.stack = []screen.Screen{s}
	}
	return s.Init()
}

// Pop closes the top screen and resumes the one below.
func (r *Router) Pop() tea.Cmd {
	return r.unwind(len(r.stack) - 1)
}

// PopToRoot closes every screen above the root and resumes it.
func (r *Router) PopToRoot() tea.Cmd {
	return r.unwind(1)
}

// unwind truncates the stack to depth screens, never below one.
func (r *Router) unwind(depth int) tea.Cmd {
	if depth < 1 || depth >= len(r.stack) {
		return nil
	}
	r.stack = r.stack[:depth]
	return r.forward(ResumedMsg{})
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}
	return r.forward(msg)
}

func (r *Router) forward(msg tea.Msg) tea.Cmd {
	n := len(r.stack)
	if n == 0 {
		return nil
	}
	next, cmd := r.stack[n-1].Update(msg)
	r.stack[n-1] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
