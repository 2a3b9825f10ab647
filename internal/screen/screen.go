package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/interpret"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/store"
	"github.com/abhisek/memoriz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for the right side of the header.
type StatusProvider interface {
	Status() string
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them, e.g. to confirm leaving a test.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Deps are the services screens share.
type Deps struct {
	Results     store.ResultRepo
	Events      store.EventRepo
	Session     session.Config
	Classify    classify.Config
	Interpreter *interpret.Interpreter
}
