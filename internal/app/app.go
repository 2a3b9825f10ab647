package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/screens/assessment"
	"github.com/abhisek/memoriz/internal/screens/home"
	"github.com/abhisek/memoriz/internal/screens/welcome"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/ui/layout"
)

// Options selects the first screen.
type Options struct {
	// Assess skips the splash and home screens and opens an assessment in
	// the configured mode.
	Assess bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the splash or assessment screen.
func newAppModel(deps screen.Deps, opts Options) AppModel {
	homeFactory := func() screen.Screen { return home.New(deps) }

	var first screen.Screen = welcome.New(homeFactory)
	if opts.Assess {
		first = assessment.New(deps, deps.Session.Mode == session.ModeWorkingMemory)
	}
	return AppModel{router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.TooSmall(m.width, m.height) {
		v.SetContent(layout.TooSmallMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.Header(title, status, m.width)

	footer := layout.Footer(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.Frame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps screen.Deps, opts Options) error {
	p := tea.NewProgram(newAppModel(deps, opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
