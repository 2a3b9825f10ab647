package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/screens/analysis"
	"github.com/abhisek/memoriz/internal/screens/assessment"
	"github.com/abhisek/memoriz/internal/screens/dashboard"
	"github.com/abhisek/memoriz/internal/screens/history"
	"github.com/abhisek/memoriz/internal/ui/components"
	"github.com/abhisek/memoriz/internal/ui/layout"
)

// overview holds the figures shown in the stats bar.
type overview struct {
	local   int
	dataset int
	last    *predict.Result
}

type overviewLoadedMsg struct {
	overview overview
	err      error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps     screen.Deps
	menu     components.Menu
	overview overview
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	push := func(f func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: f()} }
		}
	}
	noResults := deps.Results == nil

	items := []components.MenuItem{
		{Label: "FULL ASSESSMENT", Action: push(func() screen.Screen { return assessment.New(deps, false) })},
		{Label: "MEMORY DRILL", Action: push(func() screen.Screen { return assessment.New(deps, true) })},
		{Label: "ANALYSIS", Disabled: noResults, Action: push(func() screen.Screen { return analysis.New(deps) })},
		{Label: "STATISTICS", Disabled: noResults, Action: push(func() screen.Screen { return dashboard.New(deps) })},
		{Label: "HISTORY", Disabled: deps.Events == nil, Action: push(func() screen.Screen { return history.New(deps.Events) })},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.deps.Results
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		local, err := repo.Results(ctx)
		if err != nil {
			return overviewLoadedMsg{err: err}
		}
		dataset, err := repo.Dataset(ctx)
		if err != nil {
			return overviewLoadedMsg{err: err}
		}
		ov := overview{local: len(local), dataset: len(dataset)}
		if n := len(local); n > 0 {
			p := predict.Predict(predict.FromResult(local[n-1]))
			ov.last = &p
		}
		return overviewLoadedMsg{overview: ov}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		// An assessment or import may have added results.
		return h, h.Init()
	}
	if msg, ok := msg.(overviewLoadedMsg); ok {
		h.loaded = true
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.overview = msg.overview
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.Compact(width, height)
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if h.deps.Results != nil {
		sections = append(sections, renderStatsBar(h.statsLine(compact), cw))
	}
	labels, disabled := h.menu.Labels(), h.menu.Disabled()
	if compact {
		sections = append(sections, renderMenuCompact(labels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(labels, h.menu.Selected, cw, disabled))
	}
	if h.deps.Interpreter == nil {
		sections = append(sections, renderNote("No LLM configured. Interpretations use built-in rules.", cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) statsLine(compact bool) string {
	switch {
	case h.errMsg != "":
		return "results unavailable: " + h.errMsg
	case !h.loaded:
		return "loading..."
	}
	ov := h.overview
	line := formatCount(ov.local, "result", compact) + "   " + formatCount(ov.dataset, "imported", compact)
	if ov.last != nil && !compact {
		line += "   last: " + ov.last.Category.String()
	}
	return line
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-6", Description: "Jump"},
	}
}
