// Package dashboard is the statistics screen: a population summary and the
// record table in scrollable tabs.
package dashboard

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/stats"
	"github.com/abhisek/memoriz/internal/store"
	"github.com/abhisek/memoriz/internal/ui/layout"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

const (
	tabOverview = iota
	tabRecords
)

var tabNames = []string{"Overview", "Records"}

type recordsLoadedMsg struct {
	records []results.TestResult
	err     error
}

// DashboardScreen shows statistics over the combined collections.
type DashboardScreen struct {
	repo      store.ResultRepo
	records   []results.TestResult
	activeTab int
	viewports []viewport.Model
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen reading from deps.Results.
func New(deps screen.Deps) *DashboardScreen {
	s := &DashboardScreen{repo: deps.Results}
	s.viewports = make([]viewport.Model, len(tabNames))
	for i := range s.viewports {
		s.viewports[i] = viewport.New()
	}
	return s
}

func (s *DashboardScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		recs, err := repo.Combined(context.Background())
		return recordsLoadedMsg{records: recs, err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Statistics"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch tab"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.records = msg.records
		s.renderContent()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.activeTab = (s.activeTab + 1) % len(tabNames)
			return s, nil
		case "shift+tab", "left", "h":
			s.activeTab = (s.activeTab + len(tabNames) - 1) % len(tabNames)
			return s, nil
		case "g", "home":
			s.viewports[s.activeTab].GotoTop()
			return s, nil
		case "G", "end":
			s.viewports[s.activeTab].GotoBottom()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.viewports[s.activeTab], cmd = s.viewports[s.activeTab].Update(msg)
	return s, cmd
}

func (s *DashboardScreen) renderContent() {
	var overview strings.Builder
	if err := stats.RenderSummary(&overview, stats.Summarize(s.records)); err != nil {
		overview.WriteString(err.Error())
	}
	s.viewports[tabOverview].SetContent(overview.String())

	var table strings.Builder
	if err := stats.RenderResults(&table, s.records); err != nil {
		table.WriteString(err.Error())
	}
	s.viewports[tabRecords].SetContent(table.String())
}

func (s *DashboardScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.ErrorMessage(s.errMsg, width)
	}
	if !s.loaded {
		return layout.Message("Loading results...", width)
	}

	tabs := s.renderTabs()
	vpHeight := max(1, height-lipgloss.Height(tabs)-1)
	for i := range s.viewports {
		s.viewports[i].SetWidth(width)
		s.viewports[i].SetHeight(vpHeight)
	}
	return tabs + "\n\n" + s.viewports[s.activeTab].View()
}

func (s *DashboardScreen) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == s.activeTab {
			parts[i] = theme.Tab.Render(name)
		} else {
			parts[i] = theme.Hint.Padding(0, 2).Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
