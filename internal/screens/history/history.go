package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/store"
	"github.com/abhisek/memoriz/internal/ui/layout"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type trialsLoadedMsg struct {
	SessionID string
	Trials    []store.TrialEventRecord
	Err       error
}

// HistoryScreen lists completed sessions. Enter expands a session into
// its trials.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	trials    map[string][]store.TrialEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		trials:    make(map[string][]store.TrialEventRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: sessionLimit})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) loadTrials(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		trials, err := repo.QueryTrialEvents(context.Background(), sessionID)
		return trialsLoadedMsg{SessionID: sessionID, Trials: trials, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Trials"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case trialsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.trials[msg.SessionID] = msg.Trials
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.trials[id]; s.expanded[s.selected] && !ok {
				return s, s.loadTrials(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.ErrorMessage(s.errMsg, width)
	}
	if !s.loaded {
		return layout.Message("Loading history...", width)
	}
	if len(s.sessions) == 0 {
		return layout.Message("No sessions yet. Run an assessment first.", width)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Centered(style.Render(prefix+sessionLine(sess)), width))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderTrials(sess.SessionID, width))
		}
	}

	return b.String()
}

func sessionLine(sess store.SessionSummaryRecord) string {
	var accuracy float64
	if sess.Trials > 0 {
		accuracy = float64(sess.Correct) / float64(sess.Trials) * 100
	}
	who := sess.ParticipantID
	if who == "" {
		who = "-"
	}
	return fmt.Sprintf("%s  %-5s  %-10s  %d:%02d  %2d trials  %3.0f%%  avg %.2f",
		sess.Timestamp.Local().Format("Jan 02, 2006 15:04"),
		sess.Mode, who,
		sess.DurationSecs/60, sess.DurationSecs%60,
		sess.Trials, accuracy, sess.CoreAverage)
}

func (s *HistoryScreen) renderTrials(sessionID string, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	trials, ok := s.trials[sessionID]
	switch {
	case !ok:
		return layout.Centered(dim.Render("    loading trials..."), width) + "\n"
	case len(trials) == 0:
		return layout.Centered(dim.Render("    No trials recorded"), width) + "\n"
	}

	var b strings.Builder
	for _, t := range trials {
		mark := theme.Correct.Render("✓")
		if !t.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("    %s %-14s #%-2d  shown %-9s  answered %-9s  %4.1f  %5d ms",
			mark, t.Phase, t.TrialIndex+1, t.Shown, t.Response, t.Score, t.ReactionMs)
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line), width))
		b.WriteString("\n")
	}
	return b.String()
}
