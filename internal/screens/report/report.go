// Package report shows a finished assessment: the result record, the
// predicted category and a written interpretation.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/interpret"
	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/ui/components"
	"github.com/abhisek/memoriz/internal/ui/layout"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

const narrativeTimeout = 45 * time.Second

// narrativeMsg carries the interpreter's answer.
type narrativeMsg struct {
	narrative interpret.Narrative
	err       error
}

// ReportScreen displays the result of one session.
type ReportScreen struct {
	deps    screen.Deps
	result  results.TestResult
	summary *session.Summary
	saveErr error

	prediction predict.Result
	narrative  interpret.Narrative
	pending    bool
	llmErr     error
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a report for res. sum may be nil. A non-nil saveErr is
// shown as a warning.
func New(deps screen.Deps, res results.TestResult, sum *session.Summary, saveErr error) *ReportScreen {
	return &ReportScreen{
		deps:       deps,
		result:     res,
		summary:    sum,
		saveErr:    saveErr,
		prediction: predict.Predict(predict.FromResult(res)),
		narrative:  interpret.Rules(res),
		pending:    deps.Interpreter != nil,
	}
}

func (s *ReportScreen) Init() tea.Cmd {
	if s.deps.Interpreter == nil {
		return nil
	}
	ip, res := s.deps.Interpreter, s.result
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), narrativeTimeout)
		defer cancel()
		n, err := ip.Explain(ctx, res)
		return narrativeMsg{narrative: n, err: err}
	}
}

func (s *ReportScreen) Title() string {
	return "Results"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case narrativeMsg:
		s.pending = false
		s.narrative = msg.narrative
		s.llmErr = msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder

	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	center(theme.Title.Render("Assessment complete"))
	if s.summary != nil {
		center(theme.Hint.Render(fmt.Sprintf("Duration %s   Trials %d   Correct %d   Accuracy %.0f%%",
			formatDuration(s.summary.Duration), s.summary.TotalTrials, s.summary.TotalCorrect, s.summary.Accuracy*100)))
	}
	b.WriteString("\n")

	center(theme.Card.Render(s.renderScores()))
	b.WriteString("\n")
	center(s.renderPrediction())
	b.WriteString("\n")

	band := interpret.WorkingMemoryBand(r.WorkingMemory / results.MaxScore)
	center(theme.Subtitle.Render(band.Message()))
	b.WriteString("\n")

	narrWidth := max(20, min(width-8, 72))
	center(s.renderNarrative(narrWidth))

	if s.saveErr != nil {
		b.WriteString("\n")
		center(theme.Warning.Render("Result not saved: " + s.saveErr.Error()))
	}
	return b.String()
}

func (s *ReportScreen) renderScores() string {
	r := s.result
	rows := []struct {
		label string
		value string
		score float64
	}{
		{"Participant", r.ParticipantID, -1},
		{"Age", fmt.Sprintf("%d", r.Age), -1},
		{"Education", r.Education.DisplayName(), -1},
		{"Visual memory", fmt.Sprintf("%.1f", r.VisualMemory), r.VisualMemory},
		{"Working memory", fmt.Sprintf("%.1f", r.WorkingMemory), r.WorkingMemory},
		{"Immediate memory", fmt.Sprintf("%.1f", r.ImmediateMemory), r.ImmediateMemory},
		{"Sustained attention", fmt.Sprintf("%.1f", r.SustainedAttention), r.SustainedAttention},
		{"Reaction time", fmt.Sprintf("%d ms", r.ReactionTimeMs), -1},
		{"Accuracy", fmt.Sprintf("%.1f%%", r.AccuracyPct), -1},
		{"Fatigue", fmt.Sprintf("%d/5", r.Fatigue), -1},
	}

	var lines []string
	for _, row := range rows {
		line := theme.Label.Width(22).Render(row.label) + theme.Body.Width(10).Render(row.value)
		if row.score >= 0 {
			line += components.ScoreGauge(row.score, 20)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *ReportScreen) renderPrediction() string {
	p := s.prediction
	style := theme.Body
	switch p.Category {
	case classify.LabelHigh:
		style = theme.Correct
	case classify.LabelLow:
		style = theme.Incorrect
	}
	return theme.Body.Render("Predicted performance: ") +
		style.Bold(true).Render(p.Category.String()) +
		theme.Hint.Render(fmt.Sprintf("   confidence %.0f%%", p.Confidence*100))
}

func (s *ReportScreen) renderNarrative(width int) string {
	n := s.narrative
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(wrap.Inherit(theme.Body).Render(n.Summary))
	if len(n.Strengths) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Correct.Render("Strengths: "))
		b.WriteString(theme.Body.Render(strings.Join(n.Strengths, ", ")))
	}
	if len(n.Concerns) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("Concerns: "))
		b.WriteString(theme.Body.Render(strings.Join(n.Concerns, ", ")))
	}
	if n.Recommendation != "" {
		b.WriteString("\n\n")
		b.WriteString(wrap.Inherit(theme.Body).Render(n.Recommendation))
	}

	b.WriteString("\n\n")
	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Asking the model for an interpretation..."))
	case s.llmErr != nil:
		b.WriteString(theme.Warning.Render("Model unavailable, showing rule-based interpretation"))
	default:
		b.WriteString(theme.Hint.Render("Source: " + n.Source))
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
