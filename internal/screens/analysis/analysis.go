// Package analysis trains the performance-level classifier over the stored
// results and shows its evaluation.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/sequence"
	"github.com/abhisek/memoriz/internal/stats"
	"github.com/abhisek/memoriz/internal/store"
	"github.com/abhisek/memoriz/internal/ui/layout"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

type state int

const (
	stateLoading state = iota
	stateTraining
	stateDone
	stateFailed
)

type recordsLoadedMsg struct {
	records []results.TestResult
	err     error
}

type taskDueMsg struct {
	ID uint64
}

type ticker func(id uint64, d time.Duration) tea.Cmd

func teaTicker(id uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return taskDueMsg{ID: id} })
}

// AnalysisScreen runs a training pass and displays the report.
type AnalysisScreen struct {
	repo   store.ResultRepo
	engine *classify.Engine
	sched  *scheduler.Deferred
	tick   ticker

	state   state
	records []results.TestResult
	task    *scheduler.Task
	report  classify.Report
	err     error

	spinner  spinner.Model
	viewport viewport.Model
}

var _ screen.Screen = (*AnalysisScreen)(nil)
var _ screen.KeyHintProvider = (*AnalysisScreen)(nil)

// New creates an AnalysisScreen over deps.Results.
func New(deps screen.Deps) *AnalysisScreen {
	return &AnalysisScreen{
		repo:     deps.Results,
		engine:   classify.NewEngine(deps.Classify, sequence.NewTimeSource()),
		sched:    scheduler.NewDeferred(nil),
		tick:     teaTicker,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Hint)),
		viewport: viewport.New(),
	}
}

func (s *AnalysisScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		recs, err := repo.Combined(context.Background())
		return recordsLoadedMsg{records: recs, err: err}
	}
}

func (s *AnalysisScreen) Title() string {
	return "Analysis"
}

func (s *AnalysisScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.state == stateDone || s.state == stateFailed {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retrain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *AnalysisScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if msg.err != nil {
			s.state = stateFailed
			s.err = msg.err
			return s, nil
		}
		s.records = msg.records
		return s, s.train()

	case taskDueMsg:
		s.sched.Fire(msg.ID)
		return s, nil

	case spinner.TickMsg:
		if s.state != stateTraining {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			s.task.Cancel()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			if s.state == stateDone || s.state == stateFailed {
				return s, s.train()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// train schedules a training run over the loaded records.
func (s *AnalysisScreen) train() tea.Cmd {
	s.state = stateTraining
	s.err = nil
	s.task = s.engine.TrainAfter(s.sched, s.records, func(r classify.Report, err error) {
		s.task = nil
		if err != nil {
			s.state = stateFailed
			s.err = err
			return
		}
		s.state = stateDone
		s.report = r
		s.viewport.SetContent(s.renderReport())
		s.viewport.GotoTop()
	})

	cmds := []tea.Cmd{s.spinner.Tick}
	for _, r := range s.sched.Drain() {
		cmds = append(cmds, s.tick(r.ID, r.Delay))
	}
	return tea.Batch(cmds...)
}

func (s *AnalysisScreen) renderReport() string {
	r := s.report
	var b strings.Builder

	fmt.Fprintf(&b, "Trained on %d records at %s\n\n", r.Samples, r.TrainedAt.Local().Format("15:04:05"))
	b.WriteString(theme.Subtitle.Render("Evaluation"))
	b.WriteString("\n")
	if err := stats.RenderMetrics(&b, r.Metrics); err != nil {
		b.WriteString(err.Error())
	}
	fmt.Fprintf(&b, "Macro F1: %.2f\n\n", r.Metrics.MacroF1())

	b.WriteString(theme.Subtitle.Render("Feature importance"))
	b.WriteString("\n")
	if err := stats.RenderImportance(&b, r.Importance); err != nil {
		b.WriteString(err.Error())
	}

	if n := len(s.records); n > 0 {
		latest := s.records[n-1]
		p := predict.Predict(predict.FromResult(latest))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Latest record"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s: predicted %s, confidence %.0f%%\n", latest.ParticipantID, p.Category, p.Confidence*100)
		for _, l := range classify.Labels {
			fmt.Fprintf(&b, "  P(%s) = %.2f\n", l, p.Probabilities[l])
		}
	}

	var misses []string
	for _, p := range r.Predictions {
		if p.True != p.Predicted {
			misses = append(misses, fmt.Sprintf("  %s  avg %.2f  %s -> %s", p.ParticipantID, p.Average, p.True, p.Predicted))
		}
	}
	if len(misses) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Misclassified"))
		b.WriteString("\n")
		b.WriteString(strings.Join(misses, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *AnalysisScreen) View(width, height int) string {
	switch s.state {
	case stateLoading:
		return layout.Message("Loading results...", width)
	case stateTraining:
		return layout.Message(s.spinner.View()+" Training on "+fmt.Sprint(len(s.records))+" records...", width)
	case stateFailed:
		msg := s.err.Error()
		if errors.Is(s.err, classify.ErrInsufficientData) {
			msg = "Not enough data to train. " + msg + ". Run more assessments or import a dataset."
		}
		return layout.ErrorMessage(msg, width)
	}

	s.viewport.SetWidth(width)
	s.viewport.SetHeight(max(1, height))
	return s.viewport.View()
}
