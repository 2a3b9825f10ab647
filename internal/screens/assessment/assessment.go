// Package assessment is the screen that runs a full battery or a
// working-memory drill.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/attention"
	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/screens/report"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/trial"
	"github.com/abhisek/memoriz/internal/ui/layout"
)

// AssessmentScreen drives a session.Controller from key presses. Timers
// go through a Deferred scheduler so every callback runs inside Update.
type AssessmentScreen struct {
	deps   screen.Deps
	sched  *scheduler.Deferred
	ctrl   *session.Controller
	tick   ticker
	form   participantForm
	notice string

	confirmQuit bool
	finished    bool
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.StatusProvider = (*AssessmentScreen)(nil)
var _ screen.EscapeHandler = (*AssessmentScreen)(nil)

// New creates an assessment screen. drill selects the standalone
// working-memory drill instead of the full battery.
func New(deps screen.Deps, drill bool) *AssessmentScreen {
	cfg := deps.Session
	cfg.Mode = session.ModeFullBattery
	if drill {
		cfg.Mode = session.ModeWorkingMemory
	}
	sched := scheduler.NewDeferred(nil)
	return &AssessmentScreen{
		deps:  deps,
		sched: sched,
		ctrl: session.New(session.Options{
			Config:    cfg,
			Scheduler: sched,
			Results:   deps.Results,
			Events:    deps.Events,
		}),
		tick: teaTicker,
		form: newParticipantForm(),
	}
}

func (s *AssessmentScreen) Init() tea.Cmd {
	return tea.Batch(s.form.focusCmd(), clockTick())
}

func (s *AssessmentScreen) Title() string {
	if s.ctrl.Mode() == session.ModeWorkingMemory {
		return "Working Memory Drill"
	}
	return "Assessment"
}

func (s *AssessmentScreen) HandlesEscape() bool { return true }

func (s *AssessmentScreen) Status() string {
	p := s.ctrl.Progress()
	switch s.ctrl.Phase() {
	case session.PhaseInfo, session.PhaseResults:
		return ""
	case session.PhaseAttention:
		return fmt.Sprintf("Stimulus %d/%d  %s", min(p.Done+1, p.Total), p.Total, clock(s.ctrl.Elapsed()))
	}
	return fmt.Sprintf("Trial %d/%d  %s", s.ctrl.TrialNumber(), p.Total, clock(s.ctrl.Elapsed()))
}

func clock(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "R", Description: "Restart"},
			{Key: "N", Description: "Continue"},
		}
	}
	switch s.ctrl.Phase() {
	case session.PhaseInfo:
		if s.ctrl.Mode() == session.ModeWorkingMemory {
			return []layout.KeyHint{{Key: "Enter", Description: "Begin"}, {Key: "Esc", Description: "Back"}}
		}
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	case session.PhaseAttention:
		return []layout.KeyHint{
			{Key: "Space", Description: "Target"},
			{Key: "N", Description: "Not target"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "0-9", Description: "Digit"},
		{Key: "Bksp", Description: "Erase"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDueMsg:
		s.sched.Fire(msg.ID)
		return s, s.step()

	case clockTickMsg:
		if s.ctrl.Phase() == session.PhaseResults {
			return s, nil
		}
		return s, clockTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.ctrl.Phase() == session.PhaseInfo {
		cmd, _ := s.form.update(msg)
		return s, cmd
	}
	return s, nil
}

// step arms timers for newly scheduled tasks and leaves for the report
// once the controller has assembled a result.
func (s *AssessmentScreen) step() tea.Cmd {
	reqs := s.sched.Drain()
	cmds := make([]tea.Cmd, 0, len(reqs)+1)
	for _, r := range reqs {
		cmds = append(cmds, s.tick(r.ID, r.Delay))
	}
	if s.ctrl.Phase() == session.PhaseResults {
		cmds = append(cmds, s.finish())
	}
	return tea.Batch(cmds...)
}

func (s *AssessmentScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true
	saveErr := s.ctrl.Save(context.Background())
	res, err := s.ctrl.Result()
	if err != nil {
		return nil
	}
	rep := report.New(s.deps, res, session.BuildSummary(s.ctrl), saveErr)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: rep} }
}

func (s *AssessmentScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.ctrl.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			s.confirmQuit = false
			s.ctrl.Reset()
			s.form = newParticipantForm()
			s.notice = ""
			return s, tea.Batch(s.form.focusCmd(), s.step())
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	phase := s.ctrl.Phase()
	if key == "esc" {
		if phase == session.PhaseInfo {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.confirmQuit = true
		return s, nil
	}

	switch phase {
	case session.PhaseInfo:
		return s.handleInfoKey(msg)
	case session.PhasePractice, session.PhaseVisual, session.PhaseWorkingMemory:
		return s.handleTrialKey(key)
	case session.PhaseAttention:
		return s.handleAttentionKey(key)
	}
	return s, nil
}

func (s *AssessmentScreen) handleInfoKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl.Mode() == session.ModeWorkingMemory {
		if msg.String() != "enter" {
			return s, nil
		}
		return s.begin(session.Participant{})
	}

	cmd, submitted := s.form.update(msg)
	if !submitted {
		return s, cmd
	}
	return s.begin(s.form.participant())
}

func (s *AssessmentScreen) begin(p session.Participant) (screen.Screen, tea.Cmd) {
	if err := s.ctrl.SubmitParticipant(p); err != nil {
		s.form.err = err.Error()
		return s, nil
	}
	s.form.err = ""
	s.notice = ""
	return s, s.step()
}

func (s *AssessmentScreen) handleTrialKey(key string) (screen.Screen, tea.Cmd) {
	s.notice = ""
	var err error
	switch {
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		_, err = s.ctrl.Input(int(key[0] - '0'))
	case key == "backspace":
		s.ctrl.Backspace()
	case key == "enter":
		_, err = s.ctrl.Confirm()
	default:
		return s, nil
	}

	// Keys while the sequence is showing or between trials are ignored.
	if errors.Is(err, trial.ErrMalformedResponse) {
		if key == "enter" {
			s.notice = fmt.Sprintf("Enter all %d digits first", s.ctrl.CurrentLength())
		} else {
			s.notice = "All digits entered. Press Enter to confirm"
		}
	}
	return s, s.step()
}

func (s *AssessmentScreen) handleAttentionKey(key string) (screen.Screen, tea.Cmd) {
	var err error
	switch key {
	case "space", " ", "x", "X":
		err = s.ctrl.Respond(true)
	case "n", "N":
		err = s.ctrl.Respond(false)
	default:
		return s, nil
	}
	if errors.Is(err, attention.ErrAlreadyAnswered) {
		s.notice = "Already answered. Wait for the next letter"
	} else {
		s.notice = ""
	}
	return s, s.step()
}
