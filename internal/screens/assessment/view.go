package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/attention"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/trial"
	"github.com/abhisek/memoriz/internal/ui/components"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

func (s *AssessmentScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}

	var body string
	switch s.ctrl.Phase() {
	case session.PhaseInfo:
		body = s.renderInfo()
	case session.PhasePractice, session.PhaseVisual, session.PhaseWorkingMemory:
		body = s.renderTrial(width)
	case session.PhaseAttention:
		body = s.renderAttention()
	case session.PhaseResults:
		body = theme.Hint.Render("Scoring...")
	}

	if s.notice != "" {
		body += "\n\n" + theme.Warning.Render(s.notice)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *AssessmentScreen) renderInfo() string {
	var b strings.Builder
	if s.ctrl.Mode() == session.ModeWorkingMemory {
		b.WriteString(theme.Title.Render("Working memory drill"))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(
			"You will see a row of digits, one second per digit.\n" +
				"When they disappear, type them in REVERSE order and press Enter.\n" +
				"The first rounds are practice. Sequences grow as you get them right."))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press Enter to begin"))
		return b.String()
	}

	b.WriteString(theme.Title.Render("Participant"))
	b.WriteString("\n\n")
	b.WriteString(theme.Card.Render(s.form.view()))
	if s.form.err != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.form.err))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Three parts: visual recall, backward digit span, sustained attention"))
	return b.String()
}

func phaseHeading(p session.Phase) string {
	switch p {
	case session.PhasePractice:
		return "Practice"
	case session.PhaseVisual:
		return "Visual memory"
	case session.PhaseWorkingMemory:
		return "Working memory"
	}
	return ""
}

func (s *AssessmentScreen) renderTrial(width int) string {
	e := s.ctrl.Engine()
	phase := s.ctrl.Phase()

	var b strings.Builder
	b.WriteString(theme.Title.Render(phaseHeading(phase)))
	b.WriteString("\n")
	b.WriteString(components.Gauge(s.ctrl.Progress().Fraction(), max(10, min(40, width-10))))
	b.WriteString("\n\n")

	if e == nil {
		b.WriteString(theme.Hint.Render("Get ready..."))
		return b.String()
	}

	switch e.State() {
	case trial.StatePresenting:
		b.WriteString(theme.Subtitle.Render("Memorize"))
		b.WriteString("\n\n")
		b.WriteString(components.Digits(e.Sequence()))

	case trial.StateAwaitingResponse:
		if e.Variant() == trial.VariantBackward {
			b.WriteString(theme.Subtitle.Render("Type the digits in reverse order"))
		} else {
			b.WriteString(theme.Subtitle.Render("Type the digits in the order shown"))
		}
		b.WriteString("\n\n")
		b.WriteString(components.Slots(e.Response(), e.ExpectedLength()))
		b.WriteString("\n\n")
		b.WriteString(components.Keypad(e.CanConfirm()))

	case trial.StateScored:
		b.WriteString(renderFeedback(e, phase))

	default:
		b.WriteString(theme.Hint.Render("Get ready..."))
	}
	return b.String()
}

func renderFeedback(e *trial.Engine, phase session.Phase) string {
	t, ok := e.Last()
	if !ok {
		return ""
	}
	var b strings.Builder
	switch {
	case t.Variant == trial.VariantVisual:
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d of %d in place", t.Matched, len(t.Sequence))))
	case t.Correct:
		b.WriteString(theme.Correct.Render("Correct"))
	default:
		b.WriteString(theme.Incorrect.Render("Not quite"))
	}
	if phase == session.PhasePractice && !t.Correct {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("The answer was"))
		b.WriteString("\n")
		b.WriteString(components.Digits(t.Expected()))
	}
	return b.String()
}

func (s *AssessmentScreen) renderAttention() string {
	st := s.ctrl.Stream()
	var b strings.Builder
	b.WriteString(theme.Title.Render("Sustained attention"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Press Space when you see %c, N for any other letter", attention.TargetLetter)))
	b.WriteString("\n\n")

	if st == nil {
		return b.String()
	}
	stim, _, ok := st.Current()
	if !ok {
		b.WriteString(theme.Hint.Render("Scoring..."))
		return b.String()
	}
	box := theme.Stimulus
	if st.Answered() {
		box = box.BorderForeground(theme.Secondary)
	}
	b.WriteString(box.Render(string(stim.Letter)))
	b.WriteString("\n\n")
	b.WriteString(components.Gauge(s.ctrl.Progress().Fraction(), 30))
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	msg := theme.Body.Render("Leave the assessment?") + "\n\n" +
		theme.Hint.Render("Progress in this session will be discarded.") + "\n\n" +
		theme.Selected.Render("Y") + theme.Body.Render(" leave   ") +
		theme.Selected.Render("R") + theme.Body.Render(" restart   ") +
		theme.Selected.Render("N") + theme.Body.Render(" continue")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(msg))
}
