package assessment

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/ui/components"
)

// participantForm collects name, age and education.
type participantForm struct {
	name      components.Field
	age       components.Field
	education components.Choice
	focus     int
	err       string
}

const formFields = 3

func newParticipantForm() participantForm {
	f := participantForm{
		name:      components.NewField("Name", "participant name", false, 60),
		age:       components.NewField("Age", "18-85", true, 2),
		education: components.NewChoice("Education", []string{"Basic", "Secondary", "Higher"}),
	}
	f.education.Selected = int(results.EducationSecondary) - 1
	return f
}

// focusCmd moves focus to the current field.
func (f *participantForm) focusCmd() tea.Cmd {
	f.name.Blur()
	f.age.Blur()
	f.education.Blur()
	switch f.focus {
	case 0:
		return f.name.Focus()
	case 1:
		return f.age.Focus()
	default:
		f.education.Focus()
		return nil
	}
}

// update handles a message and reports whether the form was submitted.
func (f *participantForm) update(msg tea.Msg) (tea.Cmd, bool) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			f.focus = (f.focus + 1) % formFields
			return f.focusCmd(), false
		case "shift+tab", "up":
			f.focus = (f.focus + formFields - 1) % formFields
			return f.focusCmd(), false
		case "enter":
			if f.focus < formFields-1 {
				f.focus++
				return f.focusCmd(), false
			}
			return nil, true
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 1:
		f.age, cmd = f.age.Update(msg)
	default:
		f.education, cmd = f.education.Update(msg)
	}
	return cmd, false
}

// participant builds the participant from the entered values. Validation
// is left to the session controller.
func (f *participantForm) participant() session.Participant {
	age, _ := strconv.Atoi(f.age.Value())
	return session.Participant{
		Name:      strings.TrimSpace(f.name.Value()),
		Age:       age,
		Education: results.Education(f.education.Selected + 1),
	}
}

func (f participantForm) view() string {
	parts := []string{f.name.View(), f.age.View(), f.education.View()}
	return strings.Join(parts, "\n\n")
}
