package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/ui/theme"
)

// Field is a labelled single-line input built on bubbles/textinput.
type Field struct {
	Label       string
	Model       textinput.Model
	NumericOnly bool
	Err         string
}

// NewField creates an unfocused field.
func NewField(label, placeholder string, numericOnly bool, limit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	return Field{Label: label, Model: ti, NumericOnly: numericOnly}
}

// Focus focuses the field and returns the cursor blink command.
func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur removes focus.
func (f *Field) Blur() {
	f.Model.Blur()
}

// Focused reports whether the field has focus.
func (f Field) Focused() bool {
	return f.Model.Focused()
}

// Update handles messages. Numeric fields drop non-digit characters.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			if t := kmsg.Text; t != "" && (t[0] < '0' || t[0] > '9') {
				return f, nil
			}
		}
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the label, input and any validation message.
func (f Field) View() string {
	label := theme.Label
	if f.Focused() {
		label = label.Foreground(theme.Primary)
	}
	s := label.Render(f.Label) + "\n" + f.Model.View()
	if f.Err != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(f.Err)
	}
	return s
}

// Value returns the current input value.
func (f Field) Value() string {
	return f.Model.Value()
}

// SetValue replaces the input value.
func (f *Field) SetValue(v string) {
	f.Model.SetValue(v)
}

// NumericValue returns the input value as an integer.
func (f Field) NumericValue() (int, error) {
	return strconv.Atoi(f.Model.Value())
}
