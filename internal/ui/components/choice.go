package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoriz/internal/ui/theme"
)

// Choice is a horizontal single-select, e.g. the education level.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	focused  bool
}

// NewChoice creates a choice with the first option selected.
func NewChoice(label string, options []string) Choice {
	return Choice{Label: label, Options: options}
}

// Focus marks the choice as focused.
func (c *Choice) Focus() { c.focused = true }

// Blur removes focus.
func (c *Choice) Blur() { c.focused = false }

// Update moves the selection with left/right or a number key.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.focused {
		return c, nil
	}
	switch key := kmsg.String(); key {
	case "left", "h":
		if c.Selected > 0 {
			c.Selected--
		}
	case "right", "l":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(c.Options) {
			c.Selected = int(key[0] - '1')
		}
	}
	return c, nil
}

// View renders the options on one line.
func (c Choice) View() string {
	label := theme.Label
	if c.focused {
		label = label.Foreground(theme.Primary)
	}
	s := label.Render(c.Label) + "\n"
	for i, opt := range c.Options {
		text := fmt.Sprintf("%d) %s", i+1, opt)
		if i == c.Selected {
			s += theme.Selected.Render("["+text+"]") + "  "
		} else {
			s += theme.Unselected.Render(" "+text+" ") + "  "
		}
	}
	return s
}
