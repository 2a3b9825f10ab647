package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks the cursor over a vertical list of items. Rendering is left
// to the owning screen. Disabled items are skipped and the cursor wraps.
// Digits 1-9 jump to and activate the matching item.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	return m
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "up", "k":
		m.step(-1)
	case "down", "j", "tab":
		m.step(1)
	case "enter", "space":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.Items) && n <= 9 {
			if !m.Items[n-1].Disabled {
				m.Selected = n - 1
				return m, m.activate(n - 1)
			}
		}
	}
	return m, nil
}

// Disabled reports which item indexes are disabled.
func (m Menu) Disabled() map[int]bool {
	out := make(map[int]bool)
	for i, it := range m.Items {
		if it.Disabled {
			out[i] = true
		}
	}
	return out
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, it := range m.Items {
		out[i] = it.Label
	}
	return out
}

// step moves the cursor by dir to the next enabled item. With nothing
// enabled the cursor stays put.
func (m *Menu) step(dir int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	it := m.Items[i]
	if it.Disabled || it.Action == nil {
		return nil
	}
	return it.Action()
}
