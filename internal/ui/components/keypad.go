package components

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/ui/theme"
)

// keypadRows is the on-screen layout of the digit keys.
var keypadRows = [][]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{"⌫", "0", "↵"},
}

// Digits renders a shown sequence as a row of digit cells.
func Digits(seq []int) string {
	cells := make([]string, len(seq))
	for i, d := range seq {
		cells[i] = theme.Digit.Render(strconv.Itoa(d))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Slots renders the response typed so far against the expected length.
// Empty slots are drawn as placeholders.
func Slots(response []int, expected int) string {
	n := expected
	if len(response) > n {
		n = len(response)
	}
	cells := make([]string, n)
	for i := range cells {
		if i < len(response) {
			cells[i] = theme.SlotFilled.Render(strconv.Itoa(response[i]))
		} else {
			cells[i] = theme.Slot.Render("·")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Keypad renders the digit pad. canConfirm dims the confirm key when the
// response is incomplete.
func Keypad(canConfirm bool) string {
	key := lipgloss.NewStyle().
		Width(5).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text)

	rows := make([]string, len(keypadRows))
	for i, row := range keypadRows {
		cells := make([]string, len(row))
		for j, k := range row {
			st := key
			if k == "↵" {
				if canConfirm {
					st = st.BorderForeground(theme.Success).Foreground(theme.Success)
				} else {
					st = st.Foreground(theme.TextDim)
				}
			}
			cells[j] = st.Render(k)
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return strings.Join(rows, "\n")
}
