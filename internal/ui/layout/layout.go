// Package layout draws the frame around screens: header, footer and the
// fallback shown when the terminal is too small for the stimuli.
package layout

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/ui/theme"
)

// Minimum terminal size. The digit keypad and the attention stimulus need
// roughly this much room.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Below these the home screen switches to its compact rendering.
const (
	compactWidth  = 100
	compactHeight = 24 // content rows, frame excluded
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// TooSmall reports whether the terminal is below MinWidth x MinHeight.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Compact reports whether a screen with this much content area should
// render its compact variant.
func Compact(width, contentHeight int) bool {
	return width < compactWidth || contentHeight < compactHeight
}

// Centered centres s horizontally in width.
func Centered(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// Message renders a dim centred line for loading and empty states.
func Message(s string, width int) string {
	return notice(theme.TextDim, s, width)
}

// ErrorMessage renders a centred error line.
func ErrorMessage(msg string, width int) string {
	return notice(theme.Error, "Error: "+msg, width)
}

func notice(c color.Color, s string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(c).
		Render("\n\n" + s)
}

// TooSmallMessage fills the terminal with a resize request.
func TooSmallMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Align(lipgloss.Center).Render(fmt.Sprintf(
			"Terminal too small\n\nResize to at least %d x %d\n(current %d x %d)",
			MinWidth, MinHeight, width, height)))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Header renders the top bar: app name on the left, title centred and
// status (phase and trial count during a test) on the right.
func Header(title, status string, width int) string {
	const brand = "  Memoriz"
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	side := max((inner-lipgloss.Width(title))/2, len(brand)+1)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(side).Render(brand)
	mid := theme.Body.Render(title)
	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(max(inner-side-lipgloss.Width(mid), 0)).
		Align(lipgloss.Right).
		Render(status + " ")

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right))
}

// Footer renders the key hints.
func Footer(hints []KeyHint, width int) string {
	key := theme.Body.Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Label.UnsetBold().Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// Frame stacks header, content and footer, padding content to fill the
// rows the bars leave free.
func Frame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// ContentHeight is the number of rows left for a screen once header and
// footer are drawn.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
