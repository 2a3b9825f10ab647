package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/screens/welcome"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

// contentWidth returns the shared inner width of every section.
func contentWidth(frameWidth int) int {
	// Frame border (2) + inner padding (4).
	return max(20, min(frameWidth-6, 64))
}

func renderTitle(cw int, compact bool) string {
	w := cw
	if compact {
		// Forces the one-line banner.
		w = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(w))
}

func renderStatsBar(stats string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Foreground(theme.Secondary).
		Bold(true).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func formatCount(n int, noun string, compact bool) string {
	if compact {
		return fmt.Sprintf("%d %s", n, noun)
	}
	if n == 1 || noun == "imported" {
		return fmt.Sprintf("%d %s", n, strings.ToUpper(noun))
	}
	return fmt.Sprintf("%d %sS", n, strings.ToUpper(noun))
}

const buttonWidth = 22

func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.
		Foreground(theme.Text).
		BorderForeground(theme.Border)
	disabledBtn := base.
		Foreground(theme.TextDim).
		BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact drops the button borders for small terminals.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		switch {
		case disabled[i]:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+label))
		case i == selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderNote(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderFrame wraps content in a double border centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
