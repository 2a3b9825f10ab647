package welcome

import (
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	revealEvery  = 300 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// splashDigits are revealed one at a time, then hidden, like a span trial.
var splashDigits = []int{7, 2, 9, 4, 1, 8}

const tagline = "Memory and attention assessment"

type tickMsg time.Time

// WelcomeScreen shows a short splash before handing over to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned || w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// revealed returns how many splash digits are visible.
func (w *WelcomeScreen) revealed() int {
	n := int(w.elapsed / revealEvery)
	if n > len(splashDigits) {
		n = len(splashDigits)
	}
	return n
}

// bannerShown reports whether the sequence has finished and the banner is up.
func (w *WelcomeScreen) bannerShown() bool {
	return w.elapsed >= revealEvery*time.Duration(len(splashDigits)+1)
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	digits := make([]string, len(splashDigits))
	for i, d := range splashDigits {
		switch {
		case w.bannerShown():
			digits[i] = "·"
		case i < w.revealed():
			digits[i] = strconv.Itoa(d)
		default:
			digits[i] = " "
		}
	}
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(strings.Join(digits, "  ")))

	if w.bannerShown() {
		sections = append(sections, RenderBanner(width), "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
