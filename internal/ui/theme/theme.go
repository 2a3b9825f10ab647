// Package theme holds the colours and lipgloss styles shared by every
// screen. Stimuli must stay legible on both dark and light terminals, so
// the palette sticks to saturated mid-tones.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// bandColors tint the three performance bands, keyed by band name.
var bandColors = map[string]lipgloss.Style{
	"low":    lipgloss.NewStyle().Background(Error),
	"medium": lipgloss.NewStyle().Background(Accent),
	"high":   lipgloss.NewStyle().Background(Success),
}

// BandFill returns the gauge fill for a band name, falling back to the
// neutral progress fill.
func BandFill(band string) lipgloss.Style {
	if s, ok := bandColors[band]; ok {
		return s
	}
	return ProgressFilled
}

var (
	text = lipgloss.NewStyle().Foreground(Text)
	dim  = lipgloss.NewStyle().Foreground(TextDim)

	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = dim.Align(lipgloss.Center)
	Body     = text
	Hint     = dim.Italic(true)
	Label    = dim.Bold(true)
	Warning  = lipgloss.NewStyle().Foreground(Accent)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Selection and feedback.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = text
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Digit is one cell of a shown sequence.
var Digit = text.Background(Primary).Bold(true).Padding(0, 1).MarginRight(1)

// Slot is one cell of the response being typed; SlotFilled once it holds
// a digit.
var (
	Slot = text.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	SlotFilled = Slot.BorderForeground(Secondary)
)

// Stimulus frames the letter of the attention task.
var Stimulus = text.Bold(true).
	Border(lipgloss.ThickBorder()).
	BorderForeground(Primary).
	Padding(1, 4)

var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	// Tab is the highlighted entry of a tab strip.
	Tab = text.Background(Primary).Bold(true).Padding(0, 2)
)
