package components

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/ui/theme"
)

const minGaugeWidth = 4

// Gauge renders fraction as a horizontal bar of width cells. Fractions
// outside [0, 1] are clamped.
func Gauge(fraction float64, width int) string {
	return gauge(fraction, width, theme.ProgressFilled)
}

// ScoreGauge renders a 0-10 subscale score, tinted by the performance band
// the score would fall in on its own.
func ScoreGauge(score float64, width int) string {
	fill := theme.BandFill(classify.LabelFor(score).String())
	return gauge(score/results.MaxScore, width, fill)
}

func gauge(fraction float64, width int, fill lipgloss.Style) string {
	width = max(width, minGaugeWidth)
	if math.IsNaN(fraction) {
		fraction = 0
	}
	n := int(math.Round(float64(width) * min(max(fraction, 0), 1)))
	return fill.Render(strings.Repeat(" ", n)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-n))
}
