// Package classify derives ground-truth performance labels from result
// records and evaluates a noisy label predictor against them.
package classify

import (
	"fmt"
	"strings"

	"github.com/abhisek/memoriz/internal/results"
)

// Label is a performance class.
type Label int

const (
	LabelLow Label = iota
	LabelMedium
	LabelHigh
)

// Labels lists every label in matrix order.
var Labels = []Label{LabelLow, LabelMedium, LabelHigh}

// Thresholds on the core subscale average.
const (
	// LowBelow: averages strictly below this are low.
	LowBelow = 4.5
	// MediumUpTo: averages up to and including this are medium.
	MediumUpTo = 7.0
)

func (l Label) String() string {
	switch l {
	case LabelLow:
		return "low"
	case LabelMedium:
		return "medium"
	case LabelHigh:
		return "high"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// ParseLabel parses a label name.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown label %q", s)
}

// LabelFor classifies a core subscale average.
func LabelFor(avg float64) Label {
	switch {
	case avg < LowBelow:
		return LabelLow
	case avg <= MediumUpTo:
		return LabelMedium
	default:
		return LabelHigh
	}
}

// TrueLabel is the ground-truth label of r: the label of the mean of its
// visual, working-memory and attention scores.
func TrueLabel(r results.TestResult) Label {
	return LabelFor(r.CoreAverage())
}
