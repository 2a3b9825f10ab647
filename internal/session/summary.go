package session

import "time"

// Summary holds the figures shown on the results screen and recorded with
// the session end event.
type Summary struct {
	Duration     time.Duration
	TotalTrials  int
	TotalCorrect int
	Accuracy     float64
	MaxLength    int
}

// BuildSummary summarizes the measured trials of c. Practice trials are
// not counted.
func BuildSummary(c *Controller) *Summary {
	s := &Summary{Duration: c.Elapsed()}
	if v, ok := c.Visual(); ok {
		s.TotalTrials++
		if v.Correct {
			s.TotalCorrect++
		}
	}
	for _, t := range c.history {
		s.TotalTrials++
		if t.Correct {
			s.TotalCorrect++
		}
		s.MaxLength = max(s.MaxLength, len(t.Sequence))
	}
	if s.TotalTrials > 0 {
		s.Accuracy = float64(s.TotalCorrect) / float64(s.TotalTrials)
	}
	return s
}
