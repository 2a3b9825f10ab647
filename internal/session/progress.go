package session

import "github.com/abhisek/memoriz/internal/trial"

// NextLength returns the sequence length for the next backward trial given
// the ordered trial history. The length starts at cfg.StartLength, grows by
// one for every cfg.CorrectPerStep correct answers accumulated since the
// last increase, and never exceeds cfg.MaxLength.
func NextLength(cfg Config, history []trial.Trial) int {
	length := cfg.StartLength
	since := 0
	for _, t := range history {
		if !t.Correct {
			continue
		}
		since++
		if since == cfg.CorrectPerStep {
			since = 0
			if length < cfg.MaxLength {
				length++
			}
		}
	}
	return length
}

// Progress reports how far a phase has advanced.
type Progress struct {
	Phase   Phase
	Done    int
	Total   int
	Length  int
	Correct int
}

// Fraction returns Done/Total in [0,1].
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}
