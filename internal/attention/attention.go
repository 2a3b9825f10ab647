// Package attention runs the sustained-attention stimulus stream: a fixed
// run of letters shown one per tick, where the participant flags every X.
package attention

import (
	"errors"
	"time"

	"github.com/abhisek/memoriz/internal/sequence"
)

// TargetLetter is shown for target stimuli.
const TargetLetter = 'X'

var (
	// ErrNotRunning is returned for responses outside a running stream.
	ErrNotRunning = errors.New("attention stream is not running")

	// ErrAlreadyAnswered is returned for a second response to one stimulus.
	ErrAlreadyAnswered = errors.New("stimulus already answered")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("attention stream already started")
)

// Config controls stream generation and cadence.
type Config struct {
	// Length is the number of stimuli.
	Length int

	// TargetProbability is the independent chance each stimulus is a target.
	TargetProbability float64

	// Tick is the display time of each stimulus.
	Tick time.Duration

	// Settle is the delay between the last tick and scoring.
	Settle time.Duration

	// MaxFatigue bounds the synthetic fatigue rating, drawn from [1, MaxFatigue].
	MaxFatigue int
}

// DefaultConfig returns the standard 20-stimulus stream.
func DefaultConfig() Config {
	return Config{
		Length:            20,
		TargetProbability: 0.3,
		Tick:              1500 * time.Millisecond,
		Settle:            500 * time.Millisecond,
		MaxFatigue:        3,
	}
}

// Stimulus is one item of the stream.
type Stimulus struct {
	Letter rune
	Target bool
}

// Result summarizes a completed stream.
type Result struct {
	Correct  int
	Total    int
	Accuracy float64

	// Score is the sustained-attention subscale, Accuracy*10.
	Score float64

	// PrecisionPct is Accuracy*100.
	PrecisionPct float64

	// Fatigue is a synthetic rating drawn uniformly from [1, MaxFatigue].
	// It is not measured from performance.
	Fatigue int
}

// Generate builds a stimulus run. Each item is independently a target with
// probability cfg.TargetProbability; non-targets get a random non-X letter.
func Generate(cfg Config, src sequence.Source) []Stimulus {
	gen := sequence.New(src)
	out := make([]Stimulus, cfg.Length)
	for i := range out {
		if src.Float64() < cfg.TargetProbability {
			out[i] = Stimulus{Letter: TargetLetter, Target: true}
			continue
		}
		out[i] = Stimulus{Letter: gen.Letter(TargetLetter)}
	}
	return out
}

// Evaluate scores responses against stimuli. A nil response counts as wrong.
func Evaluate(stimuli []Stimulus, responses []*bool) (correct int, accuracy float64) {
	for i, s := range stimuli {
		if i < len(responses) && responses[i] != nil && *responses[i] == s.Target {
			correct++
		}
	}
	if len(stimuli) == 0 {
		return 0, 0
	}
	return correct, float64(correct) / float64(len(stimuli))
}
