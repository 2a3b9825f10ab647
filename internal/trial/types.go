// Package trial implements the timed present/hide/respond/score cycle shared
// by the visual-recall and backward digit-span tests.
package trial

import (
	"errors"
	"time"
)

// State is the lifecycle state of a trial engine.
type State int

const (
	StateIdle             State = iota // No trial started
	StatePresenting                    // Sequence visible, hide timer armed
	StateAwaitingResponse              // Sequence hidden, collecting digits
	StateScored                        // Response evaluated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateScored:
		return "scored"
	default:
		return "unknown"
	}
}

// Variant selects the expected answer and scoring rule.
type Variant int

const (
	// VariantVisual expects the sequence verbatim and awards partial credit.
	VariantVisual Variant = iota
	// VariantBackward expects the sequence reversed; all or nothing.
	VariantBackward
)

// String returns the variant name used in events.
func (v Variant) String() string {
	if v == VariantBackward {
		return "working_memory"
	}
	return "visual"
}

var (
	// ErrMalformedResponse is returned when a response is submitted whose
	// length differs from the expected answer. The trial stays open.
	ErrMalformedResponse = errors.New("response length does not match sequence length")

	// ErrNotAwaiting is returned when input arrives outside AwaitingResponse.
	ErrNotAwaiting = errors.New("trial is not awaiting a response")

	// ErrInvalidDigit is returned for keystrokes outside the keypad range.
	ErrInvalidDigit = errors.New("digit outside keypad range")

	// ErrBusy is returned when Start is called while a trial is in flight.
	ErrBusy = errors.New("trial already in progress")
)

// Timing controls the presentation window: Base + PerItem*len(sequence).
type Timing struct {
	Base    time.Duration
	PerItem time.Duration
}

// Window returns the presentation duration for a sequence of length n.
func (t Timing) Window(n int) time.Duration {
	return t.Base + time.Duration(n)*t.PerItem
}

// VisualTiming is the fixed three-second window of the visual test.
func VisualTiming() Timing {
	return Timing{Base: 3 * time.Second}
}

// BackwardTiming is the window used by the working-memory phase of the full
// battery.
func BackwardTiming() Timing {
	return Timing{Base: 2 * time.Second, PerItem: 500 * time.Millisecond}
}

// DrillTiming is the one-second-per-digit window of the standalone
// working-memory drill.
func DrillTiming() Timing {
	return Timing{PerItem: time.Second}
}

// Trial is the record of one present/respond/score cycle.
type Trial struct {
	Variant  Variant
	Sequence []int
	Response []int

	// Correct is true when the response equals the expected answer.
	Correct bool

	// Score is 0–10. Backward trials score 10 or 0.
	Score float64

	// Matched counts positional matches against the expected answer.
	Matched int

	StartedAt    time.Time
	PresentedEnd time.Time
	ConfirmedAt  time.Time
	ReactionTime time.Duration
}

// Expected returns the answer the participant must give.
func (t Trial) Expected() []int {
	return Expected(t.Variant, t.Sequence)
}
