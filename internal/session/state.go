package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/memoriz/internal/attention"
	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/trial"
)

// Phase is a stage of an assessment session.
type Phase int

const (
	PhaseInfo          Phase = iota // Collecting participant details
	PhasePractice                   // Unscored warm-up trials (drill only)
	PhaseVisual                     // Single forward-recall trial
	PhaseWorkingMemory              // Backward digit-span trials
	PhaseAttention                  // Sustained-attention stream
	PhaseResults                    // Result assembled
)

// String returns the phase name used in events and the UI.
func (p Phase) String() string {
	switch p {
	case PhaseInfo:
		return "info"
	case PhasePractice:
		return "practice"
	case PhaseVisual:
		return "visual"
	case PhaseWorkingMemory:
		return "working_memory"
	case PhaseAttention:
		return "attention"
	case PhaseResults:
		return "results"
	default:
		return "unknown"
	}
}

// Mode selects the phase plan.
type Mode int

const (
	// ModeFullBattery runs info → visual → working memory → attention → results.
	ModeFullBattery Mode = iota
	// ModeWorkingMemory runs practice → working memory → results.
	ModeWorkingMemory
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeWorkingMemory {
		return "drill"
	}
	return "full"
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "full", "":
		return ModeFullBattery, nil
	case "drill", "wm", "working_memory":
		return ModeWorkingMemory, nil
	}
	return 0, fmt.Errorf("unknown session mode %q", s)
}

var (
	// ErrWrongPhase is returned when an action is not valid in the current phase.
	ErrWrongPhase = errors.New("action not valid in current phase")

	// ErrInvalidParticipant wraps participant validation failures.
	ErrInvalidParticipant = errors.New("invalid participant")

	// ErrNoActiveTrial is returned when input arrives with no trial running.
	ErrNoActiveTrial = errors.New("no active trial")
)

// Participant holds the details captured on the info form.
type Participant struct {
	Name      string
	Age       int
	Education results.Education
}

// Validate checks the form fields.
func (p Participant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidParticipant)
	}
	if p.Age < results.MinAge || p.Age > results.MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidParticipant, results.MinAge, results.MaxAge)
	}
	if !p.Education.Valid() {
		return fmt.Errorf("%w: education level must be 1, 2 or 3", ErrInvalidParticipant)
	}
	return nil
}

// Config holds session parameters.
type Config struct {
	Mode Mode

	// VisualLength is the length of the single visual-recall sequence.
	VisualLength int

	// VisualTiming is the visual presentation window.
	VisualTiming trial.Timing

	// WorkingMemoryTrials is the fixed number of scored backward trials.
	WorkingMemoryTrials int

	// PracticeTrials is the number of unscored drill warm-up trials.
	PracticeTrials int

	// StartLength, MaxLength and CorrectPerStep define the adaptive
	// length ramp: +1 per CorrectPerStep correct answers, capped.
	StartLength    int
	MaxLength      int
	CorrectPerStep int

	// BackwardTiming is the working-memory window in the full battery.
	BackwardTiming trial.Timing

	// DrillTiming is the working-memory window in the drill.
	DrillTiming trial.Timing

	// InterTrialDelay separates consecutive backward trials.
	InterTrialDelay time.Duration

	// PhaseDelay separates the visual phase from working memory.
	PhaseDelay time.Duration

	// Attention configures the stimulus stream.
	Attention attention.Config

	// DrillVisualDefault and DrillFatigue fill the subscales the drill
	// does not measure.
	DrillVisualDefault float64
	DrillFatigue       int
}

// DefaultConfig returns the standard battery parameters.
func DefaultConfig() Config {
	return Config{
		Mode:                ModeFullBattery,
		VisualLength:        5,
		VisualTiming:        trial.VisualTiming(),
		WorkingMemoryTrials: 10,
		PracticeTrials:      2,
		StartLength:         3,
		MaxLength:           7,
		CorrectPerStep:      2,
		BackwardTiming:      trial.BackwardTiming(),
		DrillTiming:         trial.DrillTiming(),
		InterTrialDelay:     time.Second,
		PhaseDelay:          time.Second,
		Attention:           attention.DefaultConfig(),
		DrillVisualDefault:  7.5,
		DrillFatigue:        2,
	}
}
