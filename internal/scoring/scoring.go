// Package scoring turns raw phase outcomes into 0–10 subscale scores and
// assembles the final result record.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/trial"
)

// Defaults applied when an input is missing.
const (
	DefaultAge       = 25
	DefaultEducation = results.EducationSecondary
	DefaultFatigue   = 1

	// ImmediateMemoryFactor derives immediate memory from working memory
	// when it was not measured on its own.
	ImmediateMemoryFactor = 0.9
)

// Input carries everything the aggregator reads. Nil pointers mark scores
// that were not measured.
type Input struct {
	ParticipantID string
	IDPrefix      string
	Age           int
	Education     results.Education

	ImmediateMemory    *float64
	WorkingMemory      *float64
	VisualMemory       *float64
	SustainedAttention *float64
	ReactionTime       *time.Duration
	AccuracyPct        *float64
	Fatigue            *int

	// Now stamps the record.
	Now time.Time
}

// Float returns a pointer to v, for filling Input.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for filling Input.
func Int(v int) *int { return &v }

// Duration returns a pointer to v, for filling Input.
func Duration(v time.Duration) *time.Duration { return &v }

// Aggregate builds a complete TestResult from in. It never leaves a field
// unset: unmeasured subscales default to 0, immediate memory to 0.9 of
// working memory, fatigue to 1, age and education to the population
// defaults, and the participant id to <prefix>_<unix-ms>.
func Aggregate(in Input) results.TestResult {
	r := results.TestResult{
		ParticipantID:      in.ParticipantID,
		Age:                in.Age,
		Education:          in.Education,
		WorkingMemory:      clampScore(deref(in.WorkingMemory, 0)),
		VisualMemory:       clampScore(deref(in.VisualMemory, 0)),
		SustainedAttention: clampScore(deref(in.SustainedAttention, 0)),
		AccuracyPct:        math.Min(100, math.Max(0, deref(in.AccuracyPct, 0))),
		Fatigue:            DefaultFatigue,
		Timestamp:          in.Now.UTC(),
	}
	if in.ImmediateMemory != nil {
		r.ImmediateMemory = clampScore(*in.ImmediateMemory)
	} else {
		r.ImmediateMemory = r.WorkingMemory * ImmediateMemoryFactor
	}
	if in.ReactionTime != nil && *in.ReactionTime > 0 {
		r.ReactionTimeMs = int(in.ReactionTime.Round(time.Millisecond) / time.Millisecond)
	}
	if in.Fatigue != nil && *in.Fatigue >= results.MinFatigue && *in.Fatigue <= results.MaxFatigue {
		r.Fatigue = *in.Fatigue
	}
	if r.Age == 0 {
		r.Age = DefaultAge
	}
	if !r.Education.Valid() {
		r.Education = DefaultEducation
	}
	if r.ParticipantID == "" {
		prefix := in.IDPrefix
		if prefix == "" {
			prefix = "EVAL"
		}
		r.ParticipantID = fmt.Sprintf("%s_%d", prefix, in.Now.UnixMilli())
	}
	return r
}

func deref(p *float64, fallback float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return fallback
	}
	return *p
}

func clampScore(v float64) float64 {
	return math.Min(results.MaxScore, math.Max(0, v))
}

// WorkingMemoryScore is the share of correct backward trials scaled to 0–10.
func WorkingMemoryScore(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 10
}

// CountCorrect returns the number of correct trials.
func CountCorrect(history []trial.Trial) int {
	n := 0
	for _, t := range history {
		if t.Correct {
			n++
		}
	}
	return n
}

// MeanReactionTime averages reaction times over trials. Zero for none.
func MeanReactionTime(trials []trial.Trial) time.Duration {
	if len(trials) == 0 {
		return 0
	}
	var sum time.Duration
	for _, t := range trials {
		sum += t.ReactionTime
	}
	return sum / time.Duration(len(trials))
}

// AccuracyPct is correct/total as a percentage.
func AccuracyPct(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// BandedWorkingMemoryScore maps drill accuracy (0–100) to a 0–10 score.
// The drill's bands (90+, 80+, ... 50+) each add one point per ten
// accuracy points, which reduces to accuracy/10 clamped to the scale.
func BandedWorkingMemoryScore(accuracyPct float64) float64 {
	return clampScore(accuracyPct / 10)
}

// AttentionFromReactionTime derives an attention score from mean reaction
// time: 10 at one second, minus one point per extra 200ms, within 0–10.
func AttentionFromReactionTime(mean time.Duration) float64 {
	ms := float64(mean) / float64(time.Millisecond)
	return clampScore(10 - (ms-1000)/200)
}
