// Package results defines the per-participant result record produced by an
// assessment session and consumed by classification, prediction and export.
package results

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Columns lists the field names used for JSON persistence and tabular
// import/export, in column order.
var Columns = []string{
	"participante_id",
	"edad",
	"nivel_educacion",
	"memoria_inmediata",
	"memoria_trabajo",
	"memoria_visual",
	"tiempo_reaccion",
	"precision_respuestas",
	"atencion_sostenida",
	"fatiga_cognitiva",
	"fecha",
}

// Age and rating bounds.
const (
	MinAge     = 18
	MaxAge     = 85
	MinFatigue = 1
	MaxFatigue = 5
	MaxScore   = 10.0
)

// Education is the participant's education level.
type Education int

const (
	EducationBasic     Education = 1
	EducationSecondary Education = 2
	EducationHigher    Education = 3
)

// Valid reports whether e is one of the three levels.
func (e Education) Valid() bool {
	return e >= EducationBasic && e <= EducationHigher
}

// DisplayName returns a human-readable name.
func (e Education) DisplayName() string {
	switch e {
	case EducationBasic:
		return "Basic"
	case EducationSecondary:
		return "Secondary"
	case EducationHigher:
		return "Higher"
	default:
		return "Unknown"
	}
}

// TestResult is one completed assessment.
type TestResult struct {
	ParticipantID      string    `json:"participante_id"`
	Age                int       `json:"edad"`
	Education          Education `json:"nivel_educacion"`
	ImmediateMemory    float64   `json:"memoria_inmediata"`
	WorkingMemory      float64   `json:"memoria_trabajo"`
	VisualMemory       float64   `json:"memoria_visual"`
	ReactionTimeMs     int       `json:"tiempo_reaccion"`
	AccuracyPct        float64   `json:"precision_respuestas"`
	SustainedAttention float64   `json:"atencion_sostenida"`
	Fatigue            int       `json:"fatiga_cognitiva"`
	Timestamp          time.Time `json:"fecha"`
}

// ErrInvalidResult wraps every validation failure.
var ErrInvalidResult = errors.New("invalid test result")

// Validate checks field ranges.
func (r TestResult) Validate() error {
	switch {
	case r.ParticipantID == "":
		return fmt.Errorf("%w: participant id is empty", ErrInvalidResult)
	case r.Age < MinAge || r.Age > MaxAge:
		return fmt.Errorf("%w: age %d outside %d-%d", ErrInvalidResult, r.Age, MinAge, MaxAge)
	case !r.Education.Valid():
		return fmt.Errorf("%w: education level %d", ErrInvalidResult, r.Education)
	case r.ReactionTimeMs < 0:
		return fmt.Errorf("%w: negative reaction time", ErrInvalidResult)
	case r.AccuracyPct < 0 || r.AccuracyPct > 100:
		return fmt.Errorf("%w: accuracy %.1f outside 0-100", ErrInvalidResult, r.AccuracyPct)
	case r.Fatigue < MinFatigue || r.Fatigue > MaxFatigue:
		return fmt.Errorf("%w: fatigue %d outside %d-%d", ErrInvalidResult, r.Fatigue, MinFatigue, MaxFatigue)
	case r.Timestamp.IsZero():
		return fmt.Errorf("%w: missing timestamp", ErrInvalidResult)
	}
	for name, v := range map[string]float64{
		"immediate memory":    r.ImmediateMemory,
		"working memory":      r.WorkingMemory,
		"visual memory":       r.VisualMemory,
		"sustained attention": r.SustainedAttention,
	} {
		if math.IsNaN(v) || v < 0 || v > MaxScore {
			return fmt.Errorf("%w: %s %.2f outside 0-10", ErrInvalidResult, name, v)
		}
	}
	return nil
}

// CoreAverage is the mean of the visual-memory, working-memory and
// sustained-attention subscales. Classification and prediction both key off
// this value.
func (r TestResult) CoreAverage() float64 {
	return CoreAverage(r.VisualMemory, r.WorkingMemory, r.SustainedAttention)
}

// CoreAverage averages the three core subscales.
func CoreAverage(visual, working, attention float64) float64 {
	return (visual + working + attention) / 3
}

// HasCoreScores reports whether the three core subscales are usable numbers.
func (r TestResult) HasCoreScores() bool {
	for _, v := range []float64{r.VisualMemory, r.WorkingMemory, r.SustainedAttention} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
