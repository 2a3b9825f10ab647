// Package interpret turns a result record into a short written
// interpretation, either from fixed rules or from an LLM.
package interpret

import (
	"fmt"

	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/results"
)

// Band grades working-memory accuracy.
type Band int

const (
	BandExcellent Band = iota
	BandGood
	BandAverage
	BandFurtherEvaluation
)

// WorkingMemoryBand grades accuracy in [0,1].
func WorkingMemoryBand(accuracy float64) Band {
	switch {
	case accuracy >= 0.8:
		return BandExcellent
	case accuracy >= 0.6:
		return BandGood
	case accuracy >= 0.4:
		return BandAverage
	default:
		return BandFurtherEvaluation
	}
}

func (b Band) String() string {
	switch b {
	case BandExcellent:
		return "excellent"
	case BandGood:
		return "good"
	case BandAverage:
		return "average"
	default:
		return "further evaluation recommended"
	}
}

// Message is the sentence shown for the band.
func (b Band) Message() string {
	switch b {
	case BandExcellent:
		return "Excellent working memory. Information is held and manipulated efficiently."
	case BandGood:
		return "Good working memory, within the expected range."
	case BandAverage:
		return "Average working memory, with room to improve."
	default:
		return "Working memory below the expected range. Further evaluation is recommended."
	}
}

// Subscale thresholds for strengths and concerns.
const (
	strengthFrom = 8.0
	concernBelow = 4.5
)

// Narrative is a written interpretation of one result.
type Narrative struct {
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Concerns       []string `json:"concerns"`
	Recommendation string   `json:"recommendation"`

	// Source is "rules" or the model that wrote the narrative.
	Source string `json:"-"`
}

// Rules builds the rule-based narrative.
func Rules(r results.TestResult) Narrative {
	pred := predict.Predict(predict.FromResult(r))
	band := WorkingMemoryBand(r.WorkingMemory / results.MaxScore)

	n := Narrative{
		Summary: fmt.Sprintf("Overall performance is %s (core average %.1f/10, confidence %.0f%%). %s",
			pred.Category, pred.Average, pred.Confidence*100, band.Message()),
		Strengths: []string{},
		Concerns:  []string{},
		Source:    "rules",
	}
	for _, s := range []struct {
		name  string
		score float64
	}{
		{"visual memory", r.VisualMemory},
		{"working memory", r.WorkingMemory},
		{"sustained attention", r.SustainedAttention},
		{"immediate memory", r.ImmediateMemory},
	} {
		switch {
		case s.score >= strengthFrom:
			n.Strengths = append(n.Strengths, fmt.Sprintf("%s (%.1f)", s.name, s.score))
		case s.score < concernBelow:
			n.Concerns = append(n.Concerns, fmt.Sprintf("%s (%.1f)", s.name, s.score))
		}
	}
	if r.Fatigue >= 4 {
		n.Concerns = append(n.Concerns, fmt.Sprintf("high reported fatigue (%d/5)", r.Fatigue))
	}

	switch {
	case band == BandFurtherEvaluation || len(n.Concerns) >= 2:
		n.Recommendation = "Repeat the assessment when rested and consider a professional evaluation."
	case len(n.Concerns) == 1:
		n.Recommendation = "Repeat the assessment in a few weeks to confirm the weaker area."
	default:
		n.Recommendation = "No follow-up needed. Reassess periodically to track changes."
	}
	return n
}
