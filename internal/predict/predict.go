// Package predict estimates a performance category for a single feature
// vector with fixed class probabilities and a demographic confidence
// adjustment.
package predict

import (
	"math"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/results"
)

// Confidence bounds.
const (
	MinConfidence = 0.60
	MaxConfidence = 0.95
)

// Features is the input to Predict.
type Features struct {
	VisualMemory       float64
	WorkingMemory      float64
	SustainedAttention float64
	Age                int
	Education          results.Education
}

// FromResult extracts the features of r.
func FromResult(r results.TestResult) Features {
	return Features{
		VisualMemory:       r.VisualMemory,
		WorkingMemory:      r.WorkingMemory,
		SustainedAttention: r.SustainedAttention,
		Age:                r.Age,
		Education:          r.Education,
	}
}

// Average is the core subscale mean.
func (f Features) Average() float64 {
	return results.CoreAverage(f.VisualMemory, f.WorkingMemory, f.SustainedAttention)
}

// Result is a category estimate. Confidence is a heuristic score, not a
// calibrated probability.
type Result struct {
	Category      classify.Label
	Average       float64
	Probabilities [3]float64 // indexed by classify.Label
	Confidence    float64
}

var probabilities = map[classify.Label][3]float64{
	classify.LabelLow:    {0.85, 0.12, 0.03},
	classify.LabelMedium: {0.15, 0.70, 0.15},
	classify.LabelHigh:   {0.05, 0.15, 0.80},
}

// Predict classifies f by its core average and attaches the class
// probabilities and an age/education adjusted confidence.
func Predict(f Features) Result {
	avg := f.Average()
	cat := classify.LabelFor(avg)
	probs := probabilities[cat]

	conf := probs[cat]
	switch {
	case f.Age < 30:
		conf += 0.10
	case f.Age > 60:
		conf -= 0.10
	}
	switch f.Education {
	case results.EducationHigher:
		conf += 0.05
	case results.EducationBasic:
		conf -= 0.05
	}

	return Result{
		Category:      cat,
		Average:       avg,
		Probabilities: probs,
		Confidence:    math.Min(MaxConfidence, math.Max(MinConfidence, conf)),
	}
}
