package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/results"
)

func TestPredictHighYoungHigherEducation(t *testing.T) {
	r := Predict(Features{
		VisualMemory:       8.2,
		WorkingMemory:      8.2,
		SustainedAttention: 8.2,
		Age:                25,
		Education:          results.EducationHigher,
	})
	assert.Equal(t, classify.LabelHigh, r.Category)
	assert.InDelta(t, 0.95, r.Confidence, 1e-9)
	assert.Equal(t, [3]float64{0.05, 0.15, 0.80}, r.Probabilities)
}

func TestPredictConfidence(t *testing.T) {
	tests := []struct {
		name string
		f    Features
		cat  classify.Label
		want float64
	}{
		{"medium baseline", Features{5, 5, 5, 45, results.EducationSecondary}, classify.LabelMedium, 0.70},
		{"medium young", Features{5, 5, 5, 22, results.EducationSecondary}, classify.LabelMedium, 0.80},
		{"medium old basic", Features{5, 5, 5, 70, results.EducationBasic}, classify.LabelMedium, 0.60},
		{"low old basic", Features{2, 2, 2, 70, results.EducationBasic}, classify.LabelLow, 0.70},
		{"low young", Features{2, 2, 2, 20, results.EducationHigher}, classify.LabelLow, 0.95},
		{"high old", Features{9, 9, 9, 65, results.EducationSecondary}, classify.LabelHigh, 0.70},
		{"boundary 30 no bonus", Features{9, 9, 9, 30, results.EducationSecondary}, classify.LabelHigh, 0.80},
		{"boundary 60 no penalty", Features{9, 9, 9, 60, results.EducationSecondary}, classify.LabelHigh, 0.80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Predict(tt.f)
			assert.Equal(t, tt.cat, r.Category)
			assert.InDelta(t, tt.want, r.Confidence, 1e-9)
		})
	}
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	for avg := 0.0; avg <= 10; avg += 0.5 {
		for age := results.MinAge; age <= results.MaxAge; age += 7 {
			for _, edu := range []results.Education{results.EducationBasic, results.EducationSecondary, results.EducationHigher} {
				r := Predict(Features{avg, avg, avg, age, edu})
				if r.Confidence < MinConfidence || r.Confidence > MaxConfidence {
					t.Fatalf("confidence %v out of range for avg=%v age=%d edu=%d", r.Confidence, avg, age, edu)
				}
				var sum float64
				for _, p := range r.Probabilities {
					sum += p
				}
				assert.InDelta(t, 1.0, sum, 1e-9)
			}
		}
	}
}

func TestFromResult(t *testing.T) {
	f := FromResult(results.TestResult{VisualMemory: 1, WorkingMemory: 2, SustainedAttention: 3, Age: 40, Education: results.EducationBasic})
	assert.InDelta(t, 2.0, f.Average(), 1e-9)
	assert.Equal(t, 40, f.Age)
}
