// Package stats computes population statistics over result records and
// renders them as plain-text reports.
package stats

import (
	"sort"
	"time"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/results"
)

// Timeline and scatter lengths.
const (
	TimelineLimit = 15
	ScatterLimit  = 20
)

// Averages holds per-subscale means.
type Averages struct {
	Visual      float64
	Working     float64
	Attention   float64
	Immediate   float64
	AccuracyPct float64
	ReactionMs  float64
}

// TimelinePoint is one record in chronological order.
type TimelinePoint struct {
	Index       int
	Timestamp   time.Time
	MemoryAvg   float64 // mean of visual, working, attention, immediate
	AccuracyPct float64
}

// AgePoint pairs a participant's age with their core average.
type AgePoint struct {
	Age     int
	Average float64
}

// Summary describes a set of records.
type Summary struct {
	Total     int
	Valid     int
	Averages  Averages
	Education map[results.Education]int
	Labels    map[classify.Label]int
	Timeline  []TimelinePoint
	AgeScores []AgePoint
}

// EducationShare returns the percentage of valid records at level e.
func (s Summary) EducationShare(e results.Education) float64 {
	if s.Valid == 0 {
		return 0
	}
	return float64(s.Education[e]) / float64(s.Valid) * 100
}

// Valid keeps the records whose core subscales are usable numbers.
func Valid(recs []results.TestResult) []results.TestResult {
	out := make([]results.TestResult, 0, len(recs))
	for _, r := range recs {
		if r.HasCoreScores() {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes statistics over the valid subset of recs.
func Summarize(recs []results.TestResult) Summary {
	valid := Valid(recs)
	s := Summary{
		Total:     len(recs),
		Valid:     len(valid),
		Education: make(map[results.Education]int),
		Labels:    make(map[classify.Label]int),
	}
	if len(valid) == 0 {
		return s
	}

	var a Averages
	for _, r := range valid {
		a.Visual += r.VisualMemory
		a.Working += r.WorkingMemory
		a.Attention += r.SustainedAttention
		a.Immediate += r.ImmediateMemory
		a.AccuracyPct += r.AccuracyPct
		a.ReactionMs += float64(r.ReactionTimeMs)

		edu := r.Education
		if !edu.Valid() {
			edu = results.EducationBasic
		}
		s.Education[edu]++
		s.Labels[predict.Predict(predict.FromResult(r)).Category]++
	}
	n := float64(len(valid))
	s.Averages = Averages{
		Visual:      a.Visual / n,
		Working:     a.Working / n,
		Attention:   a.Attention / n,
		Immediate:   a.Immediate / n,
		AccuracyPct: a.AccuracyPct / n,
		ReactionMs:  a.ReactionMs / n,
	}

	sorted := append([]results.TestResult(nil), valid...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	for i, r := range sorted {
		if i == TimelineLimit {
			break
		}
		s.Timeline = append(s.Timeline, TimelinePoint{
			Index:       i + 1,
			Timestamp:   r.Timestamp,
			MemoryAvg:   (r.VisualMemory + r.WorkingMemory + r.SustainedAttention + r.ImmediateMemory) / 4,
			AccuracyPct: r.AccuracyPct,
		})
	}
	for i, r := range valid {
		if i == ScatterLimit {
			break
		}
		s.AgeScores = append(s.AgeScores, AgePoint{Age: r.Age, Average: r.CoreAverage()})
	}
	return s
}
