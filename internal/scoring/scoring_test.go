package scoring

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/trial"
)

var now = time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)

func TestAggregateFillsDefaults(t *testing.T) {
	r := Aggregate(Input{Now: now})

	if r.ParticipantID != fmt.Sprintf("EVAL_%d", now.UnixMilli()) {
		t.Errorf("ParticipantID = %q", r.ParticipantID)
	}
	if r.Age != DefaultAge || r.Education != DefaultEducation {
		t.Errorf("age/education = %d/%d", r.Age, r.Education)
	}
	if r.Fatigue != DefaultFatigue {
		t.Errorf("Fatigue = %d, want %d", r.Fatigue, DefaultFatigue)
	}
	if r.WorkingMemory != 0 || r.VisualMemory != 0 || r.SustainedAttention != 0 || r.ImmediateMemory != 0 {
		t.Errorf("unmeasured subscales not zero: %+v", r)
	}
	if !r.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v", r.Timestamp)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("defaulted result invalid: %v", err)
	}
}

func TestAggregateImmediateMemoryProxy(t *testing.T) {
	r := Aggregate(Input{Now: now, WorkingMemory: Float(7)})
	if math.Abs(r.ImmediateMemory-6.3) > 1e-9 {
		t.Errorf("ImmediateMemory = %v, want 6.3", r.ImmediateMemory)
	}

	r = Aggregate(Input{Now: now, WorkingMemory: Float(7), ImmediateMemory: Float(4)})
	if r.ImmediateMemory != 4 {
		t.Errorf("measured ImmediateMemory overridden: %v", r.ImmediateMemory)
	}
}

func TestAggregateCopiesMeasuredFields(t *testing.T) {
	in := Input{
		ParticipantID:      "p-1",
		Age:                61,
		Education:          results.EducationBasic,
		WorkingMemory:      Float(6),
		VisualMemory:       Float(8),
		SustainedAttention: Float(7.5),
		ReactionTime:       Duration(1234567 * time.Microsecond),
		AccuracyPct:        Float(75),
		Fatigue:            Int(3),
		Now:                now,
	}
	r := Aggregate(in)
	want := results.TestResult{
		ParticipantID:      "p-1",
		Age:                61,
		Education:          results.EducationBasic,
		ImmediateMemory:    6 * ImmediateMemoryFactor,
		WorkingMemory:      6,
		VisualMemory:       8,
		ReactionTimeMs:     1235,
		AccuracyPct:        75,
		SustainedAttention: 7.5,
		Fatigue:            3,
		Timestamp:          now,
	}
	if r != want {
		t.Errorf("Aggregate =\n%+v\nwant\n%+v", r, want)
	}
	if *in.WorkingMemory != 6 {
		t.Error("input mutated")
	}
}

func TestAggregateClampsAndPrefix(t *testing.T) {
	r := Aggregate(Input{Now: now, IDPrefix: "WM", SustainedAttention: Float(12), Fatigue: Int(9)})
	if r.SustainedAttention != 10 {
		t.Errorf("attention = %v, want clamp to 10", r.SustainedAttention)
	}
	if r.Fatigue != DefaultFatigue {
		t.Errorf("out-of-range fatigue kept: %d", r.Fatigue)
	}
	if r.ParticipantID[:3] != "WM_" {
		t.Errorf("ParticipantID = %q", r.ParticipantID)
	}
}

func TestWorkingMemoryScore(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{10, 10, 10},
		{7, 10, 7},
		{0, 10, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := WorkingMemoryScore(tt.correct, tt.total); got != tt.want {
			t.Errorf("WorkingMemoryScore(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestHistoryHelpers(t *testing.T) {
	history := []trial.Trial{
		{Correct: true, ReactionTime: time.Second},
		{Correct: false, ReactionTime: 2 * time.Second},
		{Correct: true, ReactionTime: 3 * time.Second},
	}
	if got := CountCorrect(history); got != 2 {
		t.Errorf("CountCorrect = %d", got)
	}
	if got := MeanReactionTime(history); got != 2*time.Second {
		t.Errorf("MeanReactionTime = %v", got)
	}
	if got := MeanReactionTime(nil); got != 0 {
		t.Errorf("MeanReactionTime(nil) = %v", got)
	}
	if got := AccuracyPct(2, 3); math.Abs(got-66.666666) > 1e-4 {
		t.Errorf("AccuracyPct = %v", got)
	}
}

func TestBandedWorkingMemoryScore(t *testing.T) {
	tests := []struct {
		acc, want float64
	}{
		{100, 10},
		{95, 9.5},
		{80, 8},
		{50, 5},
		{40, 4},
		{0, 0},
	}
	for _, tt := range tests {
		if got := BandedWorkingMemoryScore(tt.acc); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("BandedWorkingMemoryScore(%v) = %v, want %v", tt.acc, got, tt.want)
		}
	}
}

func TestAttentionFromReactionTime(t *testing.T) {
	tests := []struct {
		rt   time.Duration
		want float64
	}{
		{500 * time.Millisecond, 10},
		{time.Second, 10},
		{1400 * time.Millisecond, 8},
		{3 * time.Second, 0},
		{10 * time.Second, 0},
	}
	for _, tt := range tests {
		if got := AttentionFromReactionTime(tt.rt); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AttentionFromReactionTime(%v) = %v, want %v", tt.rt, got, tt.want)
		}
	}
}
