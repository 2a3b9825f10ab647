package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/results"
)

func rec(id string, edu results.Education, v, w, a float64, day int) results.TestResult {
	return results.TestResult{
		ParticipantID:      id,
		Age:                20 + day,
		Education:          edu,
		VisualMemory:       v,
		WorkingMemory:      w,
		SustainedAttention: a,
		ImmediateMemory:    w * 0.9,
		AccuracyPct:        a * 10,
		ReactionTimeMs:     1000,
		Timestamp:          time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarize(t *testing.T) {
	recs := []results.TestResult{
		rec("c", results.EducationHigher, 9, 9, 9, 3),
		rec("a", results.EducationBasic, 3, 3, 3, 1),
		rec("b", results.EducationSecondary, 6, 6, 6, 2),
		rec("bad", results.EducationSecondary, math.NaN(), 5, 5, 4),
		rec("d", 0, 6, 5, 7, 5),
	}
	s := Summarize(recs)

	if s.Total != 5 || s.Valid != 4 {
		t.Fatalf("total/valid = %d/%d, want 5/4", s.Total, s.Valid)
	}
	if got := s.Averages.Visual; math.Abs(got-6) > 1e-9 {
		t.Errorf("visual avg = %v, want 6", got)
	}
	if s.Education[results.EducationBasic] != 2 {
		t.Errorf("basic count = %d, want 2 (missing level counts as basic)", s.Education[results.EducationBasic])
	}
	if got := s.EducationShare(results.EducationHigher); got != 25 {
		t.Errorf("higher share = %v, want 25", got)
	}
	if s.Labels[classify.LabelLow] != 1 || s.Labels[classify.LabelMedium] != 2 || s.Labels[classify.LabelHigh] != 1 {
		t.Errorf("labels = %v", s.Labels)
	}
	if len(s.Timeline) != 4 || s.Timeline[0].Timestamp.Day() != 1 {
		t.Errorf("timeline not sorted oldest first: %+v", s.Timeline)
	}
	if len(s.AgeScores) != 4 {
		t.Errorf("age points = %d", len(s.AgeScores))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Valid != 0 || s.EducationShare(results.EducationBasic) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No valid results") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatTableAlignsWideRunes(t *testing.T) {
	lines := formatTable(
		[]string{"Name", "Score"},
		[][]string{{"José", "9.5"}, {"日本", "10.0"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	want := []string{
		"Name  Score",
		"José    9.5",
		"日本   10.0",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderMetrics(t *testing.T) {
	m := classify.Evaluate(
		[]classify.Label{classify.LabelLow, classify.LabelHigh},
		[]classify.Label{classify.LabelLow, classify.LabelMedium},
	)
	var buf bytes.Buffer
	if err := RenderMetrics(&buf, m); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Accuracy: 50.0% (1/2)", "true \\ pred", "Precision"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		v, max float64
		width  int
		want   string
	}{
		{5, 10, 4, "██░░"},
		{10, 10, 3, "███"},
		{12, 10, 2, "██"},
		{-1, 10, 2, "░░"},
		{1, 0, 2, ""},
	}
	for _, tt := range tests {
		if got := bar(tt.v, tt.max, tt.width); got != tt.want {
			t.Errorf("bar(%v,%v,%d) = %q, want %q", tt.v, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Errorf("flat = %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got[0] != ' ' || got[1] != '@' {
		t.Errorf("range = %q", got)
	}
}
