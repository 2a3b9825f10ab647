package attention

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/sequence"
)

var epoch = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestGenerateTargetsAndLetters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = 10000
	stimuli := Generate(cfg, sequence.NewSource(21))

	targets := 0
	for _, s := range stimuli {
		if s.Target {
			targets++
			if s.Letter != TargetLetter {
				t.Fatalf("target letter = %q", s.Letter)
			}
			continue
		}
		if s.Letter == TargetLetter || s.Letter < 'A' || s.Letter > 'Z' {
			t.Fatalf("distractor letter = %q", s.Letter)
		}
	}
	rate := float64(targets) / float64(len(stimuli))
	if math.Abs(rate-0.3) > 0.03 {
		t.Errorf("target rate = %.3f, want about 0.3", rate)
	}
}

func TestEvaluate(t *testing.T) {
	yes, no := true, false
	stimuli := []Stimulus{{'X', true}, {'A', false}, {'B', false}, {'X', true}}
	tests := []struct {
		name      string
		responses []*bool
		want      int
	}{
		{"all correct", []*bool{&yes, &no, &no, &yes}, 4},
		{"unanswered count wrong", []*bool{&yes, nil, nil, &yes}, 2},
		{"all wrong", []*bool{&no, &yes, &yes, &no}, 0},
		{"short slice", []*bool{&yes}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, acc := Evaluate(stimuli, tt.responses)
			if got != tt.want {
				t.Errorf("correct = %d, want %d", got, tt.want)
			}
			if acc != float64(tt.want)/4 {
				t.Errorf("accuracy = %v", acc)
			}
		})
	}
}

func runStream(t *testing.T, answer func(Stimulus) bool) (Result, time.Duration) {
	t.Helper()
	v := scheduler.NewVirtual(epoch)
	s := NewStream(DefaultConfig(), v, sequence.NewSource(8))

	var got *Result
	s.OnComplete = func(r Result) { got = &r }
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for !s.Done() {
		cur, _, ok := s.Current()
		if !ok {
			t.Fatal("running stream has no current stimulus")
		}
		if !s.Answered() {
			if err := s.Respond(answer(cur)); err != nil {
				t.Fatalf("Respond: %v", err)
			}
		}
		v.Advance(500 * time.Millisecond)
		if s.Done() {
			break
		}
		v.Advance(time.Second)
	}
	if got == nil {
		t.Fatal("OnComplete not called")
	}
	return *got, v.Now().Sub(epoch)
}

func TestStreamPerfectRun(t *testing.T) {
	r, elapsed := runStream(t, func(s Stimulus) bool { return s.Target })
	if r.Correct != 20 || r.Accuracy != 1 {
		t.Fatalf("result = %+v, want all correct", r)
	}
	if r.Score != 10 || r.PrecisionPct != 100 {
		t.Errorf("score = %v precision = %v", r.Score, r.PrecisionPct)
	}
	if r.Fatigue < 1 || r.Fatigue > 3 {
		t.Errorf("fatigue = %d, want 1..3", r.Fatigue)
	}
	// 20 ticks of 1.5s plus the 0.5s settle.
	if elapsed != 30500*time.Millisecond {
		t.Errorf("elapsed = %v, want 30.5s", elapsed)
	}
}

func TestStreamInvertedRun(t *testing.T) {
	r, _ := runStream(t, func(s Stimulus) bool { return !s.Target })
	if r.Correct != 0 || r.Score != 0 {
		t.Errorf("result = %+v, want zero", r)
	}
}

func TestStreamFirstResponseWins(t *testing.T) {
	v := scheduler.NewVirtual(epoch)
	s := NewStream(DefaultConfig(), v, sequence.NewSource(8))
	if err := s.Respond(true); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Respond before start err = %v", err)
	}
	s.Start()
	if err := s.Respond(true); err != nil {
		t.Fatal(err)
	}
	if err := s.Respond(false); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second Respond err = %v", err)
	}
	if !s.Answered() {
		t.Error("Answered = false")
	}
	v.Advance(1500 * time.Millisecond)
	if _, idx, _ := s.Current(); idx != 1 {
		t.Errorf("index = %d after one tick", idx)
	}
	if s.Answered() {
		t.Error("new stimulus reported answered")
	}
}

func TestStreamCancel(t *testing.T) {
	v := scheduler.NewVirtual(epoch)
	s := NewStream(DefaultConfig(), v, sequence.NewSource(8))
	completed := false
	s.OnComplete = func(Result) { completed = true }
	s.Start()
	v.Advance(3 * time.Second)
	s.Cancel()
	v.Advance(time.Minute)
	if completed {
		t.Error("cancelled stream completed")
	}
	if _, ok := s.Result(); ok {
		t.Error("cancelled stream has a result")
	}
	if v.Pending() != 0 {
		t.Errorf("Pending = %d", v.Pending())
	}
}
