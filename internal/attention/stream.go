package attention

import (
	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/sequence"
)

// Stream presents stimuli on a fixed cadence and records one response per
// stimulus. Like trial.Engine it must be driven from a single goroutine.
type Stream struct {
	cfg   Config
	sched scheduler.Scheduler
	src   sequence.Source

	stimuli   []Stimulus
	responses []*bool
	index     int
	started   bool
	done      bool
	scored    bool
	result    Result
	task      *scheduler.Task

	// OnAdvance is called after each tick moves to a new stimulus.
	OnAdvance func(index int)

	// OnComplete is called once with the final result.
	OnComplete func(Result)
}

// NewStream generates a stimulus run from src. The run is fixed at
// construction and does not adapt to responses.
func NewStream(cfg Config, sched scheduler.Scheduler, src sequence.Source) *Stream {
	stimuli := Generate(cfg, src)
	return &Stream{
		cfg:       cfg,
		sched:     sched,
		src:       src,
		stimuli:   stimuli,
		responses: make([]*bool, len(stimuli)),
	}
}

// Start shows the first stimulus and arms the tick timer.
func (s *Stream) Start() error {
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.index = 0
	if len(s.stimuli) == 0 {
		s.finish()
		return nil
	}
	s.task = s.sched.After(s.cfg.Tick, s.tick)
	return nil
}

func (s *Stream) tick() {
	if s.done {
		return
	}
	if s.index < len(s.stimuli)-1 {
		s.index++
		s.task = s.sched.After(s.cfg.Tick, s.tick)
		if s.OnAdvance != nil {
			s.OnAdvance(s.index)
		}
		return
	}
	s.task = s.sched.After(s.cfg.Settle, s.finish)
}

func (s *Stream) finish() {
	if s.done {
		return
	}
	s.done = true
	s.scored = true
	s.task = nil
	correct, acc := Evaluate(s.stimuli, s.responses)
	s.result = Result{
		Correct:      correct,
		Total:        len(s.stimuli),
		Accuracy:     acc,
		Score:        acc * 10,
		PrecisionPct: acc * 100,
		Fatigue:      1 + s.src.IntN(max(1, s.cfg.MaxFatigue)),
	}
	if s.OnComplete != nil {
		s.OnComplete(s.result)
	}
}

// Respond records the participant's call for the stimulus currently shown.
// The first response to a stimulus is final.
func (s *Stream) Respond(isTarget bool) error {
	if !s.started || s.done {
		return ErrNotRunning
	}
	if s.responses[s.index] != nil {
		return ErrAlreadyAnswered
	}
	s.responses[s.index] = &isTarget
	return nil
}

// Current returns the stimulus on display and its index.
func (s *Stream) Current() (Stimulus, int, bool) {
	if !s.started || s.done {
		return Stimulus{}, s.index, false
	}
	return s.stimuli[s.index], s.index, true
}

// Answered reports whether the current stimulus has a response.
func (s *Stream) Answered() bool {
	return s.started && !s.done && s.responses[s.index] != nil
}

// Len returns the number of stimuli.
func (s *Stream) Len() int {
	return len(s.stimuli)
}

// Stimuli returns a copy of the generated run.
func (s *Stream) Stimuli() []Stimulus {
	return append([]Stimulus(nil), s.stimuli...)
}

// Done reports whether the stream has been scored.
func (s *Stream) Done() bool {
	return s.done
}

// Result returns the final result once the stream has been scored.
func (s *Stream) Result() (Result, bool) {
	return s.result, s.scored
}

// Cancel stops the stream without scoring it.
func (s *Stream) Cancel() {
	s.task.Cancel()
	s.task = nil
	s.done = true
}
