package trial

import (
	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/sequence"
)

// Config configures an Engine.
type Config struct {
	Variant Variant
	Timing  Timing

	// AutoSubmit scores the trial as soon as the response reaches the
	// expected length. Without it the caller must Confirm.
	AutoSubmit bool

	// OnHidden is called when the presentation window closes.
	OnHidden func()

	// OnScored is called once per trial with the scored record.
	OnScored func(Trial)
}

// Engine runs one trial at a time through Idle → Presenting →
// AwaitingResponse → Scored. It is not safe for concurrent use; all calls
// and scheduler callbacks must happen on one goroutine.
type Engine struct {
	cfg   Config
	sched scheduler.Scheduler
	gen   *sequence.Generator

	state State
	cur   Trial
	hide  *scheduler.Task

	// token identifies the current trial; a hide callback carrying an older
	// token is stale and does nothing.
	token uint64
}

// NewEngine creates an idle Engine.
func NewEngine(cfg Config, sched scheduler.Scheduler, gen *sequence.Generator) *Engine {
	return &Engine{cfg: cfg, sched: sched, gen: gen}
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Variant returns the engine's variant.
func (e *Engine) Variant() Variant {
	return e.cfg.Variant
}

// Start generates a sequence of the given length, shows it, and arms the hide
// timer. It is valid from Idle or Scored.
func (e *Engine) Start(length int) ([]int, error) {
	if e.state == StatePresenting || e.state == StateAwaitingResponse {
		return nil, ErrBusy
	}
	seq, err := e.gen.Generate(length)
	if err != nil {
		return nil, err
	}

	e.token++
	token := e.token
	e.cur = Trial{
		Variant:   e.cfg.Variant,
		Sequence:  seq,
		StartedAt: e.sched.Now(),
	}
	e.state = StatePresenting
	e.hide = e.sched.After(e.cfg.Timing.Window(length), func() { e.onHide(token) })

	out := make([]int, len(seq))
	copy(out, seq)
	return out, nil
}

func (e *Engine) onHide(token uint64) {
	if token != e.token || e.state != StatePresenting {
		return
	}
	e.hide = nil
	e.cur.PresentedEnd = e.sched.Now()
	e.state = StateAwaitingResponse
	if e.cfg.OnHidden != nil {
		e.cfg.OnHidden()
	}
}

// Sequence returns the presented sequence while it is visible. It returns
// nil once the window has closed so callers cannot redisplay it.
func (e *Engine) Sequence() []int {
	if e.state != StatePresenting {
		return nil
	}
	return e.cur.Sequence
}

// ExpectedLength is the number of digits the response must contain.
func (e *Engine) ExpectedLength() int {
	return len(e.cur.Sequence)
}

// Response returns the digits entered so far.
func (e *Engine) Response() []int {
	return e.cur.Response
}

// Input appends one keystroke. Keystrokes beyond the expected length are
// rejected with ErrMalformedResponse. In AutoSubmit mode the keystroke that
// completes the response scores the trial and the scored record is returned.
func (e *Engine) Input(digit int) (*Trial, error) {
	if e.state != StateAwaitingResponse {
		return nil, ErrNotAwaiting
	}
	if digit < 0 || digit >= sequence.DigitCount {
		return nil, ErrInvalidDigit
	}
	if len(e.cur.Response) >= len(e.cur.Sequence) {
		return nil, ErrMalformedResponse
	}
	e.cur.Response = append(e.cur.Response, digit)
	if e.cfg.AutoSubmit && len(e.cur.Response) == len(e.cur.Sequence) {
		t := e.score()
		return &t, nil
	}
	return nil, nil
}

// Backspace removes the last keystroke.
func (e *Engine) Backspace() {
	if e.state != StateAwaitingResponse || len(e.cur.Response) == 0 {
		return
	}
	e.cur.Response = e.cur.Response[:len(e.cur.Response)-1]
}

// CanConfirm reports whether the response is complete. Confirmation stays
// disabled until the response length equals the sequence length.
func (e *Engine) CanConfirm() bool {
	return e.state == StateAwaitingResponse && len(e.cur.Response) == len(e.cur.Sequence)
}

// Confirm scores the entered response.
func (e *Engine) Confirm() (Trial, error) {
	if e.state != StateAwaitingResponse {
		return Trial{}, ErrNotAwaiting
	}
	if len(e.cur.Response) != len(e.cur.Sequence) {
		return Trial{}, ErrMalformedResponse
	}
	return e.score(), nil
}

// Submit replaces the entered response with response and confirms it.
func (e *Engine) Submit(response []int) (Trial, error) {
	if e.state != StateAwaitingResponse {
		return Trial{}, ErrNotAwaiting
	}
	if len(response) != len(e.cur.Sequence) {
		return Trial{}, ErrMalformedResponse
	}
	for _, d := range response {
		if d < 0 || d >= sequence.DigitCount {
			return Trial{}, ErrInvalidDigit
		}
	}
	e.cur.Response = append([]int(nil), response...)
	return e.score(), nil
}

func (e *Engine) score() Trial {
	e.cur.ConfirmedAt = e.sched.Now()
	e.cur.ReactionTime = e.cur.ConfirmedAt.Sub(e.cur.PresentedEnd)
	Evaluate(&e.cur)
	e.state = StateScored
	t := e.cur
	if e.cfg.OnScored != nil {
		e.cfg.OnScored(t)
	}
	return t
}

// Last returns the most recently scored trial.
func (e *Engine) Last() (Trial, bool) {
	if e.state != StateScored {
		return Trial{}, false
	}
	return e.cur, true
}

// Cancel abandons the current trial, disarms the hide timer, and returns
// the engine to Idle.
func (e *Engine) Cancel() {
	e.hide.Cancel()
	e.hide = nil
	e.token++
	e.cur = Trial{}
	e.state = StateIdle
}
