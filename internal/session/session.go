// Package session sequences the phases of an assessment: participant
// details, the visual and working-memory trials, the attention stream and
// the final result.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/memoriz/internal/attention"
	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/scoring"
	"github.com/abhisek/memoriz/internal/sequence"
	"github.com/abhisek/memoriz/internal/store"
	"github.com/abhisek/memoriz/internal/trial"
)

// Options wires a Controller to its collaborators. Results and Events may
// be nil, in which case nothing is persisted.
type Options struct {
	Config    Config
	Scheduler scheduler.Scheduler
	Source    sequence.Source
	Results   store.ResultRepo
	Events    store.EventRepo
}

// Controller drives one assessment at a time. Like the engines it owns, it
// must be used from a single goroutine together with its scheduler.
type Controller struct {
	cfg    Config
	sched  scheduler.Scheduler
	src    sequence.Source
	gen    *sequence.Generator
	repo   store.ResultRepo
	events store.EventRepo

	id          string
	epoch       uint64
	phase       Phase
	participant Participant
	startedAt   time.Time

	engine   *trial.Engine
	stream   *attention.Stream
	pending  *scheduler.Task
	practice int
	visual   *trial.Trial
	history  []trial.Trial
	attn     *attention.Result
	result   *results.TestResult
	saved    bool
}

// New creates a Controller waiting for participant details.
func New(opts Options) *Controller {
	src := opts.Source
	if src == nil {
		src = sequence.NewTimeSource()
	}
	c := &Controller{
		cfg:    opts.Config,
		sched:  opts.Scheduler,
		src:    src,
		gen:    sequence.New(src),
		repo:   opts.Results,
		events: opts.Events,
	}
	c.begin()
	return c
}

func (c *Controller) begin() {
	c.id = uuid.New().String()
	c.phase = PhaseInfo
	c.participant = Participant{}
	c.engine = nil
	c.stream = nil
	c.pending = nil
	c.practice = 0
	c.visual = nil
	c.history = nil
	c.attn = nil
	c.result = nil
	c.saved = false
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Mode returns the configured phase plan.
func (c *Controller) Mode() Mode { return c.cfg.Mode }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Participant returns the submitted participant details.
func (c *Controller) Participant() Participant { return c.participant }

// Engine returns the trial engine of the current phase, or nil.
func (c *Controller) Engine() *trial.Engine { return c.engine }

// Stream returns the attention stream, or nil outside the attention phase.
func (c *Controller) Stream() *attention.Stream { return c.stream }

// Between reports whether the controller is waiting on a scheduled
// transition (inter-trial or inter-phase delay).
func (c *Controller) Between() bool {
	return c.pending != nil && !c.pending.Done()
}

// SubmitParticipant validates p and starts the first measured phase. In the
// working-memory drill a zero Participant is accepted and the population
// defaults are used.
func (c *Controller) SubmitParticipant(p Participant) error {
	if c.phase != PhaseInfo {
		return ErrWrongPhase
	}
	if !(c.cfg.Mode == ModeWorkingMemory && p == Participant{}) {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	c.participant = p
	c.startedAt = c.sched.Now()
	c.record(store.SessionEventData{SessionID: c.id, Action: store.ActionStart, Mode: c.cfg.Mode.String()})

	if c.cfg.Mode == ModeWorkingMemory && c.cfg.PracticeTrials > 0 {
		c.enterPractice()
		return nil
	}
	if c.cfg.Mode == ModeWorkingMemory {
		c.enterWorkingMemory()
		return nil
	}
	c.enterVisual()
	return nil
}

func (c *Controller) enterVisual() {
	c.phase = PhaseVisual
	c.engine = trial.NewEngine(trial.Config{
		Variant:    trial.VariantVisual,
		Timing:     c.cfg.VisualTiming,
		AutoSubmit: true,
		OnScored:   c.onScored,
	}, c.sched, c.gen)
	c.startTrial(c.cfg.VisualLength)
}

func (c *Controller) enterPractice() {
	c.phase = PhasePractice
	c.engine = trial.NewEngine(trial.Config{
		Variant:  trial.VariantBackward,
		Timing:   c.cfg.DrillTiming,
		OnScored: c.onScored,
	}, c.sched, c.gen)
	c.startTrial(c.cfg.StartLength)
}

func (c *Controller) enterWorkingMemory() {
	c.phase = PhaseWorkingMemory
	timing := c.cfg.BackwardTiming
	if c.cfg.Mode == ModeWorkingMemory {
		timing = c.cfg.DrillTiming
	}
	c.engine = trial.NewEngine(trial.Config{
		Variant:  trial.VariantBackward,
		Timing:   timing,
		OnScored: c.onScored,
	}, c.sched, c.gen)
	if c.cfg.WorkingMemoryTrials <= 0 {
		c.afterWorkingMemory()
		return
	}
	c.startTrial(NextLength(c.cfg, c.history))
}

func (c *Controller) enterAttention() {
	c.phase = PhaseAttention
	c.engine = nil
	c.stream = attention.NewStream(c.cfg.Attention, c.sched, c.src)
	c.stream.OnComplete = c.onAttentionComplete
	// Start only fails when called twice.
	_ = c.stream.Start()
}

func (c *Controller) startTrial(length int) {
	if _, err := c.engine.Start(length); err != nil {
		// Lengths come from Config; a bad one leaves the phase idle.
		c.engine = nil
	}
}

// after schedules fn once d has elapsed, unless the session is reset or
// the phase changes first.
func (c *Controller) after(d time.Duration, fn func()) {
	epoch, phase := c.epoch, c.phase
	c.pending = c.sched.After(d, func() {
		if epoch != c.epoch || phase != c.phase {
			return
		}
		c.pending = nil
		fn()
	})
}

func (c *Controller) onScored(t trial.Trial) {
	phase := c.phase
	index := 0
	switch phase {
	case PhasePractice:
		index = c.practice
		c.practice++
	case PhaseVisual:
		c.visual = &t
	case PhaseWorkingMemory:
		index = len(c.history)
		c.history = append(c.history, t)
	}
	c.recordTrial(phase, index, t)

	switch phase {
	case PhasePractice:
		if c.practice < c.cfg.PracticeTrials {
			c.after(c.cfg.InterTrialDelay, func() { c.startTrial(c.cfg.StartLength) })
			return
		}
		c.after(c.cfg.PhaseDelay, c.enterWorkingMemory)
	case PhaseVisual:
		c.after(c.cfg.PhaseDelay, c.enterWorkingMemory)
	case PhaseWorkingMemory:
		if len(c.history) < c.cfg.WorkingMemoryTrials {
			c.after(c.cfg.InterTrialDelay, func() { c.startTrial(NextLength(c.cfg, c.history)) })
			return
		}
		c.after(c.cfg.InterTrialDelay, c.afterWorkingMemory)
	}
}

func (c *Controller) afterWorkingMemory() {
	if c.cfg.Mode == ModeWorkingMemory {
		c.finish()
		return
	}
	c.enterAttention()
}

func (c *Controller) onAttentionComplete(r attention.Result) {
	if c.phase != PhaseAttention {
		return
	}
	c.attn = &r
	c.finish()
}

func (c *Controller) finish() {
	c.phase = PhaseResults
	c.engine = nil
	r := c.assemble()
	c.result = &r
}

func (c *Controller) assemble() results.TestResult {
	correct := scoring.CountCorrect(c.history)
	total := len(c.history)
	in := scoring.Input{
		Age:       c.participant.Age,
		Education: c.participant.Education,
		Now:       c.sched.Now(),
	}

	if c.cfg.Mode == ModeWorkingMemory {
		acc := scoring.AccuracyPct(correct, total)
		in.IDPrefix = "WM"
		in.WorkingMemory = scoring.Float(scoring.BandedWorkingMemoryScore(acc))
		in.VisualMemory = scoring.Float(c.cfg.DrillVisualDefault)
		in.AccuracyPct = scoring.Float(acc)
		in.Fatigue = scoring.Int(c.cfg.DrillFatigue)
		if total > 0 {
			rt := scoring.MeanReactionTime(c.history)
			in.ReactionTime = scoring.Duration(rt)
			in.SustainedAttention = scoring.Float(scoring.AttentionFromReactionTime(rt))
		}
		return scoring.Aggregate(in)
	}

	timed := c.history
	if c.visual != nil {
		in.VisualMemory = scoring.Float(c.visual.Score)
		timed = append([]trial.Trial{*c.visual}, c.history...)
	}
	in.WorkingMemory = scoring.Float(scoring.WorkingMemoryScore(correct, total))
	if len(timed) > 0 {
		in.ReactionTime = scoring.Duration(scoring.MeanReactionTime(timed))
	}
	if c.attn != nil {
		in.SustainedAttention = scoring.Float(c.attn.Score)
		in.AccuracyPct = scoring.Float(c.attn.PrecisionPct)
		in.Fatigue = scoring.Int(c.attn.Fatigue)
	}
	return scoring.Aggregate(in)
}

// Input forwards a digit keystroke to the active trial. A non-nil trial is
// returned when the keystroke completed and scored an auto-submit trial.
func (c *Controller) Input(digit int) (*trial.Trial, error) {
	e, err := c.activeEngine()
	if err != nil {
		return nil, err
	}
	return e.Input(digit)
}

// Backspace removes the last keystroke of the active trial.
func (c *Controller) Backspace() {
	if e, err := c.activeEngine(); err == nil {
		e.Backspace()
	}
}

// CanConfirm reports whether the active response may be submitted.
func (c *Controller) CanConfirm() bool {
	e, err := c.activeEngine()
	return err == nil && e.CanConfirm()
}

// Confirm submits the active response.
func (c *Controller) Confirm() (trial.Trial, error) {
	e, err := c.activeEngine()
	if err != nil {
		return trial.Trial{}, err
	}
	return e.Confirm()
}

// Submit replaces the active response with digits and submits it.
func (c *Controller) Submit(digits []int) (trial.Trial, error) {
	e, err := c.activeEngine()
	if err != nil {
		return trial.Trial{}, err
	}
	return e.Submit(digits)
}

func (c *Controller) activeEngine() (*trial.Engine, error) {
	switch c.phase {
	case PhasePractice, PhaseVisual, PhaseWorkingMemory:
	default:
		return nil, ErrWrongPhase
	}
	if c.engine == nil {
		return nil, ErrNoActiveTrial
	}
	return c.engine, nil
}

// Respond records a target/non-target call for the current stimulus.
func (c *Controller) Respond(isTarget bool) error {
	if c.phase != PhaseAttention || c.stream == nil {
		return ErrWrongPhase
	}
	return c.stream.Respond(isTarget)
}

// TrialNumber returns the 1-based trial index within the current phase.
func (c *Controller) TrialNumber() int {
	switch c.phase {
	case PhasePractice:
		return min(c.practice+1, c.cfg.PracticeTrials)
	case PhaseVisual:
		return 1
	case PhaseWorkingMemory:
		return min(len(c.history)+1, c.cfg.WorkingMemoryTrials)
	}
	return 0
}

// CurrentLength returns the sequence length of the active or next trial.
func (c *Controller) CurrentLength() int {
	switch c.phase {
	case PhasePractice:
		return c.cfg.StartLength
	case PhaseVisual:
		return c.cfg.VisualLength
	case PhaseWorkingMemory:
		if c.engine != nil && c.engine.State() != trial.StateIdle && c.engine.State() != trial.StateScored {
			return c.engine.ExpectedLength()
		}
		return NextLength(c.cfg, c.history)
	}
	return 0
}

// Progress reports the advancement of the current phase.
func (c *Controller) Progress() Progress {
	p := Progress{Phase: c.phase, Length: c.CurrentLength(), Correct: scoring.CountCorrect(c.history)}
	switch c.phase {
	case PhasePractice:
		p.Done, p.Total = c.practice, c.cfg.PracticeTrials
	case PhaseVisual:
		p.Total = 1
		if c.visual != nil {
			p.Done = 1
		}
	case PhaseWorkingMemory:
		p.Done, p.Total = len(c.history), c.cfg.WorkingMemoryTrials
	case PhaseAttention:
		_, idx, _ := c.stream.Current()
		p.Done, p.Total = idx, c.stream.Len()
		if c.stream.Done() {
			p.Done = p.Total
		}
	}
	return p
}

// History returns the scored working-memory trials in completion order.
func (c *Controller) History() []trial.Trial {
	return append([]trial.Trial(nil), c.history...)
}

// Visual returns the scored visual trial.
func (c *Controller) Visual() (trial.Trial, bool) {
	if c.visual == nil {
		return trial.Trial{}, false
	}
	return *c.visual, true
}

// Attention returns the attention result once the stream has been scored.
func (c *Controller) Attention() (attention.Result, bool) {
	if c.attn == nil {
		return attention.Result{}, false
	}
	return *c.attn, true
}

// Elapsed returns the time since the participant was submitted.
func (c *Controller) Elapsed() time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	return c.sched.Now().Sub(c.startedAt)
}

// Result returns the assembled result. It is only available in the
// results phase.
func (c *Controller) Result() (results.TestResult, error) {
	if c.phase != PhaseResults || c.result == nil {
		return results.TestResult{}, ErrWrongPhase
	}
	return *c.result, nil
}

// Save appends the result to the result store and records the session end.
// Saving twice is a no-op.
func (c *Controller) Save(ctx context.Context) error {
	r, err := c.Result()
	if err != nil {
		return err
	}
	if c.saved {
		return nil
	}
	if c.repo != nil {
		if err := c.repo.AppendResult(ctx, r); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
	}
	c.saved = true

	sum := BuildSummary(c)
	c.record(store.SessionEventData{
		SessionID:     c.id,
		Action:        store.ActionEnd,
		Mode:          c.cfg.Mode.String(),
		ParticipantID: r.ParticipantID,
		Trials:        sum.TotalTrials,
		Correct:       sum.TotalCorrect,
		DurationSecs:  int(sum.Duration.Seconds()),
		CoreAverage:   r.CoreAverage(),
	})
	return nil
}

// Saved reports whether the current result has been persisted.
func (c *Controller) Saved() bool { return c.saved }

// Reset abandons the session, cancels every pending timer and returns to
// the info phase with a fresh session id.
func (c *Controller) Reset() {
	if c.phase != PhaseInfo {
		c.record(store.SessionEventData{SessionID: c.id, Action: store.ActionReset, Mode: c.cfg.Mode.String()})
	}
	c.epoch++
	c.pending.Cancel()
	if c.engine != nil {
		c.engine.Cancel()
	}
	if c.stream != nil {
		c.stream.Cancel()
	}
	c.begin()
}

func (c *Controller) record(data store.SessionEventData) {
	if c.events == nil {
		return
	}
	_ = c.events.AppendSessionEvent(context.Background(), data)
}

func (c *Controller) recordTrial(phase Phase, index int, t trial.Trial) {
	if c.events == nil {
		return
	}
	_ = c.events.AppendTrialEvent(context.Background(), store.TrialEventData{
		SessionID:  c.id,
		Phase:      phase.String(),
		TrialIndex: index,
		Shown:      sequence.Format(t.Sequence),
		Response:   sequence.Format(t.Response),
		Correct:    t.Correct,
		Score:      t.Score,
		ReactionMs: t.ReactionTime.Milliseconds(),
	})
}
