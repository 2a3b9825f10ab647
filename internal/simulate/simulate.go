// Package simulate runs complete sessions headlessly on a virtual clock
// with a scripted participant. It is used to generate training data.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/sequence"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/store"
	"github.com/abhisek/memoriz/internal/trial"
)

// maxSteps bounds the event loop of one session.
const maxSteps = 10_000

// ErrStalled is returned when a session stops making progress.
var ErrStalled = errors.New("simulated session stalled")

// Profile scripts the participant.
type Profile struct {
	// Skill is the chance a recall response is entirely correct.
	Skill float64

	// Vigilance is the chance an attention call is correct.
	Vigilance float64

	// ReactionTime is how long the participant takes to answer.
	ReactionTime time.Duration
}

// DefaultProfile is an average participant.
func DefaultProfile() Profile {
	return Profile{Skill: 0.7, Vigilance: 0.8, ReactionTime: 1500 * time.Millisecond}
}

// Options configures Run.
type Options struct {
	Sessions int
	Config   session.Config
	Profile  Profile
	Seed     uint64
	Start    time.Time

	// Results and Events receive each finished session. Either may be nil.
	Results store.ResultRepo
	Events  store.EventRepo

	// OnResult is called after each session is saved.
	OnResult func(i int, r results.TestResult)
}

// Run plays opts.Sessions sessions back to back and returns their results.
func Run(ctx context.Context, opts Options) ([]results.TestResult, error) {
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	out := make([]results.TestResult, 0, opts.Sessions)
	for i := 0; i < opts.Sessions; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		src := sequence.NewSource(opts.Seed + uint64(i))
		sched := scheduler.NewVirtual(start)
		ctrl := session.New(session.Options{
			Config:    opts.Config,
			Scheduler: sched,
			Source:    src,
			Results:   opts.Results,
			Events:    opts.Events,
		})
		p := &participant{profile: opts.Profile, src: src}
		r, err := p.play(ctx, ctrl, sched)
		if err != nil {
			return out, fmt.Errorf("session %d: %w", i+1, err)
		}
		out = append(out, r)
		if opts.OnResult != nil {
			opts.OnResult(i, r)
		}
		// Sessions follow each other by a minute of virtual time.
		start = sched.Now().Add(time.Minute)
	}
	return out, nil
}

type participant struct {
	profile Profile
	src     sequence.Source

	// seen is the sequence memorized during the presentation window.
	seen []int
}

func (p *participant) details(mode session.Mode) session.Participant {
	if mode == session.ModeWorkingMemory {
		return session.Participant{}
	}
	return session.Participant{
		Name:      fmt.Sprintf("Simulated %04d", p.src.IntN(10_000)),
		Age:       results.MinAge + p.src.IntN(results.MaxAge-results.MinAge+1),
		Education: results.Education(1 + p.src.IntN(3)),
	}
}

func (p *participant) play(ctx context.Context, ctrl *session.Controller, sched *scheduler.Virtual) (results.TestResult, error) {
	if err := ctrl.SubmitParticipant(p.details(ctrl.Mode())); err != nil {
		return results.TestResult{}, err
	}

	for step := 0; ctrl.Phase() != session.PhaseResults; step++ {
		if step >= maxSteps {
			return results.TestResult{}, ErrStalled
		}
		e := ctrl.Engine()
		switch {
		case e != nil && e.State() == trial.StatePresenting && p.seen == nil:
			p.seen = append([]int(nil), e.Sequence()...)
		case e != nil && e.State() == trial.StateAwaitingResponse:
			sched.Advance(p.profile.ReactionTime)
			_, err := ctrl.Submit(p.recall(e))
			p.seen = nil
			if err != nil {
				return results.TestResult{}, err
			}
		case ctrl.Phase() == session.PhaseAttention:
			if err := p.attend(ctrl); err != nil {
				return results.TestResult{}, err
			}
			if sched.Flush(1) == 0 {
				return results.TestResult{}, ErrStalled
			}
		default:
			if sched.Flush(1) == 0 {
				return results.TestResult{}, ErrStalled
			}
		}
	}

	if err := ctrl.Save(ctx); err != nil {
		return results.TestResult{}, err
	}
	return ctrl.Result()
}

// recall answers the open trial: the expected digits with probability
// Skill, otherwise the expected digits with one position changed.
func (p *participant) recall(e *trial.Engine) []int {
	resp := trial.Expected(e.Variant(), p.seen)
	if len(resp) != e.ExpectedLength() {
		resp = make([]int, e.ExpectedLength())
	}
	if p.src.Float64() < p.profile.Skill {
		return resp
	}
	i := p.src.IntN(len(resp))
	resp[i] = (resp[i] + 1 + p.src.IntN(sequence.DigitCount-1)) % sequence.DigitCount
	return resp
}

func (p *participant) attend(ctrl *session.Controller) error {
	st := ctrl.Stream()
	stim, _, ok := st.Current()
	if !ok || st.Answered() {
		return nil
	}
	call := stim.Target
	if p.src.Float64() >= p.profile.Vigilance {
		call = !call
	}
	return ctrl.Respond(call)
}
