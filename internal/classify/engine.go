package classify

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/scheduler"
	"github.com/abhisek/memoriz/internal/sequence"
)

// ErrInsufficientData is returned when there are too few records to train.
var ErrInsufficientData = errors.New("insufficient data for training")

// Config controls training.
type Config struct {
	// MinSamples is the smallest record count Train accepts.
	MinSamples int

	// Noise is the chance a prediction is replaced by a uniformly random
	// label.
	Noise float64

	// TrainingDelay is how long TrainAfter waits before reporting.
	TrainingDelay time.Duration
}

// DefaultConfig returns the standard training parameters.
func DefaultConfig() Config {
	return Config{
		MinSamples:    10,
		Noise:         0.05,
		TrainingDelay: 2 * time.Second,
	}
}

// Prediction pairs a record with its true and predicted label.
type Prediction struct {
	ParticipantID string
	Average       float64
	True          Label
	Predicted     Label
}

// Report is the outcome of a training run.
type Report struct {
	Samples     int
	Predictions []Prediction
	Metrics     Metrics
	Importance  []Feature
	TrainedAt   time.Time
}

// Engine trains the label predictor. The predictor reproduces the true
// label except for injected noise, so its metrics measure how well the
// labelling survives that noise.
type Engine struct {
	cfg Config
	src sequence.Source
	now func() time.Time
}

// NewEngine creates an Engine drawing noise from src.
func NewEngine(cfg Config, src sequence.Source) *Engine {
	return &Engine{cfg: cfg, src: src, now: time.Now}
}

// Train labels every record and evaluates the noisy predictor.
func (e *Engine) Train(records []results.TestResult) (Report, error) {
	if len(records) < e.cfg.MinSamples {
		return Report{}, fmt.Errorf("%w: have %d records, need %d", ErrInsufficientData, len(records), e.cfg.MinSamples)
	}

	preds := make([]Prediction, 0, len(records))
	truth := make([]Label, 0, len(records))
	guess := make([]Label, 0, len(records))
	for _, r := range records {
		avg := r.CoreAverage()
		t := LabelFor(avg)
		p := t
		if e.src.Float64() < e.cfg.Noise {
			p = Labels[e.src.IntN(len(Labels))]
		}
		preds = append(preds, Prediction{ParticipantID: r.ParticipantID, Average: avg, True: t, Predicted: p})
		truth = append(truth, t)
		guess = append(guess, p)
	}

	return Report{
		Samples:     len(records),
		Predictions: preds,
		Metrics:     Evaluate(truth, guess),
		Importance:  FeatureImportance(),
		TrainedAt:   e.now(),
	}, nil
}

// TrainAfter runs Train once the configured training delay has elapsed on
// sched and passes the outcome to done. The returned task can be
// cancelled to abandon the run.
func (e *Engine) TrainAfter(sched scheduler.Scheduler, records []results.TestResult, done func(Report, error)) *scheduler.Task {
	snapshot := append([]results.TestResult(nil), records...)
	return sched.After(e.cfg.TrainingDelay, func() {
		r, err := e.Train(snapshot)
		done(r, err)
	})
}
