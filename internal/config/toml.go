package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/llm"
	"github.com/abhisek/memoriz/internal/session"
)

// FileConfig represents the TOML configuration file. Every field is a
// pointer so an absent key leaves the package default alone.
type FileConfig struct {
	Session   SessionConfig   `toml:"session"`
	Attention AttentionConfig `toml:"attention"`
	Classify  ClassifyConfig  `toml:"classify"`
	LLM       LLMConfig       `toml:"llm"`
}

// SessionConfig maps battery settings. Durations are milliseconds.
type SessionConfig struct {
	Mode             *string  `toml:"mode"`
	VisualLength     *int     `toml:"visual-length"`
	Trials           *int     `toml:"trials"`
	PracticeTrials   *int     `toml:"practice-trials"`
	StartLength      *int     `toml:"start-length"`
	MaxLength        *int     `toml:"max-length"`
	CorrectPerStep   *int     `toml:"correct-per-step"`
	VisualWindowMs   *int     `toml:"visual-window-ms"`
	BaseWindowMs     *int     `toml:"base-window-ms"`
	PerDigitMs       *int     `toml:"per-digit-ms"`
	DrillPerDigitMs  *int     `toml:"drill-per-digit-ms"`
	InterTrialMs     *int     `toml:"inter-trial-ms"`
	PhaseDelayMs     *int     `toml:"phase-delay-ms"`
	DrillVisual      *float64 `toml:"drill-visual"`
	DrillFatigue     *int     `toml:"drill-fatigue"`
}

// AttentionConfig maps the continuous-performance stream.
type AttentionConfig struct {
	Stimuli           *int     `toml:"stimuli"`
	TargetProbability *float64 `toml:"target-probability"`
	TickMs            *int     `toml:"tick-ms"`
	SettleMs          *int     `toml:"settle-ms"`
	MaxFatigue        *int     `toml:"max-fatigue"`
}

// ClassifyConfig maps the training simulation.
type ClassifyConfig struct {
	MinSamples *int     `toml:"min-samples"`
	Noise      *float64 `toml:"noise"`
	DelayMs    *int     `toml:"delay-ms"`
}

// LLMConfig maps the narrative provider. API keys stay in the environment.
type LLMConfig struct {
	Provider  *string `toml:"provider"`
	Model     *string `toml:"model"`
	TimeoutMs *int    `toml:"timeout-ms"`
	Retries   *int    `toml:"retries"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undec[0].String())
	}
	return cfg, nil
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setMs(dst *time.Duration, v *int) {
	if v != nil {
		*dst = ms(*v)
	}
}

// ApplySession returns base with the file's session and attention overrides.
func (f FileConfig) ApplySession(base session.Config) (session.Config, error) {
	s := f.Session
	if s.Mode != nil {
		m, err := session.ParseMode(*s.Mode)
		if err != nil {
			return base, err
		}
		base.Mode = m
	}
	setInt(&base.VisualLength, s.VisualLength)
	setInt(&base.WorkingMemoryTrials, s.Trials)
	setInt(&base.PracticeTrials, s.PracticeTrials)
	setInt(&base.StartLength, s.StartLength)
	setInt(&base.MaxLength, s.MaxLength)
	setInt(&base.CorrectPerStep, s.CorrectPerStep)
	setMs(&base.VisualTiming.Base, s.VisualWindowMs)
	setMs(&base.BackwardTiming.Base, s.BaseWindowMs)
	setMs(&base.BackwardTiming.PerItem, s.PerDigitMs)
	setMs(&base.DrillTiming.PerItem, s.DrillPerDigitMs)
	setMs(&base.InterTrialDelay, s.InterTrialMs)
	setMs(&base.PhaseDelay, s.PhaseDelayMs)
	setFloat(&base.DrillVisualDefault, s.DrillVisual)
	setInt(&base.DrillFatigue, s.DrillFatigue)

	a := f.Attention
	setInt(&base.Attention.Length, a.Stimuli)
	setFloat(&base.Attention.TargetProbability, a.TargetProbability)
	setMs(&base.Attention.Tick, a.TickMs)
	setMs(&base.Attention.Settle, a.SettleMs)
	setInt(&base.Attention.MaxFatigue, a.MaxFatigue)

	if err := validateSession(base); err != nil {
		return base, err
	}
	return base, nil
}

// Working-memory sequences stay within 3-7 digits.
const (
	minSequence = 3
	maxSequence = 7
)

func validateSession(c session.Config) error {
	switch {
	case c.VisualLength < 1:
		return fmt.Errorf("visual-length must be positive")
	case c.StartLength < minSequence:
		return fmt.Errorf("start-length %d below %d", c.StartLength, minSequence)
	case c.MaxLength > maxSequence:
		return fmt.Errorf("max-length %d above %d", c.MaxLength, maxSequence)
	case c.MaxLength < c.StartLength:
		return fmt.Errorf("max-length %d below start-length %d", c.MaxLength, c.StartLength)
	case c.WorkingMemoryTrials < 1:
		return fmt.Errorf("trials must be positive")
	case c.PracticeTrials < 0:
		return fmt.Errorf("practice-trials must not be negative")
	case c.CorrectPerStep < 1:
		return fmt.Errorf("correct-per-step must be positive")
	case c.Attention.Length < 1:
		return fmt.Errorf("attention stimuli must be positive")
	case c.Attention.TargetProbability < 0 || c.Attention.TargetProbability > 1:
		return fmt.Errorf("target-probability %.2f outside 0-1", c.Attention.TargetProbability)
	case c.Attention.MaxFatigue < 1 || c.Attention.MaxFatigue > 5:
		return fmt.Errorf("max-fatigue %d outside 1-5", c.Attention.MaxFatigue)
	case c.DrillFatigue < 1 || c.DrillFatigue > 5:
		return fmt.Errorf("drill-fatigue %d outside 1-5", c.DrillFatigue)
	}
	return nil
}

// ApplyClassify returns base with the file's training overrides.
func (f FileConfig) ApplyClassify(base classify.Config) (classify.Config, error) {
	setInt(&base.MinSamples, f.Classify.MinSamples)
	setFloat(&base.Noise, f.Classify.Noise)
	setMs(&base.TrainingDelay, f.Classify.DelayMs)

	if err := validateClassify(base); err != nil {
		return base, err
	}
	return base, nil
}

func validateClassify(c classify.Config) error {
	floor := classify.DefaultConfig().MinSamples
	switch {
	case c.MinSamples < floor:
		return fmt.Errorf("min-samples %d below %d", c.MinSamples, floor)
	case c.Noise < 0 || c.Noise > 1:
		return fmt.Errorf("noise %.2f outside 0-1", c.Noise)
	case c.TrainingDelay < 0:
		return fmt.Errorf("delay-ms must not be negative")
	}
	return nil
}

// ApplyLLM returns base with the file's provider overrides. The model
// applies to whichever provider ends up selected.
func (f FileConfig) ApplyLLM(base llm.Config) llm.Config {
	if f.LLM.Provider != nil {
		base.Provider = *f.LLM.Provider
	}
	if f.LLM.Model != nil {
		base.SetModel(*f.LLM.Model)
	}
	setMs(&base.Timeout, f.LLM.TimeoutMs)
	setInt(&base.Retry.MaxAttempts, f.LLM.Retries)
	return base
}

// ResolveLLM applies the file's provider overrides and then the
// environment. A provider named in the file counts as configured.
func (f FileConfig) ResolveLLM(base llm.Config) (llm.Config, bool) {
	cfg := f.ApplyLLM(base)
	if f.LLM.Provider != nil {
		return llm.WithStandardKey(llm.ConfigFromEnv(cfg)), true
	}
	return llm.Resolve(cfg)
}
