package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/llm"
	"github.com/abhisek/memoriz/internal/session"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Session.Trials)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	p := writeFile(t, "config.toml", "[session]\ntrails = 4\n")
	_, err := LoadConfig(p)
	assert.ErrorContains(t, err, "session.trails")
}

func TestApplySession(t *testing.T) {
	p := writeFile(t, "config.toml", `
[session]
mode = "drill"
trials = 6
max-length = 5
per-digit-ms = 750
inter-trial-ms = 0

[attention]
stimuli = 30
tick-ms = 1000
`)
	fc, err := LoadConfig(p)
	require.NoError(t, err)

	cfg, err := fc.ApplySession(session.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, session.ModeWorkingMemory, cfg.Mode)
	assert.Equal(t, 6, cfg.WorkingMemoryTrials)
	assert.Equal(t, 5, cfg.MaxLength)
	assert.Equal(t, 750*time.Millisecond, cfg.BackwardTiming.PerItem)
	assert.Equal(t, 2*time.Second, cfg.BackwardTiming.Base, "untouched")
	assert.Equal(t, time.Duration(0), cfg.InterTrialDelay)
	assert.Equal(t, 30, cfg.Attention.Length)
	assert.Equal(t, time.Second, cfg.Attention.Tick)
	assert.Equal(t, 0.3, cfg.Attention.TargetProbability)
}

func TestApplySessionRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"mode", "[session]\nmode = \"sprint\"\n"},
		{"max below start", "[session]\nmax-length = 2\n"},
		{"start below floor", "[session]\nstart-length = 2\n"},
		{"max above ceiling", "[session]\nmax-length = 8\n"},
		{"probability", "[attention]\ntarget-probability = 1.5\n"},
		{"fatigue", "[session]\ndrill-fatigue = 9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := LoadConfig(writeFile(t, "config.toml", tt.body))
			require.NoError(t, err)
			_, err = fc.ApplySession(session.DefaultConfig())
			assert.Error(t, err)
		})
	}
}

func TestApplyClassify(t *testing.T) {
	fc, err := LoadConfig(writeFile(t, "config.toml", "[classify]\nnoise = 0\ndelay-ms = 10\n"))
	require.NoError(t, err)
	cfg, err := fc.ApplyClassify(classify.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Noise)
	assert.Equal(t, 10*time.Millisecond, cfg.TrainingDelay)
	assert.Equal(t, 10, cfg.MinSamples)
}

func TestApplyClassifyRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"min samples", "[classify]\nmin-samples = 0\n", "min-samples 0 below 10"},
		{"negative noise", "[classify]\nnoise = -0.1\n", "noise"},
		{"noise above one", "[classify]\nnoise = 1.5\n", "noise"},
		{"delay", "[classify]\ndelay-ms = -5\n", "delay-ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := LoadConfig(writeFile(t, "config.toml", tt.body))
			require.NoError(t, err)
			_, err = fc.ApplyClassify(classify.DefaultConfig())
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestApplyClassifyAcceptsRaisedMinimum(t *testing.T) {
	fc, err := LoadConfig(writeFile(t, "config.toml", "[classify]\nmin-samples = 25\nnoise = 1\n"))
	require.NoError(t, err)
	cfg, err := fc.ApplyClassify(classify.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MinSamples)
	assert.Equal(t, 1.0, cfg.Noise)
}

func TestResolveLLMFromFile(t *testing.T) {
	t.Setenv("MEMORIZ_LLM_PROVIDER", "")
	t.Setenv("MEMORIZ_LLM_MODEL", "")
	t.Setenv("MEMORIZ_LLM_API_KEY", "")
	t.Setenv("MEMORIZ_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	fc, err := LoadConfig(writeFile(t, "config.toml", "[llm]\nprovider = \"openai\"\nmodel = \"gpt-4o\"\n"))
	require.NoError(t, err)

	cfg, ok := fc.ResolveLLM(llm.DefaultConfig())
	require.True(t, ok)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model())
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MEMORIZ_TEST_PRESET", "kept")
	p := writeFile(t, ".env", "MEMORIZ_TEST_LOADED=yes\nMEMORIZ_TEST_PRESET=overwritten\n")

	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env"), p))
	t.Cleanup(func() { os.Unsetenv("MEMORIZ_TEST_LOADED") })

	assert.Equal(t, "yes", os.Getenv("MEMORIZ_TEST_LOADED"))
	assert.Equal(t, "kept", os.Getenv("MEMORIZ_TEST_PRESET"))
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/memoriz/config.toml", DefaultConfigPath())
}
