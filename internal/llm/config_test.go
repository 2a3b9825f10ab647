package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, b := range envBindings {
		t.Setenv(EnvPrefix+b.suffix, "")
	}
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestResolve_NothingConfigured(t *testing.T) {
	clearLLMEnv(t)
	_, ok := Resolve(DefaultConfig())
	assert.False(t, ok)
}

func TestResolve_ExplicitProviderWins(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("MEMORIZ_LLM_PROVIDER", "OpenAI")
	t.Setenv("MEMORIZ_OPENAI_API_KEY", "sk-oai")
	t.Setenv("MEMORIZ_LLM_MODEL", "gpt-4.1-mini")

	cfg, ok := Resolve(DefaultConfig())
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-oai", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.Model())
	assert.NoError(t, cfg.Validate())
}

func TestResolve_DiscoversStandardKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, ok := Resolve(DefaultConfig())
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-flash", cfg.Model())
}

func TestValidate_MissingKeyNamesVariable(t *testing.T) {
	err := Config{Provider: ProviderOpenRouter}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEMORIZ_OPENROUTER_API_KEY")
}

func TestWithStandardKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg = WithStandardKey(cfg)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)

	cfg.Gemini.APIKey = "explicit"
	assert.Equal(t, "explicit", WithStandardKey(cfg).Gemini.APIKey)
}
