package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// EnvPrefix prefixes every environment variable read by ConfigFromEnv.
const EnvPrefix = "MEMORIZ_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for proxies and tests
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults. Narratives are short, so the small
// model of each provider is the default.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envBinding maps one variable suffix to a config field.
type envBinding struct {
	suffix string
	set    func(*Config, string)
}

var envBindings = []envBinding{
	{"LLM_PROVIDER", func(c *Config, v string) { c.Provider = strings.ToLower(v) }},
	{"ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
	// Generic overrides apply to whichever provider is selected.
	{"LLM_MODEL", func(c *Config, v string) { c.SetModel(v) }},
	{"LLM_API_KEY", func(c *Config, v string) { c.SetAPIKey(v) }},
}

// ConfigFromEnv overlays MEMORIZ_* environment variables on base.
func ConfigFromEnv(base Config) Config {
	cfg := base
	for _, b := range envBindings {
		if v := os.Getenv(EnvPrefix + b.suffix); v != "" {
			b.set(&cfg, v)
		}
	}
	return cfg
}

var standardKeys = map[string]string{
	ProviderAnthropic:  "ANTHROPIC_API_KEY",
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderGemini:     "GEMINI_API_KEY",
	ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// WithStandardKey fills a missing API key for the selected provider from
// the provider's standard variable, e.g. ANTHROPIC_API_KEY.
func WithStandardKey(c Config) Config {
	env, ok := standardKeys[c.Provider]
	if !ok {
		return c
	}
	if c.Validate() != nil {
		if k := os.Getenv(env); k != "" {
			c.SetAPIKey(k)
		}
	}
	return c
}

// DiscoverConfig probes the providers' standard API key variables in
// priority order and selects the first provider with a key.
func DiscoverConfig(base Config) (Config, bool) {
	cfg := base
	probes := []struct {
		env      string
		provider string
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic},
		{"OPENAI_API_KEY", ProviderOpenAI},
		{"GEMINI_API_KEY", ProviderGemini},
		{"OPENROUTER_API_KEY", ProviderOpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			cfg.SetAPIKey(k)
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve picks the effective configuration: an explicit
// MEMORIZ_LLM_PROVIDER wins, otherwise the first standard API key found.
// It reports false when no provider is configured.
func Resolve(base Config) (Config, bool) {
	if os.Getenv(EnvPrefix+"LLM_PROVIDER") != "" {
		return ConfigFromEnv(base), true
	}
	if cfg, ok := DiscoverConfig(base); ok {
		return ConfigFromEnv(cfg), true
	}
	return base, false
}

// SetModel sets the model of the selected provider.
func (c *Config) SetModel(m string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.Model = m
	case ProviderOpenAI:
		c.OpenAI.Model = m
	case ProviderGemini:
		c.Gemini.Model = m
	case ProviderOpenRouter:
		c.OpenRouter.Model = m
	}
}

// SetAPIKey sets the API key of the selected provider.
func (c *Config) SetAPIKey(k string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.APIKey = k
	case ProviderOpenAI:
		c.OpenAI.APIKey = k
	case ProviderGemini:
		c.Gemini.APIKey = k
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = k
	}
}

// Model returns the model of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", EnvPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
