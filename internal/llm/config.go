package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config selects and configures a provider.
type Config struct {
	Provider string `yaml:"provider"`

	Anthropic  Credentials `yaml:"anthropic"`
	OpenAI     Credentials `yaml:"openai"`
	OpenRouter Credentials `yaml:"openrouter"`
	Gemini     Credentials `yaml:"gemini"`

	Retry RetryConfig `yaml:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// Credentials are the per-provider settings. BaseURL is only honoured by
// the OpenAI-compatible providers.
type Credentials struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// RetryConfig controls backoff between attempts.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns the built-in defaults. No API keys are set.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  Credentials{Model: "claude-haiku"},
		OpenAI:     Credentials{Model: "gpt-4o-mini"},
		OpenRouter: Credentials{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Gemini:     Credentials{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// envBinding ties an environment variable to a Config field.
type envBinding struct {
	name string
	set  func(*Config, string)
}

var envBindings = []envBinding{
	{"GLOSSMATCH_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"GLOSSMATCH_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"GLOSSMATCH_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"GLOSSMATCH_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"GLOSSMATCH_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"GLOSSMATCH_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"GLOSSMATCH_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"GLOSSMATCH_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
	{"GLOSSMATCH_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"GLOSSMATCH_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
}

// ApplyEnv overrides cfg with any GLOSSMATCH_* variables that are set.
func (c *Config) ApplyEnv() {
	for _, b := range envBindings {
		if v := os.Getenv(b.name); v != "" {
			b.set(c, v)
		}
	}
}

// DiscoverConfig looks for the providers' own key variables
// (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY)
// and selects the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		creds    *Credentials
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI},
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter},
	}
	for _, p := range candidates {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			p.creds.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Credentials returns the settings of the selected provider.
func (c Config) Credentials() Credentials {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderOpenRouter:
		return c.OpenRouter
	case ProviderGemini:
		return c.Gemini
	}
	return Credentials{}
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.Credentials().APIKey == "" {
			return fmt.Errorf("no API key for the %s provider (set %s)", c.Provider, keyEnv(c.Provider))
		}
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

func keyEnv(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "GLOSSMATCH_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "GLOSSMATCH_OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "GLOSSMATCH_OPENROUTER_API_KEY"
	case ProviderGemini:
		return "GLOSSMATCH_GEMINI_API_KEY"
	}
	return ""
}
