package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	for _, name := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(name, "")
	}
	for _, b := range envBindings {
		t.Setenv(b.name, "")
	}
}

func TestConfigApplyEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GLOSSMATCH_LLM_PROVIDER", "openai")
	t.Setenv("GLOSSMATCH_OPENAI_API_KEY", "sk-test")
	t.Setenv("GLOSSMATCH_OPENAI_BASE_URL", "http://localhost:1234/v1")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, Credentials{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: "http://localhost:1234/v1"}, cfg.Credentials())
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfig(t *testing.T) {
	clearKeyEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)

	// Anthropic wins when several keys are present.
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"mock needs no key", func(c *Config) { c.Provider = ProviderMock }, ""},
		{"anthropic without key", func(c *Config) {}, "GLOSSMATCH_ANTHROPIC_API_KEY"},
		{"openrouter with key", func(c *Config) { c.Provider = ProviderOpenRouter; c.OpenRouter.APIKey = "k" }, ""},
		{"gemini without key", func(c *Config) { c.Provider = ProviderGemini }, "GLOSSMATCH_GEMINI_API_KEY"},
		{"unknown provider", func(c *Config) { c.Provider = "llama" }, "unknown LLM provider"},
		{"zero attempts", func(c *Config) { c.Anthropic.APIKey = "k"; c.Retry.MaxAttempts = 0 }, "max_attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
