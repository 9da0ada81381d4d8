package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/glossmatch/internal/llm"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"GLOSSMATCH_CONFIG", "GLOSSMATCH_DB", "GLOSSMATCH_CATALOG", "GLOSSMATCH_LOG_LEVEL",
		"GLOSSMATCH_LOG_FILE", "GLOSSMATCH_WEBHOOK_URL", "GLOSSMATCH_ADDR",
		"GLOSSMATCH_ALLOWED_ORIGINS", "GLOSSMATCH_LLM_PROVIDER",
		"GLOSSMATCH_ANTHROPIC_API_KEY", "GLOSSMATCH_ANTHROPIC_MODEL",
		"GLOSSMATCH_OPENAI_API_KEY", "GLOSSMATCH_OPENAI_MODEL", "GLOSSMATCH_OPENAI_BASE_URL",
		"GLOSSMATCH_OPENROUTER_API_KEY", "GLOSSMATCH_OPENROUTER_MODEL",
		"GLOSSMATCH_GEMINI_API_KEY", "GLOSSMATCH_GEMINI_MODEL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/history.db
catalog: ./capitals.yaml
log:
  level: debug
notify:
  webhook_url: https://lms.example/api/blocks/completions
  timeout: 2s
  headers:
    X-Block-Host: lms
serve:
  addr: ":9000"
llm:
  provider: gemini
  gemini:
    api_key: from-file
`), 0o644))

	t.Setenv("GLOSSMATCH_ADDR", "127.0.0.1:9999")
	t.Setenv("GLOSSMATCH_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/history.db", cfg.DBPath)
	assert.Equal(t, "./capitals.yaml", cfg.Catalog)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "lms", cfg.Notify.Headers["X-Block-Host"])
	assert.Equal(t, "127.0.0.1:9999", cfg.Serve.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Serve.AllowedOrigins)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "from-file", cfg.LLM.Gemini.APIKey)
	// Untouched nested defaults survive a partial llm section.
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "log: [oops"},
		{"bad level", "log:\n  level: loud"},
		{"bad webhook", "notify:\n  webhook_url: ftp://x"},
		{"empty addr", "serve:\n  addr: ''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("GLOSSMATCH_CATALOG=from-dotenv.yaml\nGLOSSMATCH_DB=ignored.db\n"), 0o644))
	t.Setenv("GLOSSMATCH_DB", "already-set.db")

	// godotenv only sets variables that are absent, so drop the cleared one.
	os.Unsetenv("GLOSSMATCH_CATALOG")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envPath))
	assert.Equal(t, "from-dotenv.yaml", os.Getenv("GLOSSMATCH_CATALOG"))
	assert.Equal(t, "already-set.db", os.Getenv("GLOSSMATCH_DB"))
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/glossmatch/config.yaml", DefaultPath())

	t.Setenv("GLOSSMATCH_CONFIG", "/etc/gm.yaml")
	assert.Equal(t, "/etc/gm.yaml", DefaultPath())

	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, "/state/glossmatch/glossmatch.log", DefaultLogPath())
}
