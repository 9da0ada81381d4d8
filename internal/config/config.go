// Package config loads glossmatch settings from a YAML file, an optional
// .env file and GLOSSMATCH_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/glossmatch/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	// DBPath is the history database. Empty means store.DefaultDBPath().
	DBPath string `yaml:"db_path"`

	// Catalog is a catalog file to play instead of the bundled one.
	Catalog string `yaml:"catalog"`

	Log    LogConfig    `yaml:"log"`
	Notify NotifyConfig `yaml:"notify"`
	Serve  ServeConfig  `yaml:"serve"`
	LLM    llm.Config   `yaml:"llm"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives interactive-mode logs. Empty means DefaultLogPath().
	File string `yaml:"file"`
}

// NotifyConfig controls where completion events go besides local history.
type NotifyConfig struct {
	WebhookURL string            `yaml:"webhook_url"`
	Headers    map[string]string `yaml:"headers"`
	Timeout    time.Duration     `yaml:"timeout"`
}

// ServeConfig controls the host receiver.
type ServeConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Notify: NotifyConfig{Timeout: 5 * time.Second},
		Serve:  ServeConfig{Addr: "127.0.0.1:8787"},
		LLM:    llm.DefaultConfig(),
	}
}

// DefaultPath returns GLOSSMATCH_CONFIG if set, otherwise
// $XDG_CONFIG_HOME/glossmatch/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("GLOSSMATCH_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "glossmatch", "config.yaml")
}

// DefaultLogPath returns $XDG_STATE_HOME/glossmatch/glossmatch.log.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "glossmatch.log"
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "glossmatch", "glossmatch.log")
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads path (a missing file yields the defaults), applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	set := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	set("GLOSSMATCH_DB", &c.DBPath)
	set("GLOSSMATCH_CATALOG", &c.Catalog)
	set("GLOSSMATCH_LOG_LEVEL", &c.Log.Level)
	set("GLOSSMATCH_LOG_FILE", &c.Log.File)
	set("GLOSSMATCH_WEBHOOK_URL", &c.Notify.WebhookURL)
	set("GLOSSMATCH_ADDR", &c.Serve.Addr)
	if v := os.Getenv("GLOSSMATCH_ALLOWED_ORIGINS"); v != "" {
		c.Serve.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Serve.AllowedOrigins = append(c.Serve.AllowedOrigins, o)
			}
		}
	}
	c.LLM.ApplyEnv()
}

// Validate checks the settings that do not depend on optional features.
// LLM credentials are checked only when a command needs a provider.
func (c Config) Validate() error {
	var problems []string
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %v", err))
	}
	if c.Notify.WebhookURL != "" {
		u, err := url.Parse(c.Notify.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, fmt.Sprintf("notify.webhook_url: %q is not an http(s) URL", c.Notify.WebhookURL))
		}
	}
	if c.Notify.Timeout < 0 {
		problems = append(problems, "notify.timeout must not be negative")
	}
	if c.Serve.Addr == "" {
		problems = append(problems, "serve.addr is required")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
