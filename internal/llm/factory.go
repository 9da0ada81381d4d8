package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/store"
)

// NewProvider builds the configured provider and wraps it so that every
// call is bounded by cfg.Timeout, retried, and recorded:
//
//	caller -> timeout -> retry -> recording -> provider
//
// repo may be nil, in which case nothing is recorded.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	creds := cfg.Credentials()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(creds)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(creds)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(creds)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, creds)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	p := WithRecording(base, cfg.Provider, repo, log)
	p = WithRetry(p, cfg.Retry, log)
	return withTimeout(p, cfg.Timeout), nil
}

// NewProviderOrDiscover is NewProvider, except that when cfg names no usable
// provider it falls back to whichever standard API key is set. The retry and
// timeout settings of cfg are kept either way.
func NewProviderOrDiscover(ctx context.Context, cfg Config, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	if cfg.Validate() != nil {
		if found, ok := DiscoverConfig(); ok {
			found.Retry = cfg.Retry
			found.Timeout = cfg.Timeout
			cfg = found
		}
	}
	return NewProvider(ctx, cfg, repo, log)
}

type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func withTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{Provider: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}
