package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProviderOrDiscover(t *testing.T) {
	t.Run("explicit config wins", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "a-key")
		cfg := DefaultConfig()
		cfg.Provider = ProviderMock

		p, err := NewProviderOrDiscover(context.Background(), cfg, nil, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "mock", p.ModelID())
	})

	t.Run("falls back to a standard key", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg := DefaultConfig()
		cfg.Timeout = 7 * time.Second

		p, err := NewProviderOrDiscover(context.Background(), cfg, nil, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", p.ModelID())
		tp, ok := p.(*timeoutProvider)
		require.True(t, ok)
		assert.Equal(t, 7*time.Second, tp.timeout)
	})

	t.Run("nothing configured", func(t *testing.T) {
		clearKeyEnv(t)
		_, err := NewProviderOrDiscover(context.Background(), DefaultConfig(), nil, zap.NewNop())
		assert.Error(t, err)
	})
}
