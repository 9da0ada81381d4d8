package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderReplaysInOrder(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)
	ctx := context.Background()

	first, err := m.Generate(ctx, Request{Messages: []Message{UserMessage("one")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)

	second, err := m.Generate(ctx, Request{Messages: []Message{UserMessage("two")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(second.Content))

	_, err = m.Generate(ctx, Request{})
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)

	calls := m.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "two", calls[1].Messages[0].Content)
	assert.Equal(t, "mock", m.ModelID())
}

func TestMockProviderReturnsQueuedError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(MockResponse{Err: boom})
	_, err := m.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestMockProviderValidatesSchema(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`{"name":"x"}`)})
	_, err := m.Generate(context.Background(), Request{Schema: personSchema()})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestPurposeContext(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "catalog", PurposeFrom(WithPurpose(context.Background(), "catalog")))
}

func TestPriceCost(t *testing.T) {
	p, ok := PriceFor("gpt-4o-mini")
	require.True(t, ok)
	assert.InDelta(t, 0.15+0.6, p.Cost(1_000_000, 1_000_000), 1e-9)

	_, ok = PriceFor("no-such-model")
	assert.False(t, ok)
}
