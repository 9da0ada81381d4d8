package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/glossmatch/internal/store"
)

func TestUsageBy(t *testing.T) {
	events := []store.LLMEventRecord{
		{LLMRequestEventData: store.LLMRequestEventData{Model: "gpt-4o", Purpose: "catalog", InputTokens: 100, OutputTokens: 10, LatencyMs: 300}},
		{LLMRequestEventData: store.LLMRequestEventData{Model: "gemini-2.5-flash", Purpose: "catalog", InputTokens: 50, OutputTokens: 5, LatencyMs: 100}},
		{LLMRequestEventData: store.LLMRequestEventData{Model: "gpt-4o", Purpose: "catalog", InputTokens: 20, OutputTokens: 2, LatencyMs: 500}},
	}

	byModel := usageBy(events, func(e store.LLMEventRecord) string { return e.Model })
	assert.Equal(t, []usage{
		{Key: "gpt-4o", Calls: 2, InputTokens: 120, OutputTokens: 12, AvgLatencyMs: 400},
		{Key: "gemini-2.5-flash", Calls: 1, InputTokens: 50, OutputTokens: 5, AvgLatencyMs: 100},
	}, byModel)

	byPurpose := usageBy(events, func(e store.LLMEventRecord) string { return e.Purpose })
	assert.Len(t, byPurpose, 1)
	assert.Equal(t, 3, byPurpose[0].Calls)

	assert.Empty(t, usageBy(nil, func(e store.LLMEventRecord) string { return e.Model }))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "Disp", truncate("Dispositif", 4))
	assert.Equal(t, "éé", truncate("ééé", 2))
}
