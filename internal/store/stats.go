package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) BlockStats(ctx context.Context, blockID string) (BlockStats, error) {
	stats := BlockStats{BlockID: blockID}

	attempts, err := r.QueryAttemptEvents(ctx, QueryOpts{BlockID: blockID})
	if err != nil {
		return stats, fmt.Errorf("block stats: %w", err)
	}
	sessions := make(map[string]bool)
	for _, a := range attempts {
		stats.Attempts++
		stats.Correct += a.Correct
		stats.Incorrect += a.Incorrect
		sessions[a.SessionID] = true
	}
	stats.Sessions = len(sessions)

	completions, err := r.QueryCompletionEvents(ctx, QueryOpts{BlockID: blockID})
	if err != nil {
		return stats, fmt.Errorf("block stats: %w", err)
	}
	total := 0
	for i, c := range completions {
		if i == 0 {
			// Newest first.
			stats.LastCompletedAt = c.Timestamp
		}
		stats.Completions++
		total += c.Attempts
		if stats.BestAttempts == 0 || c.Attempts < stats.BestAttempts {
			stats.BestAttempts = c.Attempts
		}
	}
	if stats.Completions > 0 {
		stats.AverageAttempts = float64(total) / float64(stats.Completions)
	}
	return stats, nil
}
