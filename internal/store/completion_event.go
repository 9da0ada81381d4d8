package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendCompletionEvent(ctx context.Context, data CompletionEventData) error {
	source := data.Source
	if source == "" {
		source = SourceLocal
	}

	err := r.insert(ctx, completionEventsTable,
		[]string{"source", "session_id", "block_id", "score", "max_score", "attempts"},
		[]any{source, data.SessionID, data.BlockID, data.Score, data.MaxScore, data.Attempts},
	)
	if err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryCompletionEvents(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error) {
	query, args := selectEvents(completionEventsTable,
		[]string{"source", "session_id", "block_id", "score", "max_score", "attempts"},
		opts, true)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var out []CompletionEventRecord
	for rows.Next() {
		var rec CompletionEventRecord
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.Source, &rec.SessionID, &rec.BlockID, &rec.Score, &rec.MaxScore, &rec.Attempts); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	return out, nil
}
