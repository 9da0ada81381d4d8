package store

import (
	"context"
	"encoding/json"
	"fmt"
)

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	matches, err := json.Marshal(data.Matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}

	err = r.insert(ctx, attemptEventsTable,
		[]string{"session_id", "block_id", "attempt", "correct", "incorrect", "completed", "matches"},
		[]any{data.SessionID, data.BlockID, data.Attempt, data.Correct, data.Incorrect, data.Completed, string(matches)},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttemptEvents(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error) {
	query, args := selectEvents(attemptEventsTable,
		[]string{"session_id", "block_id", "attempt", "correct", "incorrect", "completed", "matches"},
		opts, true)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEventRecord
	for rows.Next() {
		var (
			rec     AttemptEventRecord
			matches []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.BlockID, &rec.Attempt, &rec.Correct, &rec.Incorrect,
			&rec.Completed, &matches); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		if len(matches) > 0 {
			if err := json.Unmarshal(matches, &rec.Matches); err != nil {
				return nil, fmt.Errorf("decode matches for attempt %d: %w", rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	return out, nil
}
