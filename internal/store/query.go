package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder on top of the
// shared sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var builder = entsql.Dialect(dialect.SQLite)

// insert appends one row to table, assigning the next global sequence.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	cols := append([]string{"sequence", "timestamp"}, columns...)
	vals := append([]any{seqNum, now()}, values...)

	query, args := builder.Insert(table).Columns(cols...).Values(vals...).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first select over table honoring opts.
// withBlock controls whether opts.BlockID applies to this table.
func selectEvents(table string, columns []string, opts QueryOpts, withBlock bool) (string, []any) {
	cols := append([]string{"id", "sequence", "timestamp"}, columns...)
	sel := builder.Select(cols...).From(entsql.Table(table))

	var preds []*entsql.Predicate
	if withBlock && opts.BlockID != "" {
		preds = append(preds, entsql.EQ("block_id", opts.BlockID))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel.Query()
}

// BlockIDs merges the ids of both event tables. Completions reported by a
// host may name blocks that were never played locally.
func (r *eventRepo) BlockIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, table := range []string{attemptEventsTable, completionEventsTable} {
		query, args := builder.Select("block_id").Distinct().From(entsql.Table(table)).Query()
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("query block ids: %w", err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan block id: %w", err)
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("query block ids: %w", err)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *eventRepo) Purge(ctx context.Context) error {
	for _, t := range tables {
		query, args := builder.Delete(t.Name).Query()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("purge %s: %w", t.Name, err)
		}
	}
	return nil
}
