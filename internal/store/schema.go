package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	attemptEventsTable    = "attempt_events"
	completionEventsTable = "completion_events"
	llmRequestEventsTable = "llm_request_events"
)

// eventColumns returns the columns every event table starts with: an
// auto-increment id, the global sequence and a timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	base := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, extra...)
}

var (
	attemptEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "block_id", Type: field.TypeString},
		&schema.Column{Name: "attempt", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeInt},
		&schema.Column{Name: "incorrect", Type: field.TypeInt},
		&schema.Column{Name: "completed", Type: field.TypeBool},
		&schema.Column{Name: "matches", Type: field.TypeJSON, Nullable: true},
	)
	attemptEvents = &schema.Table{
		Name:       attemptEventsTable,
		Columns:    attemptEventsColumns,
		PrimaryKey: []*schema.Column{attemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attemptevent_timestamp", Columns: []*schema.Column{attemptEventsColumns[2]}},
			{Name: "attemptevent_session_id", Columns: []*schema.Column{attemptEventsColumns[3]}},
			{Name: "attemptevent_block_id", Columns: []*schema.Column{attemptEventsColumns[4]}},
		},
	}

	completionEventsColumns = eventColumns(
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "session_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "block_id", Type: field.TypeString},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "max_score", Type: field.TypeInt},
		&schema.Column{Name: "attempts", Type: field.TypeInt},
	)
	completionEvents = &schema.Table{
		Name:       completionEventsTable,
		Columns:    completionEventsColumns,
		PrimaryKey: []*schema.Column{completionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "completionevent_timestamp", Columns: []*schema.Column{completionEventsColumns[2]}},
			{Name: "completionevent_block_id", Columns: []*schema.Column{completionEventsColumns[5]}},
		},
	}

	llmRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmRequestEvents = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmRequestEventsColumns[9]}},
		},
	}

	tables = []*schema.Table{attemptEvents, completionEvents, llmRequestEvents}
)
