package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	BlockID string    // only events for this block (attempt and completion events)
}

// Completion sources.
const (
	SourceLocal = "local" // recorded by the quiz itself
	SourceHost  = "host"  // received by the host receiver
)

// MatchPair is the persisted form of one term/definition pairing.
type MatchPair struct {
	TermID       string `json:"term_id"`
	DefinitionID string `json:"definition_id"`
}

// AttemptEventData captures one scored submission.
type AttemptEventData struct {
	SessionID string
	BlockID   string
	Attempt   int
	Correct   int
	Incorrect int
	Completed bool
	Matches   []MatchPair
}

// AttemptEventRecord is a stored attempt event.
type AttemptEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// CompletionEventData captures one BLOCK_COMPLETION notification.
type CompletionEventData struct {
	Source    string
	SessionID string
	BlockID   string
	Score     int
	MaxScore  int
	Attempts  int
}

// CompletionEventRecord is a stored completion event.
type CompletionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	CompletionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// BlockStats summarizes the history of one block.
type BlockStats struct {
	BlockID         string
	Attempts        int
	Sessions        int
	Correct         int
	Incorrect       int
	Completions     int
	BestAttempts    int     // fewest attempts over all completions (0 = none)
	AverageAttempts float64 // mean attempts per completion
	LastCompletedAt time.Time
}

// Accuracy returns the share of correct matches over all attempts.
func (b BlockStats) Accuracy() float64 {
	total := b.Correct + b.Incorrect
	if total == 0 {
		return 0
	}
	return float64(b.Correct) / float64(total)
}

// EventRepo provides append and query access to history events.
type EventRepo interface {
	// AppendAttemptEvent records a scored submission.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// AppendCompletionEvent records a completion notification.
	AppendCompletionEvent(ctx context.Context, data CompletionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAttemptEvents returns attempt events, newest first.
	QueryAttemptEvents(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error)

	// QueryCompletionEvents returns completion events, newest first.
	QueryCompletionEvents(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single LLM event by ID, or nil if missing.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// BlockIDs lists every block that has history.
	BlockIDs(ctx context.Context) ([]string, error)

	// BlockStats summarizes attempts and completions for a block.
	BlockStats(ctx context.Context, blockID string) (BlockStats, error)

	// Purge deletes all recorded events.
	Purge(ctx context.Context) error
}
