package matching

// CompletionEventType is the message type hosts listen for.
const CompletionEventType = "BLOCK_COMPLETION"

// CompletionEvent is emitted once per perfect submission.
type CompletionEvent struct {
	Type      string `json:"type"`
	BlockID   string `json:"blockId"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`
	MaxScore  int    `json:"maxScore"`
	Attempts  int    `json:"attempts"`
}

// Notifier receives completion events. Delivery is fire-and-forget: the
// game never waits for or inspects the outcome.
type Notifier interface {
	NotifyCompletion(ev CompletionEvent)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ev CompletionEvent)

func (f NotifierFunc) NotifyCompletion(ev CompletionEvent) { f(ev) }

type nopNotifier struct{}

func (nopNotifier) NotifyCompletion(CompletionEvent) {}
