// Package notify delivers quiz completion events to interested parties.
//
// Delivery is fire-and-forget: the quiz never waits on a sink, a failed
// delivery is logged and dropped, and nothing is retried.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/glossmatch/internal/matching"
)

// DefaultTimeout bounds a single delivery.
const DefaultTimeout = 5 * time.Second

// Sink receives completion events.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev matching.CompletionEvent) error
}

// Broadcaster fans each event out to every sink on background goroutines.
// It implements matching.Notifier.
type Broadcaster struct {
	sinks   []Sink
	log     *zap.Logger
	timeout time.Duration
	session func() string

	wg sync.WaitGroup
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithLogger sets the logger used for delivery failures.
func WithLogger(l *zap.Logger) Option {
	return func(b *Broadcaster) {
		if l != nil {
			b.log = l
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(b *Broadcaster) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithSessionID sets the function that names the session an event belongs
// to. It is called when the event is emitted, not when it is delivered.
func WithSessionID(fn func() string) Option {
	return func(b *Broadcaster) {
		b.session = fn
	}
}

type sessionKey struct{}

// SessionFromContext returns the session id attached by the Broadcaster.
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// NewBroadcaster returns a Broadcaster over sinks. Nil sinks are skipped.
func NewBroadcaster(sinks []Sink, opts ...Option) *Broadcaster {
	b := &Broadcaster{log: zap.NewNop(), timeout: DefaultTimeout}
	for _, s := range sinks {
		if s != nil {
			b.sinks = append(b.sinks, s)
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NotifyCompletion starts delivery and returns immediately.
func (b *Broadcaster) NotifyCompletion(ev matching.CompletionEvent) {
	if len(b.sinks) == 0 {
		return
	}
	var session string
	if b.session != nil {
		session = b.session()
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.deliver(session, ev)
	}()
}

func (b *Broadcaster) deliver(session string, ev matching.CompletionEvent) {
	ctx := context.WithValue(context.Background(), sessionKey{}, session)
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	// A plain Group, not WithContext: one failing sink must not cancel
	// the others.
	var g errgroup.Group
	for _, s := range b.sinks {
		g.Go(func() error {
			if err := s.Deliver(ctx, ev); err != nil {
				b.log.Warn("completion delivery failed",
					zap.String("sink", s.Name()),
					zap.String("block_id", ev.BlockID),
					zap.Error(err))
				return err
			}
			b.log.Debug("completion delivered",
				zap.String("sink", s.Name()),
				zap.String("block_id", ev.BlockID))
			return nil
		})
	}
	_ = g.Wait()
}

// Wait blocks until every delivery started so far has finished.
func (b *Broadcaster) Wait() {
	b.wg.Wait()
}

// Sinks returns the names of the configured sinks.
func (b *Broadcaster) Sinks() []string {
	names := make([]string, len(b.sinks))
	for i, s := range b.sinks {
		names[i] = s.Name()
	}
	return names
}
