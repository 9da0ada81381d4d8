package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/store"
)

// LogSink writes each event as a structured log line.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Name() string { return "log" }

func (s LogSink) Deliver(_ context.Context, ev matching.CompletionEvent) error {
	s.Log.Info("block completed",
		zap.String("type", ev.Type),
		zap.String("block_id", ev.BlockID),
		zap.Int("score", ev.Score),
		zap.Int("max_score", ev.MaxScore),
		zap.Int("attempts", ev.Attempts))
	return nil
}

// StoreSink records each event in the local history, tagged with the
// session id the Broadcaster captured when the event was emitted.
type StoreSink struct {
	Repo store.EventRepo
}

func (s StoreSink) Name() string { return "store" }

func (s StoreSink) Deliver(ctx context.Context, ev matching.CompletionEvent) error {
	data := store.CompletionEventData{
		BlockID:   ev.BlockID,
		Score:     ev.Score,
		MaxScore:  ev.MaxScore,
		Attempts:  ev.Attempts,
		Source:    store.SourceLocal,
		SessionID: SessionFromContext(ctx),
	}
	return s.Repo.AppendCompletionEvent(ctx, data)
}

// WebhookSink POSTs the event JSON to a host URL.
type WebhookSink struct {
	URL    string
	Client *http.Client
	Header http.Header
}

// NewWebhookSink returns a sink posting to url with http.DefaultClient.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{URL: url, Client: http.DefaultClient}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Deliver(ctx context.Context, ev matching.CompletionEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, vs := range s.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post to %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post to %s: unexpected status %s", s.URL, resp.Status)
	}
	return nil
}

// SessionRef holds the id of the quiz session currently on screen. The UI
// sets it on every (re)start and the Broadcaster reads it on emit.
type SessionRef struct {
	id atomic.Value
}

// Set records the current session id.
func (r *SessionRef) Set(id string) { r.id.Store(id) }

// Get returns the current session id, or "".
func (r *SessionRef) Get() string {
	id, _ := r.id.Load().(string)
	return id
}
