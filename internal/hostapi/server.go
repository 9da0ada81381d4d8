// Package hostapi is the HTTP receiver a host page runs to collect block
// completion events.
package hostapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/matching"
	"github.com/abhisek/glossmatch/internal/store"
)

const (
	defaultLimit = 20
	maxLimit     = 200
	maxBodyBytes = 16 << 10
)

// Server serves the completion API over an EventRepo.
type Server struct {
	repo    store.EventRepo
	log     *zap.Logger
	origins []string
}

// New returns a Server. origins lists the CORS origins allowed to post;
// empty means any origin.
func New(repo store.EventRepo, log *zap.Logger, origins []string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{repo: repo, log: log, origins: origins}
}

// Handler returns the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/blocks/completions", s.createCompletion)
	mux.HandleFunc("GET /api/blocks", s.listBlocks)
	mux.HandleFunc("GET /api/blocks/{blockID}/completions", s.listCompletions)
	mux.HandleFunc("GET /api/blocks/{blockID}/stats", s.blockStats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
		MaxAge:         86400,
	})
	return c.Handler(s.logRequests(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("host receiver listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) createCompletion(w http.ResponseWriter, r *http.Request) {
	var ev matching.CompletionEvent
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if msg := checkCompletion(ev); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	data := store.CompletionEventData{
		Source:   store.SourceHost,
		BlockID:  ev.BlockID,
		Score:    ev.Score,
		MaxScore: ev.MaxScore,
		Attempts: ev.Attempts,
	}
	if err := s.repo.AppendCompletionEvent(r.Context(), data); err != nil {
		s.log.Error("store completion", zap.String("block_id", ev.BlockID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store completion")
		return
	}
	s.log.Info("completion received",
		zap.String("block_id", ev.BlockID),
		zap.Int("score", ev.Score),
		zap.Int("max_score", ev.MaxScore),
		zap.Int("attempts", ev.Attempts))
	writeJSON(w, http.StatusCreated, ev)
}

// checkCompletion returns a client-facing reason the event is unacceptable,
// or "".
func checkCompletion(ev matching.CompletionEvent) string {
	switch {
	case ev.Type != matching.CompletionEventType:
		return "type must be " + matching.CompletionEventType
	case ev.BlockID == "":
		return "blockId is required"
	case !ev.Completed:
		return "completed must be true"
	case ev.MaxScore < 1:
		return "maxScore must be positive"
	case ev.Score < 0 || ev.Score > ev.MaxScore:
		return "score must be between 0 and maxScore"
	case ev.Attempts < 1:
		return "attempts must be at least 1"
	}
	return ""
}

type completionView struct {
	ID        int       `json:"id"`
	Source    string    `json:"source"`
	BlockID   string    `json:"blockId"`
	Score     int       `json:"score"`
	MaxScore  int       `json:"maxScore"`
	Attempts  int       `json:"attempts"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) listCompletions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, err := s.repo.QueryCompletionEvents(r.Context(), store.QueryOpts{
		BlockID: r.PathValue("blockID"),
		Limit:   limit,
	})
	if err != nil {
		s.log.Error("query completions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load completions")
		return
	}

	out := make([]completionView, len(recs))
	for i, rec := range recs {
		out[i] = completionView{
			ID:        rec.ID,
			Source:    rec.Source,
			BlockID:   rec.BlockID,
			Score:     rec.Score,
			MaxScore:  rec.MaxScore,
			Attempts:  rec.Attempts,
			Timestamp: rec.Timestamp,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type statsView struct {
	BlockID         string     `json:"blockId"`
	Completions     int        `json:"completions"`
	BestAttempts    int        `json:"bestAttempts"`
	AverageAttempts float64    `json:"averageAttempts"`
	Attempts        int        `json:"attemptEvents"`
	Sessions        int        `json:"sessions"`
	Correct         int        `json:"correct"`
	Incorrect       int        `json:"incorrect"`
	Accuracy        float64    `json:"accuracy"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
}

func (s *Server) blockStats(w http.ResponseWriter, r *http.Request) {
	blockID := r.PathValue("blockID")
	st, err := s.repo.BlockStats(r.Context(), blockID)
	if err != nil {
		s.log.Error("block stats", zap.String("block_id", blockID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	view := statsView{
		BlockID:         blockID,
		Completions:     st.Completions,
		BestAttempts:    st.BestAttempts,
		AverageAttempts: st.AverageAttempts,
		Attempts:        st.Attempts,
		Sessions:        st.Sessions,
		Correct:         st.Correct,
		Incorrect:       st.Incorrect,
		Accuracy:        st.Accuracy(),
	}
	if !st.LastCompletedAt.IsZero() {
		view.LastCompletedAt = &st.LastCompletedAt
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) listBlocks(w http.ResponseWriter, r *http.Request) {
	ids, err := s.repo.BlockIDs(r.Context())
	if err != nil {
		s.log.Error("list blocks", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list blocks")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
