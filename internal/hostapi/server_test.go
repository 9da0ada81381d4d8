package hostapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/glossmatch/internal/store"
)

func newTestServer(t *testing.T, origins ...string) (*httptest.Server, store.EventRepo) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	srv := httptest.NewServer(New(s.EventRepo(), nil, origins).Handler())
	t.Cleanup(srv.Close)
	return srv, s.EventRepo()
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/api/blocks/completions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

const validCompletion = `{"type":"BLOCK_COMPLETION","blockId":"iso-13485-matching-game","completed":true,"score":6,"maxScore":6,"attempts":2}`

func TestCreateCompletionStoresEvent(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := post(t, srv.URL, validCompletion)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	got, err := repo.QueryCompletionEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, store.SourceHost, got[0].Source)
	assert.Equal(t, "iso-13485-matching-game", got[0].BlockID)
	assert.Equal(t, 2, got[0].Attempts)
}

func TestCreateCompletionRejectsBadPayloads(t *testing.T) {
	srv, repo := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"wrong type", `{"type":"OTHER","blockId":"b","completed":true,"score":1,"maxScore":1,"attempts":1}`},
		{"no block", `{"type":"BLOCK_COMPLETION","blockId":"","completed":true,"score":1,"maxScore":1,"attempts":1}`},
		{"not completed", `{"type":"BLOCK_COMPLETION","blockId":"b","completed":false,"score":1,"maxScore":1,"attempts":1}`},
		{"score above max", `{"type":"BLOCK_COMPLETION","blockId":"b","completed":true,"score":7,"maxScore":6,"attempts":1}`},
		{"zero attempts", `{"type":"BLOCK_COMPLETION","blockId":"b","completed":true,"score":6,"maxScore":6,"attempts":0}`},
		{"unknown field", `{"type":"BLOCK_COMPLETION","blockId":"b","completed":true,"score":6,"maxScore":6,"attempts":1,"extra":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}

	got, err := repo.QueryCompletionEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListCompletions(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.AppendCompletionEvent(ctx, store.CompletionEventData{BlockID: "a", Score: 2, MaxScore: 2, Attempts: i}))
	}
	require.NoError(t, repo.AppendCompletionEvent(ctx, store.CompletionEventData{BlockID: "b", Score: 2, MaxScore: 2, Attempts: 9}))

	var all []completionView
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/blocks/a/completions", &all))
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].Attempts, "newest first")
	assert.Equal(t, store.SourceLocal, all[0].Source)

	var limited []completionView
	getJSON(t, srv.URL+"/api/blocks/a/completions?limit=1", &limited)
	assert.Len(t, limited, 1)

	var bad map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/blocks/a/completions?limit=zero", &bad))

	var blocks []string
	getJSON(t, srv.URL+"/api/blocks", &blocks)
	assert.ElementsMatch(t, []string{"a", "b"}, blocks)
}

func TestBlockStatsEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, repo.AppendAttemptEvent(ctx, store.AttemptEventData{SessionID: "s", BlockID: "a", Attempt: 1, Correct: 1, Incorrect: 1}))
	require.NoError(t, repo.AppendAttemptEvent(ctx, store.AttemptEventData{SessionID: "s", BlockID: "a", Attempt: 2, Correct: 2, Completed: true}))
	require.NoError(t, repo.AppendCompletionEvent(ctx, store.CompletionEventData{SessionID: "s", BlockID: "a", Score: 2, MaxScore: 2, Attempts: 2}))

	var st statsView
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/blocks/a/stats", &st))
	assert.Equal(t, 1, st.Completions)
	assert.Equal(t, 2, st.BestAttempts)
	assert.Equal(t, 2, st.Attempts)
	assert.InDelta(t, 0.75, st.Accuracy, 1e-9)
	assert.NotNil(t, st.LastCompletedAt)

	var empty statsView
	getJSON(t, srv.URL+"/api/blocks/none/stats", &empty)
	assert.Equal(t, 0, empty.Completions)
	assert.Nil(t, empty.LastCompletedAt)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, "https://host.example")

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/blocks/completions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://host.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://host.example", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

type failingRepo struct {
	store.EventRepo
}

func (failingRepo) AppendCompletionEvent(context.Context, store.CompletionEventData) error {
	return errors.New("disk full")
}

func TestCreateCompletionStoreFailure(t *testing.T) {
	srv := httptest.NewServer(New(failingRepo{}, nil, nil).Handler())
	defer srv.Close()

	resp := post(t, srv.URL, validCompletion)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(failingRepo{}, nil, nil).Serve(ctx, ln) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/healthz")
		return err == nil
	}, time.Second, 10*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
