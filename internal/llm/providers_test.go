package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func catalogLikeSchema() *Schema {
	return &Schema{
		Name: "test-pairs",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pairs": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required":             []any{"pairs"},
			"additionalProperties": false,
		},
	}
}

func newAnthropicAgainst(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(Credentials{APIKey: "test", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	return p
}

func TestAnthropicProviderGenerate(t *testing.T) {
	var body map[string]any
	p := newAnthropicAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/messages"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"content":     []map[string]any{{"type": "text", "text": `{"pairs":["a","b"]}`}},
			"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "be terse",
		Messages:  []Message{UserMessage("go")},
		Schema:    catalogLikeSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pairs":["a","b"]}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 12, TotalTokens: 52}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())
}

func TestAnthropicProviderErrors(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusTooManyRequests, func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{http.StatusInternalServerError, func(t *testing.T, err error) {
			var unavailable *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavailable)
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newAnthropicAgainst(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"nope"}}`))
			})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{UserMessage("go")}, MaxTokens: 10})
			tt.check(t, err)
		})
	}
}

func newOpenAIServer(t *testing.T, content, finish string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   body["model"],
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": finish}},
			"usage":   map[string]any{"prompt_tokens": 20, "completion_tokens": 8, "total_tokens": 28},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &body
}

func TestOpenAIProviderGenerate(t *testing.T) {
	srv, body := newOpenAIServer(t, `{"pairs":["x"]}`, "stop")
	p, err := NewOpenAIProvider(Credentials{APIKey: "sk-test", Model: "gpt-mini", BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{UserMessage("hi")},
		Schema:   catalogLikeSchema(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pairs":["x"]}`, string(resp.Content))
	assert.Equal(t, 28, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-4o-mini", (*body)["model"])

	msgs := (*body)["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])

	format := (*body)["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIProviderTruncated(t *testing.T) {
	srv, _ := newOpenAIServer(t, `{"pairs":[`, "length")
	p, err := NewOpenAIProvider(Credentials{APIKey: "sk-test", Model: "gpt-4o", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Messages: []Message{UserMessage("hi")}})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(Credentials{Model: "meta-llama/llama-3-8b"})
	assert.Error(t, err)

	srv, body := newOpenAIServer(t, `{"pairs":[]}`, "stop")
	p, err := NewOpenRouterProvider(Credentials{APIKey: "sk-test", Model: "meta-llama/llama-3-8b", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3-8b", p.ModelID())

	_, err = p.Generate(context.Background(), Request{Messages: []Message{UserMessage("hi")}, Schema: catalogLikeSchema()})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3-8b", (*body)["model"])
}

func TestGeminiSchemaConversion(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			"items": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		},
		"required": []any{"level"},
	})
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"level"}, s.Required)
	assert.Equal(t, []string{"easy", "hard"}, s.Properties["level"].Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["items"].Items.Type)
}
