package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func personSchema() *Schema {
	return &Schema{
		Name: "test-person",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
				"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"all fields", `{"name":"Alice","age":10,"grade":"A","tags":["x"]}`, true},
		{"optional omitted", `{"name":"Bob","age":8}`, true},
		{"missing required", `{"name":"Carol"}`, false},
		{"wrong type", `{"name":"Dan","age":"ten"}`, false},
		{"bad enum", `{"name":"Eve","age":9,"grade":"Z"}`, false},
		{"bad item", `{"name":"Fay","age":9,"tags":[1]}`, false},
		{"negative", `{"name":"Gus","age":-1}`, false},
		{"not json", `{"name":`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(personSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			if assert.ErrorAs(t, err, &invalid) {
				assert.Equal(t, tt.raw, string(invalid.Content))
			}
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`plain text`)))
}

func TestFinishRejectsTruncation(t *testing.T) {
	_, err := finish(Request{}, &Response{Content: json.RawMessage(`{"na`), StopReason: stopMaxTokens})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicAliases))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiAliases))
	assert.Equal(t, "my-model", resolveModel("my-model", openaiAliases))
}
