package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI serves one canned JSON reply for every request and hands each
// request body to seen when it is non-nil.
func stubAPI(t *testing.T, status int, header http.Header, body any, seen func(map[string]any)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			var req map[string]any
			_ = json.Unmarshal(raw, &req)
			seen(req)
		}
		for k, vs := range header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 210, "output_tokens": 64},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func newAnthropicAt(t *testing.T, url string) *AnthropicProvider {
	t.Helper()
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: url})
	require.NoError(t, err)
	return p
}

func TestAnthropicProvider_StructuredReply(t *testing.T) {
	var sent map[string]any
	url := stubAPI(t, http.StatusOK, nil,
		anthropicMessage(`{"summary":"ok","level":"high"}`, "end_turn"),
		func(req map[string]any) { sent = req })
	p := newAnthropicAt(t, url)

	resp, err := p.Generate(context.Background(), Request{
		System:    "Explain the scores.",
		Prompt:    "visual 8, working 7, attention 9",
		Schema:    verdictSchema,
		MaxTokens: 300,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"ok","level":"high"}`, string(resp.Content))
	assert.Equal(t, 274, resp.Usage.Total())
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)
	assert.False(t, resp.Truncated)

	assert.Equal(t, "claude-haiku-4-5-20251001", sent["model"])
	assert.EqualValues(t, 300, sent["max_tokens"])
	assert.NotNil(t, sent["system"])
}

func TestAnthropicProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		body   any
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limit carries retry-after",
			status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": {"3"}},
			body:   anthropicError("rate_limit_error"),
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				require.ErrorAs(t, err, &rl)
				assert.Equal(t, 3*time.Second, rl.RetryAfter)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   anthropicError("api_error"),
			check: func(t *testing.T, err error) {
				var un *ErrProviderUnavailable
				require.ErrorAs(t, err, &un)
			},
		},
		{
			name:   "truncated structured reply",
			status: http.StatusOK,
			body:   anthropicMessage(`{"summary":"o`, "max_tokens"),
			check: func(t *testing.T, err error) {
				var tr *ErrMaxTokensExceeded
				require.ErrorAs(t, err, &tr)
				assert.False(t, Retryable(err))
			},
		},
		{
			name:   "reply off schema",
			status: http.StatusOK,
			body:   anthropicMessage(`{"summary":"ok"}`, "end_turn"),
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				require.ErrorAs(t, err, &inv)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newAnthropicAt(t, stubAPI(t, tt.status, tt.header, tt.body, nil))
			_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: verdictSchema, MaxTokens: 50})
			tt.check(t, err)
		})
	}
}

func TestAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}

func TestAnthropicAliases(t *testing.T) {
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-sonnet"})
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())

	p, err = NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-opus-4-1"})
	require.NoError(t, err)
	assert.Equal(t, "claude-opus-4-1", p.ModelID())
}
