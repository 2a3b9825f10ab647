package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"summary":"a","level":"low"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, Request{System: "sys", Prompt: "first", Schema: verdictSchema})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Usage.Total())
	assert.Equal(t, "mock", resp.Model)

	_, err = mock.Generate(ctx, Request{Prompt: "second"})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = mock.Generate(ctx, Request{Prompt: "third"})
	var un *ErrProviderUnavailable
	assert.ErrorAs(t, err, &un, "exhausted queue")

	reqs := mock.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "sys", reqs[0].System)
	assert.Equal(t, "third", reqs[2].Prompt)
	assert.Equal(t, 3, mock.CallCount())
}

func TestMockProvider_AppliesSchema(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"summary":"a"}`)},
		MockResponse{Content: json.RawMessage(`{"summary":"a","level":"low"}`), Truncated: true},
	)
	_, err := mock.Generate(context.Background(), Request{Schema: verdictSchema})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)

	_, err = mock.Generate(context.Background(), Request{Schema: verdictSchema})
	var tr *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &tr)
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, PurposeProbe, PurposeFrom(WithPurpose(ctx, PurposeProbe)))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&ErrProviderUnavailable{}))
	assert.True(t, Retryable(&ErrInvalidResponse{Err: errors.New("x")}))
	assert.True(t, Retryable(errors.New("connection reset")))
	assert.False(t, Retryable(context.Canceled))
	assert.False(t, Retryable(&ErrProviderUnavailable{Err: context.DeadlineExceeded}))
	assert.False(t, Retryable(&ErrMaxTokensExceeded{}))
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil)
	assert.Error(t, err, "missing key")

	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "k"
	p, err = NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &TimeoutProvider{}, p)
	assert.Equal(t, "google/gemini-2.0-flash-001", p.ModelID())
}
