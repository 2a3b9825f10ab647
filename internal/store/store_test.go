package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoriz/internal/results"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(id string, visual float64) results.TestResult {
	return results.TestResult{
		ParticipantID:      id,
		Age:                40,
		Education:          results.EducationSecondary,
		ImmediateMemory:    5.4,
		WorkingMemory:      6,
		VisualMemory:       visual,
		ReactionTimeMs:     1500,
		AccuracyPct:        80,
		SustainedAttention: 8,
		Fatigue:            2,
		Timestamp:          time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{kvTable, sessionTable, trialTable, llmRequestTable, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if seq != int64(i+1) {
			t.Errorf("seq[%d] = %d, want %d", i, seq, i+1)
		}
	}
}

func TestResultsAppendOnly(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	got, err := repo.Results(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, repo.AppendResult(ctx, sampleResult("EVAL_1", 7)))
	require.NoError(t, repo.AppendResult(ctx, sampleResult("EVAL_2", 9)))

	got, err = repo.Results(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "EVAL_1", got[0].ParticipantID)
	assert.Equal(t, "EVAL_2", got[1].ParticipantID)
	assert.Equal(t, 9.0, got[1].VisualMemory)
	assert.True(t, got[0].Timestamp.Equal(sampleResult("", 0).Timestamp))
}

func TestCombinedMergesDatasetAfterResults(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendResult(ctx, sampleResult("local", 5)))
	require.NoError(t, repo.ReplaceDataset(ctx, []results.TestResult{
		sampleResult("up-1", 3),
		sampleResult("up-2", 4),
	}))
	// Replacing again overwrites rather than appends.
	require.NoError(t, repo.ReplaceDataset(ctx, []results.TestResult{
		sampleResult("up-3", 3),
		sampleResult("up-4", 4),
	}))

	all, err := repo.Combined(ctx)
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ParticipantID
	}
	assert.Equal(t, []string{"local", "up-3", "up-4"}, ids)

	require.NoError(t, repo.ClearCollection(ctx, CollectionDataset))
	uploaded, err := repo.Dataset(ctx)
	require.NoError(t, err)
	assert.Empty(t, uploaded)

	local, err := repo.Results(ctx)
	require.NoError(t, err)
	assert.Len(t, local, 1)
}

func TestSessionEventsAndSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: ActionStart, Mode: "full"}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "a", Action: ActionEnd, Mode: "full", ParticipantID: "EVAL_1",
		Trials: 11, Correct: 7, DurationSecs: 95, CoreAverage: 7.25,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "b", Action: ActionEnd, Mode: "drill"}))

	sums, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "b", sums[0].SessionID, "newest first")
	assert.Equal(t, "a", sums[1].SessionID)
	assert.Equal(t, 7, sums[1].Correct)
	assert.Equal(t, 7.25, sums[1].CoreAverage)
	assert.False(t, sums[1].Timestamp.IsZero())

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestTrialEventsOrdered(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AppendTrialEvent(ctx, TrialEventData{
			SessionID: "s1", Phase: "working_memory", TrialIndex: i,
			Shown: "371", Response: "173", Correct: true, Score: 10, ReactionMs: 900,
		}))
	}
	require.NoError(t, repo.AppendTrialEvent(ctx, TrialEventData{SessionID: "other", Phase: "visual"}))

	events, err := repo.QueryTrialEvents(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i, e.TrialIndex)
		if i > 0 {
			assert.Greater(t, e.Sequence, events[i-1].Sequence)
		}
	}
	assert.Equal(t, "173", events[0].Response)
}

func TestLLMRequestEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m", Purpose: "narrative",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 1200, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "m2", Purpose: "narrative", ErrorMessage: "rate limited",
	}))

	recs, err := repo.QueryLLMRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "openai", recs[0].Provider)
	assert.False(t, recs[0].Success)
	assert.Equal(t, 100, recs[1].InputTokens)

	after, err := repo.QueryLLMRequests(ctx, QueryOpts{After: recs[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 1)
}
