package store

import (
	"context"
	"time"

	"github.com/abhisek/memoriz/internal/results"
)

// Collection keys of the key-value table.
const (
	// CollectionResults holds results produced by local sessions. Append-only.
	CollectionResults = "test_results"

	// CollectionDataset holds externally supplied records, merged read-only
	// with CollectionResults for analysis.
	CollectionDataset = "uploaded_dataset"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ResultRepo reads and writes the result collections.
type ResultRepo interface {
	// AppendResult appends r to test_results.
	AppendResult(ctx context.Context, r results.TestResult) error

	// Results returns test_results in insertion order.
	Results(ctx context.Context) ([]results.TestResult, error)

	// ReplaceDataset overwrites uploaded_dataset.
	ReplaceDataset(ctx context.Context, rs []results.TestResult) error

	// Dataset returns uploaded_dataset.
	Dataset(ctx context.Context) ([]results.TestResult, error)

	// Combined returns test_results followed by uploaded_dataset.
	Combined(ctx context.Context) ([]results.TestResult, error)

	// ClearCollection removes a collection entirely.
	ClearCollection(ctx context.Context, key string) error
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
	ActionReset = "reset"
)

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID     string
	Action        string // start, end or reset
	Mode          string
	ParticipantID string
	Trials        int
	Correct       int
	DurationSecs  int
	CoreAverage   float64
}

// SessionSummaryRecord is a completed session read back from the log.
type SessionSummaryRecord struct {
	SessionID     string
	Timestamp     time.Time
	Mode          string
	ParticipantID string
	Trials        int
	Correct       int
	DurationSecs  int
	CoreAverage   float64
}

// TrialEventData captures one scored trial.
type TrialEventData struct {
	SessionID  string
	Phase      string
	TrialIndex int
	Shown      string
	Response   string
	Correct    bool
	Score      float64
	ReactionMs int64
}

// TrialEventRecord is a trial event read back from the log.
type TrialEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	TrialEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is an LLM request event read back from the log.
type LLMRequestRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendTrialEvent records a scored trial.
	AppendTrialEvent(ctx context.Context, data TrialEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns completed sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryTrialEvents returns the trials of one session in order.
	QueryTrialEvents(ctx context.Context, sessionID string) ([]TrialEventRecord, error)

	// QueryLLMRequests returns LLM request events, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)
}
