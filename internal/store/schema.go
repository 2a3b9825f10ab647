package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	kvTable         = "kv_entries"
	sessionTable    = "session_events"
	trialTable      = "trial_events"
	llmRequestTable = "llm_request_events"
)

// eventColumns returns the columns every event table starts with: an
// autoincrement id, the global sequence number and a timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	cols := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(cols, extra...)
}

var (
	// KVColumns holds the columns of the key-value collections table.
	KVColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// KVTable stores JSON-encoded collections by string key.
	KVTable = &schema.Table{
		Name:       kvTable,
		Columns:    KVColumns,
		PrimaryKey: []*schema.Column{KVColumns[0]},
	}

	// SessionEventsColumns holds the columns of the session_events table.
	SessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "participant_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "trials", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "core_average", Type: field.TypeFloat64, Default: 0},
	)
	// SessionEventsTable records session start, end and reset.
	SessionEventsTable = &schema.Table{
		Name:       sessionTable,
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
		},
	}

	// TrialEventsColumns holds the columns of the trial_events table.
	TrialEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "phase", Type: field.TypeString},
		&schema.Column{Name: "trial_index", Type: field.TypeInt},
		&schema.Column{Name: "shown", Type: field.TypeString},
		&schema.Column{Name: "response", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "score", Type: field.TypeFloat64},
		&schema.Column{Name: "reaction_ms", Type: field.TypeInt64},
	)
	// TrialEventsTable records every scored trial and attention stream.
	TrialEventsTable = &schema.Table{
		Name:       trialTable,
		Columns:    TrialEventsColumns,
		PrimaryKey: []*schema.Column{TrialEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "trialevent_session_id", Columns: []*schema.Column{TrialEventsColumns[3]}},
		},
	}

	// LLMRequestEventsColumns holds the columns of the llm_request_events table.
	LLMRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
	)
	// LLMRequestEventsTable audits LLM provider calls.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmRequestTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
	}

	// Tables lists every table created by auto-migration.
	Tables = []*schema.Table{
		KVTable,
		SessionEventsTable,
		TrialEventsTable,
		LLMRequestEventsTable,
	}
)
