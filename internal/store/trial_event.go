package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendTrialEvent(ctx context.Context, data TrialEventData) error {
	err := r.insertEvent(ctx, trialTable,
		[]string{"session_id", "phase", "trial_index", "shown", "response", "correct", "score", "reaction_ms"},
		data.SessionID, data.Phase, data.TrialIndex, data.Shown, data.Response,
		data.Correct, data.Score, data.ReactionMs,
	)
	if err != nil {
		return fmt.Errorf("save trial event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryTrialEvents(ctx context.Context, sessionID string) ([]TrialEventRecord, error) {
	query, args := builder().
		Select("sequence", "timestamp", "session_id", "phase", "trial_index", "shown", "response", "correct", "score", "reaction_ms").
		From(entsql.Table(trialTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query trial events: %w", err)
	}
	defer rows.Close()

	var records []TrialEventRecord
	for rows.Next() {
		var rec TrialEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Phase, &rec.TrialIndex,
			&rec.Shown, &rec.Response, &rec.Correct, &rec.Score, &rec.ReactionMs); err != nil {
			return nil, fmt.Errorf("scan trial event: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
