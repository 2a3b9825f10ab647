package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insertEvent(ctx, sessionTable,
		[]string{"session_id", "action", "mode", "participant_id", "trials", "correct", "duration_secs", "core_average"},
		data.SessionID, data.Action, data.Mode, data.ParticipantID,
		data.Trials, data.Correct, data.DurationSecs, data.CoreAverage,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().
		Select("session_id", "timestamp", "mode", "participant_id", "trials", "correct", "duration_secs", "core_average").
		From(entsql.Table(sessionTable)).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	query, args := applyOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(&rec.SessionID, &rec.Timestamp, &rec.Mode, &rec.ParticipantID,
			&rec.Trials, &rec.Correct, &rec.DurationSecs, &rec.CoreAverage); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
