package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/learnpath/internal/vark"
)

func (r *eventRepo) AppendProfileEvent(ctx context.Context, data ProfileEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	before, err := json.Marshal(data.Before)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	after, err := json.Marshal(data.After)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query, args := builder().Insert("profile_events").
		Columns("sequence", "timestamp", "student_id", "source", "learning_mode",
			"mastery_gain", "engagement_gain", "before", "after").
		Values(seqNum, toUnix(time.Now()), data.StudentID, data.Source, string(data.Event.Mode),
			data.Event.MasteryGain, data.Event.EngagementGain, string(before), string(after)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryProfileEvents(ctx context.Context, studentID string, opts QueryOpts) ([]ProfileEvent, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "student_id", "source", "learning_mode",
		"mastery_gain", "engagement_gain", "before", "after").
		From(b.Table("profile_events"))
	query, args := opts.apply(sel, entsql.EQ("student_id", studentID)).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profile events: %w", err)
	}
	defer rows.Close()

	var out []ProfileEvent
	for rows.Next() {
		var (
			e             ProfileEvent
			ts            int64
			mode          string
			before, after string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.StudentID, &e.Source, &mode,
			&e.Event.MasteryGain, &e.Event.EngagementGain, &before, &after); err != nil {
			return nil, fmt.Errorf("scan profile event: %w", err)
		}
		e.Timestamp = fromUnix(ts)
		e.Event.Mode = vark.Mode(mode)
		if err := json.Unmarshal([]byte(before), &e.Before); err != nil {
			return nil, fmt.Errorf("decode profile event %d: %w", e.ID, err)
		}
		if err := json.Unmarshal([]byte(after), &e.After); err != nil {
			return nil, fmt.Errorf("decode profile event %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
