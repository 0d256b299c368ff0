package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/learnpath/internal/engagement"
)

type engagementRepo struct {
	db *sql.DB
}

func (r *engagementRepo) Append(ctx context.Context, rec *EngagementRecord) error {
	rec.RecordedAt = nowOr(rec.RecordedAt)
	in := rec.Inputs
	query, args := builder().Insert("engagement_records").
		Columns("student_id", "score", "level", "login_frequency", "content_interaction",
			"ai_usage", "project_participation", "consistency_score", "recorded_at").
		Values(rec.StudentID, rec.Result.Score, string(rec.Result.Level),
			in.LoginFrequency, in.ContentInteraction, in.AIUsage,
			in.ProjectParticipation, in.ConsistencyScore, toUnix(rec.RecordedAt)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("append engagement record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("append engagement record: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *engagementRepo) Latest(ctx context.Context, studentID string) (*EngagementRecord, error) {
	b := builder()
	query, args := b.Select("id", "student_id", "score", "level", "login_frequency",
		"content_interaction", "ai_usage", "project_participation", "consistency_score", "recorded_at").
		From(b.Table("engagement_records")).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy(entsql.Desc("recorded_at"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		rec   EngagementRecord
		level string
		ts    int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID, &rec.StudentID, &rec.Result.Score, &level,
		&rec.Inputs.LoginFrequency, &rec.Inputs.ContentInteraction, &rec.Inputs.AIUsage,
		&rec.Inputs.ProjectParticipation, &rec.Inputs.ConsistencyScore, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest engagement: %w", err)
	}
	rec.Result.Level = engagement.Level(level)
	rec.RecordedAt = fromUnix(ts)
	return &rec, nil
}
