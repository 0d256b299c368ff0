package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type sessionRepo struct {
	db *sql.DB
}

var sessionColumns = []string{
	"id", "student_id", "concept_id", "status", "score", "started_at", "completed_at", "body",
}

func (r *sessionRepo) Save(ctx context.Context, rec *SessionRecord) error {
	if rec.ID == "" {
		return errors.New("save session: empty id")
	}
	var score, completed any
	if rec.Score != nil {
		score = *rec.Score
	}
	if rec.CompletedAt != nil {
		completed = toUnix(*rec.CompletedAt)
	}
	query, args := builder().Insert("practice_sessions").
		Columns(sessionColumns...).
		Values(rec.ID, rec.StudentID, rec.ConceptID, rec.Status, score,
			toUnix(nowOr(rec.StartedAt)), completed, string(rec.Body)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	recs, err := r.query(ctx, entsql.EQ("id", id), 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *sessionRepo) ListByStudent(ctx context.Context, studentID string, limit int) ([]SessionRecord, error) {
	return r.query(ctx, entsql.EQ("student_id", studentID), limit)
}

func (r *sessionRepo) query(ctx context.Context, where *entsql.Predicate, limit int) ([]SessionRecord, error) {
	b := builder()
	sel := b.Select(sessionColumns...).
		From(b.Table("practice_sessions")).
		Where(where).
		OrderBy(entsql.Desc("started_at"), entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec       SessionRecord
			score     sql.NullInt64
			started   int64
			completed sql.NullInt64
			body      string
		)
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.ConceptID, &rec.Status,
			&score, &started, &completed, &body); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if score.Valid {
			v := int(score.Int64)
			rec.Score = &v
		}
		rec.StartedAt = fromUnix(started)
		if completed.Valid {
			t := fromUnix(completed.Int64)
			rec.CompletedAt = &t
		}
		rec.Body = []byte(body)
		out = append(out, rec)
	}
	return out, rows.Err()
}
