package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	entsql "entgo.io/ent/dialect/sql"
)

type masteryRepo struct {
	db *sql.DB
}

var masteryColumns = []string{
	"id", "student_id", "concept_id", "concept_name", "score",
	"assessment_score", "practice_accuracy", "ai_help_effectiveness",
	"engagement_consistency", "recorded_at",
}

func (r *masteryRepo) Append(ctx context.Context, rec *MasteryRecord) error {
	rec.RecordedAt = nowOr(rec.RecordedAt)
	in := rec.Inputs
	query, args := builder().Insert("mastery_records").
		Columns(masteryColumns[1:]...).
		Values(rec.StudentID, rec.ConceptID, rec.ConceptName, rec.Score,
			in.AssessmentScore, in.PracticeAccuracy, in.AIHelpEffectiveness,
			in.EngagementConsistency, toUnix(rec.RecordedAt)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("append mastery record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("append mastery record: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *masteryRepo) Latest(ctx context.Context, studentID string) ([]MasteryRecord, error) {
	all, err := r.query(ctx, entsql.EQ("student_id", studentID), 0)
	if err != nil {
		return nil, err
	}

	// Rows arrive newest first, so the first row per concept wins.
	seen := make(map[string]bool)
	var latest []MasteryRecord
	for _, rec := range all {
		if seen[rec.ConceptID] {
			continue
		}
		seen[rec.ConceptID] = true
		latest = append(latest, rec)
	}
	sort.Slice(latest, func(i, j int) bool {
		return latest[i].ConceptID < latest[j].ConceptID
	})
	return latest, nil
}

func (r *masteryRepo) LatestFor(ctx context.Context, studentID, conceptID string) (*MasteryRecord, error) {
	recs, err := r.query(ctx, entsql.And(
		entsql.EQ("student_id", studentID),
		entsql.EQ("concept_id", conceptID),
	), 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *masteryRepo) query(ctx context.Context, where *entsql.Predicate, limit int) ([]MasteryRecord, error) {
	b := builder()
	sel := b.Select(masteryColumns...).
		From(b.Table("mastery_records")).
		Where(where).
		OrderBy(entsql.Desc("recorded_at"), entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mastery records: %w", err)
	}
	defer rows.Close()

	var out []MasteryRecord
	for rows.Next() {
		var (
			rec MasteryRecord
			ts  int64
		)
		err := rows.Scan(&rec.ID, &rec.StudentID, &rec.ConceptID, &rec.ConceptName, &rec.Score,
			&rec.Inputs.AssessmentScore, &rec.Inputs.PracticeAccuracy,
			&rec.Inputs.AIHelpEffectiveness, &rec.Inputs.EngagementConsistency, &ts)
		if err != nil {
			return nil, fmt.Errorf("scan mastery record: %w", err)
		}
		rec.RecordedAt = fromUnix(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
