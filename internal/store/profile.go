package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/learnpath/internal/vark"
)

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context, studentID string) (vark.Profile, bool, error) {
	b := builder()
	query, args := b.Select("visual", "auditory", "reading", "kinesthetic").
		From(b.Table("vark_profiles")).
		Where(entsql.EQ("student_id", studentID)).
		Query()

	var p vark.Profile
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.Visual, &p.Auditory, &p.Reading, &p.Kinesthetic)
	if errors.Is(err, sql.ErrNoRows) {
		return vark.Default(), false, nil
	}
	if err != nil {
		return vark.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	return p, true, nil
}

func (r *profileRepo) Save(ctx context.Context, studentID string, p vark.Profile) error {
	query, args := builder().Insert("vark_profiles").
		Columns("student_id", "visual", "auditory", "reading", "kinesthetic", "updated_at").
		Values(studentID, p.Visual, p.Auditory, p.Reading, p.Kinesthetic, toUnix(time.Now())).
		OnConflict(entsql.ConflictColumns("student_id"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
