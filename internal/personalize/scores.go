package personalize

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/learnpath/internal/engagement"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/store"
)

// RecordMastery scores in and appends the result to the student's history.
// An empty conceptName is filled from the catalog.
func (s *Service) RecordMastery(ctx context.Context, studentID, conceptID, conceptName string, in mastery.Inputs) (store.MasteryRecord, error) {
	if conceptName == "" {
		conceptName = s.catalog.ConceptName(conceptID)
	}
	rec := store.MasteryRecord{
		StudentID:   studentID,
		ConceptID:   conceptID,
		ConceptName: conceptName,
		Score:       mastery.Score(in),
		Inputs:      in.Clamped(),
		RecordedAt:  s.now(),
	}
	if err := s.repos.Mastery.Append(ctx, &rec); err != nil {
		return store.MasteryRecord{}, fmt.Errorf("record mastery: %w", err)
	}
	s.metrics.MasteryScores.Observe(float64(rec.Score))
	s.log.Debug("mastery recorded", "student", studentID, "concept", conceptID, "score", rec.Score)
	return rec, nil
}

// RecordEngagement scores in and stores it as the student's latest engagement.
func (s *Service) RecordEngagement(ctx context.Context, studentID string, in engagement.Inputs) (engagement.Result, error) {
	res := engagement.Score(in)
	rec := store.EngagementRecord{
		StudentID:  studentID,
		Result:     res,
		Inputs:     in,
		RecordedAt: s.now(),
	}
	if err := s.repos.Engagement.Append(ctx, &rec); err != nil {
		return engagement.Result{}, fmt.Errorf("record engagement: %w", err)
	}
	s.metrics.EngagementScores.Observe(float64(res.Score))
	s.log.Debug("engagement recorded", "student", studentID, "score", res.Score, "level", res.Level)
	return res, nil
}

// masteryFor returns the latest mastery record for a concept; ok is false
// when the student has none.
func (s *Service) masteryFor(ctx context.Context, studentID, conceptID string) (*store.MasteryRecord, bool, error) {
	rec, err := s.repos.Mastery.LatestFor(ctx, studentID, conceptID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load mastery: %w", err)
	}
	return rec, true, nil
}

// engagementScore returns the latest engagement score or 0.
func (s *Service) engagementScore(ctx context.Context, studentID string) (int, error) {
	rec, err := s.repos.Engagement.Latest(ctx, studentID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load engagement: %w", err)
	}
	return rec.Result.Score, nil
}
