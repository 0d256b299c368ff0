package personalize

import (
	"context"
	"fmt"

	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/vark"
)

// Event sources recorded in the profile audit log.
const (
	SourceEvent    = "event"
	SourceSurvey   = "survey"
	SourcePractice = "practice"
)

// Profile returns the student's VARK profile, uniform if none is stored.
func (s *Service) Profile(ctx context.Context, studentID string) (vark.Profile, error) {
	p, _, err := s.repos.Profiles.Get(ctx, studentID)
	if err != nil {
		return vark.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// ApplyLearningEvent evolves the student's profile by one observation.
// Concurrent calls for the same student are serialized.
func (s *Service) ApplyLearningEvent(ctx context.Context, studentID string, ev vark.Event) (vark.Profile, error) {
	return s.applyEvent(ctx, studentID, ev, SourceEvent)
}

func (s *Service) applyEvent(ctx context.Context, studentID string, ev vark.Event, source string) (vark.Profile, error) {
	unlock, err := s.lock(ctx, profileKey(studentID))
	if err != nil {
		return vark.Profile{}, err
	}
	defer unlock()

	before, err := s.Profile(ctx, studentID)
	if err != nil {
		return vark.Profile{}, err
	}
	after := vark.Update(before, ev)
	if err := s.storeProfile(ctx, studentID, ev, before, after, source); err != nil {
		return vark.Profile{}, err
	}
	return after, nil
}

// SetProfileFromSurvey replaces the student's profile with the survey
// percentages.
func (s *Service) SetProfileFromSurvey(ctx context.Context, studentID string, answers vark.Answers) (vark.SurveyResult, error) {
	res := vark.ScoreSurvey(answers)

	unlock, err := s.lock(ctx, profileKey(studentID))
	if err != nil {
		return vark.SurveyResult{}, err
	}
	defer unlock()

	before, err := s.Profile(ctx, studentID)
	if err != nil {
		return vark.SurveyResult{}, err
	}
	if err := s.storeProfile(ctx, studentID, vark.Event{}, before, res.Scores, SourceSurvey); err != nil {
		return vark.SurveyResult{}, err
	}
	return res, nil
}

// storeProfile saves after and appends the transition to the audit log.
// The caller holds the student's profile lock.
func (s *Service) storeProfile(ctx context.Context, studentID string, ev vark.Event, before, after vark.Profile, source string) error {
	if err := s.repos.Profiles.Save(ctx, studentID, after); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	err := s.repos.Events.AppendProfileEvent(ctx, store.ProfileEventData{
		StudentID: studentID,
		Source:    source,
		Event:     ev,
		Before:    before,
		After:     after,
	})
	if err != nil {
		// The profile itself is saved; only the audit trail is incomplete.
		s.log.Warn("append profile event", "student", studentID, "error", err)
	}
	s.metrics.ProfileUpdates.WithLabelValues(source).Inc()
	primary, _ := after.Dominant()
	s.log.Debug("profile updated", "student", studentID, "source", source, "dominant", primary)
	return nil
}

// ProfileHistory returns the student's recorded profile transitions,
// newest first.
func (s *Service) ProfileHistory(ctx context.Context, studentID string, limit int) ([]store.ProfileEvent, error) {
	events, err := s.repos.Events.QueryProfileEvents(ctx, studentID, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("profile history: %w", err)
	}
	return events, nil
}
