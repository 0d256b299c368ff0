package personalize

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/recommend"
	"github.com/abhisek/learnpath/internal/store"
)

// Feed ranks contents for the student on conceptID. When contents is
// empty the catalog's items for the concept are used and their recency is
// taken from what the student has been marked as seeing.
func (s *Service) Feed(ctx context.Context, studentID, conceptID string, contents []recommend.Content) ([]recommend.Ranked, error) {
	if len(contents) == 0 {
		var err error
		if contents, err = s.catalogContent(ctx, studentID, conceptID); err != nil {
			return nil, err
		}
	}

	var masteryScore float64
	rec, ok, err := s.masteryFor(ctx, studentID, conceptID)
	if err != nil {
		return nil, err
	}
	if ok {
		masteryScore = float64(rec.Score)
	}

	profile, err := s.Profile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	eng, err := s.engagementScore(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return recommend.Rank(contents, masteryScore, profile, float64(eng)), nil
}

func seenKey(studentID, contentID string) string {
	return "seen:" + studentID + ":" + contentID
}

// MarkSeen records that the student opened a content item now.
func (s *Service) MarkSeen(ctx context.Context, studentID, contentID string) error {
	ts := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.repos.KV.Put(ctx, seenKey(studentID, contentID), []byte(ts)); err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

func (s *Service) catalogContent(ctx context.Context, studentID, conceptID string) ([]recommend.Content, error) {
	items := s.catalog.Content(conceptID)
	now := s.now()
	for i := range items {
		items[i].LastSeenDaysAgo = recommend.FreshnessWindowDays
		raw, err := s.repos.KV.Get(ctx, seenKey(studentID, items[i].ID))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load seen %s: %w", items[i].ID, err)
		}
		sec, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			continue
		}
		items[i].LastSeenDaysAgo = int(now.Sub(time.Unix(sec, 0)).Hours() / 24)
	}
	return items, nil
}

// Gaps returns the student's prioritized concept gaps from their latest
// mastery per concept.
func (s *Service) Gaps(ctx context.Context, studentID string) ([]gaps.Gap, error) {
	latest, err := s.repos.Mastery.Latest(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load mastery history: %w", err)
	}
	history := make([]gaps.Record, 0, len(latest))
	for _, rec := range latest {
		name := rec.ConceptName
		if name == "" {
			name = s.catalog.ConceptName(rec.ConceptID)
		}
		history = append(history, gaps.Record{
			ConceptID:    rec.ConceptID,
			ConceptName:  name,
			MasteryScore: float64(rec.Score),
			LastActivity: rec.RecordedAt,
		})
	}
	return gaps.Identify(history, s.thresholds), nil
}
