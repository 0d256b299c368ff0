// Package personalize ties the scorers to storage and closes the adaptive
// loop: scores are persisted, practice sessions are generated from the
// stored gaps and profile, and finished sessions feed back into mastery
// and the VARK profile.
package personalize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/store"
)

// ErrNoQuestions is returned when generation produced an empty session.
var ErrNoQuestions = errors.New("no practice questions available")

// Repos groups the persistence collaborators.
type Repos struct {
	KV         store.KV
	Profiles   store.ProfileRepo
	Mastery    store.MasteryRepo
	Engagement store.EngagementRepo
	Sessions   store.SessionRepo
	Events     store.EventRepo
}

// ReposFrom returns the repositories of a SQLite store.
func ReposFrom(s *store.Store) Repos {
	return Repos{
		KV:         s.KV(),
		Profiles:   s.ProfileRepo(),
		Mastery:    s.MasteryRepo(),
		Engagement: s.EngagementRepo(),
		Sessions:   s.SessionRepo(),
		Events:     s.EventRepo(),
	}
}

// Service is safe for concurrent use. Profile read-modify-write cycles and
// session mutations are serialized through the Locker.
type Service struct {
	repos      Repos
	catalog    *catalog.Catalog
	generator  *practice.Generator
	thresholds gaps.Thresholds
	practice   practice.Config

	locker  Locker
	metrics *Metrics
	log     *logger.Logger
	now     func() time.Time
	newID   func() string
}

// Option customizes a Service.
type Option func(*Service)

func WithLocker(l Locker) Option { return func(s *Service) { s.locker = l } }

func WithMetrics(m *Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithLogger(l *logger.Logger) Option { return func(s *Service) { s.log = l } }

func WithThresholds(t gaps.Thresholds) Option { return func(s *Service) { s.thresholds = t } }

func WithPracticeConfig(c practice.Config) Option { return func(s *Service) { s.practice = c } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithIDs(newID func() string) Option { return func(s *Service) { s.newID = newID } }

// New creates a Service. The generator draws questions for the gaps it is
// given; cat supplies concept names, feed content and the review gap.
func New(repos Repos, cat *catalog.Catalog, gen *practice.Generator, opts ...Option) *Service {
	s := &Service{
		repos:      repos,
		catalog:    cat,
		generator:  gen,
		thresholds: gaps.DefaultThresholds(),
		practice:   practice.DefaultConfig(),
		locker:     NewLocalLocker(),
		metrics:    NewMetrics(nil),
		log:        logger.Nop(),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) lock(ctx context.Context, key string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	return unlock, nil
}

func profileKey(studentID string) string { return "profile:" + studentID }

func sessionKey(sessionID string) string { return "session:" + sessionID }

func (s *Service) loadSession(ctx context.Context, id string) (*session.Session, error) {
	rec, err := s.repos.Sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	var sess session.Session
	if err := json.Unmarshal(rec.Body, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *Service) saveSession(ctx context.Context, sess *session.Session) error {
	body, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return s.repos.Sessions.Save(ctx, &store.SessionRecord{
		ID:          sess.ID,
		StudentID:   sess.StudentID,
		ConceptID:   sess.ConceptID,
		Status:      string(sess.Status),
		Score:       sess.Score,
		StartedAt:   sess.StartedAt,
		CompletedAt: sess.CompletedAt,
		Body:        body,
	})
}
