package personalize

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/vark"
)

// PracticeConfig returns the default session configuration. Callers that
// override single fields should start from it.
func (s *Service) PracticeConfig() practice.Config {
	return s.practice
}

// StartPractice generates and stores a new open session for the student
// using cfg as given. A student with no gaps practices the catalog's review
// concept with the review configuration.
func (s *Service) StartPractice(ctx context.Context, studentID string, cfg practice.Config) (*session.Session, error) {
	gapList, err := s.Gaps(ctx, studentID)
	if err != nil {
		return nil, err
	}
	review := len(gapList) == 0
	if review {
		gapList = []gaps.Gap{s.catalog.ReviewGap()}
		cfg = practice.ReviewConfig()
	}

	profile, err := s.Profile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	questions, err := s.generator.Generate(ctx, gapList, profile, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate practice: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	first := gapList[0]
	sess := session.New(s.newID(), studentID, first.ConceptID, first.ConceptName, questions, s.now())
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	s.metrics.SessionsStarted.WithLabelValues(strconv.FormatBool(review)).Inc()
	s.log.Info("practice started",
		"student", studentID, "session", sess.ID, "concept", sess.ConceptID,
		"questions", len(questions), "review", review)
	return sess, nil
}

// Session returns a stored session.
func (s *Service) Session(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.loadSession(ctx, sessionID)
}

// Sessions lists a student's sessions, newest first.
func (s *Service) Sessions(ctx context.Context, studentID string, limit int) ([]*session.Session, error) {
	recs, err := s.repos.Sessions.ListByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]*session.Session, 0, len(recs))
	for _, rec := range recs {
		sess, err := s.loadSession(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

// SubmitAnswer records a response in an open session.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (session.AnswerResult, error) {
	unlock, err := s.lock(ctx, sessionKey(sessionID))
	if err != nil {
		return session.AnswerResult{}, err
	}
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return session.AnswerResult{}, err
	}
	res, err := sess.Submit(questionID, answer, s.now())
	if err != nil {
		return session.AnswerResult{}, err
	}
	if err := s.saveSession(ctx, sess); err != nil {
		return session.AnswerResult{}, err
	}
	s.metrics.Answers.WithLabelValues(strconv.FormatBool(res.Correct)).Inc()
	return res, nil
}

// FinishPractice closes the session and evaluates it. When anything was
// answered the result flows back: each practiced concept is re-scored with
// its session accuracy as practice accuracy, the profile receives one event
// per learning mode answered, and the next practice target is suggested.
//
// If writing the results back fails, the session stays closed with its
// results pending and calling FinishPractice again resumes the write-back
// from the first step that did not complete.
func (s *Service) FinishPractice(ctx context.Context, sessionID string) (session.Evaluation, error) {
	unlock, err := s.lock(ctx, sessionKey(sessionID))
	if err != nil {
		return session.Evaluation{}, err
	}
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return session.Evaluation{}, err
	}
	resumed := sess.FeedbackPending()
	if !resumed {
		if err := sess.Finalize(s.now()); err != nil {
			return session.Evaluation{}, err
		}
		if err := s.saveSession(ctx, sess); err != nil {
			return session.Evaluation{}, err
		}
	}

	eval := session.Evaluate(sess)
	if eval.Score == nil {
		s.metrics.SessionsFinished.Inc()
		s.log.Info("practice finished without answers", "session", sess.ID)
		return eval, nil
	}
	if !resumed {
		s.metrics.SessionsFinished.Inc()
		s.metrics.SessionScores.Observe(float64(*eval.Score))
	}

	if err := s.feedBack(ctx, sess); err != nil {
		s.log.Warn("practice results pending", "session", sess.ID, "error", err)
		return eval, fmt.Errorf("apply session results: %w", err)
	}
	sess.FeedbackDone = true
	if err := s.saveSession(ctx, sess); err != nil {
		return eval, err
	}

	gapList, err := s.Gaps(ctx, sess.StudentID)
	if err != nil {
		return eval, err
	}
	if next, ok := gaps.NextPractice(sess.ConceptID, *eval.Score, gapList); ok {
		eval.NextPractice = &next
	}

	s.log.Info("practice finished",
		"student", sess.StudentID, "session", sess.ID, "score", *eval.Score,
		"mastery_change", eval.MasteryChange)
	return eval, nil
}

type conceptStat struct {
	name string
	session.ModeStat
}

// feedBack applies a closed session's results to mastery and the profile.
// Each completed step is recorded on the session and saved, so a retry
// skips what was already written.
func (s *Service) feedBack(ctx context.Context, sess *session.Session) error {
	done := func(step string) error {
		sess.MarkApplied(step)
		return s.saveSession(ctx, sess)
	}

	concepts := make(map[string]*conceptStat)
	for _, a := range sess.Answers {
		q, ok := sess.Question(a.QuestionID)
		if !ok {
			continue
		}
		st, ok := concepts[q.ConceptID]
		if !ok {
			st = &conceptStat{name: q.ConceptName}
			concepts[q.ConceptID] = st
		}
		st.Answered++
		if a.Correct {
			st.Correct++
		}
	}

	ids := make([]string, 0, len(concepts))
	for id := range concepts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		step := "mastery:" + id
		if sess.StepApplied(step) {
			continue
		}
		st := concepts[id]
		var in mastery.Inputs
		prior, ok, err := s.masteryFor(ctx, sess.StudentID, id)
		if err != nil {
			return err
		}
		if ok {
			in = prior.Inputs
		}
		in.PracticeAccuracy = st.Accuracy()
		if _, err := s.RecordMastery(ctx, sess.StudentID, id, st.name, in); err != nil {
			return err
		}
		if err := done(step); err != nil {
			return err
		}
	}

	stats := sess.ModeStats()
	completion := sess.CompletionRatio()
	for _, mode := range vark.Modes {
		st, ok := stats[mode]
		step := "profile:" + string(mode)
		if !ok || sess.StepApplied(step) {
			continue
		}
		ev := vark.Event{Mode: mode, MasteryGain: st.Accuracy(), EngagementGain: completion}
		if _, err := s.applyEvent(ctx, sess.StudentID, ev, SourcePractice); err != nil {
			return err
		}
		if err := done(step); err != nil {
			return err
		}
	}
	return nil
}
