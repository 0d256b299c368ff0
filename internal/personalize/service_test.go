package personalize

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/engagement"
	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/recommend"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/vark"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances one second per reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func (c *stepClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	svc     *Service
	store   *store.Store
	clock   *stepClock
	metrics *Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)

	clock := &stepClock{t: epoch}
	metrics := NewMetrics(prometheus.NewRegistry())
	var mu sync.Mutex
	n := 0
	ids := func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("s-%d", n)
	}

	svc := New(ReposFrom(st), cat, practice.NewGenerator(practice.NewBankSource(cat.Templates())),
		WithClock(clock.now), WithIDs(ids), WithMetrics(metrics))
	return &testEnv{svc: svc, store: st, clock: clock, metrics: metrics}
}

func answerAll(t *testing.T, svc *Service, sess *session.Session, correct bool) {
	t.Helper()
	ctx := context.Background()
	for _, q := range sess.Questions {
		resp := "zzz"
		if correct {
			resp = q.CorrectAnswer
		}
		res, err := svc.SubmitAnswer(ctx, sess.ID, q.ID, resp)
		require.NoError(t, err)
		assert.Equal(t, correct, res.Correct, "question %s", q.ID)
	}
}

func TestRecordMastery_FillsNameAndPersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec, err := env.svc.RecordMastery(ctx, "stu", "fractions", "", mastery.Inputs{
		AssessmentScore: 80, PracticeAccuracy: 70, AIHelpEffectiveness: 60, EngagementConsistency: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, 77, rec.Score)
	assert.Equal(t, "Fractions", rec.ConceptName)
	assert.Equal(t, 100.0, rec.Inputs.EngagementConsistency)

	latest, err := env.store.MasteryRepo().LatestFor(ctx, "stu", "fractions")
	require.NoError(t, err)
	assert.Equal(t, 77, latest.Score)
}

func TestRecordEngagement(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.svc.RecordEngagement(context.Background(), "stu", engagement.Inputs{
		LoginFrequency: 100, ContentInteraction: 100, AIUsage: 100, ProjectParticipation: 100, ConsistencyScore: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)

	got, err := env.svc.engagementScore(context.Background(), "stu")
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}

func TestGaps_OrderedByPriority(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for id, v := range map[string]float64{"fractions": 20, "percentages": 55, "geometry-basics": 90, "algebra-basics": 40} {
		_, err := env.svc.RecordMastery(ctx, "stu", id, "", mastery.Inputs{
			AssessmentScore: v, PracticeAccuracy: v, AIHelpEffectiveness: v, EngagementConsistency: v,
		})
		require.NoError(t, err)
	}

	list, err := env.svc.Gaps(ctx, "stu")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "fractions", list[0].ConceptID)
	assert.Equal(t, gaps.Critical, list[0].Priority)
	assert.Equal(t, 35.0, list[0].RecommendedDifficulty)
	assert.Equal(t, "algebra-basics", list[1].ConceptID)
	assert.Equal(t, gaps.High, list[1].Priority)
	assert.Equal(t, "percentages", list[2].ConceptID)
	assert.Equal(t, gaps.Medium, list[2].Priority)
}

func TestStartPractice_ColdStartUsesReviewConcept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.svc.StartPractice(ctx, "new-student", env.svc.PracticeConfig())
	require.NoError(t, err)
	assert.Equal(t, "s-1", sess.ID)
	assert.Equal(t, "linear-equations", sess.ConceptID)
	assert.Equal(t, session.StatusOpen, sess.Status)
	require.Len(t, sess.Questions, practice.ReviewConfig().QuestionsPerConcept)
	for _, q := range sess.Questions {
		assert.Equal(t, "linear-equations", q.ConceptID)
		assert.Equal(t, 75.0, q.Difficulty)
	}

	stored, err := env.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Questions, stored.Questions)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SessionsStarted.WithLabelValues("true")))
}

func TestStartPractice_TargetsGaps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.RecordMastery(ctx, "stu", "fractions", "", mastery.Inputs{AssessmentScore: 20, PracticeAccuracy: 20, AIHelpEffectiveness: 20, EngagementConsistency: 20})
	require.NoError(t, err)
	_, err = env.svc.RecordMastery(ctx, "stu", "percentages", "", mastery.Inputs{AssessmentScore: 55, PracticeAccuracy: 55, AIHelpEffectiveness: 55, EngagementConsistency: 55})
	require.NoError(t, err)

	sess, err := env.svc.StartPractice(ctx, "stu", env.svc.PracticeConfig())
	require.NoError(t, err)
	assert.Equal(t, "fractions", sess.ConceptID)
	require.Len(t, sess.Questions, 6)
	for i, q := range sess.Questions {
		want := "fractions"
		if i >= 3 {
			want = "percentages"
		}
		assert.Equal(t, want, q.ConceptID)
	}
}

func TestFinishPractice_PerfectColdStart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.svc.StartPractice(ctx, "stu", env.svc.PracticeConfig())
	require.NoError(t, err)
	answerAll(t, env.svc, sess, true)

	eval, err := env.svc.FinishPractice(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, eval.Score)
	assert.Equal(t, 100, *eval.Score)
	assert.Equal(t, 10, eval.MasteryChange)
	assert.Equal(t, session.Recommendations(100), eval.Recommendations)
	// The only gap is the concept just practiced.
	assert.Nil(t, eval.NextPractice)

	rec, err := env.store.MasteryRepo().LatestFor(ctx, "stu", "linear-equations")
	require.NoError(t, err)
	assert.Equal(t, 30, rec.Score)
	assert.Equal(t, 100.0, rec.Inputs.PracticeAccuracy)

	profile, err := env.svc.Profile(ctx, "stu")
	require.NoError(t, err)
	assert.InDelta(t, 100, profile.Sum(), 1e-6)

	history, err := env.svc.ProfileHistory(ctx, "stu", 0)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	for _, ev := range history {
		assert.Equal(t, SourcePractice, ev.Source)
	}

	stored, err := env.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, stored.Closed())
	require.NotNil(t, stored.Score)
	assert.Equal(t, 100, *stored.Score)
}

func TestFinishPractice_LowScoreRepeatsEasier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.RecordMastery(ctx, "stu", "fractions", "", mastery.Inputs{AssessmentScore: 20, PracticeAccuracy: 20, AIHelpEffectiveness: 20, EngagementConsistency: 20})
	require.NoError(t, err)

	sess, err := env.svc.StartPractice(ctx, "stu", practice.Config{TargetConceptCount: 1, QuestionsPerConcept: 3, DifficultyBuffer: 15})
	require.NoError(t, err)
	require.Len(t, sess.Questions, 3)
	answerAll(t, env.svc, sess, false)

	eval, err := env.svc.FinishPractice(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, eval.Score)
	assert.Equal(t, 0, *eval.Score)
	assert.Equal(t, -7, eval.MasteryChange)

	// 20*0.5 + 0*0.3 + 20*0.1 + 20*0.1
	rec, err := env.store.MasteryRepo().LatestFor(ctx, "stu", "fractions")
	require.NoError(t, err)
	assert.Equal(t, 14, rec.Score)

	require.NotNil(t, eval.NextPractice)
	assert.Equal(t, "fractions", eval.NextPractice.ConceptID)
	assert.Equal(t, 19.0, eval.NextPractice.RecommendedDifficulty)
}

func TestFinishPractice_NoAnswers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.svc.StartPractice(ctx, "stu", env.svc.PracticeConfig())
	require.NoError(t, err)

	eval, err := env.svc.FinishPractice(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, eval.Score)
	assert.Len(t, eval.Recommendations, 1)

	_, err = env.store.MasteryRepo().LatestFor(ctx, "stu", "linear-equations")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// flakyMastery fails the next fail appends.
type flakyMastery struct {
	store.MasteryRepo
	fail int
}

func (m *flakyMastery) Append(ctx context.Context, rec *store.MasteryRecord) error {
	if m.fail > 0 {
		m.fail--
		return errors.New("disk full")
	}
	return m.MasteryRepo.Append(ctx, rec)
}

func TestFinishPractice_RetryAppliesPendingResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flaky := &flakyMastery{MasteryRepo: env.store.MasteryRepo()}
	repos := ReposFrom(env.store)
	repos.Mastery = flaky
	svc := New(repos, env.svc.catalog, env.svc.generator,
		WithClock(env.clock.now), WithIDs(env.svc.newID), WithMetrics(env.metrics))

	sess, err := svc.StartPractice(ctx, "stu", svc.PracticeConfig())
	require.NoError(t, err)
	answerAll(t, svc, sess, true)

	flaky.fail = 1
	_, err = svc.FinishPractice(ctx, sess.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	stored, err := svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, stored.Closed())
	assert.True(t, stored.FeedbackPending())
	_, err = env.store.MasteryRepo().LatestFor(ctx, "stu", "linear-equations")
	assert.ErrorIs(t, err, store.ErrNotFound)

	eval, err := svc.FinishPractice(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, eval.Score)
	assert.Equal(t, 100, *eval.Score)

	rec, err := env.store.MasteryRepo().LatestFor(ctx, "stu", "linear-equations")
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.Inputs.PracticeAccuracy)

	history, err := svc.ProfileHistory(ctx, "stu", 0)
	require.NoError(t, err)
	assert.Len(t, history, len(sess.ModeStats()))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SessionsFinished))

	_, err = svc.FinishPractice(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrSessionClosed)
}

func TestSessionErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.svc.StartPractice(ctx, "stu", env.svc.PracticeConfig())
	require.NoError(t, err)
	q := sess.Questions[0]

	_, err = env.svc.SubmitAnswer(ctx, sess.ID, "missing", "1")
	assert.ErrorIs(t, err, session.ErrUnknownQuestion)

	_, err = env.svc.SubmitAnswer(ctx, sess.ID, q.ID, q.CorrectAnswer)
	require.NoError(t, err)
	_, err = env.svc.SubmitAnswer(ctx, sess.ID, q.ID, q.CorrectAnswer)
	assert.ErrorIs(t, err, session.ErrAlreadyAnswered)

	_, err = env.svc.FinishPractice(ctx, sess.ID)
	require.NoError(t, err)
	_, err = env.svc.FinishPractice(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrSessionClosed)
	_, err = env.svc.SubmitAnswer(ctx, sess.ID, sess.Questions[1].ID, "1")
	assert.ErrorIs(t, err, session.ErrSessionClosed)

	_, err = env.svc.FinishPractice(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessions_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.StartPractice(ctx, "stu", env.svc.PracticeConfig())
	require.NoError(t, err)
	env.clock.advance(time.Hour)
	second, err := env.svc.StartPractice(ctx, "stu", env.svc.PracticeConfig())
	require.NoError(t, err)

	list, err := env.svc.Sessions(ctx, "stu", 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestApplyLearningEvent_ConcurrentUpdatesSerialize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := vark.Event{Mode: vark.Kinesthetic, MasteryGain: 90, EngagementGain: 80}

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.ApplyLearningEvent(ctx, "stu", ev)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	events := make([]vark.Event, n)
	for i := range events {
		events[i] = ev
	}
	want := vark.Replay(vark.Default(), events...)

	got, err := env.svc.Profile(ctx, "stu")
	require.NoError(t, err)
	assert.InDelta(t, want.Visual, got.Visual, 1e-9)
	assert.InDelta(t, want.Auditory, got.Auditory, 1e-9)
	assert.InDelta(t, want.Reading, got.Reading, 1e-9)
	assert.InDelta(t, want.Kinesthetic, got.Kinesthetic, 1e-9)
	assert.InDelta(t, 100, got.Sum(), 1e-6)

	history, err := env.svc.ProfileHistory(ctx, "stu", 0)
	require.NoError(t, err)
	assert.Len(t, history, n)
	assert.Equal(t, float64(n), testutil.ToFloat64(env.metrics.ProfileUpdates.WithLabelValues(SourceEvent)))
	assert.Equal(t, 0, env.svc.locker.(*LocalLocker).held())
}

func TestSetProfileFromSurvey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.SetProfileFromSurvey(ctx, "stu", vark.Answers{"q1": "a", "q2": "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Answered)
	assert.Equal(t, vark.Visual, res.DominantStyles[0])

	got, err := env.svc.Profile(ctx, "stu")
	require.NoError(t, err)
	assert.Equal(t, res.Scores, got)
	assert.Equal(t, 100.0, got.Visual)

	history, err := env.svc.ProfileHistory(ctx, "stu", 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, SourceSurvey, history[0].Source)
	assert.Equal(t, vark.Default(), history[0].Before)
}

func TestFeed_CatalogContentAndRecency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.svc.Feed(ctx, "stu", "fractions", nil)
	require.NoError(t, err)
	require.NotEmpty(t, before)
	for _, r := range before {
		assert.Equal(t, "fractions", r.Content.Concept)
		assert.Equal(t, recommend.FreshnessWindowDays, r.Content.LastSeenDaysAgo)
	}
	for i := 1; i < len(before); i++ {
		assert.GreaterOrEqual(t, before[i-1].Score, before[i].Score)
	}

	require.NoError(t, env.svc.MarkSeen(ctx, "stu", "fr-pizza-visual"))
	env.clock.advance(3 * 24 * time.Hour)

	after, err := env.svc.Feed(ctx, "stu", "fractions", nil)
	require.NoError(t, err)
	found := false
	for _, r := range after {
		if r.Content.ID == "fr-pizza-visual" {
			found = true
			assert.Equal(t, 3, r.Content.LastSeenDaysAgo)
		}
	}
	assert.True(t, found)
}

func TestFeed_ExplicitContents(t *testing.T) {
	env := newTestEnv(t)
	items := []recommend.Content{
		{ID: "a", Concept: "fractions", Difficulty: 90, Mode: vark.Reading, LastSeenDaysAgo: 0},
		{ID: "b", Concept: "fractions", Difficulty: 15, Mode: vark.Visual, LastSeenDaysAgo: 30},
	}
	ranked, err := env.svc.Feed(context.Background(), "stu", "fractions", items)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	// a: 25*0.4 + 90*0.3; b: 25*0.4 + 15*0.3 + 100*0.1
	assert.Equal(t, "a", ranked[0].Content.ID)
	assert.Equal(t, 37, ranked[0].Score)
	assert.Equal(t, "b", ranked[1].Content.ID)
	assert.Equal(t, 25, ranked[1].Score)
}
