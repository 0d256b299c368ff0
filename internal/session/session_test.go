package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/vark"
)

var t0 = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func questions(n int) []practice.Question {
	modes := []vark.Mode{vark.Visual, vark.Reading}
	qs := make([]practice.Question, n)
	for i := range qs {
		qs[i] = practice.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			ConceptID:     "fractions",
			Type:          practice.ShortAnswer,
			Text:          fmt.Sprintf("What is %d + 1?", i),
			CorrectAnswer: fmt.Sprint(i + 1),
			Explanation:   "add one",
			Mode:          modes[i%len(modes)],
		}
	}
	return qs
}

func TestSession_SevenOfTenScoresSeventy(t *testing.T) {
	s := New("s1", "stu", "fractions", "Fractions", questions(10), t0)
	for i := 0; i < 10; i++ {
		resp := fmt.Sprint(i + 1)
		if i >= 7 {
			resp = "wrong"
		}
		_, err := s.Submit(fmt.Sprintf("q%d", i+1), resp, t0.Add(time.Duration(i+1)*time.Second))
		require.NoError(t, err)
	}
	require.NoError(t, s.Finalize(t0.Add(time.Minute)))

	assert.Equal(t, 10, s.QuestionsAnswered)
	assert.Equal(t, 7, s.CorrectAnswers)
	require.NotNil(t, s.Score)
	assert.Equal(t, 70, *s.Score)
	assert.Equal(t, StatusClosed, s.Status)
	require.NotNil(t, s.CompletedAt)
	assert.Equal(t, t0.Add(time.Minute), *s.CompletedAt)
	assert.Equal(t, 60, s.TimeSpentSeconds)
}

func TestSession_Submit(t *testing.T) {
	s := New("s1", "stu", "fractions", "Fractions", questions(3), t0)

	res, err := s.Submit("q2", "2", t0.Add(5*time.Second))
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, "2", res.CorrectAnswer)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, int64(5000), s.Answers[0].ElapsedMs)

	res, err = s.Submit("q1", "nope", t0.Add(7*time.Second))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, int64(2000), s.Answers[1].ElapsedMs)

	_, err = s.Submit("q1", "1", t0.Add(8*time.Second))
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	_, err = s.Submit("q99", "1", t0)
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "q3", next.ID)
}

func TestSession_ClosedRejectsMutation(t *testing.T) {
	s := New("s1", "stu", "fractions", "Fractions", questions(2), t0)
	require.NoError(t, s.Finalize(t0))

	_, err := s.Submit("q1", "1", t0)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.Finalize(t0.Add(time.Hour)), ErrSessionClosed)
	assert.Equal(t, t0, *s.CompletedAt)

	_, ok := s.Next()
	assert.False(t, ok)
}

func TestSession_FinalizeWithoutAnswers(t *testing.T) {
	s := New("s1", "stu", "fractions", "Fractions", questions(2), t0)
	require.NoError(t, s.Finalize(t0.Add(time.Second)))
	assert.Nil(t, s.Score)
	assert.True(t, s.Closed())
}

func TestSession_FeedbackSteps(t *testing.T) {
	s := New("s1", "stu", "fractions", "Fractions", questions(2), t0)
	assert.False(t, s.FeedbackPending())

	_, err := s.Submit("q1", "1", t0)
	require.NoError(t, err)
	require.NoError(t, s.Finalize(t0.Add(time.Second)))
	assert.True(t, s.FeedbackPending())

	s.MarkApplied("mastery:fractions")
	s.MarkApplied("mastery:fractions")
	assert.Equal(t, []string{"mastery:fractions"}, s.Applied)
	assert.True(t, s.StepApplied("mastery:fractions"))
	assert.False(t, s.StepApplied("profile:visual"))

	s.FeedbackDone = true
	assert.False(t, s.FeedbackPending())
}

func TestSession_ModeStats(t *testing.T) {
	s := New("s1", "stu", "fractions", "Fractions", questions(4), t0)
	for _, sub := range []struct{ id, resp string }{{"q1", "1"}, {"q2", "x"}, {"q3", "3"}} {
		_, err := s.Submit(sub.id, sub.resp, t0)
		require.NoError(t, err)
	}
	stats := s.ModeStats()
	assert.Equal(t, ModeStat{Answered: 2, Correct: 2}, stats[vark.Visual])
	assert.Equal(t, ModeStat{Answered: 1, Correct: 0}, stats[vark.Reading])
	assert.Equal(t, 100.0, stats[vark.Visual].Accuracy())
	assert.Equal(t, 75.0, s.CompletionRatio())
}

func TestScoreFor(t *testing.T) {
	_, ok := ScoreFor(0, 0)
	assert.False(t, ok)

	score, ok := ScoreFor(3, 2)
	require.True(t, ok)
	assert.Equal(t, 67, score)

	score, _ = ScoreFor(8, 1) // 12.5
	assert.Equal(t, 13, score)
}
