package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestEvaluate_Bands(t *testing.T) {
	tests := []struct {
		score     int
		change    int
		firstLine string
		lines     int
	}{
		{100, 10, "Excellent work! You've mastered this concept well.", 2},
		{90, 8, "Excellent work! You've mastered this concept well.", 2},
		{70, 4, "Good progress! A bit more practice will solidify your understanding.", 1},
		{50, -2, "You're getting there! Review the explanations for missed questions.", 2},
		{49, -2, "This concept needs more attention. Let's review the basics.", 2},
		{0, -7, "This concept needs more attention. Let's review the basics.", 2},
	}
	for _, tc := range tests {
		ev := Evaluate(&Session{Status: StatusClosed, Score: intPtr(tc.score)})
		require.NotNil(t, ev.Score)
		assert.Equal(t, tc.score, *ev.Score)
		assert.Equal(t, tc.change, ev.MasteryChange, "score %d", tc.score)
		require.Len(t, ev.Recommendations, tc.lines, "score %d", tc.score)
		assert.Equal(t, tc.firstLine, ev.Recommendations[0])
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	a := Evaluate(&Session{Score: intPtr(64)})
	b := Evaluate(&Session{QuestionsAnswered: 25, CorrectAnswers: 16})
	assert.Equal(t, a, b)
}

func TestEvaluate_NoAnswers(t *testing.T) {
	ev := Evaluate(&Session{Status: StatusClosed})
	assert.Nil(t, ev.Score)
	assert.Equal(t, 0, ev.MasteryChange)
	assert.Equal(t, []string{noAnswers}, ev.Recommendations)
}
