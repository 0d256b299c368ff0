package session

import (
	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/mastery"
)

// Evaluation summarizes a finished session for the learner.
type Evaluation struct {
	Score           *int     `json:"score,omitempty"`
	MasteryChange   int      `json:"masteryChange"`
	Recommendations []string `json:"recommendations"`

	// NextPractice is filled by callers that know the student's gaps.
	NextPractice *gaps.Gap `json:"nextPractice,omitempty"`
}

const noAnswers = "No questions were answered in this session. Start a new session when you're ready."

// Evaluate scores s and derives recommendations from the score band.
// The result depends only on the score.
func Evaluate(s *Session) Evaluation {
	score := s.Score
	if score == nil {
		if v, ok := ScoreFor(s.QuestionsAnswered, s.CorrectAnswers); ok {
			score = &v
		}
	}
	if score == nil {
		return Evaluation{Recommendations: []string{noAnswers}}
	}
	return Evaluation{
		Score:           score,
		MasteryChange:   mastery.Change(*score),
		Recommendations: Recommendations(*score),
	}
}

// Recommendations returns the feedback lines for a session score.
func Recommendations(score int) []string {
	switch {
	case score >= 90:
		return []string{
			"Excellent work! You've mastered this concept well.",
			"Consider moving to more challenging material.",
		}
	case score >= 70:
		return []string{
			"Good progress! A bit more practice will solidify your understanding.",
		}
	case score >= 50:
		return []string{
			"You're getting there! Review the explanations for missed questions.",
			"Try watching a video explanation of this concept.",
		}
	default:
		return []string{
			"This concept needs more attention. Let's review the basics.",
			"Consider asking your teacher for additional help.",
		}
	}
}
