// Package mastery computes a learner's mastery score for a single concept.
//
// The score is a weighted average of four bounded signals. Summative
// assessment carries the most weight, formative practice is secondary, and
// AI-help effectiveness and study consistency only nudge the result so the
// score reflects demonstrated competence more than assistance received.
package mastery

import "github.com/abhisek/learnpath/internal/signal"

const (
	AssessmentWeight  = 0.5
	PracticeWeight    = 0.3
	AIHelpWeight      = 0.1
	ConsistencyWeight = 0.1
)

// Inputs holds the raw signals for one concept, each nominally 0-100.
type Inputs struct {
	AssessmentScore       float64 `json:"assessmentScore"`
	PracticeAccuracy      float64 `json:"practiceAccuracy"`
	AIHelpEffectiveness   float64 `json:"aiHelpEffectiveness"`
	EngagementConsistency float64 `json:"engagementConsistency"`
}

// Clamped returns a copy with every signal clamped to [0,100].
func (in Inputs) Clamped() Inputs {
	return Inputs{
		AssessmentScore:       signal.Clamp(in.AssessmentScore),
		PracticeAccuracy:      signal.Clamp(in.PracticeAccuracy),
		AIHelpEffectiveness:   signal.Clamp(in.AIHelpEffectiveness),
		EngagementConsistency: signal.Clamp(in.EngagementConsistency),
	}
}

// Score returns the mastery score as an integer in [0,100].
func Score(in Inputs) int {
	c := in.Clamped()
	raw := c.AssessmentScore*AssessmentWeight +
		c.PracticeAccuracy*PracticeWeight +
		c.AIHelpEffectiveness*AIHelpWeight +
		c.EngagementConsistency*ConsistencyWeight
	return signal.Score(raw)
}
