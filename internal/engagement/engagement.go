// Package engagement computes an engagement index from usage telemetry and
// classifies it into a coarse level.
package engagement

import "github.com/abhisek/learnpath/internal/signal"

const (
	LoginWeight       = 0.25
	ContentWeight     = 0.25
	AIUsageWeight     = 0.20
	ProjectWeight     = 0.20
	ConsistencyWeight = 0.10
)

// Level is the categorical engagement band.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Inputs holds usage telemetry, each signal nominally 0-100.
type Inputs struct {
	LoginFrequency       float64 `json:"loginFrequency"`
	ContentInteraction   float64 `json:"contentInteraction"`
	AIUsage              float64 `json:"aiUsage"`
	ProjectParticipation float64 `json:"projectParticipation"`
	ConsistencyScore     float64 `json:"consistencyScore"`
}

// Result is an engagement score with its level.
type Result struct {
	Score int   `json:"score"`
	Level Level `json:"level"`
}

// Score computes the engagement index for the given telemetry.
func Score(in Inputs) Result {
	raw := signal.Clamp(in.LoginFrequency)*LoginWeight +
		signal.Clamp(in.ContentInteraction)*ContentWeight +
		signal.Clamp(in.AIUsage)*AIUsageWeight +
		signal.Clamp(in.ProjectParticipation)*ProjectWeight +
		signal.Clamp(in.ConsistencyScore)*ConsistencyWeight
	score := signal.Score(raw)
	return Result{Score: score, Level: LevelFor(score)}
}

// LevelFor classifies a score. Both 40 and 70 are medium.
func LevelFor(score int) Level {
	switch {
	case score < 40:
		return LevelLow
	case score > 70:
		return LevelHigh
	default:
		return LevelMedium
	}
}

// Label returns a human-readable description of the score for display.
func Label(score int) string {
	switch {
	case score >= 75:
		return "Highly Engaged"
	case score >= 50:
		return "Moderately Engaged"
	default:
		return "Low Engagement"
	}
}
