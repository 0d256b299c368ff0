// Package recommend ranks learning content for a student.
//
// Each item is scored on four factors: how well its mode matches the
// student's VARK profile, how far its difficulty sits above current mastery,
// the student's current engagement, and how long ago the item was last seen.
// Ranking never drops items; eligibility filtering happens upstream.
package recommend

import (
	"math"
	"sort"

	"github.com/abhisek/learnpath/internal/signal"
	"github.com/abhisek/learnpath/internal/vark"
)

const (
	StyleWeight      = 0.4
	MasteryGapWeight = 0.3
	EngagementWeight = 0.2
	FreshnessWeight  = 0.1

	// FreshnessWindowDays is how long an item must go unseen to be fully fresh.
	FreshnessWindowDays = 30
)

// Content is a catalog entry considered for the feed.
type Content struct {
	ID              string    `json:"id" yaml:"id"`
	Concept         string    `json:"concept" yaml:"concept"`
	Title           string    `json:"title,omitempty" yaml:"title"`
	Difficulty      float64   `json:"difficulty" yaml:"difficulty"`
	Mode            vark.Mode `json:"learningMode" yaml:"mode"`
	LastSeenDaysAgo int       `json:"lastSeenDaysAgo" yaml:"-"`
}

// Factors is the per-factor breakdown behind a score, each in [0,100].
type Factors struct {
	StyleAlignment  float64 `json:"styleAlignment"`
	MasteryGap      float64 `json:"masteryGap"`
	EngagementBoost float64 `json:"engagementBoost"`
	Freshness       float64 `json:"freshness"`
}

// Ranked is a content item with its score.
type Ranked struct {
	Content
	Score   int     `json:"score"`
	Factors Factors `json:"factors"`
}

// Freshness maps days since last seen to [0,100] over a 30-day window.
// Negative values count as just seen.
func Freshness(lastSeenDaysAgo int) float64 {
	return signal.Clamp(math.Min(100, float64(lastSeenDaysAgo)/FreshnessWindowDays*100))
}

// Score computes the factors and the total score for one item.
func Score(c Content, masteryScore float64, profile vark.Profile, engagementScore float64) (int, Factors) {
	f := Factors{
		StyleAlignment:  signal.Clamp(profile.Get(c.Mode)),
		MasteryGap:      math.Max(0, signal.Clamp(c.Difficulty)-signal.Clamp(masteryScore)),
		EngagementBoost: signal.Clamp(engagementScore),
		Freshness:       Freshness(c.LastSeenDaysAgo),
	}
	raw := f.StyleAlignment*StyleWeight +
		f.MasteryGap*MasteryGapWeight +
		f.EngagementBoost*EngagementWeight +
		f.Freshness*FreshnessWeight
	return signal.Score(raw), f
}

// Rank scores every item and sorts by score, highest first. Items with
// equal scores keep their input order. The input slice is not modified.
func Rank(contents []Content, masteryScore float64, profile vark.Profile, engagementScore float64) []Ranked {
	out := make([]Ranked, len(contents))
	for i, c := range contents {
		score, f := Score(c, masteryScore, profile, engagementScore)
		out[i] = Ranked{Content: c, Score: score, Factors: f}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Top returns at most n ranked items. n <= 0 returns everything.
func Top(ranked []Ranked, n int) []Ranked {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
