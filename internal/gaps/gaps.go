// Package gaps turns a student's per-concept mastery history into a
// prioritized list of concept gaps with a practice difficulty pitched just
// above current ability.
package gaps

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/abhisek/learnpath/internal/signal"
)

// Priority is the urgency of a gap.
type Priority string

const (
	Critical Priority = "critical"
	High     Priority = "high"
	Medium   Priority = "medium"
	Low      Priority = "low"
)

// Rank orders priorities, most urgent first. Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case Critical:
		return 0
	case High:
		return 1
	case Medium:
		return 2
	case Low:
		return 3
	}
	return 4
}

// Record is the latest mastery observation for one concept.
type Record struct {
	ConceptID    string    `json:"conceptId"`
	ConceptName  string    `json:"conceptName"`
	MasteryScore float64   `json:"masteryScore"`
	LastActivity time.Time `json:"lastActivity,omitzero"`
}

// Gap is a concept that needs practice.
type Gap struct {
	ConceptID             string    `json:"conceptId"`
	ConceptName           string    `json:"conceptName"`
	MasteryScore          float64   `json:"masteryScore"`
	Priority              Priority  `json:"priority"`
	RecommendedDifficulty float64   `json:"recommendedDifficulty"`
	LastPracticed         time.Time `json:"lastPracticed,omitzero"`
}

// Thresholds are the mastery cutoffs for each priority band. A score below
// CriticalBelow is critical, below HighBelow high, below MediumBelow medium,
// and below MasteredAt low. Scores at or above MasteredAt are not gaps.
type Thresholds struct {
	CriticalBelow    float64 `json:"criticalBelow" yaml:"critical_below"`
	HighBelow        float64 `json:"highBelow" yaml:"high_below"`
	MediumBelow      float64 `json:"mediumBelow" yaml:"medium_below"`
	MasteredAt       float64 `json:"masteredAt" yaml:"mastered_at"`
	DifficultyBuffer float64 `json:"difficultyBuffer" yaml:"difficulty_buffer"`
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalBelow:    30,
		HighBelow:        50,
		MediumBelow:      65,
		MasteredAt:       80,
		DifficultyBuffer: 15,
	}
}

// Validate checks that the cutoffs are ordered and in range.
func (t Thresholds) Validate() error {
	cut := []float64{0, t.CriticalBelow, t.HighBelow, t.MediumBelow, t.MasteredAt, 100}
	for i := 1; i < len(cut); i++ {
		if math.IsNaN(cut[i]) || cut[i] < cut[i-1] {
			return fmt.Errorf("gap thresholds must satisfy 0 <= critical <= high <= medium <= mastered <= 100, got %v/%v/%v/%v",
				t.CriticalBelow, t.HighBelow, t.MediumBelow, t.MasteredAt)
		}
	}
	if t.DifficultyBuffer < 0 || t.DifficultyBuffer > 100 {
		return fmt.Errorf("difficulty buffer %v out of range [0,100]", t.DifficultyBuffer)
	}
	return nil
}

// PriorityFor classifies a mastery score. ok is false for mastered concepts.
func (t Thresholds) PriorityFor(mastery float64) (p Priority, ok bool) {
	switch {
	case mastery >= t.MasteredAt:
		return "", false
	case mastery < t.CriticalBelow:
		return Critical, true
	case mastery < t.HighBelow:
		return High, true
	case mastery < t.MediumBelow:
		return Medium, true
	default:
		return Low, true
	}
}

// Identify returns the gaps in history ordered by priority, then by mastery
// ascending, then by concept ID. When a concept appears more than once the
// record with the latest activity wins. Records without a concept ID are
// skipped. A zero Thresholds value means DefaultThresholds.
func Identify(history []Record, t Thresholds) []Gap {
	if t == (Thresholds{}) {
		t = DefaultThresholds()
	}

	latest := make(map[string]Record, len(history))
	order := make([]string, 0, len(history))
	for _, r := range history {
		if r.ConceptID == "" {
			continue
		}
		prev, seen := latest[r.ConceptID]
		if !seen {
			order = append(order, r.ConceptID)
		}
		if !seen || !r.LastActivity.Before(prev.LastActivity) {
			latest[r.ConceptID] = r
		}
	}

	out := make([]Gap, 0, len(order))
	for _, id := range order {
		r := latest[id]
		score := signal.Clamp(r.MasteryScore)
		p, ok := t.PriorityFor(score)
		if !ok {
			continue
		}
		name := r.ConceptName
		if name == "" {
			name = r.ConceptID
		}
		out = append(out, Gap{
			ConceptID:             r.ConceptID,
			ConceptName:           name,
			MasteryScore:          score,
			Priority:              p,
			RecommendedDifficulty: math.Min(100, score+t.DifficultyBuffer),
			LastPracticed:         r.LastActivity,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		if a.MasteryScore != b.MasteryScore {
			return a.MasteryScore < b.MasteryScore
		}
		return a.ConceptID < b.ConceptID
	})
	return out
}

// ReviewGap is the low-priority gap practiced when a student has no gaps yet.
func ReviewGap(conceptID, conceptName string) Gap {
	return Gap{
		ConceptID:             conceptID,
		ConceptName:           conceptName,
		MasteryScore:          70,
		Priority:              Low,
		RecommendedDifficulty: 75,
	}
}

// NextPractice picks what to practice after a session on currentConcept.
// A score of 80 or more moves on to the most urgent other gap. A lower score
// repeats the current concept ten points easier, never below 10. ok is false
// when there is nothing to recommend.
func NextPractice(currentConcept string, score int, all []Gap) (Gap, bool) {
	if score >= 80 {
		for _, g := range all {
			if g.ConceptID != currentConcept {
				return g, true
			}
		}
		return Gap{}, false
	}
	for _, g := range all {
		if g.ConceptID == currentConcept {
			g.RecommendedDifficulty = math.Max(10, g.RecommendedDifficulty-10)
			return g, true
		}
	}
	return Gap{}, false
}
