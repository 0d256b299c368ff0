package practice

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/vark"
)

// Request asks a Source for the questions of one gap.
type Request struct {
	Gap gaps.Gap

	// Modes holds the preferred learning mode of each question slot.
	// The number of questions wanted is len(Modes).
	Modes []vark.Mode

	// Profile is the learner's VARK profile, used to break ties.
	Profile vark.Profile

	// DifficultyBuffer is how far above the gap's recommended difficulty
	// a template may be.
	DifficultyBuffer float64
}

// Source produces the questions for one gap.
type Source interface {
	Questions(ctx context.Context, req Request) ([]Question, error)
}

// BankSource draws questions from per-concept templates, falling back to
// generic questions when a concept has no templates or runs out of
// eligible ones.
type BankSource struct {
	templates map[string][]Question
}

// NewBankSource creates a BankSource over templates keyed by concept ID.
func NewBankSource(templates map[string][]Question) *BankSource {
	return &BankSource{templates: templates}
}

// Templates returns the templates for a concept.
func (b *BankSource) Templates(conceptID string) []Question {
	return b.templates[conceptID]
}

// Questions fills every slot in req.Modes. For each slot it picks the
// unused eligible template whose mode matches the slot, then whose mode the
// learner prefers, then whose difficulty is closest to the target.
// A template is eligible when its difficulty is at most the recommended
// difficulty plus the buffer.
func (b *BankSource) Questions(_ context.Context, req Request) ([]Question, error) {
	target := req.Gap.RecommendedDifficulty
	limit := target + req.DifficultyBuffer

	var eligible []Question
	for _, t := range b.templates[req.Gap.ConceptID] {
		if t.Difficulty <= limit {
			eligible = append(eligible, t)
		}
	}

	rank := modeRank(req.Profile)
	used := make([]bool, len(eligible))
	out := make([]Question, 0, len(req.Modes))
	generic := 0
	for _, mode := range req.Modes {
		best := -1
		for i, t := range eligible {
			if used[i] {
				continue
			}
			if best < 0 || preferTemplate(t, eligible[best], mode, rank, target) {
				best = i
			}
		}
		if best < 0 {
			out = append(out, genericQuestion(req.Gap, generic, mode))
			generic++
			continue
		}
		used[best] = true
		q := eligible[best]
		q.TemplateID = q.ID
		q.ConceptID = req.Gap.ConceptID
		if q.ConceptName == "" {
			q.ConceptName = req.Gap.ConceptName
		}
		out = append(out, q)
	}
	return out, nil
}

// preferTemplate reports whether a should be chosen over b for a slot.
func preferTemplate(a, b Question, slot vark.Mode, rank map[vark.Mode]int, target float64) bool {
	am, bm := a.Mode == slot, b.Mode == slot
	if am != bm {
		return am
	}
	if rank[a.Mode] != rank[b.Mode] {
		return rank[a.Mode] < rank[b.Mode]
	}
	return math.Abs(a.Difficulty-target) < math.Abs(b.Difficulty-target)
}

// modeRank maps each mode to its position in the learner's preference order.
func modeRank(p vark.Profile) map[vark.Mode]int {
	rank := make(map[vark.Mode]int, len(vark.Modes))
	for i, m := range p.Ranked() {
		rank[m] = i
	}
	return rank
}

var genericTypes = []QuestionType{MultipleChoice, TrueFalse, ShortAnswer}

// genericQuestion builds the i-th placeholder question for a concept with
// no usable templates. Types cycle through multiple choice, true/false and
// short answer.
func genericQuestion(gap gaps.Gap, i int, mode vark.Mode) Question {
	typ := genericTypes[i%len(genericTypes)]
	q := Question{
		ConceptID:   gap.ConceptID,
		ConceptName: gap.ConceptName,
		Mode:        mode,
		Difficulty:  gap.RecommendedDifficulty,
		Type:        typ,
		Text:        fmt.Sprintf("Practice question %d for %s", i+1, gap.ConceptName),
		Explanation: fmt.Sprintf("This helps reinforce your understanding of %s", gap.ConceptName),
	}
	switch typ {
	case MultipleChoice:
		q.Options = []string{"Option A", "Option B", "Option C", "Option D"}
		q.CorrectAnswer = "Option A"
	case TrueFalse:
		q.CorrectAnswer = "true"
	default:
		q.Text = fmt.Sprintf("Practice question %d: name the concept you are practicing.", i+1)
		q.CorrectAnswer = gap.ConceptName
	}
	return q
}

// SortTemplates orders templates by difficulty then ID, for stable display.
func SortTemplates(ts []Question) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Difficulty != ts[j].Difficulty {
			return ts[i].Difficulty < ts[j].Difficulty
		}
		return ts[i].ID < ts[j].ID
	})
}
