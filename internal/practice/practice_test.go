package practice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/vark"
)

func testBank() map[string][]Question {
	return map[string][]Question{
		"linear-equations": {
			{ID: "le-1", ConceptName: "Linear Equations", Text: "Solve for x: 2x + 5 = 15", Type: ShortAnswer, CorrectAnswer: "5", Explanation: "x = 5", Difficulty: 30, Mode: vark.Reading},
			{ID: "le-2", ConceptName: "Linear Equations", Text: "What is the slope of the line y = 3x - 7?", Type: MultipleChoice, Options: []string{"3", "-7", "7", "-3"}, CorrectAnswer: "3", Explanation: "m = 3", Difficulty: 40, Mode: vark.Visual},
			{ID: "le-3", ConceptName: "Linear Equations", Text: "True or False: 4x - 8 = 0 has solution x = 2", Type: TrueFalse, CorrectAnswer: "true", Explanation: "8 - 8 = 0", Difficulty: 25, Mode: vark.Reading},
			{ID: "le-4", ConceptName: "Linear Equations", Text: "If 5x = 25, then x = ___", Type: FillBlank, CorrectAnswer: "5", Explanation: "25/5", Difficulty: 20, Mode: vark.Kinesthetic},
		},
		"fractions": {
			{ID: "fr-1", ConceptName: "Fractions", Text: "Simplify: 12/18", Type: ShortAnswer, CorrectAnswer: "2/3", Explanation: "gcd 6", Difficulty: 30, Mode: vark.Visual},
			{ID: "fr-2", ConceptName: "Fractions", Text: "What is 1/4 + 1/2?", Type: MultipleChoice, Options: []string{"3/4", "2/6", "1/6", "2/4"}, CorrectAnswer: "3/4", Explanation: "1/4 + 2/4", Difficulty: 35, Mode: vark.Kinesthetic},
		},
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("q%d", n)
	}
}

func newTestGenerator(src Source) *Generator {
	g := NewGenerator(src)
	g.newID = seqIDs()
	return g
}

func countModes(qs []Question) map[vark.Mode]int {
	out := map[vark.Mode]int{}
	for _, q := range qs {
		out[q.Mode]++
	}
	return out
}

func TestPlanModes_Proportional(t *testing.T) {
	plan := PlanModes(vark.Profile{Visual: 50, Auditory: 25, Reading: 25}, 4)
	assert.Equal(t, []vark.Mode{vark.Visual, vark.Auditory, vark.Reading, vark.Visual}, plan)

	plan = PlanModes(vark.Default(), 9)
	require.Len(t, plan, 9)
	assert.Equal(t, vark.Visual, plan[0])
	c := map[vark.Mode]int{}
	for _, m := range plan {
		c[m]++
	}
	assert.Equal(t, map[vark.Mode]int{vark.Visual: 3, vark.Auditory: 2, vark.Reading: 2, vark.Kinesthetic: 2}, c)
}

func TestPlanModes_DominantOnly(t *testing.T) {
	plan := PlanModes(vark.Profile{Kinesthetic: 100}, 3)
	assert.Equal(t, []vark.Mode{vark.Kinesthetic, vark.Kinesthetic, vark.Kinesthetic}, plan)
}

func TestPlanModes_EdgeCases(t *testing.T) {
	assert.Nil(t, PlanModes(vark.Default(), 0))
	assert.Len(t, PlanModes(vark.Profile{}, 4), 4)
}

func TestBankSource_PrefersSlotModeAndSkipsHard(t *testing.T) {
	src := NewBankSource(testBank())
	qs, err := src.Questions(context.Background(), Request{
		Gap:              gaps.Gap{ConceptID: "linear-equations", ConceptName: "Linear Equations", RecommendedDifficulty: 15},
		Modes:            []vark.Mode{vark.Visual, vark.Reading, vark.Reading},
		Profile:          vark.Profile{Visual: 40, Reading: 30, Kinesthetic: 20, Auditory: 10},
		DifficultyBuffer: 15,
	})
	require.NoError(t, err)
	require.Len(t, qs, 3)

	// le-2 (difficulty 40) exceeds 15+15, so the visual slot takes the
	// next preferred mode, then the reading slots take the reading items.
	assert.Equal(t, "le-3", qs[0].TemplateID)
	assert.Equal(t, "le-1", qs[1].TemplateID)
	assert.Equal(t, "le-4", qs[2].TemplateID)
	for _, q := range qs {
		assert.Equal(t, "linear-equations", q.ConceptID)
	}
}

func TestBankSource_GenericFallback(t *testing.T) {
	src := NewBankSource(testBank())
	qs, err := src.Questions(context.Background(), Request{
		Gap:   gaps.Gap{ConceptID: "statistics", ConceptName: "Statistics", RecommendedDifficulty: 50},
		Modes: []vark.Mode{vark.Auditory, vark.Auditory, vark.Visual, vark.Reading},
	})
	require.NoError(t, err)
	require.Len(t, qs, 4)

	assert.Equal(t, []QuestionType{MultipleChoice, TrueFalse, ShortAnswer, MultipleChoice},
		[]QuestionType{qs[0].Type, qs[1].Type, qs[2].Type, qs[3].Type})
	assert.Equal(t, "Practice question 1 for Statistics", qs[0].Text)
	assert.Equal(t, []string{"Option A", "Option B", "Option C", "Option D"}, qs[0].Options)
	assert.Equal(t, "true", qs[1].CorrectAnswer)
	assert.Equal(t, vark.Visual, qs[2].Mode)
	assert.Empty(t, qs[0].TemplateID)

	assert.Empty(t, qs[2].Options)
	assert.Equal(t, "Statistics", qs[2].CorrectAnswer)
	assert.True(t, CheckAnswer(qs[2], "statistics"))
	for _, q := range qs {
		assert.True(t, CheckAnswer(q, q.CorrectAnswer), "%s rejects its own answer", q.Type)
	}
}

func TestBankSource_TopsUpWhenTemplatesRunOut(t *testing.T) {
	src := NewBankSource(testBank())
	qs, err := src.Questions(context.Background(), Request{
		Gap:   gaps.Gap{ConceptID: "fractions", ConceptName: "Fractions", RecommendedDifficulty: 40},
		Modes: []vark.Mode{vark.Visual, vark.Visual, vark.Visual},
	})
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "fr-1", qs[0].TemplateID)
	assert.Equal(t, "fr-2", qs[1].TemplateID)
	assert.Empty(t, qs[2].TemplateID)
}

func TestGenerate_DefaultConfig(t *testing.T) {
	gen := newTestGenerator(NewBankSource(testBank()))
	gapList := []gaps.Gap{
		{ConceptID: "fractions", ConceptName: "Fractions", Priority: gaps.Critical, MasteryScore: 20, RecommendedDifficulty: 35},
		{ConceptID: "linear-equations", ConceptName: "Linear Equations", Priority: gaps.High, MasteryScore: 40, RecommendedDifficulty: 55},
	}
	qs, err := gen.Generate(context.Background(), gapList, vark.Default(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, qs, 6)

	for i, q := range qs {
		assert.Equal(t, fmt.Sprintf("q%d", i+1), q.ID)
		assert.False(t, q.Review)
	}
	for _, q := range qs[:3] {
		assert.Equal(t, "fractions", q.ConceptID)
		assert.Equal(t, 35.0, q.Difficulty)
	}
	for _, q := range qs[3:] {
		assert.Equal(t, "linear-equations", q.ConceptID)
		assert.Equal(t, 55.0, q.Difficulty)
	}
}

func TestGenerate_ModesFollowProfile(t *testing.T) {
	gen := newTestGenerator(NewBankSource(nil))
	gapList := []gaps.Gap{
		{ConceptID: "a", ConceptName: "A", RecommendedDifficulty: 20},
		{ConceptID: "b", ConceptName: "B", RecommendedDifficulty: 30},
	}
	profile := vark.Profile{Visual: 10, Auditory: 10, Reading: 20, Kinesthetic: 60}
	qs, err := gen.Generate(context.Background(), gapList, profile, Config{TargetConceptCount: 2, QuestionsPerConcept: 5})
	require.NoError(t, err)
	require.Len(t, qs, 10)

	assert.Equal(t, map[vark.Mode]int{vark.Visual: 1, vark.Auditory: 1, vark.Reading: 2, vark.Kinesthetic: 6}, countModes(qs))
	assert.Equal(t, vark.Kinesthetic, qs[0].Mode)
}

func TestGenerate_LimitsConceptsAndAddsReview(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	gen := newTestGenerator(NewBankSource(nil))
	gapList := []gaps.Gap{
		{ConceptID: "a", ConceptName: "A", Priority: gaps.Critical, RecommendedDifficulty: 20},
		{ConceptID: "b", ConceptName: "B", Priority: gaps.High, RecommendedDifficulty: 40, LastPracticed: now},
		{ConceptID: "c", ConceptName: "C", Priority: gaps.Medium, RecommendedDifficulty: 60, LastPracticed: now.Add(-48 * time.Hour)},
		{ConceptID: "d", ConceptName: "D", Priority: gaps.Low, RecommendedDifficulty: 80, LastPracticed: now.Add(-24 * time.Hour)},
	}
	cfg := Config{TargetConceptCount: 2, QuestionsPerConcept: 2, IncludeSpacedRepetition: true}
	qs, err := gen.Generate(context.Background(), gapList, vark.Default(), cfg)
	require.NoError(t, err)
	require.Len(t, qs, 5)

	last := qs[4]
	assert.True(t, last.Review)
	assert.Equal(t, "c", last.ConceptID)
	assert.Equal(t, 60.0, last.Difficulty)
	assert.Equal(t, vark.Visual, last.Mode)

	cfg.IncludeSpacedRepetition = false
	qs, err = gen.Generate(context.Background(), gapList, vark.Default(), cfg)
	require.NoError(t, err)
	assert.Len(t, qs, 4)
}

func TestGenerate_NoReviewWhenAllGapsTargeted(t *testing.T) {
	gen := newTestGenerator(NewBankSource(testBank()))
	review := gaps.ReviewGap("linear-equations", "Linear Equations")
	qs, err := gen.Generate(context.Background(), []gaps.Gap{review}, vark.Default(), ReviewConfig())
	require.NoError(t, err)
	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.False(t, q.Review)
		assert.Equal(t, 75.0, q.Difficulty)
	}
}

func TestGenerate_EmptyGaps(t *testing.T) {
	gen := newTestGenerator(NewBankSource(testBank()))
	qs, err := gen.Generate(context.Background(), nil, vark.Default(), DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, qs)
}

type failingSource struct{}

func (failingSource) Questions(context.Context, Request) ([]Question, error) {
	return nil, fmt.Errorf("boom")
}

func TestGenerate_SourceError(t *testing.T) {
	gen := newTestGenerator(failingSource{})
	_, err := gen.Generate(context.Background(), []gaps.Gap{{ConceptID: "x"}}, vark.Default(), DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating questions for x")
}

func TestConfig_Normalized(t *testing.T) {
	c := Config{DifficultyBuffer: -5}.normalized()
	assert.Equal(t, 3, c.TargetConceptCount)
	assert.Equal(t, 3, c.QuestionsPerConcept)
	assert.Equal(t, 0.0, c.DifficultyBuffer)
	assert.False(t, c.IncludeSpacedRepetition)
}
