package recommend

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/vark"
)

func TestScore_Breakdown(t *testing.T) {
	profile := vark.Profile{Visual: 40, Auditory: 30, Reading: 20, Kinesthetic: 10}
	score, f := Score(Content{ID: "c1", Difficulty: 70, Mode: vark.Visual, LastSeenDaysAgo: 15}, 50, profile, 60)

	assert.Equal(t, Factors{StyleAlignment: 40, MasteryGap: 20, EngagementBoost: 60, Freshness: 50}, f)
	// 16 + 6 + 12 + 5
	assert.Equal(t, 39, score)
}

func TestScore_NoGapBelowMastery(t *testing.T) {
	_, f := Score(Content{Difficulty: 30, Mode: vark.Reading}, 80, vark.Default(), 0)
	assert.Equal(t, 0.0, f.MasteryGap)
}

func TestScore_NonFiniteInputs(t *testing.T) {
	score, f := Score(Content{Difficulty: math.NaN(), Mode: "unknown", LastSeenDaysAgo: -4}, math.Inf(1), vark.Default(), math.NaN())
	assert.Equal(t, 0, score)
	assert.Equal(t, Factors{}, f)
}

func TestFreshness(t *testing.T) {
	assert.Equal(t, 0.0, Freshness(0))
	assert.Equal(t, 0.0, Freshness(-1))
	assert.InDelta(t, 100.0/3, Freshness(10), 1e-9)
	assert.Equal(t, 100.0, Freshness(30))
	assert.Equal(t, 100.0, Freshness(365))
}

func TestRank_SortedAndComplete(t *testing.T) {
	profile := vark.Profile{Visual: 55, Auditory: 15, Reading: 20, Kinesthetic: 10}
	contents := []Content{
		{ID: "a", Difficulty: 20, Mode: vark.Auditory, LastSeenDaysAgo: 1},
		{ID: "b", Difficulty: 90, Mode: vark.Visual, LastSeenDaysAgo: 40},
		{ID: "c", Difficulty: 60, Mode: vark.Reading, LastSeenDaysAgo: 7},
		{ID: "d", Difficulty: 60, Mode: vark.Kinesthetic, LastSeenDaysAgo: 0},
	}
	ranked := Rank(contents, 50, profile, 70)

	require.Len(t, ranked, len(contents))
	assert.True(t, sort.SliceIsSorted(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score }))
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, "a", contents[0].ID, "input must not be reordered")
}

func TestRank_StableTies(t *testing.T) {
	contents := []Content{
		{ID: "first", Difficulty: 50, Mode: vark.Visual, LastSeenDaysAgo: 3},
		{ID: "second", Difficulty: 50, Mode: vark.Visual, LastSeenDaysAgo: 3},
		{ID: "third", Difficulty: 50, Mode: vark.Visual, LastSeenDaysAgo: 3},
	}
	ranked := Rank(contents, 10, vark.Default(), 40)
	ids := []string{ranked[0].ID, ranked[1].ID, ranked[2].ID}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
	assert.Equal(t, ranked[0].Score, ranked[2].Score)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, 50, vark.Default(), 50))
}

func TestTop(t *testing.T) {
	ranked := []Ranked{{Score: 3}, {Score: 2}, {Score: 1}}
	assert.Len(t, Top(ranked, 2), 2)
	assert.Len(t, Top(ranked, 0), 3)
	assert.Len(t, Top(ranked, 10), 3)
}
