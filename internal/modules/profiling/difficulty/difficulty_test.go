package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

func TestRanges_DoNotOverlap(t *testing.T) {
	for score := 0; score <= 60; score++ {
		matches := 0
		for _, tier := range Tiers() {
			r, ok := tier.Range()
			require.True(t, ok)
			if r.Contains(score) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "score %d", score)
	}
	_, ok := TierFor(61)
	assert.False(t, ok)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Elite ")
	require.NoError(t, err)
	assert.Equal(t, TierElite, tier)

	_, err = ParseTier("grandmaster")
	assert.ErrorIs(t, err, perrors.ErrUnknownDifficulty)
}

func TestTechScore_UsesMaxPointOfTechnicalAnswersOnly(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	score, err := TechScore(c, []session.Response{
		{QuestionID: "te_1", Value: "b"}, // max 3
		{QuestionID: "te_2", Value: "d"}, // max 10
		{QuestionID: "cg_1", Value: "a"}, // not technical exposure
	})
	require.NoError(t, err)
	assert.Equal(t, 13, score)

	_, err = TechScore(c, []session.Response{{QuestionID: "gone", Value: "a"}})
	assert.ErrorIs(t, err, perrors.ErrUnknownQuestion)
}

func TestVerify_EliteWithLowScoreSuggestsBeginner(t *testing.T) {
	v := Verify(3, TierElite)

	assert.False(t, v.IsRealistic)
	assert.Equal(t, "low", v.Confidence)
	assert.Equal(t, TierBeginner, v.SuggestedDifficulty)
	assert.Contains(t, v.Reasoning, "below")
}

func TestVerify_ConfidenceNearMidpoint(t *testing.T) {
	// intermediate spans 22-35, midpoint 28.5
	high := Verify(28, TierIntermediate)
	assert.True(t, high.IsRealistic)
	assert.Equal(t, "high", high.Confidence)
	assert.Empty(t, high.SuggestedDifficulty)

	edge := Verify(22, TierIntermediate)
	assert.True(t, edge.IsRealistic)
	assert.Equal(t, "medium", edge.Confidence)
	assert.NotEmpty(t, edge.Reasoning)
}

func TestVerify_OutOfAnyRangeDefaultsToIntermediate(t *testing.T) {
	v := Verify(75, TierBeginner)
	assert.False(t, v.IsRealistic)
	assert.Equal(t, TierIntermediate, v.SuggestedDifficulty)
	assert.Contains(t, v.Reasoning, "above")
}
