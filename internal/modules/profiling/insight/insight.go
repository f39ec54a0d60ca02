// Package insight derives personality-style tags and a learning plan from a
// session's answers and its ranked recommendations.
package insight

import (
	"fmt"
	"slices"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/recommend"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
)

// closeScoreGap is the top-two score difference below which the user is
// advised to explore complementary tracks.
const closeScoreGap = 15.0

const maxCrossTrack = 2

type DeepInsights struct {
	PrimaryStrengths       []string         `json:"primary_strengths"`
	LearningPreferences    []string         `json:"learning_preferences"`
	CareerAlignment        string           `json:"career_alignment"`
	LearningPath           []string         `json:"learning_path"`
	RecommendedFoundations []string         `json:"recommended_foundations"`
	GrowthOpportunities    []string         `json:"growth_opportunities"`
	PersonalityTraits      map[Trait]string `json:"personality_traits"`
}

// Synthesize builds insights for ranked recommendations; recs must not be empty.
func Synthesize(c *catalog.Catalog, responses []session.Response, recs []recommend.Recommendation) (DeepInsights, error) {
	if len(recs) == 0 {
		return DeepInsights{}, fmt.Errorf("synthesize insights: no recommendations")
	}
	buckets, err := BucketCodes(c, responses)
	if err != nil {
		return DeepInsights{}, err
	}
	traits := Evaluate(DefaultRules, buckets)
	primary := recs[0]

	out := DeepInsights{
		PrimaryStrengths:       slices.Clone(primary.Strengths),
		LearningPreferences:    []string{traits[TraitLearningApproach], traits[TraitWorkStylePreference]},
		CareerAlignment:        careerAlignment(primary, traits),
		LearningPath:           slices.Clone(learningPathByTrack[primary.Track]),
		RecommendedFoundations: slices.Clone(foundationsByTrack[primary.Track]),
		GrowthOpportunities:    growthOpportunities(recs),
		PersonalityTraits:      traits,
	}
	return out, nil
}

func careerAlignment(primary recommend.Recommendation, traits map[Trait]string) string {
	s := fmt.Sprintf("%s suits your %s problem-solving style and %s way of working.",
		primary.Name, traits[TraitProblemSolvingStyle], traits[TraitCollaborationStyle])
	if len(primary.CareerSuggestions) > 0 {
		s += fmt.Sprintf(" A natural first role is %s.", primary.CareerSuggestions[0])
	}
	return s
}

func growthOpportunities(recs []recommend.Recommendation) []string {
	out := []string{}
	if len(recs) >= 2 && recs[0].Score-recs[1].Score < closeScoreGap {
		out = append(out, fmt.Sprintf(
			"Your %s and %s scores are close; explore complementary tracks before committing to one.",
			recs[0].Name, recs[1].Name))
	}
	cross := crossTrackByTrack[recs[0].Track]
	if len(cross) > maxCrossTrack {
		cross = cross[:maxCrossTrack]
	}
	return append(out, cross...)
}
