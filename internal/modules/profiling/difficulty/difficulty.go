// Package difficulty checks a user's self-declared starting difficulty against
// their technical-exposure answers. The result is advisory.
package difficulty

import (
	"fmt"
	"math"
	"strings"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierNovice       Tier = "novice"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierElite        Tier = "elite"
)

// Range is an inclusive tech-score interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

func (r Range) Midpoint() float64 { return float64(r.Min+r.Max) / 2 }

// nearMidpoint is how far from the range midpoint a score may sit and still
// earn high confidence.
const nearMidpoint = 5.0

var tiers = []struct {
	tier Tier
	rng  Range
}{
	{TierBeginner, Range{0, 9}},
	{TierNovice, Range{10, 21}},
	{TierIntermediate, Range{22, 35}},
	{TierAdvanced, Range{36, 47}},
	{TierElite, Range{48, 60}},
}

// Tiers lists the tiers from easiest to hardest.
func Tiers() []Tier {
	out := make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, t.tier)
	}
	return out
}

func (t Tier) Range() (Range, bool) {
	for _, x := range tiers {
		if x.tier == t {
			return x.rng, true
		}
	}
	return Range{}, false
}

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := t.Range(); !ok {
		return "", fmt.Errorf("difficulty %q: %w", s, perrors.ErrUnknownDifficulty)
	}
	return t, nil
}

// TierFor returns the tier whose range contains score.
func TierFor(score int) (Tier, bool) {
	for _, x := range tiers {
		if x.rng.Contains(score) {
			return x.tier, true
		}
	}
	return "", false
}

// TechScore sums, over technical-exposure responses, the largest point value
// in each selected option. Responses to other modules are ignored.
func TechScore(c *catalog.Catalog, responses []session.Response) (int, error) {
	total := 0
	for _, r := range responses {
		q, ok := c.Question(r.QuestionID)
		if !ok {
			return 0, fmt.Errorf("tech score %q: %w", r.QuestionID, perrors.ErrUnknownQuestion)
		}
		if q.Module != catalog.ModuleTechnicalExposure {
			continue
		}
		opt, ok := q.Option(r.Value)
		if !ok {
			return 0, fmt.Errorf("tech score %q value %q: %w", r.QuestionID, r.Value, perrors.ErrInvalidOption)
		}
		total += opt.Points.Max()
	}
	return total, nil
}

type Verification struct {
	DeclaredDifficulty  Tier   `json:"declared_difficulty"`
	TechScore           int    `json:"tech_score"`
	IsRealistic         bool   `json:"is_realistic"`
	Confidence          string `json:"confidence"`
	SuggestedDifficulty Tier   `json:"suggested_difficulty,omitempty"`
	Reasoning           string `json:"reasoning"`
}

// Verify reconciles declared against techScore. declared must be a known tier.
func Verify(techScore int, declared Tier) Verification {
	v := Verification{DeclaredDifficulty: declared, TechScore: techScore}
	rng, _ := declared.Range()

	if rng.Contains(techScore) {
		v.IsRealistic = true
		if math.Abs(float64(techScore)-rng.Midpoint()) <= nearMidpoint {
			v.Confidence = "high"
			v.Reasoning = fmt.Sprintf("Your technical exposure score of %d sits squarely within the %s range (%d-%d).",
				techScore, declared, rng.Min, rng.Max)
		} else {
			v.Confidence = "medium"
			v.Reasoning = fmt.Sprintf("Your technical exposure score of %d is within the %s range (%d-%d) but close to its edge.",
				techScore, declared, rng.Min, rng.Max)
		}
		return v
	}

	v.Confidence = "low"
	suggested, ok := TierFor(techScore)
	if !ok {
		suggested = TierIntermediate
	}
	v.SuggestedDifficulty = suggested
	direction := "above"
	if techScore < rng.Min {
		direction = "below"
	}
	v.Reasoning = fmt.Sprintf("Your technical exposure score of %d is %s the %s range (%d-%d); %s is a better starting point.",
		techScore, direction, declared, rng.Min, rng.Max, suggested)
	return v
}
