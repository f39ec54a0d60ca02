package recommend

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const (
	// SecondaryThreshold is the minimum score for surfacing a secondary track.
	SecondaryThreshold   = 40.0
	maxCareerSuggestions = 4
)

type Recommendation struct {
	Track             catalog.TrackKey `json:"track"`
	Name              string           `json:"name"`
	Score             float64          `json:"score"`
	Rank              int              `json:"rank"`
	Confidence        Confidence       `json:"confidence"`
	Reasoning         []string         `json:"reasoning"`
	Strengths         []string         `json:"strengths"`
	OptimalPath       string           `json:"optimal_path"`
	CareerSuggestions []string         `json:"career_suggestions"`
}

// Rank orders every catalog track by score, highest first. Equal scores keep
// catalog declaration order.
func Rank(c *catalog.Catalog, scores map[catalog.TrackKey]float64) ([]Recommendation, error) {
	tracks := c.Tracks()
	for _, t := range tracks {
		if _, ok := scores[t.Key]; !ok {
			return nil, fmt.Errorf("rank tracks: %q has no score: %w", t.Key, perrors.ErrUnknownTrack)
		}
	}
	slices.SortStableFunc(tracks, func(a, b catalog.Track) int {
		return cmp.Compare(scores[b.Key], scores[a.Key])
	})

	out := make([]Recommendation, 0, len(tracks))
	for i, t := range tracks {
		rank := i + 1
		score := scores[t.Key]
		paths := t.CareerPaths
		if len(paths) > maxCareerSuggestions {
			paths = paths[:maxCareerSuggestions]
		}
		out = append(out, Recommendation{
			Track:             t.Key,
			Name:              t.Name,
			Score:             score,
			Rank:              rank,
			Confidence:        confidenceFor(rank, score),
			Reasoning:         reasoningFor(t, rank, score),
			Strengths:         slices.Clone(strengthsByTrack[t.Key]),
			OptimalPath:       optimalPathByTrack[t.Key],
			CareerSuggestions: slices.Clone(paths),
		})
	}
	return out, nil
}

func confidenceFor(rank int, score float64) Confidence {
	switch {
	case rank == 1 && score >= 70:
		return ConfidenceHigh
	case rank == 1:
		return ConfidenceMedium
	case rank <= 3 && score >= 50:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func reasoningFor(t catalog.Track, rank int, score float64) []string {
	var lines []string
	switch {
	case rank == 1 && score >= 70:
		lines = append(lines, fmt.Sprintf("Your answers align strongly with %s (%.0f/100).", t.Name, score))
	case rank == 1 && score >= 50:
		lines = append(lines, fmt.Sprintf("%s is your strongest match at %.0f/100, with other tracks close behind.", t.Name, score))
	case rank == 1:
		lines = append(lines, fmt.Sprintf("%s edges out the other tracks at %.0f/100; your profile is broad rather than specialized.", t.Name, score))
	case rank <= 3 && score >= 50:
		lines = append(lines, fmt.Sprintf("%s is a strong alternative at %.0f/100.", t.Name, score))
	case rank <= 3:
		lines = append(lines, fmt.Sprintf("%s shows partial alignment at %.0f/100.", t.Name, score))
	default:
		lines = append(lines, fmt.Sprintf("%s scored %.0f/100 and is a weaker fit for your current profile.", t.Name, score))
	}
	if rank <= 3 && t.Description != "" {
		lines = append(lines, t.Description)
	}
	return lines
}

// Secondary returns the second-ranked recommendation when it clears
// SecondaryThreshold.
func Secondary(recs []Recommendation) (Recommendation, bool) {
	if len(recs) < 2 || recs[1].Score < SecondaryThreshold {
		return Recommendation{}, false
	}
	return recs[1], true
}

// Summary renders the one-paragraph headline for a result.
func Summary(primary Recommendation, secondary *Recommendation) string {
	s := fmt.Sprintf("Your strongest fit is %s with a score of %.0f/100 (%s confidence).",
		primary.Name, primary.Score, primary.Confidence)
	if secondary != nil {
		s += fmt.Sprintf(" %s is a solid secondary option at %.0f/100.", secondary.Name, secondary.Score)
	}
	return s
}
