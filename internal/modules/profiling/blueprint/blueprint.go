package blueprint

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/difficulty"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/insight"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/recommend"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/result"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
)

const (
	whyLeadIn  = "What drives me: "
	goalLeadIn = "Where I am headed: "

	// FallbackValueStatement is used when the user left no reflection.
	FallbackValueStatement = "I am building the skills to grow a meaningful career in technology."
)

// NextSteps is the fixed checklist attached to every blueprint.
var NextSteps = []string{
	"Review your recommended track and the reasoning behind it",
	"Confirm your starting difficulty",
	"Begin the first module of your learning path",
	"Add your value statement to your portfolio",
	"Schedule your first weekly learning session",
}

type Blueprint struct {
	SessionID               string                    `json:"session_id"`
	PrimaryRecommendation   recommend.Recommendation  `json:"primary_recommendation"`
	SecondaryRecommendation *recommend.Recommendation `json:"secondary_recommendation,omitempty"`
	Summary                 string                    `json:"summary"`
	Difficulty              difficulty.Verification   `json:"difficulty"`
	Insights                insight.DeepInsights      `json:"insights"`
	ValueStatement          string                    `json:"value_statement"`
	NextSteps               []string                  `json:"next_steps"`
	CompletedAt             time.Time                 `json:"completed_at"`
	GeneratedAt             time.Time                 `json:"generated_at"`
}

// ValueStatement joins the non-empty reflection answers behind their lead-ins.
func ValueStatement(r *session.Reflection) string {
	if r == nil {
		return FallbackValueStatement
	}
	var parts []string
	if why := strings.TrimSpace(r.Why); why != "" {
		parts = append(parts, whyLeadIn+why)
	}
	if goal := strings.TrimSpace(r.Goal); goal != "" {
		parts = append(parts, goalLeadIn+goal)
	}
	if len(parts) == 0 {
		return FallbackValueStatement
	}
	return strings.Join(parts, " ")
}

// Compose assembles a blueprint from a completed result.
func Compose(res *result.ProfilingResult, verification difficulty.Verification, reflection *session.Reflection, now time.Time) (*Blueprint, error) {
	primary, ok := res.Primary()
	if !ok {
		return nil, fmt.Errorf("compose blueprint: result has no recommendations")
	}
	bp := &Blueprint{
		SessionID:             res.SessionID,
		PrimaryRecommendation: primary,
		Summary:               res.Summary,
		Difficulty:            verification,
		Insights:              res.Insights,
		ValueStatement:        ValueStatement(reflection),
		NextSteps:             append([]string(nil), NextSteps...),
		CompletedAt:           res.CompletedAt,
		GeneratedAt:           now.UTC(),
	}
	if sec, ok := res.Secondary(); ok {
		bp.SecondaryRecommendation = &sec
	}
	return bp, nil
}
