package insight

import (
	"fmt"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

type Trait string

const (
	TraitLearningApproach    Trait = "learning_approach"
	TraitProblemSolvingStyle Trait = "problem_solving_style"
	TraitWorkStylePreference Trait = "work_style_preference"
	TraitSecurityMindset     Trait = "security_mindset"
	TraitCollaborationStyle  Trait = "collaboration_style"
	TraitRiskTolerance       Trait = "risk_tolerance"
)

// Rule assigns IfMajority when strictly more than half of the answers in
// Module use one of Codes, and Otherwise in every other case.
type Rule struct {
	Trait      Trait
	Module     catalog.ModuleKey
	Codes      []string
	IfMajority string
	Otherwise  string
}

var DefaultRules = []Rule{
	{TraitLearningApproach, catalog.ModuleTechnicalExposure, []string{"c", "d"}, "hands-on", "guided"},
	{TraitProblemSolvingStyle, catalog.ModuleWorkStyle, []string{"a", "c"}, "analytical", "experimental"},
	{TraitWorkStylePreference, catalog.ModuleWorkStyle, []string{"a", "d"}, "deep-focus", "interactive"},
	{TraitSecurityMindset, catalog.ModuleIdentityValues, []string{"b"}, "protective", "exploratory"},
	{TraitCollaborationStyle, catalog.ModuleWorkStyle, []string{"b", "d"}, "team-oriented", "independent"},
	{TraitRiskTolerance, catalog.ModuleIdentityValues, []string{"c", "d"}, "risk-embracing", "risk-aware"},
}

// BucketCodes groups selected option codes by module.
func BucketCodes(c *catalog.Catalog, responses []session.Response) (map[catalog.ModuleKey][]string, error) {
	out := map[catalog.ModuleKey][]string{}
	for _, r := range responses {
		q, ok := c.Question(r.QuestionID)
		if !ok {
			return nil, fmt.Errorf("bucket response %q: %w", r.QuestionID, perrors.ErrUnknownQuestion)
		}
		out[q.Module] = append(out[q.Module], catalog.NormalizeCode(r.Value))
	}
	return out, nil
}

// Evaluate applies rules to the bucketed codes.
func Evaluate(rules []Rule, buckets map[catalog.ModuleKey][]string) map[Trait]string {
	out := make(map[Trait]string, len(rules))
	for _, rule := range rules {
		codes := buckets[rule.Module]
		want := make(map[string]bool, len(rule.Codes))
		for _, c := range rule.Codes {
			want[c] = true
		}
		hits := 0
		for _, c := range codes {
			if want[c] {
				hits++
			}
		}
		if 2*hits > len(codes) {
			out[rule.Trait] = rule.IfMajority
		} else {
			out[rule.Trait] = rule.Otherwise
		}
	}
	return out
}
