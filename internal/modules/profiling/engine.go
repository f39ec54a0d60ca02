// Package profiling is the career profiling engine: it records questionnaire
// answers on a session, scores them against the question catalog and turns
// the scores into ranked track recommendations, a difficulty check, insights
// and a blueprint.
//
// The engine is synchronous and holds no per-session state. Callers own the
// *session.Session they pass in and are responsible for persisting it.
package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/blueprint"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/difficulty"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/insight"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/progress"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/recommend"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/result"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/scoring"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

type Engine struct {
	cat *catalog.Catalog
	log *logger.Logger
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(cat *catalog.Catalog, baseLog *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		cat: cat,
		log: baseLog.With("component", "ProfilingEngine", "catalog_version", cat.Version()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

func (e *Engine) CreateSession(userID uuid.UUID) *session.Session {
	s := session.New(userID, e.now())
	e.log.Debug("profiling session created", "session_id", s.ID.String(), "user_id", userID.String())
	return s
}

func (e *Engine) Question(id string) (catalog.Question, error) {
	q, ok := e.cat.Question(id)
	if !ok {
		return catalog.Question{}, fmt.Errorf("question %q: %w", id, perrors.ErrUnknownQuestion)
	}
	return q, nil
}

func (e *Engine) QuestionsByModule(m catalog.ModuleKey) []catalog.Question {
	return e.cat.QuestionsByModule(m)
}

func (e *Engine) AllQuestions() []catalog.Question { return e.cat.AllQuestions() }

// SubmitResponse validates and records one answer. Resubmitting a question
// overwrites the earlier answer.
func (e *Engine) SubmitResponse(s *session.Session, questionID, value string, responseTimeMs *int64) (bool, error) {
	q, err := e.Question(questionID)
	if err != nil {
		return false, err
	}
	opt, ok := q.Option(value)
	if !ok {
		return false, fmt.Errorf("question %q value %q: %w", q.ID, value, perrors.ErrInvalidOption)
	}
	if responseTimeMs != nil && *responseTimeMs < 0 {
		return false, fmt.Errorf("response time %d: %w", *responseTimeMs, perrors.ErrInvalidArgument)
	}
	if err := s.Upsert(session.Response{
		QuestionID:     q.ID,
		Value:          opt.Code,
		ResponseTimeMs: responseTimeMs,
		AnsweredAt:     e.now().UTC(),
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) SubmitReflection(s *session.Session, why, goal string) (bool, error) {
	if err := s.SetReflection(why, goal, e.now()); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) ModuleProgress(s *session.Session) progress.Report {
	modules := e.cat.Modules()
	order := make([]catalog.ModuleKey, 0, len(modules))
	for _, m := range modules {
		order = append(order, m.Key)
	}
	return progress.Calculate(order, e.cat.ModuleQuestionIDs(), s.Answered)
}

// VerifyDifficultySelection checks declared against the session's technical
// exposure. On an open session the declared tier is remembered for the
// blueprint.
func (e *Engine) VerifyDifficultySelection(s *session.Session, declared string) (difficulty.Verification, error) {
	tier, err := difficulty.ParseTier(declared)
	if err != nil {
		return difficulty.Verification{}, err
	}
	score, err := difficulty.TechScore(e.cat, s.Responses())
	if err != nil {
		return difficulty.Verification{}, err
	}
	if !s.Sealed() {
		if err := s.SetDeclaredDifficulty(string(tier)); err != nil {
			return difficulty.Verification{}, err
		}
	}
	return difficulty.Verify(score, tier), nil
}

// CompleteSession scores the session, seals it and returns the result.
func (e *Engine) CompleteSession(s *session.Session) (*result.ProfilingResult, error) {
	if s.Sealed() {
		return nil, perrors.ErrSessionSealed
	}
	if n, min := s.Len(), e.cat.MinResponses(); n < min {
		return nil, fmt.Errorf("%d of %d required answers: %w", n, min, perrors.ErrInsufficientResponses)
	}

	responses := s.Responses()
	scored, err := scoring.Score(e.cat, responses)
	if err != nil {
		return nil, err
	}
	recs, err := recommend.Rank(e.cat, scored.Scores)
	if err != nil {
		return nil, err
	}
	insights, err := insight.Synthesize(e.cat, responses, recs)
	if err != nil {
		return nil, err
	}

	primary := recs[0]
	primaryTrack, ok := e.cat.Track(primary.Track)
	if !ok {
		return nil, fmt.Errorf("primary track %q: %w", primary.Track, perrors.ErrUnknownTrack)
	}
	res := &result.ProfilingResult{
		SessionID:       s.ID.String(),
		Recommendations: recs,
		PrimaryTrack:    primaryTrack,
		Scores:          scored.Scores,
		Insights:        insights,
	}
	var secondary *recommend.Recommendation
	if sec, ok := recommend.Secondary(recs); ok {
		secTrack, ok := e.cat.Track(sec.Track)
		if !ok {
			return nil, fmt.Errorf("secondary track %q: %w", sec.Track, perrors.ErrUnknownTrack)
		}
		res.SecondaryTrack = &secTrack
		secondary = &sec
	}
	res.Summary = recommend.Summary(primary, secondary)

	if err := s.Seal(scored.Scores, primary.Track, e.now()); err != nil {
		return nil, err
	}
	res.CompletedAt = *s.CompletedAt

	e.log.Info("profiling session completed",
		"session_id", s.ID.String(),
		"responses", len(responses),
		"primary_track", string(primary.Track),
		"primary_score", primary.Score,
		"confidence", string(primary.Confidence),
	)
	return res, nil
}

// GenerateBlueprint composes the blueprint for a completed session. The
// difficulty section uses the declared tier when one was recorded and the
// tier matching the user's technical exposure otherwise.
func (e *Engine) GenerateBlueprint(s *session.Session, res *result.ProfilingResult) (*blueprint.Blueprint, error) {
	if !s.Sealed() || res == nil {
		return nil, perrors.ErrSessionNotCompleted
	}
	if res.SessionID != "" && !strings.EqualFold(res.SessionID, s.ID.String()) {
		return nil, fmt.Errorf("result belongs to session %s: %w", res.SessionID, perrors.ErrInvalidArgument)
	}
	score, err := difficulty.TechScore(e.cat, s.Responses())
	if err != nil {
		return nil, err
	}
	tier := difficulty.Tier(s.DeclaredDifficulty())
	if _, ok := tier.Range(); !ok {
		tier, ok = difficulty.TierFor(score)
		if !ok {
			tier = difficulty.TierIntermediate
		}
	}
	var reflection *session.Reflection
	if r, ok := s.Reflection(); ok {
		reflection = &r
	}
	return blueprint.Compose(res, difficulty.Verify(score, tier), reflection, e.now())
}
