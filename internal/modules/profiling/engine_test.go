package profiling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/blueprint"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/difficulty"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

var securityAnswers = []struct{ q, v string }{
	{"iv_1", "b"}, {"iv_2", "b"}, {"iv_3", "b"}, {"iv_4", "b"},
	{"ws_3", "c"}, {"ap_1", "c"}, {"ap_2", "c"}, {"ap_3", "b"},
	{"ap_4", "c"}, {"te_3", "d"}, {"te_4", "d"}, {"cg_1", "c"},
}

func newTestEngine(t *testing.T) (*Engine, *time.Time) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	e := NewEngine(cat, logger.NewNop(), WithClock(func() time.Time { return clock }))
	return e, &clock
}

func answer(t *testing.T, e *Engine, s *session.Session, n int) {
	t.Helper()
	for _, a := range securityAnswers[:n] {
		ok, err := e.SubmitResponse(s, a.q, a.v, nil)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestSubmitResponse_Validation(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.CreateSession(uuid.New())

	_, err := e.SubmitResponse(s, "nope", "a", nil)
	assert.True(t, errors.Is(err, perrors.ErrUnknownQuestion))

	_, err = e.SubmitResponse(s, "iv_1", "z", nil)
	assert.True(t, errors.Is(err, perrors.ErrInvalidOption))

	neg := int64(-5)
	_, err = e.SubmitResponse(s, "iv_1", "a", &neg)
	assert.True(t, errors.Is(err, perrors.ErrInvalidArgument))
	assert.Equal(t, 0, s.Len())

	ok, err := e.SubmitResponse(s, "iv_1", " B ", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	r, found := s.Response("iv_1")
	require.True(t, found)
	assert.Equal(t, "b", r.Value)

	_, err = e.SubmitResponse(s, "iv_1", "c", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	r, _ = s.Response("iv_1")
	assert.Equal(t, "c", r.Value)
}

func TestModuleProgress(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.CreateSession(uuid.New())
	answer(t, e, s, 4)

	rep := e.ModuleProgress(s)
	assert.Equal(t, 4, rep.Answered)
	assert.Equal(t, e.Catalog().Len(), rep.Total)
	assert.Equal(t, []catalog.ModuleKey{catalog.ModuleIdentityValues}, rep.CompletedModules)
	assert.Equal(t, catalog.ModuleWorkStyle, rep.CurrentModule)

	sum := 0
	for _, m := range rep.Modules {
		sum += m.Answered
	}
	assert.Equal(t, s.Len(), sum)
}

func TestCompleteSession_RequiresMinimum(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.CreateSession(uuid.New())
	answer(t, e, s, e.Catalog().MinResponses()-1)

	_, err := e.CompleteSession(s)
	assert.True(t, errors.Is(err, perrors.ErrInsufficientResponses))
	assert.False(t, s.Sealed())
	assert.Equal(t, session.StatusInProgress, s.Status())
}

func TestCompleteSession_SealsAndRanks(t *testing.T) {
	e, clock := newTestEngine(t)
	s := e.CreateSession(uuid.New())
	answer(t, e, s, len(securityAnswers))

	res, err := e.CompleteSession(s)
	require.NoError(t, err)
	require.True(t, s.Sealed())
	assert.Equal(t, session.StatusCompleted, s.Status())
	assert.Equal(t, *clock, res.CompletedAt)
	assert.Equal(t, s.ID.String(), res.SessionID)

	require.Len(t, res.Recommendations, len(catalog.TrackKeys()))
	assert.Equal(t, catalog.TrackCybersecurity, res.PrimaryTrack.Key)
	assert.Equal(t, catalog.TrackCybersecurity, s.RecommendedTrack())
	for i, rec := range res.Recommendations {
		assert.Equal(t, i+1, rec.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, res.Recommendations[i-1].Score, rec.Score)
		}
		assert.GreaterOrEqual(t, rec.Score, 0.0)
		assert.LessOrEqual(t, rec.Score, 100.0)
	}
	assert.Equal(t, res.Scores, s.Scores())
	assert.Contains(t, res.Summary, "Cybersecurity")

	*clock = clock.Add(time.Hour)
	_, err = e.CompleteSession(s)
	assert.True(t, errors.Is(err, perrors.ErrSessionSealed))
	_, err = e.SubmitResponse(s, "cg_2", "a", nil)
	assert.True(t, errors.Is(err, perrors.ErrSessionSealed))
	assert.Equal(t, res.CompletedAt, *s.CompletedAt)
}

func TestVerifyDifficultySelection(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.CreateSession(uuid.New())
	answer(t, e, s, len(securityAnswers))

	_, err := e.VerifyDifficultySelection(s, "grandmaster")
	assert.True(t, errors.Is(err, perrors.ErrUnknownDifficulty))
	assert.Empty(t, s.DeclaredDifficulty())

	v, err := e.VerifyDifficultySelection(s, "Elite")
	require.NoError(t, err)
	assert.Equal(t, 20, v.TechScore)
	assert.False(t, v.IsRealistic)
	assert.Equal(t, difficulty.TierNovice, v.SuggestedDifficulty)
	assert.Equal(t, string(difficulty.TierElite), s.DeclaredDifficulty())
}

func TestGenerateBlueprint(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.CreateSession(uuid.New())
	answer(t, e, s, len(securityAnswers))

	_, err := e.GenerateBlueprint(s, nil)
	assert.True(t, errors.Is(err, perrors.ErrSessionNotCompleted))

	_, err = e.SubmitReflection(s, "  I like breaking things safely. ", "Lead a red team.")
	require.NoError(t, err)
	res, err := e.CompleteSession(s)
	require.NoError(t, err)

	bp, err := e.GenerateBlueprint(s, res)
	require.NoError(t, err)
	assert.Equal(t, "What drives me: I like breaking things safely. Where I am headed: Lead a red team.", bp.ValueStatement)
	assert.Equal(t, difficulty.TierNovice, bp.Difficulty.DeclaredDifficulty)
	assert.True(t, bp.Difficulty.IsRealistic)
	assert.Equal(t, catalog.TrackCybersecurity, bp.PrimaryRecommendation.Track)
	assert.Equal(t, blueprint.NextSteps, bp.NextSteps)

	other := *res
	other.SessionID = uuid.NewString()
	_, err = e.GenerateBlueprint(s, &other)
	assert.True(t, errors.Is(err, perrors.ErrInvalidArgument))
}
