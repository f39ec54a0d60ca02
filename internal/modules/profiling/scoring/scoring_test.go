package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

const smallCatalog = `
version: test
min_responses: 1
modules:
  - {key: work_style, name: W, weight: 1}
  - {key: aptitude, name: A, weight: 2}
tracks:
  - {key: web_development, name: Web}
  - {key: data_science, name: Data}
  - {key: cybersecurity, name: Sec}
  - {key: cloud_engineering, name: Cloud}
  - {key: ai_engineering, name: AI}
questions:
  - id: q1
    module: work_style
    options:
      - {code: a, points: {web_development: 2}}
      - {code: b, points: {data_science: 1}}
  - id: q2
    module: aptitude
    options:
      - {code: a, points: {web_development: 1, cybersecurity: 3}}
      - {code: b, points: {data_science: 2}}
`

func loadSmall(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load([]byte(smallCatalog))
	require.NoError(t, err)
	return c
}

func responses(pairs ...string) []session.Response {
	out := make([]session.Response, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, session.Response{QuestionID: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func TestMaxPossible(t *testing.T) {
	max := MaxPossible(loadSmall(t))
	assert.Equal(t, 4.0, max[catalog.TrackWebDevelopment])
	assert.Equal(t, 5.0, max[catalog.TrackDataScience])
	assert.Equal(t, 6.0, max[catalog.TrackCybersecurity])
	assert.Equal(t, 0.0, max[catalog.TrackCloudEngineering])
}

func TestScore_NormalizesAgainstAnsweredCount(t *testing.T) {
	c := loadSmall(t)

	res, err := Score(c, responses("q1", "a", "q2", "b"))
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Scores[catalog.TrackWebDevelopment])
	assert.Equal(t, 80.0, res.Scores[catalog.TrackDataScience])
	assert.Equal(t, 0.0, res.Scores[catalog.TrackCybersecurity])
	assert.Equal(t, 4.0, res.Raw[catalog.TrackDataScience])

	partial, err := Score(c, responses("q1", "a"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, partial.Scores[catalog.TrackWebDevelopment])
}

func TestScore_ClampsToHundred(t *testing.T) {
	res, err := Score(loadSmall(t), responses("q2", "a"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Scores[catalog.TrackCybersecurity])
	assert.Equal(t, 6.0, res.Raw[catalog.TrackCybersecurity])
}

func TestScore_EveryTrackPresentAndInRange(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	for _, code := range []string{"a", "b", "c", "d"} {
		var rs []session.Response
		for _, q := range c.AllQuestions() {
			rs = append(rs, session.Response{QuestionID: q.ID, Value: code})
		}
		res, err := Score(c, rs)
		require.NoError(t, err)
		require.Len(t, res.Scores, len(catalog.TrackKeys()))
		for _, k := range catalog.TrackKeys() {
			v, ok := res.Scores[k]
			require.True(t, ok, "missing %s", k)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
}

func TestScore_NoResponsesYieldsZeroes(t *testing.T) {
	res, err := Score(loadSmall(t), nil)
	require.NoError(t, err)
	for _, k := range catalog.TrackKeys() {
		assert.Equal(t, 0.0, res.Scores[k])
	}
}

func TestScore_UnknownQuestionSurfaces(t *testing.T) {
	_, err := Score(loadSmall(t), responses("q1", "a", "deleted", "a"))
	assert.ErrorIs(t, err, perrors.ErrUnknownQuestion)
}

func TestScore_RetiredOptionSurfaces(t *testing.T) {
	_, err := Score(loadSmall(t), responses("q1", "z"))
	assert.ErrorIs(t, err, perrors.ErrInvalidOption)
}

func TestScore_ResubmissionIsIdempotent(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	s := session.New(uuid.New(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Upsert(session.Response{QuestionID: "iv_1", Value: "b"}))
	require.NoError(t, s.Upsert(session.Response{QuestionID: "ap_2", Value: "c"}))
	before, err := Score(c, s.Responses())
	require.NoError(t, err)

	require.NoError(t, s.Upsert(session.Response{QuestionID: "iv_1", Value: "b"}))
	after, err := Score(c, s.Responses())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, before, after)
}

func TestScore_Deterministic(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	rs := responses("iv_1", "c", "ws_2", "a", "te_2", "d", "cg_4", "b", "ap_3", "c")

	first, err := Score(c, rs)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Score(c, rs)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestScore_RawTotalsMonotonic(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	base := responses("iv_1", "a", "ws_1", "b")
	before, err := Score(c, base)
	require.NoError(t, err)

	// te_4 "d" carries positive cybersecurity points
	after, err := Score(c, append(base, session.Response{QuestionID: "te_4", Value: "d"}))
	require.NoError(t, err)

	for _, k := range catalog.TrackKeys() {
		assert.GreaterOrEqual(t, after.Raw[k], before.Raw[k], "track %s", k)
	}
	assert.Greater(t, after.Raw[catalog.TrackCybersecurity], before.Raw[catalog.TrackCybersecurity])
}
