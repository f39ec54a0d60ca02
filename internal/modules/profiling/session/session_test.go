package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNew_StartsEmpty(t *testing.T) {
	userID := uuid.New()
	s := New(userID, t0)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, t0, s.StartedAt)
	assert.Nil(t, s.CompletedAt)
	assert.Equal(t, StatusCreated, s.Status())
	assert.Zero(t, s.Len())
}

func TestUpsert_OverwritesInPlace(t *testing.T) {
	s := New(uuid.New(), t0)
	require.NoError(t, s.Upsert(Response{QuestionID: "q1", Value: "a"}))
	require.NoError(t, s.Upsert(Response{QuestionID: "q2", Value: "b"}))
	assert.Equal(t, StatusInProgress, s.Status())

	ms := int64(900)
	require.NoError(t, s.Upsert(Response{QuestionID: "q1", Value: "c", ResponseTimeMs: &ms}))

	rs := s.Responses()
	require.Len(t, rs, 2)
	assert.Equal(t, "q1", rs[0].QuestionID)
	assert.Equal(t, "c", rs[0].Value)
	require.NotNil(t, rs[0].ResponseTimeMs)
	assert.Equal(t, int64(900), *rs[0].ResponseTimeMs)
	assert.Equal(t, "q2", rs[1].QuestionID)
}

func TestSeal_RejectsFurtherMutation(t *testing.T) {
	s := New(uuid.New(), t0)
	require.NoError(t, s.Upsert(Response{QuestionID: "q1", Value: "a"}))

	scores := map[catalog.TrackKey]float64{catalog.TrackDataScience: 42}
	require.NoError(t, s.Seal(scores, catalog.TrackDataScience, t0.Add(time.Hour)))
	scores[catalog.TrackDataScience] = 0

	assert.Equal(t, StatusCompleted, s.Status())
	assert.Equal(t, 42.0, s.Scores()[catalog.TrackDataScience])
	assert.Equal(t, catalog.TrackDataScience, s.RecommendedTrack())

	assert.ErrorIs(t, s.Upsert(Response{QuestionID: "q2", Value: "a"}), perrors.ErrSessionSealed)
	assert.ErrorIs(t, s.SetReflection("why", "goal", t0), perrors.ErrSessionSealed)
	assert.ErrorIs(t, s.SetDeclaredDifficulty("elite"), perrors.ErrSessionSealed)
	assert.ErrorIs(t, s.Seal(nil, "", t0), perrors.ErrSessionSealed)
	assert.Equal(t, t0.Add(time.Hour), *s.CompletedAt)
}

func TestSetReflection_TrimsAndReplaces(t *testing.T) {
	s := New(uuid.New(), t0)
	require.NoError(t, s.SetReflection(" first ", "", t0))
	require.NoError(t, s.SetReflection(" because ", " ship it ", t0))

	r, ok := s.Reflection()
	require.True(t, ok)
	assert.Equal(t, "because", r.Why)
	assert.Equal(t, "ship it", r.Goal)
}

func TestJSON_RoundTripKeepsOrder(t *testing.T) {
	s := New(uuid.New(), t0)
	for _, id := range []string{"q3", "q1", "q2"} {
		require.NoError(t, s.Upsert(Response{QuestionID: id, Value: "a"}))
	}
	require.NoError(t, s.SetReflection("why", "goal", t0))

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var back Session
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, s.ID, back.ID)
	assert.Equal(t, s.Responses(), back.Responses())
	assert.True(t, back.Answered("q1"))

	// the rebuilt index must still upsert in place
	require.NoError(t, back.Upsert(Response{QuestionID: "q1", Value: "d"}))
	assert.Equal(t, 3, back.Len())
}

func TestRestore_RejectsDuplicateResponses(t *testing.T) {
	_, err := Restore(State{
		ID: uuid.New(),
		Responses: []Response{
			{QuestionID: "q1", Value: "a"},
			{QuestionID: "q1", Value: "b"},
		},
	})
	assert.Error(t, err)
}
