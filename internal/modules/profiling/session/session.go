package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Response struct {
	QuestionID     string    `json:"question_id"`
	Value          string    `json:"value"`
	ResponseTimeMs *int64    `json:"response_time_ms,omitempty"`
	AnsweredAt     time.Time `json:"answered_at"`
}

type Reflection struct {
	Why         string    `json:"why"`
	Goal        string    `json:"goal"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Session is one in-progress or completed assessment. It is owned by a single
// caller at a time and is not safe for concurrent mutation.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID

	StartedAt   time.Time
	CompletedAt *time.Time

	responses          []Response
	index              map[string]int
	reflection         *Reflection
	declaredDifficulty string
	scores             map[catalog.TrackKey]float64
	recommendedTrack   catalog.TrackKey
}

// New returns an empty session for userID.
func New(userID uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: now.UTC(),
		index:     map[string]int{},
	}
}

func (s *Session) Status() Status {
	switch {
	case s.CompletedAt != nil:
		return StatusCompleted
	case len(s.responses) > 0:
		return StatusInProgress
	default:
		return StatusCreated
	}
}

func (s *Session) Sealed() bool { return s.CompletedAt != nil }

// Responses returns a copy of the responses in first-answered order.
func (s *Session) Responses() []Response {
	out := make([]Response, len(s.responses))
	copy(out, s.responses)
	return out
}

func (s *Session) Len() int { return len(s.responses) }

func (s *Session) Response(questionID string) (Response, bool) {
	i, ok := s.index[questionID]
	if !ok {
		return Response{}, false
	}
	return s.responses[i], true
}

func (s *Session) Answered(questionID string) bool {
	_, ok := s.index[questionID]
	return ok
}

// Upsert records r, overwriting any earlier answer to the same question in
// place so the original answer order is kept.
func (s *Session) Upsert(r Response) error {
	if s.Sealed() {
		return perrors.ErrSessionSealed
	}
	if s.index == nil {
		s.index = map[string]int{}
	}
	if i, ok := s.index[r.QuestionID]; ok {
		s.responses[i].Value = r.Value
		s.responses[i].ResponseTimeMs = r.ResponseTimeMs
		s.responses[i].AnsweredAt = r.AnsweredAt
		return nil
	}
	s.index[r.QuestionID] = len(s.responses)
	s.responses = append(s.responses, r)
	return nil
}

func (s *Session) Reflection() (Reflection, bool) {
	if s.reflection == nil {
		return Reflection{}, false
	}
	return *s.reflection, true
}

func (s *Session) SetReflection(why, goal string, now time.Time) error {
	if s.Sealed() {
		return perrors.ErrSessionSealed
	}
	s.reflection = &Reflection{
		Why:         strings.TrimSpace(why),
		Goal:        strings.TrimSpace(goal),
		SubmittedAt: now.UTC(),
	}
	return nil
}

func (s *Session) DeclaredDifficulty() string { return s.declaredDifficulty }

func (s *Session) SetDeclaredDifficulty(tier string) error {
	if s.Sealed() {
		return perrors.ErrSessionSealed
	}
	s.declaredDifficulty = tier
	return nil
}

// Scores returns a copy of the frozen scores, or nil before completion.
func (s *Session) Scores() map[catalog.TrackKey]float64 {
	if s.scores == nil {
		return nil
	}
	out := make(map[catalog.TrackKey]float64, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}

func (s *Session) RecommendedTrack() catalog.TrackKey { return s.recommendedTrack }

// Seal freezes scores, the recommended track and the completion time.
func (s *Session) Seal(scores map[catalog.TrackKey]float64, track catalog.TrackKey, now time.Time) error {
	if s.Sealed() {
		return perrors.ErrSessionSealed
	}
	frozen := make(map[catalog.TrackKey]float64, len(scores))
	for k, v := range scores {
		frozen[k] = v
	}
	at := now.UTC()
	s.scores = frozen
	s.recommendedTrack = track
	s.CompletedAt = &at
	return nil
}

type snapshot struct {
	ID                 uuid.UUID                    `json:"id"`
	UserID             uuid.UUID                    `json:"user_id"`
	Status             Status                       `json:"status"`
	Responses          []Response                   `json:"responses"`
	Reflection         *Reflection                  `json:"reflection,omitempty"`
	DeclaredDifficulty string                       `json:"declared_difficulty,omitempty"`
	Scores             map[catalog.TrackKey]float64 `json:"scores,omitempty"`
	RecommendedTrack   catalog.TrackKey             `json:"recommended_track,omitempty"`
	StartedAt          time.Time                    `json:"started_at"`
	CompletedAt        *time.Time                   `json:"completed_at,omitempty"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	responses := s.responses
	if responses == nil {
		responses = []Response{}
	}
	return json.Marshal(snapshot{
		ID:                 s.ID,
		UserID:             s.UserID,
		Status:             s.Status(),
		Responses:          responses,
		Reflection:         s.reflection,
		DeclaredDifficulty: s.declaredDifficulty,
		Scores:             s.scores,
		RecommendedTrack:   s.recommendedTrack,
		StartedAt:          s.StartedAt,
		CompletedAt:        s.CompletedAt,
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	restored, err := Restore(State{
		ID:                 snap.ID,
		UserID:             snap.UserID,
		Responses:          snap.Responses,
		Reflection:         snap.Reflection,
		DeclaredDifficulty: snap.DeclaredDifficulty,
		Scores:             snap.Scores,
		RecommendedTrack:   snap.RecommendedTrack,
		StartedAt:          snap.StartedAt,
		CompletedAt:        snap.CompletedAt,
	})
	if err != nil {
		return err
	}
	*s = *restored
	return nil
}

// State is the flat form a persistence layer loads a session from.
type State struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Responses          []Response
	Reflection         *Reflection
	DeclaredDifficulty string
	Scores             map[catalog.TrackKey]float64
	RecommendedTrack   catalog.TrackKey
	StartedAt          time.Time
	CompletedAt        *time.Time
}

// Restore rebuilds a session from persisted state.
func Restore(st State) (*Session, error) {
	s := &Session{
		ID:                 st.ID,
		UserID:             st.UserID,
		StartedAt:          st.StartedAt,
		reflection:         st.Reflection,
		declaredDifficulty: st.DeclaredDifficulty,
		recommendedTrack:   st.RecommendedTrack,
		index:              make(map[string]int, len(st.Responses)),
	}
	for _, r := range st.Responses {
		if _, dup := s.index[r.QuestionID]; dup {
			return nil, fmt.Errorf("restore session %s: duplicate response for %q", st.ID, r.QuestionID)
		}
		s.index[r.QuestionID] = len(s.responses)
		s.responses = append(s.responses, r)
	}
	if st.Scores != nil {
		s.scores = make(map[catalog.TrackKey]float64, len(st.Scores))
		for k, v := range st.Scores {
			s.scores[k] = v
		}
	}
	if st.CompletedAt != nil {
		at := *st.CompletedAt
		s.CompletedAt = &at
	}
	return s, nil
}

// State returns the flat persisted form of s.
func (s *Session) State() State {
	return State{
		ID:                 s.ID,
		UserID:             s.UserID,
		Responses:          s.Responses(),
		Reflection:         s.reflection,
		DeclaredDifficulty: s.declaredDifficulty,
		Scores:             s.Scores(),
		RecommendedTrack:   s.recommendedTrack,
		StartedAt:          s.StartedAt,
		CompletedAt:        s.CompletedAt,
	}
}
