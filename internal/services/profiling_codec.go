package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	domain "github.com/yungbote/neurobridge-profiling/internal/domain/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/result"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
)

func sessionFromRow(row *domain.ProfilingSession) (*session.Session, error) {
	st := session.State{
		ID:                 row.ID,
		UserID:             row.UserID,
		DeclaredDifficulty: row.DeclaredDifficulty,
		RecommendedTrack:   catalog.TrackKey(row.RecommendedTrack),
		StartedAt:          row.StartedAt,
		CompletedAt:        row.CompletedAt,
	}
	if err := decodeJSON(row.Responses, &st.Responses); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	if err := decodeJSON(row.Reflection, &st.Reflection); err != nil {
		return nil, fmt.Errorf("decode reflection: %w", err)
	}
	if err := decodeJSON(row.Scores, &st.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return session.Restore(st)
}

// applySession copies the mutable parts of s onto row.
func applySession(s *session.Session, row *domain.ProfilingSession) error {
	st := s.State()
	responses := st.Responses
	if responses == nil {
		responses = []session.Response{}
	}
	raw, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	row.Responses = datatypes.JSON(raw)
	row.Reflection = nil
	if st.Reflection != nil {
		if raw, err = json.Marshal(st.Reflection); err != nil {
			return err
		}
		row.Reflection = datatypes.JSON(raw)
	}
	row.Scores = nil
	if st.Scores != nil {
		if raw, err = json.Marshal(st.Scores); err != nil {
			return err
		}
		row.Scores = datatypes.JSON(raw)
	}
	row.Status = string(s.Status())
	row.DeclaredDifficulty = st.DeclaredDifficulty
	row.RecommendedTrack = string(st.RecommendedTrack)
	row.CompletedAt = st.CompletedAt
	return nil
}

func resultFromRow(row *domain.ProfilingSession) (*result.ProfilingResult, error) {
	if len(row.Result) == 0 {
		return nil, nil
	}
	var res result.ProfilingResult
	if err := json.Unmarshal(row.Result, &res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &res, nil
}

func decodeJSON(raw datatypes.JSON, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
