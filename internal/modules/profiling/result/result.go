package result

import (
	"time"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/insight"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/recommend"
)

// ProfilingResult is the frozen output of a completed session.
type ProfilingResult struct {
	SessionID       string                       `json:"session_id"`
	Recommendations []recommend.Recommendation   `json:"recommendations"`
	PrimaryTrack    catalog.Track                `json:"primary_track"`
	SecondaryTrack  *catalog.Track               `json:"secondary_track,omitempty"`
	Scores          map[catalog.TrackKey]float64 `json:"scores"`
	Summary         string                       `json:"summary"`
	Insights        insight.DeepInsights         `json:"insights"`
	CompletedAt     time.Time                    `json:"completed_at"`
}

// Primary returns the top-ranked recommendation.
func (r *ProfilingResult) Primary() (recommend.Recommendation, bool) {
	if r == nil || len(r.Recommendations) == 0 {
		return recommend.Recommendation{}, false
	}
	return r.Recommendations[0], true
}

// Secondary returns the surfaced secondary recommendation, if any.
func (r *ProfilingResult) Secondary() (recommend.Recommendation, bool) {
	if r == nil || r.SecondaryTrack == nil {
		return recommend.Recommendation{}, false
	}
	for _, rec := range r.Recommendations {
		if rec.Track == r.SecondaryTrack.Key {
			return rec, true
		}
	}
	return recommend.Recommendation{}, false
}
