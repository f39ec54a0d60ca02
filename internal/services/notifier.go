package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/result"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

const EventProfilingCompleted = "profiling.completed"

// CompletionEvent is the hand-off from profiling to downstream consumers
// (path generation, onboarding email). Reflection text is never included.
type CompletionEvent struct {
	Type           string             `json:"type"`
	UserID         uuid.UUID          `json:"user_id"`
	SessionID      uuid.UUID          `json:"session_id"`
	PrimaryTrack   string             `json:"primary_track"`
	SecondaryTrack string             `json:"secondary_track,omitempty"`
	Scores         map[string]float64 `json:"scores"`
	Summary        string             `json:"summary"`
	CompletedAt    time.Time          `json:"completed_at"`
}

func NewCompletionEvent(userID, sessionID uuid.UUID, res *result.ProfilingResult) CompletionEvent {
	ev := CompletionEvent{
		Type:         EventProfilingCompleted,
		UserID:       userID,
		SessionID:    sessionID,
		PrimaryTrack: string(res.PrimaryTrack.Key),
		Scores:       make(map[string]float64, len(res.Scores)),
		Summary:      res.Summary,
		CompletedAt:  res.CompletedAt,
	}
	if res.SecondaryTrack != nil {
		ev.SecondaryTrack = string(res.SecondaryTrack.Key)
	}
	for k, v := range res.Scores {
		ev.Scores[string(k)] = v
	}
	return ev
}

type ProfilingNotifier interface {
	ProfilingCompleted(ctx context.Context, ev CompletionEvent) error
}

// Publisher is the subset of the Redis event bus the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

type profilingNotifier struct {
	log *logger.Logger
	pub Publisher
}

// NewProfilingNotifier publishes through pub; a nil pub yields a notifier
// that only logs.
func NewProfilingNotifier(log *logger.Logger, pub Publisher) ProfilingNotifier {
	return &profilingNotifier{log: log.With("service", "ProfilingNotifier"), pub: pub}
}

func (n *profilingNotifier) ProfilingCompleted(ctx context.Context, ev CompletionEvent) error {
	if n.pub == nil {
		n.log.Debug("completion event not published (no bus)", "session_id", ev.SessionID.String())
		return nil
	}
	return n.pub.Publish(ctx, ev)
}
