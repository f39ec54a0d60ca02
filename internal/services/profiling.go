package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	repos "github.com/yungbote/neurobridge-profiling/internal/data/repos/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/data/txrunner"
	domain "github.com/yungbote/neurobridge-profiling/internal/domain/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/blueprint"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/difficulty"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/progress"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/result"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	"github.com/yungbote/neurobridge-profiling/internal/observability"
	"github.com/yungbote/neurobridge-profiling/internal/pkg/dbctx"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
	"github.com/yungbote/neurobridge-profiling/internal/platform/apierr"
	"github.com/yungbote/neurobridge-profiling/internal/platform/ctxutil"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

// SessionView is what callers see of a stored session.
type SessionView struct {
	Session  *session.Session        `json:"session"`
	Progress progress.Report         `json:"progress"`
	Result   *result.ProfilingResult `json:"result,omitempty"`
}

type SubmitResponseInput struct {
	QuestionID     string `json:"question_id"`
	Value          string `json:"value"`
	ResponseTimeMs *int64 `json:"response_time_ms,omitempty"`
}

type SubmitResponseResult struct {
	Accepted bool            `json:"accepted"`
	Progress progress.Report `json:"progress"`
}

type ProfilingService interface {
	CreateSession(dbc dbctx.Context) (*SessionView, error)
	GetSession(dbc dbctx.Context, sessionID uuid.UUID) (*SessionView, error)
	ListSessions(dbc dbctx.Context, limit int) ([]*SessionView, error)

	Questions() []catalog.Question
	Question(id string) (catalog.Question, error)
	QuestionsByModule(module string) ([]catalog.Question, error)

	SubmitResponse(dbc dbctx.Context, sessionID uuid.UUID, in SubmitResponseInput) (*SubmitResponseResult, error)
	SubmitReflection(dbc dbctx.Context, sessionID uuid.UUID, why, goal string) (bool, error)
	Progress(dbc dbctx.Context, sessionID uuid.UUID) (progress.Report, error)
	VerifyDifficulty(dbc dbctx.Context, sessionID uuid.UUID, declared string) (difficulty.Verification, error)
	Complete(dbc dbctx.Context, sessionID uuid.UUID) (*result.ProfilingResult, error)
	Blueprint(dbc dbctx.Context, sessionID uuid.UUID) (*blueprint.Blueprint, error)
}

type profilingService struct {
	tx       txrunner.Runner
	log      *logger.Logger
	engine   *profiling.Engine
	repo     repos.SessionRepo
	notifier ProfilingNotifier
	metrics  *observability.Metrics
	tracer   trace.Tracer
}

func NewProfilingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	engine *profiling.Engine,
	repo repos.SessionRepo,
	notifier ProfilingNotifier,
	metrics *observability.Metrics,
) ProfilingService {
	return &profilingService{
		tx:       txrunner.NewGormRunner(db),
		log:      baseLog.With("service", "ProfilingService"),
		engine:   engine,
		repo:     repo,
		notifier: notifier,
		metrics:  metrics,
		tracer:   observability.Tracer(),
	}
}

func (s *profilingService) CreateSession(dbc dbctx.Context) (*SessionView, error) {
	ctx, span := s.tracer.Start(dbc.Context(), "profiling.CreateSession")
	defer span.End()
	dbc.Ctx = ctx

	userID, err := requireUser(ctx)
	if err != nil {
		return nil, s.fail(ctx, "create_session", err)
	}
	sess := s.engine.CreateSession(userID)
	row := &domain.ProfilingSession{
		ID:             sess.ID,
		UserID:         userID,
		CatalogVersion: s.engine.Catalog().Version(),
		StartedAt:      sess.StartedAt,
	}
	if err := applySession(sess, row); err != nil {
		return nil, s.fail(ctx, "create_session", err)
	}
	if err := s.repo.Create(dbc, row); err != nil {
		return nil, s.fail(ctx, "create_session", err)
	}
	s.metrics.IncSessionCreated()
	span.SetAttributes(attribute.String("profiling.session_id", sess.ID.String()))
	return &SessionView{Session: sess, Progress: s.engine.ModuleProgress(sess)}, nil
}

func (s *profilingService) GetSession(dbc dbctx.Context, sessionID uuid.UUID) (*SessionView, error) {
	row, err := s.load(dbc, sessionID, false)
	if err != nil {
		return nil, err
	}
	return s.view(row)
}

func (s *profilingService) ListSessions(dbc dbctx.Context, limit int) ([]*SessionView, error) {
	userID, err := requireUser(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByUser(dbc, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*SessionView, 0, len(rows))
	for _, row := range rows {
		v, err := s.view(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *profilingService) Questions() []catalog.Question { return s.engine.AllQuestions() }

func (s *profilingService) Question(id string) (catalog.Question, error) {
	return s.engine.Question(strings.TrimSpace(id))
}

func (s *profilingService) QuestionsByModule(module string) ([]catalog.Question, error) {
	m := catalog.ModuleKey(strings.ToLower(strings.TrimSpace(module)))
	if s.engine.Catalog().Weight(m) == 0 {
		return nil, apierr.New(http.StatusNotFound, "unknown_module", fmt.Errorf("module %q: %w", module, perrors.ErrNotFound))
	}
	return s.engine.QuestionsByModule(m), nil
}

func (s *profilingService) SubmitResponse(dbc dbctx.Context, sessionID uuid.UUID, in SubmitResponseInput) (*SubmitResponseResult, error) {
	var out SubmitResponseResult
	err := s.mutate(dbc, "submit_response", sessionID, func(sess *session.Session, _ *domain.ProfilingSession) error {
		ok, err := s.engine.SubmitResponse(sess, in.QuestionID, in.Value, in.ResponseTimeMs)
		if err != nil {
			return err
		}
		out.Accepted = ok
		out.Progress = s.engine.ModuleProgress(sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if q, err := s.engine.Question(in.QuestionID); err == nil {
		s.metrics.IncResponse(string(q.Module))
	}
	return &out, nil
}

func (s *profilingService) SubmitReflection(dbc dbctx.Context, sessionID uuid.UUID, why, goal string) (bool, error) {
	var accepted bool
	err := s.mutate(dbc, "submit_reflection", sessionID, func(sess *session.Session, _ *domain.ProfilingSession) error {
		ok, err := s.engine.SubmitReflection(sess, why, goal)
		accepted = ok
		return err
	})
	return accepted, err
}

func (s *profilingService) Progress(dbc dbctx.Context, sessionID uuid.UUID) (progress.Report, error) {
	row, err := s.load(dbc, sessionID, false)
	if err != nil {
		return progress.Report{}, err
	}
	sess, err := sessionFromRow(row)
	if err != nil {
		return progress.Report{}, err
	}
	return s.engine.ModuleProgress(sess), nil
}

// VerifyDifficulty runs against a locked row because an open session records
// the declared tier.
func (s *profilingService) VerifyDifficulty(dbc dbctx.Context, sessionID uuid.UUID, declared string) (difficulty.Verification, error) {
	var v difficulty.Verification
	err := s.mutate(dbc, "verify_difficulty", sessionID, func(sess *session.Session, _ *domain.ProfilingSession) error {
		out, err := s.engine.VerifyDifficultySelection(sess, declared)
		v = out
		return err
	})
	if err != nil {
		return difficulty.Verification{}, err
	}
	s.metrics.IncDifficultyCheck(string(v.DeclaredDifficulty), v.IsRealistic)
	return v, nil
}

func (s *profilingService) Complete(dbc dbctx.Context, sessionID uuid.UUID) (*result.ProfilingResult, error) {
	var (
		res    *result.ProfilingResult
		userID uuid.UUID
	)
	err := s.mutate(dbc, "complete", sessionID, func(sess *session.Session, row *domain.ProfilingSession) error {
		out, err := s.engine.CompleteSession(sess)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(out)
		if err != nil {
			return err
		}
		row.Result = datatypes.JSON(raw)
		res = out
		userID = sess.UserID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if primary, ok := res.Primary(); ok {
		s.metrics.ObserveCompletion(string(primary.Track), string(primary.Confidence), primary.Score)
	}
	if s.notifier != nil {
		if nerr := s.notifier.ProfilingCompleted(dbc.Context(), NewCompletionEvent(userID, sessionID, res)); nerr != nil {
			s.metrics.IncNotifyFailure()
			fields := append([]interface{}{"session_id", sessionID.String(), "error", nerr}, ctxutil.LogFields(dbc.Context())...)
			s.log.Warn("completion event publish failed", fields...)
		}
	}
	return res, nil
}

func (s *profilingService) Blueprint(dbc dbctx.Context, sessionID uuid.UUID) (*blueprint.Blueprint, error) {
	ctx, span := s.tracer.Start(dbc.Context(), "profiling.Blueprint",
		trace.WithAttributes(attribute.String("profiling.session_id", sessionID.String())))
	defer span.End()
	dbc.Ctx = ctx

	row, err := s.load(dbc, sessionID, false)
	if err != nil {
		return nil, s.fail(ctx, "blueprint", err)
	}
	sess, err := sessionFromRow(row)
	if err != nil {
		return nil, s.fail(ctx, "blueprint", err)
	}
	res, err := resultFromRow(row)
	if err != nil {
		return nil, s.fail(ctx, "blueprint", err)
	}
	bp, err := s.engine.GenerateBlueprint(sess, res)
	if err != nil {
		return nil, s.fail(ctx, "blueprint", err)
	}
	s.metrics.IncBlueprint()
	return bp, nil
}

// mutate loads the caller's session under a row lock, applies fn and saves
// the result in the same transaction. A caller-supplied dbc.Tx is reused.
func (s *profilingService) mutate(dbc dbctx.Context, op string, sessionID uuid.UUID, fn func(sess *session.Session, row *domain.ProfilingSession) error) error {
	ctx, span := s.tracer.Start(dbc.Context(), "profiling."+op,
		trace.WithAttributes(attribute.String("profiling.session_id", sessionID.String())))
	defer span.End()

	run := func(inner dbctx.Context) error {
		row, err := s.load(inner, sessionID, true)
		if err != nil {
			return err
		}
		sess, err := sessionFromRow(row)
		if err != nil {
			return err
		}
		if err := fn(sess, row); err != nil {
			return err
		}
		if err := applySession(sess, row); err != nil {
			return err
		}
		return s.repo.Save(inner, row)
	}

	if err := s.tx.InTx(dbctx.Context{Ctx: ctx, Tx: dbc.Tx}, run); err != nil {
		return s.fail(ctx, op, err)
	}
	return nil
}

// load returns the session row owned by the request's user. Rows owned by
// someone else are reported as not found.
func (s *profilingService) load(dbc dbctx.Context, sessionID uuid.UUID, forUpdate bool) (*domain.ProfilingSession, error) {
	userID, err := requireUser(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	var row *domain.ProfilingSession
	if forUpdate {
		row, err = s.repo.GetByIDForUpdate(dbc, sessionID)
	} else {
		row, err = s.repo.GetByID(dbc, sessionID)
	}
	if err != nil {
		return nil, err
	}
	if row == nil || row.UserID != userID {
		return nil, fmt.Errorf("session %s: %w", sessionID, perrors.ErrNotFound)
	}
	return row, nil
}

func (s *profilingService) view(row *domain.ProfilingSession) (*SessionView, error) {
	sess, err := sessionFromRow(row)
	if err != nil {
		return nil, err
	}
	res, err := resultFromRow(row)
	if err != nil {
		return nil, err
	}
	return &SessionView{Session: sess, Progress: s.engine.ModuleProgress(sess), Result: res}, nil
}

func (s *profilingService) fail(ctx context.Context, op string, err error) error {
	ae := apierr.From(err)
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, ae.Code)
	s.metrics.IncOperationError(op, ae.Code)
	fields := append([]interface{}{"op", op, "code", ae.Code, "error", err}, ctxutil.LogFields(ctx)...)
	if ae.Status >= http.StatusInternalServerError {
		s.log.Error("profiling operation failed", fields...)
	} else {
		s.log.Debug("profiling operation rejected", fields...)
	}
	return err
}

func requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("unauthorized"))
	}
	return rd.UserID, nil
}
