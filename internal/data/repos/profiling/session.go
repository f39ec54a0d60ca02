package profiling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/yungbote/neurobridge-profiling/internal/domain/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/pkg/dbctx"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

type SessionRepo interface {
	Create(dbc dbctx.Context, row *domain.ProfilingSession) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ProfilingSession, error)
	GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*domain.ProfilingSession, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*domain.ProfilingSession, error)
	Save(dbc dbctx.Context, row *domain.ProfilingSession) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{
		db:  db,
		log: baseLog.With("repo", "ProfilingSessionRepo"),
	}
}

func (r *sessionRepo) Create(dbc dbctx.Context, row *domain.ProfilingSession) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return t.WithContext(dbc.Context()).Create(row).Error
}

// GetByID returns nil, nil when the row does not exist.
func (r *sessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ProfilingSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return r.first(t.WithContext(dbc.Context()), id)
}

// GetByIDForUpdate locks the row for the rest of dbc.Tx. Dialects without row
// locks ignore the clause.
func (r *sessionRepo) GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*domain.ProfilingSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Context())
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(q, id)
}

func (r *sessionRepo) first(q *gorm.DB, id uuid.UUID) (*domain.ProfilingSession, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.ProfilingSession
	if err := q.Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *sessionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*domain.ProfilingSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ProfilingSession
	if userID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if err := t.WithContext(dbc.Context()).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sessionRepo) Save(dbc dbctx.Context, row *domain.ProfilingSession) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	return t.WithContext(dbc.Context()).Save(row).Error
}
