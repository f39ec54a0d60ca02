package txrunner

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-profiling/internal/pkg/dbctx"
)

// Runner is the transaction boundary for multi-step writes.
type Runner interface {
	// InTx runs fn inside a transaction. When dbc already carries a
	// transaction, fn joins it instead of opening a new one.
	InTx(dbc dbctx.Context, fn func(inner dbctx.Context) error) error
}

type gormRunner struct {
	db *gorm.DB
}

func NewGormRunner(db *gorm.DB) Runner {
	return &gormRunner{db: db}
}

func (r *gormRunner) InTx(dbc dbctx.Context, fn func(inner dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if dbc.Tx != nil {
		return fn(dbc.WithTx(dbc.Tx))
	}
	if r == nil || r.db == nil {
		return errors.New("txrunner: nil db")
	}
	return r.db.WithContext(dbc.Context()).Transaction(func(tx *gorm.DB) error {
		return fn(dbc.WithTx(tx))
	})
}
