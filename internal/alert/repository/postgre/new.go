package postgres

import (
	"context"
	"database/sql"
	"time"

	"alerts-srv/internal/alert/repository"
	pkgLog "alerts-srv/pkg/log"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/friendsofgo/errors"
)

type implRepository struct {
	l     pkgLog.Logger
	db    *sql.DB
	exec  boil.ContextExecutor
	clock func() time.Time
	inTx  bool
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *sql.DB) *implRepository {
	return &implRepository{
		l:     l,
		db:    db,
		exec:  db,
		clock: time.Now,
	}
}

// InTx runs fn inside a database transaction. Reconciliation runs rely on
// this so the bulk flips are visible to the reload that follows them, and so
// two concurrent runs for the same type serialize instead of racing.
func (r *implRepository) InTx(ctx context.Context, fn func(repository.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.InTx.BeginTx: %v", err)
		return errors.Wrap(err, "begin transaction")
	}

	txRepo := &implRepository{
		l:     r.l,
		db:    r.db,
		exec:  tx,
		clock: r.clock,
		inTx:  true,
	}

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.InTx.Rollback: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.InTx.Commit: %v", err)
		return errors.Wrap(err, "commit transaction")
	}

	return nil
}
