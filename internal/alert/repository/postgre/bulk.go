package postgres

import (
	"context"
	"fmt"

	"alerts-srv/internal/alert/repository"

	"github.com/friendsofgo/errors"
)

// The bulk flips are deliberately a single multi-row UPDATE with no
// per-record load: status-only transitions over potentially large batches
// must stay cheap and must not re-fire lifecycle events.

func (r *implRepository) CloseAll(ctx context.Context, f repository.Filter) (int64, error) {
	return r.flip(ctx, "CloseAll", "closed_at", true, f)
}

func (r *implRepository) ReopenAll(ctx context.Context, f repository.Filter) (int64, error) {
	return r.flip(ctx, "ReopenAll", "closed_at", false, f)
}

func (r *implRepository) DestroyAll(ctx context.Context, f repository.Filter) (int64, error) {
	return r.flip(ctx, "DestroyAll", "destroyed_at", true, f)
}

func (r *implRepository) UndestroyAll(ctx context.Context, f repository.Filter) (int64, error) {
	return r.flip(ctx, "UndestroyAll", "destroyed_at", false, f)
}

func (r *implRepository) flip(ctx context.Context, op, column string, set bool, f repository.Filter) (int64, error) {
	where, args := buildWhere(f)

	var q string
	now := r.clock()
	if set {
		q = fmt.Sprintf("UPDATE alerts SET %s = $%d, updated_at = $%d WHERE %s",
			column, len(args)+1, len(args)+2, where)
		args = append(args, now, now)
	} else {
		q = fmt.Sprintf("UPDATE alerts SET %s = NULL, updated_at = $%d WHERE %s",
			column, len(args)+1, where)
		args = append(args, now)
	}

	result, err := r.exec.ExecContext(ctx, q, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.%s.ExecContext: %v", op, err)
		return 0, errors.Wrapf(err, "%s", op)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.%s.RowsAffected: %v", op, err)
		return 0, errors.Wrapf(err, "%s rows affected", op)
	}

	return rows, nil
}
