package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"alerts-srv/internal/model"
	"alerts-srv/internal/user/repository"
	pkgLog "alerts-srv/pkg/log"
	postgresPkg "alerts-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

const userColumns = `id, name, email, created_at, deleted_at`

type userRow struct {
	ID        string    `boil:"id"`
	Name      string    `boil:"name"`
	Email     string    `boil:"email"`
	CreatedAt time.Time `boil:"created_at"`
	DeletedAt null.Time `boil:"deleted_at"`
}

func (row userRow) toModel() model.User {
	return model.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		DeletedAt: row.DeletedAt.Ptr(),
	}
}

type implRepository struct {
	l  pkgLog.Logger
	db boil.ContextExecutor
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *sql.DB) *implRepository {
	return &implRepository{l: l, db: db}
}

func (r *implRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var row userRow
	q := fmt.Sprintf("SELECT %s FROM users WHERE email = $1 AND deleted_at IS NULL", userColumns)
	if err := queries.Raw(q, email).Bind(ctx, r.db, &row); err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.GetByEmail.Bind: %v", err)
		return model.User{}, errors.Wrap(err, "get user by email")
	}

	return row.toModel(), nil
}

func (r *implRepository) List(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := postgresPkg.ValidateUUIDs(ids); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.ValidateUUIDs: %v", err)
		return nil, err
	}

	var rows []userRow
	q := fmt.Sprintf("SELECT %s FROM users WHERE id IN (%s) AND deleted_at IS NULL",
		userColumns, postgresPkg.Placeholders(len(ids), 1))
	if err := queries.Raw(q, postgresPkg.InArgs(ids)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Bind: %v", err)
		return nil, errors.Wrap(err, "list users")
	}

	res := make([]model.User, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}
