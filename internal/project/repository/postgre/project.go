package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"alerts-srv/internal/model"
	"alerts-srv/internal/project/repository"
	pkgLog "alerts-srv/pkg/log"
	postgresPkg "alerts-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

const projectColumns = `id, slug, name, color, created_at`

type projectRow struct {
	ID        string    `boil:"id"`
	Slug      string    `boil:"slug"`
	Name      string    `boil:"name"`
	Color     string    `boil:"color"`
	CreatedAt time.Time `boil:"created_at"`
}

func (row projectRow) toModel() model.Project {
	return model.Project{
		ID:        row.ID,
		Slug:      row.Slug,
		Name:      row.Name,
		Color:     row.Color,
		CreatedAt: row.CreatedAt,
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

func (r *implRepository) GetBySlug(ctx context.Context, slug string) (model.Project, error) {
	var row projectRow
	q := fmt.Sprintf("SELECT %s FROM projects WHERE slug = $1", projectColumns)
	if err := queries.Raw(q, slug).Bind(ctx, r.db, &row); err != nil {
		if err == sql.ErrNoRows {
			return model.Project{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.project.repository.postgres.GetBySlug.Bind: %v", err)
		return model.Project{}, errors.Wrap(err, "get project by slug")
	}

	return row.toModel(), nil
}

func (r *implRepository) List(ctx context.Context, ids []string) ([]model.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := postgresPkg.ValidateUUIDs(ids); err != nil {
		r.l.Errorf(ctx, "internal.project.repository.postgres.List.ValidateUUIDs: %v", err)
		return nil, err
	}

	var rows []projectRow
	q := fmt.Sprintf("SELECT %s FROM projects WHERE id IN (%s)",
		projectColumns, postgresPkg.Placeholders(len(ids), 1))
	if err := queries.Raw(q, postgresPkg.InArgs(ids)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.project.repository.postgres.List.Bind: %v", err)
		return nil, errors.Wrap(err, "list projects")
	}

	res := make([]model.Project, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}
