package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"alerts-srv/internal/alert/repository"
	"alerts-srv/internal/model"
	"alerts-srv/pkg/paginator"
	postgresPkg "alerts-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Alert, error) {
	where, args := buildWhere(opts.Filter)

	var rows []alertRow
	q := fmt.Sprintf("SELECT %s FROM alerts WHERE %s ORDER BY deadline ASC", alertColumns, where)
	if err := queries.Raw(q, args...).Bind(ctx, r.exec, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.List.Bind: %v", err)
		return nil, errors.Wrap(err, "list alerts")
	}

	return rowsToModels(rows), nil
}

func (r *implRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.Alert, paginator.Paginator, error) {
	where, args := buildWhere(opts.Filter)

	total, err := r.count(ctx, where, args)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Get.count: %v", err)
		return nil, paginator.Paginator{}, err
	}

	opts.PaginateQuery.Adjust()
	q := fmt.Sprintf("SELECT %s FROM alerts WHERE %s ORDER BY deadline ASC LIMIT $%d OFFSET $%d",
		alertColumns, where, len(args)+1, len(args)+2)
	args = append(args, opts.PaginateQuery.Limit, opts.PaginateQuery.Offset())

	var rows []alertRow
	if err := queries.Raw(q, args...).Bind(ctx, r.exec, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get alerts")
	}

	res := rowsToModels(rows)
	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(res)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}

	return res, pag, nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Alert, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Detail.IsUUID: %v", err)
		return model.Alert{}, err
	}

	var row alertRow
	q := fmt.Sprintf("SELECT %s FROM alerts WHERE id = $1 AND destroyed_at IS NULL", alertColumns)
	if err := queries.Raw(q, id).Bind(ctx, r.exec, &row); err != nil {
		if err == sql.ErrNoRows {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Detail.Bind: %v", err)
		return model.Alert{}, errors.Wrap(err, "detail alert")
	}

	return row.toModel(), nil
}

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Alert, error) {
	now := r.clock()

	row := rowFromModel(opts.Alert)
	row.ID = postgresPkg.NewUUID()
	row.CreatedAt = now
	row.UpdatedAt = now

	q := fmt.Sprintf(`INSERT INTO alerts (%s) VALUES (%s) RETURNING %s`,
		alertColumns, postgresPkg.Placeholders(16, 1), alertColumns)

	var created alertRow
	err := queries.Raw(q,
		row.ID, row.Type, row.Key, row.Summary, row.URL, row.Priority,
		row.OpenedAt, row.Deadline, row.ClosedAt, row.DestroyedAt,
		row.CheckedOutByEmail, row.CheckedOutByID, row.ProjectSlug, row.ProjectID,
		row.CreatedAt, row.UpdatedAt,
	).Bind(ctx, r.exec, &created)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Create.Bind: %v", err)
		return model.Alert{}, errors.Wrap(err, "create alert")
	}

	return created.toModel(), nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	if err := postgresPkg.IsUUID(opts.Alert.ID); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Update.IsUUID: %v", err)
		return model.Alert{}, err
	}

	row := rowFromModel(opts.Alert)
	row.UpdatedAt = r.clock()

	q := fmt.Sprintf(`UPDATE alerts SET
		"type" = $1, "key" = $2, summary = $3, url = $4, priority = $5,
		opened_at = $6, deadline = $7, closed_at = $8, destroyed_at = $9,
		checked_out_by_email = $10, checked_out_by_id = $11,
		project_slug = $12, project_id = $13, updated_at = $14
		WHERE id = $15 RETURNING %s`, alertColumns)

	var updated alertRow
	err := queries.Raw(q,
		row.Type, row.Key, row.Summary, row.URL, row.Priority,
		row.OpenedAt, row.Deadline, row.ClosedAt, row.DestroyedAt,
		row.CheckedOutByEmail, row.CheckedOutByID,
		row.ProjectSlug, row.ProjectID, row.UpdatedAt,
		row.ID,
	).Bind(ctx, r.exec, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Update.Bind: %v", err)
		return model.Alert{}, errors.Wrap(err, "update alert")
	}

	return updated.toModel(), nil
}

func (r *implRepository) Count(ctx context.Context, f repository.Filter) (int64, error) {
	where, args := buildWhere(f)
	return r.count(ctx, where, args)
}

func (r *implRepository) count(ctx context.Context, where string, args []any) (int64, error) {
	var res struct {
		Count int64 `boil:"count"`
	}
	q := fmt.Sprintf("SELECT COUNT(*) AS count FROM alerts WHERE %s", where)
	if err := queries.Raw(q, args...).Bind(ctx, r.exec, &res); err != nil {
		return 0, errors.Wrap(err, "count alerts")
	}
	return res.Count, nil
}

func (r *implRepository) CountByType(ctx context.Context, f repository.Filter) (map[string]int64, error) {
	where, args := buildWhere(f)

	var rows []struct {
		Type  string `boil:"type"`
		Count int64  `boil:"count"`
	}
	q := fmt.Sprintf(`SELECT "type", COUNT(*) AS count FROM alerts WHERE %s GROUP BY "type"`, where)
	if err := queries.Raw(q, args...).Bind(ctx, r.exec, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CountByType.Bind: %v", err)
		return nil, errors.Wrap(err, "count alerts by type")
	}

	res := make(map[string]int64, len(rows))
	for _, row := range rows {
		res[row.Type] = row.Count
	}
	return res, nil
}
