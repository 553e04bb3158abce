package postgres

import (
	"fmt"
	"strings"
	"time"

	"alerts-srv/internal/alert/repository"
	postgresPkg "alerts-srv/pkg/postgre"
)

// alertColumns is the select list for the alerts table. "type" and "key"
// are quoted because they collide with SQL keywords.
const alertColumns = `id, "type", "key", summary, url, priority, opened_at, deadline, ` +
	`closed_at, destroyed_at, checked_out_by_email, checked_out_by_id, ` +
	`project_slug, project_id, created_at, updated_at`

// buildWhere renders a Filter as an AND-combined WHERE clause with numbered
// placeholders starting at $1. Destroyed records are excluded unless the
// filter explicitly selects them.
func buildWhere(f repository.Filter) (string, []any) {
	var conds []string
	var args []any

	next := func() int { return len(args) + 1 }

	if f.Destroyed {
		conds = append(conds, "destroyed_at IS NOT NULL")
	} else {
		conds = append(conds, "destroyed_at IS NULL")
	}

	if f.Type != "" {
		conds = append(conds, fmt.Sprintf(`"type" = $%d`, next()))
		args = append(args, f.Type)
	}

	if len(f.Keys) > 0 {
		conds = append(conds, fmt.Sprintf(`"key" IN (%s)`,
			postgresPkg.Placeholders(len(f.Keys), next())))
		args = append(args, postgresPkg.InArgs(f.Keys)...)
	}

	if len(f.WithoutKeys) > 0 {
		conds = append(conds, fmt.Sprintf(`"key" NOT IN (%s)`,
			postgresPkg.Placeholders(len(f.WithoutKeys), next())))
		args = append(args, postgresPkg.InArgs(f.WithoutKeys)...)
	}

	if f.Open {
		conds = append(conds, "closed_at IS NULL")
	}

	if f.Closed {
		conds = append(conds, "closed_at IS NOT NULL")
	}

	if f.ClosedAfter != nil {
		conds = append(conds, fmt.Sprintf("closed_at >= $%d", next()))
		args = append(args, *f.ClosedAfter)
	}

	if f.ClosedOn != nil {
		day := *f.ClosedOn
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		conds = append(conds, fmt.Sprintf("closed_at >= $%d", next()))
		args = append(args, start)
		conds = append(conds, fmt.Sprintf("closed_at < $%d", next()))
		args = append(args, start.AddDate(0, 0, 1))
	}

	if f.CheckedOut {
		conds = append(conds, "checked_out_by_id IS NOT NULL")
	}

	if f.CheckedOutByID != "" {
		conds = append(conds, fmt.Sprintf("checked_out_by_id = $%d", next()))
		args = append(args, f.CheckedOutByID)
	}

	if f.DueBefore != nil {
		conds = append(conds, fmt.Sprintf("deadline <= $%d", next()))
		args = append(args, *f.DueBefore)
	}

	return strings.Join(conds, " AND "), args
}
