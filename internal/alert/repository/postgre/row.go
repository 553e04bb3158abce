package postgres

import (
	"time"

	"alerts-srv/internal/model"

	"github.com/aarondl/null/v8"
)

// alertRow mirrors one row of the alerts table.
type alertRow struct {
	ID                string      `boil:"id"`
	Type              string      `boil:"type"`
	Key               string      `boil:"key"`
	Summary           string      `boil:"summary"`
	URL               string      `boil:"url"`
	Priority          string      `boil:"priority"`
	OpenedAt          time.Time   `boil:"opened_at"`
	Deadline          time.Time   `boil:"deadline"`
	ClosedAt          null.Time   `boil:"closed_at"`
	DestroyedAt       null.Time   `boil:"destroyed_at"`
	CheckedOutByEmail null.String `boil:"checked_out_by_email"`
	CheckedOutByID    null.String `boil:"checked_out_by_id"`
	ProjectSlug       null.String `boil:"project_slug"`
	ProjectID         null.String `boil:"project_id"`
	CreatedAt         time.Time   `boil:"created_at"`
	UpdatedAt         time.Time   `boil:"updated_at"`
}

func (row alertRow) toModel() model.Alert {
	return model.Alert{
		ID:                row.ID,
		Type:              row.Type,
		Key:               row.Key,
		Summary:           row.Summary,
		URL:               row.URL,
		Priority:          model.Priority(row.Priority),
		OpenedAt:          row.OpenedAt,
		Deadline:          row.Deadline,
		ClosedAt:          row.ClosedAt.Ptr(),
		DestroyedAt:       row.DestroyedAt.Ptr(),
		CheckedOutByEmail: row.CheckedOutByEmail.Ptr(),
		CheckedOutByID:    row.CheckedOutByID.Ptr(),
		ProjectSlug:       row.ProjectSlug.Ptr(),
		ProjectID:         row.ProjectID.Ptr(),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func rowFromModel(a model.Alert) alertRow {
	return alertRow{
		ID:                a.ID,
		Type:              a.Type,
		Key:               a.Key,
		Summary:           a.Summary,
		URL:               a.URL,
		Priority:          a.Priority.String(),
		OpenedAt:          a.OpenedAt,
		Deadline:          a.Deadline,
		ClosedAt:          null.TimeFromPtr(a.ClosedAt),
		DestroyedAt:       null.TimeFromPtr(a.DestroyedAt),
		CheckedOutByEmail: null.StringFromPtr(a.CheckedOutByEmail),
		CheckedOutByID:    null.StringFromPtr(a.CheckedOutByID),
		ProjectSlug:       null.StringFromPtr(a.ProjectSlug),
		ProjectID:         null.StringFromPtr(a.ProjectID),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func rowsToModels(rows []alertRow) []model.Alert {
	res := make([]model.Alert, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res
}
