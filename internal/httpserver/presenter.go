package httpserver

import (
	"time"

	"alerts-srv/internal/model"
)

// alertResp is the flat dashboard-facing shape of an alert.
type alertResp struct {
	ID               string         `json:"id"`
	Type             string         `json:"type"`
	Key              string         `json:"key"`
	Summary          string         `json:"summary"`
	URL              string         `json:"url"`
	Priority         model.Priority `json:"priority"`
	OpenedAt         time.Time      `json:"openedAt"`
	ClosedAt         *time.Time     `json:"closedAt"`
	Deadline         time.Time      `json:"deadline"`
	SecondsRemaining int64          `json:"secondsRemaining"`
	OnTime           *bool          `json:"onTime"`

	ProjectID    *string `json:"projectId"`
	ProjectSlug  *string `json:"projectSlug"`
	ProjectTitle *string `json:"projectTitle"`
	ProjectColor *string `json:"projectColor"`

	CheckedOutBy *checkedOutByResp `json:"checkedOutBy"`

	// CheckedOutRemotely marks alerts owned in the external system by someone
	// this service could not resolve to a local user.
	CheckedOutRemotely bool `json:"checkedOutRemotely"`
	// CanChangeProject is false when the collector dictates the project.
	CanChangeProject bool `json:"canChangeProject"`
}

type checkedOutByResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newAlertResp(a model.Alert, now time.Time) alertResp {
	resp := alertResp{
		ID:                 a.ID,
		Type:               a.Type,
		Key:                a.Key,
		Summary:            a.Summary,
		URL:                a.URL,
		Priority:           a.Priority,
		OpenedAt:           a.OpenedAt,
		ClosedAt:           a.ClosedAt,
		Deadline:           a.Deadline,
		SecondsRemaining:   a.SecondsRemaining(now),
		OnTime:             a.OnTime(now),
		ProjectID:          a.ProjectID,
		CheckedOutRemotely: a.CheckedOutByEmail != nil && a.CheckedOutByID == nil,
		CanChangeProject:   a.ProjectSlug == nil,
	}

	if a.Project != nil {
		resp.ProjectSlug = &a.Project.Slug
		resp.ProjectTitle = &a.Project.Name
		resp.ProjectColor = &a.Project.Color
	} else {
		resp.ProjectSlug = a.ProjectSlug
	}

	if a.CheckedOutBy != nil {
		resp.CheckedOutBy = &checkedOutByResp{ID: a.CheckedOutBy.ID, Name: a.CheckedOutBy.Name}
	}

	return resp
}

func newAlertResps(alerts []model.Alert, now time.Time) []alertResp {
	resps := make([]alertResp, 0, len(alerts))
	for _, a := range alerts {
		resps = append(resps, newAlertResp(a, now))
	}
	return resps
}
