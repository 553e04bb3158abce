package httpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerts-srv/internal/model"
)

func TestNewAlertResp(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	userID := "user-1"
	projectID := "project-1"
	email := "ops@example.com"

	a := model.Alert{
		ID:             "alert-1",
		Type:           "ci-build",
		Key:            "build-42",
		Summary:        "build 42 failed",
		URL:            "https://ci.example.com/42",
		Priority:       model.PriorityHigh,
		OpenedAt:       now.Add(-time.Hour),
		Deadline:       now.Add(time.Hour),
		CheckedOutByID: &userID,
		ProjectID:      &projectID,
		CheckedOutBy:   &model.User{ID: userID, Name: "Ops"},
		Project:        &model.Project{ID: projectID, Slug: "payments", Name: "Payments", Color: "teal"},
	}
	a.CheckedOutByEmail = &email

	resp := newAlertResp(a, now)

	assert.Equal(t, "alert-1", resp.ID)
	assert.Equal(t, int64(3600), resp.SecondsRemaining)
	assert.Nil(t, resp.OnTime)

	require.NotNil(t, resp.CheckedOutBy)
	assert.Equal(t, "Ops", resp.CheckedOutBy.Name)
	assert.False(t, resp.CheckedOutRemotely)

	require.NotNil(t, resp.ProjectSlug)
	assert.Equal(t, "payments", *resp.ProjectSlug)
	require.NotNil(t, resp.ProjectTitle)
	assert.Equal(t, "Payments", *resp.ProjectTitle)
	require.NotNil(t, resp.ProjectColor)
	assert.Equal(t, "teal", *resp.ProjectColor)
}

func TestNewAlertRespRemoteOwner(t *testing.T) {
	now := time.Now()
	email := "remote@example.com"

	a := model.Alert{
		ID:                "alert-2",
		Priority:          model.PriorityUrgent,
		Deadline:          now.Add(-time.Minute),
		CheckedOutByEmail: &email,
	}

	resp := newAlertResp(a, now)

	// Owned upstream by somebody this service could not resolve.
	assert.Nil(t, resp.CheckedOutBy)
	assert.True(t, resp.CheckedOutRemotely)

	// Past deadline and still open.
	require.NotNil(t, resp.OnTime)
	assert.False(t, *resp.OnTime)
}

func TestNewAlertRespProjectOwnership(t *testing.T) {
	now := time.Now()
	slug := "payments"

	// Collector dictates the project: the dashboard must not offer to move it.
	withSlug := model.Alert{ProjectSlug: &slug}
	resp := newAlertResp(withSlug, now)
	assert.False(t, resp.CanChangeProject)
	require.NotNil(t, resp.ProjectSlug)
	assert.Equal(t, slug, *resp.ProjectSlug)

	// No collector-supplied slug: the project is editable.
	resp = newAlertResp(model.Alert{}, now)
	assert.True(t, resp.CanChangeProject)
	assert.Nil(t, resp.ProjectSlug)
}
