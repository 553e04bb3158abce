package alert

import (
	"context"

	"alerts-srv/internal/model"
)

// UseCase is the alert domain surface: the reconciliation engine plus the
// read/write paths used by the HTTP layer.
type UseCase interface {
	// Synchronize brings the persisted alerts of alertType into agreement
	// with the externally reported snapshot, under the given mode.
	Synchronize(ctx context.Context, mode SyncMode, alertType string, entries []SnapshotEntry) (SyncReport, error)

	Get(ctx context.Context, ip GetInput) (GetOutput, error)
	Detail(ctx context.Context, id string) (model.Alert, error)
	Create(ctx context.Context, ip CreateInput) (model.Alert, error)
	Update(ctx context.Context, ip UpdateInput) (model.Alert, error)
	Dashboard(ctx context.Context) (DashboardOutput, error)
}

// Publisher is the notification sink for lifecycle events. Publishing is
// fire-and-forget: implementations log failures and never surface them.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any)
}

// Lifecycle event topics. Each event also fires on a per-type topic,
// e.g. "alert:ci-build:create".
const (
	TopicCreate = "alert:create"
	TopicAssign = "alert:assign"
)

// CreateTopics returns the topics fired when an alert of alertType is created.
func CreateTopics(alertType string) []string {
	return []string{TopicCreate, "alert:" + alertType + ":create"}
}

// AssignTopics returns the topics fired when an alert's owner changes.
func AssignTopics(alertType string) []string {
	return []string{TopicAssign, "alert:" + alertType + ":assign"}
}
