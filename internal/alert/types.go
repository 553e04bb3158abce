package alert

import (
	"time"

	"alerts-srv/internal/model"
	"alerts-srv/pkg/paginator"
)

// SyncMode selects which lifecycle dimension a reconciliation run manages.
type SyncMode string

const (
	// SyncModeOpen manages only the open/closed dimension, scoped to
	// currently-open records. Used by collectors that only ever report
	// currently-open items.
	SyncModeOpen SyncMode = "open"
	// SyncModeAll manages only the alive/destroyed dimension over the full
	// per-type universe. Used when the collector is the single source of
	// truth for every alert of its type.
	SyncModeAll SyncMode = "all"
)

// IsValid checks if the mode is one of the two known policies.
func (m SyncMode) IsValid() bool {
	return m == SyncModeOpen || m == SyncModeAll
}

// SnapshotEntry is one externally reported alert attribute set.
// Key, Summary, URL and Priority are always supplied by collectors;
// the remaining fields are optional.
type SnapshotEntry struct {
	Key               string          `json:"key"`
	Summary           string          `json:"summary"`
	URL               string          `json:"url"`
	Priority          model.Priority  `json:"priority"`
	OpenedAt          *time.Time      `json:"opened_at,omitempty"`
	CheckedOutByEmail *string         `json:"checked_out_by_email,omitempty"`
	ProjectSlug       *string         `json:"project_slug,omitempty"`
}

// SyncFailure records a snapshot entry that could not be applied.
type SyncFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// SyncReport summarizes what a reconciliation run did.
type SyncReport struct {
	Type        string        `json:"type"`
	Mode        SyncMode      `json:"mode"`
	Received    int           `json:"received"`
	Deduped     int           `json:"deduped"`
	Closed      int64         `json:"closed"`
	Reopened    int64         `json:"reopened"`
	Destroyed   int64         `json:"destroyed"`
	Resurrected int64         `json:"resurrected"`
	Created     int           `json:"created"`
	Updated     int           `json:"updated"`
	Unchanged   int           `json:"unchanged"`
	Failures    []SyncFailure `json:"failures,omitempty"`
}

// Filter restricts alert queries; zero value selects all alive alerts.
type Filter struct {
	Type           string
	Open           bool
	Closed         bool
	Destroyed      bool
	CheckedOutByID string
	DueBefore      *time.Time
	ClosedOn       *time.Time
	ClosedAfter    *time.Time
}

type GetInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type GetOutput struct {
	Alerts    []model.Alert
	Paginator paginator.Paginator
}

type CreateInput struct {
	Type              string
	Key               string
	Summary           string
	URL               string
	Priority          model.Priority
	OpenedAt          *time.Time
	CheckedOutByEmail *string
	ProjectSlug       *string
}

// UpdateInput carries a manual edit; only non-nil fields are applied.
type UpdateInput struct {
	ID                string
	Summary           *string
	URL               *string
	Priority          *model.Priority
	OpenedAt          *time.Time
	CheckedOutByEmail *string
	ProjectSlug       *string
}

type DashboardOutput struct {
	Open    int64            `json:"open"`
	Overdue int64            `json:"overdue"`
	Closed  int64            `json:"closed"`
	ByType  map[string]int64 `json:"by_type"`
}
