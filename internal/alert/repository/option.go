package repository

import (
	"time"

	"alerts-srv/internal/model"
	"alerts-srv/pkg/paginator"
)

// Filter contains AND-combinable restrictions for alert queries.
// The zero value selects every alive record: destroyed records are excluded
// unless Destroyed is set, which selects only destroyed records.
type Filter struct {
	Type        string
	Keys        []string
	WithoutKeys []string

	Open        bool
	Closed      bool
	ClosedAfter *time.Time
	ClosedOn    *time.Time

	Destroyed bool

	CheckedOut     bool
	CheckedOutByID string

	DueBefore *time.Time
}

// CreateOptions contains options for creating an alert. The ID is assigned
// by the store.
type CreateOptions struct {
	Alert model.Alert
}

// UpdateOptions contains options for updating a single alert.
type UpdateOptions struct {
	Alert model.Alert
}

// ListOptions contains options for unpaginated alert listing.
type ListOptions struct {
	Filter Filter
}

// GetOptions contains options for paginated alert listing.
type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}
