package model

import "time"

// Summary length limits. Source text longer than summaryMaxLen is stored
// truncated to summaryTruncLen characters plus an ellipsis marker.
const (
	summaryMaxLen   = 255
	summaryTruncLen = 252
)

// Alert is a trackable notice reported by an external collector.
// (Type, Key) identifies one logical alert across its entire lifetime;
// ClosedAt and DestroyedAt are independent lifecycle dimensions.
type Alert struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Key         string     `json:"key"`
	Summary     string     `json:"summary"`
	URL         string     `json:"url"`
	Priority    Priority   `json:"priority"`
	OpenedAt    time.Time  `json:"opened_at"`
	Deadline    time.Time  `json:"deadline"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	DestroyedAt *time.Time `json:"destroyed_at,omitempty"`

	// Transient collector-supplied references; resolved to CheckedOutByID /
	// ProjectID through the lookup collaborators whenever they change.
	CheckedOutByEmail *string `json:"checked_out_by_email,omitempty"`
	ProjectSlug       *string `json:"project_slug,omitempty"`

	CheckedOutByID *string `json:"checked_out_by_id,omitempty"`
	ProjectID      *string `json:"project_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Hydrated associations, populated for presentation only.
	CheckedOutBy *User    `json:"-"`
	Project     *Project `json:"-"`
}

// SetSummary assigns the summary, truncating overlong source text to
// summaryTruncLen characters plus "...".
func (a *Alert) SetSummary(value string) {
	runes := []rune(value)
	if len(runes) > summaryMaxLen {
		value = string(runes[:summaryTruncLen]) + "..."
	}
	a.Summary = value
}

// Open reports whether the alert has not been closed.
func (a *Alert) Open() bool {
	return a.ClosedAt == nil
}

// Destroyed reports whether the alert has been soft-deleted.
func (a *Alert) Destroyed() bool {
	return a.DestroyedAt != nil
}

// Urgent reports whether the alert carries the urgent priority.
func (a *Alert) Urgent() bool {
	return a.Priority == PriorityUrgent
}

// Assigned reports whether somebody has checked the alert out.
func (a *Alert) Assigned() bool {
	return a.CheckedOutByID != nil
}

// SecondsRemaining returns the number of seconds until the deadline,
// negative when the deadline has passed.
func (a *Alert) SecondsRemaining(now time.Time) int64 {
	return int64(a.Deadline.Sub(now).Seconds())
}

// OnTime reports whether the alert was (or still can be) handled within its
// deadline. A closed alert compares its close time against the deadline; an
// open alert past the deadline is late; an open alert before the deadline is
// indeterminate, reported as nil.
func (a *Alert) OnTime(now time.Time) *bool {
	if a.ClosedAt != nil {
		onTime := !a.ClosedAt.After(a.Deadline)
		return &onTime
	}
	if a.Deadline.Before(now) {
		late := false
		return &late
	}
	return nil
}
