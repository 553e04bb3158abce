package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"alerts-srv/internal/model"
)

func TestComputeDeadlineUrgent(t *testing.T) {
	tests := []struct {
		name     string
		openedAt time.Time
	}{
		{"weekday afternoon", time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC)},
		{"saturday", time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)},
		{"sunday night", time.Date(2026, 3, 8, 23, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeadline(tt.openedAt, model.PriorityUrgent)
			assert.Equal(t, tt.openedAt.Add(2*time.Hour), got)
		})
	}
}

func TestComputeDeadlineHighWeekday(t *testing.T) {
	tests := []struct {
		name     string
		openedAt time.Time
		want     time.Time
	}{
		{
			// Monday + 2d = Wednesday, no correction.
			"monday",
			time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		},
		{
			// Wednesday + 2d = Friday, no correction.
			"wednesday",
			time.Date(2026, 3, 4, 16, 45, 0, 0, time.UTC),
			time.Date(2026, 3, 6, 16, 45, 0, 0, time.UTC),
		},
		{
			// Thursday + 2d = Saturday, corrected to Monday.
			"thursday lands on saturday",
			time.Date(2026, 3, 5, 9, 15, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 9, 15, 0, 0, time.UTC),
		},
		{
			// Friday + 2d = Sunday, corrected to Tuesday.
			"friday lands on sunday",
			time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeadline(tt.openedAt, model.PriorityHigh)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeDeadlineHighWeekend(t *testing.T) {
	// Weekend opens land two days after 08:00 on the Monday of the next week.
	tests := []struct {
		name     string
		openedAt time.Time
		want     time.Time
	}{
		{
			"saturday morning",
			time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		},
		{
			"sunday evening",
			time.Date(2026, 3, 8, 19, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		},
		{
			// The opening time of day never leaks into the weekend deadline.
			"saturday midnight",
			time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeadline(tt.openedAt, model.PriorityHigh)
			assert.Equal(t, tt.want, got)
		})
	}
}
