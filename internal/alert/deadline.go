package alert

import (
	"time"

	"alerts-srv/internal/model"
)

const (
	urgentResponseWindow = 2 * time.Hour
	highResponseDays     = 2
	workdayStartHour     = 8
)

// ComputeDeadline derives the due-by timestamp from an alert's open time and
// priority. It must be re-run whenever either input changes, before the
// record is persisted.
//
// Urgent alerts are due two hours after they open, with no calendar
// adjustment. High-priority alerts get roughly two working days:
//
//   - opened on a weekend: due two days after 08:00 on the Monday that
//     begins the following week (weeks start on Monday);
//   - opened on a weekday: due two days later, pushed another two days if
//     that lands on a weekend. A single correction pass only.
func ComputeDeadline(openedAt time.Time, priority model.Priority) time.Time {
	if priority == model.PriorityUrgent {
		return openedAt.Add(urgentResponseWindow)
	}

	if isWeekend(openedAt) {
		return mondayAfter(openedAt).AddDate(0, 0, highResponseDays)
	}

	deadline := openedAt.AddDate(0, 0, highResponseDays)
	if isWeekend(deadline) {
		deadline = deadline.AddDate(0, 0, highResponseDays)
	}
	return deadline
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// mondayAfter returns 08:00 on the Monday one week after the start of t's
// week, where weeks begin on Monday.
func mondayAfter(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	weekStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -daysSinceMonday)
	return weekStart.AddDate(0, 0, 7).Add(workdayStartHour * time.Hour)
}
