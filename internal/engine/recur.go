package engine

import (
	"time"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// nextDue advances due by one recurrence period. Monthly steps land on the
// same day of the next month, clamped to that month's last day, so Jan 31
// becomes Feb 28 (or 29). ok is false for an unknown rule.
func nextDue(due time.Time, rule string) (next time.Time, ok bool) {
	switch rule {
	case types.RecurDaily:
		return due.AddDate(0, 0, 1), true
	case types.RecurWeekly:
		return due.AddDate(0, 0, 7), true
	case types.RecurMonthly:
		return addMonth(due), true
	}
	return due, false
}

func addMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	// Day 0 of the month after next is the last day of next month.
	last := time.Date(y, m+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > last {
		d = last
	}
	return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
