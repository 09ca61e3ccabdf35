// Package datespan computes the inclusive day arithmetic used by leave
// requests and absence justifications.
package datespan

import "time"

const Day = 24 * time.Hour

// InclusiveDays counts whole days from start to end with both endpoints
// included: InclusiveDays(Jan 1, Jan 5) == 5. Returns 0 when end is
// before start; callers treat that as invalid input.
func InclusiveDays(start, end time.Time) int {
	s := truncate(start)
	e := truncate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s)/Day) + 1
}

// EndDate derives the display end date for a record stored as a start
// date plus a duration. Durations below one day are clamped so the span
// always covers at least the start date itself.
func EndDate(start time.Time, duration int) time.Time {
	if duration < 1 {
		duration = 1
	}
	return truncate(start).AddDate(0, 0, duration-1)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
