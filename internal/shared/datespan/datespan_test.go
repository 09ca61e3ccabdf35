package datespan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2025, time.March, 10), date(2025, time.March, 10), 1},
		{"full week", date(2025, time.March, 10), date(2025, time.March, 16), 7},
		{"across month boundary", date(2025, time.January, 30), date(2025, time.February, 2), 4},
		{"end before start", date(2025, time.March, 10), date(2025, time.March, 9), 0},
		{"time of day ignored", date(2025, time.March, 10).Add(23 * time.Hour), date(2025, time.March, 11), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InclusiveDays(tt.start, tt.end))
		})
	}
}

func TestEndDate(t *testing.T) {
	start := date(2025, time.March, 10)

	assert.Equal(t, date(2025, time.March, 10), EndDate(start, 1))
	assert.Equal(t, date(2025, time.March, 14), EndDate(start, 5))
	// Durations below one day still cover the start date.
	assert.Equal(t, date(2025, time.March, 10), EndDate(start, 0))
	assert.Equal(t, date(2025, time.March, 10), EndDate(start, -3))
}

func TestInclusiveDaysEndDateRoundTrip(t *testing.T) {
	start := date(2025, time.June, 2)
	for duration := 1; duration <= 10; duration++ {
		end := EndDate(start, duration)
		assert.Equal(t, duration, InclusiveDays(start, end))
	}
}
