package budget

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthPeriod_Bounds(t *testing.T) {
	p := MonthPeriod(2026, time.February, time.UTC)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC), p.End)
	assert.Equal(t, "2026-02", p.Label())
	assert.False(t, p.End.Before(p.Start))
}

func TestMonthPeriod_LeapYear(t *testing.T) {
	p := MonthPeriod(2028, time.February, time.UTC)
	assert.Equal(t, 29, p.End.Day())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2026-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2026, p.Year)
	assert.Equal(t, time.October, p.Month)

	for _, bad := range []string{"", "2026", "2026-13", "10-2026", "2026/10"} {
		_, err := ParsePeriod(bad, time.UTC)
		assert.True(t, errors.Is(err, ErrInvalidPeriod), "label %q", bad)
	}
}

func TestPeriod_DaysRemaining(t *testing.T) {
	p := MonthPeriod(2026, time.October, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"first day", time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC), 31},
		{"mid month", time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC), 18},
		{"last day", time.Date(2026, time.October, 31, 23, 0, 0, 0, time.UTC), 1},
		{"after end", time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC), 0},
		{"long after", time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC), 0},
		{"before start", time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.DaysRemaining(tt.now))
		})
	}
}

func TestPeriod_DaysRemainingAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("timezone database unavailable")
	}

	p := MonthPeriod(2026, time.October, loc)
	now := time.Date(2026, time.October, 20, 12, 0, 0, 0, loc)

	assert.Equal(t, 12, p.DaysRemaining(now))
}

func TestPeriodFor(t *testing.T) {
	p := PeriodFor(time.Date(2026, time.December, 31, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-12", p.Label())
	assert.Equal(t, time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC), p.End)
}
