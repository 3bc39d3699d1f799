package budget

import (
	"fmt"
	"time"
)

// PeriodLayout is the YYYY-MM label format used by the API
const PeriodLayout = "2006-01"

// Period is one calendar month. End is the last instant of the month, so
// both bounds are inclusive.
type Period struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the period for year/month in loc
func MonthPeriod(year int, month time.Month, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{
		Year:  start.Year(),
		Month: start.Month(),
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Second),
	}
}

// PeriodFor returns the month containing t, in t's location
func PeriodFor(t time.Time) Period {
	return MonthPeriod(t.Year(), t.Month(), t.Location())
}

// ParsePeriod parses a YYYY-MM label in loc
func ParsePeriod(label string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(PeriodLayout, label, loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q must be in YYYY-MM format", ErrInvalidPeriod, label)
	}
	return MonthPeriod(t.Year(), t.Month(), loc), nil
}

// Label returns the YYYY-MM form of the period
func (p Period) Label() string {
	return p.Start.Format(PeriodLayout)
}

// DaysRemaining counts the calendar days left in the period, including the
// current day. Before the period starts it is the full length; after it
// ends it is zero.
func (p Period) DaysRemaining(now time.Time) int {
	now = now.In(p.Start.Location())

	from := now
	if from.Before(p.Start) {
		from = p.Start
	}
	if from.After(p.End) {
		return 0
	}

	return max(0, daysBetween(from, p.End)+1)
}

// daysBetween counts whole calendar days from a to b, ignoring clock time
// and DST shifts.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
