package services

import "time"

// Reporting periods accepted by the analyzer.
const (
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Period is a concrete reporting window resolved from a period name and an
// explicit "now". Start is inclusive, End is exclusive (now truncated upward
// would leak future days, so End is simply now).
type Period struct {
	Start  time.Time
	End    time.Time
	Label  string
	Months int
	Days   int
}

// ResolvePeriod turns a requested period into window bounds. Unknown period
// values fall back to the current month. The clock is injected so callers
// and tests control it.
func ResolvePeriod(period string, now time.Time) Period {
	switch period {
	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Period{
			Start:  start,
			End:    now,
			Label:  PeriodYear,
			Months: 12,
			Days:   daysInYear(now.Year()),
		}
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Period{
			Start:  start,
			End:    now,
			Label:  PeriodMonth,
			Months: 1,
			Days:   daysInMonth(now.Year(), now.Month()),
		}
	}
}

// Contains reports whether a transaction date falls inside the window.
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}

// DaysElapsed is the number of days of the window already lived through,
// at least 1 so daily averages never divide by zero.
func (p Period) DaysElapsed() int {
	days := int(p.End.Sub(p.Start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DaysLeft is the number of days remaining in the calendar period.
func (p Period) DaysLeft() int {
	left := p.Days - p.DaysElapsed()
	if left < 0 {
		return 0
	}
	return left
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	if time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() == 366 {
		return 366
	}
	return 365
}
