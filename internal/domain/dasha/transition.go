package dasha

import "time"

// Divisors for converting a whole-day countdown into months and years.
// The year matches the fixed period arithmetic; the month is one twelfth
// of it.
const (
	DaysPerYear  = 365.25
	DaysPerMonth = 30.4375
)

// Remaining holds the countdown from a target date to the end of one
// period, computed on calendar dates only.
type Remaining struct {
	Days   int
	Months float64
	Years  float64
}

// dateOnly truncates an instant to its UTC calendar date. Offset-carrying
// instants are converted to UTC first, so local-midnight versus UTC-midnight
// ambiguity cannot change the result.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilEnd counts whole calendar days from the target's UTC date to the
// period end's UTC date, clamped to zero. Time-of-day on either side never
// affects the count: every instant of one calendar day yields the same
// value, the period's final calendar day yields 0 and the day before
// yields 1.
func DaysUntilEnd(p Period, target time.Time) int {
	days := int(dateOnly(p.End).Sub(dateOnly(target)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}

// RemainingAt computes the day/month/year countdown to the end of p as of
// the target instant.
func RemainingAt(p Period, target time.Time) Remaining {
	days := DaysUntilEnd(p, target)
	return Remaining{
		Days:   days,
		Months: float64(days) / DaysPerMonth,
		Years:  float64(days) / DaysPerYear,
	}
}
