package dasha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locateStack(t *testing.T, target time.Time) PeriodStack {
	t.Helper()
	stack, err := Locate(testAnchor(), target, 3)
	require.NoError(t, err)
	return stack
}

func TestDaysUntilEndIgnoresTimeOfDay(t *testing.T) {
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stack := locateStack(t, date)

	instants := []time.Time{
		date,
		date.Add(12 * time.Hour),
		date.Add(23*time.Hour + 59*time.Minute),
	}
	for level, p := range stack {
		base := DaysUntilEnd(p, instants[0])
		for _, at := range instants[1:] {
			assert.Equal(t, base, DaysUntilEnd(p, at),
				"level %d countdown varies with time of day at %s", level+1, at)
		}
	}
}

func TestDaysUntilEndKnownValues(t *testing.T) {
	target := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stack := locateStack(t, target)

	assert.Equal(t, 4642, DaysUntilEnd(stack[0], target), "mahadasha")
	assert.Equal(t, 972, DaysUntilEnd(stack[1], target), "antardasha")
	assert.Equal(t, 96, DaysUntilEnd(stack[2], target), "pratyantardasha")
}

func TestDaysUntilEndZeroAndOneDayEdges(t *testing.T) {
	target := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pd := locateStack(t, target)[2] // ends 2025-04-07 UTC

	endDay := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntilEnd(pd, endDay))
	assert.Equal(t, 0, DaysUntilEnd(pd, endDay.Add(23*time.Hour)))

	dayBefore := endDay.AddDate(0, 0, -1)
	assert.Equal(t, 1, DaysUntilEnd(pd, dayBefore))
}

func TestDaysUntilEndClampsToZero(t *testing.T) {
	target := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pd := locateStack(t, target)[2]

	afterEnd := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntilEnd(pd, afterEnd))
}

func TestDaysUntilEndConvertsOffsetsToUTC(t *testing.T) {
	target := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pd := locateStack(t, target)[2]

	// 02:00 on Jan 1 at +05:30 is still Dec 31 in UTC; the countdown must
	// follow the UTC date.
	ist := time.FixedZone("IST", 5*3600+1800)
	localEarlyMorning := time.Date(2025, 1, 1, 2, 0, 0, 0, ist)
	utcPrevDay := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, DaysUntilEnd(pd, utcPrevDay), DaysUntilEnd(pd, localEarlyMorning))
	assert.Equal(t, 97, DaysUntilEnd(pd, localEarlyMorning))
}

func TestRemainingAtDerivesMonthsAndYearsFromDays(t *testing.T) {
	target := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	md := locateStack(t, target)[0]

	r := RemainingAt(md, target)
	require.Equal(t, 4642, r.Days)
	assert.InDelta(t, 4642.0/30.4375, r.Months, 1e-9)
	assert.InDelta(t, 4642.0/365.25, r.Years, 1e-9)
}
