package dasha

import "time"

// Level identifies the nesting depth of a period within the Vimshottari
// hierarchy. Deeper levels than Pratyantardasha follow the same subdivision
// rule and are supported by the sequencer; the boundary simply exposes three.
type Level int

const (
	LevelMahadasha       Level = 1
	LevelAntardasha      Level = 2
	LevelPratyantardasha Level = 3
)

// hoursPerYear expresses the fixed 365.25-day year used for all period
// durations. Calendar years are never used here; the Vimshottari arithmetic
// is defined over this fixed year length.
const hoursPerYear = 365.25 * 24

// yearsToDuration converts a (possibly fractional) year count into an
// elapsed duration using the fixed year length.
func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * hoursPerYear * float64(time.Hour))
}

// Period is a half-open [Start, End) interval in UTC ruled by a single lord.
type Period struct {
	Lord  Lord
	Level Level
	Start time.Time
	End   time.Time
}

// Duration returns the elapsed length of the period.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Contains reports whether the instant falls inside the period. The start
// is inclusive and the end exclusive, so an instant on a boundary belongs
// to the period that begins there.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// PeriodStack is the chain of nested periods, one per level, that contains
// a single target instant. Index 0 is the mahadasha.
type PeriodStack []Period

// Anchor fixes a timeline to a birth moment: the birth instant in UTC and
// the sidereal Moon longitude at that instant. Anchors are value objects
// created per query and never shared or mutated.
type Anchor struct {
	Birth         time.Time
	MoonLongitude float64
}
